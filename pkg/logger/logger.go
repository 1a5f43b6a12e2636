package logger

import (
	"go.uber.org/zap"
)

func New(development bool) (*zap.SugaredLogger, error) {
	var z *zap.Logger
	var err error
	if development {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return z.Sugar(), nil
}

// Nop is used by tests and by callers that do not care about logs.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
