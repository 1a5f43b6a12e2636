package handlers

import (
	"strconv"

	"video-annotator/pkg/errors"

	"github.com/gofiber/fiber/v2"
)

func requireURI(c *fiber.Ctx) (string, error) {
	uri := c.Query("uri")
	if uri == "" {
		return "", errors.ErrValidation("query parameter uri is required")
	}
	return uri, nil
}

// floatQuery parses an optional float query value; ok is false when absent.
func floatQuery(c *fiber.Ctx, key string) (value float64, ok bool, err error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, false, nil
	}
	value, err = strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, errors.ErrValidation("query parameter " + key + " must be a number")
	}
	return value, true, nil
}
