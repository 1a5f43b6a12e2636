package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Redis    RedisConfig
	Database DatabaseConfig
	S3       S3Config
	Session  SessionConfig
	Cleanup  CleanupConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	BodyLimit       int // bytes
	ShutdownTimeout time.Duration
	Locale          string
}

// StoreConfig selects the annotation store backend:
// memory, local, redis, postgres or s3.
type StoreConfig struct {
	Driver string
	Dir    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type DatabaseConfig struct {
	Host             string
	Port             string
	User             string
	Password         string
	DBName           string
	SSLMode          string
	RunAutoMigration bool
}

type S3Config struct {
	Region   string
	Bucket   string
	Prefix   string
	Endpoint string
}

type SessionConfig struct {
	SeekSettleDelay time.Duration
	Workers         int
	QueueSize       int
}

type CleanupConfig struct {
	Schedule string // cron expression with seconds field
	OnServer bool
}

type LogConfig struct {
	Development bool
}

// LoadConfig reads .env (if present) and the environment.
func LoadConfig(envFiles ...string) *Config {
	// missing .env files are fine, the environment still applies
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return &Config{
		Server: ServerConfig{
			Port:            v.GetString("server.port"),
			Host:            v.GetString("server.host"),
			BodyLimit:       v.GetInt("server.body_limit"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			Locale:          v.GetString("server.locale"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("store.driver")),
			Dir:    v.GetString("store.dir"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			Prefix:   v.GetString("redis.prefix"),
		},
		Database: DatabaseConfig{
			Host:             v.GetString("db.host"),
			Port:             v.GetString("db.port"),
			User:             v.GetString("db.user"),
			Password:         v.GetString("db.password"),
			DBName:           v.GetString("db.name"),
			SSLMode:          v.GetString("db.sslmode"),
			RunAutoMigration: v.GetBool("run.auto.migration"),
		},
		S3: S3Config{
			Region:   v.GetString("aws.region"),
			Bucket:   v.GetString("aws.s3.bucket"),
			Prefix:   v.GetString("aws.s3.prefix"),
			Endpoint: v.GetString("aws.s3.endpoint"),
		},
		Session: SessionConfig{
			SeekSettleDelay: v.GetDuration("session.seek_settle_delay"),
			Workers:         v.GetInt("session.workers"),
			QueueSize:       v.GetInt("session.queue_size"),
		},
		Cleanup: CleanupConfig{
			Schedule: v.GetString("cleanup.schedule"),
			OnServer: v.GetBool("cleanup.on_server"),
		},
		Log: LogConfig{
			Development: v.GetBool("log.development"),
		},
	}
}

// Keys map to upper-case env vars: server.port -> SERVER_PORT.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.body_limit", 4*1024*1024)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.locale", "en")

	v.SetDefault("store.driver", "local")
	v.SetDefault("store.dir", "annotations")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "annotator:")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "video_annotator")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("run.auto.migration", true)

	v.SetDefault("aws.region", "eu-central-1")
	v.SetDefault("aws.s3.bucket", "")
	v.SetDefault("aws.s3.prefix", "annotations/")
	v.SetDefault("aws.s3.endpoint", "")

	v.SetDefault("session.seek_settle_delay", 100*time.Millisecond)
	v.SetDefault("session.workers", 4)
	v.SetDefault("session.queue_size", 64)

	v.SetDefault("cleanup.schedule", "0 */5 * * * *")
	v.SetDefault("cleanup.on_server", false)

	v.SetDefault("log.development", false)
}
