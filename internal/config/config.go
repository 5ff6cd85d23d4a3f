package config

import (
	"time"

	"github.com/Fcatilizer/bookkeep-sub001/internal/queue"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/logger"
	"github.com/Fcatilizer/bookkeep-sub001/pkg/store"
	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"
)

var config *Config

// Config holds every setting of the API and the CLI. Values come from the
// environment, optionally seeded from a .env file; nothing else reads the
// environment directly.
type Config struct {
	AppEnv              string `env:"APP_ENV,default=dev"`
	AppName             string `env:"APP_NAME,default=bookkeep"`
	AppDebug            bool   `env:"APP_DEBUG,default=false"`
	AppDebugMetricsAddr string `env:"APP_DEBUG_METRIC_ADDR"`
	AppDebugMetricsURI  string `env:"APP_DEBUG_METRIC_URI,default=/metrics"`

	HttpListenAddr     string        `env:"HTTP_LISTEN_ADDR,default=127.0.0.1:8080"`
	HttpRequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT,default=10s"`

	DBPath          string `env:"DB_PATH,default=data/bookkeep.db"`
	DBSchemaVersion int    `env:"DB_SCHEMA_VERSION,default=0"`
	DBDebug         bool   `env:"DB_DEBUG,default=false"`

	RedisAddr               string `env:"REDIS_ADDR"`
	RedisUsername           string `env:"REDIS_USER"`
	RedisPassword           string `env:"REDIS_PASS"`
	RedisDatabase           int    `env:"REDIS_DATABASE,default=0"`
	RedisUniversalKeyPrefix string `env:"REDIS_UNIVERSAL_KEY_PREFIX"`

	PromNamespace string `env:"PROM_NAMESPACE,default=bookkeep"`

	ExportStream        string        `env:"EXPORT_STREAM,default=exports"`
	ExportStreamMaxLen  int64         `env:"EXPORT_STREAM_MAX_LEN,default=10000"`
	ExportConsumerGroup string        `env:"EXPORT_CONSUMER_GROUP,default=renderers"`
	ExportMaxRetries    int           `env:"EXPORT_MAX_RETRIES,default=3"`
	ExportPollInterval  time.Duration `env:"EXPORT_POLL_INTERVAL,default=1s"`
	ExportDir           string        `env:"EXPORT_DIR,default=data/exports"`

	BackupDir string `env:"BACKUP_DIR,default=data/backups"`
}

func Load(path string) error {
	logger.Info("loading configs..", "path", path)
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "failed to load configuration file %s", path)
		}
	}

	c := &Config{}
	if _, err := env.UnmarshalFromEnviron(c); err != nil {
		return errors.Wrap(err, "failed to map env variables to Configuration object")
	}
	if err := c.validate(); err != nil {
		return err
	}

	config = c
	return nil
}

func (c *Config) validate() error {
	switch {
	case c.HttpListenAddr == "":
		return errors.New("HTTP_LISTEN_ADDR must not be empty")
	case c.DBPath == "":
		return errors.New("DB_PATH must not be empty")
	case c.DBSchemaVersion < 0:
		return errors.Errorf("DB_SCHEMA_VERSION must not be negative, got %d", c.DBSchemaVersion)
	case c.ExportStream == "":
		return errors.New("EXPORT_STREAM must not be empty")
	}
	return nil
}

func Get() *Config {
	if config == nil {
		logger.Panic("Config is not initialized")
	}
	return config
}

func (c *Config) Store() store.Config {
	return store.Config{Path: c.DBPath, Debug: c.DBDebug}
}

// RedisEnabled reports whether an export queue is configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func (c *Config) RedisOptions() *goredis.UniversalOptions {
	return &goredis.UniversalOptions{
		Addrs:    []string{c.RedisAddr},
		Username: c.RedisUsername,
		Password: c.RedisPassword,
		DB:       c.RedisDatabase,
	}
}

// ExportQueue describes the stream shared by the API (producer) and the
// export worker (consumer).
func (c *Config) ExportQueue(consumer string) queue.QueueConfig {
	return queue.QueueConfig{
		Name:          c.ExportStream,
		ConsumerGroup: c.ExportConsumerGroup,
		ConsumerName:  consumer,
		MaxRetries:    c.ExportMaxRetries,
		PollInterval:  c.ExportPollInterval,
		MaxLen:        c.ExportStreamMaxLen,
		EnableDLQ:     true,
	}
}
