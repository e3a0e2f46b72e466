/*
Package config reads the process configuration of the vesting service from
a YAML file.
*/
package config

import (
	"io/ioutil"

	"github.com/iov-one/lockup/errors"
	"github.com/tendermint/tendermint/libs/log"
	"gopkg.in/yaml.v2"
)

// Config is the content of the service configuration file.
type Config struct {
	// DBPath is the directory of the leveldb database.
	DBPath string `yaml:"db_path"`
	// CacheSize is the number of values kept in the read cache.
	CacheSize int `yaml:"cache_size"`
	// LogLevel is one of debug, info, error or none.
	LogLevel string `yaml:"log_level"`
	// Genesis is the path to the JSON genesis file applied by init.
	Genesis string `yaml:"genesis"`

	HTTP  HTTP  `yaml:"http"`
	Redis Redis `yaml:"redis"`
}

// HTTP configures the API server.
type HTTP struct {
	Listen string `yaml:"listen"`
}

// Redis configures the event stream. Events are not streamed when URL is
// empty.
type Redis struct {
	URL    string `yaml:"url"`
	Stream string `yaml:"stream"`
	MaxLen int64  `yaml:"max_len"`
}

// Default returns the configuration used for every value missing from the
// file.
func Default() Config {
	return Config{
		DBPath:    "./data",
		CacheSize: 1024,
		LogLevel:  "info",
		Genesis:   "./genesis.json",
		HTTP:      HTTP{Listen: ":8080"},
		Redis:     Redis{Stream: "lockup:events"},
	}
}

// Load reads the configuration file at path on top of the defaults and
// validates the result.
func Load(path string) (Config, error) {
	conf := Default()

	data, err := ioutil.ReadFile(path)
	if err != nil {
		return conf, errors.Wrapf(errors.ErrNotFound, "read %s: %s", path, err)
	}
	if err := yaml.UnmarshalStrict(data, &conf); err != nil {
		return conf, errors.Wrapf(errors.ErrInput, "parse %s: %s", path, err)
	}
	if err := conf.Validate(); err != nil {
		return conf, errors.Wrap(err, path)
	}
	return conf, nil
}

// Validate returns an error if the configuration cannot be used to start
// the service.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return errors.Wrap(errors.ErrEmpty, "db_path")
	}
	if c.CacheSize < 0 {
		return errors.Wrapf(errors.ErrInput, "cache_size %d", c.CacheSize)
	}
	if _, err := log.AllowLevel(c.LogLevel); err != nil {
		return errors.Wrapf(errors.ErrInput, "log_level: %s", err)
	}
	if c.HTTP.Listen == "" {
		return errors.Wrap(errors.ErrEmpty, "http.listen")
	}
	if c.Redis.MaxLen < 0 {
		return errors.Wrapf(errors.ErrInput, "redis.max_len %d", c.Redis.MaxLen)
	}
	return nil
}

// Logger filters given logger with the configured level.
func (c Config) Logger(logger log.Logger) (log.Logger, error) {
	opt, err := log.AllowLevel(c.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log_level: %s", err)
	}
	return log.NewFilter(logger, opt), nil
}
