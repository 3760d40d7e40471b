// Package config reads the amsid configuration from etc/amsid.toml and the environment.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/Scharfcsh/amsid"
	"github.com/Scharfcsh/amsid/internal/pool"
)

const (
	// FileName is the config file name without extension.
	FileName = "amsid"

	// EnvPrefix prefixes single value overrides, e.g. AMSID_GENERATOR_SIZE=32.
	EnvPrefix = "AMSID"

	// JSONEnv holds a JSON document merged over the file config.
	JSONEnv = "AMSID_CONFIG_JSON"

	defaultShutDownTime = 5
)

var validate = validator.New() //nolint:gochecknoglobals

// setDefaults registers every key, which also makes viper look them up in the environment.
func setDefaults(v *viper.Viper) {
	v.SetDefault("devMode", false)

	v.SetDefault("log.logLevel", "info")
	v.SetDefault("log.logEnv", "")
	v.SetDefault("log.enableAccessLogToConsole", false)
	v.SetDefault("log.reportCaller", false)
	v.SetDefault("log.disableCheckAlive", true)
	v.SetDefault("log.appName", "amsid")
	v.SetDefault("log.serviceName", "amsid")
	v.SetDefault("log.console.enabled", true)
	v.SetDefault("log.console.useConsoleWriter", true)
	v.SetDefault("log.file.enabled", false)
	v.SetDefault("log.file.path", "./log")
	v.SetDefault("log.file.access", "access.log")
	v.SetDefault("log.file.error", "error.log")
	v.SetDefault("log.file.info", "info.log")
	v.SetDefault("log.file.trace", "trace.log")
	v.SetDefault("log.file.warn", "warn.log")

	v.SetDefault("generator.size", amsid.DefaultSize)
	v.SetDefault("generator.alphabet", "")
	v.SetDefault("generator.count", 1)

	v.SetDefault("complex.prefix", "")
	v.SetDefault("complex.publicLength", amsid.DefaultPublicLength)
	v.SetDefault("complex.secureLength", amsid.DefaultSecureLength)

	v.SetDefault("pool.multiplier", pool.Multiplier)

	v.SetDefault("webserver.host", "")
	v.SetDefault("webserver.port", 8080) //nolint:mnd
	v.SetDefault("webserver.shutDownTime", defaultShutDownTime)
	v.SetDefault("webserver.maxSize", 1024) //nolint:mnd
}

// ReadConfig reads <path>amsid.toml, then applies AMSID_* and AMSID_CONFIG_JSON overrides.
// A missing file is not an error: defaults and environment still apply.
func ReadConfig(path string) (Config, error) {
	var (
		c   Config
		err error
	)

	if path == "" {
		path = "./etc/"
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(FileName)
	v.SetConfigType("toml")
	v.AddConfigPath(path)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "failed to read main config file")
		}
	}

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	if configAsJSON := os.Getenv(JSONEnv); configAsJSON != "" {
		c, err = decodeAndMergeConfig(c, configAsJSON)
		if err != nil {
			return c, err
		}
	}

	return c, Validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	if err := json.Unmarshal([]byte(configAsJSON), &c); err != nil {
		return Config{}, errors.Wrapf(err, "failed to decode %s", JSONEnv)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer

	if err := toml.NewEncoder(&buffer).Encode(c); err != nil {
		return "", err //nolint:wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint:wrapcheck
	}

	return buffer.String(), nil
}

// Validate checks the settings amsid can not work without and fills the shutdown default.
func Validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	if c.Generator.Alphabet != "" {
		size := max(c.Generator.Size, 1)
		if _, err := amsid.CustomAlphabet(c.Generator.Alphabet, size); err != nil {
			return errors.Wrapf(ErrInvalidAlphabet, "%s: %v", invalidErrMessage, err)
		}
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	return nil
}
