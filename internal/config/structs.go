package config

import (
	"github.com/Scharfcsh/amsid/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool       `mapstructure:"devMode" toml:"devMode"` // enable dev mode for development
	Log       logger.Log `mapstructure:"log" toml:"log"`
	Generator Generator  `mapstructure:"generator" toml:"generator"`
	Complex   Complex    `mapstructure:"complex" toml:"complex"`
	Pool      Pool       `mapstructure:"pool" toml:"pool"`
	Webserver Webserver  `mapstructure:"webserver" toml:"webserver"`
}

// Generator holds the defaults of `amsid generate`.
type Generator struct {
	Size     int    `mapstructure:"size" toml:"size" validate:"gte=0"`
	Alphabet string `mapstructure:"alphabet" toml:"alphabet"` // empty selects the URL alphabet
	Count    int    `mapstructure:"count" toml:"count" validate:"gte=1"`
}

// Complex holds the composite id defaults.
type Complex struct {
	Prefix       string `mapstructure:"prefix" toml:"prefix"`
	PublicLength int    `mapstructure:"publicLength" toml:"publicLength" validate:"gte=0"`
	SecureLength int    `mapstructure:"secureLength" toml:"secureLength" validate:"gte=0"`
}

// Pool holds the random pool settings.
type Pool struct {
	Multiplier int `mapstructure:"multiplier" toml:"multiplier" validate:"gte=1"`
}

// Webserver implement webserver settings.
type Webserver struct {
	Host         string `mapstructure:"host" toml:"host"`                      // listening host, empty for all interfaces
	Port         int    `mapstructure:"port" toml:"port" validate:"lte=65535"` // listening port
	ShutDownTime int    `mapstructure:"shutDownTime" toml:"shutDownTime"`      // seconds to answer 503 on /checkalive before stopping
	MaxSize      int    `mapstructure:"maxSize" toml:"maxSize" validate:"gte=1"` // largest id or byte count served per request
}
