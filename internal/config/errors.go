package config

import (
	"errors"
)

var (
	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("config webserver.port listening port can not be 0")

	// ErrInvalidAlphabet error if config generator.alphabet can not build a generator.
	ErrInvalidAlphabet = errors.New("config generator.alphabet is not usable")
)
