// Package daemon wires the random pool and the web service for `amsid serve`.
package daemon

import (
	"net"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Scharfcsh/amsid"
	"github.com/Scharfcsh/amsid/internal/config"
	"github.com/Scharfcsh/amsid/internal/web"
)

// ErrNilConfig is returned by New without a config.
var ErrNilConfig = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Addr returns the listen address of the web service.
func (d *Daemon) Addr() string {
	return net.JoinHostPort(d.cfg.Webserver.Host, strconv.Itoa(d.cfg.Webserver.Port))
}

// Start serves until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(d.Addr())
}

// New rebuilds the process-wide random pool from cfg and creates the web service.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if err := amsid.Configure(
		amsid.WithMultiplier(cfg.Pool.Multiplier),
		amsid.WithLogger(log.Logger),
	); err != nil {
		return nil, errors.Wrap(err, "configure random pool")
	}

	log.Debug().Int("multiplier", cfg.Pool.Multiplier).Msg("random pool configured")

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg),
	}, nil
}
