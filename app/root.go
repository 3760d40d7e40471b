// Package app implements the amsid commands.
package app

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Scharfcsh/amsid/internal/config"
	"github.com/Scharfcsh/amsid/internal/logger"
)

// options are shared by all commands; cfg is loaded before any of them runs.
type options struct {
	configPath string // directory holding amsid.toml
	devMode    bool
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "amsid",
		Short: "amsid generates secure, URL-friendly unique identifiers",
		Long: `amsid generates secure, URL-friendly unique identifiers from a pooled
cryptographic random source, over the URL alphabet or any custom alphabet,
and serves them over http.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.load()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "directory containing amsid.toml (default ./etc/)")
	rootCmd.PersistentFlags().BoolVar(&opts.devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(
		newGenerateCmd(opts),
		newServeCmd(opts),
		newConfigCmd(opts),
	)

	return rootCmd
}

// load reads the config and starts the logger.
func (o *options) load() error {
	cfg, err := config.ReadConfig(o.configPath)
	if err != nil {
		return errors.Wrap(err, "read config")
	}

	if o.devMode {
		cfg.DevMode = true
	}

	if err = logger.Init(cfg.Log); err != nil {
		return errors.Wrap(err, "init logger")
	}

	if cfg.DevMode {
		log.Warn().Msg("dev mode enabled")
	}

	o.cfg = cfg

	return nil
}

// Execute runs the root command.
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		log.Error().Err(err).Msg("amsid failed")
	}

	return err
}
