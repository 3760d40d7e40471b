package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Scharfcsh/amsid"
	"github.com/Scharfcsh/amsid/internal/config"
	"github.com/Scharfcsh/amsid/internal/entropy"
)

// ErrInvalidCount is returned for --count below 1.
var ErrInvalidCount = errors.New("count must be at least 1")

type generateFlags struct {
	size         int
	count        int
	alphabet     string
	complexID    bool
	prefix       string
	publicLength int
	secureLength int
	asJSON       bool
	seed         string
}

// idLine is a plain id in --json output.
type idLine struct {
	ID string `json:"id"`
}

func newGenerateCmd(opts *options) *cobra.Command {
	f := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print new identifiers",
		Example: `  amsid generate
  amsid generate --size 10 --count 5
  amsid generate --alphabet 0123456789 --size 8
  amsid generate --complex --prefix usr --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f.applyConfig(cmd, &opts.cfg)

			return f.run(cmd.OutOrStdout(), &opts.cfg)
		},
	}

	fl := cmd.Flags()
	fl.IntVarP(&f.size, "size", "s", amsid.DefaultSize, "id length in characters")
	fl.IntVarP(&f.count, "count", "n", 1, "number of ids")
	fl.StringVarP(&f.alphabet, "alphabet", "a", "", "custom alphabet, empty for the URL alphabet")
	fl.BoolVar(&f.complexID, "complex", false, "generate prefix_public.secure ids")
	fl.StringVar(&f.prefix, "prefix", "", "prefix of complex ids")
	fl.IntVar(&f.publicLength, "public-length", amsid.DefaultPublicLength, "public segment length of complex ids")
	fl.IntVar(&f.secureLength, "secure-length", amsid.DefaultSecureLength, "secure segment length of complex ids")
	fl.BoolVar(&f.asJSON, "json", false, "print one JSON object per id")
	fl.StringVar(&f.seed, "seed", "", "derive bytes from this seed instead of the OS source (fixtures only, NOT secure)")

	return cmd
}

// applyConfig fills every flag the user did not set from the config file.
func (f *generateFlags) applyConfig(cmd *cobra.Command, cfg *config.Config) {
	fl := cmd.Flags()

	if !fl.Changed("size") {
		f.size = cfg.Generator.Size
	}

	if !fl.Changed("count") {
		f.count = cfg.Generator.Count
	}

	if !fl.Changed("alphabet") {
		f.alphabet = cfg.Generator.Alphabet
	}

	if !fl.Changed("prefix") {
		f.prefix = cfg.Complex.Prefix
	}

	if !fl.Changed("public-length") {
		f.publicLength = cfg.Complex.PublicLength
	}

	if !fl.Changed("secure-length") {
		f.secureLength = cfg.Complex.SecureLength
	}
}

func (f *generateFlags) run(out io.Writer, cfg *config.Config) error {
	if f.count < 1 {
		return errors.Wrapf(ErrInvalidCount, "got %d", f.count)
	}

	if err := f.configurePool(cfg); err != nil {
		return err
	}

	next, err := f.generator()
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)

	for range f.count {
		v, err := next()
		if err != nil {
			return err
		}

		if f.asJSON {
			err = enc.Encode(v)
		} else {
			_, err = fmt.Fprintln(out, v)
		}

		if err != nil {
			return errors.Wrap(err, "write id")
		}
	}

	return nil
}

// configurePool installs a fresh process-wide pool, seeded when --seed is set.
func (f *generateFlags) configurePool(cfg *config.Config) error {
	opts := []amsid.Option{
		amsid.WithMultiplier(cfg.Pool.Multiplier),
		amsid.WithLogger(log.Logger),
	}

	if f.seed != "" {
		r, err := entropy.Seeded([]byte(f.seed))
		if err != nil {
			return errors.Wrap(err, "seeded source")
		}

		log.Warn().Msg("using a seeded byte source, ids are reproducible and not secure")

		opts = append(opts, amsid.WithReader(r))
	}

	return errors.Wrap(amsid.Configure(opts...), "configure random pool")
}

// generator returns a function producing the value printed per id.
func (f *generateFlags) generator() (func() (any, error), error) {
	switch {
	case f.complexID:
		o := &amsid.ComplexIDOptions{
			Prefix:       f.prefix,
			PublicLength: amsid.Length(f.publicLength),
			SecureLength: amsid.Length(f.secureLength),
		}

		return func() (any, error) {
			res, err := amsid.GenerateComplexID(o)
			if err != nil {
				return nil, err //nolint:wrapcheck
			}

			if f.asJSON {
				return res, nil
			}

			return res.ID, nil
		}, nil

	case f.alphabet != "":
		gen, err := amsid.CustomAlphabet(f.alphabet, max(f.size, 1))
		if err != nil {
			return nil, err //nolint:wrapcheck
		}

		return f.plain(func() (string, error) { return gen(f.size) }), nil

	default:
		return f.plain(func() (string, error) { return amsid.Nanoid(f.size) }), nil
	}
}

func (f *generateFlags) plain(next func() (string, error)) func() (any, error) {
	return func() (any, error) {
		id, err := next()
		if err != nil {
			return nil, err
		}

		if f.asJSON {
			return idLine{ID: id}, nil
		}

		return id, nil
	}
}
