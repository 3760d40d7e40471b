// Package id serves identifiers and raw random bytes over http.
package id

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/Scharfcsh/amsid"
	"github.com/Scharfcsh/amsid/internal/config"
	"github.com/Scharfcsh/amsid/internal/web/handler"
)

const (
	// Path is the route group of the id endpoints.
	Path = handler.RootPath + "id"

	// CustomPath serves ids over a caller supplied alphabet.
	CustomPath = "/custom"

	// ComplexPath serves prefix_public.secure ids.
	ComplexPath = "/complex"

	// BytesPath serves base64 encoded random bytes.
	BytesPath = handler.RootPath + "bytes"

	// DefaultBytes is the /bytes size without a size parameter.
	DefaultBytes = 32
)

// Response is the body of /id and /id/custom.
type Response struct {
	ID string `json:"id"`
}

// BytesResponse is the body of /bytes.
type BytesResponse struct {
	Bytes string `json:"bytes"`
}

// SizeQuery holds the size parameter of /id and /bytes.
type SizeQuery struct {
	Size int `query:"size" validate:"gte=0"`
}

// CustomQuery holds the parameters of /id/custom.
type CustomQuery struct {
	Alphabet string `query:"alphabet" validate:"required"`
	Size     int    `query:"size" validate:"gte=0"`
}

// ComplexQuery holds the parameters of /id/complex.
type ComplexQuery struct {
	Prefix       string `query:"prefix" validate:"max=64"`
	PublicLength int    `query:"publicLength" validate:"gte=0"`
	SecureLength int    `query:"secureLength" validate:"gte=0"`
}

// Service is the id handler service.
type Service struct {
	handler.Service
	cfg *config.Config
}

// Handler is the id handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers the id and bytes routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config) error {
	if app == nil || cfg == nil {
		return errors.New(handler.ErrNilACFatalLogMsg) //nolint:goerr113
	}

	s.cfg = cfg

	ids := app.Group(Path)
	ids.Get(handler.RouterRootPath, s.Get)
	ids.Get(CustomPath, s.Custom)
	ids.Get(ComplexPath, s.Complex)

	app.Get(BytesPath, s.Bytes)

	return nil
}

// Get handles /id with the URL alphabet.
func (s *Service) Get(c fiber.Ctx) error {
	q := SizeQuery{Size: amsid.DefaultSize}
	if err := c.Bind().Query(&q); err != nil {
		return handler.BadRequest(err)
	}

	if err := s.checkSize("size", q.Size); err != nil {
		return err
	}

	id, err := amsid.Nanoid(q.Size)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(Response{ID: id})
}

// Custom handles /id/custom.
func (s *Service) Custom(c fiber.Ctx) error {
	q := CustomQuery{Size: amsid.DefaultSize}
	if err := c.Bind().Query(&q); err != nil {
		return handler.BadRequest(err)
	}

	if err := s.checkSize("size", q.Size); err != nil {
		return err
	}

	gen, err := amsid.CustomAlphabet(q.Alphabet, max(q.Size, 1))
	if err != nil {
		return httpError(err)
	}

	id, err := gen(q.Size)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(Response{ID: id})
}

// Complex handles /id/complex.
func (s *Service) Complex(c fiber.Ctx) error {
	q := ComplexQuery{
		Prefix:       s.cfg.Complex.Prefix,
		PublicLength: s.cfg.Complex.PublicLength,
		SecureLength: s.cfg.Complex.SecureLength,
	}
	if err := c.Bind().Query(&q); err != nil {
		return handler.BadRequest(err)
	}

	if err := s.checkSize("publicLength", q.PublicLength); err != nil {
		return err
	}

	if err := s.checkSize("secureLength", q.SecureLength); err != nil {
		return err
	}

	res, err := amsid.GenerateComplexID(&amsid.ComplexIDOptions{
		Prefix:       q.Prefix,
		PublicLength: amsid.Length(q.PublicLength),
		SecureLength: amsid.Length(q.SecureLength),
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(res)
}

// Bytes handles /bytes.
func (s *Service) Bytes(c fiber.Ctx) error {
	q := SizeQuery{Size: DefaultBytes}
	if err := c.Bind().Query(&q); err != nil {
		return handler.BadRequest(err)
	}

	if err := s.checkSize("size", q.Size); err != nil {
		return err
	}

	b, err := amsid.RandomBytes(q.Size)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(BytesResponse{Bytes: base64.StdEncoding.EncodeToString(b)})
}

func (s *Service) checkSize(name string, size int) error {
	if size > s.cfg.Webserver.MaxSize {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("%s %d exceeds the limit of %d", name, size, s.cfg.Webserver.MaxSize))
	}

	return nil
}

// httpError turns caller mistakes into 400 and leaves everything else to the 500 path.
func httpError(err error) error {
	switch {
	case errors.Is(err, amsid.ErrInvalidSize),
		errors.Is(err, amsid.ErrEmptyAlphabet),
		errors.Is(err, amsid.ErrAlphabetTooLong),
		errors.Is(err, amsid.ErrInvalidOptions):
		return handler.BadRequest(err)
	case errors.Is(err, amsid.ErrEntropyUnavailable):
		log.Error().Err(err).Msg("secure random source failed")
	}

	return err
}
