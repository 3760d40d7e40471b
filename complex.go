package amsid

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Scharfcsh/amsid/internal/metrics"
)

const (
	// DefaultPublicLength is the public segment length of a complex ID.
	DefaultPublicLength = 12

	// DefaultSecureLength is the secure segment length of a complex ID.
	DefaultSecureLength = 32
)

var validate = validator.New() //nolint:gochecknoglobals

// ComplexIDOptions configures GenerateComplexID. Nil lengths select the
// defaults; an explicit 0 yields an empty segment.
type ComplexIDOptions struct {
	Prefix       string `json:"prefix,omitempty"`
	PublicLength *int   `json:"publicLength,omitempty" validate:"omitnil,gte=0"`
	SecureLength *int   `json:"secureLength,omitempty" validate:"omitnil,gte=0"`
}

// ComplexIDResult is a composite identifier and its parts.
type ComplexIDResult struct {
	ID       string `json:"id"`
	Prefix   string `json:"prefix"` // includes the trailing underscore, empty without prefix
	PublicID string `json:"publicId"`
	SecureID string `json:"secureId"`
}

// GenerateComplexID builds prefix_publicId.secureId. The public segment is a
// lookup key that may be shown; the secure segment is the unguessable part.
func GenerateComplexID(opts *ComplexIDOptions) (ComplexIDResult, error) {
	var o ComplexIDOptions
	if opts != nil {
		o = *opts
	}

	if err := validate.Struct(o); err != nil {
		return ComplexIDResult{}, errors.Wrapf(ErrInvalidOptions, "%v", err)
	}

	publicLength := lengthOr(o.PublicLength, DefaultPublicLength)
	secureLength := lengthOr(o.SecureLength, DefaultSecureLength)

	var prefix string
	if o.Prefix != "" {
		prefix = o.Prefix + "_"
	}

	publicID, err := Nanoid(publicLength)
	if err != nil {
		return ComplexIDResult{}, errors.Wrap(err, "public segment")
	}

	secureID, err := Nanoid(secureLength)
	if err != nil {
		return ComplexIDResult{}, errors.Wrap(err, "secure segment")
	}

	metrics.IDGenerated(metrics.PathComplex)

	return ComplexIDResult{
		ID:       prefix + publicID + "." + secureID,
		Prefix:   prefix,
		PublicID: publicID,
		SecureID: secureID,
	}, nil
}

// Length returns a pointer to n for ComplexIDOptions lengths.
func Length(n int) *int {
	return &n
}

func lengthOr(n *int, def int) int {
	if n == nil {
		return def
	}

	return *n
}
