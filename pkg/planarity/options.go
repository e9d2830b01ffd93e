package planarity

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	perrors "github.com/matzehuels/planarity/pkg/errors"
	"github.com/matzehuels/planarity/pkg/observability"
)

// Algorithm selects the PQ-tree variant that drives a sweep.
type Algorithm string

const (
	// AlgorithmBL is the linear-time Booth–Lueker tree.
	AlgorithmBL Algorithm = "bl"
	// AlgorithmJTS is the quadratic Jayakumar–Thulasiraman–Swamy tree.
	AlgorithmJTS Algorithm = "jts"
)

// DefaultAlgorithm is used when Options.Algorithm is empty.
const DefaultAlgorithm = AlgorithmBL

// ParseAlgorithm converts a user-supplied name to an Algorithm. The empty
// string yields [DefaultAlgorithm].
func ParseAlgorithm(name string) (Algorithm, error) {
	if err := perrors.ValidateAlgorithm(name); err != nil {
		return "", err
	}
	if name == "" {
		return DefaultAlgorithm, nil
	}
	return Algorithm(strings.ToLower(name)), nil
}

// Options configures a planarity run.
type Options struct {
	Algorithm Algorithm `json:"algorithm,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger                  `json:"-"`
	Hooks  observability.ReductionHooks `json:"-"`
}

// SetDefaults fills in the algorithm, a discarding logger and the globally
// registered reduction hooks.
func (o *Options) SetDefaults() {
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Hooks == nil {
		o.Hooks = observability.Reduction()
	}
}

// Validate rejects unknown algorithms.
func (o *Options) Validate() error {
	return perrors.ValidateAlgorithm(string(o.Algorithm))
}
