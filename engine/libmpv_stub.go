//go:build !libmpv

package engine

import (
	peartube "github.com/ayooooo123/peartube"
	"github.com/ayooooo123/peartube/errors"
)

type stubProvider struct{}

// NewProvider returns the libmpv-backed engine provider. This build lacks
// the "libmpv" tag, so Create always fails with an unsupported error.
func NewProvider() peartube.Provider { return stubProvider{} }

func (stubProvider) Create() (peartube.Engine, error) {
	return nil, errors.Unsupported(errors.PhaseCreate, "built without libmpv (rebuild with -tags libmpv)")
}
