package trajstg

import (
	"fmt"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/libtrajectory/interp"
)

var (
	ErrBadKey    = fmt.Errorf("%w: bad key", commerr.ErrInvalidArgument)
	ErrNilRecord = fmt.Errorf("%w: nil record", commerr.ErrInvalidArgument)
)

// Record is a persisted sample set. Timing holds an interp.Timing name.
type Record[T any] struct {
	Timing string              `yaml:"timing,omitempty" json:"timing,omitempty"`
	Points []*interp.Sample[T] `yaml:"points" json:"points"`
}

// Storage persists records by key. Load of an unknown key fails with
// commerr.ErrNotFound, Remove of an unknown key is a no-op.
type Storage[T any] interface {
	Load(key string) (*Record[T], error)
	Save(key string, record *Record[T]) error
	Remove(key string) error
	Keys() ([]string, error)
}
