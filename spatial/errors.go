package spatial

import (
	"errors"
	"fmt"

	"github.com/sgostarter/i/commerr"
)

var (
	ErrInvalidRotation   = fmt.Errorf("%w: invalid rotation", commerr.ErrInvalidArgument)
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrNotFinite         = errors.New("not finite")
)
