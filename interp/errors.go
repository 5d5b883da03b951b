package interp

import (
	"errors"
	"fmt"

	"github.com/sgostarter/i/commerr"
)

var (
	ErrInvalidInput     = fmt.Errorf("%w: invalid input", commerr.ErrInvalidArgument)
	ErrInsufficientData = errors.New("insufficient data")
	ErrOutOfRange       = fmt.Errorf("%w: time out of domain", commerr.ErrOutOfRange)
)
