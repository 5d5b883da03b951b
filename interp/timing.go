package interp

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// Timing maps the normalized local time s in [0, 1] of a bracketing interval
// to the interpolation ratio.
type Timing int

const (
	// TimingLinear: ratio = s.
	TimingLinear Timing = iota
	// TimingCubic: cubic Hermite ratio with zero velocity at every control
	// point, ratio = 3s^2 - 2s^3.
	TimingCubic
)

func (t Timing) String() string {
	switch t {
	case TimingLinear:
		return "linear"
	case TimingCubic:
		return "cubic"
	}

	return fmt.Sprintf("Timing(%d)", int(t))
}

// ParseTiming accepts a timing name or its numeric value. Empty means linear.
func ParseTiming(v interface{}) (Timing, error) {
	s, err := cast.ToStringE(v)
	if err != nil {
		return TimingLinear, fmt.Errorf("%w: timing %v: %w", ErrInvalidInput, v, err)
	}

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "linear", "0":
		return TimingLinear, nil
	case "cubic", "1":
		return TimingCubic, nil
	}

	return TimingLinear, fmt.Errorf("%w: unknown timing %q", ErrInvalidInput, s)
}

func (t Timing) ratio(s float64) float64 {
	if t == TimingCubic {
		return s * s * (3 - 2*s)
	}

	return s
}

// ratioDerivative is the order-th time derivative of the ratio on an
// interval of length h.
func (t Timing) ratioDerivative(s, h float64, order int) float64 {
	if t == TimingCubic {
		switch order {
		case 1:
			return 6 * s * (1 - s) / h
		case 2:
			return (6 - 12*s) / (h * h)
		case 3:
			return -12 / (h * h * h)
		}

		return 0
	}

	if order == 1 {
		return 1 / h
	}

	return 0
}
