package interp

import (
	"fmt"
	"math"
)

// Interpolate returns the value at ratio between start and end using the law
// of T.
func Interpolate[T Value[T]](start, end T, ratio float64) T {
	return start.Interpolate(end, ratio)
}

// InterpolateDerivative returns the order-th time derivative of the straight
// interpolation from start to end over dt. The first derivative is the
// constant (end-start)/dt, higher orders are zero.
func InterpolateDerivative[T Differentiable[T, U], U Tangent[U]](start, end T, dt float64, order int) (u U, err error) {
	if order < 1 {
		err = fmt.Errorf("%w: derivative order %d", ErrInvalidInput, order)

		return
	}

	if !(dt > 0) || math.IsInf(dt, 1) {
		err = fmt.Errorf("%w: time span %v", ErrInvalidInput, dt)

		return
	}

	d := start.Difference(end)

	if order > 1 {
		return d.Scale(0), nil
	}

	return d.Scale(1 / dt), nil
}
