package spatial

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// VecN is a dynamic size vector. Interpolating or differencing vectors of
// different lengths panics, the interpolators reject such point sets up front.
type VecN []float64

func (v VecN) Len() int {
	return len(v)
}

func (v VecN) Clone() VecN {
	if v == nil {
		return nil
	}

	return append(VecN{}, v...)
}

func (v VecN) Interpolate(end VecN, ratio float64) VecN {
	dst := make([]float64, len(v))
	floats.ScaleTo(dst, 1-ratio, v)
	floats.AddScaled(dst, ratio, end)

	return dst
}

func (v VecN) Difference(end VecN) VecN {
	return floats.SubTo(make([]float64, len(v)), end, v)
}

func (v VecN) Scale(f float64) VecN {
	return floats.ScaleTo(make([]float64, len(v)), f, v)
}

func (v VecN) ApproxEqual(o VecN, tol float64) bool {
	if len(v) != len(o) {
		return false
	}

	return floats.EqualApprox(v, o, tol)
}

func (v VecN) Validate() error {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return ErrNotFinite
		}
	}

	return nil
}
