package spatial

import "math"

// Scalar is a real valued sample. It is its own tangent type.
type Scalar float64

func (s Scalar) Interpolate(end Scalar, ratio float64) Scalar {
	return Scalar((1-ratio)*float64(s) + ratio*float64(end))
}

func (s Scalar) Difference(end Scalar) Scalar {
	return end - s
}

func (s Scalar) Scale(f float64) Scalar {
	return Scalar(float64(s) * f)
}

func (s Scalar) Validate() error {
	if math.IsNaN(float64(s)) || math.IsInf(float64(s), 0) {
		return ErrNotFinite
	}

	return nil
}
