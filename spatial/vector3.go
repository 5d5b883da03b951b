package spatial

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

type Vector3 struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vector3) Scale(f float64) Vector3 {
	return Vector3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

func (v Vector3) Dot(o Vector3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vector3) ApproxEqual(o Vector3, tol float64) bool {
	return scalar.EqualWithinAbs(v.X, o.X, tol) &&
		scalar.EqualWithinAbs(v.Y, o.Y, tol) &&
		scalar.EqualWithinAbs(v.Z, o.Z, tol)
}

func (v Vector3) Interpolate(end Vector3, ratio float64) Vector3 {
	return v.Scale(1 - ratio).Add(end.Scale(ratio))
}

func (v Vector3) Difference(end Vector3) Vector3 {
	return end.Sub(v)
}

func (v Vector3) Validate() error {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return ErrNotFinite
		}
	}

	return nil
}
