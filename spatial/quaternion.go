package spatial

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/quat"
	"gopkg.in/yaml.v3"
)

const (
	slerpLinearThreshold = 1 - 1e-9
	minQuaternionNorm    = 1e-12
)

// Quaternion is a rotation stored as a quaternion with Real as the scalar
// part. Interpolation and differencing normalize their inputs, so any non-zero
// quaternion is accepted.
type Quaternion quat.Number

func NewQuaternion(w, x, y, z float64) Quaternion {
	return Quaternion{Real: w, Imag: x, Jmag: y, Kmag: z}
}

func IdentityQuaternion() Quaternion {
	return Quaternion{Real: 1}
}

// AxisAngle returns the rotation of angle radians about axis. A zero axis
// yields the identity.
func AxisAngle(axis Vector3, angle float64) Quaternion {
	n := axis.Norm()
	if n == 0 {
		return IdentityQuaternion()
	}

	s, c := math.Sincos(angle / 2)
	a := axis.Scale(s / n)

	return Quaternion{Real: c, Imag: a.X, Jmag: a.Y, Kmag: a.Z}
}

// QuaternionFromRotationVector is the exponential map: rv is angle*axis.
func QuaternionFromRotationVector(rv Vector3) Quaternion {
	return Quaternion(quat.Exp(quat.Number{Imag: rv.X / 2, Jmag: rv.Y / 2, Kmag: rv.Z / 2}))
}

func (q Quaternion) Number() quat.Number {
	return quat.Number(q)
}

func (q Quaternion) Vec() Vector3 {
	return Vector3{X: q.Imag, Y: q.Jmag, Z: q.Kmag}
}

func (q Quaternion) Norm() float64 {
	return quat.Abs(quat.Number(q))
}

func (q Quaternion) Normalize() Quaternion {
	n := q.Norm()
	if n == 0 {
		return q
	}

	return Quaternion(quat.Scale(1/n, quat.Number(q)))
}

func (q Quaternion) Neg() Quaternion {
	return Quaternion(quat.Scale(-1, quat.Number(q)))
}

func (q Quaternion) Conj() Quaternion {
	return Quaternion(quat.Conj(quat.Number(q)))
}

func (q Quaternion) Inverse() Quaternion {
	return Quaternion(quat.Inv(quat.Number(q)))
}

func (q Quaternion) Mul(o Quaternion) Quaternion {
	return Quaternion(quat.Mul(quat.Number(q), quat.Number(o)))
}

func (q Quaternion) Dot(o Quaternion) float64 {
	return q.Real*o.Real + q.Imag*o.Imag + q.Jmag*o.Jmag + q.Kmag*o.Kmag
}

func (q Quaternion) Rotate(v Vector3) Vector3 {
	u := quat.Number(q.Normalize())
	r := quat.Mul(quat.Mul(u, quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}), quat.Conj(u))

	return Vector3{X: r.Imag, Y: r.Jmag, Z: r.Kmag}
}

// RotationVector is the logarithmic map (angle*axis) taken on the short arc,
// so the angle is always in [0, pi].
func (q Quaternion) RotationVector() Vector3 {
	u := q.Normalize()
	if u.Real < 0 {
		u = u.Neg()
	}

	return Quaternion(quat.Log(quat.Number(u))).Vec().Scale(2)
}

// Angle is the geodesic distance to o in radians.
func (q Quaternion) Angle(o Quaternion) float64 {
	return q.Normalize().Conj().Mul(o.Normalize()).RotationVector().Norm()
}

// SameRotation reports whether q and o describe the same rotation, q and -q
// being equivalent.
func (q Quaternion) SameRotation(o Quaternion, tol float64) bool {
	return scalar.EqualWithinAbs(math.Abs(q.Normalize().Dot(o.Normalize())), 1, tol)
}

func (q Quaternion) ApproxEqual(o Quaternion, tol float64) bool {
	return scalar.EqualWithinAbs(q.Real, o.Real, tol) &&
		scalar.EqualWithinAbs(q.Imag, o.Imag, tol) &&
		scalar.EqualWithinAbs(q.Jmag, o.Jmag, tol) &&
		scalar.EqualWithinAbs(q.Kmag, o.Kmag, tol)
}

// Interpolate is the shortest arc spherical linear interpolation.
func (q Quaternion) Interpolate(end Quaternion, ratio float64) Quaternion {
	q0 := q.Normalize()
	q1 := end.Normalize()

	d := q0.Dot(q1)
	if d < 0 {
		q1 = q1.Neg()
		d = -d
	}

	if d > slerpLinearThreshold {
		return Quaternion(quat.Add(quat.Scale(1-ratio, quat.Number(q0)), quat.Scale(ratio, quat.Number(q1)))).Normalize()
	}

	theta := math.Acos(d)
	sinTheta := math.Sin(theta)
	w0 := math.Sin((1-ratio)*theta) / sinTheta
	w1 := math.Sin(ratio*theta) / sinTheta

	return Quaternion(quat.Add(quat.Scale(w0, quat.Number(q0)), quat.Scale(w1, quat.Number(q1))))
}

// Difference is the rotation vector of q^-1*end, expressed in the frame of q.
func (q Quaternion) Difference(end Quaternion) Vector3 {
	return q.Normalize().Conj().Mul(end.Normalize()).RotationVector()
}

func (q Quaternion) Validate() error {
	if quat.IsNaN(quat.Number(q)) || quat.IsInf(quat.Number(q)) {
		return ErrNotFinite
	}

	if q.Norm() < minQuaternionNorm {
		return ErrInvalidRotation
	}

	return nil
}

// Matrix returns the rotation matrix of the normalized quaternion.
func (q Quaternion) Matrix() Matrix3 {
	u := q.Normalize()
	w, x, y, z := u.Real, u.Imag, u.Jmag, u.Kmag

	return Matrix3{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	}
}

type quaternionCodec struct {
	W float64 `yaml:"w" json:"w"`
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

func (q Quaternion) codec() quaternionCodec {
	return quaternionCodec{W: q.Real, X: q.Imag, Y: q.Jmag, Z: q.Kmag}
}

func (c quaternionCodec) quaternion() Quaternion {
	return NewQuaternion(c.W, c.X, c.Y, c.Z)
}

func (q Quaternion) MarshalYAML() (interface{}, error) {
	return q.codec(), nil
}

func (q *Quaternion) UnmarshalYAML(value *yaml.Node) error {
	var c quaternionCodec

	if err := value.Decode(&c); err != nil {
		return err
	}

	*q = c.quaternion()

	return nil
}

func (q Quaternion) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.codec())
}

func (q *Quaternion) UnmarshalJSON(d []byte) error {
	var c quaternionCodec

	if err := json.Unmarshal(d, &c); err != nil {
		return err
	}

	*q = c.quaternion()

	return nil
}
