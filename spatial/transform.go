package spatial

import (
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// Transform is a rigid transform mapping p to Rotation*p + Translation.
type Transform struct {
	Rotation    Quaternion `yaml:"rotation" json:"rotation"`
	Translation Vector3    `yaml:"translation" json:"translation"`
}

func NewTransform(rotation Quaternion, translation Vector3) Transform {
	return Transform{Rotation: rotation, Translation: translation}
}

func IdentityTransform() Transform {
	return Transform{Rotation: IdentityQuaternion()}
}

// DualQuat returns the unit dual quaternion r + eps*(t*r)/2.
func (x Transform) DualQuat() dualquat.Number {
	r := quat.Number(x.Rotation.Normalize())
	t := quat.Number{Imag: x.Translation.X / 2, Jmag: x.Translation.Y / 2, Kmag: x.Translation.Z / 2}

	return dualquat.Number{Real: r, Dual: quat.Mul(t, r)}
}

func TransformFromDualQuat(d dualquat.Number) Transform {
	n := quat.Abs(d.Real)
	if n == 0 {
		return IdentityTransform()
	}

	r := quat.Scale(1/n, d.Real)
	t := quat.Scale(2, quat.Mul(quat.Scale(1/n, d.Dual), quat.Conj(r)))

	return Transform{
		Rotation:    Quaternion(r),
		Translation: Vector3{X: t.Imag, Y: t.Jmag, Z: t.Kmag},
	}
}

// Compose returns the transform applying o first and then x.
func (x Transform) Compose(o Transform) Transform {
	return TransformFromDualQuat(dualquat.Mul(x.DualQuat(), o.DualQuat()))
}

func (x Transform) Apply(p Vector3) Vector3 {
	d := x.DualQuat()
	pt := dualquat.Number{Real: quat.Number{Real: 1}, Dual: quat.Number{Imag: p.X, Jmag: p.Y, Kmag: p.Z}}
	r := dualquat.Mul(dualquat.Mul(d, pt), dualquat.Conj(d))

	return Vector3{X: r.Dual.Imag, Y: r.Dual.Jmag, Z: r.Dual.Kmag}
}

func (x Transform) Inverse() Transform {
	ri := x.Rotation.Normalize().Conj()

	return Transform{Rotation: ri, Translation: ri.Rotate(x.Translation).Scale(-1)}
}

func (x Transform) ApproxEqual(o Transform, tol float64) bool {
	return x.Rotation.SameRotation(o.Rotation, tol) && x.Translation.ApproxEqual(o.Translation, tol)
}

// Interpolate slerps the rotation and lerps the translation.
func (x Transform) Interpolate(end Transform, ratio float64) Transform {
	return Transform{
		Rotation:    x.Rotation.Interpolate(end.Rotation, ratio),
		Translation: x.Translation.Interpolate(end.Translation, ratio),
	}
}

// Difference returns the rotation vector from x to end in the frame of x and
// the translation difference in the reference frame.
func (x Transform) Difference(end Transform) MotionVec {
	return MotionVec{
		Angular: x.Rotation.Difference(end.Rotation),
		Linear:  end.Translation.Sub(x.Translation),
	}
}

func (x Transform) Validate() error {
	if err := x.Rotation.Validate(); err != nil {
		return err
	}

	return x.Translation.Validate()
}
