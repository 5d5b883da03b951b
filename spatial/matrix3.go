package spatial

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

const rotationTolerance = 1e-6

// Matrix3 is a row major 3x3 matrix, used as a rotation matrix.
type Matrix3 [3][3]float64

func IdentityMatrix3() Matrix3 {
	return Matrix3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

func (m Matrix3) Dense() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2],
	})
}

func (m Matrix3) Transpose() Matrix3 {
	var r Matrix3

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[j][i]
		}
	}

	return r
}

func (m Matrix3) Mul(o Matrix3) Matrix3 {
	var r Matrix3

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				r[i][j] += m[i][k] * o[k][j]
			}
		}
	}

	return r
}

func (m Matrix3) MulVec(v Vector3) Vector3 {
	return Vector3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

func (m Matrix3) ApproxEqual(o Matrix3, tol float64) bool {
	return mat.EqualApprox(m.Dense(), o.Dense(), tol)
}

// IsRotation reports whether m is orthonormal with determinant +1.
func (m Matrix3) IsRotation(tol float64) bool {
	d := m.Dense()

	var p mat.Dense
	p.Mul(d.T(), d)

	if !mat.EqualApprox(&p, mat.NewDiagDense(3, []float64{1, 1, 1}), tol) {
		return false
	}

	return scalar.EqualWithinAbs(mat.Det(d), 1, tol)
}

// Quaternion converts a rotation matrix to a unit quaternion with a
// non-negative scalar part.
func (m Matrix3) Quaternion() Quaternion {
	var q Quaternion

	tr := m[0][0] + m[1][1] + m[2][2]

	switch {
	case tr > 0:
		s := math.Sqrt(tr+1) * 2
		q = NewQuaternion(s/4, (m[2][1]-m[1][2])/s, (m[0][2]-m[2][0])/s, (m[1][0]-m[0][1])/s)
	case m[0][0] > m[1][1] && m[0][0] > m[2][2]:
		s := math.Sqrt(1+m[0][0]-m[1][1]-m[2][2]) * 2
		q = NewQuaternion((m[2][1]-m[1][2])/s, s/4, (m[0][1]+m[1][0])/s, (m[0][2]+m[2][0])/s)
	case m[1][1] > m[2][2]:
		s := math.Sqrt(1+m[1][1]-m[0][0]-m[2][2]) * 2
		q = NewQuaternion((m[0][2]-m[2][0])/s, (m[0][1]+m[1][0])/s, s/4, (m[1][2]+m[2][1])/s)
	default:
		s := math.Sqrt(1+m[2][2]-m[0][0]-m[1][1]) * 2
		q = NewQuaternion((m[1][0]-m[0][1])/s, (m[0][2]+m[2][0])/s, (m[1][2]+m[2][1])/s, s/4)
	}

	q = q.Normalize()
	if q.Real < 0 {
		q = q.Neg()
	}

	return q
}

func (m Matrix3) Interpolate(end Matrix3, ratio float64) Matrix3 {
	return m.Quaternion().Interpolate(end.Quaternion(), ratio).Matrix()
}

// Difference is the rotation vector of m^T*end, expressed in the frame of m.
func (m Matrix3) Difference(end Matrix3) Vector3 {
	return m.Transpose().Mul(end).Quaternion().RotationVector()
}

func (m Matrix3) Validate() error {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.IsNaN(m[i][j]) || math.IsInf(m[i][j], 0) {
				return ErrNotFinite
			}
		}
	}

	if !m.IsRotation(rotationTolerance) {
		return ErrInvalidRotation
	}

	return nil
}
