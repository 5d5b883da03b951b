package interp

import (
	"math"
	"sync"
	"testing"

	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libtrajectory/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func newScalarInterpolator(t *testing.T, points map[float64]spatial.Scalar, options ...Option) *Interpolator[spatial.Scalar, spatial.Scalar] {
	ip, err := NewInterpolator[spatial.Scalar, spatial.Scalar](points, options...)
	require.Nil(t, err)

	return ip
}

func TestInterpolateFree(t *testing.T) {
	assert.EqualValues(t, 5, Interpolate[spatial.Scalar](0, 10, 0.5))

	q := Interpolate(spatial.IdentityQuaternion(), spatial.AxisAngle(spatial.NewVector3(0, 0, 1), math.Pi), 0.5)
	assert.True(t, q.SameRotation(spatial.AxisAngle(spatial.NewVector3(0, 0, 1), math.Pi/2), tol))
}

func TestInterpolateDerivativeFree(t *testing.T) {
	d, err := InterpolateDerivative[spatial.Scalar, spatial.Scalar](0, 10, 2, 1)
	assert.Nil(t, err)
	assert.EqualValues(t, 5, d)

	d, err = InterpolateDerivative[spatial.Scalar, spatial.Scalar](0, 10, 2, 2)
	assert.Nil(t, err)
	assert.EqualValues(t, 0, d)

	_, err = InterpolateDerivative[spatial.Scalar, spatial.Scalar](0, 10, 2, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = InterpolateDerivative[spatial.Scalar, spatial.Scalar](0, 10, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, commerr.ErrInvalidArgument)

	_, err = InterpolateDerivative[spatial.Scalar, spatial.Scalar](0, 10, math.NaN(), 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	w, err := InterpolateDerivative[spatial.Quaternion, spatial.Vector3](spatial.IdentityQuaternion(),
		spatial.AxisAngle(spatial.NewVector3(1, 0, 0), 1), 0.5, 1)
	assert.Nil(t, err)
	assert.True(t, spatial.NewVector3(2, 0, 0).ApproxEqual(w, tol))

	f, err := InterpolateDerivative[spatial.ForceVec, spatial.ForceVec](spatial.ForceVec{},
		spatial.NewForceVec(spatial.NewVector3(1, 0, 0), spatial.NewVector3(0, 0, 4)), 2, 1)
	assert.Nil(t, err)
	assert.True(t, spatial.NewForceVec(spatial.NewVector3(0.5, 0, 0), spatial.NewVector3(0, 0, 2)).ApproxEqual(f, tol))
}

func TestInterpolatorScalar(t *testing.T) {
	ip := newScalarInterpolator(t, map[float64]spatial.Scalar{0: 0, 1: 10})

	v, err := ip.Evaluate(0.5)
	assert.Nil(t, err)
	assert.EqualValues(t, 5, v)

	d, err := ip.EvaluateDerivative(0.25, 1)
	assert.Nil(t, err)
	assert.EqualValues(t, 10, d)

	d, err = ip.EvaluateDerivative(0.25, 2)
	assert.Nil(t, err)
	assert.EqualValues(t, 0, d)

	_, err = ip.EvaluateDerivative(0.25, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.EqualValues(t, 0, ip.StartTime())
	assert.EqualValues(t, 1, ip.EndTime())
	assert.Equal(t, TimingLinear, ip.Timing())
}

func TestInterpolatorSamplesExact(t *testing.T) {
	points := map[float64]spatial.Scalar{0: 1.1, 0.3: -2.7, 1.7: 3.3, 2: 0.1}
	ip := newScalarInterpolator(t, points)

	for at, want := range points {
		v, err := ip.Evaluate(at)
		assert.Nil(t, err)
		assert.Equal(t, want, v)
	}
}

func TestInterpolatorIndex(t *testing.T) {
	ip := newScalarInterpolator(t, map[float64]spatial.Scalar{0: 0, 1: 1, 2: 4, 3: 9})

	for _, c := range []struct {
		t   float64
		idx int
	}{
		{0, 0}, {0.5, 0}, {1, 1}, {1.999, 1}, {2, 2}, {2.5, 2}, {3, 2},
	} {
		idx, err := ip.Index(c.t)
		assert.Nil(t, err)
		assert.Equal(t, c.idx, idx, "t=%v", c.t)
	}

	_, err := ip.Index(math.NaN())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInterpolatorOutOfRange(t *testing.T) {
	ip := newScalarInterpolator(t, map[float64]spatial.Scalar{0: 0, 1: 10})

	for i := 0; i < 3; i++ {
		_, err := ip.Evaluate(-0.1)
		assert.ErrorIs(t, err, ErrOutOfRange)
		assert.ErrorIs(t, err, commerr.ErrOutOfRange)

		_, err = ip.Evaluate(1.1)
		assert.ErrorIs(t, err, ErrOutOfRange)

		_, err = ip.EvaluateDerivative(1.1, 1)
		assert.ErrorIs(t, err, ErrOutOfRange)

		_, err = ip.Index(-1)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
}

func TestInterpolatorInsufficientData(t *testing.T) {
	empty := newScalarInterpolator(t, nil)
	assert.Equal(t, 0, empty.Len())
	assert.True(t, math.IsNaN(empty.StartTime()))
	assert.True(t, math.IsNaN(empty.EndTime()))

	_, err := empty.Evaluate(0)
	assert.ErrorIs(t, err, ErrInsufficientData)

	single := newScalarInterpolator(t, map[float64]spatial.Scalar{1: 3})
	_, err = single.Evaluate(1)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = single.EvaluateDerivative(1, 1)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = single.Index(1)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestInterpolatorInvalidInput(t *testing.T) {
	logger := l.NewConsoleLoggerWrapper()

	_, err := NewInterpolatorFromSamples[spatial.Scalar, spatial.Scalar]([]*Sample[spatial.Scalar]{
		{At: 0, V: 0}, {At: 0, V: 1},
	}, LoggerOption(logger))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewInterpolatorFromSamples[spatial.Scalar, spatial.Scalar]([]*Sample[spatial.Scalar]{
		{At: 1, V: 0}, {At: 0, V: 1},
	}, LoggerOption(logger))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewInterpolatorFromSamples[spatial.Scalar, spatial.Scalar]([]*Sample[spatial.Scalar]{
		{At: 0, V: 0}, nil,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewInterpolator[spatial.Scalar, spatial.Scalar](map[float64]spatial.Scalar{0: 0, math.NaN(): 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewInterpolator[spatial.Scalar, spatial.Scalar](map[float64]spatial.Scalar{0: 0, math.Inf(1): 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewInterpolator[spatial.Quaternion, spatial.Vector3](map[float64]spatial.Quaternion{
		0: spatial.IdentityQuaternion(), 1: spatial.NewQuaternion(0, 0, 0, 0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, spatial.ErrInvalidRotation)

	_, err = NewInterpolator[spatial.Matrix3, spatial.Vector3](map[float64]spatial.Matrix3{
		0: spatial.IdentityMatrix3(), 1: {{1, 1, 0}, {0, 1, 0}, {0, 0, 1}},
	})
	assert.ErrorIs(t, err, spatial.ErrInvalidRotation)

	_, err = NewInterpolator[spatial.VecN, spatial.VecN](map[float64]spatial.VecN{
		0: {0, 0}, 1: {1, 1, 1},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, spatial.ErrDimensionMismatch)
}

func TestInterpolatorCubic(t *testing.T) {
	ip := newScalarInterpolator(t, map[float64]spatial.Scalar{0: 0, 2: 10, 3: 0}, TimingOption(TimingCubic))
	assert.Equal(t, TimingCubic, ip.Timing())

	v, err := ip.Evaluate(1)
	assert.Nil(t, err)
	assert.InDelta(t, 5, float64(v), tol)

	v, err = ip.Evaluate(0.5)
	assert.Nil(t, err)
	assert.InDelta(t, 1.5625, float64(v), tol)

	for _, at := range []float64{0, 2, 3} {
		d, err := ip.EvaluateDerivative(at, 1)
		assert.Nil(t, err)
		assert.InDelta(t, 0, float64(d), tol)
	}

	d, err := ip.EvaluateDerivative(1, 1)
	assert.Nil(t, err)
	assert.InDelta(t, 7.5, float64(d), tol)

	d, err = ip.EvaluateDerivative(0, 2)
	assert.Nil(t, err)
	assert.InDelta(t, 15, float64(d), tol)

	d, err = ip.EvaluateDerivative(0.3, 3)
	assert.Nil(t, err)
	assert.InDelta(t, -15, float64(d), tol)

	d, err = ip.EvaluateDerivative(0.3, 4)
	assert.Nil(t, err)
	assert.InDelta(t, 0, float64(d), tol)

	const eps = 1e-6

	for _, at := range []float64{0.7, 1.3, 2.4} {
		fp, _ := ip.Evaluate(at + eps)
		fm, _ := ip.Evaluate(at - eps)
		d, err := ip.EvaluateDerivative(at, 1)
		assert.Nil(t, err)
		assert.InDelta(t, float64(fp-fm)/(2*eps), float64(d), 1e-5)
	}
}

func TestInterpolatorQuaternion(t *testing.T) {
	z := spatial.NewVector3(0, 0, 1)
	ip, err := NewInterpolator[spatial.Quaternion, spatial.Vector3](map[float64]spatial.Quaternion{
		0: spatial.IdentityQuaternion(),
		2: spatial.AxisAngle(z, math.Pi/2),
		3: spatial.AxisAngle(z, math.Pi/2).Mul(spatial.AxisAngle(spatial.NewVector3(1, 0, 0), 1)),
	})
	require.Nil(t, err)

	for at := 0.0; at <= 3; at += 0.125 {
		q, err := ip.Evaluate(at)
		assert.Nil(t, err)
		assert.InDelta(t, 1, q.Norm(), tol)
	}

	q, err := ip.Evaluate(1)
	assert.Nil(t, err)
	assert.True(t, q.SameRotation(spatial.AxisAngle(z, math.Pi/4), tol))

	w, err := ip.EvaluateDerivative(1, 1)
	assert.Nil(t, err)
	assert.True(t, spatial.NewVector3(0, 0, math.Pi/4).ApproxEqual(w, tol))

	// body frame angular velocity of the last interval
	w, err = ip.EvaluateDerivative(2.5, 1)
	assert.Nil(t, err)
	assert.True(t, spatial.NewVector3(1, 0, 0).ApproxEqual(w, tol))

	w, err = ip.EvaluateDerivative(1, 2)
	assert.Nil(t, err)
	assert.True(t, spatial.NewVector3(0, 0, 0).ApproxEqual(w, tol))
}

func TestInterpolatorTransform(t *testing.T) {
	z := spatial.NewVector3(0, 0, 1)
	ip, err := NewInterpolator[spatial.Transform, spatial.MotionVec](map[float64]spatial.Transform{
		0: spatial.IdentityTransform(),
		1: spatial.NewTransform(spatial.AxisAngle(z, math.Pi/2), spatial.NewVector3(1, 0, 0)),
	})
	require.Nil(t, err)

	x, err := ip.Evaluate(0.5)
	assert.Nil(t, err)
	assert.True(t, x.Rotation.SameRotation(spatial.AxisAngle(z, math.Pi/4), tol))
	assert.True(t, spatial.NewVector3(0.5, 0, 0).ApproxEqual(x.Translation, tol))

	v, err := ip.EvaluateDerivative(0.5, 1)
	assert.Nil(t, err)
	assert.True(t, spatial.NewMotionVec(spatial.NewVector3(0, 0, math.Pi/2), spatial.NewVector3(1, 0, 0)).ApproxEqual(v, tol))
}

func TestInterpolatorVecNIsolated(t *testing.T) {
	a := spatial.VecN{0, 0}
	ip, err := NewInterpolator[spatial.VecN, spatial.VecN](map[float64]spatial.VecN{0: a, 1: {2, 4}})
	require.Nil(t, err)

	a[0] = 100

	v, err := ip.Evaluate(0.5)
	assert.Nil(t, err)
	assert.True(t, spatial.VecN{1, 2}.ApproxEqual(v, tol))

	ps := ip.Points()
	ps[0][1] = 100

	v, err = ip.Evaluate(0)
	assert.Nil(t, err)
	assert.True(t, spatial.VecN{0, 0}.ApproxEqual(v, tol))
}

func TestInterpolatorAppendPoints(t *testing.T) {
	ip := newScalarInterpolator(t, map[float64]spatial.Scalar{0: 0}, TimingOption(TimingCubic))

	ip2, err := ip.AppendPoints(&Sample[spatial.Scalar]{At: 2, V: 10}, &Sample[spatial.Scalar]{At: 1, V: 5})
	require.Nil(t, err)

	assert.Equal(t, 1, ip.Len())
	assert.Equal(t, 3, ip2.Len())
	assert.Equal(t, TimingCubic, ip2.Timing())

	v, err := ip2.Evaluate(1)
	assert.Nil(t, err)
	assert.EqualValues(t, 5, v)

	_, err = ip2.AppendPoints(&Sample[spatial.Scalar]{At: 1, V: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ip2.AppendPoints(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	c := ip2.Clone()
	assert.Equal(t, ip2.Samples(), c.Samples())
	assert.Equal(t, map[float64]spatial.Scalar{0: 0, 1: 5, 2: 10}, c.Points())
}

func TestInterpolatorConcurrent(t *testing.T) {
	ip := newScalarInterpolator(t, map[float64]spatial.Scalar{0: 0, 1: 10, 2: 0})

	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for j := 0; j < 1000; j++ {
				v, err := ip.Evaluate(0.5)
				assert.Nil(t, err)
				assert.EqualValues(t, 5, v)
			}
		}()
	}

	wg.Wait()
}

func TestParseTiming(t *testing.T) {
	for _, c := range []struct {
		v      interface{}
		timing Timing
	}{
		{nil, TimingLinear}, {"", TimingLinear}, {"Linear", TimingLinear}, {" cubic ", TimingCubic}, {1, TimingCubic}, {0, TimingLinear},
	} {
		timing, err := ParseTiming(c.v)
		assert.Nil(t, err)
		assert.Equal(t, c.timing, timing)
	}

	_, err := ParseTiming("quintic")
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Equal(t, "cubic", TimingCubic.String())
	assert.Equal(t, "Timing(7)", Timing(7).String())
}
