package interp

import (
	"fmt"
	"math"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libtrajectory/spatial"
	"golang.org/x/exp/slices"
)

// Interpolator interpolates a sparse, time keyed set of control points.
// It is immutable once built and safe for concurrent queries. Queries outside
// [StartTime, EndTime] fail with ErrOutOfRange, queries on fewer than two
// points fail with ErrInsufficientData.
type Interpolator[T Differentiable[T, U], U Tangent[U]] struct {
	opts   *Options
	logger l.Wrapper

	times  []float64
	values []T
}

func NewInterpolator[T Differentiable[T, U], U Tangent[U]](points map[float64]T, options ...Option) (*Interpolator[T, U], error) {
	samples := make([]*Sample[T], 0, len(points))
	for at, v := range points {
		samples = append(samples, &Sample[T]{At: at, V: v})
	}

	slices.SortFunc(samples, compareSamples[T])

	return NewInterpolatorFromSamples[T, U](samples, options...)
}

// NewInterpolatorFromSamples builds from samples with strictly increasing
// times. Empty and single point sets are accepted.
func NewInterpolatorFromSamples[T Differentiable[T, U], U Tangent[U]](samples []*Sample[T], options ...Option) (*Interpolator[T, U], error) {
	opts := optionNew(options...)

	impl := &Interpolator[T, U]{
		opts:   opts,
		logger: opts.logger.WithFields(l.StringField(l.ClsKey, "Interpolator")),
	}

	if err := impl.init(samples); err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.IntField("count", len(samples))).Error("invalid points")

		return nil, err
	}

	return impl, nil
}

func (impl *Interpolator[T, U]) init(samples []*Sample[T]) error {
	impl.times = make([]float64, 0, len(samples))
	impl.values = make([]T, 0, len(samples))

	dim := -1

	for idx, sample := range samples {
		if sample == nil {
			return fmt.Errorf("%w: sample %d is nil", ErrInvalidInput, idx)
		}

		if math.IsNaN(sample.At) || math.IsInf(sample.At, 0) {
			return fmt.Errorf("%w: sample %d: time %v is not finite", ErrInvalidInput, idx, sample.At)
		}

		if idx > 0 && sample.At <= impl.times[idx-1] {
			return fmt.Errorf("%w: sample %d: time %v is not after %v", ErrInvalidInput, idx, sample.At, impl.times[idx-1])
		}

		if v, ok := any(sample.V).(Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("%w: sample %d: %w", ErrInvalidInput, idx, err)
			}
		}

		if v, ok := any(sample.V).(sized); ok {
			if dim < 0 {
				dim = v.Len()
			} else if v.Len() != dim {
				return fmt.Errorf("%w: sample %d: %w", ErrInvalidInput, idx, spatial.ErrDimensionMismatch)
			}
		}

		impl.times = append(impl.times, sample.At)
		impl.values = append(impl.values, CloneValue(sample.V))
	}

	return nil
}

// CloneValue deep copies values that own memory, such as spatial.VecN.
func CloneValue[T any](v T) T {
	if c, ok := any(v).(cloner[T]); ok {
		return c.Clone()
	}

	return v
}

func compareSamples[T any](a, b *Sample[T]) int {
	switch {
	case a.At < b.At:
		return -1
	case a.At > b.At:
		return 1
	}

	return 0
}

func (impl *Interpolator[T, U]) Len() int {
	return len(impl.times)
}

func (impl *Interpolator[T, U]) Timing() Timing {
	return impl.opts.timing
}

// StartTime is NaN when there are no points.
func (impl *Interpolator[T, U]) StartTime() float64 {
	if len(impl.times) == 0 {
		return math.NaN()
	}

	return impl.times[0]
}

// EndTime is NaN when there are no points.
func (impl *Interpolator[T, U]) EndTime() float64 {
	if len(impl.times) == 0 {
		return math.NaN()
	}

	return impl.times[len(impl.times)-1]
}

func (impl *Interpolator[T, U]) Points() map[float64]T {
	points := make(map[float64]T, len(impl.times))
	for idx, at := range impl.times {
		points[at] = CloneValue(impl.values[idx])
	}

	return points
}

func (impl *Interpolator[T, U]) Samples() []*Sample[T] {
	samples := make([]*Sample[T], 0, len(impl.times))
	for idx, at := range impl.times {
		samples = append(samples, &Sample[T]{At: at, V: CloneValue(impl.values[idx])})
	}

	return samples
}

func (impl *Interpolator[T, U]) Clone() *Interpolator[T, U] {
	values := make([]T, 0, len(impl.values))
	for _, v := range impl.values {
		values = append(values, CloneValue(v))
	}

	return &Interpolator[T, U]{
		opts:   impl.opts,
		logger: impl.logger,
		times:  append([]float64{}, impl.times...),
		values: values,
	}
}

// AppendPoints returns a new interpolator holding the receiver's points and
// samples. The receiver is left untouched.
func (impl *Interpolator[T, U]) AppendPoints(samples ...*Sample[T]) (*Interpolator[T, U], error) {
	all := impl.Samples()

	for idx, sample := range samples {
		if sample == nil {
			return nil, fmt.Errorf("%w: sample %d is nil", ErrInvalidInput, idx)
		}

		all = append(all, sample)
	}

	slices.SortStableFunc(all, compareSamples[T])

	return NewInterpolatorFromSamples[T, U](all, impl.opts.options()...)
}

func (impl *Interpolator[T, U]) checkTime(t float64) error {
	if len(impl.times) < 2 {
		return fmt.Errorf("%w: %d points, need at least 2", ErrInsufficientData, len(impl.times))
	}

	if math.IsNaN(t) {
		return fmt.Errorf("%w: time is NaN", ErrInvalidInput)
	}

	if t < impl.times[0] || t > impl.times[len(impl.times)-1] {
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrOutOfRange, t, impl.times[0], impl.times[len(impl.times)-1])
	}

	return nil
}

// Index returns i such that [times[i], times[i+1]] brackets t. A time on an
// interior control point selects the interval starting there, the end time
// selects the last interval.
func (impl *Interpolator[T, U]) Index(t float64) (int, error) {
	if err := impl.checkTime(t); err != nil {
		return 0, err
	}

	idx, found := slices.BinarySearch(impl.times, t)
	if !found {
		idx--
	}

	if idx > len(impl.times)-2 {
		idx = len(impl.times) - 2
	}

	return idx, nil
}

func (impl *Interpolator[T, U]) local(idx int, t float64) (s, h float64) {
	h = impl.times[idx+1] - impl.times[idx]
	s = (t - impl.times[idx]) / h

	if s < 0 {
		s = 0
	} else if s > 1 {
		s = 1
	}

	return
}

func (impl *Interpolator[T, U]) Evaluate(t float64) (v T, err error) {
	idx, err := impl.Index(t)
	if err != nil {
		return
	}

	s, _ := impl.local(idx, t)

	return Interpolate(impl.values[idx], impl.values[idx+1], impl.opts.timing.ratio(s)), nil
}

// EvaluateDerivative returns the order-th time derivative at t. With linear
// timing every order above 1 is zero.
func (impl *Interpolator[T, U]) EvaluateDerivative(t float64, order int) (u U, err error) {
	if order < 1 {
		err = fmt.Errorf("%w: derivative order %d", ErrInvalidInput, order)

		return
	}

	idx, err := impl.Index(t)
	if err != nil {
		return
	}

	s, h := impl.local(idx, t)

	return impl.values[idx].Difference(impl.values[idx+1]).Scale(impl.opts.timing.ratioDerivative(s, h, order)), nil
}
