package piecewise

import (
	"fmt"
	"math"

	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libtrajectory/interp"
	"golang.org/x/exp/slices"
)

type Segment[T, U any] struct {
	Label string
	Func  interp.Func[T, U]
}

type sized interface {
	Len() int
}

// PiecewiseFunc chains contiguous segments into one trajectory. A time on an
// interior boundary belongs to the later segment.
type PiecewiseFunc[T, U any] struct {
	logger l.Wrapper

	segments []Segment[T, U]
	starts   []float64
	end      float64
}

func NewPiecewiseFunc[T, U any](segments []Segment[T, U], options ...Option) (*PiecewiseFunc[T, U], error) {
	opts := optionNew(options...)

	impl := &PiecewiseFunc[T, U]{
		logger: opts.logger.WithFields(l.StringField(l.ClsKey, "PiecewiseFunc")),
	}

	if err := impl.init(segments); err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.IntField("segments", len(segments))).Error("invalid segments")

		return nil, err
	}

	return impl, nil
}

func (impl *PiecewiseFunc[T, U]) init(segments []Segment[T, U]) error {
	if len(segments) == 0 {
		return fmt.Errorf("%w: no segments", interp.ErrInsufficientData)
	}

	impl.segments = make([]Segment[T, U], 0, len(segments))
	impl.starts = make([]float64, 0, len(segments))

	for idx, segment := range segments {
		if segment.Func == nil {
			return fmt.Errorf("%w: segment %d %q has no func", interp.ErrInvalidInput, idx, segment.Label)
		}

		if n, ok := pointCount(segment.Func); ok && n < 2 {
			return fmt.Errorf("%w: segment %d %q has %d points", interp.ErrInsufficientData, idx, segment.Label, n)
		}

		start, end := segment.Func.StartTime(), segment.Func.EndTime()
		if math.IsNaN(start) || math.IsNaN(end) || math.IsInf(start, 0) || math.IsInf(end, 0) {
			return fmt.Errorf("%w: segment %d %q domain [%v, %v]", interp.ErrInvalidInput, idx, segment.Label, start, end)
		}

		if end <= start {
			return fmt.Errorf("%w: segment %d %q is empty [%v, %v]", interp.ErrInvalidInput, idx, segment.Label, start, end)
		}

		if idx > 0 && start != impl.end {
			kind := "gap"
			if start < impl.end {
				kind = "overlap"
			}

			return fmt.Errorf("%w: %s between segment %d ending %v and segment %d starting %v",
				interp.ErrInvalidInput, kind, idx-1, impl.end, idx, start)
		}

		impl.segments = append(impl.segments, segment)
		impl.starts = append(impl.starts, start)
		impl.end = end
	}

	return nil
}

// pointCount reports the control points of an interpolator segment. Nested
// piecewise functions count segments and were checked when built.
func pointCount[T, U any](f interp.Func[T, U]) (int, bool) {
	if _, nested := f.(*PiecewiseFunc[T, U]); nested {
		return 0, false
	}

	s, ok := f.(sized)
	if !ok {
		return 0, false
	}

	return s.Len(), true
}

func (impl *PiecewiseFunc[T, U]) Len() int {
	return len(impl.segments)
}

func (impl *PiecewiseFunc[T, U]) StartTime() float64 {
	return impl.starts[0]
}

func (impl *PiecewiseFunc[T, U]) EndTime() float64 {
	return impl.end
}

func (impl *PiecewiseFunc[T, U]) Segment(i int) (Segment[T, U], bool) {
	if i < 0 || i >= len(impl.segments) {
		return Segment[T, U]{}, false
	}

	return impl.segments[i], true
}

// Boundaries returns every segment start time followed by the overall end time.
func (impl *PiecewiseFunc[T, U]) Boundaries() []float64 {
	return append(append(make([]float64, 0, len(impl.starts)+1), impl.starts...), impl.end)
}

// SegmentByLabel returns the first segment carrying label.
func (impl *PiecewiseFunc[T, U]) SegmentByLabel(label string) (int, Segment[T, U], bool) {
	for idx, segment := range impl.segments {
		if segment.Label == label {
			return idx, segment, true
		}
	}

	return -1, Segment[T, U]{}, false
}

// Index maps t to the owning segment and the time elapsed since its start.
func (impl *PiecewiseFunc[T, U]) Index(t float64) (segment int, local float64, err error) {
	if math.IsNaN(t) {
		err = fmt.Errorf("%w: time is NaN", interp.ErrInvalidInput)

		return
	}

	if t < impl.starts[0] || t > impl.end {
		err = fmt.Errorf("%w: %v not in [%v, %v]", interp.ErrOutOfRange, t, impl.starts[0], impl.end)

		return
	}

	segment, found := slices.BinarySearch(impl.starts, t)
	if !found {
		segment--
	}

	local = t - impl.starts[segment]

	return
}

func (impl *PiecewiseFunc[T, U]) Evaluate(t float64) (v T, err error) {
	segment, _, err := impl.Index(t)
	if err != nil {
		return
	}

	return impl.segments[segment].Func.Evaluate(t)
}

func (impl *PiecewiseFunc[T, U]) EvaluateDerivative(t float64, order int) (u U, err error) {
	if order < 1 {
		err = fmt.Errorf("%w: derivative order %d", interp.ErrInvalidInput, order)

		return
	}

	segment, _, err := impl.Index(t)
	if err != nil {
		return
	}

	return impl.segments[segment].Func.EvaluateDerivative(t, order)
}
