package trajstg

import (
	"fmt"
	"strings"

	"github.com/sgostarter/libtrajectory/interp"
)

func NewRecord[T any](timing interp.Timing, samples []*interp.Sample[T]) *Record[T] {
	return (&Record[T]{
		Timing: timing.String(),
		Points: samples,
	}).clone()
}

// Build parses the stored timing and builds an interpolator from the points.
// options are applied after the stored timing.
func Build[T interp.Differentiable[T, U], U interp.Tangent[U]](record *Record[T], options ...interp.Option) (*interp.Interpolator[T, U], error) {
	if record == nil {
		return nil, fmt.Errorf("%w: nil record", interp.ErrInvalidInput)
	}

	timing, err := interp.ParseTiming(record.Timing)
	if err != nil {
		return nil, err
	}

	return interp.NewInterpolatorFromSamples[T, U](record.Points,
		append([]interp.Option{interp.TimingOption(timing)}, options...)...)
}

// FromInterpolator snapshots the points and timing of ip.
func FromInterpolator[T interp.Differentiable[T, U], U interp.Tangent[U]](ip *interp.Interpolator[T, U]) *Record[T] {
	return &Record[T]{
		Timing: ip.Timing().String(),
		Points: ip.Samples(),
	}
}

func (r *Record[T]) clone() *Record[T] {
	if r == nil {
		return nil
	}

	points := make([]*interp.Sample[T], 0, len(r.Points))

	for _, p := range r.Points {
		if p == nil {
			points = append(points, nil)

			continue
		}

		points = append(points, &interp.Sample[T]{At: p.At, V: interp.CloneValue(p.V)})
	}

	return &Record[T]{
		Timing: r.Timing,
		Points: points,
	}
}

func checkKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("%w: %q", ErrBadKey, key)
	}

	return nil
}
