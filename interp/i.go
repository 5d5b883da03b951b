package interp

// Tangent is the derivative type of an interpolated value.
type Tangent[U any] interface {
	Scale(f float64) U
}

// Value is a type with its own interpolation law. ratio is expected in [0, 1].
type Value[T any] interface {
	Interpolate(end T, ratio float64) T
}

// Differentiable adds the unscaled difference end-start, expressed in the
// tangent space of the value.
type Differentiable[T, U any] interface {
	Value[T]
	Difference(end T) U
}

// Validator is implemented by values that can reject themselves as control
// points, e.g. a non orthonormal rotation matrix.
type Validator interface {
	Validate() error
}

// Func is a trajectory defined on [StartTime, EndTime].
type Func[T, U any] interface {
	StartTime() float64
	EndTime() float64
	Evaluate(t float64) (T, error)
	EvaluateDerivative(t float64, order int) (U, error)
}

type Sample[T any] struct {
	At float64 `yaml:"at" json:"at"`
	V  T       `yaml:"v" json:"v"`
}

type sized interface {
	Len() int
}

type cloner[T any] interface {
	Clone() T
}
