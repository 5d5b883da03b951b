package spatial

// MotionVec is a spatial velocity: angular part first, linear part second.
type MotionVec struct {
	Angular Vector3 `yaml:"angular" json:"angular"`
	Linear  Vector3 `yaml:"linear" json:"linear"`
}

func NewMotionVec(angular, linear Vector3) MotionVec {
	return MotionVec{Angular: angular, Linear: linear}
}

func (v MotionVec) Add(o MotionVec) MotionVec {
	return MotionVec{Angular: v.Angular.Add(o.Angular), Linear: v.Linear.Add(o.Linear)}
}

func (v MotionVec) Sub(o MotionVec) MotionVec {
	return MotionVec{Angular: v.Angular.Sub(o.Angular), Linear: v.Linear.Sub(o.Linear)}
}

func (v MotionVec) Scale(f float64) MotionVec {
	return MotionVec{Angular: v.Angular.Scale(f), Linear: v.Linear.Scale(f)}
}

func (v MotionVec) Interpolate(end MotionVec, ratio float64) MotionVec {
	return MotionVec{Angular: v.Angular.Interpolate(end.Angular, ratio), Linear: v.Linear.Interpolate(end.Linear, ratio)}
}

func (v MotionVec) Difference(end MotionVec) MotionVec {
	return end.Sub(v)
}

func (v MotionVec) ApproxEqual(o MotionVec, tol float64) bool {
	return v.Angular.ApproxEqual(o.Angular, tol) && v.Linear.ApproxEqual(o.Linear, tol)
}

func (v MotionVec) Validate() error {
	if err := v.Angular.Validate(); err != nil {
		return err
	}

	return v.Linear.Validate()
}

// ForceVec is a spatial force (wrench): couple first, force second. It has no
// geometric constraint and interpolates component wise.
type ForceVec struct {
	Couple Vector3 `yaml:"couple" json:"couple"`
	Force  Vector3 `yaml:"force" json:"force"`
}

func NewForceVec(couple, force Vector3) ForceVec {
	return ForceVec{Couple: couple, Force: force}
}

func (v ForceVec) Add(o ForceVec) ForceVec {
	return ForceVec{Couple: v.Couple.Add(o.Couple), Force: v.Force.Add(o.Force)}
}

func (v ForceVec) Sub(o ForceVec) ForceVec {
	return ForceVec{Couple: v.Couple.Sub(o.Couple), Force: v.Force.Sub(o.Force)}
}

func (v ForceVec) Scale(f float64) ForceVec {
	return ForceVec{Couple: v.Couple.Scale(f), Force: v.Force.Scale(f)}
}

func (v ForceVec) Interpolate(end ForceVec, ratio float64) ForceVec {
	return ForceVec{Couple: v.Couple.Interpolate(end.Couple, ratio), Force: v.Force.Interpolate(end.Force, ratio)}
}

func (v ForceVec) Difference(end ForceVec) ForceVec {
	return end.Sub(v)
}

func (v ForceVec) ApproxEqual(o ForceVec, tol float64) bool {
	return v.Couple.ApproxEqual(o.Couple, tol) && v.Force.ApproxEqual(o.Force, tol)
}

func (v ForceVec) Validate() error {
	if err := v.Couple.Validate(); err != nil {
		return err
	}

	return v.Force.Validate()
}
