package connection

import (
	"github.com/alexiusacademia/gotimber/internal/ec5"
)

// Outcome is the result of one family, or the error that prevented it
type Outcome struct {
	Family ec5.Family
	Result *Result
	Err    error
}

// OK reports whether the family could be computed
func (o Outcome) OK() bool {
	return o.Err == nil && o.Result != nil
}

// Summary holds one outcome per fastener family
type Summary struct {
	Applied float64 // Applied ELU shear (N)
	Screw   Outcome
	Nail    Outcome
	Bolt    Outcome
}

// Outcomes returns the outcomes in display order: screws, nails, bolts
func (s Summary) Outcomes() []Outcome {
	return []Outcome{s.Screw, s.Nail, s.Bolt}
}

// Results maps every successfully computed family to its result
func (s Summary) Results() map[ec5.Family]*Result {
	out := make(map[ec5.Family]*Result, 3)
	for _, o := range s.Outcomes() {
		if o.OK() {
			out[o.Family] = o.Result
		}
	}
	return out
}

// Compliant reports whether every family was computed and complies
func (s Summary) Compliant() bool {
	for _, o := range s.Outcomes() {
		if !o.OK() || !o.Result.Compliant {
			return false
		}
	}
	return true
}

// Fasteners returns the strategy of every family of the input
func (in Input) Fasteners() []Fastener {
	return []Fastener{
		Screw{in.Screw},
		Nail{in.Nail},
		Bolt{in.Bolt},
	}
}

// Evaluate checks a single fastener family of the connection
func Evaluate(in Input, f Fastener) (*Result, error) {
	env, err := in.conditions()
	if err != nil {
		return nil, err
	}
	return evaluate(f, env)
}

// EvaluateAll checks the three fastener families independently. A failure in
// one family is recorded in its outcome and never stops the others.
func EvaluateAll(in Input) Summary {
	s := Summary{Applied: in.Forces.ELUShear}
	for _, f := range in.Fasteners() {
		o := Outcome{Family: f.Family()}
		o.Result, o.Err = Evaluate(in, f)
		switch f.Family() {
		case ec5.Screws:
			s.Screw = o
		case ec5.Nails:
			s.Nail = o
		case ec5.Bolts:
			s.Bolt = o
		}
	}
	return s
}
