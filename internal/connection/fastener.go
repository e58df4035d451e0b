package connection

import (
	"errors"
	"math"
	"strings"

	"github.com/alexiusacademia/gotimber/internal/ec5"
)

// Fastener is one fastener family of a connection. The shared evaluation
// pipeline asks it for its embedment strength and lateral resistance model,
// then lets it apply its own loading rule.
type Fastener interface {
	Family() ec5.Family
	Count() int

	// EmbedmentStrength returns fh,k (N/mm²) for timber of density rhoK
	EmbedmentStrength(rhoK float64) (float64, error)

	// LateralResistance returns Fv,Rk (N) of one fastener and the governing mode
	LateralResistance(fhK float64, m Members) (Lateral, error)

	// Verify applies the family's loading rule and fills utilization and
	// compliance of r
	Verify(env Conditions, r *Result) error
}

// Lateral is the lateral resistance of one fastener
type Lateral struct {
	FvRk  float64
	Mode  ec5.FailureMode
	Modes *ec5.Modes // nil unless the Johansen check applies
}

// johansen runs the full Johansen check and keeps every mode
func johansen(d float64, m Members, fhK, fuK float64) (Lateral, error) {
	modes, err := ec5.JohansenModes(d, m.T1, m.T2, fhK, fuK)
	if err != nil {
		return Lateral{}, err
	}
	mode, v := modes.Governing()
	return Lateral{FvRk: v, Mode: mode, Modes: &modes}, nil
}

// Details holds the intermediate values of a family evaluation
type Details struct {
	Kmod           float64         `json:"kmod"`
	RhoK           float64         `json:"rho_k"`
	FhK            float64         `json:"fh_k"`
	FhD            float64         `json:"fh_d"`
	FaxK           float64         `json:"fax_k,omitempty"`
	FaxRd          float64         `json:"fax_rd,omitempty"`
	RopeFactor     float64         `json:"rope_factor,omitempty"`
	FaxRdEff       float64         `json:"fax_rd_eff,omitempty"`
	MyK            float64         `json:"my_k,omitempty"`
	FvRk           float64         `json:"fv_rk"`
	FvRd           float64         `json:"fv_rd"`
	Mode           ec5.FailureMode `json:"mode"`
	Modes          *ec5.Modes      `json:"modes,omitempty"`
	Penetration    float64         `json:"penetration,omitempty"`
	MinPenetration float64         `json:"min_penetration,omitempty"`
	TensionPerUnit float64         `json:"tension_per_fastener,omitempty"`
	ShearPerUnit   float64         `json:"shear_per_fastener,omitempty"`
}

// Result is the capacity check of one fastener family
type Result struct {
	Family      ec5.Family `json:"family"`
	Count       int        `json:"count"`
	Capacity    float64    `json:"capacity"`    // Total design shear capacity (N)
	Applied     float64    `json:"applied"`     // Applied ELU shear (N)
	Utilization float64    `json:"utilization"` // %
	Compliant   bool       `json:"compliant"`
	Details     Details    `json:"details"`
}

// evaluate runs the pipeline shared by all families:
// fh,k → fh,d → Fv,Rk → Fv,Rd → total capacity → family loading rule
func evaluate(f Fastener, env Conditions) (*Result, error) {
	field := string(f.Family()) + ".quantity"
	switch {
	case f.Count() == 0:
		return nil, ec5.Errorf(ec5.ErrDivisionByZero, field, "fastener count is zero")
	case f.Count() < 0:
		return nil, ec5.Errorf(ec5.ErrInvalidParameter, field, "%d, must be positive", f.Count())
	}

	fhK, err := f.EmbedmentStrength(env.Wood.RhoK)
	if err != nil {
		return nil, scoped(f.Family(), err)
	}

	lat, err := f.LateralResistance(fhK, env.Members)
	if err != nil {
		return nil, scoped(f.Family(), err)
	}
	fvRd := ec5.DesignValue(env.Kmod, lat.FvRk)

	r := &Result{
		Family:   f.Family(),
		Count:    f.Count(),
		Capacity: fvRd * float64(f.Count()),
		Applied:  env.Forces.ELUShear,
		Details: Details{
			Kmod: env.Kmod,
			RhoK: env.Wood.RhoK,
			FhK:  fhK,
			FhD:  ec5.DesignValue(env.Kmod, fhK),
			FvRk:  lat.FvRk,
			FvRd:  fvRd,
			Mode:  lat.Mode,
			Modes: lat.Modes,
		},
	}
	if lat.Modes != nil {
		r.Details.MyK = lat.Modes.MyK
	}

	if err := f.Verify(env, r); err != nil {
		return nil, scoped(f.Family(), err)
	}
	return r, nil
}

// shearUtilization is the plain shear check 100·V/capacity
func shearUtilization(field string, applied, capacity float64) (float64, error) {
	if capacity == 0 {
		return 0, ec5.Errorf(ec5.ErrDivisionByZero, field, "design capacity is zero")
	}
	return 100 * applied / capacity, nil
}

// perFastener splits a total connection force between n fasteners
func perFastener(field string, total float64, n int) (float64, error) {
	if n == 0 {
		return 0, ec5.Errorf(ec5.ErrDivisionByZero, field, "fastener count is zero")
	}
	return total / float64(n), nil
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// scoped rewrites the bare field names reported by the formulas into input
// paths such as "bolts.diameter" or "members.thickness1"
func scoped(family ec5.Family, err error) error {
	var e *ec5.Error
	if !errors.As(err, &e) || e.Field == "" {
		return err
	}
	field := e.Field
	switch {
	case field == "thickness_1":
		field = "members.thickness1"
	case field == "thickness_2":
		field = "members.thickness2"
	case field == "rho_k":
		field = "wood_class"
	case !strings.Contains(field, ".") && field != "wood_class":
		field = string(family) + "." + field
	}
	if field == e.Field {
		return err
	}
	return &ec5.Error{Kind: e.Kind, Field: field, Msg: e.Msg}
}
