package connection

import (
	"math"

	"github.com/alexiusacademia/gotimber/internal/ec5"
)

// RopeEffectFactor is the withdrawal bonus of an angled screw
const RopeEffectFactor = 0.35

// Screw checks screws (tirefonds) under combined tension and shear
type Screw struct {
	ScrewParams
}

func (s Screw) Family() ec5.Family { return ec5.Screws }
func (s Screw) Count() int         { return s.ScrewParams.Count }

func (s Screw) EmbedmentStrength(rhoK float64) (float64, error) {
	return ec5.EmbedmentStrength(s.Diameter, rhoK)
}

// LateralResistance uses the full Johansen check with the screw's fu,k
func (s Screw) LateralResistance(fhK float64, m Members) (Lateral, error) {
	return johansen(s.Diameter, m, fhK, s.Fuk)
}

// RopeFactor returns 1 + 0.35·sin(α) for an insertion angle α > 0, else 1
func (s Screw) RopeFactor() float64 {
	if s.Angle1 > 0 {
		return 1 + RopeEffectFactor*math.Sin(degToRad(s.Angle1))
	}
	return 1
}

// Verify checks the quadratic tension/shear interaction
// (Fax,Ed/Fax,Rd)² + (Fv,Ed/Fv,Rd)² ≤ 1, EN 1995-1-1 Eq. (8.28)
func (s Screw) Verify(env Conditions, r *Result) error {
	if !(s.Angle1 >= 0 && s.Angle1 <= 90) {
		return ec5.Errorf(ec5.ErrInvalidParameter, "angle1", "%g°, must be within 0..90", s.Angle1)
	}

	faxK, err := ec5.WithdrawalStrength(s.Diameter, env.Wood.RhoK)
	if err != nil {
		return err
	}

	if err := positive("length", s.Length); err != nil {
		return err
	}
	penetration := s.Length - env.Members.T1
	if penetration < 0 {
		return ec5.Errorf(ec5.ErrInvalidParameter, "length", "%g mm is shorter than member 1 (%g mm)", s.Length, env.Members.T1)
	}
	faxRd := ec5.DesignValue(env.Kmod, faxK*math.Pi*s.Diameter*penetration)
	rope := s.RopeFactor()
	faxRdEff := faxRd * rope

	tension, err := perFastener("quantity", env.Forces.ELUTension, s.Count())
	if err != nil {
		return err
	}
	shear, err := perFastener("quantity", env.Forces.ELUShear, s.Count())
	if err != nil {
		return err
	}

	if faxRdEff == 0 {
		return ec5.Errorf(ec5.ErrDivisionByZero, "length", "no penetration into member 2, Fax,Rd is zero")
	}
	if r.Details.FvRd == 0 {
		return ec5.Errorf(ec5.ErrDivisionByZero, "diameter", "Fv,Rd is zero")
	}

	r.Details.FaxK = faxK
	r.Details.FaxRd = faxRd
	r.Details.RopeFactor = rope
	r.Details.FaxRdEff = faxRdEff
	r.Details.Penetration = penetration
	r.Details.TensionPerUnit = tension
	r.Details.ShearPerUnit = shear

	r.Utilization = 100 * math.Sqrt(math.Pow(tension/faxRdEff, 2)+math.Pow(shear/r.Details.FvRd, 2))
	r.Compliant = r.Utilization <= 100
	return nil
}
