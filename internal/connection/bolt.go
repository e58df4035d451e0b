package connection

import "github.com/alexiusacademia/gotimber/internal/ec5"

// Bolt checks bolts loaded in shear
type Bolt struct {
	BoltParams
}

func (b Bolt) Family() ec5.Family { return ec5.Bolts }
func (b Bolt) Count() int         { return b.BoltParams.Count }

// EmbedmentStrength uses the bolt formula with its diameter correction
func (b Bolt) EmbedmentStrength(rhoK float64) (float64, error) {
	return ec5.BoltEmbedmentStrength(b.Diameter, rhoK)
}

// LateralResistance runs the full Johansen check with the fub of the bolt grade
func (b Bolt) LateralResistance(fhK float64, m Members) (Lateral, error) {
	grade, err := ec5.LookupBoltGrade(b.Grade)
	if err != nil {
		return Lateral{}, err
	}
	return johansen(b.Diameter, m, fhK, grade.Fub)
}

func (b Bolt) Verify(env Conditions, r *Result) error {
	util, err := shearUtilization("quantity", env.Forces.ELUShear, r.Capacity)
	if err != nil {
		return err
	}

	r.Details.ShearPerUnit = env.Forces.ELUShear / float64(b.Count())
	r.Utilization = util
	r.Compliant = util <= 100
	return nil
}
