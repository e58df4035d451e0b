package connection

import (
	"math"

	"github.com/alexiusacademia/gotimber/internal/ec5"
)

const (
	// NailReduction scales the member-1 embedment capacity of a nail
	NailReduction = 0.8

	// MinPenetrationFactor gives the minimum point-side penetration as a
	// multiple of the nail diameter
	MinPenetrationFactor = 8.0
)

// Nail checks smooth nails loaded in shear. Only embedment in member 1
// is considered.
type Nail struct {
	NailParams
}

func (n Nail) Family() ec5.Family { return ec5.Nails }
func (n Nail) Count() int         { return n.NailParams.Count }

func (n Nail) EmbedmentStrength(rhoK float64) (float64, error) {
	return ec5.EmbedmentStrength(n.Diameter, rhoK)
}

// LateralResistance returns Fv,Rk = 0.8·fh,k·t1·d
func (n Nail) LateralResistance(fhK float64, m Members) (Lateral, error) {
	if m.T1 <= 0 || math.IsInf(m.T1, 0) {
		return Lateral{}, ec5.Errorf(ec5.ErrInvalidParameter, "thickness_1", "%g, must be positive", m.T1)
	}
	return Lateral{FvRk: NailReduction * fhK * m.T1 * n.Diameter, Mode: ec5.ModeNailEmbedded}, nil
}

// MinPenetration returns the required point-side penetration 8·d (mm)
func (n Nail) MinPenetration() float64 {
	return MinPenetrationFactor * n.Diameter
}

// Verify checks the shear utilization and the minimum penetration. Both
// must hold for the nails to comply.
func (n Nail) Verify(env Conditions, r *Result) error {
	if err := positive("length", n.Length); err != nil {
		return err
	}
	util, err := shearUtilization("quantity", env.Forces.ELUShear, r.Capacity)
	if err != nil {
		return err
	}

	r.Details.Penetration = n.Length - env.Members.T1
	r.Details.MinPenetration = n.MinPenetration()
	r.Details.ShearPerUnit = env.Forces.ELUShear / float64(n.Count())

	r.Utilization = util
	r.Compliant = util <= 100 && r.Details.Penetration >= r.Details.MinPenetration
	return nil
}
