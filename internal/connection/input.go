package connection

import (
	"math"

	"github.com/alexiusacademia/gotimber/internal/ec5"
)

// Members holds the thicknesses of the two connected timber members (mm)
type Members struct {
	T1 float64 `json:"thickness1"` // Head-side member
	T2 float64 `json:"thickness2"` // Point-side member
}

// Forces holds the applied forces on the whole connection (N)
type Forces struct {
	ELUTension float64 `json:"elu_tension"`
	ELUShear   float64 `json:"elu_shear"`
	ELSTension float64 `json:"els_tension"` // Reported only
	ELSShear   float64 `json:"els_shear"`   // Reported only
}

// ScrewParams describes the screws (tirefonds) of the connection
type ScrewParams struct {
	Diameter float64 `json:"diameter"` // mm
	Length   float64 `json:"length"`   // mm
	Fuk      float64 `json:"fuk"`      // Tensile strength (N/mm²)
	Angle1   float64 `json:"angle1"`   // Insertion angle to the shear plane (degrees)
	Angle2   float64 `json:"angle2"`   // Reported only
	Count    int     `json:"quantity"`
}

// NailParams describes the nails of the connection
type NailParams struct {
	Diameter float64 `json:"diameter"` // mm
	Length   float64 `json:"length"`   // mm
	Type     string  `json:"type,omitempty"`
	Count    int     `json:"quantity"`
}

// BoltParams describes the bolts of the connection
type BoltParams struct {
	Diameter   float64 `json:"diameter"` // mm
	Grade      string  `json:"class"`
	Count      int     `json:"quantity"`
	WasherSize string  `json:"washer_size,omitempty"`
}

// Input is the full parameter set of one connection check
type Input struct {
	WoodGrade    string           `json:"wood_class"`
	ServiceClass ec5.ServiceClass `json:"service_class"`
	Duration     ec5.LoadDuration `json:"duration"`
	Members      Members          `json:"members"`
	Forces       Forces           `json:"forces"`
	Screw        ScrewParams      `json:"screws"`
	Nail         NailParams       `json:"nails"`
	Bolt         BoltParams       `json:"bolts"`
}

// DefaultInput returns a C24 timber-to-timber connection in service class 1
// under medium-term loading
func DefaultInput() Input {
	return Input{
		WoodGrade:    "C24",
		ServiceClass: ec5.ServiceClass1,
		Duration:     ec5.MediumTerm,
		Members:      Members{T1: 40, T2: 60},
		Forces: Forces{
			ELUTension: 2000,
			ELUShear:   3000,
			ELSTension: 1500,
			ELSShear:   2200,
		},
		Screw: ScrewParams{Diameter: 8, Length: 100, Fuk: 800, Count: 4},
		Nail:  NailParams{Diameter: 4, Length: 100, Type: "smooth", Count: 10},
		Bolt:  BoltParams{Diameter: 12, Grade: "8.8", Count: 4, WasherSize: "M12"},
	}
}

// Conditions holds the values shared by every family of one connection
type Conditions struct {
	Kmod    float64
	Wood    ec5.WoodGrade
	Members Members
	Forces  Forces
}

func (in Input) conditions() (Conditions, error) {
	wood, err := ec5.LookupWoodGrade(in.WoodGrade)
	if err != nil {
		return Conditions{}, err
	}
	kmod, err := ec5.LookupModificationFactor(in.ServiceClass, in.Duration)
	if err != nil {
		return Conditions{}, err
	}
	for _, f := range []struct {
		field string
		v     float64
	}{
		{"forces.elu_tension", in.Forces.ELUTension},
		{"forces.elu_shear", in.Forces.ELUShear},
		{"forces.els_tension", in.Forces.ELSTension},
		{"forces.els_shear", in.Forces.ELSShear},
	} {
		if err := nonNegative(f.field, f.v); err != nil {
			return Conditions{}, err
		}
	}
	return Conditions{Kmod: kmod, Wood: wood, Members: in.Members, Forces: in.Forces}, nil
}

// nonNegative rejects negative, NaN and infinite values
func nonNegative(field string, v float64) error {
	if !(v >= 0) || math.IsInf(v, 0) {
		return ec5.Errorf(ec5.ErrInvalidParameter, field, "%g, must be a finite non-negative number", v)
	}
	return nil
}

// positive rejects zero, negative, NaN and infinite values
func positive(field string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return ec5.Errorf(ec5.ErrInvalidParameter, field, "%g, must be positive", v)
	}
	return nil
}
