package ec5

import "math"

// FailureMode identifies a Johansen failure mechanism
type FailureMode string

const (
	ModeEmbedment1   FailureMode = "embedment_member_1"
	ModeEmbedment2   FailureMode = "embedment_member_2"
	ModeSingleHinge  FailureMode = "single_plastic_hinge"
	ModeDoubleHinge  FailureMode = "double_plastic_hinge"
	ModeNailEmbedded FailureMode = "nail_embedment"
)

// Modes holds the characteristic capacities (N) of the four failure modes
// of a single-shear timber-to-timber connection
type Modes struct {
	Embedment1  float64 `json:"embedment_1"`
	Embedment2  float64 `json:"embedment_2"`
	SingleHinge float64 `json:"single_hinge"`
	DoubleHinge float64 `json:"double_hinge"`
	MyK         float64 `json:"my_k"`
}

// Governing returns the weakest mode and its capacity. Ties resolve to the
// mode listed first.
func (m Modes) Governing() (FailureMode, float64) {
	mode, v := ModeEmbedment1, m.Embedment1
	if m.Embedment2 < v {
		mode, v = ModeEmbedment2, m.Embedment2
	}
	if m.SingleHinge < v {
		mode, v = ModeSingleHinge, m.SingleHinge
	}
	if m.DoubleHinge < v {
		mode, v = ModeDoubleHinge, m.DoubleHinge
	}
	return mode, v
}

// JohansenModes evaluates every failure mode of a dowel-type fastener of
// diameter d through members t1 and t2 (mm).
//
// Both members are assumed to share the embedment strength fhK (single
// species connection, β = 1). Connections mixing wood grades are not
// represented.
func JohansenModes(d, t1, t2, fhK, fuK float64) (Modes, error) {
	for _, p := range []struct {
		field string
		v     float64
	}{
		{"diameter", d},
		{"thickness_1", t1},
		{"thickness_2", t2},
		{"fh_k", fhK},
		{"fu_k", fuK},
	} {
		if err := positive(p.field, p.v); err != nil {
			return Modes{}, err
		}
	}

	myK, err := YieldMoment(d, fuK)
	if err != nil {
		return Modes{}, err
	}

	// Double hinge, EN 1995-1-1 Eq. (8.6f) with β = 1
	double := 2.3 * math.Sqrt(myK*fhK*d)

	// Single hinge in member 1, bounded by the double hinge value
	single := fhK * t1 * d * (math.Sqrt(2+4*myK/(fhK*d*t1*t1)) - 1)

	return Modes{
		Embedment1:  fhK * t1 * d,
		Embedment2:  fhK * t2 * d,
		SingleHinge: math.Min(single, double),
		DoubleHinge: double,
		MyK:         myK,
	}, nil
}

// LateralResistance calculates the characteristic lateral resistance Fv,Rk
// (N) of one fastener as the minimum over the Johansen failure modes
func LateralResistance(d, t1, t2, fhK, fuK float64) (float64, error) {
	m, err := JohansenModes(d, t1, t2, fhK, fuK)
	if err != nil {
		return 0, err
	}
	_, v := m.Governing()
	return v, nil
}
