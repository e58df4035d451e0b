package ec5

import "math"

// EmbedmentStrength calculates the characteristic embedment strength fh,k
// (N/mm²) of timber under a dowel-type fastener of diameter d (mm)
// fh,k = 0.082·ρk·d^-0.3, EN 1995-1-1 Eq. (8.15)
func EmbedmentStrength(d, rhoK float64) (float64, error) {
	if err := positive("diameter", d); err != nil {
		return 0, err
	}
	if err := positive("rho_k", rhoK); err != nil {
		return 0, err
	}
	return 0.082 * rhoK * math.Pow(d, -0.3), nil
}

// BoltEmbedmentStrength calculates fh,k for bolts
// fh,k = 0.082·(1 - 0.01·d)·ρk, EN 1995-1-1 Eq. (8.32)
func BoltEmbedmentStrength(d, rhoK float64) (float64, error) {
	if err := positive("diameter", d); err != nil {
		return 0, err
	}
	if err := positive("rho_k", rhoK); err != nil {
		return 0, err
	}
	// The diameter correction turns non-positive at d = 100 mm
	if d >= 100 {
		return 0, Errorf(ErrInvalidParameter, "diameter", "%.2f mm, must be below 100 mm", d)
	}
	return 0.082 * (1 - 0.01*d) * rhoK, nil
}

// WithdrawalStrength calculates the characteristic withdrawal strength fax,k
// (N/mm²) of a threaded fastener
// fax,k = 0.52·d^-0.5·ρk^0.8, EN 1995-1-1 Eq. (8.40a)
func WithdrawalStrength(d, rhoK float64) (float64, error) {
	if err := positive("diameter", d); err != nil {
		return 0, err
	}
	if err := positive("rho_k", rhoK); err != nil {
		return 0, err
	}
	return 0.52 * math.Pow(d, -0.5) * math.Pow(rhoK, 0.8), nil
}

// YieldMoment calculates the characteristic yield moment My,k (N·mm)
// My,k = 0.3·fu,k·d^2.6, EN 1995-1-1 Eq. (8.14)
func YieldMoment(d, fuK float64) (float64, error) {
	if err := positive("diameter", d); err != nil {
		return 0, err
	}
	if err := positive("fu_k", fuK); err != nil {
		return 0, err
	}
	return 0.3 * fuK * math.Pow(d, 2.6), nil
}

// DesignValue applies kmod and γM to a characteristic value: Xd = kmod·Xk/γM
func DesignValue(kmod, xk float64) float64 {
	return kmod * xk / GammaM
}

// positive rejects values that are zero, negative or NaN
func positive(field string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return Errorf(ErrInvalidParameter, field, "%g, must be positive", v)
	}
	return nil
}
