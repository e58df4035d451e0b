package ec5

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Eurocode 5 (EN 1995-1-1) reference data

// GammaM is the partial factor for connection material properties
// EN 1995-1-1 Table 2.3
const GammaM = 1.3

// WoodGrade holds strength and density properties of a timber strength class
// EN 338 (solid timber) and EN 14080 (glulam)
type WoodGrade struct {
	ID      string  `json:"id"`
	Fmk     float64 `json:"fm_k"`     // Bending strength (N/mm²)
	Ft0k    float64 `json:"ft_0_k"`   // Tension strength parallel to grain (N/mm²)
	Fc0k    float64 `json:"fc_0_k"`   // Compression strength parallel to grain (N/mm²)
	Fvk     float64 `json:"fv_k"`     // Shear strength (N/mm²)
	RhoK    float64 `json:"rho_k"`    // Characteristic density (kg/m³)
	RhoMean float64 `json:"rho_mean"` // Mean density (kg/m³)
}

var woodGrades = map[string]WoodGrade{
	"C14":   {ID: "C14", Fmk: 14, Ft0k: 8, Fc0k: 16, Fvk: 1.7, RhoK: 290, RhoMean: 350},
	"C16":   {ID: "C16", Fmk: 16, Ft0k: 10, Fc0k: 17, Fvk: 1.8, RhoK: 310, RhoMean: 370},
	"C18":   {ID: "C18", Fmk: 18, Ft0k: 11, Fc0k: 18, Fvk: 2.0, RhoK: 320, RhoMean: 380},
	"C22":   {ID: "C22", Fmk: 22, Ft0k: 13, Fc0k: 20, Fvk: 2.4, RhoK: 340, RhoMean: 410},
	"C24":   {ID: "C24", Fmk: 24, Ft0k: 14, Fc0k: 21, Fvk: 2.5, RhoK: 350, RhoMean: 420},
	"C27":   {ID: "C27", Fmk: 27, Ft0k: 16, Fc0k: 22, Fvk: 2.8, RhoK: 360, RhoMean: 430},
	"GL20":  {ID: "GL20", Fmk: 20, Ft0k: 16, Fc0k: 20, Fvk: 3.5, RhoK: 340, RhoMean: 370},
	"GL22":  {ID: "GL22", Fmk: 22, Ft0k: 17.6, Fc0k: 22, Fvk: 3.5, RhoK: 370, RhoMean: 410},
	"GL24":  {ID: "GL24", Fmk: 24, Ft0k: 19.2, Fc0k: 24, Fvk: 3.5, RhoK: 385, RhoMean: 420},
	"GL24h": {ID: "GL24h", Fmk: 24, Ft0k: 19.2, Fc0k: 24, Fvk: 3.5, RhoK: 380, RhoMean: 420},
}

// BoltGrade holds the steel properties of a bolt property class
// EN 1993-1-8 Table 3.1
type BoltGrade struct {
	ID     string  `json:"id"`
	Fyb    float64 `json:"fyb"`     // Yield strength (N/mm²)
	Fub    float64 `json:"fub"`     // Ultimate tensile strength (N/mm²)
	AlphaV float64 `json:"alpha_v"` // Shear plane factor
}

var boltGrades = map[string]BoltGrade{
	"4.6":  {ID: "4.6", Fyb: 240, Fub: 400, AlphaV: 0.6},
	"4.8":  {ID: "4.8", Fyb: 320, Fub: 400, AlphaV: 0.5},
	"5.6":  {ID: "5.6", Fyb: 300, Fub: 500, AlphaV: 0.6},
	"5.8":  {ID: "5.8", Fyb: 400, Fub: 500, AlphaV: 0.5},
	"6.8":  {ID: "6.8", Fyb: 480, Fub: 600, AlphaV: 0.6},
	"8.8":  {ID: "8.8", Fyb: 640, Fub: 800, AlphaV: 0.6},
	"10.9": {ID: "10.9", Fyb: 900, Fub: 1000, AlphaV: 0.5},
}

// ServiceClass is the moisture service class (EN 1995-1-1 Section 2.3.1.3)
type ServiceClass int

const (
	ServiceClass1 ServiceClass = 1
	ServiceClass2 ServiceClass = 2
	ServiceClass3 ServiceClass = 3
)

// LoadDuration is the load-duration class (EN 1995-1-1 Table 2.1)
type LoadDuration string

const (
	Permanent     LoadDuration = "permanent"
	LongTerm      LoadDuration = "long_term"
	MediumTerm    LoadDuration = "medium_term"
	ShortTerm     LoadDuration = "short_term"
	Instantaneous LoadDuration = "instantaneous"
)

// loadDurations is ordered from the longest to the shortest duration
var loadDurations = []LoadDuration{Permanent, LongTerm, MediumTerm, ShortTerm, Instantaneous}

// kmod values, EN 1995-1-1 Table 3.1 (solid timber and glulam)
var kmodValues = map[ServiceClass]map[LoadDuration]float64{
	ServiceClass1: {Permanent: 0.6, LongTerm: 0.7, MediumTerm: 0.8, ShortTerm: 0.9, Instantaneous: 1.1},
	ServiceClass2: {Permanent: 0.6, LongTerm: 0.7, MediumTerm: 0.8, ShortTerm: 0.9, Instantaneous: 1.1},
	ServiceClass3: {Permanent: 0.5, LongTerm: 0.55, MediumTerm: 0.65, ShortTerm: 0.7, Instantaneous: 0.9},
}

// LookupWoodGrade returns the properties of the strength class id
func LookupWoodGrade(id string) (WoodGrade, error) {
	g, ok := woodGrades[id]
	if !ok {
		return WoodGrade{}, Errorf(ErrUnknownGrade, "wood_class", "%q", id)
	}
	return g, nil
}

// LookupBoltGrade returns the properties of the bolt property class id
func LookupBoltGrade(id string) (BoltGrade, error) {
	g, ok := boltGrades[id]
	if !ok {
		return BoltGrade{}, Errorf(ErrUnknownGrade, "bolts.class", "%q", id)
	}
	return g, nil
}

// LookupModificationFactor returns kmod for a service class and load duration
func LookupModificationFactor(sc ServiceClass, d LoadDuration) (float64, error) {
	row, ok := kmodValues[sc]
	if !ok {
		return 0, Errorf(ErrInvalidCombination, "service_class", "%d", sc)
	}
	k, ok := row[d]
	if !ok {
		return 0, Errorf(ErrInvalidCombination, "duration", "%q", d)
	}
	return k, nil
}

// WoodGrades lists all wood grades, solid timber before glulam, by bending strength
func WoodGrades() []WoodGrade {
	out := make([]WoodGrade, 0, len(woodGrades))
	for _, g := range woodGrades {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		gi, gj := strings.HasPrefix(out[i].ID, "GL"), strings.HasPrefix(out[j].ID, "GL")
		if gi != gj {
			return !gi
		}
		if out[i].Fmk != out[j].Fmk {
			return out[i].Fmk < out[j].Fmk
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// BoltGrades lists all bolt grades by ascending tensile strength
func BoltGrades() []BoltGrade {
	out := make([]BoltGrade, 0, len(boltGrades))
	for _, g := range boltGrades {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Fub != out[j].Fub {
			return out[i].Fub < out[j].Fub
		}
		return out[i].Fyb < out[j].Fyb
	})
	return out
}

// ServiceClasses lists the service classes in ascending order
func ServiceClasses() []ServiceClass {
	return []ServiceClass{ServiceClass1, ServiceClass2, ServiceClass3}
}

// LoadDurations lists the load-duration classes from permanent to instantaneous
func LoadDurations() []LoadDuration {
	out := make([]LoadDuration, len(loadDurations))
	copy(out, loadDurations)
	return out
}

// ParseServiceClass accepts "1", "2", "3" (optionally prefixed "SC")
func ParseServiceClass(s string) (ServiceClass, error) {
	s = strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "SC")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, Errorf(ErrInvalidCombination, "service_class", "%q", s)
	}
	sc := ServiceClass(n)
	if _, ok := kmodValues[sc]; !ok {
		return 0, Errorf(ErrInvalidCombination, "service_class", "%d", n)
	}
	return sc, nil
}

// ParseLoadDuration accepts the class names with either '_', '-' or ' ' separators
func ParseLoadDuration(s string) (LoadDuration, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for _, d := range loadDurations {
		if string(d) == norm {
			return d, nil
		}
	}
	return "", Errorf(ErrInvalidCombination, "duration", "%q", s)
}

func (sc ServiceClass) String() string {
	return fmt.Sprintf("SC%d", int(sc))
}

// Family identifies a fastener family
type Family string

const (
	Screws Family = "screws"
	Nails  Family = "nails"
	Bolts  Family = "bolts"
)

// Spacing is a linear rule min = Base + Factor·d (mm)
type Spacing struct {
	Base   float64 `json:"base"`
	Factor float64 `json:"factor"`
}

// Min returns the minimum distance for diameter d
func (s Spacing) Min(d float64) float64 {
	return s.Base + s.Factor*d
}

// SpacingRequirement holds the minimum spacing and distance rules of a
// fastener family. EN 1995-1-1 Tables 8.2, 8.4 and 8.6
type SpacingRequirement struct {
	A1  Spacing `json:"a1"`  // Spacing parallel to grain
	A2  Spacing `json:"a2"`  // Spacing perpendicular to grain
	A3t Spacing `json:"a3t"` // Loaded end distance
	A4t Spacing `json:"a4t"` // Loaded edge distance
}

// SpacingMinimums are the evaluated minimum distances (mm)
type SpacingMinimums struct {
	A1  float64 `json:"a1"`
	A2  float64 `json:"a2"`
	A3t float64 `json:"a3t"`
	A4t float64 `json:"a4t"`
}

// Minimums evaluates every rule for diameter d
func (r SpacingRequirement) Minimums(d float64) SpacingMinimums {
	return SpacingMinimums{
		A1:  r.A1.Min(d),
		A2:  r.A2.Min(d),
		A3t: r.A3t.Min(d),
		A4t: r.A4t.Min(d),
	}
}

var spacingRequirements = map[Family]SpacingRequirement{
	Nails: {
		A1:  Spacing{Base: 30, Factor: 7},
		A2:  Spacing{Base: 15, Factor: 9},
		A3t: Spacing{Base: 45, Factor: 36},
		A4t: Spacing{Base: 15, Factor: 9},
	},
	Bolts: {
		A1:  Spacing{Base: 40, Factor: 4},
		A2:  Spacing{Base: 0, Factor: 3},
		A3t: Spacing{Base: 80, Factor: 7},
		A4t: Spacing{Base: 30, Factor: 3},
	},
	Screws: {
		A1:  Spacing{Base: 20, Factor: 4},
		A2:  Spacing{Base: 0, Factor: 3},
		A3t: Spacing{Base: 40, Factor: 7},
		A4t: Spacing{Base: 15, Factor: 3},
	},
}

// SpacingFor returns the spacing rules of a fastener family
func SpacingFor(f Family) (SpacingRequirement, error) {
	r, ok := spacingRequirements[f]
	if !ok {
		return SpacingRequirement{}, Errorf(ErrInvalidParameter, "family", "%q", f)
	}
	return r, nil
}

// ParseFamily accepts the plural family names and their common singular aliases
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "screws", "screw", "tirefonds", "tirefond":
		return Screws, nil
	case "nails", "nail":
		return Nails, nil
	case "bolts", "bolt":
		return Bolts, nil
	}
	return "", Errorf(ErrInvalidParameter, "family", "%q", s)
}
