package cmd

import (
	"github.com/alexiusacademia/gotimber/internal/connection"
	"github.com/alexiusacademia/gotimber/internal/ec5"
	"github.com/spf13/pflag"
)

// connectionFlags holds the connection parameters shared by check, project
// init and the single-family commands. Only flags set on the command line
// override the base input, so a project file can be adjusted from the shell.
type connectionFlags struct {
	wood         string
	serviceClass int
	duration     string
	t1, t2       float64

	eluTension, eluShear float64
	elsTension, elsShear float64

	screwD, screwLength, screwFuk float64
	screwAngle1, screwAngle2      float64
	screwCount                    int

	nailD, nailLength float64
	nailType          string
	nailCount         int

	boltD     float64
	boltGrade string
	boltCount int
	washer    string
}

var connFlags connectionFlags

// registerCommon adds the timber, duration, geometry and force flags
func (f *connectionFlags) registerCommon(fs *pflag.FlagSet) {
	def := connection.DefaultInput()

	// Timber and loading
	fs.StringVarP(&f.wood, "wood", "w", def.WoodGrade, "Timber strength class (C14 … C27, GL20 … GL24h)")
	fs.IntVar(&f.serviceClass, "service-class", int(def.ServiceClass), "Service class (1, 2 or 3)")
	fs.StringVar(&f.duration, "duration", string(def.Duration), "Load duration (permanent, long_term, medium_term, short_term, instantaneous)")

	// Geometry
	fs.Float64Var(&f.t1, "t1", def.Members.T1, "Head-side member thickness (mm)")
	fs.Float64Var(&f.t2, "t2", def.Members.T2, "Point-side member thickness (mm)")

	// Forces on the whole connection
	fs.Float64Var(&f.eluTension, "tension", def.Forces.ELUTension, "ULS tension (N)")
	fs.Float64Var(&f.eluShear, "shear", def.Forces.ELUShear, "ULS shear (N)")
	fs.Float64Var(&f.elsTension, "sls-tension", def.Forces.ELSTension, "SLS tension (N), reported only")
	fs.Float64Var(&f.elsShear, "sls-shear", def.Forces.ELSShear, "SLS shear (N), reported only")
}

func (f *connectionFlags) registerScrew(fs *pflag.FlagSet) {
	def := connection.DefaultInput().Screw
	fs.Float64Var(&f.screwD, "screw-d", def.Diameter, "Screw diameter (mm)")
	fs.Float64Var(&f.screwLength, "screw-length", def.Length, "Screw length (mm)")
	fs.Float64Var(&f.screwFuk, "screw-fuk", def.Fuk, "Screw tensile strength fu,k (N/mm²)")
	fs.Float64Var(&f.screwAngle1, "screw-angle", def.Angle1, "Screw angle to the shear plane (degrees, 0 … 90)")
	fs.Float64Var(&f.screwAngle2, "screw-angle2", def.Angle2, "Second screw angle (degrees), reported only")
	fs.IntVar(&f.screwCount, "screws", def.Count, "Number of screws")
}

func (f *connectionFlags) registerNail(fs *pflag.FlagSet) {
	def := connection.DefaultInput().Nail
	fs.Float64Var(&f.nailD, "nail-d", def.Diameter, "Nail diameter (mm)")
	fs.Float64Var(&f.nailLength, "nail-length", def.Length, "Nail length (mm)")
	fs.StringVar(&f.nailType, "nail-type", def.Type, "Nail type, reported only")
	fs.IntVar(&f.nailCount, "nails", def.Count, "Number of nails")
}

func (f *connectionFlags) registerBolt(fs *pflag.FlagSet) {
	def := connection.DefaultInput().Bolt
	fs.Float64Var(&f.boltD, "bolt-d", def.Diameter, "Bolt diameter (mm)")
	fs.StringVar(&f.boltGrade, "bolt-grade", def.Grade, "Bolt property class (4.6 … 10.9)")
	fs.IntVar(&f.boltCount, "bolts", def.Count, "Number of bolts")
	fs.StringVar(&f.washer, "washer", def.WasherSize, "Washer size, reported only")
}

// registerAll adds every connection flag
func (f *connectionFlags) registerAll(fs *pflag.FlagSet) {
	f.registerCommon(fs)
	f.registerScrew(fs)
	f.registerNail(fs)
	f.registerBolt(fs)
}

// apply overrides the fields of in whose flags were set on the command line
func (f *connectionFlags) apply(fs *pflag.FlagSet, in *connection.Input) error {
	set := func(name string) bool {
		flag := fs.Lookup(name)
		return flag != nil && flag.Changed
	}

	if set("wood") {
		in.WoodGrade = f.wood
	}
	if set("service-class") {
		in.ServiceClass = ec5.ServiceClass(f.serviceClass)
	}
	if set("duration") {
		d, err := ec5.ParseLoadDuration(f.duration)
		if err != nil {
			return err
		}
		in.Duration = d
	}

	floats := []struct {
		name string
		dst  *float64
		src  float64
	}{
		{"t1", &in.Members.T1, f.t1},
		{"t2", &in.Members.T2, f.t2},
		{"tension", &in.Forces.ELUTension, f.eluTension},
		{"shear", &in.Forces.ELUShear, f.eluShear},
		{"sls-tension", &in.Forces.ELSTension, f.elsTension},
		{"sls-shear", &in.Forces.ELSShear, f.elsShear},
		{"screw-d", &in.Screw.Diameter, f.screwD},
		{"screw-length", &in.Screw.Length, f.screwLength},
		{"screw-fuk", &in.Screw.Fuk, f.screwFuk},
		{"screw-angle", &in.Screw.Angle1, f.screwAngle1},
		{"screw-angle2", &in.Screw.Angle2, f.screwAngle2},
		{"nail-d", &in.Nail.Diameter, f.nailD},
		{"nail-length", &in.Nail.Length, f.nailLength},
		{"bolt-d", &in.Bolt.Diameter, f.boltD},
	}
	for _, v := range floats {
		if set(v.name) {
			*v.dst = v.src
		}
	}

	ints := []struct {
		name string
		dst  *int
		src  int
	}{
		{"screws", &in.Screw.Count, f.screwCount},
		{"nails", &in.Nail.Count, f.nailCount},
		{"bolts", &in.Bolt.Count, f.boltCount},
	}
	for _, v := range ints {
		if set(v.name) {
			*v.dst = v.src
		}
	}

	strs := []struct {
		name string
		dst  *string
		src  string
	}{
		{"nail-type", &in.Nail.Type, f.nailType},
		{"bolt-grade", &in.Bolt.Grade, f.boltGrade},
		{"washer", &in.Bolt.WasherSize, f.washer},
	}
	for _, v := range strs {
		if set(v.name) {
			*v.dst = v.src
		}
	}
	return nil
}

// input builds the connection input from the defaults and the flags
func (f *connectionFlags) input(fs *pflag.FlagSet) (connection.Input, error) {
	in := connection.DefaultInput()
	err := f.apply(fs, &in)
	return in, err
}
