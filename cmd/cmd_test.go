package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alexiusacademia/gotimber/internal/connection"
	"github.com/alexiusacademia/gotimber/internal/ec5"
	"github.com/spf13/pflag"
)

func parsedFlags(t *testing.T, args ...string) (*connectionFlags, *pflag.FlagSet) {
	t.Helper()
	f := &connectionFlags{}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.registerAll(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return f, fs
}

func TestFlagsOverrideOnlyWhatIsSet(t *testing.T) {
	f, fs := parsedFlags(t, "--wood", "GL24h", "--screws", "6", "--duration", "short-term", "--bolt-grade", "4.6")

	in := connection.DefaultInput()
	in.Members.T1 = 50 // as loaded from a project file
	if err := f.apply(fs, &in); err != nil {
		t.Fatalf("apply: %v", err)
	}

	if in.WoodGrade != "GL24h" || in.Screw.Count != 6 || in.Duration != ec5.ShortTerm || in.Bolt.Grade != "4.6" {
		t.Errorf("flags not applied: %+v", in)
	}
	if in.Members.T1 != 50 {
		t.Errorf("t1 = %g, unset flag must keep the base value", in.Members.T1)
	}
}

func TestFlagsDefaultInput(t *testing.T) {
	f, fs := parsedFlags(t)
	in, err := f.input(fs)
	if err != nil {
		t.Fatal(err)
	}
	if in != connection.DefaultInput() {
		t.Errorf("input without flags = %+v, want the defaults", in)
	}
}

func TestFlagsRejectUnknownDuration(t *testing.T) {
	f, fs := parsedFlags(t, "--duration", "forever")
	if _, err := f.input(fs); err == nil {
		t.Error("expected an error for an unknown duration")
	}
}

func TestDiameterSweep(t *testing.T) {
	data, skipped, err := diameterSweep(connection.DefaultInput(), ec5.Screws, 6, 10, 2)
	if err != nil || len(skipped) != 0 {
		t.Fatalf("sweep: err %v, skipped %v", err, skipped)
	}
	if len(data.Diameters) != 3 || data.Diameters[2] != 10 {
		t.Fatalf("diameters = %v", data.Diameters)
	}
	for i := 1; i < len(data.Values); i++ {
		if data.Values[i] <= data.Values[i-1] {
			t.Errorf("Fv,Rd should grow with the diameter: %v", data.Values)
		}
	}

	// The default 8 mm screw sits on the curve
	in := connection.DefaultInput()
	r, err := connection.Evaluate(in, fastenerOf(in, ec5.Screws))
	if err != nil {
		t.Fatal(err)
	}
	if got := data.Values[1]; got != r.Details.FvRd {
		t.Errorf("Fv,Rd at 8 mm = %g, want %g", got, r.Details.FvRd)
	}
}

func TestDiameterSweepSkipsRejectedDiameters(t *testing.T) {
	data, skipped, err := diameterSweep(connection.DefaultInput(), ec5.Bolts, 90, 110, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(data.Diameters) != 1 || len(skipped) != 2 {
		t.Errorf("diameters %v, skipped %v", data.Diameters, skipped)
	}

	if _, _, err := diameterSweep(connection.DefaultInput(), ec5.Nails, 5, 4, 1); err == nil {
		t.Error("expected an error for a reversed range")
	}
}

func TestPrintSummaryListsFailedFamilies(t *testing.T) {
	in := connection.DefaultInput()
	in.Bolt.Grade = "12.9"

	var buf bytes.Buffer
	printSummary(&buf, connection.EvaluateAll(in))
	out := buf.String()

	for _, want := range []string{"Tirefonds/Screws", "CONFORME", "✗ bolts.class: unknown grade"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary lacks %q:\n%s", want, out)
		}
	}
}

func TestReportMetaPrecedence(t *testing.T) {
	t.Setenv("GOTIMBER_AUTHOR", "Env Author")
	t.Setenv("GOTIMBER_COMPANY", "Env Co")
	envFile = t.TempDir() + "/missing.env"
	defer func() { envFile = "" }()

	if _, err := reportMeta(nil); err == nil {
		t.Error("an explicit env file that does not exist should fail")
	}
	envFile = ""

	meta, err := reportMeta(nil)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Author != "Env Author" || meta.Company != "Env Co" {
		t.Errorf("meta = %+v", meta)
	}
}
