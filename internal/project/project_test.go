package project

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/alexiusacademia/gotimber/internal/connection"
)

func TestRoundTripIsVerbatim(t *testing.T) {
	in := connection.DefaultInput()
	in.Screw.Angle1 = 30
	in.Screw.Angle2 = 15
	in.Nail.Type = "ringed"
	in.Bolt.WasherSize = "M16"

	p := New("Purlin to rafter", in)
	p.Author = "J. Doe"

	path := filepath.Join(t.TempDir(), "nested", "project.json")
	if err := p.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if !reflect.DeepEqual(got, p) {
		t.Errorf("restored project differs:\n got %+v\nwant %+v", got, p)
	}
}

func TestRestoredInputEvaluatesIdentically(t *testing.T) {
	in := connection.DefaultInput()
	in.Bolt.Grade = "unknown"

	var buf bytes.Buffer
	if err := New("", in).Encode(&buf); err != nil {
		t.Fatal(err)
	}
	p, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}

	want := connection.EvaluateAll(in)
	first := connection.EvaluateAll(p.Connection)
	second := connection.EvaluateAll(p.Connection)
	if !reflect.DeepEqual(first, second) {
		t.Error("two evaluations of the restored input differ")
	}
	if !reflect.DeepEqual(first.Results(), want.Results()) {
		t.Error("restored input evaluates differently from the saved one")
	}
	if first.Bolt.Err == nil || first.Bolt.Err.Error() != want.Bolt.Err.Error() {
		t.Errorf("bolt error %v, want %v", first.Bolt.Err, want.Bolt.Err)
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"version":1,"connection":{"wood_clas":"C24"}}`))
	if err == nil {
		t.Fatal("expected an error for a mistyped key")
	}
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"version":99,"connection":{}}`))
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("err = %v, want unsupported version", err)
	}
}

func TestDecodeDefaultsVersion(t *testing.T) {
	p, err := Decode(strings.NewReader(`{"connection":{"wood_class":"GL24h","service_class":2,"duration":"short_term"}}`))
	if err != nil {
		t.Fatal(err)
	}
	if p.Version != FormatVersion || p.Connection.WoodGrade != "GL24h" || p.Connection.ServiceClass != 2 {
		t.Errorf("decoded %+v", p)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
