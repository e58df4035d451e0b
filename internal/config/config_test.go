package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	c, err := FromEnv(func(string) string { return "" })
	if err != nil {
		t.Fatal(err)
	}
	if c != Default() {
		t.Errorf("got %+v, want defaults %+v", c, Default())
	}
}

func TestFromEnvOverrides(t *testing.T) {
	env := map[string]string{
		EnvAuthor:    "A. Carpenter",
		EnvCompany:   "Timber & Co",
		EnvAddr:      "127.0.0.1:9000",
		EnvRateLimit: "2.5",
		EnvRateBurst: "4",
	}
	c, err := FromEnv(func(k string) string { return env[k] })
	if err != nil {
		t.Fatal(err)
	}
	want := Config{Author: "A. Carpenter", Company: "Timber & Co", Addr: "127.0.0.1:9000", RateLimit: 2.5, RateBurst: 4}
	if c != want {
		t.Errorf("got %+v, want %+v", c, want)
	}
}

func TestFromEnvRejectsInvalidNumbers(t *testing.T) {
	for k, v := range map[string]string{EnvRateLimit: "fast", EnvRateBurst: "-1"} {
		if _, err := FromEnv(func(key string) string {
			if key == k {
				return v
			}
			return ""
		}); err == nil {
			t.Errorf("%s=%q: expected an error", k, v)
		}
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("GOTIMBER_AUTHOR=From File\nGOTIMBER_RATE_BURST=7\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv(EnvAuthor)
		os.Unsetenv(EnvRateBurst)
	})

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Author != "From File" || c.RateBurst != 7 {
		t.Errorf("got %+v", c)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err == nil {
		t.Fatal("expected an error for a missing explicit env file")
	}
}
