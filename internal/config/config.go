package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by Load
const (
	EnvAuthor    = "GOTIMBER_AUTHOR"
	EnvCompany   = "GOTIMBER_COMPANY"
	EnvAddr      = "GOTIMBER_ADDR"
	EnvRateLimit = "GOTIMBER_RATE_LIMIT"
	EnvRateBurst = "GOTIMBER_RATE_BURST"
)

// Config holds the defaults shared by the commands. Command-line flags
// override every field.
type Config struct {
	Author    string  // Report author
	Company   string  // Report header
	Addr      string  // HTTP listen address
	RateLimit float64 // Requests per second per client
	RateBurst int
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Addr:      ":8080",
		RateLimit: 5,
		RateBurst: 10,
	}
}

// Load reads env files into the process environment, then builds a Config
// from it. Without arguments the optional ".env" of the working directory is
// used; a missing default file is not an error.
func Load(files ...string) (Config, error) {
	err := godotenv.Load(files...)
	if err != nil && (len(files) > 0 || !errors.Is(err, fs.ErrNotExist)) {
		return Config{}, fmt.Errorf("loading env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from an environment lookup function
func FromEnv(getenv func(string) string) (Config, error) {
	c := Default()
	if v := getenv(EnvAuthor); v != "" {
		c.Author = v
	}
	if v := getenv(EnvCompany); v != "" {
		c.Company = v
	}
	if v := getenv(EnvAddr); v != "" {
		c.Addr = v
	}
	if v := getenv(EnvRateLimit); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return Config{}, fmt.Errorf("%s: invalid rate %q", EnvRateLimit, v)
		}
		c.RateLimit = f
	}
	if v := getenv(EnvRateBurst); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("%s: invalid burst %q", EnvRateBurst, v)
		}
		c.RateBurst = n
	}
	return c, nil
}
