// SPDX-License-Identifier: MIT

// Package config loads lvsparse runtime settings from the environment.
//
// A .env file in the working directory or one of its parents is loaded first
// (github.com/joho/godotenv); variables already set in the process win over
// the file. Every setting has a default, so an empty environment is valid.
//
//	LVSPARSE_BACKEND    pool | group | serial        (pool)
//	LVSPARSE_WORKERS    worker count, 0 = GOMAXPROCS (0)
//	LVSPARSE_GRAIN      pool work-stealing batch, 0 = static chunks (0)
//	LVSPARSE_EPSILON    structural-zero tolerance    (1e-10)
//	LVSPARSE_MATCH      merge | linear               (merge)
//	LVSPARSE_STRATEGY   dot | gustavson              (dot)
//	LVSPARSE_LOG_LEVEL  debug | info | warn | error  (info)
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/katalvlaran/lvsparse/csr"
	"github.com/katalvlaran/lvsparse/dispatch"
	"github.com/katalvlaran/lvsparse/spgemm"
)

// Environment variable names.
const (
	EnvBackend  = "LVSPARSE_BACKEND"
	EnvWorkers  = "LVSPARSE_WORKERS"
	EnvGrain    = "LVSPARSE_GRAIN"
	EnvEpsilon  = "LVSPARSE_EPSILON"
	EnvMatch    = "LVSPARSE_MATCH"
	EnvStrategy = "LVSPARSE_STRATEGY"
	EnvLogLevel = "LVSPARSE_LOG_LEVEL"
)

// envSearchDepth is how many directories Load walks up looking for .env.
const envSearchDepth = 5

// ErrInvalid is returned when a variable holds an unusable value.
var ErrInvalid = errors.New("config: invalid value")

// Config is the effective runtime configuration.
type Config struct {
	Backend  string
	Workers  int
	Grain    int
	Epsilon  float64
	Match    spgemm.Match
	Strategy spgemm.Strategy
	LogLevel slog.Level
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Backend:  dispatch.BackendPool,
		Epsilon:  csr.DefaultEpsilon,
		Match:    spgemm.MatchMerge,
		Strategy: spgemm.StrategyDot,
		LogLevel: slog.LevelInfo,
	}
}

// Load reads .env (if found) and then the process environment.
func Load() (*Config, error) {
	if dir, err := os.Getwd(); err == nil {
		if err = loadEnvFile(dir); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv; unset variables keep their defaults.
func FromEnv(getenv func(string) string) (*Config, error) {
	c := Default()
	var err error

	if v := strings.TrimSpace(getenv(EnvBackend)); v != "" {
		switch strings.ToLower(v) {
		case dispatch.BackendPool, dispatch.BackendGroup, dispatch.BackendSerial:
			c.Backend = strings.ToLower(v)
		default:
			return nil, invalid(EnvBackend, v)
		}
	}
	if c.Workers, err = intVar(getenv, EnvWorkers, 0); err != nil {
		return nil, err
	}
	if c.Grain, err = intVar(getenv, EnvGrain, 0); err != nil {
		return nil, err
	}
	if v := strings.TrimSpace(getenv(EnvEpsilon)); v != "" {
		eps, perr := strconv.ParseFloat(v, 64)
		if perr != nil || eps < 0 || math.IsNaN(eps) || math.IsInf(eps, 0) {
			return nil, invalid(EnvEpsilon, v)
		}
		c.Epsilon = eps
	}
	if v := strings.TrimSpace(getenv(EnvMatch)); v != "" {
		if c.Match, err = spgemm.ParseMatch(strings.ToLower(v)); err != nil {
			return nil, invalid(EnvMatch, v)
		}
	}
	if v := strings.TrimSpace(getenv(EnvStrategy)); v != "" {
		if c.Strategy, err = spgemm.ParseStrategy(strings.ToLower(v)); err != nil {
			return nil, invalid(EnvStrategy, v)
		}
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		if err = c.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, invalid(EnvLogLevel, v)
		}
	}

	return c, nil
}

// OpenDispatcher opens the configured backend. The returned func releases it.
func (c *Config) OpenDispatcher() (dispatch.Dispatcher, func(), error) {
	if c.Backend == dispatch.BackendPool && c.Grain > 0 {
		p := dispatch.NewPool(c.Workers, dispatch.WithGrain(c.Grain))
		return p, p.Close, nil
	}

	return dispatch.Open(c.Backend, c.Workers)
}

// EngineOptions translates the numeric settings into spgemm options.
// The dispatcher is supplied separately because the caller owns its lifetime.
func (c *Config) EngineOptions(d dispatch.Dispatcher) []spgemm.Option {
	return []spgemm.Option{
		spgemm.WithDispatcher(d),
		spgemm.WithEpsilon(c.Epsilon),
		spgemm.WithMatch(c.Match),
		spgemm.WithStrategy(c.Strategy),
	}
}

func intVar(getenv func(string) string, name string, def int) (int, error) {
	v := strings.TrimSpace(getenv(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, invalid(name, v)
	}

	return n, nil
}

func invalid(name, value string) error {
	return fmt.Errorf("%w: %s=%q", ErrInvalid, name, value)
}

// loadEnvFile walks up from dir and loads the first .env it finds.
// godotenv.Load never overrides variables that are already set.
func loadEnvFile(dir string) error {
	for i := 0; i < envSearchDepth; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return godotenv.Load(envPath)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return nil
}
