package main

import (
	"os"
	"strconv"
	"strings"
)

// Built-in defaults, overridable through the environment (or a .env
// file loaded at startup) and again through flags.
const (
	defaultSolver  = "psi4"
	defaultMemory  = "1gb"
	defaultThreads = 1
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// resolveSolver picks the solver executable: the flag when given,
// then REFDATA_SOLVER, then the built-in default.
func resolveSolver(flag string) string {
	if flag != "" {
		return flag
	}
	return envOr("REFDATA_SOLVER", defaultSolver)
}

func resolveMemory(flag string) string {
	if flag != "" {
		return flag
	}
	return envOr("REFDATA_MEMORY", defaultMemory)
}

func resolveThreads(flag int) int {
	if flag != 0 {
		return flag
	}
	return envOrInt("REFDATA_THREADS", defaultThreads)
}

// resolveFitter picks the fitting command as an argv: the flag when
// given, then REFDATA_FITTER (both whitespace-split), then this
// binary's own fit-one subcommand. The default is built as an
// explicit argv so a binary path containing spaces stays intact.
func resolveFitter(flag string) ([]string, error) {
	if args := strings.Fields(flag); len(args) > 0 {
		return args, nil
	}
	if args := strings.Fields(os.Getenv("REFDATA_FITTER")); len(args) > 0 {
		return args, nil
	}
	self, err := os.Executable()
	if err != nil {
		return nil, err
	}
	return []string{self, "fit-one"}, nil
}
