package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gonum.org/v1/gonum/optimize"
)

var (
	ErrNoEnergy = errors.New("no total energy in result file")

	energyRe = regexp.MustCompile(`^\s*Total Energy\s*=\s*(\S+)`)
)

// FitOneParams is the environment-style parameter block the fitting
// routine is invoked with.
type FitOneParams struct {
	Din    string
	Geoms  string
	Dir    string
	Method string
	Basis  string
	A1     float64
	A2     float64
}

// FitOneFromEnv assembles the parameter block from REFDATA_FIT_*
// variables
func FitOneFromEnv() (FitOneParams, error) {
	var p FitOneParams
	p.Din = os.Getenv("REFDATA_FIT_DIN")
	p.Geoms = os.Getenv("REFDATA_FIT_GEOMS")
	p.Dir = os.Getenv("REFDATA_FIT_DIR")
	p.Method = os.Getenv("REFDATA_FIT_METHOD")
	p.Basis = os.Getenv("REFDATA_FIT_BASIS")
	if p.Din == "" || p.Dir == "" {
		return p, errors.New("REFDATA_FIT_DIN and REFDATA_FIT_DIR must be set")
	}
	var err error
	if p.A1, err = strconv.ParseFloat(os.Getenv("REFDATA_FIT_A1"), 64); err != nil {
		return p, fmt.Errorf("REFDATA_FIT_A1: %w", err)
	}
	if p.A2, err = strconv.ParseFloat(os.Getenv("REFDATA_FIT_A2"), 64); err != nil {
		return p, fmt.Errorf("REFDATA_FIT_A2: %w", err)
	}
	return p, nil
}

// ReadEnergy extracts the last reported total energy from a solver
// result file
func ReadEnergy(filename string) (float64, error) {
	f, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	result := 0.0
	found := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if m := energyRe.FindStringSubmatch(scanner.Text()); m != nil {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			result, found = v, true
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%s: %w", filename, ErrNoEnergy)
	}
	return result, nil
}

// damp is the Fermi-type damping model fitted against the reference
// magnitudes: a1 is the steepness, a2 the onset.
func damp(a1, a2, e float64) float64 {
	return e / (1 + math.Exp(-a1*(math.Abs(e)-a2)))
}

// FitOne fits the damping parameters for one combination and prints
// the single OK or SKIP report row. Result files without a total
// energy are ignored; zero usable pairs is a SKIP, not a failure.
func FitOne(p FitOneParams, out io.Writer) error {
	ds, err := ParseDin(p.Din)
	if err != nil {
		return err
	}
	var energies, refs []float64
	for _, name := range ds.Names {
		ref, ok := ds.Refs[name]
		if !ok {
			continue
		}
		e, err := ReadEnergy(filepath.Join(p.Dir, name+".dat"))
		if err != nil {
			continue
		}
		energies = append(energies, e)
		refs = append(refs, ref)
	}
	combo := p.Method + "/" + p.Basis
	if len(energies) == 0 {
		fmt.Fprintf(out, "SKIP\t%s\t-\t-\t-\t-\t0\t%s\n", combo, p.Dir)
		return nil
	}
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			var sum float64
			for i, e := range energies {
				r := damp(x[0], x[1], e) - refs[i]
				sum += r * r
			}
			return sum
		},
	}
	result, err := optimize.Minimize(problem, []float64{p.A1, p.A2}, nil, &optimize.NelderMead{})
	if err != nil {
		return fmt.Errorf("fit %s: %w", combo, err)
	}
	a1, a2 := result.X[0], result.X[1]
	var mad, mapd float64
	nonzero := 0
	for i, e := range energies {
		dev := math.Abs(damp(a1, a2, e) - refs[i])
		mad += dev
		if refs[i] != 0 {
			mapd += dev / math.Abs(refs[i])
			nonzero++
		}
	}
	mad /= float64(len(energies))
	if nonzero > 0 {
		mapd = 100 * mapd / float64(nonzero)
	}
	fmt.Fprintf(out, "OK\t%s\t%.6f\t%.6f\t%.6f\t%.4f\t%d\t%s\n",
		combo, a1, a2, mad, mapd, len(energies), p.Dir)
	return nil
}
