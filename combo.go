package main

import "strings"

// DefaultDirTemplate names a combination's result directory relative
// to the pipeline base directory.
const DefaultDirTemplate = "{base}/{method}/{basis}"

// Combo is one (method, basis) combination with its literature-derived
// damping-parameter starting point. The same ordered table drives
// input generation and fitting so both stages address identical
// result directories.
type Combo struct {
	Method string
	Basis  string
	A1     float64
	A2     float64
}

// Name returns the combination identifier used in status rows
func (c Combo) Name() string {
	return c.Method + "/" + c.Basis
}

// Combos is the reference combination table. Starting points are the
// published BJ-damping parameters for each functional.
var Combos = []Combo{
	{"b3lyp", "aug-cc-pvdz", 0.3981, 4.4211},
	{"b3lyp", "aug-cc-pvtz", 0.3981, 4.4211},
	{"blyp", "aug-cc-pvdz", 0.4298, 4.2359},
	{"blyp", "aug-cc-pvtz", 0.4298, 4.2359},
	{"pbe", "aug-cc-pvdz", 0.4289, 4.4407},
	{"pbe", "aug-cc-pvtz", 0.4289, 4.4407},
	{"pbe0", "aug-cc-pvdz", 0.4145, 4.8593},
	{"pbe0", "aug-cc-pvtz", 0.4145, 4.8593},
	{"tpss", "aug-cc-pvdz", 0.4535, 4.4752},
	{"tpss", "aug-cc-pvtz", 0.4535, 4.4752},
}

// ResultDir expands template, substituting {base}, {method} and
// {basis} verbatim.
func ResultDir(template, base string, c Combo) string {
	return strings.NewReplacer(
		"{base}", base,
		"{method}", c.Method,
		"{basis}", c.Basis,
	).Replace(template)
}
