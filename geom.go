package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Geometry holds one parsed structure file: the declared atom count,
// charge and spin multiplicity, and the atom lines verbatim.
type Geometry struct {
	Natoms int
	Charge int
	Mult   int
	Atoms  []string
}

// ReadGeom parses a structure file: line 1 is the atom count, line 2
// is "charge multiplicity" or free text (charge 0, multiplicity 1
// when it does not parse as two integers), the rest is one atom per
// line.
func ReadGeom(filename string) (*Geometry, error) {
	lines, err := ReadFileLines(filename)
	if err != nil {
		return nil, err
	}
	if len(lines) < 1 {
		return nil, fmt.Errorf("%s: empty structure file", filename)
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return nil, fmt.Errorf("%s: bad atom count %q: %w",
			filename, lines[0], err)
	}
	g := &Geometry{Natoms: natoms, Charge: 0, Mult: 1}
	if len(lines) > 1 {
		if fields := SplitLine(lines[1]); len(fields) == 2 {
			c, cerr := strconv.Atoi(fields[0])
			m, merr := strconv.Atoi(fields[1])
			if cerr == nil && merr == nil {
				g.Charge, g.Mult = c, m
			}
		}
	}
	if len(lines) > 2 {
		for _, line := range lines[2:] {
			if strings.TrimSpace(line) == "" {
				continue
			}
			g.Atoms = append(g.Atoms, line)
		}
	}
	return g, nil
}
