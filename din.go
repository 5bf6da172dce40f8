package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrEmptyDataset = errors.New("no records parsed from dataset")

// Dataset is the parsed form of a DIN-style coefficient-reference
// file: the ordered, de-duplicated record names and, for records that
// carry one, the reference magnitude keyed by name.
type Dataset struct {
	Names []string
	Refs  map[string]float64
}

type dinState int

const (
	stateCoeff dinState = iota
	stateName
	stateRef
)

// ParseDin reads a DIN-style dataset file. Records are a coefficient
// line followed by a name line; a coefficient of exactly "0" means
// the name is followed by a reference-value line, any other
// coefficient cycles straight back to the next record. Blank lines
// and #-comments are ignored. The first occurrence of a name wins.
func ParseDin(filename string) (*Dataset, error) {
	lines, err := ReadFileLines(filename)
	if err != nil {
		return nil, err
	}
	ds := &Dataset{Refs: make(map[string]float64)}
	seen := make(map[string]bool)
	state := stateCoeff
	var (
		zeroCoeff bool
		lastName  string
	)
	for i, line := range lines {
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "#") {
			continue
		}
		switch state {
		case stateCoeff:
			zeroCoeff = trim == "0"
			state = stateName
		case stateName:
			lastName = trim
			if !seen[trim] {
				seen[trim] = true
				ds.Names = append(ds.Names, trim)
			}
			if zeroCoeff {
				state = stateRef
			} else {
				state = stateCoeff
			}
		case stateRef:
			v, err := strconv.ParseFloat(trim, 64)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: bad reference value %q: %w",
					filename, i+1, trim, err)
			}
			if _, ok := ds.Refs[lastName]; !ok {
				ds.Refs[lastName] = v
			}
			state = stateCoeff
		}
	}
	if len(ds.Names) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, ErrEmptyDataset)
	}
	return ds, nil
}
