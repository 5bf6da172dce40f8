package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

// GenOptions collects the knobs for one generation pass
type GenOptions struct {
	Base      string
	Din       string
	Geoms     string
	Template  string
	Memory    string
	Threads   int
	Overwrite bool
}

// MakeInput concatenates the head, body and foot of an input file
func MakeInput(head, foot, body []string) []string {
	file := make([]string, 0, len(head)+len(body)+len(foot))
	file = append(file, head...)
	file = append(file, body...)
	file = append(file, foot...)
	return file
}

func makeHead(c Combo, g *Geometry, memory string, threads int) []string {
	return []string{
		"# " + c.Name(),
		"memory " + memory,
		"set_num_threads(" + strconv.Itoa(threads) + ")",
		"",
		"molecule {",
		strconv.Itoa(g.Charge) + " " + strconv.Itoa(g.Mult),
	}
}

func makeFoot(c Combo) []string {
	return []string{
		"}",
		"",
		"set basis " + c.Basis,
		"energy('" + c.Method + "')",
	}
}

// MakeInputFile renders one solver input file for a combination and
// geometry: a config block, then the molecule block with the atom
// lines embedded verbatim.
func MakeInputFile(c Combo, g *Geometry, memory string, threads int) []string {
	return MakeInput(makeHead(c, g, memory, threads), makeFoot(c), g.Atoms)
}

// Generate renders one input file per combination x record name,
// creating result directories as needed. A missing structure file
// aborts the whole run; an existing target is skipped unless
// Overwrite is set. One status row per combination goes to out.
func Generate(opts GenOptions, combos []Combo, out io.Writer, log *zap.SugaredLogger) error {
	ds, err := ParseDin(opts.Din)
	if err != nil {
		return err
	}
	if _, err := os.Stat(opts.Geoms); err != nil {
		return fmt.Errorf("structure directory: %w", err)
	}
	for _, c := range combos {
		dir := ResultDir(opts.Template, opts.Base, c)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
		wrote := 0
		for _, name := range ds.Names {
			target := filepath.Join(dir, name+".dat")
			if !opts.Overwrite {
				if _, err := os.Stat(target); err == nil {
					continue
				}
			}
			geomfile := filepath.Join(opts.Geoms, name+".xyz")
			g, err := ReadGeom(geomfile)
			if err != nil {
				return fmt.Errorf("record %s: %w", name, err)
			}
			if g.Natoms != len(g.Atoms) {
				log.Warnf("%s: declared %d atoms but found %d",
					geomfile, g.Natoms, len(g.Atoms))
			}
			lines := MakeInputFile(c, g, opts.Memory, opts.Threads)
			if err := WriteLines(target, lines); err != nil {
				return err
			}
			wrote++
		}
		fmt.Fprintf(out, "GEN\t%s\t%d\t%s\n", c.Name(), wrote, dir)
	}
	return nil
}

// WriteLines joins lines with newlines and writes them to filename
func WriteLines(filename string, lines []string) error {
	var b []byte
	for _, line := range lines {
		b = append(b, line...)
		b = append(b, '\n')
	}
	return os.WriteFile(filename, b, 0644)
}
