package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupDataset(t *testing.T) (base, din, geoms string) {
	t.Helper()
	base = t.TempDir()
	din = writeTestFile(t, base, "test.din", "0\nwater\n-5.0\n")
	geoms = filepath.Join(base, "geoms")
	require.NoError(t, os.Mkdir(geoms, 0755))
	writeTestFile(t, geoms, "water.xyz", waterXYZ)
	return base, din, geoms
}

func TestGenerate(t *testing.T) {
	base, din, geoms := setupDataset(t)
	combos := []Combo{{Method: "hf", Basis: "sto-3g", A1: 0.1, A2: 0.2}}
	opts := GenOptions{
		Base:     base,
		Din:      din,
		Geoms:    geoms,
		Template: DefaultDirTemplate,
		Memory:   "1gb",
		Threads:  4,
	}
	var out bytes.Buffer
	require.NoError(t, Generate(opts, combos, &out, zap.NewNop().Sugar()))

	target := filepath.Join(base, "hf", "sto-3g", "water.dat")
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	want := []string{
		"# hf/sto-3g",
		"memory 1gb",
		"set_num_threads(4)",
		"",
		"molecule {",
		"0 1",
		"O          0.0000000000        0.0000000000       -0.0657441568",
		"H          0.0000000000        0.7574590974        0.5217905143",
		"H          0.0000000000       -0.7574590974        0.5217905143",
		"}",
		"",
		"set basis sto-3g",
		"energy('hf')",
	}
	require.Equal(t, strings.Join(want, "\n")+"\n", string(content))
	require.Equal(t, "GEN\thf/sto-3g\t1\t"+filepath.Join(base, "hf", "sto-3g")+"\n",
		out.String())
}

func TestGenerateIdempotent(t *testing.T) {
	base, din, geoms := setupDataset(t)
	combos := []Combo{{Method: "hf", Basis: "sto-3g", A1: 0.1, A2: 0.2}}
	opts := GenOptions{
		Base:     base,
		Din:      din,
		Geoms:    geoms,
		Template: DefaultDirTemplate,
		Memory:   "1gb",
		Threads:  1,
	}
	log := zap.NewNop().Sugar()
	require.NoError(t, Generate(opts, combos, new(bytes.Buffer), log))

	// mark the file so a rewrite would be visible
	target := filepath.Join(base, "hf", "sto-3g", "water.dat")
	require.NoError(t, os.WriteFile(target, []byte("edited\n"), 0644))

	var out bytes.Buffer
	require.NoError(t, Generate(opts, combos, &out, log))
	content, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, "edited\n", string(content), "second run must not rewrite")
	require.True(t, strings.HasPrefix(out.String(), "GEN\thf/sto-3g\t0\t"))

	// overwrite requested: the file is rendered again
	opts.Overwrite = true
	require.NoError(t, Generate(opts, combos, new(bytes.Buffer), log))
	content, err = os.ReadFile(target)
	require.NoError(t, err)
	require.Contains(t, string(content), "molecule {")
}

func TestGenerateMissingStructureIsFatal(t *testing.T) {
	base, _, geoms := setupDataset(t)
	din := writeTestFile(t, base, "two.din", "0\nwater\n-5.0\n0\nmethane\n-17.2\n")
	opts := GenOptions{
		Base:     base,
		Din:      din,
		Geoms:    geoms,
		Template: DefaultDirTemplate,
		Memory:   "1gb",
		Threads:  1,
	}
	err := Generate(opts, []Combo{{Method: "hf", Basis: "sto-3g"}},
		new(bytes.Buffer), zap.NewNop().Sugar())
	require.Error(t, err)
	require.Contains(t, err.Error(), "methane")
}

func TestGenerateMissingGeomDirIsFatal(t *testing.T) {
	base, din, _ := setupDataset(t)
	opts := GenOptions{
		Base:     base,
		Din:      din,
		Geoms:    filepath.Join(base, "nope"),
		Template: DefaultDirTemplate,
	}
	err := Generate(opts, Combos, new(bytes.Buffer), zap.NewNop().Sugar())
	require.Error(t, err)
}

func TestMakeInputFile(t *testing.T) {
	g := &Geometry{Natoms: 1, Charge: 1, Mult: 2, Atoms: []string{"Na 0.0 0.0 0.0"}}
	c := Combo{Method: "pbe0", Basis: "aug-cc-pvdz"}
	got := MakeInputFile(c, g, "4gb", 8)
	want := []string{
		"# pbe0/aug-cc-pvdz",
		"memory 4gb",
		"set_num_threads(8)",
		"",
		"molecule {",
		"1 2",
		"Na 0.0 0.0 0.0",
		"}",
		"",
		"set basis aug-cc-pvdz",
		"energy('pbe0')",
	}
	require.Equal(t, want, got)
}
