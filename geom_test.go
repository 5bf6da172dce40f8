package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const waterXYZ = `3
0 1
O          0.0000000000        0.0000000000       -0.0657441568
H          0.0000000000        0.7574590974        0.5217905143
H          0.0000000000       -0.7574590974        0.5217905143
`

func TestReadGeom(t *testing.T) {
	t.Run("charge and multiplicity line", func(t *testing.T) {
		path := writeTestFile(t, t.TempDir(), "water.xyz", waterXYZ)
		got, err := ReadGeom(path)
		require.NoError(t, err)
		want := &Geometry{
			Natoms: 3,
			Charge: 0,
			Mult:   1,
			Atoms: []string{
				"O          0.0000000000        0.0000000000       -0.0657441568",
				"H          0.0000000000        0.7574590974        0.5217905143",
				"H          0.0000000000       -0.7574590974        0.5217905143",
			},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ReadGeom mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("free-text comment line falls back to defaults", func(t *testing.T) {
		path := writeTestFile(t, t.TempDir(), "ion.xyz",
			"1\nsodium cation from crystal structure\nNa 0.0 0.0 0.0\n")
		got, err := ReadGeom(path)
		require.NoError(t, err)
		require.Equal(t, 0, got.Charge)
		require.Equal(t, 1, got.Mult)
		require.Equal(t, []string{"Na 0.0 0.0 0.0"}, got.Atoms)
	})

	t.Run("nonzero charge and multiplicity", func(t *testing.T) {
		path := writeTestFile(t, t.TempDir(), "cation.xyz",
			"1\n1 2\nNa 0.0 0.0 0.0\n")
		got, err := ReadGeom(path)
		require.NoError(t, err)
		require.Equal(t, 1, got.Charge)
		require.Equal(t, 2, got.Mult)
	})

	t.Run("declared count can disagree with atom lines", func(t *testing.T) {
		path := writeTestFile(t, t.TempDir(), "short.xyz",
			"3\n0 1\nO 0.0 0.0 0.0\n")
		got, err := ReadGeom(path)
		require.NoError(t, err)
		require.Equal(t, 3, got.Natoms)
		require.Len(t, got.Atoms, 1)
	})

	t.Run("bad atom count", func(t *testing.T) {
		path := writeTestFile(t, t.TempDir(), "bad.xyz", "three\n0 1\n")
		_, err := ReadGeom(path)
		require.Error(t, err)
	})
}
