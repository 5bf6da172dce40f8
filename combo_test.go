package main

import "testing"

func TestResultDir(t *testing.T) {
	tests := []struct {
		name     string
		template string
		base     string
		combo    Combo
		want     string
	}{
		{
			name:     "default template",
			template: DefaultDirTemplate,
			base:     "/data/fits",
			combo:    Combo{Method: "b3lyp", Basis: "aug-cc-pvdz"},
			want:     "/data/fits/b3lyp/aug-cc-pvdz",
		},
		{
			name:     "flat template",
			template: "{base}/{method}-{basis}",
			base:     "out",
			combo:    Combo{Method: "pbe0", Basis: "aug-cc-pvtz"},
			want:     "out/pbe0-aug-cc-pvtz",
		},
		{
			name:     "template without base",
			template: "results/{method}/{basis}",
			base:     "ignored",
			combo:    Combo{Method: "hf", Basis: "sto-3g"},
			want:     "results/hf/sto-3g",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ResultDir(test.template, test.base, test.combo)
			if got != test.want {
				t.Errorf("got %q, wanted %q", got, test.want)
			}
		})
	}
}

func TestComboName(t *testing.T) {
	c := Combo{Method: "b3lyp", Basis: "aug-cc-pvdz"}
	if got, want := c.Name(), "b3lyp/aug-cc-pvdz"; got != want {
		t.Errorf("got %q, wanted %q", got, want)
	}
}

func TestCombosTableIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Combos {
		if seen[c.Name()] {
			t.Errorf("duplicate combination %s", c.Name())
		}
		seen[c.Name()] = true
	}
}
