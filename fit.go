package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// fitLineRe is the grammar the fitting routine reports through: one
// tab-delimited OK or SKIP row on stdout.
var fitLineRe = regexp.MustCompile(`^(OK|SKIP)\t`)

// placeholder fills numeric fields of MISSING and FAIL rows
const placeholder = "-"

// FitOptions collects the knobs for one aggregation pass. Fitter is
// the fitting command as an argv.
type FitOptions struct {
	Base     string
	Din      string
	Geoms    string
	Template string
	Fitter   []string
	CSVPath  string
}

// FitRow is one report row. Fields are kept as strings so MISSING
// and FAIL rows can carry the placeholder.
type FitRow struct {
	Status string
	Combo  string
	A1     string
	A2     string
	MAD    string
	MAPD   string
	N      string
	Dir    string
}

func (r FitRow) fields() []string {
	return []string{r.Status, r.Combo, r.A1, r.A2, r.MAD, r.MAPD, r.N, r.Dir}
}

func placeholderRow(status string, c Combo, dir string) FitRow {
	return FitRow{
		Status: status,
		Combo:  c.Name(),
		A1:     placeholder,
		A2:     placeholder,
		MAD:    placeholder,
		MAPD:   placeholder,
		N:      placeholder,
		Dir:    dir,
	}
}

// FitAll walks the combination table: combinations whose result
// directory is absent are recorded MISSING without invoking the
// fitter; the rest are handed to the fitting routine and classified
// from its one-line report. Returns the number of FAIL rows.
func FitAll(opts FitOptions, combos []Combo, out io.Writer, log *zap.SugaredLogger) (int, error) {
	if _, err := os.Stat(opts.Din); err != nil {
		return 0, fmt.Errorf("dataset: %w", err)
	}
	if len(opts.Fitter) == 0 {
		return 0, fmt.Errorf("no fitter command configured")
	}
	var csv *csvReport
	if opts.CSVPath != "" {
		var err error
		csv, err = newCSVReport(opts.CSVPath)
		if err != nil {
			return 0, err
		}
		defer csv.Close()
	}
	failed := 0
	for _, c := range combos {
		row := fitCombo(opts, c, log)
		if row.Status == "FAIL" {
			failed++
		}
		fmt.Fprintln(out, strings.Join(row.fields(), "\t"))
		if csv != nil {
			if err := csv.Write(row); err != nil {
				return failed, err
			}
		}
	}
	return failed, nil
}

func fitCombo(opts FitOptions, c Combo, log *zap.SugaredLogger) FitRow {
	dir := ResultDir(opts.Template, opts.Base, c)
	if _, err := os.Stat(dir); err != nil {
		return placeholderRow("MISSING", c, dir)
	}
	cmd := exec.Command(opts.Fitter[0], opts.Fitter[1:]...)
	cmd.Env = append(os.Environ(),
		"REFDATA_FIT_DIN="+opts.Din,
		"REFDATA_FIT_GEOMS="+opts.Geoms,
		"REFDATA_FIT_DIR="+dir,
		"REFDATA_FIT_METHOD="+c.Method,
		"REFDATA_FIT_BASIS="+c.Basis,
		"REFDATA_FIT_A1="+strconv.FormatFloat(c.A1, 'f', -1, 64),
		"REFDATA_FIT_A2="+strconv.FormatFloat(c.A2, 'f', -1, 64),
	)
	cmd.Stderr = os.Stderr
	res, err := InvokeLastMatch(cmd, fitLineRe)
	if err != nil {
		log.Errorf("%s: fitter: %v", c.Name(), err)
		return placeholderRow("FAIL", c, dir)
	}
	if res.ExitCode != 0 {
		log.Errorf("%s: fitter exit status %d", c.Name(), res.ExitCode)
		return placeholderRow("FAIL", c, dir)
	}
	fields := strings.Split(res.Line, "\t")
	if len(fields) != 8 {
		log.Errorf("%s: unparseable fitter report %q", c.Name(), res.Line)
		return placeholderRow("FAIL", c, dir)
	}
	return FitRow{
		Status: fields[0],
		Combo:  fields[1],
		A1:     fields[2],
		A2:     fields[3],
		MAD:    fields[4],
		MAPD:   fields[5],
		N:      fields[6],
		Dir:    fields[7],
	}
}

// csvReport writes the optional CSV with every field quoted and
// embedded quotes doubled, per the report contract.
type csvReport struct {
	f *os.File
}

var csvHeader = []string{
	"status", "combo", "a1_fit", "a2_fit", "MAD", "MAPD", "n", "result_dir",
}

func newCSVReport(path string) (*csvReport, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	r := &csvReport{f: f}
	if _, err := fmt.Fprintln(f, strings.Join(csvHeader, ",")); err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

func (r *csvReport) Write(row FitRow) error {
	quoted := make([]string, 0, 8)
	for _, field := range row.fields() {
		quoted = append(quoted, csvQuote(field))
	}
	_, err := fmt.Fprintln(r.f, strings.Join(quoted, ","))
	return err
}

func (r *csvReport) Close() error {
	return r.f.Close()
}

func csvQuote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
