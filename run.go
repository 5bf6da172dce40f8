package main

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// completeRe marks a work file whose solver run already finished
var completeRe = regexp.MustCompile(`^\s*Total Energy\s*=`)

// WorkItem is one unit of solver work discovered in the root
// directory
type WorkItem struct {
	Path string
}

// Complete reports whether the file already contains the completion
// marker
func (w WorkItem) Complete() (bool, error) {
	f, err := os.Open(w.Path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if completeRe.MatchString(scanner.Text()) {
			return true, nil
		}
	}
	return false, scanner.Err()
}

// BackupPath is the pristine copy kept next to the original
func (w WorkItem) BackupPath() string {
	return w.Path + ".orig"
}

// ExecCopyPath returns a fresh disposable-copy name in the same
// directory as the original, so the solver sees consistent relative
// paths
func (w WorkItem) ExecCopyPath() string {
	dir, base := filepath.Split(w.Path)
	return filepath.Join(dir, "."+base+"."+uuid.NewString()+".run")
}

// RunOptions collects the knobs for one batch run
type RunOptions struct {
	Root      string
	Solver    string
	Recursive bool
	Overwrite bool
	DryRun    bool
}

// RunSummary is the accumulated outcome of one batch run
type RunSummary struct {
	Total   int
	Ran     int
	Skipped int
	Failed  int
}

// DiscoverWork returns the eligible work files under root in sorted
// order. Eligible means a regular file named *.dat that is not a
// backup or disposable copy.
func DiscoverWork(root string, recursive bool) ([]WorkItem, error) {
	var paths []string
	if recursive {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && eligible(d.Name()) {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && eligible(e.Name()) {
				paths = append(paths, filepath.Join(root, e.Name()))
			}
		}
	}
	sort.Strings(paths)
	items := make([]WorkItem, len(paths))
	for i, p := range paths {
		items[i] = WorkItem{Path: p}
	}
	return items, nil
}

func eligible(name string) bool {
	return strings.HasSuffix(name, ".dat") && !strings.HasPrefix(name, ".")
}

// RunBatch processes every discovered work file in order: skip if
// already complete, back up once, execute the solver against a
// disposable copy, classify, clean up. One tab-delimited status row
// per file plus a summary row go to out. Item failures never abort
// the batch.
func RunBatch(opts RunOptions, out io.Writer, log *zap.SugaredLogger) (RunSummary, error) {
	var sum RunSummary
	if _, err := os.Stat(opts.Root); err != nil {
		return sum, fmt.Errorf("work directory: %w", err)
	}
	if !opts.DryRun {
		if _, err := exec.LookPath(opts.Solver); err != nil {
			return sum, fmt.Errorf("solver: %w", err)
		}
	}
	items, err := DiscoverWork(opts.Root, opts.Recursive)
	if err != nil {
		return sum, err
	}
	for _, item := range items {
		sum.Total++
		status, note, err := runOne(item, opts)
		if err != nil {
			log.Errorf("%s: %v", item.Path, err)
			status, note = "FAIL", err.Error()
		}
		switch status {
		case "SKIP":
			sum.Skipped++
		case "FAIL":
			sum.Failed++
		default:
			sum.Ran++
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", status, item.Path, note)
	}
	fmt.Fprintf(out, "done\ttotal=%d ran=%d skipped=%d failed=%d\n",
		sum.Total, sum.Ran, sum.Skipped, sum.Failed)
	return sum, nil
}

// runOne handles a single work item. The disposable copy is removed
// on every exit path.
func runOne(item WorkItem, opts RunOptions) (status, note string, err error) {
	if !opts.Overwrite {
		done, err := item.Complete()
		if err != nil {
			return "", "", err
		}
		if done {
			return "SKIP", "already complete", nil
		}
	}
	backup := item.BackupPath()
	if _, err := os.Stat(backup); os.IsNotExist(err) {
		if err := CopyFile(item.Path, backup); err != nil {
			return "", "", err
		}
	}
	execCopy := item.ExecCopyPath()
	if err := CopyFile(item.Path, execCopy); err != nil {
		return "", "", err
	}
	defer os.Remove(execCopy)
	if opts.DryRun {
		return "RUN", fmt.Sprintf("dry run: %s %s %s",
			opts.Solver, execCopy, item.Path), nil
	}
	cmd := exec.Command(opts.Solver, execCopy, item.Path)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "FAIL", fmt.Sprintf("exit status %d", exitErr.ExitCode()), nil
		}
		return "", "", err
	}
	return "OK", "", nil
}
