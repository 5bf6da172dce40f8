package main

import (
	"bufio"
	"os/exec"
	"regexp"
	"strings"
)

// InvokeResult is the classified outcome of one external invocation:
// the last stdout line matching the grammar (empty when none did) and
// the process exit code.
type InvokeResult struct {
	Line     string
	ExitCode int
}

// InvokeLastMatch runs cmd, scanning its stdout for lines matching
// grammar. The last match wins; everything else on stdout is
// discarded, with no limit on line length so arbitrarily chatty
// diagnostics cannot swallow a later report line. The returned error
// is non-nil only when the process could not be run at all, so a
// nonzero exit still yields a result.
func InvokeLastMatch(cmd *exec.Cmd, grammar *regexp.Regexp) (InvokeResult, error) {
	var res InvokeResult
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return res, err
	}
	if err := cmd.Start(); err != nil {
		return res, err
	}
	reader := bufio.NewReader(stdout)
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\n")
		if grammar.MatchString(line) {
			res.Line = line
		}
		if err != nil {
			break
		}
	}
	if err := cmd.Wait(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}
