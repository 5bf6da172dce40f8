package main

import (
	"os"
	"regexp"
	"strings"
)

var spaces = regexp.MustCompile(`\s+`)

// ReadFileLines reads filename and returns its lines with the
// trailing newline stripped.
func ReadFileLines(filename string) ([]string, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return strings.Split(strings.TrimRight(string(bytes), "\n"), "\n"), nil
}

// SplitLine splits line on runs of whitespace
func SplitLine(line string) []string {
	trim := strings.TrimSpace(line)
	if trim == "" {
		return nil
	}
	return strings.Split(spaces.ReplaceAllString(trim, " "), " ")
}

// CopyFile copies the contents of src to dst, creating or truncating
// dst with mode 0644
func CopyFile(src, dst string) error {
	bytes, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, bytes, 0644)
}
