// Package ids produces the ordered session identifiers to harvest.
package ids

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrEmptyRange is returned when a range contains no identifier.
var ErrEmptyRange = errors.New("empty identifier range")

// Range returns the decimal identifiers start, start+1, ..., end-1.
func Range(start, end int) ([]string, error) {
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: [%d, %d)", ErrEmptyRange, start, end)
	}
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out, nil
}

// FromFile reads one identifier per line. Blank lines and lines starting
// with # are skipped; trailing commas are trimmed.
func FromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var out []string
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = strings.TrimRight(line, ", \t")
		if line == "" {
			continue
		}
		out = append(out, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file at line %d: %w", lineNum, err)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no identifiers found in %s", path)
	}

	return out, nil
}

// sessionPrefix precedes the identifier in failed-sessions log lines.
const sessionPrefix = "Session ID: "

// FromFailureLog extracts the identifiers recorded in a failed-sessions log,
// in file order and without duplicates.
func FromFailureLog(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read failure log: %w", err)
	}

	seen := make(map[string]bool)
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		_, rest, ok := strings.Cut(line, sessionPrefix)
		if !ok {
			continue
		}
		id, _, _ := strings.Cut(rest, " - ")
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no identifiers found in %s", path)
	}
	return out, nil
}
