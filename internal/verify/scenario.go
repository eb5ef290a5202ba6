package verify

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/tools/txtar"
)

// Archive member names.
const (
	InputFile       = "input.cs"
	FixedFile       = "fixed.cs"
	DiagnosticsFile = "diagnostics"
)

// ErrBadScenario reports a scenario archive that cannot be used.
var ErrBadScenario = errors.New("bad scenario")

// Expectation is one expected diagnostic. Line and Column are 1-based.
type Expectation struct {
	RuleID string
	Line   uint32
	Column uint32
}

func (e Expectation) String() string {
	return fmt.Sprintf("%s %d:%d", e.RuleID, e.Line, e.Column)
}

// Scenario is one end-to-end case. An empty Want asserts that no diagnostic
// is produced; a nil Fixed skips the fix comparison.
type Scenario struct {
	Name  string
	Input string
	Want  []Expectation
	Fixed *string
}

// Text returns a pointer to s, for Scenario.Fixed literals.
func Text(s string) *string { return &s }

// Want parses expectations written as "RuleID line:col", one per entry.
func Want(lines ...string) []Expectation {
	out := make([]Expectation, 0, len(lines))
	for _, l := range lines {
		e, err := parseExpectation(l)
		if err != nil {
			panic(err)
		}
		out = append(out, e)
	}
	return out
}

// LoadTxtar reads a scenario archive from disk.
func LoadTxtar(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	return ParseTxtar(path, data)
}

// ParseTxtar builds a scenario from a txtar archive with the members
// input.cs, optional fixed.cs and optional diagnostics. The archive comment,
// when present, is the scenario name.
func ParseTxtar(name string, data []byte) (Scenario, error) {
	ar := txtar.Parse(data)
	sc := Scenario{Name: name}
	if comment := strings.TrimSpace(string(ar.Comment)); comment != "" {
		sc.Name = comment
	}
	haveInput := false
	for _, f := range ar.Files {
		switch f.Name {
		case InputFile:
			sc.Input = string(f.Data)
			haveInput = true
		case FixedFile:
			sc.Fixed = Text(string(f.Data))
		case DiagnosticsFile:
			for i, line := range strings.Split(string(f.Data), "\n") {
				line = strings.TrimSpace(line)
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				e, err := parseExpectation(line)
				if err != nil {
					return Scenario{}, fmt.Errorf("%s: %s line %d: %w", name, DiagnosticsFile, i+1, err)
				}
				sc.Want = append(sc.Want, e)
			}
		default:
			return Scenario{}, fmt.Errorf("%w: %s: unknown member %q", ErrBadScenario, name, f.Name)
		}
	}
	if !haveInput {
		return Scenario{}, fmt.Errorf("%w: %s: no %s member", ErrBadScenario, name, InputFile)
	}
	return sc, nil
}

// parseExpectation reads "RuleID line:col".
func parseExpectation(s string) (Expectation, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Expectation{}, fmt.Errorf("%w: expected \"RuleID line:col\", got %q", ErrBadScenario, s)
	}
	lineText, colText, ok := strings.Cut(fields[1], ":")
	if !ok {
		return Expectation{}, fmt.Errorf("%w: position %q is not line:col", ErrBadScenario, fields[1])
	}
	line, err := strconv.ParseUint(lineText, 10, 32)
	if err != nil {
		return Expectation{}, fmt.Errorf("%w: line %q: %w", ErrBadScenario, lineText, err)
	}
	col, err := strconv.ParseUint(colText, 10, 32)
	if err != nil {
		return Expectation{}, fmt.Errorf("%w: column %q: %w", ErrBadScenario, colText, err)
	}
	return Expectation{RuleID: fields[0], Line: uint32(line), Column: uint32(col)}, nil
}
