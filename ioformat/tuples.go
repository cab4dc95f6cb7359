package ioformat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInputMalformed is the sentinel spec.md §7 calls InputMalformed: a
// record's fields are missing, the wrong count, or non-numeric. Every
// malformed-input error the Read* functions return wraps it, so callers can
// test with errors.Is regardless of which record type or field failed. Read
// errors from the underlying reader, and the errors BuildNetwork and
// BuildPlans return, are passed through without it.
var ErrInputMalformed = errors.New("ioformat: malformed input")

// readTuples scans a `#(field1,field2,…)` header followed by one
// parenthesized tuple per line, returning each tuple's comma-split fields.
// Blank lines are skipped; the header's field list is not itself validated
// against the caller's expected arity, since callers check that themselves
// against the parsed row (a header typo shouldn't matter if the data is
// still well-formed).
func readTuples(r io.Reader) ([][]string, error) {
	sc := bufio.NewScanner(r)
	sawHeader := false
	var rows [][]string
	for lineNo := 1; sc.Scan(); lineNo++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !sawHeader {
			if !strings.HasPrefix(line, "#(") || !strings.HasSuffix(line, ")") {
				return nil, fmt.Errorf("%w: line %d: expected a \"#(...)\" header, got %q", ErrInputMalformed, lineNo, line)
			}
			sawHeader = true
			continue
		}
		fields, err := splitTuple(line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInputMalformed, lineNo, err)
		}
		rows = append(rows, fields)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !sawHeader {
		return nil, fmt.Errorf("%w: file has no header line", ErrInputMalformed)
	}
	return rows, nil
}

func splitTuple(line string) ([]string, error) {
	if !strings.HasPrefix(line, "(") || !strings.HasSuffix(line, ")") {
		return nil, fmt.Errorf("expected a parenthesized tuple, got %q", line)
	}
	inner := strings.TrimSpace(line[1 : len(line)-1])
	if inner == "" {
		return nil, fmt.Errorf("empty tuple")
	}
	fields := strings.Split(inner, ",")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields, nil
}

func wantFields(fields []string, n int) error {
	if len(fields) != n {
		return fmt.Errorf("%w: expected %d fields, got %d (%v)", ErrInputMalformed, n, len(fields), fields)
	}
	return nil
}

func wantMinFields(fields []string, n int) error {
	if len(fields) < n {
		return fmt.Errorf("%w: expected at least %d fields, got %d (%v)", ErrInputMalformed, n, len(fields), fields)
	}
	return nil
}

func atoi32(field string) (int32, error) {
	v, err := strconv.ParseInt(field, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: field %q is not an integer", ErrInputMalformed, field)
	}
	return int32(v), nil
}

func atoi(field string) (int, error) {
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("%w: field %q is not an integer", ErrInputMalformed, field)
	}
	return v, nil
}

func atobool(field string) (bool, error) {
	switch field {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("%w: field %q is not a boolean (0 or 1)", ErrInputMalformed, field)
	}
}
