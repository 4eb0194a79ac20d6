// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package nomads

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// fillThreshold marks GrADS missing values (9.999e20).
const fillThreshold = 1e20

var (
	ErrNoArrays      = errors.New("response contains no arrays")
	ErrMalformedLine = errors.New("malformed OPeNDAP ASCII line")
)

// array is one variable of an OPeNDAP ASCII response, flattened in row-major order.
type array struct {
	Name   string
	Dims   []int
	Values []float64
}

func (a array) size() int {
	return product(a.Dims)
}

// parseASCII reads a GrADS Data Server ASCII response. Each array starts with a header line like
// "tmp2m, [1][3][4]" followed by its values, either as plain comma separated lines (1-D) or as
// lines prefixed with the leading indices ("[0][2], 281.2, 281.4, ..."). Arrays repeated later in
// the response (map vectors such as lat and lon) keep their first occurrence.
func parseASCII(r io.Reader) (map[string]array, error) {
	arrays := make(map[string]array)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1<<20), 64<<20)

	var current *array
	flush := func() error {
		if current == nil {
			return nil
		}
		if len(current.Values) != current.size() {
			return fmt.Errorf("array %s: got %d values, want %d", current.Name, len(current.Values),
				current.size())
		}
		if _, ok := arrays[current.Name]; !ok {
			arrays[current.Name] = *current
		}
		current = nil
		return nil
	}

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if name, dims, ok := parseHeader(line); ok {
			if err := flush(); err != nil {
				return nil, err
			}
			current = &array{Name: name, Dims: dims, Values: make([]float64, 0, product(dims))}
			continue
		}
		if current == nil {
			// Server messages and the dataset banner precede the first header.
			continue
		}
		values := line
		if strings.HasPrefix(line, "[") {
			idx := strings.Index(line, ",")
			if idx < 0 {
				return nil, fmt.Errorf("%w at line %d: %q", ErrMalformedLine, lineNo, line)
			}
			values = line[idx+1:]
		}
		for _, field := range strings.Split(values, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w at line %d: %s", ErrMalformedLine, lineNo, err)
			}
			if math.Abs(v) >= fillThreshold {
				v = math.NaN()
			}
			current.Values = append(current.Values, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(arrays) == 0 {
		return nil, ErrNoArrays
	}
	return arrays, nil
}

// parseHeader recognises "name, [d1][d2]..." lines.
func parseHeader(line string) (string, []int, bool) {
	name, rest, found := strings.Cut(line, ",")
	if !found {
		return "", nil, false
	}
	name = strings.TrimSpace(name)
	rest = strings.TrimSpace(rest)
	if name == "" || strings.HasPrefix(name, "[") || !strings.HasPrefix(rest, "[") ||
		!strings.HasSuffix(rest, "]") {
		return "", nil, false
	}
	var dims []int
	for _, part := range strings.Split(strings.Trim(rest, "[]"), "][") {
		d, err := strconv.Atoi(part)
		if err != nil || d <= 0 {
			return "", nil, false
		}
		dims = append(dims, d)
	}
	return name, dims, true
}

func product(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}
