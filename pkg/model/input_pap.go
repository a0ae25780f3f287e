package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// InputFromPap reads an instance in the ".pap" text format:
//
//	P 3
//	D 2
//	T 4
//	S 1
//	H 2
//	h
//	2
//	1
//	a
//	5 3
//	...
//	r
//	1 1 0 1
//	...
//
// Labels are ignored, only numeric tokens are read: P, D, T, S and H, then the D required
// periods, the P x D aptitude matrix and the P x T availability matrix, row by row.
func InputFromPap(file string) (ModelInput, error) {
	reader, err := os.Open(file)
	if err != nil {
		return ModelInput{}, fmt.Errorf("cannot read input file: %w", err)
	}
	defer reader.Close()

	return InputFromPapReader(instanceName(file), reader)
}

func InputFromPapReader(name string, reader io.Reader) (ModelInput, error) {
	numbers, err := numericTokens(reader)
	if err != nil {
		return ModelInput{}, err
	}

	next := func(what string) (int, error) {
		if len(numbers) == 0 {
			return 0, fmt.Errorf("%w: unexpected end of input while reading %s", ErrInvalidInput, what)
		}
		value := numbers[0]
		numbers = numbers[1:]
		return value, nil
	}

	rawInput := RawModelInput{Name: name}
	for _, field := range []struct {
		name   string
		target *int
	}{
		{"P", &rawInput.Professors},
		{"D", &rawInput.Disciplines},
		{"T", &rawInput.Slots},
		{"S", &rawInput.Rooms},
		{"H", &rawInput.MaxLoad},
	} {
		if *field.target, err = next(field.name); err != nil {
			return ModelInput{}, err
		}
	}
	if rawInput.Professors <= 0 || rawInput.Disciplines <= 0 || rawInput.Slots <= 0 {
		return ProcessRawInput(rawInput) // Reports the dimension error
	}

	rawInput.Periods = make([]int, rawInput.Disciplines)
	for d := range rawInput.Disciplines {
		if rawInput.Periods[d], err = next(fmt.Sprintf("h[%d]", d)); err != nil {
			return ModelInput{}, err
		}
	}

	if rawInput.Aptitude, err = readMatrix(next, "a", rawInput.Professors, rawInput.Disciplines); err != nil {
		return ModelInput{}, err
	}
	if rawInput.Availability, err = readMatrix(next, "r", rawInput.Professors, rawInput.Slots); err != nil {
		return ModelInput{}, err
	}

	if len(numbers) > 0 {
		return ModelInput{}, fmt.Errorf("%w: %d unexpected trailing values", ErrInvalidInput, len(numbers))
	}

	return ProcessRawInput(rawInput)
}

func readMatrix(next func(string) (int, error), name string, rows, columns int) ([][]int, error) {
	matrix := make([][]int, rows)
	for i := range rows {
		matrix[i] = make([]int, columns)
		for j := range columns {
			value, err := next(fmt.Sprintf("%s[%d][%d]", name, i, j))
			if err != nil {
				return nil, err
			}
			matrix[i][j] = value
		}
	}
	return matrix, nil
}

func numericTokens(reader io.Reader) ([]int, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	scanner.Split(bufio.ScanWords)

	numbers := make([]int, 0)
	for scanner.Scan() {
		for _, token := range strings.Split(scanner.Text(), "=") {
			if value, err := strconv.Atoi(token); err == nil {
				numbers = append(numbers, value)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read input: %w", err)
	}
	return numbers, nil
}
