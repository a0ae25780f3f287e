package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

var ErrInvalidInput = errors.New("invalid model input")

type RawModelInput struct {
	Name         string
	Professors   int
	Disciplines  int
	Slots        int
	Rooms        int
	MaxLoad      int
	Periods      []int
	Aptitude     [][]int
	Availability [][]int
}

type ModelInput struct {
	Name         string
	Professors   int      // P
	Disciplines  int      // D
	Slots        int      // T
	Rooms        int      // S: at most S disciplines can be given in the same slot
	MaxLoad      int      // H: at most H slots worked per professor
	Periods      []int    // h[d]: slots required by discipline d
	Aptitude     [][]int  // a[p][d]: evaluation of professor p teaching discipline d
	Availability [][]bool // r[p][t]: professor p can work at slot t
}

// InputFromFile reads a JSON instance if the file has a ".json" extension, otherwise a
// ".pap" instance
func InputFromFile(file string) (ModelInput, error) {
	if strings.EqualFold(filepath.Ext(file), ".json") {
		return InputFromJson(file)
	}
	return InputFromPap(file)
}

func InputFromJson(file string) (ModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ModelInput{}, fmt.Errorf("cannot read input file: %w", err)
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ModelInput{}, err
	}

	var rawInput RawModelInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true, // Availability may be given as booleans
		Result:           &rawInput,
	})
	if err != nil {
		return ModelInput{}, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return ModelInput{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if rawInput.Name == "" {
		rawInput.Name = instanceName(file)
	}
	return ProcessRawInput(rawInput)
}

// ProcessRawInput converts the raw availability matrix and validates every dimension of the
// input so that inconsistencies are reported before any search starts
func ProcessRawInput(rawInput RawModelInput) (ModelInput, error) {
	if err := checkMatrix("availability", rawInput.Availability, max(rawInput.Professors, 0), max(rawInput.Slots, 0)); err != nil {
		return ModelInput{}, err
	}
	availability := make([][]bool, len(rawInput.Availability))
	for professor, row := range rawInput.Availability {
		availability[professor] = make([]bool, len(row))
		for slot, value := range row {
			if value != 0 && value != 1 {
				return ModelInput{}, fmt.Errorf("%w: availability[%d][%d] must be 0 or 1 (got %d)", ErrInvalidInput, professor, slot, value)
			}
			availability[professor][slot] = value == 1
		}
	}

	input := ModelInput{
		Name:         rawInput.Name,
		Professors:   rawInput.Professors,
		Disciplines:  rawInput.Disciplines,
		Slots:        rawInput.Slots,
		Rooms:        rawInput.Rooms,
		MaxLoad:      rawInput.MaxLoad,
		Periods:      rawInput.Periods,
		Aptitude:     rawInput.Aptitude,
		Availability: availability,
	}
	if err := input.Validate(); err != nil {
		return ModelInput{}, err
	}
	return input, nil
}

// Validate checks that every table of the input matches its declared dimensions
func (input ModelInput) Validate() error {
	if input.Professors <= 0 || input.Disciplines <= 0 || input.Slots <= 0 {
		return fmt.Errorf("%w: professors, disciplines and slots must be > 0 (got P=%d, D=%d, T=%d)", ErrInvalidInput, input.Professors, input.Disciplines, input.Slots)
	} else if input.Rooms <= 0 {
		return fmt.Errorf("%w: rooms must be > 0 (got %d)", ErrInvalidInput, input.Rooms)
	} else if input.MaxLoad < 0 {
		return fmt.Errorf("%w: max load must be >= 0 (got %d)", ErrInvalidInput, input.MaxLoad)
	}

	//** Required periods
	if len(input.Periods) != input.Disciplines {
		return fmt.Errorf("%w: periods must have %d entries (got %d)", ErrInvalidInput, input.Disciplines, len(input.Periods))
	}
	if periods, discipline, found := lo.FindIndexOf(input.Periods, func(periods int) bool {
		return periods < 0 || periods > input.Slots
	}); found {
		return fmt.Errorf("%w: discipline %d requires %d periods, expected between 0 and %d", ErrInvalidInput, discipline, periods, input.Slots)
	}

	//** Aptitude matrix
	if err := checkMatrix("aptitude", input.Aptitude, input.Professors, input.Disciplines); err != nil {
		return err
	}

	//** Availability matrix
	if len(input.Availability) != input.Professors {
		return fmt.Errorf("%w: availability must have %d rows (got %d)", ErrInvalidInput, input.Professors, len(input.Availability))
	}
	for professor, row := range input.Availability {
		if len(row) != input.Slots {
			return fmt.Errorf("%w: availability row %d must have %d columns (got %d)", ErrInvalidInput, professor, input.Slots, len(row))
		}
	}
	return nil
}

func checkMatrix(name string, matrix [][]int, rows, columns int) error {
	if len(matrix) != rows {
		return fmt.Errorf("%w: %s must have %d rows (got %d)", ErrInvalidInput, name, rows, len(matrix))
	}
	for i, row := range matrix {
		if len(row) != columns {
			return fmt.Errorf("%w: %s row %d must have %d columns (got %d)", ErrInvalidInput, name, i, columns, len(row))
		}
	}
	return nil
}

func instanceName(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}
