package enums

import (
	"fmt"
	"strings"
)

// Difficulty is the ordered workout difficulty category.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

var validDifficulties = []Difficulty{
	DifficultyBeginner,
	DifficultyIntermediate,
	DifficultyAdvanced,
	DifficultyExpert,
}

// String implements fmt.Stringer.
func (d Difficulty) String() string {
	return string(d)
}

// IsValid reports whether the value matches a known Difficulty.
func (d Difficulty) IsValid() bool {
	for _, candidate := range validDifficulties {
		if candidate == d {
			return true
		}
	}
	return false
}

// Level returns the ordinal position for ordering comparisons; beginner is 0.
func (d Difficulty) Level() int {
	for i, candidate := range validDifficulties {
		if candidate == d {
			return i
		}
	}
	return -1
}

// ParseDifficulty converts raw input into a Difficulty. Matching ignores
// case and surrounding whitespace.
func ParseDifficulty(value string) (Difficulty, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validDifficulties {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid difficulty %q", value)
}
