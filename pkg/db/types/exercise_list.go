package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Exercise is one opaque workout step descriptor.
type Exercise struct {
	Name string `json:"name"`
	Sets int    `json:"sets"`
	Reps int    `json:"reps"`
}

// ExerciseList stores workout exercise descriptors as a JSON column.
type ExerciseList []Exercise

func (l *ExerciseList) Scan(src any) error {
	if src == nil {
		*l = ExerciseList{}
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return l.parse(v)
	case string:
		return l.parse([]byte(v))
	default:
		return fmt.Errorf("ExerciseList: unsupported Scan type %T", src)
	}
}

func (l ExerciseList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("ExerciseList: marshal: %w", err)
	}
	return string(data), nil
}

func (l *ExerciseList) parse(data []byte) error {
	if len(data) == 0 {
		*l = ExerciseList{}
		return nil
	}
	var out []Exercise
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("ExerciseList: parse: %w", err)
	}
	*l = ExerciseList(out)
	return nil
}
