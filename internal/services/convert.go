package services

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const dayFormat = "2006-01-02"

// toJSON marshals request payload fragments into the JSON column type.
// Inputs come from validated DTOs, so a marshal failure is not expected;
// nil input stays nil.
func toJSON(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// parseDay parses a YYYY-MM-DD string as midnight in loc. Empty input
// returns nil. Format errors don't happen here: the DTO validator has
// already enforced the layout.
func parseDay(s string, loc *time.Location) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(dayFormat, s, loc)
	if err != nil {
		return nil
	}
	return &t
}
