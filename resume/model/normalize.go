package model

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
)

var optionalType = reflect.TypeOf(Optional{})

// Normalize builds a canonical CandidateRecord from a loosely-typed mapping,
// such as decoded JSON. Keys follow the snake_case field names of the record
// ("professional_summary", "contact.email", "experience[].bullets").
// Absent sequences become empty, absent scalars become None, and any
// constraint violation is returned as *ValidationError before anything else
// happens.
func Normalize(raw map[string]any) (CandidateRecord, error) {
	if raw == nil {
		return CandidateRecord{}, &ValidationError{Field: "name", Constraint: ConstraintRequired}
	}

	var decoded CandidateRecord
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		Result:     &decoded,
		DecodeHook: optionalHook,
	})
	if err != nil {
		return CandidateRecord{}, fmt.Errorf("build decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return CandidateRecord{}, &ValidationError{
			Field:      decodeErrorField(err),
			Constraint: ConstraintType,
			Cause:      err,
		}
	}

	record := decoded.Canonical()
	if err := record.Validate(); err != nil {
		return CandidateRecord{}, err
	}
	return record, nil
}

func optionalHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != optionalType {
		return data, nil
	}
	switch v := data.(type) {
	case nil:
		return None(), nil
	case Optional:
		return v, nil
	case string:
		return OptionalFrom(v), nil
	case int:
		return Some(strconv.Itoa(v)), nil
	case int64:
		return Some(strconv.FormatInt(v, 10)), nil
	case float64:
		// JSON numbers arrive as float64; graduation years are commonly sent unquoted.
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return Some(strconv.FormatFloat(v, 'f', 0, 64)), nil
		}
	}
	return nil, fmt.Errorf("expected text, got %s", from)
}

var quotedName = regexp.MustCompile(`'([^']+)'`)

func decodeErrorField(err error) string {
	if m := quotedName.FindStringSubmatch(err.Error()); len(m) == 2 {
		return m[1]
	}
	return "record"
}
