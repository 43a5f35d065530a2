package domain

import (
	"encoding/json"
	"strconv"
)

type ValueKind int

const (
	ValueOther ValueKind = iota
	ValueNumber
	ValueTotal
	ValueGenderSplit
)

// Value is a measurement payload normalized from its stored JSON shape.
// Submissions are schema-less: a plain number, an object carrying a
// "total", or an object carrying "male"/"female" counts. Anything else
// decodes to ValueOther and counts as zero.
type Value struct {
	Kind   ValueKind
	Number float64
	Male   float64
	Female float64
}

// Total reduces a value to a single magnitude. Unrecognized shapes are
// zero by contract, never an error.
func (v Value) Total() float64 {
	switch v.Kind {
	case ValueNumber, ValueTotal:
		return v.Number
	case ValueGenderSplit:
		return v.Male + v.Female
	default:
		return 0.0
	}
}

// DecodeValue inspects a raw JSON payload and tags it. A non-null
// "total" key wins over gender keys when both are present; a null total
// falls through to the gender split.
func DecodeValue(raw json.RawMessage) Value {
	if len(raw) == 0 {
		return Value{Kind: ValueOther}
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return Value{Kind: ValueNumber, Number: num}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Value{Kind: ValueOther}
	}

	if total, ok := obj["total"]; ok && !isNull(total) {
		return Value{Kind: ValueTotal, Number: asFloat(total)}
	}

	return Value{
		Kind:   ValueGenderSplit,
		Male:   asFloat(obj["male"]),
		Female: asFloat(obj["female"]),
	}
}

// ExtractTotal is the one-step form used by the aggregation paths.
func ExtractTotal(raw json.RawMessage) float64 {
	return DecodeValue(raw).Total()
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// asFloat coerces a JSON scalar to a float. Missing, null and
// non-numeric entries count as zero; numeric strings are accepted the
// same way the ingestion layer has always accepted them.
func asFloat(raw json.RawMessage) float64 {
	if isNull(raw) {
		return 0
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if parsed, err := strconv.ParseFloat(str, 64); err == nil {
			return parsed
		}
	}
	return 0
}
