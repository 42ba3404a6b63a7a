package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ClampScore converts an arbitrary value to an integer sub-score in [0,10].
// Numeric input is rounded to the nearest integer before clamping; anything
// that cannot be read as a number becomes 0.
func ClampScore(v any) int {
	f, ok := toFloat(v)
	if !ok {
		return 0
	}

	n := int(math.Round(f))
	if n < 0 {
		return 0
	}
	if n > 10 {
		return 10
	}
	return n
}

// CoerceRecord validates a loosely-typed model reply into the canonical
// record. It is total: missing or malformed fields are replaced by safe
// defaults and the operation never fails.
func CoerceRecord(raw map[string]any) EvaluationRecord {
	record := EvaluationRecord{
		Fluency:     ClampScore(raw["fluency"]),
		Grammar:     ClampScore(raw["grammar"]),
		Vocabulary:  ClampScore(raw["vocabulary"]),
		Coherence:   ClampScore(raw["coherence"]),
		Relevance:   ClampScore(raw["relevance"]),
		OverallPass: truthy(raw["overall_pass"]),
	}

	if feedback, ok := raw["feedback"]; ok && feedback != nil {
		record.Feedback = strings.TrimSpace(stringify(feedback))
	}
	return record
}

func toFloat(v any) (float64, bool) {
	switch value := v.(type) {
	case float64:
		return value, true
	case float32:
		return float64(value), true
	case int:
		return float64(value), true
	case int64:
		return float64(value), true
	case json.Number:
		f, err := value.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		return f, err == nil
	case bool:
		if value {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func truthy(v any) bool {
	switch value := v.(type) {
	case bool:
		return value
	case float64:
		return value != 0
	case int:
		return value != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(value))
		return s == "true" || s == "yes" || s == "pass" || s == "1"
	default:
		return false
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
