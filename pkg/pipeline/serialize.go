package pipeline

import (
	"encoding/json"
	"fmt"
)

// SerializeResult converts a Result to a JSON string for the JavaScript host.
// Marshal failures are reported as an {"error": ...} document instead.
func SerializeResult(res *Result) string {
	data, err := json.Marshal(res)
	if err != nil {
		return ErrorJSON(fmt.Errorf("failed to serialize result: %w", err))
	}
	return string(data)
}

// DecodeResult parses a serialized result. Department summaries decode
// into generic maps, since labels are caller defined.
func DecodeResult(data []byte) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to deserialize result: %w", err)
	}
	return out, nil
}

// ErrorJSON renders err as {"error": "..."}.
func ErrorJSON(err error) string {
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	return string(data)
}
