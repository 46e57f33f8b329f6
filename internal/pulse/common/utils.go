package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON extracts and unmarshals a JSON object from a generative-model
// reply. Replies often wrap the object in markdown fences or surrounding
// prose; everything outside the outermost braces is discarded.
func ParseJSON[T any](reply string) (T, error) {
	var zero T

	jsonStr := strings.TrimSpace(reply)
	jsonStr = strings.TrimPrefix(jsonStr, "```json")
	jsonStr = strings.TrimPrefix(jsonStr, "```")
	jsonStr = strings.TrimSuffix(jsonStr, "```")

	start := strings.Index(jsonStr, "{")
	end := strings.LastIndex(jsonStr, "}")
	if start == -1 || end <= start {
		return zero, fmt.Errorf("no JSON object found in reply")
	}
	jsonStr = jsonStr[start : end+1]

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return result, nil
}
