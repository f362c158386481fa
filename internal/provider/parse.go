package provider

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseJSON unmarshals the JSON object embedded in an LLM response into T,
// tolerating surrounding markdown fences or commentary.
func parseJSON[T any](response string) (T, error) {
	var zero T

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return zero, fmt.Errorf("no JSON object found in response")
	}

	var result T
	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return result, nil
}
