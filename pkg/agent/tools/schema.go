// Package tools holds the functions the candidate sub-agent may call.
package tools

import (
	"encoding/json"
	"strings"

	"ai-recruiter-be/pkg/apperror"
)

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": description}
}

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// decodeArgs treats empty arguments as an empty object.
func decodeArgs(arguments string, v interface{}) error {
	if strings.TrimSpace(arguments) == "" {
		arguments = "{}"
	}
	if err := json.Unmarshal([]byte(arguments), v); err != nil {
		return apperror.BadRequest("invalid tool arguments: %v", err)
	}
	return nil
}
