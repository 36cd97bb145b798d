package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CleanJSON strips the markdown code fences a free-text model response may
// wrap around its JSON payload. Empty input normalizes to an empty object so
// downstream decoding fails on contract validation, not on a panic.
func CleanJSON(text string) string {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return "{}"
	}
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
		clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
		clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	}
	return strings.TrimSpace(clean)
}

// RequireKeys rejects a response object that omits any of the declared
// required keys. This has to happen on the raw JSON: once the object is
// decoded into a typed result, absent booleans and integers are
// indistinguishable from genuine zero values.
func RequireKeys(raw string, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(CleanJSON(raw)), &obj); err != nil {
		return WrapError(KindValidation, "analysis: backend response is not valid JSON", err)
	}
	var missing []string
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return NewError(KindValidation, fmt.Sprintf("analysis: backend response is missing required fields: %s", strings.Join(missing, ", ")))
	}
	return nil
}

// DecodeResponse normalizes raw model output and unmarshals it into out.
// A declared response schema is a request to the backend, not a guarantee, so
// parse failures are expected-but-rare and surface as validation errors.
func DecodeResponse(raw string, out any) error {
	if err := json.Unmarshal([]byte(CleanJSON(raw)), out); err != nil {
		return WrapError(KindValidation, "analysis: backend response is not valid JSON", err)
	}
	return nil
}
