package strutil

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// ToBase64 encodes the JSON form of v as standard base64.
func ToBase64(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// FromBase64 reverses ToBase64 into dst. Empty input decodes to the empty
// string.
func FromBase64(s string, dst any) error {
	if s == "" {
		s = base64.StdEncoding.EncodeToString([]byte(`""`))
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("decode base64: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}
