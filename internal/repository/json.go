package repository

import "encoding/json"

// jsonArray encodes values for JSONB columns and containment filters.
func jsonArray(values ...string) (string, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
