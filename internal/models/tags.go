package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Tags is an ordered tag list stored as a JSON array column
type Tags []string

// Scan implements sql.Scanner
func (t *Tags) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported tags type %T", src)
	}
	if len(raw) == 0 {
		*t = Tags{}
		return nil
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return fmt.Errorf("failed to decode tags: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	*t = tags
	return nil
}

// Value implements driver.Valuer
func (t Tags) Value() (driver.Value, error) {
	if len(t) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal([]string(t))
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(raw), nil
}
