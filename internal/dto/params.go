package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ParamBag is a flat JSON object read as strings. Numbers and booleans are
// accepted and kept as their literal text; null values count as absent.
type ParamBag map[string]string

// UnmarshalJSON implements json.Unmarshaler.
func (b *ParamBag) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	bag := make(ParamBag, len(raw))
	for key, value := range raw {
		value = bytes.TrimSpace(value)
		if len(value) == 0 || bytes.Equal(value, []byte("null")) {
			continue
		}
		switch value[0] {
		case '"':
			var s string
			if err := json.Unmarshal(value, &s); err != nil {
				return fmt.Errorf("parameter %s: %w", key, err)
			}
			bag[key] = s
		case '{', '[':
			return fmt.Errorf("parameter %s must be a scalar", key)
		default:
			// numbers and booleans
			bag[key] = string(value)
		}
	}
	*b = bag
	return nil
}

// Get returns a pointer to the value under key, nil when absent.
func (b ParamBag) Get(key string) *string {
	v, ok := b[key]
	if !ok {
		return nil
	}
	return &v
}

// parseInt reads a base 10 integer that fits the INTEGER columns it is stored in.
func parseInt(raw *string) (int, error) {
	if raw == nil {
		return 0, strconv.ErrSyntax
	}
	return parseInt32(*raw)
}

func parseInt32(raw string) (int, error) {
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
