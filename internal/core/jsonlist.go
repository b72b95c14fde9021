// AngelaMos | 2026
// jsonlist.go

package core

import (
	"encoding/json"
	"fmt"
)

// JSONList scans a JSON array column (json_agg output) into a typed slice.
// SQL NULL and an empty aggregate both come back as an empty list.
type JSONList[T any] []T

func (l *JSONList[T]) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = JSONList[T]{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan json list: unsupported source %T", src)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("scan json list: %w", err)
	}
	if items == nil {
		items = []T{}
	}
	*l = items
	return nil
}

func (l JSONList[T]) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]T(l))
}
