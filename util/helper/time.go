package helper_util

import (
	"fmt"
	"time"
)

// ParseTime parses an RFC3339 timestamp as stored on Neo4j nodes.
func ParseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

// ParseNullableTime handles optional timestamp properties, which come back
// from the driver as nil, string, or time.Time depending on how they were
// written.
func ParseNullableTime(value interface{}) (*time.Time, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &v, nil
	case string:
		parsed, err := ParseTime(v)
		if err != nil {
			return nil, err
		}
		return &parsed, nil
	default:
		return nil, fmt.Errorf("unsupported time value type %T", value)
	}
}
