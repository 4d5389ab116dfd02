package store

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// indexValue extracts a record field as the normalized string used for index
// columns and equality matching. JSON numbers are rendered without a
// fractional part when integral, so "clientId":42 matches the key "42".
func indexValue(record Record, field string) (string, bool) {
	raw, ok := record[field]
	if !ok || raw == nil {
		return "", false
	}
	switch value := raw.(type) {
	case string:
		return value, true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case int:
		return strconv.Itoa(value), true
	default:
		return fmt.Sprintf("%v", value), true
	}
}

func cloneRecord(record Record) Record {
	if record == nil {
		return nil
	}
	encoded, err := json.Marshal(record)
	if err != nil {
		// Records always originate from JSON; a map that cannot be
		// re-marshaled cannot have been stored.
		clone := make(Record, len(record))
		for key, value := range record {
			clone[key] = value
		}
		return clone
	}
	clone := Record{}
	if err := json.Unmarshal(encoded, &clone); err != nil {
		return record
	}
	return clone
}

func cloneRecords(records []Record) []Record {
	result := make([]Record, 0, len(records))
	for _, record := range records {
		result = append(result, cloneRecord(record))
	}
	return result
}
