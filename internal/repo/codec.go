package repo

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mizanhq/mizan/internal/store"
)

// encodeRecord converts a typed model into the flat field map stored by the
// backend, going through JSON so field names and value shapes match the
// persisted layout exactly.
func encodeRecord(model any) (store.Record, error) {
	encoded, err := json.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	record := store.Record{}
	if err := json.Unmarshal(encoded, &record); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return record, nil
}

func decodeRecord[T any](record store.Record) (T, error) {
	var model T
	encoded, err := json.Marshal(record)
	if err != nil {
		return model, fmt.Errorf("decode record: %w", err)
	}
	if err := json.Unmarshal(encoded, &model); err != nil {
		return model, fmt.Errorf("decode record: %w", err)
	}
	return model, nil
}

func decodeRecords[T any](records []store.Record) ([]T, error) {
	models := make([]T, 0, len(records))
	for _, record := range records {
		model, err := decodeRecord[T](record)
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}
	return models, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
