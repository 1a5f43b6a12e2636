package storage

import (
	"encoding/json"
	"fmt"

	"video-annotator/internal/domain/repositories"
	"video-annotator/pkg/errors"
)

// encodeRecords and decodeRecords handle the bare JSON array kept by the
// Redis and Postgres backends, where the key is stored beside the value.
func encodeRecords(records []json.RawMessage) ([]byte, error) {
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, errors.ErrInternal(fmt.Errorf("encode records: %w", err))
	}
	return data, nil
}

func decodeRecords(key repositories.Key, data []byte) ([]json.RawMessage, error) {
	if len(data) == 0 {
		return []json.RawMessage{}, nil
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.ErrInternal(fmt.Errorf("decode %s: %w", key, err))
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, nil
}

// keyedRecords is the document written by backends that name objects by a
// digest of the key. The raw key travels with the records so listings can
// recover it.
type keyedRecords struct {
	Key     string            `json:"key"`
	Records []json.RawMessage `json:"records"`
}

func encodeKeyed(key repositories.Key, records []json.RawMessage) ([]byte, error) {
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.Marshal(keyedRecords{Key: key.String(), Records: records})
	if err != nil {
		return nil, errors.ErrInternal(fmt.Errorf("encode %s: %w", key, err))
	}
	return data, nil
}

func decodeKeyed(key repositories.Key, data []byte) ([]json.RawMessage, error) {
	if len(data) == 0 {
		return []json.RawMessage{}, nil
	}
	var doc keyedRecords
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.ErrInternal(fmt.Errorf("decode %s: %w", key, err))
	}
	if doc.Key != key.String() {
		return nil, errors.ErrInternal(fmt.Errorf("decode %s: document holds key %q", key, doc.Key))
	}
	if doc.Records == nil {
		doc.Records = []json.RawMessage{}
	}
	return doc.Records, nil
}

// keyOf returns the key stored in a keyed document.
func keyOf(data []byte) (repositories.Key, bool) {
	var doc struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return repositories.Key{}, false
	}
	return repositories.ParseKey(doc.Key)
}
