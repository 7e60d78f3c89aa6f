package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/farisp123/form-app/internal/contact"
)

// Records is the Record Store Adapter: typed contact records over a KV.
type Records struct {
	kv KV
}

// NewRecords wraps kv.
func NewRecords(kv KV) *Records {
	return &Records{kv: kv}
}

// LoadAll returns every decodable record in store enumeration order.
//
// Entries that are not JSON objects with string name, phone, city and
// email members are skipped. A key removed between enumeration and read is
// skipped too. Only failures of the KV itself are returned.
func (r *Records) LoadAll(ctx context.Context) ([]contact.Record, error) {
	keys, err := r.kv.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}

	records := make([]contact.Record, 0, len(keys))
	for _, key := range keys {
		value, ok, err := r.kv.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("load records: %w", err)
		}
		if !ok {
			continue
		}

		rec, err := unmarshalRecord(key, value)
		if err != nil {
			slog.Debug("skipping stored entry", "key", key, "error", err)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// Save writes rec under rec.ID, overwriting any existing entry.
func (r *Records) Save(ctx context.Context, rec contact.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("save record: empty id")
	}

	value, err := marshalRecord(rec)
	if err != nil {
		return err
	}
	if err := r.kv.Set(ctx, rec.ID, value); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

// Remove deletes the record stored under id. Absent ids are a no-op.
func (r *Records) Remove(ctx context.Context, id string) error {
	if err := r.kv.Remove(ctx, id); err != nil {
		return fmt.Errorf("remove record: %w", err)
	}
	return nil
}

// Close closes the underlying KV.
func (r *Records) Close() error {
	return r.kv.Close()
}
