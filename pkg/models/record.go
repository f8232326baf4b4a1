package models

import "time"

// Record is one canonical record destined for the target store. Every
// implementation carries a stable ExternalKey, which is also the conflict
// key used for upserts.
type Record interface {
	// Key returns the record's external_key.
	Key() string
	// Values returns the row values in the same order as the entity's
	// column list. The trailing two values are always the audit timestamps
	// last_synced_at and updated_at, set to now.
	Values(now time.Time) []any
}
