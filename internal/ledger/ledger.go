// Package ledger is the persistence layer for the app's collections. Each
// collection is stored as a whole-document JSON snapshot under a well-known
// key, wrapped in a versioned envelope. Markers are single scalar values
// (a date or a timestamp) used for rollover tracking and change polling.
package ledger

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Snapshot keys. Values under these keys are envelope-wrapped JSON arrays
// or objects, always replaced wholesale on write.
const (
	KeySlots          = "meals_data"
	KeyRecipes        = "recipes_data"
	KeyLiveLog        = "log_data"
	KeyArchive        = "recap_data"
	KeyChecklistItems = "checklist_items"
	KeyGoals          = "goals_data"
	KeySettings       = "user_settings"
)

// Marker names. Markers live in their own table and carry raw strings.
const (
	MarkerLastLogDate  = "last_log_date"
	MarkerMealsUpdated = "meals_updated_timestamp"
	MarkerLogCleared   = "log_cleared_timestamp"
)

// SchemaVersion is stamped into every snapshot envelope. Snapshots written
// by a newer schema are refused on load so callers can fall back safely.
const SchemaVersion = 1

type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}

// Load reads the snapshot under key into out. A missing key returns
// (false, nil) and leaves out untouched. A snapshot that cannot be decoded
// returns (false, err); callers are expected to proceed with an empty
// collection rather than fail the user action.
func Load[T any](db *sql.DB, key string, out *T) (bool, error) {
	var raw string
	err := db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return false, fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	if env.SchemaVersion > SchemaVersion {
		return false, fmt.Errorf("snapshot %q has schema version %d, newer than supported %d", key, env.SchemaVersion, SchemaVersion)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return false, fmt.Errorf("decode snapshot %q data: %w", key, err)
	}
	return true, nil
}

// Save replaces the snapshot under key. Whole-document overwrite only;
// there are no partial writes.
func Save[T any](db *sql.DB, key string, value T) error {
	raw, err := encodeEnvelope(value)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", key, err)
	}
	_, err = db.Exec(`
INSERT INTO snapshots(key, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, key, raw)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

// SaveIfAbsent writes the snapshot only when no value exists yet under key.
// Used to seed first-run defaults without clobbering user data.
func SaveIfAbsent[T any](db *sql.DB, key string, value T) error {
	raw, err := encodeEnvelope(value)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", key, err)
	}
	if _, err := db.Exec(`INSERT OR IGNORE INTO snapshots(key, value) VALUES(?, ?)`, key, raw); err != nil {
		return fmt.Errorf("seed snapshot %q: %w", key, err)
	}
	return nil
}

// Delete removes the snapshot under key. Missing keys are not an error.
func Delete(db *sql.DB, key string) error {
	if _, err := db.Exec(`DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", key, err)
	}
	return nil
}

// DeleteMarker removes a marker. Missing names are not an error.
func DeleteMarker(db *sql.DB, name string) error {
	if _, err := db.Exec(`DELETE FROM markers WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete marker %q: %w", name, err)
	}
	return nil
}

// PutMarker writes a raw marker value.
func PutMarker(db *sql.DB, name, value string) error {
	_, err := db.Exec(`
INSERT INTO markers(name, value, updated_at)
VALUES(?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(name) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
`, name, value)
	if err != nil {
		return fmt.Errorf("put marker %q: %w", name, err)
	}
	return nil
}

// ReadMarker returns the raw marker value, with found=false for a marker
// that was never written.
func ReadMarker(db *sql.DB, name string) (string, bool, error) {
	var value string
	err := db.QueryRow(`SELECT value FROM markers WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read marker %q: %w", name, err)
	}
	return value, true, nil
}

// Touch stamps the marker with now, signalling "something changed" to
// polling readers.
func Touch(db *sql.DB, name string, now time.Time) (time.Time, error) {
	if err := PutMarker(db, name, now.Format(time.RFC3339Nano)); err != nil {
		return time.Time{}, err
	}
	return now, nil
}

// Peek is the non-blocking read side of Touch. Markers holding anything
// other than a timestamp report as absent.
func Peek(db *sql.DB, name string) (time.Time, bool, error) {
	raw, found, err := ReadMarker(db, name)
	if err != nil || !found {
		return time.Time{}, false, err
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse marker %q timestamp: %w", name, err)
	}
	return ts, true, nil
}

func encodeEnvelope[T any](value T) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(envelope{SchemaVersion: SchemaVersion, Data: data})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
