package service

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/mealdeck/mealdeck/internal/ledger"
)

// Change is emitted when a polled marker advances.
type Change struct {
	Marker string    `json:"marker"`
	At     time.Time `json:"at"`
}

const DefaultWatchInterval = 2 * time.Second

// Watch polls the change markers and delivers a Change whenever one
// advances past its last observed value. The channel closes when ctx is
// cancelled. Peek failures are logged and skipped; polling is best-effort
// by design and a missed tick is recovered on the next one.
func Watch(ctx context.Context, db *sql.DB, interval time.Duration) <-chan Change {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	ch := make(chan Change, 8)
	go func() {
		defer close(ch)

		markers := []string{ledger.MarkerMealsUpdated, ledger.MarkerLogCleared}
		last := make(map[string]time.Time, len(markers))
		for _, m := range markers {
			if ts, found, err := ledger.Peek(db, m); err == nil && found {
				last[m] = ts
			}
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, m := range markers {
					ts, found, err := ledger.Peek(db, m)
					if err != nil {
						log.Printf("warning: %v", err)
						continue
					}
					if !found || !ts.After(last[m]) {
						continue
					}
					last[m] = ts
					select {
					case ch <- Change{Marker: m, At: ts}:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()
	return ch
}
