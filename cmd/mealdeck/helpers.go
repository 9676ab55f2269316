package mealdeck

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mealdeck/mealdeck/internal/app"
	"github.com/mealdeck/mealdeck/internal/db"
	"github.com/mealdeck/mealdeck/internal/service"
)

// withDB opens the database and reconciles the day boundary before running
// the command, the CLI equivalent of the app coming to the foreground.
func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	if _, err := service.Rollover(sqldb, time.Now()); err != nil {
		return err
	}
	return run(sqldb)
}

func timeNow() time.Time {
	return time.Now()
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func parseIntArg(name, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return v, nil
}

func parseDateOrToday(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Now().Format("2006-01-02"), nil
	}
	if _, err := time.ParseInLocation("2006-01-02", date, time.Local); err != nil {
		return "", fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", date)
	}
	return date, nil
}
