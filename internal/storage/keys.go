package storage

import (
	"fmt"
	"strings"
	"time"
)

const (
	gamesPrefix   = "games/"
	gamesFileName = "games.json"
)

// ObjectKey returns games/YYYY/MM/DD/games.json for the calendar date of d.
func ObjectKey(d time.Time) string {
	return fmt.Sprintf("%s%s/%s", gamesPrefix, d.Format("2006/01/02"), gamesFileName)
}

// DayPrefix returns games/YYYY/MM/DD/, the directory that holds ObjectKey(d).
func DayPrefix(d time.Time) string {
	return fmt.Sprintf("%s%s/", gamesPrefix, d.Format("2006/01/02"))
}

// ParseObjectKey is the inverse of ObjectKey. The returned date is midnight UTC.
func ParseObjectKey(key string) (time.Time, bool) {
	key = strings.TrimPrefix(key, "/")
	if !strings.HasPrefix(key, gamesPrefix) || !strings.HasSuffix(key, "/"+gamesFileName) {
		return time.Time{}, false
	}
	datePart := strings.TrimSuffix(strings.TrimPrefix(key, gamesPrefix), "/"+gamesFileName)

	d, err := time.Parse("2006/01/02", datePart)
	if err != nil {
		return time.Time{}, false
	}
	// time.Parse accepts single-digit fields; only canonical keys round-trip.
	if ObjectKey(d) != key {
		return time.Time{}, false
	}
	return d, true
}
