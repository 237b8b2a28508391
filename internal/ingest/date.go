package ingest

import "time"

const dateLayout = "2006-01-02"

// Yesterday returns the UTC calendar day before now, whatever now's location.
func Yesterday(now time.Time) time.Time {
	return now.UTC().AddDate(0, 0, -1)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}
