package balldontlie

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GamesPayload is one /games response: the body exactly as received plus the
// records decoded from its "data" list.
type GamesPayload struct {
	Raw  json.RawMessage
	Data []Game
}

// Game holds the fields read from a game record. Everything is optional and
// read leniently; the rest of the record only travels inside GamesPayload.Raw.
type Game struct {
	HomeTeam         *Team `json:"home_team"`
	VisitorTeam      *Team `json:"visitor_team"`
	HomeTeamScore    Value `json:"home_team_score"`
	VisitorTeamScore Value `json:"visitor_team_score"`
	Status           Value `json:"status"`
}

// UnmarshalJSON leaves g empty when the record is not a JSON object.
func (g *Game) UnmarshalJSON(b []byte) error {
	type plain Game
	if !isObject(b) {
		*g = Game{}
		return nil
	}
	return json.Unmarshal(b, (*plain)(g))
}

type Team struct {
	FullName Value `json:"full_name"`
}

// UnmarshalJSON leaves t empty when the team is not a JSON object.
func (t *Team) UnmarshalJSON(b []byte) error {
	type plain Team
	if !isObject(b) {
		*t = Team{}
		return nil
	}
	return json.Unmarshal(b, (*plain)(t))
}

// Value is any JSON value, kept as received.
type Value struct {
	raw json.RawMessage
}

func (v *Value) UnmarshalJSON(b []byte) error {
	v.raw = append(v.raw[:0], b...)
	return nil
}

// Text renders a string unquoted and any other value as its JSON text.
// Absent or null values render as def.
func (v Value) Text(def string) string {
	raw := bytes.TrimSpace(v.raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return def
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

type gamesResponse struct {
	Data json.RawMessage `json:"data"`
}

func isObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}

func isArray(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '['
}

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	StatusCode int
	Reason     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("balldontlie: http %d %s: %s", e.StatusCode, e.Reason, e.Body)
	}
	return fmt.Sprintf("balldontlie: http %d %s", e.StatusCode, e.Reason)
}

// RateLimitError is a 429 from upstream. It is not retried here.
type RateLimitError struct {
	StatusError
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s (retry after %s)", e.StatusError.Error(), e.RetryAfter)
	}
	return e.StatusError.Error()
}

func (e *RateLimitError) Unwrap() error {
	return &e.StatusError
}

func reasonPhrase(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Unknown Status"
}
