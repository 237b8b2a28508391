package balldontlie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"nba-games-ingest/internal/logging"
)

const (
	DefaultBaseURL = "https://api.balldontlie.io/v1"

	errorBodyLimit = 512
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config controls how the client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client fetches one date of games from the balldontlie API. It makes a
// single request per call and never follows pagination.
type Client struct {
	baseURL    string
	httpClient httpDoer
	logger     *zap.Logger
}

func NewClient(cfg Config) *Client {
	var doer httpDoer = http.DefaultClient
	if cfg.HTTPClient != nil {
		doer = cfg.HTTPClient
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: doer,
		logger:     logging.OrNop(cfg.Logger),
	}
}

// FetchGames requests /games for date (YYYY-MM-DD). apiKey is sent as the
// Authorization header value exactly as given.
func (c *Client) FetchGames(ctx context.Context, apiKey, date string) (*GamesPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games", nil)
	if err != nil {
		return nil, fmt.Errorf("build games request: %w", err)
	}
	req.URL.RawQuery = "dates[]=" + date
	req.Header.Set("Authorization", apiKey)
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("games request failed", zap.String(logging.FieldDate, date), zap.Error(err))
		return nil, fmt.Errorf("balldontlie: get games: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		statusErr := newStatusError(res)
		c.logger.Error("games request returned error status",
			zap.String(logging.FieldDate, date),
			zap.Int(logging.FieldStatusCode, statusErr.StatusCode),
			zap.String(logging.FieldReason, statusErr.Reason),
		)
		if res.StatusCode == http.StatusTooManyRequests {
			return nil, &RateLimitError{
				StatusError: *statusErr,
				RetryAfter:  parseRetryAfter(res.Header.Get("Retry-After")),
			}
		}
		return nil, statusErr
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.Error("games response read failed", zap.String(logging.FieldDate, date), zap.Error(err))
		return nil, fmt.Errorf("balldontlie: read games body: %w", err)
	}

	games, err := c.decodeGames(raw, date)
	if err != nil {
		return nil, err
	}

	c.logger.Info("games fetched",
		zap.String(logging.FieldDate, date),
		zap.Int(logging.FieldCount, len(games)),
	)

	return &GamesPayload{Raw: raw, Data: games}, nil
}

// decodeGames requires a JSON object body. The "data" list is read leniently:
// a missing or non-list value yields no games, and records are never rejected
// for the types of their fields.
func (c *Client) decodeGames(raw []byte, date string) ([]Game, error) {
	var decoded gamesResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("balldontlie: decode games body: %w", err)
	}

	data := bytes.TrimSpace(decoded.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if !isArray(data) {
		c.logger.Warn("games data is not a list", zap.String(logging.FieldDate, date))
		return nil, nil
	}

	var games []Game
	if err := json.Unmarshal(data, &games); err != nil {
		return nil, fmt.Errorf("balldontlie: decode games data: %w", err)
	}
	return games, nil
}

func newStatusError(res *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(res.Body, errorBodyLimit))

	reason := strings.TrimSpace(strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)))
	if reason == "" {
		reason = reasonPhrase(res.StatusCode)
	}

	return &StatusError{
		StatusCode: res.StatusCode,
		Reason:     reason,
		Body:       strings.TrimSpace(string(body)),
	}
}

// parseRetryAfter accepts delta-seconds only; HTTP dates are ignored.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
