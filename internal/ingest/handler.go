package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"nba-games-ingest/internal/balldontlie"
	"nba-games-ingest/internal/logging"
)

type KeySource interface {
	APIKey(ctx context.Context) (string, error)
}

type GamesFetcher interface {
	FetchGames(ctx context.Context, apiKey, date string) (*balldontlie.GamesPayload, error)
}

type GamesWriter interface {
	PutGames(ctx context.Context, raw []byte, date time.Time) (string, error)
}

// Result is the return value of one invocation.
type Result struct {
	Date       string        `json:"date"`
	GamesFound int           `json:"games_found"`
	S3Key      string        `json:"s3_key"`
	Games      []GameSummary `json:"games"`
}

// Handler fetches yesterday's games, stores the raw response and returns a
// summary. Any step failing aborts the invocation.
type Handler struct {
	keys   KeySource
	games  GamesFetcher
	store  GamesWriter
	logger *zap.Logger

	Now func() time.Time
}

func NewHandler(keys KeySource, games GamesFetcher, store GamesWriter, logger *zap.Logger) *Handler {
	return &Handler{
		keys:   keys,
		games:  games,
		store:  store,
		logger: logging.OrNop(logger),
		Now:    time.Now,
	}
}

// Handle is triggered by an EventBridge schedule. The event is logged and
// otherwise ignored.
func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (Result, error) {
	defer func() { _ = h.logger.Sync() }()

	log := h.logger.With(zap.String(logging.FieldInvocationID, invocationID(ctx)))
	log.Info("invoked", zap.ByteString("event", eventOrNull(event)))

	day := Yesterday(h.Now())
	date := formatDate(day)
	log.Info("fetching games", zap.String(logging.FieldDate, date))

	apiKey, err := h.keys.APIKey(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("get api key: %w", err)
	}

	payload, err := h.games.FetchGames(ctx, apiKey, date)
	if err != nil {
		return Result{}, fmt.Errorf("fetch games for %s: %w", date, err)
	}

	key, err := h.store.PutGames(ctx, payload.Raw, day)
	if err != nil {
		return Result{}, fmt.Errorf("store games for %s: %w", date, err)
	}

	res := Result{
		Date:       date,
		GamesFound: len(payload.Data),
		S3Key:      key,
		Games:      Summarize(payload.Data),
	}
	log.Info("result",
		zap.String(logging.FieldDate, res.Date),
		zap.Int(logging.FieldCount, res.GamesFound),
		zap.String(logging.FieldKey, res.S3Key),
	)
	return res, nil
}

// invocationID is the Lambda request id, or a fresh UUID outside Lambda.
func invocationID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}

// eventOrNull returns event, or the JSON literal null when it is empty.
func eventOrNull(event json.RawMessage) []byte {
	if len(event) == 0 {
		return []byte("null")
	}
	return event
}
