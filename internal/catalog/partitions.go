package catalog

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"nba-games-ingest/internal/config"
	"nba-games-ingest/internal/logging"
	"nba-games-ingest/internal/storage"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Partition struct {
	Date     string `json:"date"`
	Location string `json:"location"`
	QueryID  string `json:"query_id"`
}

type Resp struct {
	Ok         bool        `json:"ok"`
	Database   string      `json:"database"`
	Table      string      `json:"table"`
	Workgroup  string      `json:"workgroup"`
	Registered []Partition `json:"registered"`
	Skipped    []string    `json:"skipped,omitempty"`
}

// Registrar adds one Athena partition per stored games object so the day is
// queryable as soon as it lands.
//
// The table is expected to be partitioned by (year string, month string,
// day string) with its location at s3://<bucket>/games/.
type Registrar struct {
	athena AthenaClient
	cfg    config.Catalog
	opts   RunOptions
	logger *zap.Logger
}

func NewRegistrar(client AthenaClient, cfg config.Catalog, logger *zap.Logger) (*Registrar, error) {
	if !identifierRe.MatchString(cfg.Table) {
		return nil, fmt.Errorf("invalid athena table name %q", cfg.Table)
	}
	return &Registrar{
		athena: client,
		cfg:    cfg,
		opts: RunOptions{
			Database:       cfg.Database,
			Workgroup:      cfg.Workgroup,
			OutputLocation: cfg.Output,
		},
		logger: logging.OrNop(logger),
	}, nil
}

// Handle is triggered by S3 ObjectCreated notifications. Keys that are not
// games objects are skipped.
func (r *Registrar) Handle(ctx context.Context, ev events.S3Event) (Resp, error) {
	defer func() { _ = r.logger.Sync() }()

	resp := Resp{
		Database:   r.cfg.Database,
		Table:      r.cfg.Table,
		Workgroup:  r.cfg.Workgroup,
		Registered: []Partition{},
	}

	for _, rec := range ev.Records {
		bucket := rec.S3.Bucket.Name
		key := rec.S3.Object.URLDecodedKey
		if key == "" {
			key = rec.S3.Object.Key
		}

		day, ok := storage.ParseObjectKey(key)
		if !ok {
			r.logger.Info("skipping non-games object", zap.String(logging.FieldBucket, bucket), zap.String(logging.FieldKey, key))
			resp.Skipped = append(resp.Skipped, key)
			continue
		}

		p, err := r.register(ctx, bucket, day)
		if err != nil {
			return resp, fmt.Errorf("register partition for %s: %w", key, err)
		}
		resp.Registered = append(resp.Registered, p)
	}

	resp.Ok = true
	return resp, nil
}

func (r *Registrar) register(ctx context.Context, bucket string, day time.Time) (Partition, error) {
	location := fmt.Sprintf("s3://%s/%s", bucket, storage.DayPrefix(day))
	sql := AddPartitionSQL(r.cfg.Table, day, location)

	qid, err := RunStatement(ctx, r.athena, sql, r.opts)
	if err != nil {
		r.logger.Error("add partition failed",
			zap.String(logging.FieldDate, day.Format("2006-01-02")),
			zap.String(logging.FieldQueryID, qid),
			logging.AWSErrorCode(err),
			zap.Error(err),
		)
		return Partition{}, err
	}

	r.logger.Info("partition registered",
		zap.String(logging.FieldDate, day.Format("2006-01-02")),
		zap.String(logging.FieldQueryID, qid),
		zap.String("location", location),
	)
	return Partition{Date: day.Format("2006-01-02"), Location: location, QueryID: qid}, nil
}

// AddPartitionSQL builds the idempotent DDL for one day. table must already be
// a validated identifier.
func AddPartitionSQL(table string, day time.Time, location string) string {
	return fmt.Sprintf(
		"ALTER TABLE %s ADD IF NOT EXISTS PARTITION (year='%s', month='%s', day='%s') LOCATION '%s'",
		table, day.Format("2006"), day.Format("01"), day.Format("02"), location,
	)
}
