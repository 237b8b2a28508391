package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"nba-games-ingest/internal/logging"
)

const contentTypeJSON = "application/json"

// PutObjectAPI is the slice of the S3 client used by GamesStore.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// GamesStore writes raw games responses to the bucket, one object per day.
type GamesStore struct {
	client PutObjectAPI
	bucket string
	now    func() time.Time
	logger *zap.Logger
}

func NewGamesStore(client PutObjectAPI, bucket string, logger *zap.Logger) *GamesStore {
	return &GamesStore{
		client: client,
		bucket: bucket,
		now:    time.Now,
		logger: logging.OrNop(logger),
	}
}

// PutGames indents raw and writes it to ObjectKey(date), replacing any object
// already there. It returns the key written.
func (s *GamesStore) PutGames(ctx context.Context, raw []byte, date time.Time) (string, error) {
	var body bytes.Buffer
	if err := json.Indent(&body, raw, "", "  "); err != nil {
		return "", fmt.Errorf("indent games json: %w", err)
	}

	key := ObjectKey(date)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body.Bytes()),
		ContentType: aws.String(contentTypeJSON),
		Metadata: map[string]string{
			"games-date":  date.Format("2006-01-02"),
			"uploaded-at": s.now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		s.logger.Error("s3 put games failed",
			zap.String(logging.FieldBucket, s.bucket),
			zap.String(logging.FieldKey, key),
			logging.AWSErrorCode(err),
			zap.Error(err),
		)
		return "", fmt.Errorf("s3 putobject %s: %w", key, err)
	}

	s.logger.Info("uploaded games",
		zap.String(logging.FieldBucket, s.bucket),
		zap.String(logging.FieldKey, key),
	)
	return key, nil
}
