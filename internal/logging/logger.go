package logging

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Common structured log field keys.
const (
	FieldFunction     = "function"
	FieldInvocationID = "invocation_id"
	FieldDate         = "date"
	FieldCount        = "count"
	FieldBucket       = "bucket"
	FieldKey          = "key"
	FieldStatusCode   = "status_code"
	FieldReason       = "reason"
	FieldAWSErrorCode = "aws_error_code"
	FieldQueryID      = "query_id"
)

// New builds a JSON logger writing to stderr at the given level ("debug",
// "info", "warn", "error"). Unknown levels fall back to info.
func New(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// AWSErrorCode returns a field carrying the AWS API error code of err, or
// zap.Skip when err is not an AWS API error.
func AWSErrorCode(err error) zap.Field {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return zap.String(FieldAWSErrorCode, ae.ErrorCode())
	}
	return zap.Skip()
}

func parseLevel(level string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
