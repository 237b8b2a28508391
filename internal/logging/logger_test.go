package logging

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" WARN ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewHonoursLevel(t *testing.T) {
	logger, err := New("warn")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info should be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.WarnLevel) {
		t.Fatal("warn should be enabled at warn level")
	}
}

func TestAWSErrorCode(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "ParameterNotFound", Message: "not found"}
	field := AWSErrorCode(fmt.Errorf("ssm get parameter: %w", apiErr))
	if field.Key != FieldAWSErrorCode || field.String != "ParameterNotFound" {
		t.Fatalf("unexpected field %+v", field)
	}

	if f := AWSErrorCode(errors.New("boom")); !f.Equals(zap.Skip()) {
		t.Fatalf("expected skip field for non-AWS error, got %+v", f)
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("expected a logger")
	}
	l := zap.NewExample()
	if OrNop(l) != l {
		t.Fatal("expected the given logger back")
	}
}
