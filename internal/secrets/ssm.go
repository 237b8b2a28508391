package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.uber.org/zap"

	"nba-games-ingest/internal/logging"
)

// GetParameterAPI is the slice of the SSM client used here.
type GetParameterAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ParameterStore reads the balldontlie API key from SSM Parameter Store.
// Nothing is cached; each call hits SSM.
type ParameterStore struct {
	client GetParameterAPI
	name   string
	logger *zap.Logger
}

func NewParameterStore(client GetParameterAPI, name string, logger *zap.Logger) *ParameterStore {
	return &ParameterStore{
		client: client,
		name:   name,
		logger: logging.OrNop(logger),
	}
}

// APIKey returns the decrypted parameter value verbatim.
func (p *ParameterStore) APIKey(ctx context.Context) (string, error) {
	if strings.TrimSpace(p.name) == "" {
		return "", errors.New("missing parameter name")
	}

	out, err := p.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(p.name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		p.logger.Error("ssm get parameter failed",
			zap.String("parameter", p.name),
			logging.AWSErrorCode(err),
			zap.Error(err),
		)
		return "", fmt.Errorf("ssm get parameter %s: %w", p.name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("ssm parameter %s has no value", p.name)
	}

	return aws.ToString(out.Parameter.Value), nil
}
