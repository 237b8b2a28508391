package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"go.uber.org/zap"

	"nba-games-ingest/internal/balldontlie"
	"nba-games-ingest/internal/config"
	"nba-games-ingest/internal/ingest"
	"nba-games-ingest/internal/logging"
	"nba-games-ingest/internal/secrets"
	"nba-games-ingest/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadIngest()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	logger = logger.With(zap.String(logging.FieldFunction, "fetch-games"))

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Fatal("load aws config", zap.Error(err))
	}

	h := ingest.NewHandler(
		secrets.NewParameterStore(ssm.NewFromConfig(awsCfg), cfg.SSMParamName, logger),
		balldontlie.NewClient(balldontlie.Config{BaseURL: cfg.BaseURL, Logger: logger}),
		storage.NewGamesStore(s3.NewFromConfig(awsCfg), cfg.BucketName, logger),
		logger,
	)
	lambda.Start(h.Handle)
}
