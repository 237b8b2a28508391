package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"go.uber.org/zap"

	"nba-games-ingest/internal/catalog"
	"nba-games-ingest/internal/config"
	"nba-games-ingest/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadCatalog()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	logger = logger.With(zap.String(logging.FieldFunction, "register-partition"))

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Fatal("load aws config", zap.Error(err))
	}

	r, err := catalog.NewRegistrar(athena.NewFromConfig(awsCfg), cfg, logger)
	if err != nil {
		logger.Fatal("build registrar", zap.Error(err))
	}
	lambda.Start(r.Handle)
}
