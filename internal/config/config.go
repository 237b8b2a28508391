package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	EnvBucketName    = "S3_BUCKET_NAME"
	EnvSSMParamName  = "SSM_PARAM_NAME"
	EnvBaseURL       = "BALLDONTLIE_BASE_URL"
	EnvLogLevel      = "LOG_LEVEL"
	EnvAthenaDB      = "ATHENA_DATABASE"
	EnvAthenaTable   = "ATHENA_TABLE"
	EnvAthenaOutput  = "ATHENA_OUTPUT"
	EnvAthenaWorkgrp = "ATHENA_WORKGROUP"

	DefaultLogLevel  = "info"
	DefaultWorkgroup = "primary"
)

// MissingEnvError reports required variables that were unset or blank.
type MissingEnvError struct {
	Names []string
}

func (e *MissingEnvError) Error() string {
	return fmt.Sprintf("missing env: %s", strings.Join(e.Names, ", "))
}

// Ingest is the configuration of the fetch-games function.
type Ingest struct {
	BucketName   string
	SSMParamName string
	BaseURL      string // empty means the client default
	LogLevel     string
}

// Catalog is the configuration of the register-partition function.
type Catalog struct {
	Database  string
	Table     string
	Output    string // s3://bucket/prefix/
	Workgroup string
	LogLevel  string
}

// LoadIngest reads the fetch-games environment. S3_BUCKET_NAME and
// SSM_PARAM_NAME are required.
func LoadIngest() (Ingest, error) {
	cfg := Ingest{
		BucketName:   getenv(EnvBucketName),
		SSMParamName: getenv(EnvSSMParamName),
		BaseURL:      getenv(EnvBaseURL),
		LogLevel:     envOrDefault(EnvLogLevel, DefaultLogLevel),
	}
	if err := requireSet(
		EnvBucketName, cfg.BucketName,
		EnvSSMParamName, cfg.SSMParamName,
	); err != nil {
		return Ingest{}, err
	}
	return cfg, nil
}

// LoadCatalog reads the register-partition environment.
func LoadCatalog() (Catalog, error) {
	cfg := Catalog{
		Database:  getenv(EnvAthenaDB),
		Table:     getenv(EnvAthenaTable),
		Output:    getenv(EnvAthenaOutput),
		Workgroup: envOrDefault(EnvAthenaWorkgrp, DefaultWorkgroup),
		LogLevel:  envOrDefault(EnvLogLevel, DefaultLogLevel),
	}
	if err := requireSet(
		EnvAthenaDB, cfg.Database,
		EnvAthenaTable, cfg.Table,
		EnvAthenaOutput, cfg.Output,
	); err != nil {
		return Catalog{}, err
	}
	if !strings.HasPrefix(cfg.Output, "s3://") {
		return Catalog{}, errors.New("ATHENA_OUTPUT must start with s3://")
	}
	return cfg, nil
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envOrDefault(key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

// requireSet takes name/value pairs and reports every blank value at once.
func requireSet(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return &MissingEnvError{Names: missing}
	}
	return nil
}
