/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// AWS holds the settings needed to reach the DynamoDB table.
type AWS struct {
	AccessKey string
	SecretKey string
	Region    string
	Table     string
}

// LoadAWS loads the given .env files (".env" when none is given) without
// overriding variables already set, then reads AWS_ACCESS_KEY, AWS_SECRET_KEY,
// AWS_REGION and AWS_DDB_TABLE. A missing .env file is not an error.
func LoadAWS(envFiles ...string) (AWS, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return AWS{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := AWS{
		AccessKey: os.Getenv("AWS_ACCESS_KEY"),
		SecretKey: os.Getenv("AWS_SECRET_KEY"),
		Region:    os.Getenv("AWS_REGION"),
		Table:     os.Getenv("AWS_DDB_TABLE"),
	}
	if cfg.Region == "" || cfg.Table == "" {
		return cfg, fmt.Errorf("AWS_REGION and AWS_DDB_TABLE must be set")
	}
	return cfg, nil
}
