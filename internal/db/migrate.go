// Package db owns the database schema.
package db

import (
	"context"
	_ "embed"
	"fmt"

	"unishift/internal/infra"
)

// NotifyChannel is the LISTEN channel the questions trigger publishes on.
const NotifyChannel = "questions_created"

//go:embed schema.sql
var schemaSQL string

// Schema returns the embedded schema script.
func Schema() string { return schemaSQL }

// Migrate applies the schema. Every statement is idempotent.
func Migrate(ctx context.Context, exec infra.SQLExecutor) error {
	if _, err := exec.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
