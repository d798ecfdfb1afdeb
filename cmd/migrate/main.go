package main

// Run database migrations:
//   go run ./cmd/migrate [up|status|down]

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/telemetry"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("failed to connect database", map[string]any{"err": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := run(ctx, command, sqlDB); err != nil {
		telemetry.Error("migration failed", map[string]any{"command": command, "err": err})
		sqlDB.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, sqlDB *sql.DB) error {
	switch command {
	case "up":
		return db.RunMigrations(ctx, sqlDB)
	case "status":
		return db.MigrationStatus(ctx, sqlDB)
	case "down":
		return db.RollbackLast(ctx, sqlDB)
	default:
		return fmt.Errorf("unknown command %q (want up, status or down)", command)
	}
}
