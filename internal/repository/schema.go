package repository

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// ApplySchema executes the embedded schema files in name order. Every
// statement is idempotent, so it is safe to run on each start.
func ApplySchema(ctx context.Context, db *pgxpool.Pool) error {
	names, err := fs.Glob(schemaFS, "schema/*.sql")
	if err != nil {
		return fmt.Errorf("list schema files: %w", err)
	}
	sort.Strings(names)

	for _, name := range names {
		stmt, err := schemaFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		slog.DebugContext(ctx, "Applying schema", slog.String("file", name))

		if _, err := db.Exec(ctx, string(stmt)); err != nil {
			return WrapError("apply_schema", fmt.Errorf("%s: %w", name, err))
		}
	}

	slog.InfoContext(ctx, "Schema applied", slog.Int("files", len(names)))
	return nil
}
