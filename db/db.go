package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/zap"

	"github.com/padraicbc/rogainizer/config"
	"github.com/padraicbc/rogainizer/models"
)

// Setup opens a PostgreSQL connection using the provided config.
// The returned handle is shared by every request for the life of the process.
func Setup(ctx context.Context, cfg *config.Config) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.PostgresDSN())))
	db := bun.NewDB(sqldb, pgdialect.New())

	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	return db, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func HealthCheck(ctx context.Context, db bun.IDB) error {
	var n int
	return db.NewRaw("SELECT 1").Scan(ctx, &n)
}

// CreateTables creates the tables for the given event schema in dependency order.
func CreateTables(ctx context.Context, db *bun.DB, schema string, log *zap.Logger) error {
	switch schema {
	case config.SchemaCourses:
		return createCoursesSchema(ctx, db)
	case config.SchemaResults:
		return createResultsSchema(ctx, db, log)
	default:
		return fmt.Errorf("unknown event schema %q", schema)
	}
}

func createCoursesSchema(ctx context.Context, db *bun.DB) error {
	if err := createTable(ctx, db, (*models.Event)(nil)); err != nil {
		return err
	}
	if _, err := db.NewCreateTable().Model((*models.Team)(nil)).
		IfNotExists().
		ForeignKey(`(event_id) REFERENCES events (id) ON DELETE CASCADE`).
		Exec(ctx); err != nil {
		return fmt.Errorf("creating table for %T: %w", (*models.Team)(nil), err)
	}
	if _, err := db.NewCreateIndex().Model((*models.Team)(nil)).
		IfNotExists().
		Index("teams_event_id_idx").
		Column("event_id").
		Exec(ctx); err != nil {
		return fmt.Errorf("creating teams index: %w", err)
	}
	return createTable(ctx, db, (*models.User)(nil))
}

func createResultsSchema(ctx context.Context, db *bun.DB, log *zap.Logger) error {
	tables := []interface{}{
		(*models.ResultEvent)(nil),
		(*models.User)(nil),
	}
	for _, model := range tables {
		if err := createTable(ctx, db, model); err != nil {
			return err
		}
	}

	// Tables created before the natural key existed get it added here.
	constraint := `DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'events_natural_key') THEN ALTER TABLE events ADD CONSTRAINT events_natural_key UNIQUE (year, series, name); END IF; END $$`
	if _, err := db.ExecContext(ctx, constraint); err != nil {
		log.Warn("natural key constraint not applied", zap.Error(err))
	}
	return nil
}

func createTable(ctx context.Context, db *bun.DB, model interface{}) error {
	if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("creating table for %T: %w", model, err)
	}
	return nil
}
