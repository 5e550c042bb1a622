package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/rogainizer/apperr"
	bundb "github.com/padraicbc/rogainizer/db"
	"github.com/padraicbc/rogainizer/models"
	"github.com/padraicbc/rogainizer/normalize"
)

const batchSize = 500

type step struct {
	table string
	fn    func(ctx context.Context, my *sql.DB, pg *bun.DB) (int, error)
}

func migrate(ctx context.Context, e *env, dsn string) error {
	my, err := openMySQL(dsn)
	if err != nil {
		return err
	}
	defer my.Close()
	if err := my.PingContext(ctx); err != nil {
		return fmt.Errorf("ping mysql: %w", err)
	}
	e.log.Info("connected to legacy MySQL")

	if err := bundb.CreateTables(ctx, e.db, e.cfg.EventSchema, e.log); err != nil {
		return err
	}

	steps := []step{{"events", migrateEvents}, {"teams", migrateTeams}, {"users", migrateUsers}}
	if e.cfg.ScoredEvents() {
		steps = []step{{"events", migrateResultEvents}, {"users", migrateUsers}}
	}

	for _, s := range steps {
		n, err := s.fn(ctx, my, e.db)
		if errors.Is(err, apperr.ErrSchema) {
			e.log.Warn("legacy table missing, skipped", zap.String("table", s.table))
			continue
		}
		if err != nil {
			return fmt.Errorf("migrate %s: %w", s.table, err)
		}
		e.log.Info("table migrated", zap.String("table", s.table), zap.Int("rows", n))
	}

	tables := make([]string, 0, len(steps))
	for _, s := range steps {
		tables = append(tables, s.table)
	}
	resetSequences(ctx, e.db, tables, e.log)
	e.log.Info("migration complete")
	return nil
}

// openMySQL forces parseTime so DATETIME columns scan into time.Time.
func openMySQL(dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	conn, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db := sql.OpenDB(conn)
	db.SetMaxOpenConns(4)
	return db, nil
}

// bulkInsert inserts a batch, skipping rows that already exist (idempotent re-runs).
func bulkInsert[T any](ctx context.Context, pg *bun.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := pg.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	return err
}

// copyRows streams a legacy query into PostgreSQL in batches.
func copyRows[T any](ctx context.Context, my *sql.DB, pg *bun.DB, table, query string, scan func(*sql.Rows) (T, error)) (int, error) {
	rows, err := my.QueryContext(ctx, query)
	if err != nil {
		return 0, bundb.Classify(err, table)
	}
	defer rows.Close()

	batch := make([]T, 0, batchSize)
	total := 0
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return total, err
		}
		batch = append(batch, r)
		if len(batch) >= batchSize {
			if err := bulkInsert(ctx, pg, batch); err != nil {
				return total, bundb.Classify(err, table)
			}
			total += len(batch)
			batch = batch[:0]
		}
	}
	if err := rows.Err(); err != nil {
		return total, bundb.Classify(err, table)
	}
	if err := bulkInsert(ctx, pg, batch); err != nil {
		return total, bundb.Classify(err, table)
	}
	return total + len(batch), nil
}

func migrateEvents(ctx context.Context, my *sql.DB, pg *bun.DB) (int, error) {
	const q = `SELECT id, name, DATE_FORMAT(event_date, '%Y-%m-%d'), location, courses, categories FROM events`
	return copyRows(ctx, my, pg, "events", q, func(rows *sql.Rows) (models.Event, error) {
		var e models.Event
		err := rows.Scan(&e.ID, &e.Name, &e.Date, &e.Location, &e.Courses, &e.Categories)
		return e, err
	})
}

func migrateResultEvents(ctx context.Context, my *sql.DB, pg *bun.DB) (int, error) {
	const q = `SELECT id, year, series, name, DATE_FORMAT(event_date, '%Y-%m-%d'), COALESCE(organiser, ''), COALESCE(duration_hours, 0) FROM events`
	return copyRows(ctx, my, pg, "events", q, func(rows *sql.Rows) (models.ResultEvent, error) {
		var e models.ResultEvent
		err := rows.Scan(&e.ID, &e.Year, &e.Series, &e.Name, &e.Date, &e.Organiser, &e.DurationHours)
		return e, err
	})
}

func migrateTeams(ctx context.Context, my *sql.DB, pg *bun.DB) (int, error) {
	const q = `SELECT id, event_id, name, competitors, course, category, COALESCE(score, 0) FROM teams`
	return copyRows(ctx, my, pg, "teams", q, func(rows *sql.Rows) (models.Team, error) {
		var t models.Team
		err := rows.Scan(&t.ID, &t.EventID, &t.Name, &t.Competitors, &t.Course, &t.Category, &t.Score)
		t.Competitors = normalize.Competitors(t.Competitors)
		return t, err
	})
}

func migrateUsers(ctx context.Context, my *sql.DB, pg *bun.DB) (int, error) {
	const q = `SELECT id, name, email, created_at FROM users`
	return copyRows(ctx, my, pg, "users", q, func(rows *sql.Rows) (models.User, error) {
		var u models.User
		var created sql.NullTime
		err := rows.Scan(&u.ID, &u.Name, &u.Email, &created)
		if created.Valid {
			u.CreatedAt = created.Time
		}
		return u, err
	})
}

// resetSequences advances each serial to MAX(id) so new inserts don't conflict.
func resetSequences(ctx context.Context, pg *bun.DB, tables []string, log *zap.Logger) {
	for _, table := range tables {
		q := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 1))",
			table,
		)
		if _, err := pg.ExecContext(ctx, q); err != nil {
			log.Warn("reset sequence", zap.String("table", table), zap.Error(err))
		}
	}
}
