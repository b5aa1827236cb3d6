package migrator

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const migrationsDir = "migrations"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Migrator обёртка над goose
// Миграции встроены в бинарник и применяются через отдельный короткоживущий пул pgx
type Migrator struct {
	pool   *pgxpool.Pool
	db     *sql.DB
	logger Logger
}

// New создаёт мигратор для базы по DSN
func New(ctx context.Context, dsn string, logger Logger) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create migration pool: %w", err)
	}

	// goose работает с *sql.DB
	return &Migrator{
		pool:   pool,
		db:     stdlib.OpenDBFromPool(pool),
		logger: logger,
	}, nil
}

// Run применяет все pending миграции
func (m *Migrator) Run(ctx context.Context) error {
	before, err := m.Version(ctx)
	if err != nil {
		return err
	}

	if err := goose.UpContext(ctx, m.db, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	after, err := m.Version(ctx)
	if err != nil {
		return err
	}

	m.logger.Info("Migrator: schema version %d -> %d", before, after)
	return nil
}

// Version показывает текущую версию схемы
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("get schema version: %w", err)
	}
	return version, nil
}

// Close закрывает соединение мигратора и его пул
func (m *Migrator) Close() error {
	err := m.db.Close()
	m.pool.Close()
	return err
}
