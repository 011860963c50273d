package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"Inkwell/internal/config"
	"Inkwell/internal/core/categories"
	"Inkwell/internal/core/posts"
	"Inkwell/internal/core/users"
	"Inkwell/internal/db/gormstore"
	"Inkwell/internal/db/migrations"
	postgresRepo "Inkwell/internal/db/postgres"
)

// store bundles the repositories of whichever driver DB_DRIVER selects
type store struct {
	users      users.UserRepository
	posts      posts.Repository
	likes      posts.LikeRepository
	categories categories.Repository
	sqlDB      *sql.DB
	gormDB     *gorm.DB
	driver     string
}

func (s *store) Close() error {
	return s.sqlDB.Close()
}

// services builds the domain services on top of the store
func (s *store) services(logger *slog.Logger) (users.Service, posts.Service, categories.Service) {
	return users.NewUserService(s.users, logger),
		posts.NewPostService(s.posts, s.likes, logger),
		categories.NewCategoryService(s.categories, logger)
}

// openStore connects to the configured database and verifies the connection
func openStore(ctx context.Context, cfg config.Config) (*store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := pingWithTimeout(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}

		return &store{
			users:      postgresRepo.NewUserRepository(db),
			posts:      postgresRepo.NewPostRepository(db),
			likes:      postgresRepo.NewLikeRepository(db),
			categories: postgresRepo.NewCategoryRepository(db),
			sqlDB:      db,
			driver:     cfg.DBDriver,
		}, nil

	case config.DriverGormPostgres, config.DriverSQLite:
		dialect := gormstore.DialectPostgres
		if cfg.DBDriver == config.DriverSQLite {
			dialect = gormstore.DialectSQLite
		}

		gdb, err := gormstore.Open(dialect, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		db, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get connection pool: %w", err)
		}
		if err := pingWithTimeout(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}

		return &store{
			users:      gormstore.NewUserRepository(gdb),
			posts:      gormstore.NewPostRepository(gdb),
			likes:      gormstore.NewLikeRepository(gdb),
			categories: gormstore.NewCategoryRepository(gdb),
			sqlDB:      db,
			gormDB:     gdb,
			driver:     cfg.DBDriver,
		}, nil
	}

	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// migrateUp brings the schema up to date. Postgres schemas are owned by the
// goose migrations; SQLite is created from the gorm models.
func (s *store) migrateUp() error {
	if s.driver == config.DriverSQLite {
		return gormstore.AutoMigrate(s.gormDB)
	}
	return runGoose(s.sqlDB, "up")
}

func runGoose(db *sql.DB, command string) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	var err error
	switch command {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	default:
		return fmt.Errorf("unknown migrate command %q", command)
	}
	if err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}
	return nil
}

func pingWithTimeout(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}
