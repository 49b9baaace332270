// Package dbtest runs package tests against a real Postgres. TEST_DATABASE_URL
// points at an existing database; without it a disposable container is
// started. Tests are skipped when neither is available or with -short.
package dbtest

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/randevu-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/randevu-scheduler/internal/db"
)

const image = "postgres:16-alpine"

var (
	shared   *gorm.DB
	setupErr error
)

// Run is meant to be called from TestMain.
func Run(m *testing.M) int {
	flag.Parse()

	if testing.Short() {
		setupErr = fmt.Errorf("postgres tests disabled in short mode")
		return m.Run()
	}

	ctx := context.Background()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		var (
			terminate func()
			err       error
		)
		dsn, terminate, err = startContainer(ctx)
		if err != nil {
			setupErr = err
			return m.Run()
		}
		defer terminate()
	}

	shared, setupErr = dbpkg.NewDB(&config.Config{Env: "test", DBUrl: dsn})
	if setupErr == nil {
		defer func() {
			if sqlDB, err := shared.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}()
	}

	return m.Run()
}

// DB returns the shared database with every table emptied.
func DB(t *testing.T) *gorm.DB {
	t.Helper()

	if setupErr != nil {
		t.Skipf("postgres unavailable: %v", setupErr)
	}
	if shared == nil {
		t.Skip("postgres unavailable: dbtest.Run was not called from TestMain")
	}

	err := shared.Exec(`TRUNCATE appointments, audit_logs, users RESTART IDENTITY CASCADE`).Error
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return shared
}

func startContainer(ctx context.Context) (dsn string, terminate func(), err error) {
	// testcontainers panics when it cannot find a docker host
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("docker: %v", r)
		}
	}()

	ctr, err := tcpostgres.Run(ctx, image,
		tcpostgres.WithDatabase("randevu_test"),
		tcpostgres.WithUsername("randevu"),
		tcpostgres.WithPassword("randevu"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		if ctr != nil {
			_ = ctr.Terminate(ctx)
		}
		return "", nil, fmt.Errorf("start postgres container: %w", err)
	}

	terminate = func() {
		if err := ctr.Terminate(context.Background()); err != nil {
			log.Warn().Err(err).Msg("terminate postgres container")
		}
	}

	dsn, err = ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		terminate()
		return "", nil, fmt.Errorf("postgres connection string: %w", err)
	}
	return dsn, terminate, nil
}
