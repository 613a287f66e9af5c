package testinfra

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var Pool *pgxpool.Pool

func init() {
	Pool = SetupDB()
}

func SetupDB() *pgxpool.Pool {

	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:17.2-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_PASSWORD": "password",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections"),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	if err != nil {
		log.Panicf("start postgres: %v", err)
	}

	pgHostPort, err := pgC.Endpoint(ctx, "")
	if err != nil {
		log.Panicf("postgres endpoint: %v", err)
	}
	pgDSN := fmt.Sprintf("postgres://postgres:password@%s/testdb?sslmode=disable", pgHostPort)

	pool, err := pgxpool.New(ctx, pgDSN)
	if err != nil {
		log.Panicf("pgxpool connect: %v", err)
	}

	ok := false
	for i := 0; i < 20; i++ {
		slog.Info("ping db", "try", i)
		ctxPing, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
		err = pool.Ping(ctxPing)
		cancel()
		if err == nil {
			ok = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !ok {
		log.Panic("db did not respond after 20 attempts")
	}

	_, err = pool.Exec(ctx, `
		CREATE SCHEMA IF NOT EXISTS dirmaster;
		CREATE TABLE IF NOT EXISTS dirmaster.owners (
		  id UUID PRIMARY KEY,
		  email TEXT UNIQUE NOT NULL,
		  name TEXT,
		  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS dirmaster.projects (
		  id UUID PRIMARY KEY,
		  owner_id UUID NOT NULL REFERENCES dirmaster.owners(id),
		  name VARCHAR(100) NOT NULL,
		  slug VARCHAR(60) UNIQUE NOT NULL,
		  domain VARCHAR(255),
		  settings JSONB NOT NULL DEFAULT '{}',
		  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS dirmaster.entries (
		  id UUID PRIMARY KEY,
		  project_id UUID NOT NULL REFERENCES dirmaster.projects(id),
		  title VARCHAR(200) NOT NULL,
		  slug VARCHAR(200) NOT NULL,
		  content TEXT NOT NULL DEFAULT '',
		  status VARCHAR(20) NOT NULL,
		  metadata JSONB NOT NULL DEFAULT '{}',
		  image_url TEXT,
		  rejection_reason TEXT,
		  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		  published_at TIMESTAMPTZ,
		  UNIQUE (project_id, slug)
		);
		CREATE TABLE IF NOT EXISTS dirmaster.outbox (
		  id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		  event VARCHAR(60) NOT NULL,
		  status SMALLINT NOT NULL DEFAULT 0,
		  payload JSONB NOT NULL,
		  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	if err != nil {
		log.Panicf("create tables: %v", err)
	}

	return pool
}
