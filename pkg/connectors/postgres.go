// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package connectors

import (
	"context"
	"fmt"

	"github.com/rapidaai/interview-api/config"
	"github.com/rapidaai/interview-api/pkg/commons"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresConnector hands out the shared gorm handle. Session-scoped code
// always goes through DB(ctx) so the request context bounds every query.
type PostgresConnector interface {
	DB(ctx context.Context) *gorm.DB
	Close() error
}

type postgresConnector struct {
	db     *gorm.DB
	logger commons.Logger
}

// NewPostgresConnector opens the archive database connection pool.
func NewPostgresConnector(cfg *config.AppConfig, logger commons.Logger) (PostgresConnector, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresConfig.Host,
		cfg.PostgresConfig.Port,
		cfg.PostgresConfig.User,
		cfg.PostgresConfig.Password,
		cfg.PostgresConfig.DbName,
		cfg.PostgresConfig.SslMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	if cfg.PostgresConfig.MaxOpenConnection > 0 {
		sqlDB.SetMaxOpenConns(cfg.PostgresConfig.MaxOpenConnection)
	}
	if cfg.PostgresConfig.MaxIdleConnection > 0 {
		sqlDB.SetMaxIdleConns(cfg.PostgresConfig.MaxIdleConnection)
	}

	logger.Infof("connected to postgres %s:%d/%s",
		cfg.PostgresConfig.Host, cfg.PostgresConfig.Port, cfg.PostgresConfig.DbName)

	return &postgresConnector{db: db, logger: logger}, nil
}

// NewPostgresConnectorWithDB wraps an existing gorm handle. Used by tests to
// inject a mocked connection.
func NewPostgresConnectorWithDB(db *gorm.DB, logger commons.Logger) PostgresConnector {
	return &postgresConnector{db: db, logger: logger}
}

func (c *postgresConnector) DB(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx)
}

func (c *postgresConnector) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
