// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package health_check_api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rapidaai/interview-api/config"
	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/rapidaai/interview-api/pkg/connectors"
)

type HealthCheckApi struct {
	cfg      *config.AppConfig
	logger   commons.Logger
	postgres connectors.PostgresConnector
}

func New(cfg *config.AppConfig, logger commons.Logger, postgres connectors.PostgresConnector) *HealthCheckApi {
	return &HealthCheckApi{
		cfg:      cfg,
		logger:   logger,
		postgres: postgres,
	}
}

// Healthz reports process liveness.
func (hcApi *HealthCheckApi) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": hcApi.cfg.Name,
		"version": hcApi.cfg.Version,
	})
}

// Readiness reports whether the archive database is reachable.
func (hcApi *HealthCheckApi) Readiness(c *gin.Context) {
	var one int
	if err := hcApi.postgres.DB(c.Request.Context()).Raw("SELECT 1").Scan(&one).Error; err != nil {
		hcApi.logger.Errorf("health-check: postgres unreachable: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
