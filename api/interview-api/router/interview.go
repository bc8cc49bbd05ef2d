// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package interview_routers

import (
	"github.com/gin-gonic/gin"
	interviewApi "github.com/rapidaai/interview-api/api/interview-api/api"
	"github.com/rapidaai/interview-api/config"
	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/rapidaai/interview-api/pkg/connectors"
)

// InterviewApiRoute mounts the interview session endpoints and returns the
// api so the caller can drain live sessions on shutdown.
func InterviewApiRoute(
	cfg *config.AppConfig, engine *gin.Engine, logger commons.Logger,
	postgres connectors.PostgresConnector) *interviewApi.InterviewApi {
	apiv1 := engine.Group("v1/interview")
	sessionApi := interviewApi.NewInterviewApi(cfg, logger, postgres)
	{
		apiv1.POST("/create", sessionApi.CreateSession)
		apiv1.POST("/:sessionId/start", sessionApi.StartSession)
		apiv1.POST("/:sessionId/advance", sessionApi.AdvanceSession)
		apiv1.POST("/:sessionId/answer", sessionApi.SubmitAnswer)
		apiv1.POST("/:sessionId/voice", sessionApi.ToggleVoice)
		apiv1.GET("/:sessionId/state", sessionApi.GetState)
		apiv1.GET("/:sessionId/responses", sessionApi.GetResponses)
		apiv1.DELETE("/:sessionId", sessionApi.EndSession)

		// media + event stream
		apiv1.GET("/events/:sessionId", sessionApi.SessionEvents)
	}
	return sessionApi
}
