// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package internal_store

import (
	"context"
	"fmt"

	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/rapidaai/interview-api/pkg/connectors"
	"gorm.io/gorm"
)

// Store archives finished sessions. Archiving is best-effort: a failure is
// logged by the caller and never blocks session termination.
type Store interface {
	// ArchiveSession writes the session row and its responses atomically.
	ArchiveSession(ctx context.Context, session *InterviewSession, responses []*InterviewResponse) error

	// GetSession loads one archived session without its responses.
	GetSession(ctx context.Context, id string) (*InterviewSession, error)

	// ListResponses loads a session's responses in question order.
	ListResponses(ctx context.Context, sessionId string) ([]*InterviewResponse, error)
}

type postgresStore struct {
	logger    commons.Logger
	connector connectors.PostgresConnector
}

// NewStore builds the archive store over the shared Postgres connector.
func NewStore(logger commons.Logger, connector connectors.PostgresConnector) Store {
	return &postgresStore{
		logger:    logger,
		connector: connector,
	}
}

func (s *postgresStore) ArchiveSession(ctx context.Context, session *InterviewSession, responses []*InterviewResponse) error {
	err := s.connector.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		for _, response := range responses {
			response.SessionId = session.Id
			if err := tx.Create(response).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store: archiving session %s failed: %w", session.Id, err)
	}
	return nil
}

func (s *postgresStore) GetSession(ctx context.Context, id string) (*InterviewSession, error) {
	var session InterviewSession
	if err := s.connector.DB(ctx).First(&session, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("store: loading session %s failed: %w", id, err)
	}
	return &session, nil
}

func (s *postgresStore) ListResponses(ctx context.Context, sessionId string) ([]*InterviewResponse, error) {
	var responses []*InterviewResponse
	if err := s.connector.DB(ctx).
		Where("session_id = ?", sessionId).
		Order("position asc").
		Find(&responses).Error; err != nil {
		return nil, fmt.Errorf("store: loading responses for %s failed: %w", sessionId, err)
	}
	return responses, nil
}
