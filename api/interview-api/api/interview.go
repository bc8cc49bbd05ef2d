// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

package interview_api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	internal_session "github.com/rapidaai/interview-api/api/interview-api/internal/session"
	internal_store "github.com/rapidaai/interview-api/api/interview-api/internal/store"
	internal_type "github.com/rapidaai/interview-api/api/interview-api/internal/type"
	"github.com/rapidaai/interview-api/config"
	"github.com/rapidaai/interview-api/pkg/commons"
	"github.com/rapidaai/interview-api/pkg/connectors"
	"github.com/rapidaai/interview-api/pkg/utils"
)

var sessionUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// InterviewApi exposes session lifecycle, answers and the media/event
// websocket over HTTP.
type InterviewApi struct {
	cfg      *config.AppConfig
	logger   commons.Logger
	store    internal_store.Store
	registry *SessionRegistry
}

func NewInterviewApi(cfg *config.AppConfig, logger commons.Logger, postgres connectors.PostgresConnector) *InterviewApi {
	store := internal_store.NewStore(logger, postgres)
	return &InterviewApi{
		cfg:      cfg,
		logger:   logger,
		store:    store,
		registry: NewSessionRegistry(cfg, logger, store),
	}
}

// Registry exposes the session registry for shutdown wiring.
func (iApi *InterviewApi) Registry() *SessionRegistry {
	return iApi.registry
}

type createSessionRequest struct {
	InterviewId  string `json:"interviewId" binding:"required"`
	VoiceEnabled *bool  `json:"voiceEnabled"`
	MediaGranted *bool  `json:"mediaGranted"`
}

type answerRequest struct {
	Text   string `json:"text"`
	Option string `json:"option"`
}

type voiceToggleRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// CreateSession builds a session for an interview. The session is idle until
// started.
//
// @Router /v1/interview/create [post]
func (iApi *InterviewApi) CreateSession(c *gin.Context) {
	var request createSessionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	opts := CreateOptions{
		InterviewId:  request.InterviewId,
		VoiceEnabled: true,
		MediaGranted: true,
	}
	if request.VoiceEnabled != nil {
		opts.VoiceEnabled = *request.VoiceEnabled
	}
	if request.MediaGranted != nil {
		opts.MediaGranted = *request.MediaGranted
	}

	sess, err := iApi.registry.Create(c.Request.Context(), opts)
	if err != nil {
		iApi.logger.Errorf("interview-api: create session failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "unable to create session, please try again in sometime"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"sessionId":   sess.Id,
			"interviewId": sess.InterviewId,
		},
	})
}

// StartSession fetches the question set and enters the first question.
//
// @Router /v1/interview/:sessionId/start [post]
func (iApi *InterviewApi) StartSession(c *gin.Context) {
	sess, ok := iApi.registry.Get(c.Param("sessionId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "session not found"})
		return
	}

	if err := sess.Controller().Start(c.Request.Context()); err != nil {
		if errors.Is(err, internal_type.ErrSourceUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "question service unavailable"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": iApi.stateOf(sess)})
}

// AdvanceSession finalizes the current question and moves to the next one.
//
// @Router /v1/interview/:sessionId/advance [post]
func (iApi *InterviewApi) AdvanceSession(c *gin.Context) {
	sess, ok := iApi.registry.Get(c.Param("sessionId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "session not found"})
		return
	}

	if err := sess.Controller().Advance(c.Request.Context()); err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": iApi.stateOf(sess)})
}

// SubmitAnswer buffers a typed answer or option selection for the current
// question. Voice transcripts still win at question exit.
//
// @Router /v1/interview/:sessionId/answer [post]
func (iApi *InterviewApi) SubmitAnswer(c *gin.Context) {
	sess, ok := iApi.registry.Get(c.Param("sessionId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "session not found"})
		return
	}

	var request answerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if request.Text != "" {
		sess.Controller().TypeAnswer(request.Text)
	}
	if request.Option != "" {
		sess.Controller().SelectOption(request.Option)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ToggleVoice switches voice input on or off; the change applies from the
// next question.
//
// @Router /v1/interview/:sessionId/voice [post]
func (iApi *InterviewApi) ToggleVoice(c *gin.Context) {
	sess, ok := iApi.registry.Get(c.Param("sessionId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "session not found"})
		return
	}

	var request voiceToggleRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	sess.Controller().SetVoiceEnabled(*request.Enabled)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetState reports the live session state.
//
// @Router /v1/interview/:sessionId/state [get]
func (iApi *InterviewApi) GetState(c *gin.Context) {
	sess, ok := iApi.registry.Get(c.Param("sessionId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": iApi.stateOf(sess)})
}

// GetResponses returns a session's responses: live ones for an active
// session, archived rows once the session has been removed.
//
// @Router /v1/interview/:sessionId/responses [get]
func (iApi *InterviewApi) GetResponses(c *gin.Context) {
	sessionId := c.Param("sessionId")

	if sess, ok := iApi.registry.Get(sessionId); ok {
		data := gin.H{
			"responses": sess.Controller().Responses(),
		}
		if evaluation := sess.Controller().Evaluation(); evaluation != nil {
			data["evaluation"] = evaluation.Result
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
		return
	}

	archived, err := iApi.store.GetSession(c.Request.Context(), sessionId)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "session not found"})
		return
	}
	responses, err := iApi.store.ListResponses(c.Request.Context(), sessionId)
	if err != nil {
		iApi.logger.Errorf("interview-api: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "unable to load responses"})
		return
	}

	data := gin.H{"responses": responses}
	if len(archived.Evaluation) > 0 {
		data["evaluation"] = json.RawMessage(archived.Evaluation)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// EndSession aborts a session and drops it from the registry. An aborted
// session is never scored.
//
// @Router /v1/interview/:sessionId [delete]
func (iApi *InterviewApi) EndSession(c *gin.Context) {
	if err := iApi.registry.Remove(c.Request.Context(), c.Param("sessionId")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (iApi *InterviewApi) stateOf(sess *Session) gin.H {
	ctrl := sess.Controller()
	data := gin.H{
		"sessionId": sess.Id,
		"state":     ctrl.State().String(),
	}
	if question, index, ok := ctrl.CurrentQuestion(); ok {
		data["question"] = question
		data["index"] = index
		data["remaining"] = ctrl.TimeRemaining()
	}
	if ctrl.State() == internal_type.StateFinished {
		data["responses"] = ctrl.Responses()
		if evaluation := ctrl.Evaluation(); evaluation != nil {
			data["evaluation"] = evaluation.Result
		}
	}
	return data
}

// =============================================================================
// Websocket
// =============================================================================

// clientFrame is the inbound text-message envelope. Candidate audio arrives
// as binary frames and never goes through this.
type clientFrame struct {
	Type string `json:"type"`
	Data []byte `json:"data"`
}

// SessionEvents upgrades to a websocket carrying the session's media in both
// directions: inbound binary frames are candidate LINEAR16 audio, inbound
// text frames are video-frame markers; outbound text frames are controller
// events, outbound binary frames are narration audio.
//
// @Router /v1/interview/events/:sessionId [get]
func (iApi *InterviewApi) SessionEvents(c *gin.Context) {
	sess, ok := iApi.registry.Get(c.Param("sessionId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "session not found"})
		return
	}

	conn, err := sessionUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		iApi.logger.Errorf("interview-api: websocket upgrade failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unable to upgrade to websocket"})
		return
	}
	defer conn.Close()

	done := make(chan struct{})
	utils.Go(c.Request.Context(), func() {
		iApi.writeLoop(sess, conn, done)
	})
	iApi.readLoop(c, sess, conn)
	close(done)
}

// writeLoop pushes controller events and narration audio until the reader
// side ends the connection.
func (iApi *InterviewApi) writeLoop(sess *Session, conn *websocket.Conn, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case event := <-sess.Events():
			if err := conn.WriteJSON(event); err != nil {
				iApi.logger.Warnf("interview-api: event write for %s failed: %v", sess.Id, err)
				return
			}
			if event.Type == internal_session.EventFinished {
				return
			}
		case audio := <-sess.Narration():
			if err := conn.WriteMessage(websocket.BinaryMessage, audio); err != nil {
				iApi.logger.Warnf("interview-api: narration write for %s failed: %v", sess.Id, err)
				return
			}
		}
	}
}

// readLoop ingests candidate media until the client disconnects. A dropped
// connection never ends the session; the countdown keeps running and the
// client can reconnect.
func (iApi *InterviewApi) readLoop(c *gin.Context, sess *Session, conn *websocket.Conn) {
	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				iApi.logger.Warnf("interview-api: websocket for %s closed: %v", sess.Id, err)
			}
			return
		}

		switch messageType {
		case websocket.BinaryMessage:
			if err := sess.Controller().Ingest(c.Request.Context(), internal_type.UserAudioPacket{Audio: payload}); err != nil {
				iApi.logger.Errorf("interview-api: audio ingest for %s failed: %v", sess.Id, err)
			}
		case websocket.TextMessage:
			var frame clientFrame
			if err := json.Unmarshal(payload, &frame); err != nil {
				iApi.logger.Warnf("interview-api: unreadable frame for %s: %v", sess.Id, err)
				continue
			}
			if frame.Type == "video_frame" {
				if err := sess.Controller().Ingest(c.Request.Context(), internal_type.UserVideoPacket{Frame: frame.Data}); err != nil {
					iApi.logger.Errorf("interview-api: video ingest for %s failed: %v", sess.Id, err)
				}
			}
		}
	}
}
