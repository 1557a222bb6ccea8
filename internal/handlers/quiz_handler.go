package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/friendr/quiz-session/internal/models"
	"github.com/friendr/quiz-session/internal/services"
	"github.com/friendr/quiz-session/internal/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SessionStore is the part of the session manager the handlers use
type SessionStore interface {
	Create() *services.SessionEntry
	Get(id string) (*services.SessionEntry, error)
	Delete(id string) error
}

// SelectAnswerRequest is one "answer selected" event from the quiz page
type SelectAnswerRequest struct {
	Field models.AnswerField `json:"field" binding:"required"`
	Value interface{}        `json:"value"`
}

// ResetRequest carries the user's answer to the reset confirmation
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// SessionState is what the quiz page renders
type SessionState struct {
	ID              string                `json:"id"`
	Answers         models.AnswerSet      `json:"answers"`
	Progress        models.Progress       `json:"progress"`
	ProgressLabel   string                `json:"progress_label"`
	Complete        bool                  `json:"complete"`
	QuestionStatus  models.QuestionStatus `json:"question_status"`
	FirstUnanswered models.AnswerField    `json:"first_unanswered,omitempty"`
	InFlight        bool                  `json:"in_flight"`
}

type NotificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
	services.FeedSnapshot
}

type QuizHandler struct {
	BaseHandler
	sessions      SessionStore
	submitTimeout time.Duration
}

func NewQuizHandler(sessions SessionStore, submitTimeout time.Duration, logger utils.Logger) *QuizHandler {
	return &QuizHandler{
		BaseHandler:   NewBaseHandler(logger),
		sessions:      sessions,
		submitTimeout: submitTimeout,
	}
}

// CreateSession starts a quiz for a new page view
func (h *QuizHandler) CreateSession(c *gin.Context) {
	entry := h.sessions.Create()
	h.RespondWithSuccess(c, http.StatusCreated, "Quiz session created", stateOf(entry.Session))
}

// GetSession returns the current answers and progress
func (h *QuizHandler) GetSession(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Quiz session", Data: stateOf(entry.Session)})
}

// SelectAnswer records one answer
func (h *QuizHandler) SelectAnswer(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}

	var req SelectAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	if err := entry.Session.SelectAnswer(req.Field, req.Value); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Answer recorded", Data: stateOf(entry.Session)})
}

// SubmitQuiz sends the answers to the matching backend
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.submitTimeout)
	defer cancel()

	outcome, err := entry.Session.Submit(ctx)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, "Quiz submitted", outcome)
}

// ResetQuiz clears the answers when the user confirmed
func (h *QuizHandler) ResetQuiz(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}

	var req ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", nil, err.Error())
		return
	}

	reset := entry.Session.Reset(req.Confirm)
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Quiz reset handled",
		Data: gin.H{
			"reset":   reset,
			"session": stateOf(entry.Session),
		},
	})
}

// GetNotifications hands pending notifications to the page
func (h *QuizHandler) GetNotifications(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}

	notifications, snapshot := entry.Feed.Drain()
	c.JSON(http.StatusOK, NotificationsResponse{
		Notifications: notifications,
		FeedSnapshot:  snapshot,
	})
}

// ExportAnswers downloads the answers as an Excel workbook
func (h *QuizHandler) ExportAnswers(c *gin.Context) {
	entry, ok := h.lookup(c)
	if !ok {
		return
	}

	data, err := services.ExportAnswersToExcel(entry.Session.Answers())
	if err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to export answers", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=quiz-%s.xlsx", entry.Session.ID()))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// CloseSession forgets the session, e.g. when the page is left
func (h *QuizHandler) CloseSession(c *gin.Context) {
	id := ParseSessionIDParam(c, "id")
	if id == "" {
		return
	}

	if err := h.sessions.Delete(id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *QuizHandler) lookup(c *gin.Context) (*services.SessionEntry, bool) {
	id := ParseSessionIDParam(c, "id")
	if id == "" {
		return nil, false
	}

	entry, err := h.sessions.Get(id)
	if err != nil {
		h.handleServiceError(c, err)
		return nil, false
	}
	return entry, true
}

func stateOf(session *services.QuizSession) SessionState {
	answers := session.Answers()
	progress := models.NewProgress(answers.AnsweredCount())
	first, _ := answers.FirstUnanswered()

	return SessionState{
		ID:              session.ID(),
		Answers:         answers,
		Progress:        progress,
		ProgressLabel:   progress.String(),
		Complete:        answers.IsComplete(),
		QuestionStatus:  answers.QuestionStatus(),
		FirstUnanswered: first,
		InFlight:        session.InFlight(),
	}
}

func (h *QuizHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, "Validation failed", nil, validationErrors)
		return
	}

	var validationError *services.ValidationError
	if errors.As(err, &validationError) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: "Please answer all questions before submitting",
			Details: validationError,
			Code:    "incomplete",
		})
		return
	}

	var transportError *services.TransportError
	if errors.As(err, &transportError) {
		h.RespondWithError(c, http.StatusBadGateway, "Matching service unavailable", err)
		return
	}

	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Quiz session not found", nil)
	case errors.Is(err, services.ErrUnknownField):
		h.RespondWithError(c, http.StatusBadRequest, "Unknown quiz field", nil, err.Error())
	case errors.Is(err, services.ErrSubmissionBusy):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "A submission is already in progress",
			Code:    "busy",
		})
	case errors.Is(err, services.ErrSubmissionDiscarded):
		c.JSON(http.StatusGone, ErrorResponse{
			Message: "The quiz was reset before the submission finished",
			Code:    "discarded",
		})
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
