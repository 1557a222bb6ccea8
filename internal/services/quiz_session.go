package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/friendr/quiz-session/internal/models"
	"github.com/friendr/quiz-session/internal/validator"
)

const (
	msgIncomplete      = "Please answer all questions before submitting!"
	msgSubmissionError = "Something went wrong while finding your matches. Please try again."
	msgReset           = "Quiz has been reset!"
)

// MatchClient sends a finished quiz to the matching backend.
type MatchClient interface {
	Submit(ctx context.Context, payload models.SubmissionPayload) (json.RawMessage, error)
}

// QuizSession holds the answers of one quiz-taking page view and drives its
// submission. At most one submission is in flight at a time.
type QuizSession struct {
	id        string
	client    MatchClient
	notifier  Notifier
	validator *validator.Validator
	logger    *slog.Logger

	mu         sync.Mutex
	answers    models.AnswerSet
	inFlight   bool
	generation uint64
	cancel     context.CancelFunc
}

func NewQuizSession(id string, client MatchClient, notifier Notifier, validator *validator.Validator, logger *slog.Logger) *QuizSession {
	if notifier == nil {
		notifier = Notifiers()
	}
	return &QuizSession{
		id:        id,
		client:    client,
		notifier:  notifier,
		validator: validator,
		logger:    logger.With("session_id", id),
		answers:   models.NewAnswerSet(),
	}
}

func (s *QuizSession) ID() string {
	return s.id
}

// Answers returns a copy of the current answers.
func (s *QuizSession) Answers() models.AnswerSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.Clone()
}

func (s *QuizSession) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.IsComplete()
}

func (s *QuizSession) IsAnswered(field models.AnswerField) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.IsAnswered(field)
}

func (s *QuizSession) FirstUnanswered() (models.AnswerField, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.FirstUnanswered()
}

func (s *QuizSession) Progress() models.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.NewProgress(s.answers.AnsweredCount())
}

func (s *QuizSession) QuestionStatus() models.QuestionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answers.QuestionStatus()
}

func (s *QuizSession) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

func (s *QuizSession) FormatPayload() models.SubmissionPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.NewSubmissionPayload(s.answers)
}

// SelectAnswer records one answer. Importance fields take an integer 1-5,
// the others one of their listed choices.
func (s *QuizSession) SelectAnswer(field models.AnswerField, value interface{}) error {
	if !field.IsKnown() {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := s.validator.Answer().Apply(s.answers, field, value)
	if err != nil {
		s.logger.Debug("Rejected quiz answer", "field", field, "error", err)
		return err
	}
	s.answers = updated
	return nil
}

// Submit validates the answers and sends them to the matching backend. It
// blocks until the backend answers or ctx is done; other session methods stay
// usable meanwhile.
func (s *QuizSession) Submit(ctx context.Context) (*models.SubmissionOutcome, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrSubmissionBusy
	}

	if field, missing := s.answers.FirstUnanswered(); missing {
		s.mu.Unlock()
		s.logger.Info("Quiz submitted incomplete", "first_unanswered", field)
		s.notifier.Notify(msgIncomplete, models.NotificationError, models.DefaultNotificationDuration)
		s.notifier.HighlightField(field)
		return nil, NewValidationError(string(field), "is required", nil)
	}

	payload := models.NewSubmissionPayload(s.answers)
	ctx, cancel := context.WithCancel(ctx)
	s.inFlight = true
	s.cancel = cancel
	generation := s.generation
	s.mu.Unlock()

	defer cancel()

	s.logger.Info("Submitting quiz answers")
	s.notifier.ShowProgress()

	response, err := s.client.Submit(ctx, payload)

	s.mu.Lock()
	if s.generation != generation {
		s.mu.Unlock()
		s.logger.Info("Discarding submission result from a previous quiz", "error", err)
		return nil, ErrSubmissionDiscarded
	}
	s.inFlight = false
	s.cancel = nil
	s.mu.Unlock()

	s.notifier.HideProgress()

	if err != nil {
		s.logger.Error("Quiz submission failed", "error", err)
		s.notifier.Notify(msgSubmissionError, models.NotificationError, models.DefaultNotificationDuration)
		return nil, &TransportError{Err: err}
	}

	s.logger.Info("Quiz submitted successfully")
	s.notifier.Notify(successMessage(payload), models.NotificationSuccess, models.SuccessNotificationDuration)

	return &models.SubmissionOutcome{
		Payload:  payload,
		Response: response,
	}, nil
}

// Reset restores the default answers when confirmed. Any submission in
// flight is cancelled and its result ignored.
func (s *QuizSession) Reset(confirmed bool) bool {
	if !confirmed {
		return false
	}

	s.mu.Lock()
	wasInFlight := s.discardLocked()
	s.answers = models.NewAnswerSet()
	s.mu.Unlock()

	s.logger.Info("Quiz reset", "cancelled_submission", wasInFlight)
	if wasInFlight {
		s.notifier.HideProgress()
	}
	s.notifier.Notify(msgReset, models.NotificationInfo, models.DefaultNotificationDuration)
	return true
}

// Close abandons the session, e.g. when the page is left. No notification is
// emitted.
func (s *QuizSession) Close() {
	s.mu.Lock()
	wasInFlight := s.discardLocked()
	s.mu.Unlock()

	if wasInFlight {
		s.logger.Info("Quiz session closed with a submission in flight")
	}
}

// discardLocked invalidates the current submission, if any. s.mu must be held.
func (s *QuizSession) discardLocked() bool {
	s.generation++
	wasInFlight := s.inFlight
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.inFlight = false
	return wasInFlight
}

func successMessage(p models.SubmissionPayload) string {
	return fmt.Sprintf("Quiz Completed Successfully! We found some great matches for you based on your preferences. "+
		"Your Preferences: Dogs: %s, Cats: %s, Kids: %s",
		valueOrDash(p.Dogs), valueOrDash(p.Cats), valueOrDash(p.Kids))
}

func valueOrDash[T ~string](v *T) string {
	if v == nil {
		return "-"
	}
	return string(*v)
}
