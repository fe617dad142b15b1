package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"medprep/internal/backend"
	"medprep/internal/cache"
	"medprep/internal/logging"
	"medprep/internal/model"
	"medprep/internal/similarity"
)

// QuestionService manages the interview question bank and similarity checks
type QuestionService struct {
	backend     QuestionBackend
	cache       cache.QuestionCache
	broadcaster Broadcaster
	log         zerolog.Logger
}

// NewQuestionService creates a new question service
func NewQuestionService(b QuestionBackend, c cache.QuestionCache) *QuestionService {
	return &QuestionService{
		backend:     b,
		cache:       c,
		broadcaster: nopBroadcaster{},
		log:         logging.Component("questions"),
	}
}

// SetBroadcaster sets the dashboard feed
func (s *QuestionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Approved returns the approved bank, from Redis when a snapshot is fresh.
// Cache failures are logged and fall through to the backend.
func (s *QuestionService) Approved(ctx context.Context) ([]model.Question, error) {
	cached, err := s.cache.GetApproved(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("approved snapshot read failed")
	}
	if cached != nil {
		return cached, nil
	}

	questions, err := s.backend.ListQuestions(ctx, model.QuestionStatusApproved)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetApproved(ctx, questions); err != nil {
		s.log.Warn().Err(err).Msg("approved snapshot write failed")
	}
	return questions, nil
}

// CheckSimilarity compares a draft title against the approved bank. Results
// are advisory; too-short titles return no matches without loading the bank.
func (s *QuestionService) CheckSimilarity(ctx context.Context, title string, threshold int) ([]similarity.Match, error) {
	if !similarity.Checkable(title) {
		return []similarity.Match{}, nil
	}
	bank, err := s.Approved(ctx)
	if err != nil {
		return nil, err
	}
	matches := similarity.FindSimilar(title, bank, threshold)
	if matches == nil {
		matches = []similarity.Match{}
	}
	return matches, nil
}

// List returns questions in a review state, or all when status is empty
func (s *QuestionService) List(ctx context.Context, status model.QuestionStatus) ([]model.Question, error) {
	if status != "" && !status.Valid() {
		return nil, backend.ValidationError("unknown status", map[string]string{"status": "must be pending, approved or rejected"})
	}
	return s.backend.ListQuestions(ctx, status)
}

// Create submits a question and returns the approved questions it resembles.
// A failed similarity lookup does not block the submission.
func (s *QuestionService) Create(ctx context.Context, in model.QuestionInput, createdBy string) (*model.Question, []similarity.Match, error) {
	in = normalizeQuestion(in)
	if err := validateQuestion(in); err != nil {
		return nil, nil, err
	}
	in.CreatedBy = createdBy

	similar, err := s.CheckSimilarity(ctx, in.Title, similarity.DefaultThreshold)
	if err != nil {
		s.log.Warn().Err(err).Msg("similarity check skipped")
		similar = []similarity.Match{}
	}

	q, err := s.backend.CreateQuestion(ctx, in)
	if err != nil {
		return nil, nil, err
	}
	s.broadcaster.Broadcast(MsgQuestionSubmitted, map[string]interface{}{
		"question":     q,
		"similarCount": len(similar),
	})
	return q, similar, nil
}

// Update replaces a question's content
func (s *QuestionService) Update(ctx context.Context, id string, in model.QuestionInput) (*model.Question, error) {
	in = normalizeQuestion(in)
	if err := validateQuestion(in); err != nil {
		return nil, err
	}
	q, err := s.backend.UpdateQuestion(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return q, nil
}

// UpdateStatus moves a question through review and refreshes the approved
// snapshot on the next read.
func (s *QuestionService) UpdateStatus(ctx context.Context, id string, upd model.QuestionStatusUpdate) (*model.Question, error) {
	if !upd.Status.Valid() {
		return nil, backend.ValidationError("unknown status", map[string]string{"status": "must be pending, approved or rejected"})
	}
	q, err := s.backend.UpdateQuestionStatus(ctx, id, upd)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	s.broadcaster.Broadcast(MsgQuestionStatusChanged, map[string]interface{}{
		"questionId": id,
		"status":     upd.Status,
	})
	return q, nil
}

func (s *QuestionService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateApproved(ctx); err != nil {
		s.log.Warn().Err(err).Msg("approved snapshot invalidation failed")
	}
}

func (s *QuestionService) ListSkills(ctx context.Context, activeOnly bool) ([]model.Skill, error) {
	return s.backend.ListSkills(ctx, activeOnly)
}

func (s *QuestionService) CreateSkill(ctx context.Context, skill model.Skill) (*model.Skill, error) {
	skill.Name = strings.TrimSpace(skill.Name)
	if skill.Name == "" {
		return nil, backend.ValidationError("skill name is required", map[string]string{"name": "required"})
	}
	return s.backend.CreateSkill(ctx, skill)
}

func (s *QuestionService) ListTags(ctx context.Context) ([]model.Tag, error) {
	return s.backend.ListTags(ctx)
}

func normalizeQuestion(in model.QuestionInput) model.QuestionInput {
	in.Title = strings.TrimSpace(in.Title)
	in.QuestionText = strings.TrimSpace(in.QuestionText)
	in.Field = strings.TrimSpace(in.Field)
	return in
}

func validateQuestion(in model.QuestionInput) error {
	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "required"
	}
	if in.QuestionText == "" {
		fields["question_text"] = "required"
	}
	switch in.Difficulty {
	case "", model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		fields["difficulty"] = fmt.Sprintf("unknown difficulty %q", in.Difficulty)
	}
	if len(fields) > 0 {
		return backend.ValidationError("invalid question", fields)
	}
	return nil
}
