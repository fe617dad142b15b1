package backend

import (
	"context"
	"net/http"
	"net/url"

	"medprep/internal/model"
)

// ListQuestions returns questions in the given review state, or all of them
// when status is empty.
func (c *Client) ListQuestions(ctx context.Context, status model.QuestionStatus) ([]model.Question, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}
	var questions []model.Question
	if err := c.get(ctx, "/prometheus/questions", query, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// CreateQuestion submits a new question for review
func (c *Client) CreateQuestion(ctx context.Context, in model.QuestionInput) (*model.Question, error) {
	var q model.Question
	if err := c.send(ctx, http.MethodPost, "/prometheus/questions", in, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuestion replaces a question's content
func (c *Client) UpdateQuestion(ctx context.Context, id string, in model.QuestionInput) (*model.Question, error) {
	var q model.Question
	if err := c.send(ctx, http.MethodPut, "/prometheus/questions/"+url.PathEscape(id), in, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// UpdateQuestionStatus moves a question through review
func (c *Client) UpdateQuestionStatus(ctx context.Context, id string, upd model.QuestionStatusUpdate) (*model.Question, error) {
	var q model.Question
	path := "/prometheus/questions/" + url.PathEscape(id) + "/status"
	if err := c.send(ctx, http.MethodPatch, path, upd, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// ListSkills returns skill criteria, optionally only active ones
func (c *Client) ListSkills(ctx context.Context, activeOnly bool) ([]model.Skill, error) {
	query := url.Values{}
	if activeOnly {
		query.Set("active", "true")
	}
	var skills []model.Skill
	if err := c.get(ctx, "/prometheus/skills", query, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

// CreateSkill adds a skill criterion
func (c *Client) CreateSkill(ctx context.Context, s model.Skill) (*model.Skill, error) {
	var out model.Skill
	if err := c.send(ctx, http.MethodPost, "/prometheus/skills", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTags returns every question tag
func (c *Client) ListTags(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if err := c.get(ctx, "/prometheus/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}
