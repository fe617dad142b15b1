package model

import "time"

// QuestionStatus is the review state of a question-bank entry
type QuestionStatus string

const (
	QuestionStatusPending  QuestionStatus = "pending"
	QuestionStatusApproved QuestionStatus = "approved"
	QuestionStatusRejected QuestionStatus = "rejected"
)

// Valid reports whether s is one of the known review states
func (s QuestionStatus) Valid() bool {
	switch s {
	case QuestionStatusPending, QuestionStatusApproved, QuestionStatusRejected:
		return true
	}
	return false
}

// Difficulty of an interview question
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is an interview-practice question as stored by the backend.
// Approved questions are the reference set the similarity check runs against.
type Question struct {
	QuestionID        string         `json:"question_id"`
	Title             string         `json:"title"`
	QuestionText      string         `json:"question_text"`
	Difficulty        Difficulty     `json:"difficulty,omitempty"`
	InterviewTypes    []string       `json:"interview_types,omitempty"` // e.g. "mmi", "panel"
	Field             string         `json:"field,omitempty"`
	SkillCriteria     []string       `json:"skill_criteria,omitempty"`
	Tags              []string       `json:"tags,omitempty"`
	FollowUpQuestions []string       `json:"follow_up_questions,omitempty"`
	Status            QuestionStatus `json:"status,omitempty"`
	CreatedBy         string         `json:"created_by,omitempty"`
	CreatedAt         *time.Time     `json:"created_at,omitempty"`
	UpdatedAt         *time.Time     `json:"updated_at,omitempty"`
}

// QuestionInput is the create/update payload for a question
type QuestionInput struct {
	Title             string     `json:"title"`
	QuestionText      string     `json:"question_text"`
	Difficulty        Difficulty `json:"difficulty"`
	InterviewTypes    []string   `json:"interview_types"`
	Field             string     `json:"field"`
	SkillCriteria     []string   `json:"skill_criteria"`
	Tags              []string   `json:"tags"`
	FollowUpQuestions []string   `json:"follow_up_questions"`
	CreatedBy         string     `json:"created_by,omitempty"`
}

// QuestionStatusUpdate is the payload for PATCH .../questions/:id/status
type QuestionStatusUpdate struct {
	Status   QuestionStatus `json:"status"`
	Feedback string         `json:"feedback,omitempty"`
}

// Skill is a marking criterion a question can be tagged with
type Skill struct {
	SkillID     string `json:"skill_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// Tag is a free-form label on questions
type Tag struct {
	TagID string `json:"tag_id"`
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}
