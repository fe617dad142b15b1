package model

import "time"

// Station is one MMI station in a university's interview circuit
type Station struct {
	Name            string   `json:"name"`
	Type            string   `json:"type,omitempty"` // e.g. "role-play", "ethics"
	DurationMinutes int      `json:"duration_minutes"`
	ReadingMinutes  int      `json:"reading_minutes,omitempty"`
	SkillFocus      []string `json:"skill_focus,omitempty"`
}

// UniversityStations is the interview station configuration for one university
type UniversityStations struct {
	ID            string     `json:"id,omitempty"`
	UniversityID  string     `json:"university_id"`
	University    string     `json:"university,omitempty"`
	InterviewType string     `json:"interview_type"` // "mmi" or "panel"
	Stations      []Station  `json:"stations"`
	Notes         string     `json:"notes,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}
