package service

import (
	"context"
	"fmt"
	"strings"

	"medprep/internal/backend"
	"medprep/internal/model"
)

// StationService manages university interview station configurations
type StationService struct {
	backend StationBackend
}

// NewStationService creates a new station service
func NewStationService(b StationBackend) *StationService {
	return &StationService{backend: b}
}

func (s *StationService) List(ctx context.Context) ([]model.UniversityStations, error) {
	return s.backend.ListStations(ctx)
}

func (s *StationService) Get(ctx context.Context, id string) (*model.UniversityStations, error) {
	st, err := s.backend.GetStation(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	return st, nil
}

func (s *StationService) Create(ctx context.Context, st model.UniversityStations) (*model.UniversityStations, error) {
	if err := ValidateStations(st); err != nil {
		return nil, err
	}
	return s.backend.CreateStation(ctx, st)
}

func (s *StationService) Update(ctx context.Context, id string, st model.UniversityStations) (*model.UniversityStations, error) {
	if err := ValidateStations(st); err != nil {
		return nil, err
	}
	return s.backend.UpdateStation(ctx, id, st)
}

func (s *StationService) Delete(ctx context.Context, id string) error {
	return s.backend.DeleteStation(ctx, id)
}

// ValidateStations requires a university, an interview type and at least one
// station, each named and with a positive duration.
func ValidateStations(st model.UniversityStations) error {
	fields := map[string]string{}
	if strings.TrimSpace(st.UniversityID) == "" {
		fields["university_id"] = "required"
	}
	switch st.InterviewType {
	case "mmi", "panel":
	default:
		fields["interview_type"] = "must be mmi or panel"
	}
	if len(st.Stations) == 0 {
		fields["stations"] = "at least one station is required"
	}
	for i, station := range st.Stations {
		if strings.TrimSpace(station.Name) == "" {
			fields[fmt.Sprintf("stations[%d].name", i)] = "required"
		}
		if station.DurationMinutes <= 0 {
			fields[fmt.Sprintf("stations[%d].duration_minutes", i)] = "must be positive"
		}
		if station.ReadingMinutes < 0 {
			fields[fmt.Sprintf("stations[%d].reading_minutes", i)] = "must not be negative"
		}
	}
	if len(fields) > 0 {
		return backend.ValidationError("invalid station configuration", fields)
	}
	return nil
}
