package booking

import (
	"encoding/json"
	"fmt"
)

// Event is one user action in the wizard
type Event interface {
	eventType() string
}

type (
	SelectPackageType struct{ PackageType PackageType }
	SelectServiceType struct{ ServiceType ServiceType }
	ToggleUniversity  struct{ University string }
	SelectPackageTier struct{ PackageID string }
	UpdateContact     struct{ Contact Contact }
	SetPreferredDate  struct{ Date string }
	SetNotes          struct{ Notes string }
	Reset             struct{}
)

func (SelectPackageType) eventType() string { return "select_package_type" }
func (SelectServiceType) eventType() string { return "select_service_type" }
func (ToggleUniversity) eventType() string  { return "toggle_university" }
func (SelectPackageTier) eventType() string { return "select_package_tier" }
func (UpdateContact) eventType() string     { return "update_contact" }
func (SetPreferredDate) eventType() string  { return "set_preferred_date" }
func (SetNotes) eventType() string          { return "set_notes" }
func (Reset) eventType() string             { return "reset" }

// EventType returns the wire name of e
func EventType(e Event) string {
	return e.eventType()
}

// wireEvent is the JSON form of an Event:
//
//	{"type":"toggle_university","value":"oxford"}
//	{"type":"update_contact","contact":{"firstName":"Ada",...}}
type wireEvent struct {
	Type    string   `json:"type"`
	Value   string   `json:"value"`
	Contact *Contact `json:"contact,omitempty"`
}

// DecodeEvent parses the JSON form of an event
func DecodeEvent(data []byte) (Event, error) {
	var w wireEvent
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}

	switch w.Type {
	case "select_package_type":
		return SelectPackageType{PackageType: PackageType(w.Value)}, nil
	case "select_service_type":
		return SelectServiceType{ServiceType: ServiceType(w.Value)}, nil
	case "toggle_university":
		return ToggleUniversity{University: w.Value}, nil
	case "select_package_tier":
		return SelectPackageTier{PackageID: w.Value}, nil
	case "update_contact":
		if w.Contact == nil {
			return nil, fmt.Errorf("%w: update_contact needs a contact", ErrInvalidValue)
		}
		return UpdateContact{Contact: *w.Contact}, nil
	case "set_preferred_date":
		return SetPreferredDate{Date: w.Value}, nil
	case "set_notes":
		return SetNotes{Notes: w.Value}, nil
	case "reset":
		return Reset{}, nil
	}
	return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidValue, w.Type)
}
