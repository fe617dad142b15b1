// Package booking drives the interview-package booking wizard.
//
// The wizard is a linear form whose steps are revealed one at a time, each
// gated on the one before it. State is a plain value; Wizard.Reduce applies
// one Event and returns the next State without side effects, so the gating
// rules can be exercised without any transport around them.
package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"medprep/internal/calendar"
)

var (
	ErrStepLocked   = errors.New("step is not available yet")
	ErrInvalidValue = errors.New("invalid value")
	ErrUnknownTier  = errors.New("unknown package tier")
	ErrNotReady     = errors.New("booking is not ready for checkout")
)

// PackageType is the first choice in the wizard
type PackageType string

const (
	PackageSingle   PackageType = "single"
	PackageMultiple PackageType = "multiple"
)

// ServiceType picks between generated questions and tutor-led sessions
type ServiceType string

const (
	ServiceGenerated ServiceType = "generated"
	ServiceActual    ServiceType = "actual" // tutor-led
)

// Step of the wizard
type Step string

const (
	StepPackageType    Step = "package_type"
	StepServiceType    Step = "service_type"
	StepUniversities   Step = "universities"
	StepPackageTier    Step = "package_tier"
	StepContactDetails Step = "contact_details"
	StepCheckout       Step = "checkout"
)

// Contact holds the applicant's details
type Contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

func (c Contact) complete() bool {
	return c.FirstName != "" && c.LastName != "" && c.Email != ""
}

// State is everything selected so far.
//
// Universities never holds more than one entry while PackageType is single.
type State struct {
	PackageType     PackageType `json:"packageType"`
	ServiceType     ServiceType `json:"serviceType"`
	Universities    []string    `json:"universities"`
	PackageID       string      `json:"packageId"`
	Contact         Contact     `json:"contactDetails"`
	PreferredDate   string      `json:"preferredDate,omitempty"`
	AdditionalNotes string      `json:"additionalNotes,omitempty"`
}

// VisibleSteps lists the revealed steps in order.
func VisibleSteps(s State) []Step {
	steps := []Step{StepPackageType}
	if s.PackageType == "" {
		return steps
	}
	steps = append(steps, StepServiceType)
	if s.ServiceType == "" {
		return steps
	}
	steps = append(steps, StepUniversities)
	if len(s.Universities) == 0 {
		return steps
	}
	if s.PackageType == PackageMultiple {
		steps = append(steps, StepPackageTier)
	}
	steps = append(steps, StepContactDetails)
	if ReadyForCheckout(s) {
		steps = append(steps, StepCheckout)
	}
	return steps
}

// IsVisible reports whether step has been revealed
func IsVisible(s State, step Step) bool {
	for _, v := range VisibleSteps(s) {
		if v == step {
			return true
		}
	}
	return false
}

// CurrentStep is the first revealed step still waiting for input. Once
// everything is filled in it is StepCheckout.
func CurrentStep(s State) Step {
	for _, step := range VisibleSteps(s) {
		if !stepComplete(s, step) {
			return step
		}
	}
	return StepCheckout
}

func stepComplete(s State, step Step) bool {
	switch step {
	case StepPackageType:
		return s.PackageType != ""
	case StepServiceType:
		return s.ServiceType != ""
	case StepUniversities:
		return len(s.Universities) > 0
	case StepPackageTier:
		return s.PackageID != ""
	case StepContactDetails:
		return s.Contact.complete()
	}
	return false
}

// ReadyForCheckout reports whether every required selection is present.
func ReadyForCheckout(s State) bool {
	if s.PackageType == "" || s.ServiceType == "" || len(s.Universities) == 0 {
		return false
	}
	if !s.Contact.complete() {
		return false
	}
	if s.PackageType == PackageMultiple && s.PackageID == "" {
		return false
	}
	return true
}

// Price quotes the current selection. Multiple-university packages cost the
// chosen tier's price; single packages cost the per-university price times
// the number of universities; anything else is 0.
func Price(s State, c Catalogue) int {
	switch s.PackageType {
	case PackageMultiple:
		tier, ok := c.Tier(s.PackageID)
		if !ok {
			return 0
		}
		if s.ServiceType == ServiceGenerated {
			return tier.GeneratedPrice
		}
		return tier.TutorPrice
	case PackageSingle:
		unit := c.SingleTutorPrice
		if s.ServiceType == ServiceGenerated {
			unit = c.SingleGeneratedPrice
		}
		return unit * len(s.Universities)
	}
	return 0
}

// Wizard applies events against a price catalogue and a notion of today.
type Wizard struct {
	Catalogue Catalogue
	Now       func() time.Time
}

// NewWizard returns a Wizard using the wall clock
func NewWizard(c Catalogue) *Wizard {
	return &Wizard{Catalogue: c, Now: time.Now}
}

// Reduce applies e to s. An event aimed at a step that has not been
// revealed yet fails with ErrStepLocked and leaves the state unchanged.
func (w *Wizard) Reduce(s State, e Event) (State, error) {
	next := s.clone()

	switch e := e.(type) {
	case SelectPackageType:
		if e.PackageType != PackageSingle && e.PackageType != PackageMultiple {
			return s, fmt.Errorf("%w: package type %q", ErrInvalidValue, e.PackageType)
		}
		next.PackageType = e.PackageType
		if e.PackageType == PackageSingle {
			if len(next.Universities) > 1 {
				next.Universities = next.Universities[:1]
			}
			next.PackageID = ""
		}

	case SelectServiceType:
		if !IsVisible(s, StepServiceType) {
			return s, ErrStepLocked
		}
		if e.ServiceType != ServiceGenerated && e.ServiceType != ServiceActual {
			return s, fmt.Errorf("%w: service type %q", ErrInvalidValue, e.ServiceType)
		}
		next.ServiceType = e.ServiceType

	case ToggleUniversity:
		if !IsVisible(s, StepUniversities) {
			return s, ErrStepLocked
		}
		id := strings.TrimSpace(e.University)
		if id == "" {
			return s, fmt.Errorf("%w: university is required", ErrInvalidValue)
		}
		next.Universities = toggle(next.Universities, id, next.PackageType == PackageSingle)

	case SelectPackageTier:
		if !IsVisible(s, StepPackageTier) {
			return s, ErrStepLocked
		}
		if _, ok := w.Catalogue.Tier(e.PackageID); !ok {
			return s, fmt.Errorf("%w: %q", ErrUnknownTier, e.PackageID)
		}
		next.PackageID = e.PackageID

	case UpdateContact:
		if !IsVisible(s, StepContactDetails) {
			return s, ErrStepLocked
		}
		next.Contact = Contact{
			FirstName: strings.TrimSpace(e.Contact.FirstName),
			LastName:  strings.TrimSpace(e.Contact.LastName),
			Email:     strings.TrimSpace(e.Contact.Email),
			Phone:     strings.TrimSpace(e.Contact.Phone),
		}

	case SetPreferredDate:
		if !IsVisible(s, StepContactDetails) {
			return s, ErrStepLocked
		}
		date, err := calendar.Select(e.Date, w.now())
		if err != nil {
			return s, err
		}
		next.PreferredDate = date

	case SetNotes:
		if !IsVisible(s, StepContactDetails) {
			return s, ErrStepLocked
		}
		next.AdditionalNotes = strings.TrimSpace(e.Notes)

	case Reset:
		return State{}, nil

	default:
		return s, fmt.Errorf("%w: unsupported event %T", ErrInvalidValue, e)
	}

	return next, nil
}

func (w *Wizard) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}

// toggle adds or removes id. With single set, adding replaces the selection.
func toggle(selected []string, id string, single bool) []string {
	for i, u := range selected {
		if u == id {
			return append(selected[:i:i], selected[i+1:]...)
		}
	}
	if single {
		return []string{id}
	}
	return append(selected, id)
}

func (s State) clone() State {
	c := s
	if s.Universities != nil {
		c.Universities = append([]string(nil), s.Universities...)
	}
	return c
}
