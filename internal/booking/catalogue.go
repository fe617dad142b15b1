package booking

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tier is a bundled interview package covering a fixed number of sessions.
// GeneratedPrice applies to the generated-question service, TutorPrice to
// tutor-led sessions.
type Tier struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Sessions       int    `json:"sessions" yaml:"sessions"`
	GeneratedPrice int    `json:"generatedPrice" yaml:"generated_price"`
	TutorPrice     int    `json:"tutorPrice" yaml:"tutor_price"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Catalogue holds every price the wizard can quote, in whole currency units.
type Catalogue struct {
	Currency             string `json:"currency" yaml:"currency"`
	SingleGeneratedPrice int    `json:"singleGeneratedPrice" yaml:"single_generated_price"`
	SingleTutorPrice     int    `json:"singleTutorPrice" yaml:"single_tutor_price"`
	Tiers                []Tier `json:"tiers" yaml:"tiers"`
}

// DefaultCatalogue is the price list used when no catalogue file is configured
func DefaultCatalogue() Catalogue {
	return Catalogue{
		Currency:             "GBP",
		SingleGeneratedPrice: 25,
		SingleTutorPrice:     89,
		Tiers: []Tier{
			{ID: "essentials", Name: "Essentials", Sessions: 3, GeneratedPrice: 60, TutorPrice: 75,
				Description: "Three mock interviews across your chosen universities"},
			{ID: "core", Name: "Core", Sessions: 5, GeneratedPrice: 100, TutorPrice: 130,
				Description: "Five mock interviews with written feedback"},
			{ID: "premium", Name: "Premium", Sessions: 8, GeneratedPrice: 150, TutorPrice: 200,
				Description: "Eight mock interviews, feedback and a final full MMI circuit"},
		},
	}
}

// Tier looks up a tier by id
func (c Catalogue) Tier(id string) (Tier, bool) {
	for _, t := range c.Tiers {
		if t.ID == id {
			return t, true
		}
	}
	return Tier{}, false
}

// Validate checks the catalogue is usable for quoting
func (c Catalogue) Validate() error {
	if c.Currency == "" {
		return errors.New("catalogue: currency is required")
	}
	if c.SingleGeneratedPrice < 0 || c.SingleTutorPrice < 0 {
		return errors.New("catalogue: single prices must not be negative")
	}
	seen := make(map[string]bool, len(c.Tiers))
	for _, t := range c.Tiers {
		if t.ID == "" {
			return errors.New("catalogue: tier id is required")
		}
		if seen[t.ID] {
			return fmt.Errorf("catalogue: duplicate tier %q", t.ID)
		}
		seen[t.ID] = true
		if t.GeneratedPrice < 0 || t.TutorPrice < 0 {
			return fmt.Errorf("catalogue: tier %q has a negative price", t.ID)
		}
	}
	return nil
}

// LoadCatalogue reads a YAML catalogue. Fields missing from the file keep
// their DefaultCatalogue values; a tiers list replaces the default tiers.
func LoadCatalogue(path string) (Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalogue{}, fmt.Errorf("read catalogue: %w", err)
	}
	return ParseCatalogue(data)
}

// ParseCatalogue parses catalogue YAML over the defaults
func ParseCatalogue(data []byte) (Catalogue, error) {
	c := DefaultCatalogue()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalogue{}, fmt.Errorf("parse catalogue: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalogue{}, err
	}
	return c, nil
}
