package model

import "time"

// University offered in the booking wizard
type University struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug,omitempty"`
	Country string `json:"country,omitempty"`
}

// Booking is a confirmed interview package booking held by the backend
type Booking struct {
	BookingID       string     `json:"booking_id,omitempty"`
	UserID          string     `json:"user_id"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	PackageType     string     `json:"package_type"`
	ServiceType     string     `json:"service_type"`
	PackageID       string     `json:"package_id,omitempty"`
	Universities    []string   `json:"universities"`
	PreferredDate   string     `json:"preferred_date,omitempty"`
	AdditionalNotes string     `json:"additional_notes,omitempty"`
	Amount          int        `json:"amount"`
	Currency        string     `json:"currency"`
	Status          string     `json:"status,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
}

// User is a site customer as stored by the backend
type User struct {
	UserID    string `json:"user_id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
}

// UniversityDemand is one entry of the requested-universities ranking
type UniversityDemand struct {
	University string `json:"university"`
	Bookings   int    `json:"bookings"`
	Rank       int    `json:"rank"`
}
