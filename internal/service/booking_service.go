package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"medprep/internal/backend"
	"medprep/internal/booking"
	"medprep/internal/cache"
	"medprep/internal/logging"
	"medprep/internal/model"
	"medprep/internal/repository"
)

var (
	ErrDraftNotFound     = errors.New("booking draft not found")
	ErrConfirmInProgress = errors.New("booking draft is already being confirmed")
)

// DraftView is a draft together with where the wizard stands
type DraftView struct {
	Draft        booking.DraftV1 `json:"draft"`
	VisibleSteps []booking.Step  `json:"visibleSteps"`
	CurrentStep  booking.Step    `json:"currentStep"`
	Ready        bool            `json:"readyForCheckout"`
}

// Checkout is the payment hand-off for a complete draft
type Checkout struct {
	DraftID     string `json:"draftId"`
	Amount      int    `json:"amount"`
	Currency    string `json:"currency"`
	RedirectURL string `json:"redirectUrl"`
}

// BookingService runs the booking wizard over Redis-held drafts and submits
// paid bookings to the backend.
type BookingService struct {
	drafts      cache.DraftCache
	refs        cache.ReferenceCache
	demand      cache.DemandCache
	submissions repository.SubmissionRepo
	backend     BookingBackend
	wizard      *booking.Wizard
	paymentURL  string
	broadcaster Broadcaster
	newID       func() string
	log         zerolog.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(
	drafts cache.DraftCache,
	refs cache.ReferenceCache,
	demand cache.DemandCache,
	submissions repository.SubmissionRepo,
	b BookingBackend,
	wizard *booking.Wizard,
	paymentURL string,
) *BookingService {
	return &BookingService{
		drafts:      drafts,
		refs:        refs,
		demand:      demand,
		submissions: submissions,
		backend:     b,
		wizard:      wizard,
		paymentURL:  paymentURL,
		broadcaster: nopBroadcaster{},
		newID:       uuid.NewString,
		log:         logging.Component("bookings"),
	}
}

// SetBroadcaster sets the dashboard feed
func (s *BookingService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Catalogue is the package price list the wizard quotes from
func (s *BookingService) Catalogue() booking.Catalogue {
	return s.wizard.Catalogue
}

func (s *BookingService) view(d booking.DraftV1) *DraftView {
	return &DraftView{
		Draft:        d,
		VisibleSteps: booking.VisibleSteps(d.State),
		CurrentStep:  booking.CurrentStep(d.State),
		Ready:        booking.ReadyForCheckout(d.State),
	}
}

func (s *BookingService) now() time.Time {
	if s.wizard.Now != nil {
		return s.wizard.Now()
	}
	return time.Now()
}

// CreateDraft starts an empty booking
func (s *BookingService) CreateDraft(ctx context.Context) (*DraftView, error) {
	d := booking.NewDraft(s.newID(), booking.State{}, s.wizard.Catalogue, s.now())
	if err := s.drafts.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return s.view(d), nil
}

func (s *BookingService) load(ctx context.Context, id string) (*booking.DraftV1, error) {
	d, err := s.drafts.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	if d == nil {
		return nil, ErrDraftNotFound
	}
	return d, nil
}

// GetDraft returns a stored draft
func (s *BookingService) GetDraft(ctx context.Context, id string) (*DraftView, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(*d), nil
}

// ApplyEvent runs one wizard event against a draft and stores the result.
// Rejected events leave the stored draft untouched.
func (s *BookingService) ApplyEvent(ctx context.Context, id string, e booking.Event) (*DraftView, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := s.wizard.Reduce(d.State, e)
	if err != nil {
		return nil, err
	}
	updated := booking.NewDraft(d.ID, next, s.wizard.Catalogue, s.now())
	if err := s.drafts.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}
	return s.view(updated), nil
}

// Checkout prices a complete draft and builds the payment redirect
func (s *BookingService) Checkout(ctx context.Context, id string) (*Checkout, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.ReadyForCheckout(d.State) {
		return nil, booking.ErrNotReady
	}

	priced := booking.NewDraft(d.ID, d.State, s.wizard.Catalogue, s.now())
	redirect, err := s.redirectURL(priced)
	if err != nil {
		return nil, err
	}
	return &Checkout{
		DraftID:     priced.ID,
		Amount:      priced.Amount,
		Currency:    priced.Currency,
		RedirectURL: redirect,
	}, nil
}

func (s *BookingService) redirectURL(d booking.DraftV1) (string, error) {
	u, err := url.Parse(s.paymentURL)
	if err != nil {
		return "", fmt.Errorf("payment url: %w", err)
	}
	q := u.Query()
	for k, vs := range d.Values() {
		q[k] = vs
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Confirm submits a paid draft to the backend: the customer is looked up by
// email or created, then the booking is posted. The draft is claimed before
// it is read, so concurrent confirmations of the same draft get
// ErrConfirmInProgress. When the backend fails the draft is kept, the claim
// released, the failure recorded and the error returned as-is; nothing is
// retried.
func (s *BookingService) Confirm(ctx context.Context, id string) (*model.Booking, error) {
	claimed, err := s.drafts.Claim(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("claim draft: %w", err)
	}
	if !claimed {
		return nil, ErrConfirmInProgress
	}

	created, err := s.submitDraft(ctx, id)
	if err != nil {
		s.releaseClaim(ctx, id)
		return nil, err
	}

	if err := s.drafts.Delete(ctx, id); err != nil {
		// the claim stays until it expires so the surviving draft is not booked twice
		s.log.Warn().Err(err).Str("draft", id).Msg("draft cleanup failed")
	} else {
		s.releaseClaim(ctx, id)
	}
	s.broadcaster.Broadcast(MsgBookingConfirmed, created)

	s.log.Info().Str("draft", id).Str("booking", created.BookingID).Int("amount", created.Amount).Msg("booking confirmed")
	return created, nil
}

func (s *BookingService) submitDraft(ctx context.Context, id string) (*model.Booking, error) {
	d, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.ReadyForCheckout(d.State) {
		return nil, booking.ErrNotReady
	}
	priced := booking.NewDraft(d.ID, d.State, s.wizard.Catalogue, s.now())

	created, err := s.submit(ctx, priced)
	if err != nil {
		s.recordFailure(ctx, priced, err)
		return nil, err
	}
	if err := s.demand.Increment(ctx, priced.State.Universities...); err != nil {
		s.log.Warn().Err(err).Msg("demand update failed")
	}
	return created, nil
}

func (s *BookingService) releaseClaim(ctx context.Context, id string) {
	if err := s.drafts.Release(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("draft", id).Msg("draft claim release failed")
	}
}

func (s *BookingService) submit(ctx context.Context, d booking.DraftV1) (*model.Booking, error) {
	c := d.State.Contact
	user, err := s.backend.GetUserByEmail(ctx, c.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = s.backend.CreateUser(ctx, model.User{
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Email:     c.Email,
			Phone:     c.Phone,
		})
		if err != nil {
			return nil, err
		}
	}

	return s.backend.CreateBooking(ctx, model.Booking{
		UserID:          user.UserID,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		Email:           c.Email,
		Phone:           c.Phone,
		PackageType:     string(d.State.PackageType),
		ServiceType:     string(d.State.ServiceType),
		PackageID:       d.State.PackageID,
		Universities:    d.State.Universities,
		PreferredDate:   d.State.PreferredDate,
		AdditionalNotes: d.State.AdditionalNotes,
		Amount:          d.Amount,
		Currency:        d.Currency,
	})
}

func (s *BookingService) recordFailure(ctx context.Context, d booking.DraftV1, cause error) {
	payload, _ := d.Encode()
	sub := &model.FailedSubmission{
		Kind:      model.SubmissionBooking,
		Reference: d.ID,
		Payload:   string(payload),
		Error:     cause.Error(),
	}
	if appErr, ok := backend.AsAppError(cause); ok {
		sub.ErrorKind = string(appErr.Kind)
	}
	if err := s.submissions.Record(ctx, sub); err != nil {
		s.log.Error().Err(err).Str("draft", d.ID).Msg("failed to record failed booking")
		return
	}
	s.log.Warn().Err(cause).Str("draft", d.ID).Msg("booking submission failed")
}

// Universities lists bookable universities, cached for an hour
func (s *BookingService) Universities(ctx context.Context) ([]model.University, error) {
	cached, err := s.refs.GetUniversities(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("universities cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	universities, err := s.backend.ListUniversities(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.refs.SetUniversities(ctx, universities); err != nil {
		s.log.Warn().Err(err).Msg("universities cache write failed")
	}
	return universities, nil
}

// SearchBookings filters all bookings by a case-insensitive query over the
// customer's name and email, the universities, the package and the status.
// Results are newest first.
func (s *BookingService) SearchBookings(ctx context.Context, query string) ([]model.Booking, error) {
	all, err := s.backend.ListBookings(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]model.Booking, 0, len(all))
	for _, b := range all {
		if q == "" || bookingMatches(b, q) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].CreatedAt, out[j].CreatedAt
		if ti == nil || tj == nil {
			return ti != nil
		}
		return ti.After(*tj)
	})
	return out, nil
}

func bookingMatches(b model.Booking, q string) bool {
	fields := []string{
		b.FirstName + " " + b.LastName,
		b.Email,
		b.Status,
		b.PackageType,
		b.PackageID,
	}
	fields = append(fields, b.Universities...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// Demand returns the most requested universities
func (s *BookingService) Demand(ctx context.Context, limit int) ([]model.UniversityDemand, error) {
	return s.demand.Top(ctx, limit)
}

// UniversityRank reports where one university stands in the demand ranking.
// A university nobody has booked comes back with zero bookings and rank 0.
func (s *BookingService) UniversityRank(ctx context.Context, university string) (*model.UniversityDemand, error) {
	d, err := s.demand.Rank(ctx, strings.TrimSpace(university))
	if err != nil {
		return nil, err
	}
	if d == nil {
		return &model.UniversityDemand{University: strings.TrimSpace(university)}, nil
	}
	return d, nil
}

// FindUser looks a customer up by email
func (s *BookingService) FindUser(ctx context.Context, email string) (*model.User, error) {
	u, err := s.backend.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}
