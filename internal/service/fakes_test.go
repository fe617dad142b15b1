package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"medprep/internal/booking"
	"medprep/internal/model"
)

// fakeBackend implements every backend slice the services use
type fakeBackend struct {
	mu sync.Mutex

	questions     []model.Question
	listQuestions int
	created       []model.QuestionInput
	statusUpdates map[string]model.QuestionStatus

	universities []model.University
	listUnis     int
	bookings     []model.Booking
	users        map[string]*model.User
	createdUsers []model.User

	joiners  []model.JobApplication
	stations map[string]*model.UniversityStations

	err        error // returned by every call when set
	bookingErr error // returned by CreateBooking only

	// when set, CreateBooking signals bookingStarted and waits on bookingGate
	bookingStarted chan struct{}
	bookingGate    chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		statusUpdates: map[string]model.QuestionStatus{},
		users:         map[string]*model.User{},
		stations:      map[string]*model.UniversityStations{},
	}
}

func (f *fakeBackend) ListQuestions(ctx context.Context, status model.QuestionStatus) ([]model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listQuestions++
	if f.err != nil {
		return nil, f.err
	}
	var out []model.Question
	for _, q := range f.questions {
		if status == "" || q.Status == status {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeBackend) CreateQuestion(ctx context.Context, in model.QuestionInput) (*model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, in)
	return &model.Question{QuestionID: "new", Title: in.Title, QuestionText: in.QuestionText, Status: model.QuestionStatusPending, CreatedBy: in.CreatedBy}, nil
}

func (f *fakeBackend) UpdateQuestion(ctx context.Context, id string, in model.QuestionInput) (*model.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Question{QuestionID: id, Title: in.Title, QuestionText: in.QuestionText}, nil
}

func (f *fakeBackend) UpdateQuestionStatus(ctx context.Context, id string, upd model.QuestionStatusUpdate) (*model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.statusUpdates[id] = upd.Status
	return &model.Question{QuestionID: id, Status: upd.Status}, nil
}

func (f *fakeBackend) ListSkills(ctx context.Context, activeOnly bool) ([]model.Skill, error) {
	return []model.Skill{{SkillID: "s1", Name: "Empathy", Active: true}}, f.err
}

func (f *fakeBackend) CreateSkill(ctx context.Context, s model.Skill) (*model.Skill, error) {
	s.SkillID = "s2"
	return &s, f.err
}

func (f *fakeBackend) ListTags(ctx context.Context) ([]model.Tag, error) {
	return []model.Tag{{TagID: "t1", Name: "ethics"}}, f.err
}

func (f *fakeBackend) ListUniversities(ctx context.Context) ([]model.University, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listUnis++
	if f.err != nil {
		return nil, f.err
	}
	return f.universities, nil
}

func (f *fakeBackend) ListBookings(ctx context.Context) ([]model.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Booking(nil), f.bookings...), nil
}

func (f *fakeBackend) CreateBooking(ctx context.Context, b model.Booking) (*model.Booking, error) {
	if f.bookingGate != nil {
		f.bookingStarted <- struct{}{}
		<-f.bookingGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.bookingErr != nil {
		return nil, f.bookingErr
	}
	b.BookingID = "b" + string(rune('1'+len(f.bookings)))
	b.Status = "confirmed"
	f.bookings = append(f.bookings, b)
	return &b, nil
}

func (f *fakeBackend) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.users[email], nil
}

func (f *fakeBackend) CreateUser(ctx context.Context, u model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u.UserID = "u-" + u.Email
	f.users[u.Email] = &u
	f.createdUsers = append(f.createdUsers, u)
	return &u, nil
}

func (f *fakeBackend) SubmitNewJoiner(ctx context.Context, app model.JobApplication) error {
	if f.err != nil {
		return f.err
	}
	f.joiners = append(f.joiners, app)
	return nil
}

func (f *fakeBackend) ListStations(ctx context.Context) ([]model.UniversityStations, error) {
	var out []model.UniversityStations
	for _, s := range f.stations {
		out = append(out, *s)
	}
	return out, f.err
}

func (f *fakeBackend) GetStation(ctx context.Context, id string) (*model.UniversityStations, error) {
	return f.stations[id], f.err
}

func (f *fakeBackend) CreateStation(ctx context.Context, s model.UniversityStations) (*model.UniversityStations, error) {
	if f.err != nil {
		return nil, f.err
	}
	s.ID = "st" + s.UniversityID
	f.stations[s.ID] = &s
	return &s, nil
}

func (f *fakeBackend) UpdateStation(ctx context.Context, id string, s model.UniversityStations) (*model.UniversityStations, error) {
	if f.err != nil {
		return nil, f.err
	}
	s.ID = id
	f.stations[id] = &s
	return &s, nil
}

func (f *fakeBackend) DeleteStation(ctx context.Context, id string) error {
	delete(f.stations, id)
	return f.err
}

type fakeDraftCache struct {
	mu     sync.Mutex
	drafts map[string]booking.DraftV1
	claims map[string]bool
}

func newFakeDraftCache() *fakeDraftCache {
	return &fakeDraftCache{drafts: map[string]booking.DraftV1{}, claims: map[string]bool{}}
}

func (c *fakeDraftCache) Save(ctx context.Context, d booking.DraftV1) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drafts[d.ID] = d
	return nil
}

func (c *fakeDraftCache) Get(ctx context.Context, id string) (*booking.DraftV1, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.drafts[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (c *fakeDraftCache) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.drafts, id)
	return nil
}

func (c *fakeDraftCache) Claim(ctx context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.claims[id] {
		return false, nil
	}
	c.claims[id] = true
	return true, nil
}

func (c *fakeDraftCache) Release(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.claims, id)
	return nil
}

type fakeQuestionCache struct {
	approved    []model.Question
	invalidated int
}

func (c *fakeQuestionCache) SetApproved(ctx context.Context, qs []model.Question) error {
	if qs == nil {
		qs = []model.Question{}
	}
	c.approved = qs
	return nil
}

func (c *fakeQuestionCache) GetApproved(ctx context.Context) ([]model.Question, error) {
	return c.approved, nil
}

func (c *fakeQuestionCache) InvalidateApproved(ctx context.Context) error {
	c.approved = nil
	c.invalidated++
	return nil
}

type fakeReferenceCache struct {
	universities []model.University
}

func (c *fakeReferenceCache) SetUniversities(ctx context.Context, u []model.University) error {
	c.universities = u
	return nil
}

func (c *fakeReferenceCache) GetUniversities(ctx context.Context) ([]model.University, error) {
	return c.universities, nil
}

type fakeDemandCache struct {
	mu     sync.Mutex
	counts map[string]int
}

func newFakeDemandCache() *fakeDemandCache {
	return &fakeDemandCache{counts: map[string]int{}}
}

func (c *fakeDemandCache) Increment(ctx context.Context, universities ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, u := range universities {
		c.counts[u]++
	}
	return nil
}

func (c *fakeDemandCache) Top(ctx context.Context, limit int) ([]model.UniversityDemand, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []model.UniversityDemand
	for u, n := range c.counts {
		out = append(out, model.UniversityDemand{University: u, Bookings: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Bookings != out[j].Bookings {
			return out[i].Bookings > out[j].Bookings
		}
		return out[i].University < out[j].University
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

func (c *fakeDemandCache) Rank(ctx context.Context, university string) (*model.UniversityDemand, error) {
	all, _ := c.Top(ctx, 0)
	for _, d := range all {
		if d.University == university {
			return &d, nil
		}
	}
	return nil, nil
}

type fakeSubmissionRepo struct {
	mu   sync.Mutex
	subs []model.FailedSubmission
}

func (r *fakeSubmissionRepo) Record(ctx context.Context, s *model.FailedSubmission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, *s)
	return nil
}

func (r *fakeSubmissionRepo) List(ctx context.Context, limit int64) ([]model.FailedSubmission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.FailedSubmission(nil), r.subs...), nil
}

type fakeEventRepo struct {
	events []model.Event
}

func (r *fakeEventRepo) Create(ctx context.Context, e *model.Event) error {
	e.ID = "e" + e.Date
	r.events = append(r.events, *e)
	return nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	for _, e := range r.events {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *fakeEventRepo) ListByMonth(ctx context.Context, year int, month time.Month) ([]model.Event, error) {
	prefix := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-")
	var out []model.Event
	for _, e := range r.events {
		if strings.HasPrefix(e.Date, prefix) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListFrom(ctx context.Context, from string, limit int64) ([]model.Event, error) {
	var out []model.Event
	for _, e := range r.events {
		if e.Date >= from {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, id string) (bool, error) {
	for i, e := range r.events {
		if e.ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type recordedMessage struct {
	msgType string
	payload interface{}
}

type fakeBroadcaster struct {
	mu   sync.Mutex
	msgs []recordedMessage
}

func (b *fakeBroadcaster) Broadcast(msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.msgs = append(b.msgs, recordedMessage{msgType, payload})
}

func (b *fakeBroadcaster) types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, m := range b.msgs {
		out = append(out, m.msgType)
	}
	return out
}
