package service

import (
	"context"
	"errors"
	"net/url"
	"reflect"
	"testing"
	"time"

	"medprep/internal/backend"
	"medprep/internal/booking"
	"medprep/internal/model"
)

type bookingFixture struct {
	svc    *BookingService
	be     *fakeBackend
	drafts *fakeDraftCache
	refs   *fakeReferenceCache
	demand *fakeDemandCache
	subs   *fakeSubmissionRepo
	bc     *fakeBroadcaster
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		be:     newFakeBackend(),
		drafts: newFakeDraftCache(),
		refs:   &fakeReferenceCache{},
		demand: newFakeDemandCache(),
		subs:   &fakeSubmissionRepo{},
		bc:     &fakeBroadcaster{},
	}
	wizard := &booking.Wizard{
		Catalogue: booking.DefaultCatalogue(),
		Now:       func() time.Time { return time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC) },
	}
	f.svc = NewBookingService(f.drafts, f.refs, f.demand, f.subs, f.be, wizard, "https://pay.example.com/checkout?src=site")
	f.svc.SetBroadcaster(f.bc)
	f.svc.newID = func() string { return "draft-1" }
	return f
}

var readyEvents = []booking.Event{
	booking.SelectPackageType{PackageType: booking.PackageSingle},
	booking.SelectServiceType{ServiceType: booking.ServiceGenerated},
	booking.ToggleUniversity{University: "oxford"},
	booking.UpdateContact{Contact: booking.Contact{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}},
}

func (f *bookingFixture) readyDraft(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	if _, err := f.svc.CreateDraft(ctx); err != nil {
		t.Fatal(err)
	}
	for _, e := range readyEvents {
		if _, err := f.svc.ApplyEvent(ctx, "draft-1", e); err != nil {
			t.Fatalf("ApplyEvent(%T): %v", e, err)
		}
	}
}

func TestDraftLifecycle(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()

	v, err := f.svc.CreateDraft(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if v.CurrentStep != booking.StepPackageType || v.Draft.Version != booking.DraftVersion {
		t.Fatalf("new draft = %+v", v)
	}

	v, err = f.svc.ApplyEvent(ctx, "draft-1", booking.SelectPackageType{PackageType: booking.PackageMultiple})
	if err != nil {
		t.Fatal(err)
	}
	if v.CurrentStep != booking.StepServiceType {
		t.Errorf("current step = %s", v.CurrentStep)
	}

	_, err = f.svc.ApplyEvent(ctx, "draft-1", booking.SelectPackageTier{PackageID: "core"})
	if !errors.Is(err, booking.ErrStepLocked) {
		t.Fatalf("locked step error = %v", err)
	}
	if stored := f.drafts.drafts["draft-1"]; stored.State.PackageID != "" {
		t.Error("rejected event was stored")
	}

	if _, err := f.svc.GetDraft(ctx, "missing"); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("missing draft error = %v", err)
	}
}

func TestApplyEventReprices(t *testing.T) {
	f := newBookingFixture()
	f.readyDraft(t)
	ctx := context.Background()

	v, err := f.svc.ApplyEvent(ctx, "draft-1", booking.SelectPackageType{PackageType: booking.PackageMultiple})
	if err != nil {
		t.Fatal(err)
	}
	if v.Ready || v.Draft.Amount != 0 {
		t.Errorf("multiple without tier: ready=%v amount=%d", v.Ready, v.Draft.Amount)
	}
	v, err = f.svc.ApplyEvent(ctx, "draft-1", booking.SelectPackageTier{PackageID: "core"})
	if err != nil {
		t.Fatal(err)
	}
	if !v.Ready || v.Draft.Amount != 100 || v.CurrentStep != booking.StepCheckout {
		t.Errorf("view = %+v", v)
	}
}

func TestCheckoutBuildsPaymentRedirect(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	if _, err := f.svc.CreateDraft(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Checkout(ctx, "draft-1"); !errors.Is(err, booking.ErrNotReady) {
		t.Fatalf("incomplete checkout error = %v", err)
	}

	f.readyDraft(t)
	co, err := f.svc.Checkout(ctx, "draft-1")
	if err != nil {
		t.Fatal(err)
	}
	if co.Amount != 25 || co.Currency != "GBP" {
		t.Errorf("checkout = %+v", co)
	}

	u, err := url.Parse(co.RedirectURL)
	if err != nil {
		t.Fatal(err)
	}
	if u.Host != "pay.example.com" || u.Query().Get("src") != "site" {
		t.Errorf("redirect = %s", co.RedirectURL)
	}
	d, err := booking.DraftFromValues(u.Query())
	if err != nil {
		t.Fatalf("redirect does not carry a draft: %v", err)
	}
	if d.ID != "draft-1" || !reflect.DeepEqual(d.State.Universities, []string{"oxford"}) || d.Amount != 25 {
		t.Errorf("decoded draft = %+v", d)
	}
}

func TestConfirmCreatesUserAndBooking(t *testing.T) {
	f := newBookingFixture()
	f.readyDraft(t)

	b, err := f.svc.Confirm(context.Background(), "draft-1")
	if err != nil {
		t.Fatal(err)
	}
	if b.UserID != "u-ada@example.com" || b.Amount != 25 || b.PackageType != "single" {
		t.Errorf("booking = %+v", b)
	}
	if len(f.be.createdUsers) != 1 {
		t.Errorf("users created = %d", len(f.be.createdUsers))
	}
	if _, ok := f.drafts.drafts["draft-1"]; ok {
		t.Error("draft kept after confirmation")
	}
	if f.demand.counts["oxford"] != 1 {
		t.Errorf("demand = %v", f.demand.counts)
	}
	if !reflect.DeepEqual(f.bc.types(), []string{MsgBookingConfirmed}) {
		t.Errorf("broadcasts = %v", f.bc.types())
	}
}

func TestConfirmReusesExistingUser(t *testing.T) {
	f := newBookingFixture()
	f.be.users["ada@example.com"] = &model.User{UserID: "u-existing", Email: "ada@example.com"}
	f.readyDraft(t)

	b, err := f.svc.Confirm(context.Background(), "draft-1")
	if err != nil {
		t.Fatal(err)
	}
	if b.UserID != "u-existing" || len(f.be.createdUsers) != 0 {
		t.Errorf("booking user = %s, created = %d", b.UserID, len(f.be.createdUsers))
	}
}

func TestConfirmFailureKeepsDraftAndRecords(t *testing.T) {
	f := newBookingFixture()
	f.readyDraft(t)
	f.be.bookingErr = &backend.AppError{Kind: backend.KindServer, Status: 500, Message: "payment ledger unavailable"}

	_, err := f.svc.Confirm(context.Background(), "draft-1")
	if !backend.IsKind(err, backend.KindServer) {
		t.Fatalf("error = %v", err)
	}
	if _, ok := f.drafts.drafts["draft-1"]; !ok {
		t.Error("draft deleted after failed confirmation")
	}
	if len(f.subs.subs) != 1 {
		t.Fatalf("failed submissions = %d", len(f.subs.subs))
	}
	sub := f.subs.subs[0]
	if sub.Kind != model.SubmissionBooking || sub.Reference != "draft-1" || sub.ErrorKind != "server" {
		t.Errorf("submission = %+v", sub)
	}
	if _, err := booking.DecodeDraft([]byte(sub.Payload)); err != nil {
		t.Errorf("payload is not a draft: %v", err)
	}
	if len(f.bc.types()) != 0 || len(f.demand.counts) != 0 {
		t.Error("side effects ran for a failed confirmation")
	}
}

func TestConfirmClaimsDraftOnce(t *testing.T) {
	f := newBookingFixture()
	f.readyDraft(t)
	f.be.bookingStarted = make(chan struct{})
	f.be.bookingGate = make(chan struct{})

	type result struct {
		b   *model.Booking
		err error
	}
	first := make(chan result, 1)
	go func() {
		b, err := f.svc.Confirm(context.Background(), "draft-1")
		first <- result{b, err}
	}()
	<-f.be.bookingStarted

	if _, err := f.svc.Confirm(context.Background(), "draft-1"); !errors.Is(err, ErrConfirmInProgress) {
		t.Errorf("concurrent confirm error = %v, want ErrConfirmInProgress", err)
	}

	close(f.be.bookingGate)
	res := <-first
	if res.err != nil {
		t.Fatalf("first confirm: %v", res.err)
	}

	f.be.bookingGate = nil
	if _, err := f.svc.Confirm(context.Background(), "draft-1"); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("late confirm error = %v, want ErrDraftNotFound", err)
	}
	if len(f.be.bookings) != 1 || f.demand.counts["oxford"] != 1 {
		t.Errorf("bookings = %d, demand = %v", len(f.be.bookings), f.demand.counts)
	}
}

func TestConfirmFailureReleasesClaim(t *testing.T) {
	f := newBookingFixture()
	f.readyDraft(t)
	f.be.bookingErr = &backend.AppError{Kind: backend.KindNetwork, Message: "timeout"}

	if _, err := f.svc.Confirm(context.Background(), "draft-1"); err == nil {
		t.Fatal("expected failure")
	}
	f.be.bookingErr = nil
	b, err := f.svc.Confirm(context.Background(), "draft-1")
	if err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if b.BookingID == "" || len(f.be.bookings) != 1 {
		t.Errorf("booking = %+v, total %d", b, len(f.be.bookings))
	}
	if len(f.drafts.claims) != 0 {
		t.Errorf("claims left = %v", f.drafts.claims)
	}
}

func TestUniversitiesCached(t *testing.T) {
	f := newBookingFixture()
	f.be.universities = []model.University{{ID: "oxford", Name: "Oxford"}}
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		unis, err := f.svc.Universities(ctx)
		if err != nil || len(unis) != 1 {
			t.Fatalf("Universities = %v, %v", unis, err)
		}
	}
	if f.be.listUnis != 1 {
		t.Errorf("backend called %d times", f.be.listUnis)
	}
}

func TestSearchBookings(t *testing.T) {
	f := newBookingFixture()
	older := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)
	f.be.bookings = []model.Booking{
		{BookingID: "1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Universities: []string{"oxford"}, Status: "confirmed", CreatedAt: &older},
		{BookingID: "2", FirstName: "Alan", LastName: "Turing", Email: "alan@example.com", Universities: []string{"cambridge", "imperial"}, Status: "pending", CreatedAt: &newer},
	}
	ctx := context.Background()

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"2", "1"}},
		{"ADA", []string{"1"}},
		{"imperial", []string{"2"}},
		{"ada lovelace", []string{"1"}},
		{"pending", []string{"2"}},
		{"nobody", []string{}},
	}
	for _, tt := range tests {
		got, err := f.svc.SearchBookings(ctx, tt.query)
		if err != nil {
			t.Fatal(err)
		}
		ids := []string{}
		for _, b := range got {
			ids = append(ids, b.BookingID)
		}
		if !reflect.DeepEqual(ids, tt.want) {
			t.Errorf("SearchBookings(%q) = %v, want %v", tt.query, ids, tt.want)
		}
	}
}

func TestUniversityRank(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	f.demand.Increment(ctx, "oxford", "cambridge")
	f.demand.Increment(ctx, "cambridge")

	tests := []struct {
		university string
		bookings   int
		rank       int
	}{
		{"cambridge", 2, 1},
		{" oxford ", 1, 2},
		{"leeds", 0, 0},
	}
	for _, tt := range tests {
		got, err := f.svc.UniversityRank(ctx, tt.university)
		if err != nil {
			t.Fatal(err)
		}
		if got.Bookings != tt.bookings || got.Rank != tt.rank {
			t.Errorf("UniversityRank(%q) = %+v, want %d bookings rank %d", tt.university, got, tt.bookings, tt.rank)
		}
	}
}

func TestFindUser(t *testing.T) {
	f := newBookingFixture()
	f.be.users["ada@example.com"] = &model.User{UserID: "u1", Email: "ada@example.com"}
	ctx := context.Background()

	u, err := f.svc.FindUser(ctx, " ada@example.com ")
	if err != nil || u.UserID != "u1" {
		t.Fatalf("FindUser = %+v, %v", u, err)
	}
	if _, err := f.svc.FindUser(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user error = %v", err)
	}
}
