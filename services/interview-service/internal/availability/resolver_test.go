package availability

import (
	"context"
	"testing"
	"time"

	"github.com/md-rashed-zaman/mockinterview/libs/runtime"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/apperr"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/model"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/storage/memstore"
)

func newResolver(t *testing.T, now time.Time, templates ...model.AvailabilityTemplate) (*Resolver, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	for _, tpl := range templates {
		if _, err := store.CreateTemplate(context.Background(), tpl); err != nil {
			t.Fatalf("create template: %v", err)
		}
	}
	return NewResolver(store, store, runtime.NewFixedClock(now), runtime.DiscardLogger()), store
}

func book(t *testing.T, store *memstore.Store, id string, start time.Time, mins int, status model.InterviewStatus) {
	t.Helper()
	iv := &model.Interview{
		ID:            id,
		InterviewerID: "iv-1",
		ScheduledTime: start,
		EndTime:       start.Add(time.Duration(mins) * time.Minute),
		Duration:      mins,
		Status:        model.StatusScheduled,
	}
	if err := store.InsertIfFree(context.Background(), iv); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if status != model.StatusScheduled {
		if _, _, err := store.TransitionStatus(context.Background(), id, model.StatusScheduled, status); err != nil {
			t.Fatalf("transition: %v", err)
		}
	}
}

var beforeMonday = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestResolveSlots_SingleSlotWithBuffer(t *testing.T) {
	r, _ := newResolver(t, beforeMonday, utcTemplate("09:00", "11:00", 60, 15))
	res, err := r.ResolveSlots(context.Background(), Request{InterviewerID: "iv-1", Date: "2026-03-02"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	assertStarts(t, res.Slots, "09:00")
	if res.Reference.String() != "UTC" {
		t.Fatalf("unexpected reference zone %s", res.Reference)
	}
}

func TestResolveSlots_BookedWindowRemoved(t *testing.T) {
	r, store := newResolver(t, beforeMonday, utcTemplate("09:00", "11:00", 60, 15))
	book(t, store, "b-1", at(9, 0), 60, model.StatusScheduled)

	res, err := r.ResolveSlots(context.Background(), Request{InterviewerID: "iv-1", Date: "2026-03-02"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(res.Slots) != 0 {
		t.Fatalf("expected no slots, got %v", starts(res.Slots))
	}
}

func TestResolveSlots_CancelledBookingDoesNotBlock(t *testing.T) {
	r, store := newResolver(t, beforeMonday, utcTemplate("09:00", "11:00", 60, 15))
	book(t, store, "b-1", at(9, 0), 60, model.StatusCancelled)

	res, err := r.ResolveSlots(context.Background(), Request{InterviewerID: "iv-1", Date: "2026-03-02"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	assertStarts(t, res.Slots, "09:00")
}

func TestResolveSlots_SplitShiftsSortedAndKeptApart(t *testing.T) {
	afternoon := utcTemplate("14:00", "15:00", 30, 0)
	afternoon.ID = "tpl-a"
	morning := utcTemplate("09:00", "10:00", 30, 0)
	morning.ID = "tpl-b"
	dup := utcTemplate("09:00", "09:30", 30, 0)
	dup.ID = "tpl-c"

	r, _ := newResolver(t, beforeMonday, afternoon, morning, dup)
	res, err := r.ResolveSlots(context.Background(), Request{InterviewerID: "iv-1", Date: "2026-03-02"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	// Identical starts from two templates are both kept.
	assertStarts(t, res.Slots, "09:00", "09:00", "09:30", "14:00", "14:30")
}

func TestResolveSlots_InactiveAndOtherDaysIgnored(t *testing.T) {
	inactive := utcTemplate("09:00", "10:00", 30, 0)
	inactive.ID = "tpl-inactive"
	inactive.IsActive = false
	tuesday := utcTemplate("09:00", "10:00", 30, 0)
	tuesday.ID = "tpl-tue"
	tuesday.DayOfWeek = 2

	r, _ := newResolver(t, beforeMonday, inactive, tuesday)
	res, err := r.ResolveSlots(context.Background(), Request{InterviewerID: "iv-1", Date: "2026-03-02"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(res.Slots) != 0 {
		t.Fatalf("expected no slots, got %v", starts(res.Slots))
	}
}

func TestResolveSlots_NoTemplatesIsEmptyNotError(t *testing.T) {
	r, _ := newResolver(t, beforeMonday)
	res, err := r.ResolveSlots(context.Background(), Request{InterviewerID: "nobody", Date: "2026-03-02"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(res.Slots) != 0 || res.Reference != nil {
		t.Fatalf("expected empty result, got %+v", res)
	}
}

func TestResolveSlots_ReferenceTimezoneNotCallerTimezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	tpl := utcTemplate("09:00", "10:00", 60, 0)
	tpl.Timezone = "Asia/Tokyo"

	r, _ := newResolver(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), tpl)
	// 2026-03-02 is Monday in Tokyo; in New York that instant is still Sunday evening.
	res, err := r.ResolveSlots(context.Background(), Request{InterviewerID: "iv-1", Date: "2026-03-02", Timezone: "America/New_York"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(res.Slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(res.Slots))
	}
	want := time.Date(2026, 3, 2, 9, 0, 0, 0, tokyo)
	if !res.Slots[0].Start.Equal(want) {
		t.Fatalf("expected %s, got %s", want, res.Slots[0].Start)
	}
	if res.Display.String() != "America/New_York" || res.Reference.String() != "Asia/Tokyo" {
		t.Fatalf("unexpected zones display=%s reference=%s", res.Display, res.Reference)
	}
}

func TestResolveSlots_PastSlotsExcluded(t *testing.T) {
	now := at(9, 45)
	r, _ := newResolver(t, now, utcTemplate("09:00", "12:00", 30, 0))
	res, err := r.ResolveSlots(context.Background(), Request{InterviewerID: "iv-1", Date: "2026-03-02"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, s := range res.Slots {
		if s.Start.Before(now) {
			t.Fatalf("slot %s is in the past", s.Start)
		}
	}
	assertStarts(t, res.Slots, "10:00", "10:30", "11:00", "11:30")
}

func TestResolveSlots_SlotsStayInsideWindowAndClearOfBookings(t *testing.T) {
	tpl := utcTemplate("08:00", "18:00", 45, 10)
	tpl.Break = &model.BreakWindow{Start: "12:00", End: "13:00"}
	r, store := newResolver(t, beforeMonday, tpl)
	book(t, store, "b-1", at(9, 20), 30, model.StatusScheduled)
	book(t, store, "b-2", at(15, 0), 90, model.StatusScheduled)

	res, err := r.ResolveSlots(context.Background(), Request{InterviewerID: "iv-1", Date: "2026-03-02"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(res.Slots) == 0 {
		t.Fatal("expected some slots")
	}
	for _, s := range res.Slots {
		if s.Start.Before(at(8, 0)) || s.End.After(at(18, 0)) {
			t.Fatalf("slot %s-%s outside window", s.Start, s.End)
		}
		if Overlaps(s.Start, s.End, at(12, 0), at(13, 0)) {
			t.Fatalf("slot %s intersects break", s.Start)
		}
		if Overlaps(s.Start, s.End, at(9, 20), at(9, 50)) || Overlaps(s.Start, s.End, at(15, 0), at(16, 30)) {
			t.Fatalf("slot %s intersects a booking", s.Start)
		}
	}
}

func TestResolveSlots_Validation(t *testing.T) {
	r, _ := newResolver(t, beforeMonday, utcTemplate("09:00", "11:00", 60, 15))
	ctx := context.Background()

	if _, err := r.ResolveSlots(ctx, Request{Date: "2026-03-02"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for missing interviewer, got %v", err)
	}
	if _, err := r.ResolveSlots(ctx, Request{InterviewerID: "iv-1", Date: "03/02/2026"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
	if _, err := r.ResolveSlots(ctx, Request{InterviewerID: "iv-1", Date: "2026-03-02", Timezone: "Mars/Olympus"}); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for bad timezone, got %v", err)
	}
}

func TestWindowAvailable(t *testing.T) {
	tpl := utcTemplate("09:00", "12:00", 30, 0)
	tpl.Break = &model.BreakWindow{Start: "10:00", End: "10:30"}
	r, _ := newResolver(t, beforeMonday, tpl)
	ctx := context.Background()

	cases := []struct {
		start, end time.Time
		want       bool
	}{
		{at(9, 0), at(9, 30), true},
		{at(11, 30), at(12, 0), true},
		{at(11, 45), at(12, 15), false},
		{at(9, 45), at(10, 15), false},
		{at(8, 30), at(9, 0), false},
	}
	for _, tc := range cases {
		got, err := r.WindowAvailable(ctx, "iv-1", tc.start, tc.end)
		if err != nil {
			t.Fatalf("window available: %v", err)
		}
		if got != tc.want {
			t.Fatalf("%s-%s: expected %v, got %v", tc.start.Format("15:04"), tc.end.Format("15:04"), tc.want, got)
		}
	}

	if _, err := r.WindowAvailable(ctx, "nobody", at(9, 0), at(9, 30)); !apperr.Is(err, apperr.KindConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
