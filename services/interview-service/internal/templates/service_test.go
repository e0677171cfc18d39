package templates

import (
	"context"
	"testing"

	"github.com/md-rashed-zaman/mockinterview/libs/runtime"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/apperr"
	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/storage/memstore"
)

func validInput() CreateInput {
	return CreateInput{
		InterviewerID:     "iv-1",
		DayOfWeek:         1,
		StartTime:         "09:00",
		EndTime:           "12:00",
		BreakStart:        "10:00",
		BreakEnd:          "10:30",
		InterviewDuration: 30,
		BufferMinutes:     5,
		Timezone:          "America/New_York",
	}
}

func TestCreateAndList(t *testing.T) {
	store := memstore.New()
	svc := NewService(store, runtime.DiscardLogger())
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || !created.IsActive {
		t.Fatalf("expected active template with id, got %+v", created)
	}
	if created.Break == nil || created.Break.Start != "10:00" || created.Break.End != "10:30" {
		t.Fatalf("unexpected break %+v", created.Break)
	}

	list, err := svc.List(ctx, "iv-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("expected the created template, got %+v", list)
	}
}

func TestCreate_NormalisesClockSeconds(t *testing.T) {
	svc := NewService(memstore.New(), nil)
	in := validInput()
	in.StartTime, in.EndTime = "09:00:00", "12:00:00"
	in.BreakStart, in.BreakEnd = "", ""

	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.StartTime != "09:00" || created.EndTime != "12:00" || created.Break != nil {
		t.Fatalf("unexpected template %+v", created)
	}
}

func TestCreate_Validation(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*CreateInput)
	}{
		{"missing interviewer", func(in *CreateInput) { in.InterviewerID = "" }},
		{"day too large", func(in *CreateInput) { in.DayOfWeek = 7 }},
		{"day negative", func(in *CreateInput) { in.DayOfWeek = -1 }},
		{"bad start", func(in *CreateInput) { in.StartTime = "9am" }},
		{"start after end", func(in *CreateInput) { in.StartTime, in.EndTime = "13:00", "12:00" }},
		{"zero duration", func(in *CreateInput) { in.InterviewDuration = 0 }},
		{"duration longer than window", func(in *CreateInput) { in.InterviewDuration = 240 }},
		{"negative buffer", func(in *CreateInput) { in.BufferMinutes = -5 }},
		{"missing timezone", func(in *CreateInput) { in.Timezone = "" }},
		{"unknown timezone", func(in *CreateInput) { in.Timezone = "Atlantis/Central" }},
		{"half a break", func(in *CreateInput) { in.BreakEnd = "" }},
		{"inverted break", func(in *CreateInput) { in.BreakStart, in.BreakEnd = "11:00", "10:00" }},
		{"break outside window", func(in *CreateInput) { in.BreakStart, in.BreakEnd = "11:30", "12:30" }},
	}
	svc := NewService(memstore.New(), nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mut(&in)
			if _, err := svc.Create(context.Background(), in); !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestDeleteAndDeactivate(t *testing.T) {
	store := memstore.New()
	svc := NewService(store, nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Deactivate(ctx, a.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	active, _ := store.ListActiveTemplates(ctx, "iv-1")
	if len(active) != 1 || active[0].ID != b.ID {
		t.Fatalf("expected only %s active, got %+v", b.ID, active)
	}

	if err := svc.Delete(ctx, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, b.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	all, _ := svc.List(ctx, "iv-1")
	if len(all) != 1 || all[0].ID != a.ID || all[0].IsActive {
		t.Fatalf("expected only inactive %s, got %+v", a.ID, all)
	}
}
