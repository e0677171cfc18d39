package availability

import (
	"fmt"
	"time"

	"github.com/md-rashed-zaman/mockinterview/services/interview-service/internal/model"
)

type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps is the half-open intersection test shared by slot resolution and booking:
// [aStart,aEnd) and [bStart,bEnd) overlap iff aStart < bEnd && aEnd > bStart.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

// Window is a template materialised on one calendar date.
type Window struct {
	Start      time.Time
	End        time.Time
	BreakStart time.Time
	BreakEnd   time.Time
	HasBreak   bool
	Duration   time.Duration
	Buffer     time.Duration
}

// Contains reports whether [start,end) fits the window without touching its break.
func (w Window) Contains(start, end time.Time) bool {
	if start.Before(w.Start) || end.After(w.End) || !end.After(start) {
		return false
	}
	return !(w.HasBreak && Overlaps(start, end, w.BreakStart, w.BreakEnd))
}

// Materialize resolves tpl's wall-clock times on day's date in the template's own zone.
func Materialize(tpl model.AvailabilityTemplate, day time.Time) (Window, error) {
	loc, err := LoadLocation(tpl.Timezone)
	if err != nil {
		return Window{}, err
	}
	startClock, err := ParseClock(tpl.StartTime)
	if err != nil {
		return Window{}, err
	}
	endClock, err := ParseClock(tpl.EndTime)
	if err != nil {
		return Window{}, err
	}
	if endClock.Minutes() <= startClock.Minutes() {
		return Window{}, fmt.Errorf("template %s: start %s is not before end %s", tpl.ID, startClock, endClock)
	}
	if tpl.InterviewDuration <= 0 {
		return Window{}, fmt.Errorf("template %s: interview duration must be positive", tpl.ID)
	}
	if tpl.BufferMinutes < 0 {
		return Window{}, fmt.Errorf("template %s: buffer must not be negative", tpl.ID)
	}

	w := Window{
		Start:    AtClock(day, startClock, loc),
		End:      AtClock(day, endClock, loc),
		Duration: minutes(tpl.InterviewDuration),
		Buffer:   minutes(tpl.BufferMinutes),
	}
	if tpl.Break != nil && tpl.Break.Start != "" && tpl.Break.End != "" {
		bs, err := ParseClock(tpl.Break.Start)
		if err != nil {
			return Window{}, err
		}
		be, err := ParseClock(tpl.Break.End)
		if err != nil {
			return Window{}, err
		}
		if be.Minutes() > bs.Minutes() {
			w.BreakStart = AtClock(day, bs, loc)
			w.BreakEnd = AtClock(day, be, loc)
			w.HasBreak = true
		}
	}
	return w, nil
}

// GenerateSlots sweeps the window once from its start:
//   - a candidate starting before now is skipped and the cursor advances by duration+buffer;
//   - a candidate touching the break jumps the cursor to the break end, with no buffer;
//   - a candidate overlapping a busy interval is skipped, then the cursor advances past it
//     plus buffer;
//   - otherwise the slot is emitted and the cursor moves to slot end plus buffer.
//
// The loop runs while cursor+duration <= window end.
func GenerateSlots(w Window, busy []Interval, now time.Time) []model.SlotWindow {
	if w.Duration <= 0 || w.Buffer < 0 || !w.End.After(w.Start) {
		return nil
	}
	durationMins := int(w.Duration / time.Minute)

	var slots []model.SlotWindow
	current := w.Start
	for !current.Add(w.Duration).After(w.End) {
		slotEnd := current.Add(w.Duration)

		if current.Before(now) {
			current = slotEnd.Add(w.Buffer)
			continue
		}
		if w.HasBreak && Overlaps(current, slotEnd, w.BreakStart, w.BreakEnd) {
			// Overlap implies current < BreakEnd, so the cursor always moves forward.
			current = w.BreakEnd
			continue
		}
		if !overlapsAny(current, slotEnd, busy) {
			slots = append(slots, model.SlotWindow{Start: current, End: slotEnd, Duration: durationMins})
		}
		current = slotEnd.Add(w.Buffer)
	}
	return slots
}
