package service

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"centrale-operativa/backend/internal/repository"
)

// ── test setup ──

func setupTestCalendarService() (CalendarService, *mockShiftRepo) {
	shiftRepo := newMockShiftRepo()
	repo := &repository.Repository{
		Shift:        shiftRepo,
		Operator:     newMockOperatorRepo(),
		Announcement: newMockAnnouncementRepo(),
		AuthEvent:    newMockAuthEventRepo(),
	}
	svc := NewCalendarService(repo, zap.NewNop())
	return svc, shiftRepo
}

func TestCalendarService_EmptyLedger(t *testing.T) {
	svc, _ := setupTestCalendarService()

	feed, err := svc.ActivationCalendar(context.Background())
	if err != nil {
		t.Fatalf("ActivationCalendar failed: %v", err)
	}
	if !strings.Contains(feed, "BEGIN:VCALENDAR") || !strings.Contains(feed, "END:VCALENDAR") {
		t.Error("expected a valid empty calendar")
	}
	if strings.Contains(feed, "BEGIN:VEVENT") {
		t.Error("an empty ledger must not produce events")
	}
}

func TestCalendarService_OneEventPerPair(t *testing.T) {
	svc, shiftRepo := setupTestCalendarService()

	seedShift(t, shiftRepo, patrolActivation(t, "", "21:00", 0, crew("M.001", "M.002")))
	seedShift(t, shiftRepo, patrolDeactivation(t, "", "23:30", 0, crew("M.002", "M.001")))
	// An open activation never becomes an event.
	seedShift(t, shiftRepo, patrolActivation(t, "", "09:00", 0, crew("M.003")))

	feed, err := svc.ActivationCalendar(context.Background())
	if err != nil {
		t.Fatalf("ActivationCalendar failed: %v", err)
	}

	if got := strings.Count(feed, "BEGIN:VEVENT"); got != 1 {
		t.Fatalf("expected 1 event, got %d", got)
	}
	if !strings.Contains(feed, "SUMMARY:Pattuglia") {
		t.Error("expected a patrol summary")
	}
	if !strings.Contains(feed, "M.001") {
		t.Error("expected the crew in the event description")
	}
}

func TestCalendarService_EventSpansPairDuration(t *testing.T) {
	svc, shiftRepo := setupTestCalendarService()

	seedShift(t, shiftRepo, patrolActivation(t, "", "21:00", 0, crew("M.001")))
	seedShift(t, shiftRepo, patrolDeactivation(t, "", "22:30", 0, crew("M.001")))

	feed, err := svc.ActivationCalendar(context.Background())
	if err != nil {
		t.Fatalf("ActivationCalendar failed: %v", err)
	}

	// Anchored on the record's creation date: start 21:00, end 22:30.
	if !strings.Contains(feed, "T210000") {
		t.Error("expected the event to start at 21:00")
	}
	if !strings.Contains(feed, "T223000") {
		t.Error("expected the event to end at 22:30")
	}
}
