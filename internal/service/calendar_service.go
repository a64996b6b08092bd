package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"centrale-operativa/backend/internal/model"
	"centrale-operativa/backend/internal/repository"
)

// CalendarService publishes the matched activations as an iCalendar feed,
// one event per pair, for subscription from the unit's shared calendars.
type CalendarService interface {
	ActivationCalendar(ctx context.Context) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCalendarService creates the CalendarService.
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger}
}

func (s *calendarService) ActivationCalendar(ctx context.Context) (string, error) {
	shifts, err := s.repo.Shift.ListByModuleTypes(ctx, model.ModuleTypes)
	if err != nil {
		s.logger.Error("loading shift records failed", zap.Error(err))
		return "", err
	}

	result, err := PairShifts(shifts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidShiftFeed, err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Centrale Operativa//Attivazioni//IT")
	cal.SetName("Attivazioni Centrale Operativa")

	for _, pair := range result.Pairs {
		event := cal.AddEvent(pair.Activation.ShiftID)
		event.SetCreatedTime(pair.Activation.CreatedAt)
		event.SetDtStampTime(pair.Deactivation.CreatedAt)
		event.SetSummary(eventSummary(pair.Activation))

		start := eventStart(pair.Activation)
		event.SetStartAt(start)
		if duration, ok := PairDuration(pair); ok {
			event.SetEndAt(start.Add(time.Duration(duration) * time.Minute))
		} else {
			event.SetEndAt(start)
		}

		if pair.Activation.InterventionType != nil {
			event.SetLocation(*pair.Activation.InterventionType)
		}
		event.SetDescription(crewLabel(pair.Activation.PairingOperators()))
	}

	return cal.Serialize(), nil
}

// eventStart anchors the event on the record's creation date at the wall
// clock from the activation form. With an unusable clock the creation
// timestamp itself stands in.
func eventStart(activation *model.Shift) time.Time {
	created := activation.CreatedAt
	if activation.ActivationTime == nil {
		return created
	}
	minutes, err := clockMinutes(*activation.ActivationTime)
	if err != nil {
		return created
	}
	midnight := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, created.Location())
	return midnight.Add(time.Duration(minutes) * time.Minute)
}

func eventSummary(activation *model.Shift) string {
	switch activation.ModuleType {
	case model.ModulePatrolActivation:
		return "Pattuglia · " + crewLabel(activation.OperatorsOut)
	case model.ModuleHeistActivation:
		return "Rapina · " + crewLabel(activation.OperatorsInvolved)
	default:
		return "Attivazione"
	}
}
