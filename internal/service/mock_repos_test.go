package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"centrale-operativa/backend/internal/model"
)

// ── Mock ShiftRepository ──

type mockShiftRepo struct {
	shifts []*model.Shift
	nextID int
	clock  time.Time
}

func newMockShiftRepo() *mockShiftRepo {
	return &mockShiftRepo{clock: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (m *mockShiftRepo) Create(_ context.Context, shift *model.Shift) error {
	m.nextID++
	if shift.ShiftID == "" {
		shift.ShiftID = fmt.Sprintf("shift-%03d", m.nextID)
	}
	if shift.CreatedAt.IsZero() {
		m.clock = m.clock.Add(time.Minute)
		shift.CreatedAt = m.clock
	}
	m.shifts = append(m.shifts, shift)
	return nil
}

func (m *mockShiftRepo) GetByID(_ context.Context, id string) (*model.Shift, error) {
	for _, s := range m.shifts {
		if s.ShiftID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockShiftRepo) List(_ context.Context, moduleType string, offset, limit int) ([]model.Shift, int64, error) {
	var filtered []model.Shift
	for _, s := range m.shifts {
		if moduleType != "" && s.ModuleType != moduleType {
			continue
		}
		filtered = append(filtered, *s)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return []model.Shift{}, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockShiftRepo) ListByModuleTypes(_ context.Context, moduleTypes []string) ([]model.Shift, error) {
	wanted := make(map[string]bool, len(moduleTypes))
	for _, t := range moduleTypes {
		wanted[t] = true
	}
	result := make([]model.Shift, 0)
	for _, s := range m.shifts {
		if wanted[s.ModuleType] {
			result = append(result, *s)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockShiftRepo) Delete(_ context.Context, id string) error {
	for i, s := range m.shifts {
		if s.ShiftID == id {
			m.shifts = append(m.shifts[:i], m.shifts[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock OperatorRepository ──

type mockOperatorRepo struct {
	operators map[string]*model.Operator
}

func newMockOperatorRepo() *mockOperatorRepo {
	return &mockOperatorRepo{operators: make(map[string]*model.Operator)}
}

func (m *mockOperatorRepo) Create(_ context.Context, op *model.Operator) error {
	m.operators[op.Matricola] = op
	return nil
}

func (m *mockOperatorRepo) GetByMatricola(_ context.Context, matricola string) (*model.Operator, error) {
	if op, ok := m.operators[matricola]; ok {
		return op, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOperatorRepo) List(_ context.Context, search, qualification string, activeOnly bool) ([]model.Operator, error) {
	var result []model.Operator
	for _, op := range m.operators {
		if activeOnly && !op.IsActive {
			continue
		}
		if qualification != "" && op.Qualification != qualification {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(op.Name), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(op.Matricola), strings.ToLower(search)) {
			continue
		}
		result = append(result, *op)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Matricola < result[j].Matricola
	})
	return result, nil
}

func (m *mockOperatorRepo) ListAll(_ context.Context) ([]model.Operator, error) {
	result := make([]model.Operator, 0, len(m.operators))
	for _, op := range m.operators {
		result = append(result, *op)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Matricola < result[j].Matricola
	})
	return result, nil
}

func (m *mockOperatorRepo) Update(_ context.Context, op *model.Operator) error {
	m.operators[op.Matricola] = op
	return nil
}

func (m *mockOperatorRepo) Delete(_ context.Context, matricola string) error {
	if _, ok := m.operators[matricola]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.operators, matricola)
	return nil
}

// ── Mock AnnouncementRepository ──

type mockAnnouncementRepo struct {
	announcements map[string]*model.Announcement
	order         []string
	acks          map[string]map[string]bool
	votes         map[string]map[string]*model.AttendanceVote
	nextID        int
}

func newMockAnnouncementRepo() *mockAnnouncementRepo {
	return &mockAnnouncementRepo{
		announcements: make(map[string]*model.Announcement),
		acks:          make(map[string]map[string]bool),
		votes:         make(map[string]map[string]*model.AttendanceVote),
	}
}

func (m *mockAnnouncementRepo) Create(_ context.Context, a *model.Announcement) error {
	m.nextID++
	if a.AnnouncementID == "" {
		a.AnnouncementID = fmt.Sprintf("ann-%03d", m.nextID)
	}
	m.announcements[a.AnnouncementID] = a
	m.order = append(m.order, a.AnnouncementID)
	return nil
}

func (m *mockAnnouncementRepo) GetByID(_ context.Context, id string) (*model.Announcement, error) {
	if a, ok := m.announcements[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) List(_ context.Context, offset, limit int) ([]model.Announcement, int64, error) {
	// Newest first, mirroring the SQL implementation.
	var result []model.Announcement
	for i := len(m.order) - 1; i >= 0; i-- {
		result = append(result, *m.announcements[m.order[i]])
	}
	total := int64(len(result))
	if offset >= len(result) {
		return []model.Announcement{}, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockAnnouncementRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.announcements[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.announcements, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockAnnouncementRepo) Ack(_ context.Context, ack *model.AnnouncementAck) error {
	if m.acks[ack.AnnouncementID] == nil {
		m.acks[ack.AnnouncementID] = make(map[string]bool)
	}
	m.acks[ack.AnnouncementID][ack.Matricola] = true
	return nil
}

func (m *mockAnnouncementRepo) CountAcks(_ context.Context, announcementID string) (int64, error) {
	return int64(len(m.acks[announcementID])), nil
}

func (m *mockAnnouncementRepo) HasAcked(_ context.Context, announcementID, matricola string) (bool, error) {
	return m.acks[announcementID][matricola], nil
}

func (m *mockAnnouncementRepo) UpsertVote(_ context.Context, vote *model.AttendanceVote) error {
	if m.votes[vote.AnnouncementID] == nil {
		m.votes[vote.AnnouncementID] = make(map[string]*model.AttendanceVote)
	}
	m.votes[vote.AnnouncementID][vote.Matricola] = vote
	return nil
}

func (m *mockAnnouncementRepo) ListVotes(_ context.Context, announcementID string) ([]model.AttendanceVote, error) {
	var result []model.AttendanceVote
	for _, v := range m.votes[announcementID] {
		result = append(result, *v)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Matricola < result[j].Matricola
	})
	return result, nil
}

// ── Mock AuthEventRepository ──

type mockAuthEventRepo struct {
	events []*model.AuthEvent
	nextID int
}

func newMockAuthEventRepo() *mockAuthEventRepo {
	return &mockAuthEventRepo{}
}

func (m *mockAuthEventRepo) Create(_ context.Context, event *model.AuthEvent) error {
	m.nextID++
	if event.EventID == "" {
		event.EventID = fmt.Sprintf("evt-%03d", m.nextID)
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockAuthEventRepo) List(_ context.Context, offset, limit int) ([]model.AuthEvent, int64, error) {
	var result []model.AuthEvent
	for i := len(m.events) - 1; i >= 0; i-- {
		result = append(result, *m.events[i])
	}
	total := int64(len(result))
	if offset >= len(result) {
		return []model.AuthEvent{}, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}
