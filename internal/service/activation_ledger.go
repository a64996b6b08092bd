package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"centrale-operativa/backend/internal/dto"
	"centrale-operativa/backend/internal/model"
)

// ── activation ledger ────────────────────────────────────────
//
// The ledger reconstructs activation↔deactivation pairs from the raw shift
// feed and aggregates duty minutes per operator. It is a pure computation:
// no I/O, no shared state, deterministic for a given input.
//
// Rules:
//   - records are ordered by created_at ascending before pairing
//   - a pair requires the same module family and the exact same operator-id
//     set (order-insensitive); the earliest following deactivation wins
//   - each deactivation closes at most one activation
//   - duty minutes come from the "HH:MM" clock fields; a negative difference
//     means the deactivation happened the next day (+24h, applied once)
//   - malformed or missing clock values degrade to zero duration, the pair
//     still counts; only a structurally invalid feed aborts the run
// ─────────────────────────────────────────────────────────────

// ErrNilShiftFeed marks a structurally invalid (nil) record feed.
var ErrNilShiftFeed = errors.New("shift feed is nil")

const minutesPerDay = 24 * 60

// ActivationPair couples one activation record with the deactivation that
// closed it. Derived in memory on every run, never persisted.
type ActivationPair struct {
	Activation   *model.Shift
	Deactivation *model.Shift
}

// PairingResult is the outcome of one pairing pass.
type PairingResult struct {
	Pairs                  []ActivationPair
	UnmatchedActivations   []*model.Shift
	UnmatchedDeactivations []*model.Shift
}

// PairShifts reconstructs activation pairs from an unordered shift feed.
//
// A nil feed or a record with an unknown module type is a structural error;
// an empty feed is a valid, empty ledger. Records with an empty operator set
// cannot identify a crew and are reported as unmatched.
func PairShifts(shifts []model.Shift) (*PairingResult, error) {
	if shifts == nil {
		return nil, ErrNilShiftFeed
	}

	ordered := make([]*model.Shift, len(shifts))
	for i := range shifts {
		if !model.IsValidModuleType(shifts[i].ModuleType) {
			return nil, fmt.Errorf("record %s: unknown module type %q", shifts[i].ShiftID, shifts[i].ModuleType)
		}
		ordered[i] = &shifts[i]
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	result := &PairingResult{Pairs: []ActivationPair{}}

	type candidate struct {
		shift    *model.Shift
		consumed bool
	}

	// Deactivation candidates per family, indexed by operator-set key,
	// kept in created_at order inside each bucket.
	candidates := make(map[string]map[string][]*candidate)
	candidates[model.FamilyPatrol] = make(map[string][]*candidate)
	candidates[model.FamilyHeist] = make(map[string][]*candidate)

	var activations []*model.Shift
	var allCandidates []*candidate

	for _, s := range ordered {
		if s.IsActivation() {
			activations = append(activations, s)
			continue
		}
		key := operatorSetKey(s.PairingOperators())
		if key == "" {
			result.UnmatchedDeactivations = append(result.UnmatchedDeactivations, s)
			continue
		}
		c := &candidate{shift: s}
		candidates[s.Family()][key] = append(candidates[s.Family()][key], c)
		allCandidates = append(allCandidates, c)
	}

	for _, a := range activations {
		key := operatorSetKey(a.PairingOperators())
		if key == "" {
			result.UnmatchedActivations = append(result.UnmatchedActivations, a)
			continue
		}

		var matched *candidate
		for _, c := range candidates[a.Family()][key] {
			if c.consumed {
				continue
			}
			if c.shift.CreatedAt.After(a.CreatedAt) {
				matched = c
				break
			}
		}

		if matched == nil {
			result.UnmatchedActivations = append(result.UnmatchedActivations, a)
			continue
		}
		matched.consumed = true
		result.Pairs = append(result.Pairs, ActivationPair{
			Activation:   a,
			Deactivation: matched.shift,
		})
	}

	for _, c := range allCandidates {
		if !c.consumed {
			result.UnmatchedDeactivations = append(result.UnmatchedDeactivations, c.shift)
		}
	}

	return result, nil
}

// operatorSetKey builds the order-insensitive pairing key from the operator
// ids. Empty list yields "".
func operatorSetKey(ops model.PersonList) string {
	if len(ops) == 0 {
		return ""
	}
	ids := ops.IDs()
	sort.Strings(ids)
	return strings.Join(ids, "\x1f")
}

// clockMinutes parses a strict "HH:MM" wall-clock string into
// minutes since midnight.
func clockMinutes(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	h, m := 0, 0
	for _, c := range s[:2] {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid clock value %q", s)
		}
		h = h*10 + int(c-'0')
	}
	for _, c := range s[3:] {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid clock value %q", s)
		}
		m = m*10 + int(c-'0')
	}
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	return h*60 + m, nil
}

// PairDuration computes the duty minutes of a pair from its clock fields.
// The second return value is false when either field is missing or
// malformed; the pair then contributes zero duration but still counts.
func PairDuration(p ActivationPair) (int, bool) {
	if p.Activation.ActivationTime == nil || p.Deactivation.DeactivationTime == nil {
		return 0, false
	}
	start, err := clockMinutes(*p.Activation.ActivationTime)
	if err != nil {
		return 0, false
	}
	end, err := clockMinutes(*p.Deactivation.DeactivationTime)
	if err != nil {
		return 0, false
	}

	duration := end - start
	if duration < 0 {
		// Deactivation clock rolled past midnight. "HH:MM" values cannot
		// express spans beyond 24h, so the correction applies exactly once.
		duration += minutesPerDay
	}
	return duration, true
}

// AggregateStats folds matched pairs into per-operator totals, joins display
// fields from the roster and sorts by the fixed rank order.
//
// Identity is the operator id (matricola); the display name is a fallback
// lookup key only, so two operators sharing a name never merge. Returns the
// ranked rows and the number of pairs with unusable clock values.
func AggregateStats(result *PairingResult, directory []model.Operator, rankOrder []string) ([]dto.OperatorStat, int) {
	byID := make(map[string]*model.Operator, len(directory))
	byName := make(map[string]*model.Operator, len(directory))
	for i := range directory {
		byID[directory[i].Matricola] = &directory[i]
		byName[directory[i].Name] = &directory[i]
	}

	totals := make(map[string]*dto.OperatorStat)
	var order []string // first-appearance order, the tie-break for ranking
	malformed := 0

	for _, pair := range result.Pairs {
		duration, ok := PairDuration(pair)
		if !ok {
			malformed++
		}

		for _, ref := range pair.Activation.PairingOperators() {
			stat, exists := totals[ref.ID]
			if !exists {
				stat = &dto.OperatorStat{
					Matricola: ref.ID,
					Operator:  ref.Name,
				}
				if op := lookupOperator(ref, byID, byName); op != nil {
					stat.Qualification = op.Qualification
					stat.AvatarURL = op.AvatarURL
					if stat.Operator == "" {
						stat.Operator = op.Name
					}
				}
				totals[ref.ID] = stat
				order = append(order, ref.ID)
			}
			stat.TotalMinutes += duration
			stat.Pairings++
		}
	}

	rankIndex := make(map[string]int, len(rankOrder))
	for i, q := range rankOrder {
		rankIndex[q] = i
	}
	rank := func(stat *dto.OperatorStat) int {
		if i, ok := rankIndex[stat.Qualification]; ok {
			return i
		}
		return len(rankOrder)
	}

	stats := make([]dto.OperatorStat, 0, len(order))
	for _, id := range order {
		stat := totals[id]
		stat.Hours = stat.TotalMinutes / 60
		stat.Minutes = stat.TotalMinutes % 60
		stats = append(stats, *stat)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return rank(&stats[i]) < rank(&stats[j])
	})

	return stats, malformed
}

// lookupOperator resolves a roster entry by id, falling back to the display
// name for records predating stable matricola assignment.
func lookupOperator(ref model.OperatorRef, byID, byName map[string]*model.Operator) *model.Operator {
	if op, ok := byID[ref.ID]; ok {
		return op
	}
	if op, ok := byName[ref.Name]; ok {
		return op
	}
	return nil
}
