package payroll

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/paylens/attendance-backend-go/internal/domain/adjustment"
	"github.com/paylens/attendance-backend-go/internal/domain/holiday"
	"github.com/paylens/attendance-backend-go/internal/domain/record"
	"github.com/paylens/attendance-backend-go/internal/fixtures"
	"github.com/paylens/attendance-backend-go/internal/pkg/timesheet"
	"github.com/shopspring/decimal"
)

// SummaryRequest asks for one employee-month payroll summary. Salary and
// JoinDate are optional overrides; the configured defaults apply otherwise.
type SummaryRequest struct {
	EmployeeID string
	Month      string // YYYY-MM
	Salary     *decimal.Decimal
	JoinDate   string // optional YYYY-MM-DD
}

const cacheTTL = 15 * time.Minute

type cacheEntry struct {
	inputHash string
	result    timesheet.MonthlyResult
	expiresAt time.Time
}

// PayrollService derives monthly payroll summaries from stored inputs.
// Results are never persisted; a short-lived in-memory cache keyed by the
// employee-month and an input fingerprint absorbs repeated dashboard reads.
type PayrollService struct {
	recordRepo     record.Repository
	holidayRepo    holiday.Repository
	adjustmentRepo adjustment.Repository
	policy         timesheet.Policy
	defaultSalary  decimal.Decimal
	now            func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewPayrollService(
	recordRepo record.Repository,
	holidayRepo holiday.Repository,
	adjustmentRepo adjustment.Repository,
	policy timesheet.Policy,
	defaultSalary decimal.Decimal,
) *PayrollService {
	return &PayrollService{
		recordRepo:     recordRepo,
		holidayRepo:    holidayRepo,
		adjustmentRepo: adjustmentRepo,
		policy:         policy,
		defaultSalary:  defaultSalary,
		now:            time.Now,
		cache:          map[string]cacheEntry{},
	}
}

// Summary computes the payroll summary for one employee-month. The same
// stored inputs always produce the same summary, so a cached result is
// returned when the input fingerprint matches.
func (s *PayrollService) Summary(ctx context.Context, req SummaryRequest) (timesheet.MonthlyResult, error) {
	in, err := s.monthInput(ctx, req)
	if err != nil {
		return timesheet.MonthlyResult{}, err
	}

	key := req.EmployeeID + "_" + req.Month
	hash := inputHash(in)

	s.mu.Lock()
	if entry, ok := s.cache[key]; ok && entry.inputHash == hash && s.now().Before(entry.expiresAt) {
		s.mu.Unlock()
		return entry.result, nil
	}
	s.mu.Unlock()

	result, err := timesheet.ComputeMonth(in)
	if err != nil {
		return timesheet.MonthlyResult{}, err
	}

	s.mu.Lock()
	s.cache[key] = cacheEntry{inputHash: hash, result: result, expiresAt: s.now().Add(cacheTTL)}
	s.mu.Unlock()

	return result, nil
}

// PruneCache drops expired entries. Wired as a periodic job.
func (s *PayrollService) PruneCache() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, entry := range s.cache {
		if now.After(entry.expiresAt) {
			delete(s.cache, key)
			removed++
		}
	}
	if removed > 0 {
		slog.Info("Pruned payroll summary cache", "removed", removed, "remaining", len(s.cache))
	}
}

func (s *PayrollService) monthInput(ctx context.Context, req SummaryRequest) (timesheet.MonthInput, error) {
	start, days, err := timesheet.MonthBounds(req.Month)
	if err != nil {
		return timesheet.MonthInput{}, err
	}
	startDate := timesheet.DateString(start)
	endDate := timesheet.DateString(start.AddDate(0, 0, days-1))

	records, err := s.recordRepo.ListByEmployeeAndRange(ctx, req.EmployeeID, startDate, endDate)
	if err != nil {
		return timesheet.MonthInput{}, fmt.Errorf("failed to list records: %w", err)
	}

	stored, err := s.holidayRepo.List(ctx)
	if err != nil {
		return timesheet.MonthInput{}, fmt.Errorf("failed to list holidays: %w", err)
	}

	salary := s.defaultSalary
	if req.Salary != nil {
		salary = *req.Salary
	}

	in := timesheet.MonthInput{
		EmployeeID:    req.EmployeeID,
		Month:         req.Month,
		Records:       records,
		Holidays:      holiday.Merge(stored, fixtures.DefaultHolidays()),
		Today:         s.now(),
		MonthlySalary: salary,
		JoinDate:      req.JoinDate,
		Policy:        s.policy,
	}

	adj, err := s.adjustmentRepo.GetByEmployeeAndMonth(ctx, req.EmployeeID, req.Month)
	switch {
	case err == nil:
		in.Adjustment = &adj
	case errors.Is(err, adjustment.ErrAdjustmentNotFound):
		// derive from records alone
	default:
		return timesheet.MonthInput{}, fmt.Errorf("failed to load adjustment: %w", err)
	}

	return in, nil
}

// inputHash fingerprints everything a summary derives from, today's date
// included so a cached result never straddles midnight.
func inputHash(in timesheet.MonthInput) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	_ = enc.Encode(in.Records)
	_ = enc.Encode(in.Holidays)
	_ = enc.Encode(in.Adjustment)
	_ = enc.Encode(in.MonthlySalary)
	_ = enc.Encode(in.JoinDate)
	_ = enc.Encode(timesheet.DateString(in.Today))
	return hex.EncodeToString(h.Sum(nil))
}
