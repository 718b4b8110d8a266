package attendance

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/paylens/attendance-backend-go/internal/domain/adjustment"
	"github.com/paylens/attendance-backend-go/internal/domain/holiday"
	"github.com/paylens/attendance-backend-go/internal/domain/record"
	"github.com/paylens/attendance-backend-go/internal/pkg/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecordRepo struct {
	records map[string]record.Record
}

func (f *fakeRecordRepo) Upsert(_ context.Context, rec record.Record) (bool, error) {
	_, exists := f.records[rec.ID]
	f.records[rec.ID] = rec
	return !exists, nil
}

func (f *fakeRecordRepo) GetByID(_ context.Context, id string) (record.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return record.Record{}, record.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeRecordRepo) ListByEmployeeAndRange(_ context.Context, employeeID, startDate, endDate string) ([]record.Record, error) {
	var out []record.Record
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Date >= startDate && rec.Date <= endDate {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeRecordRepo) DeleteStaleInRange(_ context.Context, employeeID, startDate, endDate string, keep []string) (int64, error) {
	keepSet := make(map[string]bool, len(keep))
	for _, id := range keep {
		keepSet[id] = true
	}
	var n int64
	for id, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Date >= startDate && rec.Date <= endDate && !keepSet[id] {
			delete(f.records, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeRecordRepo) SetLeave(_ context.Context, id string, isLeave bool, leaveType string) (record.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return record.Record{}, record.ErrRecordNotFound
	}
	rec.IsLeave = isLeave
	rec.LeaveType = leaveType
	f.records[id] = rec
	return rec, nil
}

type fakeHolidayRepo struct {
	holidays []holiday.Holiday
}

func (f *fakeHolidayRepo) List(_ context.Context) ([]holiday.Holiday, error) {
	return f.holidays, nil
}

func (f *fakeHolidayRepo) Create(_ context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	f.holidays = append(f.holidays, h)
	return h, nil
}

func (f *fakeHolidayRepo) Delete(_ context.Context, id string) error {
	return holiday.ErrHolidayNotFound
}

type fakeAdjustmentRepo struct {
	adjustments map[string]adjustment.Adjustment
}

func (f *fakeAdjustmentRepo) GetByEmployeeAndMonth(_ context.Context, employeeID, month string) (adjustment.Adjustment, error) {
	adj, ok := f.adjustments[employeeID+"_"+month]
	if !ok {
		return adjustment.Adjustment{}, adjustment.ErrAdjustmentNotFound
	}
	return adj, nil
}

func (f *fakeAdjustmentRepo) Upsert(_ context.Context, adj adjustment.Adjustment) (adjustment.Adjustment, error) {
	if f.adjustments == nil {
		f.adjustments = map[string]adjustment.Adjustment{}
	}
	f.adjustments[adj.Key()] = adj
	return adj, nil
}

func newTestService(records ...record.Record) (*AttendanceService, *fakeRecordRepo) {
	repo := &fakeRecordRepo{records: map[string]record.Record{}}
	for _, rec := range records {
		repo.records[rec.ID] = rec
	}
	svc := NewAttendanceService(repo, &fakeHolidayRepo{}, &fakeAdjustmentRepo{}, timesheet.DefaultPolicy())
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }
	return svc, repo
}

func storedRecord(employeeID, date string, times ...string) record.Record {
	return record.Record{
		ID:         record.DocumentID(employeeID, date),
		EmployeeID: employeeID,
		Date:       date,
		PunchTimes: times,
	}
}

func TestList_ComputesDerivedFields(t *testing.T) {
	svc, _ := newTestService(
		storedRecord("E-1", "2025-05-05", "09:00", "13:00", "14:00", "18:00"),
		storedRecord("E-1", "2025-05-06", "09:30"),
	)

	result, err := svc.List(context.Background(), record.ListFilter{EmployeeID: "E-1"})
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "09:00", result[0].InTime)
	assert.Equal(t, "18:00", result[0].OutTime)
	assert.Equal(t, "8:00", result[0].TotalHours)

	assert.Equal(t, "0:00", result[1].TotalHours, "a single punch yields no interval")
}

func TestList_RangeFilter(t *testing.T) {
	svc, _ := newTestService(
		storedRecord("E-1", "2025-05-05", "09:00", "18:00"),
		storedRecord("E-1", "2025-06-05", "09:00", "18:00"),
	)

	result, err := svc.List(context.Background(), record.ListFilter{
		EmployeeID: "E-1",
		StartDate:  "2025-05-01",
		EndDate:    "2025-05-31",
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "2025-05-05", result[0].Date)
}

func TestList_RequiresEmployeeID(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.List(context.Background(), record.ListFilter{})
	assert.Error(t, err)
}

func TestMarkLeave_TogglesFlagOnly(t *testing.T) {
	svc, repo := newTestService(storedRecord("E-1", "2025-05-05", "09:00", "18:00"))
	id := record.DocumentID("E-1", "2025-05-05")

	result, err := svc.MarkLeave(context.Background(), id, record.MarkLeaveRequest{
		IsLeave:   true,
		LeaveType: record.LeaveTypePaid,
	})
	require.NoError(t, err)
	assert.True(t, result.IsLeave)
	assert.Equal(t, record.LeaveTypePaid, result.LeaveType)
	assert.Equal(t, []string{"09:00", "18:00"}, repo.records[id].PunchTimes, "punches survive the toggle")

	// unsetting clears the leave type even when one is sent
	result, err = svc.MarkLeave(context.Background(), id, record.MarkLeaveRequest{
		IsLeave:   false,
		LeaveType: record.LeaveTypePaid,
	})
	require.NoError(t, err)
	assert.False(t, result.IsLeave)
	assert.Empty(t, result.LeaveType)
}

func TestMarkLeave_UnknownRecord(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.MarkLeave(context.Background(), "nope", record.MarkLeaveRequest{IsLeave: true, LeaveType: record.LeaveTypePaid})
	assert.ErrorIs(t, err, record.ErrRecordNotFound)
}

func TestMarkLeave_RejectsUnknownLeaveType(t *testing.T) {
	svc, _ := newTestService(storedRecord("E-1", "2025-05-05"))

	_, err := svc.MarkLeave(context.Background(), record.DocumentID("E-1", "2025-05-05"), record.MarkLeaveRequest{
		IsLeave:   true,
		LeaveType: "Sabbatical",
	})
	assert.Error(t, err)
}

func TestDaily_FullCalendar(t *testing.T) {
	svc, _ := newTestService(
		storedRecord("E-1", "2025-05-05", "09:00", "17:30"),
	)

	days, err := svc.Daily(context.Background(), "E-1", "2025-05")
	require.NoError(t, err)
	require.Len(t, days, 31, "every calendar day appears, records or not")

	byDate := map[string]timesheet.DayResult{}
	for _, d := range days {
		byDate[d.Date] = d
	}

	assert.Equal(t, timesheet.StatusFullDay, byDate["2025-05-05"].Status)
	assert.Equal(t, timesheet.StatusAbsent, byDate["2025-05-06"].Status)
	assert.Equal(t, timesheet.StatusWeekend, byDate["2025-05-10"].Status)
}

func TestDaily_UsesStoredHolidays(t *testing.T) {
	rec := storedRecord("E-1", "2025-05-05", "09:00", "17:30")
	repo := &fakeRecordRepo{records: map[string]record.Record{rec.ID: rec}}
	holidays := &fakeHolidayRepo{holidays: []holiday.Holiday{{ID: "h1", Date: "2025-05-06", Name: "Foundation Day"}}}
	svc := NewAttendanceService(repo, holidays, &fakeAdjustmentRepo{}, timesheet.DefaultPolicy())
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC) }

	days, err := svc.Daily(context.Background(), "E-1", "2025-05")
	require.NoError(t, err)

	for _, d := range days {
		if d.Date == "2025-05-06" {
			assert.Equal(t, timesheet.StatusHoliday, d.Status)
			assert.True(t, d.IsHoliday)
		}
	}
}

func TestDaily_InvalidMonth(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Daily(context.Background(), "E-1", "2025/05")
	assert.Error(t, err)
}
