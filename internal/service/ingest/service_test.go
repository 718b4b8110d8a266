package ingest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/paylens/attendance-backend-go/internal/domain/record"
	"github.com/paylens/attendance-backend-go/internal/pkg/spreadsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecordRepo struct {
	mu      sync.Mutex
	records map[string]record.Record
	failIDs map[string]bool
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: map[string]record.Record{}, failIDs: map[string]bool{}}
}

func (f *fakeRecordRepo) Upsert(_ context.Context, rec record.Record) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[rec.ID] {
		return false, errors.New("write refused")
	}
	_, exists := f.records[rec.ID]
	f.records[rec.ID] = rec
	return !exists, nil
}

func (f *fakeRecordRepo) GetByID(_ context.Context, id string) (record.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return record.Record{}, record.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeRecordRepo) ListByEmployeeAndRange(_ context.Context, employeeID, startDate, endDate string) ([]record.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
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
	f.mu.Lock()
	defer f.mu.Unlock()
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
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return record.Record{}, record.ErrRecordNotFound
	}
	rec.IsLeave = isLeave
	rec.LeaveType = leaveType
	f.records[id] = rec
	return rec, nil
}

func sheetRow(pairs ...string) spreadsheet.Row {
	row := spreadsheet.Row{}
	for i := 0; i+1 < len(pairs); i += 2 {
		row[pairs[i]] = pairs[i+1]
	}
	return row
}

func TestIngest_CreatesRecords(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewIngestService(repo)

	rows := []spreadsheet.Row{
		sheetRow("Employee ID", "E-1", "Name", "Asha", "Department", "Ops", "Date", "2025-05-05", "Time", "09:00 18:00"),
		sheetRow("Employee ID", "E-1", "Name", "Asha", "Department", "Ops", "Date", "2025-05-06", "Time", "09:30,13:00,14:00,18:30"),
	}

	report, err := svc.Ingest(context.Background(), rows, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 0, report.Updated)
	assert.Empty(t, report.Skipped)
	assert.Empty(t, report.Failed)

	rec, err := repo.GetByID(context.Background(), record.DocumentID("E-1", "2025-05-05"))
	require.NoError(t, err)
	assert.Equal(t, "Asha", rec.EmployeeName)
	assert.Equal(t, "Ops", rec.Department)
	assert.Equal(t, []string{"09:00", "18:00"}, rec.PunchTimes)

	rec, err = repo.GetByID(context.Background(), record.DocumentID("E-1", "2025-05-06"))
	require.NoError(t, err)
	assert.Equal(t, []string{"09:30", "13:00", "14:00", "18:30"}, rec.PunchTimes)
}

func TestIngest_Idempotent(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewIngestService(repo)

	rows := []spreadsheet.Row{
		sheetRow("Employee ID", "E-1", "Date", "2025-05-05", "Time", "09:00 18:00"),
	}

	first, err := svc.Ingest(context.Background(), rows, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)

	second, err := svc.Ingest(context.Background(), rows, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Updated)
	require.Len(t, repo.records, 1)
}

func TestIngest_HeaderVariantsAndDateFormats(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewIngestService(repo)

	rows := []spreadsheet.Row{
		sheetRow("emp id", "E-1", "staff name", "Asha", "punch date", "06-05-2025", "punch times", "09:00;18:00"),
	}

	report, err := svc.Ingest(context.Background(), rows, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, report.Created)

	rec, err := repo.GetByID(context.Background(), record.DocumentID("E-1", "2025-05-06"))
	require.NoError(t, err)
	assert.Equal(t, "2025-05-06", rec.Date)
	assert.Equal(t, "Asha", rec.EmployeeName)
}

func TestIngest_SkipsRowsMissingRequiredFields(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewIngestService(repo)

	rows := []spreadsheet.Row{
		sheetRow("Employee ID", "", "Date", "2025-05-05", "Time", "09:00"),
		sheetRow("Employee ID", "E-1", "Date", "", "Time", "09:00"),
		sheetRow("Employee ID", "E-1", "Date", "not a date", "Time", "09:00"),
		sheetRow("Employee ID", "E-1", "Date", "2025-05-05", "Time", "09:00 18:00"),
	}

	report, err := svc.Ingest(context.Background(), rows, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	require.Len(t, report.Skipped, 3)
	assert.Equal(t, 1, report.Skipped[0].Row)
	assert.Equal(t, record.ErrMissingEmployee.Error(), report.Skipped[0].Reason)
	assert.Equal(t, record.ErrMissingDate.Error(), report.Skipped[1].Reason)
	assert.Contains(t, report.Skipped[2].Reason, record.ErrInvalidDate.Error())
}

func TestIngest_RowWithNoTimesIsStoredEmpty(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewIngestService(repo)

	rows := []spreadsheet.Row{
		sheetRow("Employee ID", "E-1", "Date", "2025-05-05", "Time", ""),
	}

	report, err := svc.Ingest(context.Background(), rows, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)

	rec, err := repo.GetByID(context.Background(), record.DocumentID("E-1", "2025-05-05"))
	require.NoError(t, err)
	assert.Empty(t, rec.PunchTimes)
}

func TestIngest_PunchCountCapsTimes(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewIngestService(repo)

	rows := []spreadsheet.Row{
		sheetRow("Employee ID", "E-1", "Date", "2025-05-05",
			"Punch Records", "2", "Time", "09:00 13:00 14:00 18:00"),
	}

	_, err := svc.Ingest(context.Background(), rows, Options{})
	require.NoError(t, err)

	rec, err := repo.GetByID(context.Background(), record.DocumentID("E-1", "2025-05-05"))
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "13:00"}, rec.PunchTimes)
}

func TestIngest_ScansColumnsWhenNoTimeHeader(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewIngestService(repo)

	// no recognizable time column: clock values live in anonymous columns
	rows := []spreadsheet.Row{
		sheetRow("Employee ID", "E-1", "Date", "2025-05-05",
			"Column 4", "09:00", "Column 5", "18:00"),
	}

	_, err := svc.Ingest(context.Background(), rows, Options{})
	require.NoError(t, err)

	rec, err := repo.GetByID(context.Background(), record.DocumentID("E-1", "2025-05-05"))
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "18:00"}, rec.PunchTimes)
}

func TestIngest_DuplicateRowsLastWins(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewIngestService(repo)

	rows := []spreadsheet.Row{
		sheetRow("Employee ID", "E-1", "Date", "2025-05-05", "Time", "08:00 12:00"),
		sheetRow("Employee ID", "E-1", "Date", "2025-05-05", "Time", "09:00 18:00"),
	}

	report, err := svc.Ingest(context.Background(), rows, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created+report.Updated)

	rec, err := repo.GetByID(context.Background(), record.DocumentID("E-1", "2025-05-05"))
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "18:00"}, rec.PunchTimes)
}

func TestIngest_WriteFailureDoesNotAbortBatch(t *testing.T) {
	repo := newFakeRecordRepo()
	repo.failIDs[record.DocumentID("E-1", "2025-05-05")] = true
	svc := NewIngestService(repo)

	rows := []spreadsheet.Row{
		sheetRow("Employee ID", "E-1", "Date", "2025-05-05", "Time", "09:00 18:00"),
		sheetRow("Employee ID", "E-1", "Date", "2025-05-06", "Time", "09:00 18:00"),
	}

	report, err := svc.Ingest(context.Background(), rows, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, 1, report.Failed[0].Row)
}

func TestIngest_CleanupRemovesStaleRecordsInRange(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewIngestService(repo)

	// a record from a previous upload sits inside the new upload's span
	stale := record.Record{
		ID:         record.DocumentID("E-1", "2025-05-06"),
		EmployeeID: "E-1",
		Date:       "2025-05-06",
		PunchTimes: []string{"09:00", "18:00"},
	}
	_, err := repo.Upsert(context.Background(), stale)
	require.NoError(t, err)

	// another employee's record in the same span must survive
	other := record.Record{
		ID:         record.DocumentID("E-2", "2025-05-06"),
		EmployeeID: "E-2",
		Date:       "2025-05-06",
	}
	_, err = repo.Upsert(context.Background(), other)
	require.NoError(t, err)

	rows := []spreadsheet.Row{
		sheetRow("Employee ID", "E-1", "Date", "2025-05-05", "Time", "09:00 18:00"),
		sheetRow("Employee ID", "E-1", "Date", "2025-05-07", "Time", "09:00 18:00"),
	}

	report, err := svc.Ingest(context.Background(), rows, Options{Cleanup: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.Deleted)

	_, err = repo.GetByID(context.Background(), stale.ID)
	assert.ErrorIs(t, err, record.ErrRecordNotFound)

	_, err = repo.GetByID(context.Background(), other.ID)
	assert.NoError(t, err, "other employees' records are outside cleanup scope")
}

func TestIngest_CleanupSkippedWhenDisabled(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewIngestService(repo)

	stale := record.Record{
		ID:         record.DocumentID("E-1", "2025-05-06"),
		EmployeeID: "E-1",
		Date:       "2025-05-06",
	}
	_, err := repo.Upsert(context.Background(), stale)
	require.NoError(t, err)

	rows := []spreadsheet.Row{
		sheetRow("Employee ID", "E-1", "Date", "2025-05-05", "Time", "09:00"),
		sheetRow("Employee ID", "E-1", "Date", "2025-05-07", "Time", "09:00"),
	}

	report, err := svc.Ingest(context.Background(), rows, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), report.Deleted)

	_, err = repo.GetByID(context.Background(), stale.ID)
	assert.NoError(t, err)
}
