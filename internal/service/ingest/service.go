package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/paylens/attendance-backend-go/internal/domain/record"
	"github.com/paylens/attendance-backend-go/internal/pkg/spreadsheet"
	"github.com/paylens/attendance-backend-go/internal/pkg/timesheet"
	"golang.org/x/sync/errgroup"
)

// Header name variants accepted per logical field.
var (
	employeeIDFields = []string{"Employee ID", "Emp ID", "Employee Code", "Emp Code", "Staff ID", "ID"}
	nameFields       = []string{"Employee Name", "Name", "Staff Name", "Full Name"}
	departmentFields = []string{"Department", "Dept", "Team", "Division"}
	dateFields       = []string{"Date", "Attendance Date", "Punch Date", "Work Date"}
	countFields      = []string{"Punch Records", "Punch Count", "No of Punches", "Punches", "Record Count"}
	timeFields       = []string{"Time", "Times", "Punch Times", "Punch Time", "Time Records", "Clock Times", "In Out"}
)

// clockOnlyCell matches cells that contain nothing but clock times and
// delimiters. Used by the all-column scan so date or id cells are not
// mistaken for punch data.
var clockOnlyCell = regexp.MustCompile(`^[0-9:,;\s]+$`)

// RowIssue reports why a single row was skipped or failed. Row is the
// 1-based data row number (header excluded).
type RowIssue struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Report is the outcome of one ingestion batch. Row outcomes are
// independent: skips and per-row write failures never abort the batch.
type Report struct {
	Created int        `json:"created"`
	Updated int        `json:"updated"`
	Deleted int64      `json:"deleted"`
	Skipped []RowIssue `json:"skipped"`
	Failed  []RowIssue `json:"failed"`
}

// Options control the optional passes of a batch.
type Options struct {
	// Cleanup deletes previously stored records inside each employee's
	// uploaded date span that this upload did not rewrite: the file is
	// authoritative for its range.
	Cleanup bool
}

const maxConcurrentWrites = 8

type IngestService struct {
	recordRepo record.Repository
}

func NewIngestService(recordRepo record.Repository) *IngestService {
	return &IngestService{recordRepo: recordRepo}
}

// Ingest maps spreadsheet rows to canonical punch records and upserts them.
// Record ids are deterministic per (employee, date), so re-uploading the same
// file is idempotent. Returns an error only when the persistence boundary is
// wholly unavailable; row-level problems are reported in the Report.
func (s *IngestService) Ingest(ctx context.Context, rows []spreadsheet.Row, opts Options) (Report, error) {
	report := Report{Skipped: []RowIssue{}, Failed: []RowIssue{}}

	type pending struct {
		rowNum int
		rec    record.Record
	}

	// resolve rows first; later duplicates of the same (employee, date)
	// replace earlier ones so each id is written exactly once
	byID := make(map[string]pending)
	order := make([]string, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 1
		rec, err := mapRow(row)
		if err != nil {
			report.Skipped = append(report.Skipped, RowIssue{Row: rowNum, Reason: err.Error()})
			continue
		}
		if _, dup := byID[rec.ID]; !dup {
			order = append(order, rec.ID)
		}
		byID[rec.ID] = pending{rowNum: rowNum, rec: rec}
	}

	var mu sync.Mutex
	writtenByEmployee := make(map[string][]string) // employee -> written dates

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentWrites)
	for _, id := range order {
		p := byID[id]
		g.Go(func() error {
			created, err := s.recordRepo.Upsert(gctx, p.rec)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failed = append(report.Failed, RowIssue{Row: p.rowNum, Reason: err.Error()})
				slog.Error("Failed to upsert punch record", "id", p.rec.ID, "error", err)
				return nil // row outcomes are independent
			}
			if created {
				report.Created++
			} else {
				report.Updated++
			}
			writtenByEmployee[p.rec.EmployeeID] = append(writtenByEmployee[p.rec.EmployeeID], p.rec.Date)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, fmt.Errorf("ingestion batch aborted: %w", err)
	}

	sortIssues(report.Skipped)
	sortIssues(report.Failed)

	// The cleanup pass runs strictly after every upsert in the batch has
	// completed: it diffs stored ids against the just-written set. Ids whose
	// write failed are kept too, so a flaky write never cascades into a delete.
	if opts.Cleanup {
		keepIDs := make([]string, 0, len(byID))
		for id := range byID {
			keepIDs = append(keepIDs, id)
		}
		deleted, err := s.cleanup(ctx, keepIDs, writtenByEmployee)
		if err != nil {
			return report, err
		}
		report.Deleted = deleted
	}

	return report, nil
}

func (s *IngestService) cleanup(ctx context.Context, keepIDs []string, datesByEmployee map[string][]string) (int64, error) {
	employees := make([]string, 0, len(datesByEmployee))
	for emp := range datesByEmployee {
		employees = append(employees, emp)
	}
	sort.Strings(employees)

	var deleted int64
	for _, emp := range employees {
		dates := datesByEmployee[emp]
		minDate, maxDate := dates[0], dates[0]
		for _, d := range dates[1:] {
			if d < minDate {
				minDate = d
			}
			if d > maxDate {
				maxDate = d
			}
		}

		n, err := s.recordRepo.DeleteStaleInRange(ctx, emp, minDate, maxDate, keepIDs)
		if err != nil {
			return deleted, fmt.Errorf("cleanup for %s: %w", emp, err)
		}
		deleted += n
	}

	return deleted, nil
}

// mapRow resolves one spreadsheet row into a canonical record. A non-nil
// error means the row must be skipped.
func mapRow(row spreadsheet.Row) (record.Record, error) {
	employeeID := timesheet.ResolveField(row, employeeIDFields)
	if employeeID == "" {
		return record.Record{}, record.ErrMissingEmployee
	}

	rawDate := timesheet.ResolveField(row, dateFields)
	if rawDate == "" {
		return record.Record{}, record.ErrMissingDate
	}
	date, ok := timesheet.NormalizeDate(rawDate)
	if !ok {
		return record.Record{}, fmt.Errorf("%w: %q", record.ErrInvalidDate, rawDate)
	}

	maxCount := 0
	if rawCount := timesheet.ResolveField(row, countFields); rawCount != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(rawCount, ".0"))); err == nil && n > 0 {
			maxCount = n
		}
	}

	var times []string
	if rawTime := timesheet.ResolveField(row, timeFields); rawTime != "" {
		times = timesheet.ParseTimes(rawTime, maxCount)
	} else {
		times = scanForTimes(row, maxCount)
	}

	return record.Record{
		ID:           record.DocumentID(employeeID, date),
		EmployeeID:   employeeID,
		EmployeeName: timesheet.ResolveField(row, nameFields),
		Department:   timesheet.ResolveField(row, departmentFields),
		Date:         date,
		PunchTimes:   times,
	}, nil
}

// scanForTimes handles sheets without an explicit time column: every cell
// holding only clock-time values is collected, in column-name order, and the
// concatenation is parsed as one punch stream.
func scanForTimes(row spreadsheet.Row, maxCount int) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var cells []string
	for _, k := range keys {
		v := strings.TrimSpace(row[k])
		if v == "" || !clockOnlyCell.MatchString(v) {
			continue
		}
		if len(timesheet.ParseTimes(v, 0)) == 0 {
			continue
		}
		cells = append(cells, v)
	}
	return timesheet.ParseTimesFrom(cells, maxCount)
}

func sortIssues(issues []RowIssue) {
	sort.Slice(issues, func(i, j int) bool { return issues[i].Row < issues[j].Row })
}
