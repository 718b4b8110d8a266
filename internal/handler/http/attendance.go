package http

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/paylens/attendance-backend-go/internal/domain/record"
	"github.com/paylens/attendance-backend-go/internal/handler/http/response"
	"github.com/paylens/attendance-backend-go/internal/pkg/spreadsheet"
	"github.com/paylens/attendance-backend-go/internal/pkg/validator"
	"github.com/paylens/attendance-backend-go/internal/service/attendance"
	"github.com/paylens/attendance-backend-go/internal/service/ingest"
)

// uploads larger than this are rejected before parsing
const maxUploadBytes = 16 << 20

type AttendanceHandler interface {
	Import(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Daily(w http.ResponseWriter, r *http.Request)
	MarkLeave(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService *attendance.AttendanceService
	ingestService     *ingest.IngestService
}

func NewAttendanceHandler(
	attendanceService *attendance.AttendanceService,
	ingestService *ingest.IngestService,
) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		ingestService:     ingestService,
	}
}

// ========== IMPORT ==========

func (h *attendanceHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.BadRequest(w, "Invalid multipart upload", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Upload field 'file' is required", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		response.BadRequest(w, "Failed to read upload", nil)
		return
	}

	rows, err := spreadsheet.Read(data, header.Filename)
	if err != nil {
		response.BadRequest(w, "File could not be parsed as xlsx or csv", nil)
		return
	}

	opts := ingest.Options{
		Cleanup: r.URL.Query().Get("cleanup") == "true",
	}

	report, err := h.ingestService.Ingest(r.Context(), rows, opts)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Import completed", report)
}

// ========== RECORDS ==========

func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := record.ListFilter{
		EmployeeID: r.URL.Query().Get("employee_id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}

	result, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	month := r.URL.Query().Get("month")

	if validator.IsEmpty(employeeID) {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}
	if _, ok := validator.IsValidMonth(month); !ok {
		response.BadRequest(w, "month must be YYYY-MM", nil)
		return
	}

	result, err := h.attendanceService.Daily(r.Context(), employeeID, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) MarkLeave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Record ID is required", nil)
		return
	}

	var req record.MarkLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.MarkLeave(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
