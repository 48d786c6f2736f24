package http

import (
	"encoding/json"
	"net/http"

	"github.com/shiftpulse/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/timeclock-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	SubmitAction(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	GetTodayLogs(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// SubmitAction implements AttendanceHandler.
func (h *attendanceHandlerImpl) SubmitAction(w http.ResponseWriter, r *http.Request) {
	var req attendance.SubmitActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.SubmitAction(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Action logged", result)
}

// GetStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetTodayLogs implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetTodayLogs(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetTodayLogs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
