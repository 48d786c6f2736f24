package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shiftpulse/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/timeclock-backend-go/internal/handler/http/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceService struct {
	submitResp attendance.ActionRecordResponse
	submitErr  error
	statusResp attendance.StatusResponse
	logsResp   []attendance.ActionRecordResponse
}

func (f *fakeAttendanceService) SubmitAction(ctx context.Context, req attendance.SubmitActionRequest) (attendance.ActionRecordResponse, error) {
	if f.submitErr != nil {
		return attendance.ActionRecordResponse{}, f.submitErr
	}
	return f.submitResp, nil
}

func (f *fakeAttendanceService) GetStatus(ctx context.Context) (attendance.StatusResponse, error) {
	return f.statusResp, nil
}

func (f *fakeAttendanceService) GetTodayLogs(ctx context.Context) ([]attendance.ActionRecordResponse, error) {
	return f.logsResp, nil
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestAttendanceHandler_SubmitAction_Success(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{
		submitResp: attendance.ActionRecordResponse{
			ID:         "rec-1",
			EmployeeID: "emp-1",
			ActionType: "start_work",
			Timestamp:  "2024-01-01T16:00:00Z",
		},
	})

	body, _ := json.Marshal(attendance.SubmitActionRequest{ActionType: "start_work"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/actions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.SubmitAction(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Action logged", resp.Message)
}

func TestAttendanceHandler_SubmitAction_InvalidBody(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/actions", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	handler.SubmitAction(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
}

func TestAttendanceHandler_SubmitAction_GuardViolation(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{
		submitErr: attendance.ErrWorkAlreadyStarted,
	})

	body, _ := json.Marshal(attendance.SubmitActionRequest{ActionType: "start_work"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/actions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.SubmitAction(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_ACTION", resp.Error.Code)
	assert.Equal(t, "work already started", resp.Error.Message)
}

func TestAttendanceHandler_SubmitAction_Conflict(t *testing.T) {
	handler := NewAttendanceHandler(&fakeAttendanceService{
		submitErr: attendance.ErrConflict,
	})

	body, _ := json.Marshal(attendance.SubmitActionRequest{ActionType: "start_work"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance/actions", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.SubmitAction(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "CONFLICT", resp.Error.Code)
}

func TestAttendanceHandler_GetStatus(t *testing.T) {
	lastAction := "start_work"
	handler := NewAttendanceHandler(&fakeAttendanceService{
		statusResp: attendance.StatusResponse{
			IsWorking:  true,
			LastAction: &lastAction,
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/status", nil)
	rec := httptest.NewRecorder()

	handler.GetStatus(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["is_working"])
	assert.Equal(t, "start_work", data["last_action"])
}
