package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/summary"
	"github.com/shiftpulse/timeclock-backend-go/internal/handler/http/response"
)

type SummaryHandler interface {
	GetMySummary(w http.ResponseWriter, r *http.Request)
	GetMySummaries(w http.ResponseWriter, r *http.Request)
	GetMyMonthlyReport(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type summaryHandlerImpl struct {
	summaryService summary.SummaryService
}

func NewSummaryHandler(summaryService summary.SummaryService) SummaryHandler {
	return &summaryHandlerImpl{
		summaryService: summaryService,
	}
}

// GetMySummary implements SummaryHandler.
func (h *summaryHandlerImpl) GetMySummary(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	result, err := h.summaryService.GetMySummary(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMySummaries implements SummaryHandler.
func (h *summaryHandlerImpl) GetMySummaries(w http.ResponseWriter, r *http.Request) {
	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")

	// Default to the current calendar day.
	if startDate == "" && endDate == "" {
		today := time.Now().UTC().Format("2006-01-02")
		startDate = today
		endDate = today
	}

	result, err := h.summaryService.GetMySummaries(r.Context(), startDate, endDate)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyMonthlyReport implements SummaryHandler.
func (h *summaryHandlerImpl) GetMyMonthlyReport(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()

	year := int(now.Year())
	if y := r.URL.Query().Get("year"); y != "" {
		if yearNum, err := strconv.Atoi(y); err == nil {
			year = yearNum
		}
	}

	month := int(now.Month())
	if m := r.URL.Query().Get("month"); m != "" {
		if monthNum, err := strconv.Atoi(m); err == nil {
			month = monthNum
		}
	}

	result, err := h.summaryService.GetMyMonthlyReport(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements SummaryHandler.
func (h *summaryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := summary.SummaryFilter{}

	if employeeID := r.URL.Query().Get("employee_id"); employeeID != "" {
		filter.EmployeeID = &employeeID
	}

	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}

	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	filter.Page = page

	limit := 20
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}
	filter.Limit = limit

	if sortOrder := r.URL.Query().Get("sort_order"); sortOrder != "" {
		filter.SortOrder = sortOrder
	}

	results, err := h.summaryService.ListSummaries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}
