package summary

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/attendance"
	"github.com/shiftpulse/timeclock-backend-go/internal/domain/summary"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughTx satisfies database.TxManager without a real database.
type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fakeActionLog struct {
	records  []attendance.ActionRecord
	queryErr error
}

func (f *fakeActionLog) Append(ctx context.Context, rec attendance.ActionRecord) (attendance.ActionRecord, error) {
	rec.ID = uuid.NewString()
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeActionLog) MostRecent(ctx context.Context, employeeID string) (*attendance.ActionRecord, error) {
	var last *attendance.ActionRecord
	for i := range f.records {
		rec := f.records[i]
		if rec.EmployeeID != employeeID {
			continue
		}
		if last == nil || rec.Timestamp.After(last.Timestamp) {
			last = &rec
		}
	}
	return last, nil
}

func (f *fakeActionLog) QueryRange(ctx context.Context, employeeID string, filter attendance.RangeFilter) ([]attendance.ActionRecord, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []attendance.ActionRecord
	for _, rec := range f.records {
		if rec.EmployeeID != employeeID {
			continue
		}
		if filter.From != nil && rec.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && rec.Timestamp.After(*filter.To) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.Order == attendance.SortDesc {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

type fakeSummaryRepo struct {
	stored    map[string]summary.DailySummary
	upsertErr error
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{stored: map[string]summary.DailySummary{}}
}

func summaryKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeSummaryRepo) Upsert(ctx context.Context, s summary.DailySummary) (summary.DailySummary, error) {
	if f.upsertErr != nil {
		return summary.DailySummary{}, f.upsertErr
	}
	key := summaryKey(s.EmployeeID, s.Date)
	if existing, ok := f.stored[key]; ok {
		s.ID = existing.ID
	} else {
		s.ID = uuid.NewString()
	}
	f.stored[key] = s
	return s, nil
}

func (f *fakeSummaryRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*summary.DailySummary, error) {
	if s, ok := f.stored[summaryKey(employeeID, date)]; ok {
		return &s, nil
	}
	return nil, nil
}

func (f *fakeSummaryRepo) List(ctx context.Context, filter summary.SummaryFilter) ([]summary.DailySummary, int64, error) {
	var out []summary.DailySummary
	for _, s := range f.stored {
		if filter.EmployeeID != nil && *filter.EmployeeID != "" && s.EmployeeID != *filter.EmployeeID {
			continue
		}
		date := s.Date.Format("2006-01-02")
		if filter.StartDate != nil && *filter.StartDate != "" && date < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && *filter.EndDate != "" && date > *filter.EndDate {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if filter.SortOrder == "desc" {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Date.Before(out[j].Date)
	})
	total := int64(len(out))
	if filter.Limit > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.Limit
		}
		if offset > len(out) {
			offset = len(out)
		}
		end := offset + filter.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[offset:end]
	}
	return out, total, nil
}

func authedContext(t *testing.T, employeeID string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{"employee_id": employeeID})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func seedShift(log *fakeActionLog, employeeID string, steps []attendance.ActionType, times []time.Time) attendance.ActionRecord {
	var last attendance.ActionRecord
	for i, actionType := range steps {
		last = attendance.ActionRecord{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			ActionType: actionType,
			Timestamp:  times[i],
		}
		log.records = append(log.records, last)
	}
	return last
}

func TestSummarizeShift_SimpleShift(t *testing.T) {
	log := &fakeActionLog{}
	repo := newFakeSummaryRepo()
	svc := NewSummaryService(passthroughTx{}, log, repo, attendance.DefaultPolicy())

	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	endWork := seedShift(log, "emp-1",
		[]attendance.ActionType{attendance.ActionStartWork, attendance.ActionEndWork},
		[]time.Time{start, start.Add(8 * time.Hour)},
	)

	result, err := svc.SummarizeShift(context.Background(), "emp-1", endWork)
	require.NoError(t, err)

	assert.Equal(t, "emp-1", result.EmployeeID)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), result.Date)
	assert.Equal(t, 480, result.TotalWorkMinutes)
	assert.Equal(t, 0, result.TotalBreakMinutes)
	assert.False(t, result.UnderHours, "exactly the standard shift is not under hours")
	assert.False(t, result.IsLate)
	assert.Equal(t, summary.ColorGreen, result.StatusColor)
}

func TestSummarizeShift_BreaksSubtracted(t *testing.T) {
	log := &fakeActionLog{}
	repo := newFakeSummaryRepo()
	svc := NewSummaryService(passthroughTx{}, log, repo, attendance.DefaultPolicy())

	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	endWork := seedShift(log, "emp-1",
		[]attendance.ActionType{
			attendance.ActionStartWork,
			attendance.ActionStartBreak,
			attendance.ActionEndBreak,
			attendance.ActionEndWork,
		},
		[]time.Time{
			start,
			start.Add(4 * time.Hour),
			start.Add(4*time.Hour + 30*time.Minute),
			start.Add(8 * time.Hour),
		},
	)

	result, err := svc.SummarizeShift(context.Background(), "emp-1", endWork)
	require.NoError(t, err)

	assert.Equal(t, 450, result.TotalWorkMinutes)
	assert.Equal(t, 30, result.TotalBreakMinutes)
	assert.True(t, result.UnderHours)
	assert.Equal(t, summary.ColorRed, result.StatusColor)
}

// A shift that crosses midnight is keyed to the day it began.
func TestSummarizeShift_OvernightShift(t *testing.T) {
	log := &fakeActionLog{}
	repo := newFakeSummaryRepo()
	svc := NewSummaryService(passthroughTx{}, log, repo, attendance.DefaultPolicy())

	start := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)
	endWork := seedShift(log, "emp-1",
		[]attendance.ActionType{attendance.ActionStartWork, attendance.ActionEndWork},
		[]time.Time{start, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	)

	result, err := svc.SummarizeShift(context.Background(), "emp-1", endWork)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), result.Date)
	assert.Equal(t, 120, result.TotalWorkMinutes)
	assert.True(t, result.UnderHours)
	assert.Equal(t, summary.ColorRed, result.StatusColor)
}

// An unpaired trailing start_break contributes nothing to break time.
func TestSummarizeShift_UnpairedBreakIgnored(t *testing.T) {
	log := &fakeActionLog{}
	repo := newFakeSummaryRepo()
	svc := NewSummaryService(passthroughTx{}, log, repo, attendance.DefaultPolicy())

	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	endWork := seedShift(log, "emp-1",
		[]attendance.ActionType{
			attendance.ActionStartWork,
			attendance.ActionStartBreak,
			attendance.ActionEndWork,
		},
		[]time.Time{start, start.Add(4 * time.Hour), start.Add(8 * time.Hour)},
	)

	result, err := svc.SummarizeShift(context.Background(), "emp-1", endWork)
	require.NoError(t, err)

	assert.Equal(t, 480, result.TotalWorkMinutes)
	assert.Equal(t, 0, result.TotalBreakMinutes)
}

func TestSummarizeShift_LatePredicate(t *testing.T) {
	policy := attendance.DefaultPolicy()
	policy.IsLate = func(startWork time.Time) bool {
		return startWork.In(policy.Location).Hour() >= 9
	}

	log := &fakeActionLog{}
	repo := newFakeSummaryRepo()
	svc := NewSummaryService(passthroughTx{}, log, repo, policy)

	start := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	endWork := seedShift(log, "emp-1",
		[]attendance.ActionType{attendance.ActionStartWork, attendance.ActionEndWork},
		[]time.Time{start, start.Add(8 * time.Hour)},
	)

	result, err := svc.SummarizeShift(context.Background(), "emp-1", endWork)
	require.NoError(t, err)

	assert.True(t, result.IsLate)
	assert.False(t, result.UnderHours)
	assert.Equal(t, summary.ColorYellow, result.StatusColor)
}

func TestSummarizeShift_UnderHoursOutranksLate(t *testing.T) {
	policy := attendance.DefaultPolicy()
	policy.IsLate = func(time.Time) bool { return true }

	log := &fakeActionLog{}
	repo := newFakeSummaryRepo()
	svc := NewSummaryService(passthroughTx{}, log, repo, policy)

	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	endWork := seedShift(log, "emp-1",
		[]attendance.ActionType{attendance.ActionStartWork, attendance.ActionEndWork},
		[]time.Time{start, start.Add(4 * time.Hour)},
	)

	result, err := svc.SummarizeShift(context.Background(), "emp-1", endWork)
	require.NoError(t, err)

	assert.True(t, result.IsLate)
	assert.True(t, result.UnderHours)
	assert.Equal(t, summary.ColorRed, result.StatusColor)
}

func TestSummarizeShift_ForeignEndWork(t *testing.T) {
	log := &fakeActionLog{}
	repo := newFakeSummaryRepo()
	svc := NewSummaryService(passthroughTx{}, log, repo, attendance.DefaultPolicy())

	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	// Previous shift ended, but its start_work is missing from the window.
	seedShift(log, "emp-1",
		[]attendance.ActionType{attendance.ActionEndWork},
		[]time.Time{base},
	)
	endWork := seedShift(log, "emp-1",
		[]attendance.ActionType{attendance.ActionEndWork},
		[]time.Time{base.Add(2 * time.Hour)},
	)

	_, err := svc.SummarizeShift(context.Background(), "emp-1", endWork)
	assert.ErrorIs(t, err, summary.ErrShiftNotReconstructed)
	assert.Empty(t, repo.stored, "a failed reconstruction must not write a summary")
}

func TestSummarizeShift_ScanLimitExhausted(t *testing.T) {
	policy := attendance.DefaultPolicy()
	policy.ShiftScanLimit = 3

	log := &fakeActionLog{}
	repo := newFakeSummaryRepo()
	svc := NewSummaryService(passthroughTx{}, log, repo, policy)

	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	endWork := seedShift(log, "emp-1",
		[]attendance.ActionType{
			attendance.ActionStartWork,
			attendance.ActionStartBreak,
			attendance.ActionEndBreak,
			attendance.ActionStartBreak,
			attendance.ActionEndBreak,
			attendance.ActionEndWork,
		},
		[]time.Time{
			start,
			start.Add(1 * time.Hour),
			start.Add(2 * time.Hour),
			start.Add(3 * time.Hour),
			start.Add(4 * time.Hour),
			start.Add(8 * time.Hour),
		},
	)

	_, err := svc.SummarizeShift(context.Background(), "emp-1", endWork)
	assert.ErrorIs(t, err, summary.ErrShiftNotReconstructed)
}

// Re-summarizing the same shift overwrites the existing row instead of
// creating a second one.
func TestSummarizeShift_UpsertIdempotent(t *testing.T) {
	log := &fakeActionLog{}
	repo := newFakeSummaryRepo()
	svc := NewSummaryService(passthroughTx{}, log, repo, attendance.DefaultPolicy())

	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	endWork := seedShift(log, "emp-1",
		[]attendance.ActionType{attendance.ActionStartWork, attendance.ActionEndWork},
		[]time.Time{start, start.Add(8 * time.Hour)},
	)

	first, err := svc.SummarizeShift(context.Background(), "emp-1", endWork)
	require.NoError(t, err)

	second, err := svc.SummarizeShift(context.Background(), "emp-1", endWork)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.TotalWorkMinutes, second.TotalWorkMinutes)
	assert.Len(t, repo.stored, 1)
}

func TestSummarizeShift_StoreFailure(t *testing.T) {
	log := &fakeActionLog{queryErr: errors.New("connection refused")}
	svc := NewSummaryService(passthroughTx{}, log, newFakeSummaryRepo(), attendance.DefaultPolicy())

	_, err := svc.SummarizeShift(context.Background(), "emp-1", attendance.ActionRecord{
		ID:         uuid.NewString(),
		EmployeeID: "emp-1",
		ActionType: attendance.ActionEndWork,
		Timestamp:  time.Now().UTC(),
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, summary.ErrShiftNotReconstructed)
}

func TestGetMySummary(t *testing.T) {
	repo := newFakeSummaryRepo()
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.stored[summaryKey("emp-1", date)] = summary.DailySummary{
		ID:               uuid.NewString(),
		EmployeeID:       "emp-1",
		Date:             date,
		TotalWorkMinutes: 480,
		StatusColor:      summary.ColorGreen,
	}

	svc := NewSummaryService(passthroughTx{}, &fakeActionLog{}, repo, attendance.DefaultPolicy())
	ctx := authedContext(t, "emp-1")

	t.Run("found", func(t *testing.T) {
		resp, err := svc.GetMySummary(ctx, "2024-01-01")
		require.NoError(t, err)
		assert.Equal(t, "2024-01-01", resp.Date)
		assert.Equal(t, 480, resp.TotalWorkMinutes)
		assert.Equal(t, "green", resp.StatusColor)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetMySummary(ctx, "2024-01-02")
		assert.ErrorIs(t, err, summary.ErrSummaryNotFound)
	})

	t.Run("invalid date", func(t *testing.T) {
		_, err := svc.GetMySummary(ctx, "01-01-2024")
		var errs validator.ValidationErrors
		assert.ErrorAs(t, err, &errs)
	})
}

func TestGetMyMonthlyReport(t *testing.T) {
	repo := newFakeSummaryRepo()
	days := []struct {
		day   int
		work  int
		late  bool
		under bool
	}{
		{day: 1, work: 480, late: false, under: false},
		{day: 2, work: 450, late: true, under: true},
		{day: 3, work: 500, late: true, under: false},
	}
	for _, d := range days {
		date := time.Date(2024, 1, d.day, 0, 0, 0, 0, time.UTC)
		repo.stored[summaryKey("emp-1", date)] = summary.DailySummary{
			ID:               uuid.NewString(),
			EmployeeID:       "emp-1",
			Date:             date,
			TotalWorkMinutes: d.work,
			IsLate:           d.late,
			UnderHours:       d.under,
		}
	}
	// Another month, must not be counted.
	feb := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	repo.stored[summaryKey("emp-1", feb)] = summary.DailySummary{
		ID: uuid.NewString(), EmployeeID: "emp-1", Date: feb, TotalWorkMinutes: 480,
	}

	svc := NewSummaryService(passthroughTx{}, &fakeActionLog{}, repo, attendance.DefaultPolicy())
	ctx := authedContext(t, "emp-1")

	report, err := svc.GetMyMonthlyReport(ctx, 2024, 1)
	require.NoError(t, err)

	assert.Equal(t, 2024, report.Year)
	assert.Equal(t, 1, report.Month)
	assert.Equal(t, 1430, report.TotalWorkMinutes)
	assert.Equal(t, 3, report.DaysWorked)
	assert.Equal(t, 1, report.DaysUnderHours)
	assert.Equal(t, 2, report.DaysLate)
	assert.Len(t, report.Summaries, 3)

	t.Run("invalid month", func(t *testing.T) {
		_, err := svc.GetMyMonthlyReport(ctx, 2024, 13)
		var errs validator.ValidationErrors
		assert.ErrorAs(t, err, &errs)
	})
}

func TestListSummaries(t *testing.T) {
	repo := newFakeSummaryRepo()
	for day := 1; day <= 5; day++ {
		date := time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
		repo.stored[summaryKey("emp-1", date)] = summary.DailySummary{
			ID:         uuid.NewString(),
			EmployeeID: "emp-1",
			Date:       date,
		}
	}

	svc := NewSummaryService(passthroughTx{}, &fakeActionLog{}, repo, attendance.DefaultPolicy())

	resp, err := svc.ListSummaries(context.Background(), summary.SummaryFilter{
		Page:      2,
		Limit:     2,
		SortOrder: "asc",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.TotalCount)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, "3-4 of 5", resp.Showing)
	require.Len(t, resp.Summaries, 2)
	assert.Equal(t, "2024-01-03", resp.Summaries[0].Date)

	t.Run("invalid sort order", func(t *testing.T) {
		_, err := svc.ListSummaries(context.Background(), summary.SummaryFilter{SortOrder: "upward"})
		var errs validator.ValidationErrors
		assert.ErrorAs(t, err, &errs)
	})
}
