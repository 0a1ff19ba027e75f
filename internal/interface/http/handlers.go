package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/estagio-hub/estagio-hours-hub/internal/application/command"
	"github.com/estagio-hub/estagio-hours-hub/internal/application/query"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/settings"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/worklog"
	"github.com/estagio-hub/estagio-hours-hub/pkg/calendar"
	"github.com/estagio-hub/estagio-hours-hub/pkg/logger"
)

// SettingsReader serves settings reads. The concrete implementation is
// the settings repository; reads need no command.
type SettingsReader interface {
	Get(ctx context.Context) (*settings.Settings, error)
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// respondError translates a domain error into an HTTP status and the
// JSON error envelope.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	switch {
	case shared.IsNotFound(err):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())
	case shared.IsAlreadyExists(err),
		errors.Is(err, shared.ErrDuplicateDate),
		errors.Is(err, shared.ErrConflict):
		writeJSONError(w, http.StatusConflict, "conflict", err.Error())
	case shared.IsValidation(err):
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case shared.IsDegenerate(err):
		writeJSONError(w, http.StatusUnprocessableEntity, "degenerate_input", err.Error())
	default:
		s.logger.Error("request failed", logger.Err(err))
		writeJSONError(w, http.StatusInternalServerError, "internal_error",
			"an internal error occurred")
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	}
	if s.deps.Database != nil {
		if err := s.deps.Database.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "ok"
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.Database != nil {
		if err := s.deps.Database.Ping(r.Context()); err != nil {
			writeJSONError(w, http.StatusServiceUnavailable, "not_ready", err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// ══════════════════════════════════════════════════════════════════════════════
// DASHBOARD AND SUMMARY HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dto, err := s.deps.DashboardStats.Handle(r.Context(), query.GetDashboardStatsQuery{})
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleWeeklySummary(w http.ResponseWriter, r *http.Request) {
	q := query.GetWeeklySummaryQuery{}
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := calendar.ParseISO(raw)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "validation_error",
				"date must be YYYY-MM-DD")
			return
		}
		q.Date = date
	}

	dto, err := s.deps.WeeklySummary.Handle(r.Context(), q)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	q := query.GetMonthlySummaryQuery{}
	if raw := r.URL.Query().Get("month"); raw != "" {
		var year, month int
		if _, err := fmt.Sscanf(raw, "%d-%d", &year, &month); err != nil {
			writeJSONError(w, http.StatusBadRequest, "validation_error",
				"month must be YYYY-MM")
			return
		}
		q.Year = year
		q.Month = time.Month(month)
	}

	dto, err := s.deps.MonthlySummary.Handle(r.Context(), q)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (s *Server) handleMidtermPDF(w http.ResponseWriter, r *http.Request) {
	pdf, err := s.deps.Midterm.Generate(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="midterm-report.pdf"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// ══════════════════════════════════════════════════════════════════════════════
// WORK LOG HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// workLogRequest is the JSON body of create and update calls. Clock
// times use "HH:MM"; absent fields stay null.
type workLogRequest struct {
	Date            string  `json:"date"`
	Type            string  `json:"type"`
	StartTime       *string `json:"startTime"`
	EndTime         *string `json:"endTime"`
	LunchStart      *string `json:"lunchStart"`
	LunchEnd        *string `json:"lunchEnd"`
	Company         string  `json:"company"`
	TaskDescription string  `json:"taskDescription"`
	Justification   string  `json:"justification"`
}

// toInput parses the request into a command input.
func (req workLogRequest) toInput() (command.WorkLogInput, error) {
	var in command.WorkLogInput

	date, err := calendar.ParseISO(req.Date)
	if err != nil {
		return in, fmt.Errorf("date must be YYYY-MM-DD")
	}
	in.Date = date
	in.Type = worklog.EntryType(req.Type)
	in.Organization = req.Company
	in.TaskDescription = req.TaskDescription
	in.Justification = req.Justification

	parse := func(field string, raw *string) (*worklog.ClockTime, error) {
		if raw == nil || *raw == "" {
			return nil, nil
		}
		ct, err := worklog.ParseClockTime(*raw)
		if err != nil {
			return nil, fmt.Errorf("%s must be HH:MM", field)
		}
		return &ct, nil
	}

	if in.StartTime, err = parse("startTime", req.StartTime); err != nil {
		return in, err
	}
	if in.EndTime, err = parse("endTime", req.EndTime); err != nil {
		return in, err
	}
	if in.LunchStart, err = parse("lunchStart", req.LunchStart); err != nil {
		return in, err
	}
	if in.LunchEnd, err = parse("lunchEnd", req.LunchEnd); err != nil {
		return in, err
	}
	return in, nil
}

func (s *Server) handleListWorkLogs(w http.ResponseWriter, r *http.Request) {
	q := query.ListWorkLogsQuery{
		Page:  queryInt(r, "page", 0),
		Limit: queryInt(r, "limit", 0),
	}

	var err error
	if raw := r.URL.Query().Get("from"); raw != "" {
		if q.From, err = calendar.ParseISO(raw); err != nil {
			writeJSONError(w, http.StatusBadRequest, "validation_error", "from must be YYYY-MM-DD")
			return
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if q.To, err = calendar.ParseISO(raw); err != nil {
			writeJSONError(w, http.StatusBadRequest, "validation_error", "to must be YYYY-MM-DD")
			return
		}
	}

	page, err := s.deps.ListWorkLogs.Handle(r.Context(), q)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleCreateWorkLog(w http.ResponseWriter, r *http.Request) {
	var req workLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	input, err := req.toInput()
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	entry, err := s.deps.CreateWorkLog.Handle(r.Context(), command.CreateWorkLogCommand{Input: input})
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleGetWorkLog(w http.ResponseWriter, r *http.Request) {
	entry, err := s.deps.GetWorkLog.Handle(r.Context(), query.GetWorkLogQuery{ID: r.PathValue("id")})
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleUpdateWorkLog(w http.ResponseWriter, r *http.Request) {
	var req workLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	input, err := req.toInput()
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	entry, err := s.deps.UpdateWorkLog.Handle(r.Context(), command.UpdateWorkLogCommand{
		ID:    r.PathValue("id"),
		Input: input,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDeleteWorkLog(w http.ResponseWriter, r *http.Request) {
	err := s.deps.DeleteWorkLog.Handle(r.Context(), command.DeleteWorkLogCommand{ID: r.PathValue("id")})
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.deps.CSV.Export(r.Context(), &buf); err != nil {
		s.respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="worklogs.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	summary, err := s.deps.CSV.Import(r.Context(), r.Body)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ══════════════════════════════════════════════════════════════════════════════
// HOLIDAY HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleListHolidays(w http.ResponseWriter, r *http.Request) {
	list, err := s.deps.ListHolidays.Handle(r.Context(),
		query.ListHolidaysQuery{Year: queryInt(r, "year", 0)})
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleAddHoliday(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	date, err := calendar.ParseISO(req.Date)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD")
		return
	}

	hol, err := s.deps.AddCustomHoliday.Handle(r.Context(), command.AddCustomHolidayCommand{
		Date: date,
		Name: req.Name,
	})
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, hol)
}

func (s *Server) handleDeleteHoliday(w http.ResponseWriter, r *http.Request) {
	err := s.deps.DeleteHoliday.Handle(r.Context(), command.DeleteHolidayCommand{ID: r.PathValue("id")})
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleGenerateHolidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "year must be an integer")
		return
	}

	list, err := s.deps.GenerateHolidays.Handle(r.Context(), command.GenerateHolidaysCommand{Year: year})
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

// ══════════════════════════════════════════════════════════════════════════════
// SETTINGS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.deps.SettingsReader.Get(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// settingsRequest is the JSON body of a settings update; absent fields
// are left unchanged.
type settingsRequest struct {
	TotalRequiredHours *float64 `json:"totalRequiredHours"`
	DailyWorkHours     *float64 `json:"dailyWorkHours"`
	WorkingDays        []int    `json:"workingDays"`
	StartDate          *string  `json:"startDate"`
	InternshipTitle    *string  `json:"internshipTitle"`
	OrganizationName   *string  `json:"organizationName"`
	SupervisorName     *string  `json:"supervisorName"`
	StudentName        *string  `json:"studentName"`
	StudentNumber      *string  `json:"studentNumber"`
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	patch := settings.Patch{
		TotalRequiredHours: req.TotalRequiredHours,
		DailyWorkHours:     req.DailyWorkHours,
		WorkingDays:        req.WorkingDays,
		InternshipTitle:    req.InternshipTitle,
		OrganizationName:   req.OrganizationName,
		SupervisorName:     req.SupervisorName,
		StudentName:        req.StudentName,
		StudentNumber:      req.StudentNumber,
	}
	if req.StartDate != nil {
		date, err := calendar.ParseISO(*req.StartDate)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "validation_error", "startDate must be YYYY-MM-DD")
			return
		}
		patch.StartDate = &date
	}

	cfg, err := s.deps.UpdateSettings.Handle(r.Context(), command.UpdateSettingsCommand{Patch: patch})
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// queryInt reads an integer query parameter with a default.
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
