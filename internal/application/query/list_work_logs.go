package query

import (
	"context"
	"time"

	"github.com/estagio-hub/estagio-hours-hub/internal/domain/shared"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/worklog"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST WORK LOGS QUERY
// Paginated listing of work log entries, newest first, with an
// optional date range filter.
// ══════════════════════════════════════════════════════════════════════════════

// ListWorkLogsQuery contains listing parameters.
type ListWorkLogsQuery struct {
	// From and To bound the date range. Zero values leave the bound open.
	From time.Time
	To   time.Time

	// Page is 1-based. Limit caps the page size.
	Page  int
	Limit int
}

// Validate normalizes the query parameters.
func (q *ListWorkLogsQuery) Validate() error {
	if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From) {
		return shared.NewDomainError("query", "ListWorkLogs",
			shared.ErrInvalidInput, "range end precedes range start")
	}
	return nil
}

// WorkLogPageDTO is one page of work log entries.
type WorkLogPageDTO struct {
	Entries []*worklog.Entry `json:"entries"`
	Total   int              `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}

// ListWorkLogsHandler handles listing requests.
type ListWorkLogsHandler struct {
	workLogRepo worklog.Repository
}

// NewListWorkLogsHandler creates a new handler.
func NewListWorkLogsHandler(workLogRepo worklog.Repository) *ListWorkLogsHandler {
	return &ListWorkLogsHandler{workLogRepo: workLogRepo}
}

// Handle executes the query.
func (h *ListWorkLogsHandler) Handle(ctx context.Context, query ListWorkLogsQuery) (*WorkLogPageDTO, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := worklog.ListFilter{
		From:  query.From,
		To:    query.To,
		Page:  query.Page,
		Limit: query.Limit,
	}
	filter.Normalize()

	entries, total, err := h.workLogRepo.List(ctx, filter)
	if err != nil {
		return nil, shared.WrapError("query", "ListWorkLogs", shared.ErrStoreUnavailable, "list entries", err)
	}

	return &WorkLogPageDTO{
		Entries: entries,
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// GET WORK LOG QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetWorkLogQuery fetches a single entry by ID.
type GetWorkLogQuery struct {
	ID string
}

// GetWorkLogHandler handles single-entry lookups.
type GetWorkLogHandler struct {
	workLogRepo worklog.Repository
}

// NewGetWorkLogHandler creates a new handler.
func NewGetWorkLogHandler(workLogRepo worklog.Repository) *GetWorkLogHandler {
	return &GetWorkLogHandler{workLogRepo: workLogRepo}
}

// Handle executes the query.
func (h *GetWorkLogHandler) Handle(ctx context.Context, query GetWorkLogQuery) (*worklog.Entry, error) {
	if query.ID == "" {
		return nil, shared.NewDomainError("query", "GetWorkLog", shared.ErrInvalidID, "empty entry id")
	}

	entry, err := h.workLogRepo.GetByID(ctx, query.ID)
	if err != nil {
		return nil, shared.WrapError("query", "GetWorkLog", shared.ErrWorkLogNotFound, "entry not found", err)
	}
	return entry, nil
}
