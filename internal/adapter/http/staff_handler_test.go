package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	domain "visitgate/internal/domain/appointment"
	"visitgate/internal/domain/uow"
	"visitgate/internal/testutil/apptmock"
	"visitgate/internal/testutil/auditmock"
	"visitgate/internal/testutil/uowmock"
	apptuc "visitgate/internal/usecase/appointment"

	"github.com/labstack/echo/v4"
)

func newStaffHandler(repo *apptmock.Repo, sink *auditmock.Sink) *StaffHandler {
	if sink == nil {
		sink = &auditmock.Sink{}
	}
	return NewStaffHandler(apptuc.NewUsecase(repo, uowmock.Passthrough(uow.Repos{
		Appointments: repo,
		Companions:   &apptmock.CompanionRepo{},
	}), sink))
}

func staffRequest(t *testing.T, handler echo.HandlerFunc, method, target, code string, body map[string]any, staffID string) *httptest.ResponseRecorder {
	t.Helper()
	e := newEchoWithValidator()
	var req *stdhttp.Request
	if body != nil {
		req = httptest.NewRequest(method, target, mustJSON(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if staffID != "" {
		req.Header.Set(staffIDHeader, staffID)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if code != "" {
		c.SetParamNames("code")
		c.SetParamValues(code)
	}
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestStaffApprove_Success(t *testing.T) {
	stored := storedAppointment(domain.StatusPending)
	repo := &apptmock.Repo{
		UpdateStatusIfFn: func(ctx context.Context, c string, expected domain.Status, patch domain.StatusPatch) (bool, error) {
			if expected != domain.StatusPending {
				t.Fatalf("expected guard = %s, want PENDING", expected)
			}
			stored.Status = patch.Status
			stored.DecidedBy = patch.DecidedBy
			return true, nil
		},
		GetByCodeWithCompanionsFn: func(ctx context.Context, c string) (*domain.Appointment, error) {
			cp := *stored
			return &cp, nil
		},
	}
	sink := &auditmock.Sink{}
	h := newStaffHandler(repo, sink)

	rec := staffRequest(t, h.Approve, stdhttp.MethodPost,
		"/api/v1/staff/appointments/"+testCode+"/approve", testCode,
		map[string]any{"remarks": "checked"}, "staff-9")

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	var view apptuc.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if view.Status != domain.StatusApproved {
		t.Fatalf("status = %s, want APPROVED", view.Status)
	}
	// staff view keeps the raw fields
	if view.RequesterIDNumber != "110101199001011234" {
		t.Fatalf("staff view must not mask: %q", view.RequesterIDNumber)
	}
	if got := sink.Emitted(); len(got) != 1 || got[0].ToStatus != domain.StatusApproved {
		t.Fatalf("audit events = %+v, want one APPROVED event", got)
	}
}

func TestStaffApprove_MissingIdentity(t *testing.T) {
	h := newStaffHandler(&apptmock.Repo{}, nil)
	rec := staffRequest(t, h.Approve, stdhttp.MethodPost,
		"/api/v1/staff/appointments/"+testCode+"/approve", testCode,
		map[string]any{}, "")
	if rec.Code != stdhttp.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestStaffApprove_LostRaceConflicts(t *testing.T) {
	repo := &apptmock.Repo{
		UpdateStatusIfFn: func(ctx context.Context, c string, expected domain.Status, patch domain.StatusPatch) (bool, error) {
			return false, nil
		},
		GetByCodeFn: func(ctx context.Context, c string) (*domain.Appointment, error) {
			return storedAppointment(domain.StatusRejected), nil
		},
	}
	h := newStaffHandler(repo, nil)

	rec := staffRequest(t, h.Approve, stdhttp.MethodPost,
		"/api/v1/staff/appointments/"+testCode+"/approve", testCode,
		map[string]any{}, "staff-9")
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("status = %d, want 409 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestStaffReject_RequiresReason(t *testing.T) {
	h := newStaffHandler(&apptmock.Repo{}, nil)
	rec := staffRequest(t, h.Reject, stdhttp.MethodPost,
		"/api/v1/staff/appointments/"+testCode+"/reject", testCode,
		map[string]any{"reason": "  "}, "staff-9")
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestStaffComplete_UnknownCode(t *testing.T) {
	repo := &apptmock.Repo{
		UpdateStatusIfFn: func(ctx context.Context, c string, expected domain.Status, patch domain.StatusPatch) (bool, error) {
			return false, nil
		},
		GetByCodeFn: func(ctx context.Context, c string) (*domain.Appointment, error) {
			return nil, domain.ErrNotFound
		},
	}
	h := newStaffHandler(repo, nil)

	rec := staffRequest(t, h.Complete, stdhttp.MethodPost,
		"/api/v1/staff/appointments/"+testCode+"/complete", testCode,
		map[string]any{}, "staff-9")
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestStaffList_ParsesFilters(t *testing.T) {
	var seen domain.ListFilter
	repo := &apptmock.Repo{
		ListFn: func(ctx context.Context, f domain.ListFilter) ([]domain.Appointment, int64, error) {
			seen = f
			return []domain.Appointment{*storedAppointment(domain.StatusPending)}, 41, nil
		},
	}
	h := newStaffHandler(repo, nil)

	rec := staffRequest(t, h.List, stdhttp.MethodGet,
		"/api/v1/staff/appointments?status=PENDING&kind=PUBLIC&page=2&page_size=20&visit_from=2026-09-01",
		"", nil, "staff-9")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if seen.Status != domain.StatusPending || seen.Kind != domain.KindPublic {
		t.Fatalf("filter = %+v", seen)
	}
	if seen.Page != 2 || seen.PageSize != 20 {
		t.Fatalf("pagination = %d/%d, want 2/20", seen.Page, seen.PageSize)
	}
	if seen.VisitFrom.IsZero() {
		t.Fatalf("visit_from not parsed")
	}

	var page apptuc.Page
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if page.Total != 41 || page.TotalPages != 3 {
		t.Fatalf("total = %d pages = %d, want 41/3", page.Total, page.TotalPages)
	}
}

func TestStaffStats(t *testing.T) {
	repo := &apptmock.Repo{
		CountByStatusFn: func(ctx context.Context) ([]domain.StatusCount, error) {
			return []domain.StatusCount{{Kind: domain.KindPublic, Status: domain.StatusPending, Count: 3}}, nil
		},
	}
	h := newStaffHandler(repo, nil)

	rec := staffRequest(t, h.Stats, stdhttp.MethodGet, "/api/v1/staff/appointments/stats", "", nil, "staff-9")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		Counts []domain.StatusCount `json:"counts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(resp.Counts) != 1 || resp.Counts[0].Count != 3 {
		t.Fatalf("counts = %+v", resp.Counts)
	}
}
