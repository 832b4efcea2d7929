package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"visitgate/internal/domain/appointment"
	apptuc "visitgate/internal/usecase/appointment"
)

// staffIDHeader carries the verified staff identity. Authentication happens
// upstream (external authorization collaborator); this service trusts the
// header as given.
const staffIDHeader = "X-Staff-Id"

type StaffHandler struct{ uc *apptuc.Usecase }

func NewStaffHandler(uc *apptuc.Usecase) *StaffHandler { return &StaffHandler{uc: uc} }

func staffID(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Request().Header.Get(staffIDHeader))
	return id, id != ""
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "staff identity required"})
}

type decisionReq struct {
	Reason  string `json:"reason"`
	Remarks string `json:"remarks"`
}

func bindDecision(c echo.Context) (code string, req decisionReq, err error) {
	code = c.Param("code")
	err = c.Bind(&req)
	return
}

func (h *StaffHandler) Approve(c echo.Context) error {
	sid, ok := staffID(c)
	if !ok {
		return unauthorized(c)
	}
	code, req, err := bindDecision(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	view, err := h.uc.Approve(c.Request().Context(), code, apptuc.StaffActor(sid), req.Remarks)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *StaffHandler) Reject(c echo.Context) error {
	sid, ok := staffID(c)
	if !ok {
		return unauthorized(c)
	}
	code, req, err := bindDecision(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	view, err := h.uc.Reject(c.Request().Context(), code, apptuc.StaffActor(sid), req.Reason)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *StaffHandler) Cancel(c echo.Context) error {
	sid, ok := staffID(c)
	if !ok {
		return unauthorized(c)
	}
	code, req, err := bindDecision(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	view, err := h.uc.Cancel(c.Request().Context(), code, apptuc.StaffActor(sid), req.Reason)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *StaffHandler) Complete(c echo.Context) error {
	sid, ok := staffID(c)
	if !ok {
		return unauthorized(c)
	}
	code, req, err := bindDecision(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	view, err := h.uc.Complete(c.Request().Context(), code, apptuc.StaffActor(sid), req.Remarks)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Get returns the full, unmasked detail view for the staff console.
func (h *StaffHandler) Get(c echo.Context) error {
	if _, ok := staffID(c); !ok {
		return unauthorized(c)
	}
	view, err := h.uc.Get(c.Request().Context(), c.Param("code"), true)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

func (h *StaffHandler) List(c echo.Context) error {
	if _, ok := staffID(c); !ok {
		return unauthorized(c)
	}
	f := appointment.ListFilter{
		Status:         appointment.Status(c.QueryParam("status")),
		Kind:           appointment.Kind(c.QueryParam("kind")),
		WithCompanions: c.QueryParam("with_companions") == "true",
	}
	f.Page, _ = strconv.Atoi(c.QueryParam("page"))
	f.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))
	f.VisitFrom = parseTimeParam(c.QueryParam("visit_from"))
	f.VisitTo = parseTimeParam(c.QueryParam("visit_to"))
	f.AppliedFrom = parseTimeParam(c.QueryParam("applied_from"))
	f.AppliedTo = parseTimeParam(c.QueryParam("applied_to"))

	page, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *StaffHandler) Stats(c echo.Context) error {
	if _, ok := staffID(c); !ok {
		return unauthorized(c)
	}
	counts, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"counts": counts})
}

func parseTimeParam(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC()
	}
	// date-only filters are common from the console
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
