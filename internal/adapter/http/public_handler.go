package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"visitgate/internal/domain/appointment"
	apptuc "visitgate/internal/usecase/appointment"
	lookupuc "visitgate/internal/usecase/lookup"
)

// PublicHandler serves the unauthenticated surface: intake plus the
// capability-token flows (status query, pass code, cancellation).
type PublicHandler struct {
	appts  *apptuc.Usecase
	lookup *lookupuc.Usecase
}

func NewPublicHandler(appts *apptuc.Usecase, lookup *lookupuc.Usecase) *PublicHandler {
	return &PublicHandler{appts: appts, lookup: lookup}
}

type companionReq struct {
	Name     string `json:"name"      validate:"required"`
	IDNumber string `json:"id_number" validate:"required,idnum"`
	Phone    string `json:"phone"     validate:"omitempty,phonenum"`
	Title    string `json:"title"`
}

type createAppointmentReq struct {
	Kind              string         `json:"kind"                validate:"omitempty,oneof=PUBLIC OFFICIAL"`
	RequesterName     string         `json:"requester_name"      validate:"required"`
	RequesterIDNumber string         `json:"requester_id_number" validate:"required,idnum"`
	RequesterPhone    string         `json:"requester_phone"     validate:"required,phonenum"`
	Organization      string         `json:"organization"`
	Office            string         `json:"office"`
	Title             string         `json:"title"`
	VisitedDept       string         `json:"visited_dept"`
	HostName          string         `json:"host_name"`
	VisitTime         time.Time      `json:"visit_time"          validate:"required,future"`
	VisitorCount      int            `json:"visitor_count"       validate:"omitempty,gte=1,lte=50"`
	Purpose           string         `json:"purpose"`
	Remarks           string         `json:"remarks"`
	TransportMode     string         `json:"transport_mode"`
	PlateNumber       string         `json:"plate_number"`
	Companions        []companionReq `json:"companions"          validate:"omitempty,max=10,dive"`
}

func (h *PublicHandler) CreateAppointment(c echo.Context) error {
	var req createAppointmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := apptuc.CreateInput{
		Kind:              appointment.Kind(req.Kind),
		RequesterName:     req.RequesterName,
		RequesterIDNumber: req.RequesterIDNumber,
		RequesterPhone:    req.RequesterPhone,
		Organization:      req.Organization,
		Office:            req.Office,
		Title:             req.Title,
		VisitedDept:       req.VisitedDept,
		HostName:          req.HostName,
		VisitTime:         req.VisitTime,
		VisitorCount:      req.VisitorCount,
		Purpose:           req.Purpose,
		Remarks:           req.Remarks,
		TransportMode:     req.TransportMode,
		PlateNumber:       req.PlateNumber,
	}
	for _, comp := range req.Companions {
		in.Companions = append(in.Companions, apptuc.CompanionInput(comp))
	}

	view, err := h.appts.Create(c.Request().Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

// capability extracts the (code, phone) pair. A malformed code cannot match
// any appointment, but it still flows through the same not-found exit so the
// response shape never hints at why.
func capability(c echo.Context) (code, phone string, ok bool) {
	code = c.Param("code")
	phone = c.QueryParam("phone")
	return code, phone, reHex32.MatchString(code) && phone != ""
}

func (h *PublicHandler) GetAppointment(c echo.Context) error {
	code, phone, ok := capability(c)
	if !ok {
		return c.JSON(http.StatusNotFound, notFoundBody)
	}
	res, err := h.lookup.Lookup(c.Request().Context(), code, phone)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *PublicHandler) GetPass(c echo.Context) error {
	code, phone, ok := capability(c)
	if !ok {
		return c.JSON(http.StatusNotFound, notFoundBody)
	}
	res, err := h.lookup.Pass(c.Request().Context(), code, phone)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

type publicCancelReq struct {
	Phone  string `json:"phone"  validate:"required,phonenum"`
	Reason string `json:"reason" validate:"required"`
}

func (h *PublicHandler) CancelAppointment(c echo.Context) error {
	code := c.Param("code")
	if !reHex32.MatchString(code) {
		return c.JSON(http.StatusNotFound, notFoundBody)
	}
	var req publicCancelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	res, err := h.lookup.Cancel(c.Request().Context(), code, req.Phone, req.Reason)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
