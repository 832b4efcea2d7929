package appointment

import (
	"time"

	"visitgate/internal/domain/appointment"
	"visitgate/pkg/mask"
)

// View is the field set crossing the rendering/transport boundary. Every
// read path builds it through NewView; the staffView flag is the single
// switch between raw and masked personal fields, so no endpoint can forget
// to mask a newly added field on its own.
type View struct {
	Code   string             `json:"code"`
	Kind   appointment.Kind   `json:"kind"`
	Status appointment.Status `json:"status"`

	RequesterName     string `json:"requester_name"`
	RequesterIDNumber string `json:"requester_id_number"`
	RequesterPhone    string `json:"requester_phone"`

	Organization string `json:"organization,omitempty"`
	Office       string `json:"office,omitempty"`
	Title        string `json:"title,omitempty"`
	VisitedDept  string `json:"visited_dept,omitempty"`
	HostName     string `json:"host_name,omitempty"`

	VisitTime     time.Time `json:"visit_time"`
	VisitorCount  int       `json:"visitor_count"`
	Purpose       string    `json:"purpose,omitempty"`
	Remarks       string    `json:"remarks,omitempty"`
	TransportMode string    `json:"transport_mode,omitempty"`
	PlateNumber   string    `json:"plate_number,omitempty"`

	RejectReason    string     `json:"reject_reason,omitempty"`
	CancelReason    string     `json:"cancel_reason,omitempty"`
	DecisionRemarks string     `json:"decision_remarks,omitempty"`
	DecidedBy       string     `json:"decided_by,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	Companions []CompanionView `json:"companions,omitempty"`
}

type CompanionView struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	IDNumber string `json:"id_number"`
	Phone    string `json:"phone,omitempty"`
	Title    string `json:"title,omitempty"`
}

func NewView(a *appointment.Appointment, staffView bool) *View {
	v := &View{
		Code:              a.Code,
		Kind:              a.Kind,
		Status:            a.Status,
		RequesterName:     a.RequesterName,
		RequesterIDNumber: a.RequesterIDNumber,
		RequesterPhone:    a.RequesterPhone,
		Organization:      a.Organization,
		Office:            a.Office,
		Title:             a.Title,
		VisitedDept:       a.VisitedDept,
		HostName:          a.HostName,
		VisitTime:         a.VisitTime,
		VisitorCount:      a.VisitorCount,
		Purpose:           a.Purpose,
		Remarks:           a.Remarks,
		TransportMode:     a.TransportMode,
		PlateNumber:       a.PlateNumber,
		RejectReason:      a.RejectReason,
		CancelReason:      a.CancelReason,
		DecisionRemarks:   a.DecisionRemarks,
		DecidedBy:         a.DecidedBy,
		DecidedAt:         a.DecidedAt,
		CreatedAt:         a.CreatedAt,
	}
	for _, c := range a.Companions {
		v.Companions = append(v.Companions, CompanionView{
			Position: c.Position,
			Name:     c.Name,
			IDNumber: c.IDNumber,
			Phone:    c.Phone,
			Title:    c.Title,
		})
	}
	if !staffView {
		v.maskPII()
	}
	return v
}

func (v *View) maskPII() {
	v.RequesterName = mask.Name(v.RequesterName)
	v.RequesterIDNumber = mask.IDNumber(v.RequesterIDNumber)
	v.RequesterPhone = mask.Phone(v.RequesterPhone)
	// the deciding staff identity stays internal
	v.DecidedBy = ""
	for i := range v.Companions {
		v.Companions[i].Name = mask.Name(v.Companions[i].Name)
		v.Companions[i].IDNumber = mask.IDNumber(v.Companions[i].IDNumber)
		v.Companions[i].Phone = mask.Phone(v.Companions[i].Phone)
	}
}

type Page struct {
	Items      []*View `json:"items"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	Total      int64   `json:"total"`
	TotalPages int64   `json:"total_pages"`
}
