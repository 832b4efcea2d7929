package appointment

import (
	"strings"
	"time"

	"visitgate/internal/domain/appointment"
)

type CompanionInput struct {
	Name     string `json:"name"`
	IDNumber string `json:"id_number"`
	Phone    string `json:"phone,omitempty"`
	Title    string `json:"title,omitempty"`
}

type CreateInput struct {
	Kind              appointment.Kind `json:"kind"`
	RequesterName     string           `json:"requester_name"`
	RequesterIDNumber string           `json:"requester_id_number"`
	RequesterPhone    string           `json:"requester_phone"`

	Organization string `json:"organization,omitempty"`
	Office       string `json:"office,omitempty"`
	Title        string `json:"title,omitempty"`
	VisitedDept  string `json:"visited_dept,omitempty"`
	HostName     string `json:"host_name,omitempty"`

	VisitTime     time.Time `json:"visit_time"`
	VisitorCount  int       `json:"visitor_count,omitempty"`
	Purpose       string    `json:"purpose,omitempty"`
	Remarks       string    `json:"remarks,omitempty"`
	TransportMode string    `json:"transport_mode,omitempty"`
	PlateNumber   string    `json:"plate_number,omitempty"`

	Companions []CompanionInput `json:"companions,omitempty"`
}

func (in *CreateInput) validate(now time.Time) error {
	if in.Kind == "" {
		in.Kind = appointment.KindPublic
	}
	if in.Kind != appointment.KindPublic && in.Kind != appointment.KindOfficial {
		return validationErr("kind must be PUBLIC or OFFICIAL")
	}
	if strings.TrimSpace(in.RequesterName) == "" {
		return validationErr("requester_name is required")
	}
	if strings.TrimSpace(in.RequesterIDNumber) == "" {
		return validationErr("requester_id_number is required")
	}
	if strings.TrimSpace(in.RequesterPhone) == "" {
		return validationErr("requester_phone is required")
	}
	if in.VisitTime.IsZero() || !in.VisitTime.UTC().After(now) {
		return validationErr("visit_time must be in the future")
	}
	if in.Kind == appointment.KindOfficial {
		if strings.TrimSpace(in.VisitedDept) == "" {
			return validationErr("visited_dept is required for OFFICIAL appointments")
		}
		if strings.TrimSpace(in.HostName) == "" {
			return validationErr("host_name is required for OFFICIAL appointments")
		}
		if strings.TrimSpace(in.Purpose) == "" {
			return validationErr("purpose is required for OFFICIAL appointments")
		}
	}
	for _, c := range in.Companions {
		if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.IDNumber) == "" {
			return validationErr("companion name and id_number are required")
		}
	}
	return nil
}
