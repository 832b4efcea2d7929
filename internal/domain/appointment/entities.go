package appointment

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// Terminal reports whether the status has no outgoing transitions.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

type Kind string

const (
	KindPublic   Kind = "PUBLIC"
	KindOfficial Kind = "OFFICIAL"
)

type Appointment struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"-"`
	// Public identifier (32-char lowercase hex); with the requester phone it
	// forms the only credential a non-staff caller can present.
	Code   string `gorm:"column:appointment_code;type:char(32);not null;uniqueIndex:ux_appointments_code" json:"code"`
	Kind   Kind   `gorm:"type:enum('PUBLIC','OFFICIAL');default:'PUBLIC'" json:"kind"`
	Status Status `gorm:"type:enum('PENDING','APPROVED','REJECTED','CANCELLED','COMPLETED');default:'PENDING';index:idx_appointments_status" json:"status"`

	RequesterName     string `gorm:"size:64;not null" json:"requester_name"`
	RequesterIDNumber string `gorm:"column:requester_id_number;size:32;not null" json:"requester_id_number"`
	RequesterPhone    string `gorm:"size:32;not null" json:"requester_phone"`

	// PUBLIC: the visitor's organization. OFFICIAL: office/title plus the
	// department and host being visited.
	Organization string `gorm:"size:128" json:"organization,omitempty"`
	Office       string `gorm:"size:128" json:"office,omitempty"`
	Title        string `gorm:"size:64" json:"title,omitempty"`
	VisitedDept  string `gorm:"column:visited_dept;size:128" json:"visited_dept,omitempty"`
	HostName     string `gorm:"size:64" json:"host_name,omitempty"`

	VisitTime     time.Time `gorm:"index:idx_appointments_visit_time" json:"visit_time"`
	VisitorCount  int       `gorm:"default:1" json:"visitor_count"`
	Purpose       string    `gorm:"type:text" json:"purpose,omitempty"`
	Remarks       string    `gorm:"type:text" json:"remarks,omitempty"`
	TransportMode string    `gorm:"size:32" json:"transport_mode,omitempty"`
	PlateNumber   string    `gorm:"size:16" json:"plate_number,omitempty"`

	// Written exactly once, atomically with the matching status change.
	RejectReason    string     `gorm:"type:text" json:"reject_reason,omitempty"`
	CancelReason    string     `gorm:"type:text" json:"cancel_reason,omitempty"`
	DecisionRemarks string     `gorm:"type:text" json:"decision_remarks,omitempty"`
	DecidedBy       string     `gorm:"size:64" json:"decided_by,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`

	StatusUpdatedAt time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Companions []Companion `gorm:"foreignKey:AppointmentID;references:ID" json:"companions,omitempty"`
}

func (Appointment) TableName() string { return "appointments" }

type Companion struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	AppointmentID uint64 `gorm:"column:appointment_id;not null;index:idx_companions_appointment" json:"-"`
	Position      int    `gorm:"not null" json:"position"`
	Name          string `gorm:"size:64;not null" json:"name"`
	IDNumber      string `gorm:"column:id_number;size:32;not null" json:"id_number"`
	Phone         string `gorm:"size:32" json:"phone,omitempty"`
	Title         string `gorm:"size:64" json:"title,omitempty"`
}

func (Companion) TableName() string { return "appointment_companions" }
