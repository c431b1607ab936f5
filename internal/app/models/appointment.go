package models

import (
	"bitecare-service/internal/pkg/constvars"
	"time"
)

type AppointmentType string

const (
	AppointmentTypeIncident AppointmentType = "Incident"
	AppointmentTypeFollowUp AppointmentType = "FollowUp"
)

func (t AppointmentType) Valid() bool {
	switch t {
	case AppointmentTypeIncident, AppointmentTypeFollowUp:
		return true
	}
	return false
}

type AppointmentStatus string

const (
	AppointmentStatusPending        AppointmentStatus = "Pending"
	AppointmentStatusConfirmed      AppointmentStatus = "Confirmed"
	AppointmentStatusInConsultation AppointmentStatus = "InConsultation"
	AppointmentStatusCompleted      AppointmentStatus = "Completed"
	AppointmentStatusCancelled      AppointmentStatus = "Cancelled"
	AppointmentStatusNoShow         AppointmentStatus = "NoShow"
)

// AllAppointmentStatuses lists every status the lifecycle knows about.
var AllAppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusInConsultation,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
	AppointmentStatusNoShow,
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending,
		AppointmentStatusConfirmed,
		AppointmentStatusInConsultation,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow:
		return true
	}
	return false
}

func (s AppointmentStatus) IsTerminal() bool {
	switch s {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

type AppointmentAction string

const (
	AppointmentActionCheckIn           AppointmentAction = "checkIn"
	AppointmentActionStartConsultation AppointmentAction = "startConsultation"
	AppointmentActionComplete          AppointmentAction = "complete"
	AppointmentActionMarkNoShow        AppointmentAction = "markNoShow"
	AppointmentActionCancel            AppointmentAction = "cancel"
	AppointmentActionReschedule        AppointmentAction = "reschedule"
)

var AllAppointmentActions = []AppointmentAction{
	AppointmentActionCheckIn,
	AppointmentActionStartConsultation,
	AppointmentActionComplete,
	AppointmentActionMarkNoShow,
	AppointmentActionCancel,
	AppointmentActionReschedule,
}

func ParseAppointmentAction(value string) (AppointmentAction, bool) {
	for _, action := range AllAppointmentActions {
		if string(action) == value {
			return action, true
		}
	}
	return "", false
}

// Timestamp fields stamped by lifecycle transitions. They double as the
// stored field names.
const (
	StampCheckedInAt           = "checkedInAt"
	StampConsultationStartedAt = "consultationStartedAt"
	StampCompletedAt           = "completedAt"
	StampCancelledAt           = "cancelledAt"
	StampRescheduledAt         = "rescheduledAt"
)

type ActorRole string

const (
	ActorRolePatient ActorRole = constvars.ActorRolePatient
	ActorRoleStaff   ActorRole = constvars.ActorRoleStaff
)

func (r ActorRole) Valid() bool {
	return r == ActorRolePatient || r == ActorRoleStaff
}

type Actor struct {
	ID   string
	Role ActorRole
}

type DoseLabel string

type ExposureFlags struct {
	Bite          bool `json:"bite" bson:"bite"`
	Lick          bool `json:"lick" bson:"lick"`
	Scratch       bool `json:"scratch" bson:"scratch"`
	Abrasion      bool `json:"abrasion" bson:"abrasion"`
	Contamination bool `json:"contamination" bson:"contamination"`
	Nibble        bool `json:"nibble" bson:"nibble"`
}

func (e ExposureFlags) Any() bool {
	return e.Bite || e.Lick || e.Scratch || e.Abrasion || e.Contamination || e.Nibble
}

type IncidentDetail struct {
	DoseLabel               DoseLabel     `json:"doseLabel" bson:"doseLabel"`
	IncidentDate            string        `json:"incidentDate" bson:"incidentDate"`
	Exposures               ExposureFlags `json:"exposures" bson:"exposures"`
	AnimalType              string        `json:"animalType" bson:"animalType"`
	BiteLocation            string        `json:"biteLocation" bson:"biteLocation"`
	AnimalVaccinationStatus string        `json:"animalVaccinationStatus" bson:"animalVaccinationStatus"`
}

type FollowUpDetail struct {
	PrimaryReason      string `json:"primaryReason" bson:"primaryReason"`
	NewConditions      string `json:"newConditions" bson:"newConditions"`
	PolicyConfirmation bool   `json:"policyConfirmation" bson:"policyConfirmation"`
}

type Appointment struct {
	ID                    string            `json:"id" bson:"id"`
	Code                  string            `json:"appointmentId" bson:"appointmentId"`
	PatientID             string            `json:"patientId" bson:"patientId"`
	Type                  AppointmentType   `json:"type" bson:"type"`
	Branch                string            `json:"branch" bson:"branch"`
	AppointmentDate       string            `json:"appointmentDate" bson:"appointmentDate"`
	TimeSlot              string            `json:"timeSlot" bson:"timeSlot"`
	Status                AppointmentStatus `json:"status" bson:"status"`
	CreatedAt             time.Time         `json:"createdAt" bson:"createdAt"`
	CreatedBy             string            `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	RescheduledAt         *time.Time        `json:"rescheduledAt,omitempty" bson:"rescheduledAt,omitempty"`
	CancelledAt           *time.Time        `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	CheckedInAt           *time.Time        `json:"checkedInAt,omitempty" bson:"checkedInAt,omitempty"`
	ConsultationStartedAt *time.Time        `json:"consultationStartedAt,omitempty" bson:"consultationStartedAt,omitempty"`
	CompletedAt           *time.Time        `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	Incident              *IncidentDetail   `json:"incidentDetails,omitempty" bson:"incidentDetails,omitempty"`
	FollowUp              *FollowUpDetail   `json:"followUpDetails,omitempty" bson:"followUpDetails,omitempty"`
}

// HasMatchingDetail reports whether the appointment carries exactly the
// detail block its type requires.
func (a *Appointment) HasMatchingDetail() bool {
	switch a.Type {
	case AppointmentTypeIncident:
		return a.Incident != nil && a.FollowUp == nil
	case AppointmentTypeFollowUp:
		return a.FollowUp != nil && a.Incident == nil
	}
	return false
}

// Stamp sets the timestamp named by field.
func (a *Appointment) Stamp(field string, at time.Time) {
	stamped := at
	switch field {
	case StampCheckedInAt:
		a.CheckedInAt = &stamped
	case StampConsultationStartedAt:
		a.ConsultationStartedAt = &stamped
	case StampCompletedAt:
		a.CompletedAt = &stamped
	case StampCancelledAt:
		a.CancelledAt = &stamped
	case StampRescheduledAt:
		a.RescheduledAt = &stamped
	}
}

type Reschedule struct {
	Branch          string `json:"branch" validate:"required"`
	AppointmentDate string `json:"appointmentDate" validate:"required,datetime=2006-01-02,not_past_date"`
	TimeSlot        string `json:"timeSlot" validate:"required"`
}
