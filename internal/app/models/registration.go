package models

import (
	"bitecare-service/internal/pkg/constvars"
	"fmt"
)

type Workflow string

const (
	WorkflowBooking Workflow = "booking"
	WorkflowWalkIn  Workflow = "walkIn"
)

func (w Workflow) Valid() bool {
	return w == WorkflowBooking || w == WorkflowWalkIn
}

// StaffAssisted reports whether bookings in this workflow are entered by
// front-desk staff for a patient who is physically present.
func (w Workflow) StaffAssisted() bool {
	return w == WorkflowWalkIn
}

type Step int

const (
	StepSelectReason Step = 1
	StepDetailsForm  Step = 2
	StepConfirmation Step = 3
)

func (s Step) Valid() bool {
	return s >= StepSelectReason && s <= StepConfirmation
}

type PersonalDetails struct {
	Name             PersonName       `json:"name"`
	DateOfBirth      string           `json:"dateOfBirth" validate:"required,datetime=2006-01-02,not_future_date"`
	Sex              string           `json:"sex" validate:"required,oneof=Male Female"`
	Address          Address          `json:"address"`
	Contact          ContactInfo      `json:"contact"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
	Consent          Consent          `json:"consent"`
}

type ScheduleDetails struct {
	Branch          string `json:"branch" validate:"required"`
	AppointmentDate string `json:"appointmentDate" validate:"required,datetime=2006-01-02,not_past_date"`
	TimeSlot        string `json:"timeSlot" validate:"required"`
}

type IncidentForm struct {
	IncidentDate            string        `json:"incidentDate" validate:"required,datetime=2006-01-02,not_future_date"`
	Exposures               ExposureFlags `json:"exposures"`
	AnimalType              string        `json:"animalType" validate:"required"`
	BiteLocation            string        `json:"biteLocation" validate:"required"`
	AnimalVaccinationStatus string        `json:"animalVaccinationStatus" validate:"required,oneof=Vaccinated Unvaccinated Unknown"`
	Allergies               string        `json:"allergies,omitempty"`
	HasPriorVaccination     bool          `json:"hasPriorVaccination"`
	PriorVaccinationDate    string        `json:"priorVaccinationDate,omitempty" validate:"omitempty,datetime=2006-01-02,not_future_date"`
}

type FollowUpForm struct {
	PrimaryReason      string `json:"primaryReason" validate:"required,max=500"`
	NewConditions      string `json:"newConditions,omitempty" validate:"max=1000"`
	PolicyConfirmation bool   `json:"policyConfirmation" validate:"eq=true"`
}

// RegistrationForm is the single mutable payload carried through the
// booking steps and persisted as the draft.
type RegistrationForm struct {
	AppointmentType   AppointmentType  `json:"appointmentType" validate:"required,oneof=Incident FollowUp"`
	HasPatientRecord  bool             `json:"hasPatientRecord"`
	SelectedPatientID string           `json:"selectedPatientId,omitempty"`
	Personal          *PersonalDetails `json:"personal,omitempty"`
	Schedule          ScheduleDetails  `json:"schedule"`
	Incident          *IncidentForm    `json:"incident,omitempty"`
	FollowUp          *FollowUpForm    `json:"followUp,omitempty"`
}

// NeedsProvisioning reports whether submitting this form in the given
// workflow must first create a provisional patient.
func (f *RegistrationForm) NeedsProvisioning(workflow Workflow) bool {
	return workflow.StaffAssisted() && !f.HasPatientRecord
}

type RecoveryNotice struct {
	Message                string `json:"message"`
	Step                   Step   `json:"step"`
	PendingAppointmentCode string `json:"pendingAppointmentCode,omitempty"`
}

// WorkflowSession carries one booking in progress through every call of the
// registration workflow.
type WorkflowSession struct {
	Workflow     Workflow          `json:"workflow"`
	OwnerID      string            `json:"ownerId"`
	Step         Step              `json:"step"`
	Form         RegistrationForm  `json:"form"`
	HasDraft     bool              `json:"hasDraft"`
	Errors       map[string]string `json:"errors,omitempty"`
	GeneralError string            `json:"generalError,omitempty"`
	Notice       *RecoveryNotice   `json:"notice,omitempty"`
	Appointment  *Appointment      `json:"appointment,omitempty"`
}

func NewWorkflowSession(workflow Workflow, ownerID string) *WorkflowSession {
	return &WorkflowSession{
		Workflow: workflow,
		OwnerID:  ownerID,
		Step:     StepSelectReason,
	}
}

// DraftKey namespaces a "<workflow><suffix>" draft key to the session owner.
func (s *WorkflowSession) DraftKey(suffix string) string {
	return fmt.Sprintf("%s:%s:%s%s", constvars.DraftKeyNamespace, s.OwnerID, s.Workflow, suffix)
}

func (s *WorkflowSession) DraftKeys() []string {
	return []string{
		s.DraftKey(constvars.DraftKeyFormData),
		s.DraftKey(constvars.DraftKeyStep),
		s.DraftKey(constvars.DraftKeySubmitting),
		s.DraftKey(constvars.DraftKeyAppointmentID),
	}
}

func (s *WorkflowSession) SubmitLockKey() string {
	return fmt.Sprintf("%s:%s:%s", constvars.SubmitLockNamespace, s.OwnerID, s.Workflow)
}

func (s *WorkflowSession) ClearErrors() {
	s.Errors = nil
	s.GeneralError = ""
}
