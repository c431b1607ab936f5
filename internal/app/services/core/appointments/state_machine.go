package appointments

import (
	"bitecare-service/internal/app/models"
	"bitecare-service/internal/pkg/exceptions"
)

// Transition is the outcome of applying an action to an appointment.
// StampField names the timestamp the write must set.
type Transition struct {
	From       models.AppointmentStatus
	To         models.AppointmentStatus
	Action     models.AppointmentAction
	StampField string
}

// InitialStatus returns the status a new appointment is written with and the
// timestamps stamped at creation. Staff-registered walk-ins are already in
// the building and go straight to consultation.
func InitialStatus(workflow models.Workflow) (models.AppointmentStatus, []string) {
	if workflow.StaffAssisted() {
		return models.AppointmentStatusInConsultation, []string{
			models.StampCheckedInAt,
			models.StampConsultationStartedAt,
		}
	}
	return models.AppointmentStatusPending, nil
}

// Apply validates action against the appointment's current status and type
// and the actor's role. It does not mutate the appointment.
func Apply(appointment *models.Appointment, action models.AppointmentAction, actor models.Actor) (Transition, error) {
	transition, ok := next(appointment.Status, appointment.Type, action)
	if !ok {
		return Transition{}, exceptions.ErrInvalidTransition(string(action), string(appointment.Status))
	}
	if !permitted(actor.Role, action) {
		return Transition{}, exceptions.ErrTransitionNotPermitted(string(actor.Role), string(action), string(appointment.Status))
	}
	transition.From = appointment.Status
	transition.Action = action
	return transition, nil
}

func next(status models.AppointmentStatus, appointmentType models.AppointmentType, action models.AppointmentAction) (Transition, bool) {
	switch status {
	case models.AppointmentStatusPending:
		switch action {
		case models.AppointmentActionCheckIn:
			return Transition{To: models.AppointmentStatusConfirmed, StampField: models.StampCheckedInAt}, true
		case models.AppointmentActionCancel:
			return Transition{To: models.AppointmentStatusCancelled, StampField: models.StampCancelledAt}, true
		case models.AppointmentActionReschedule:
			if appointmentType != models.AppointmentTypeFollowUp {
				return Transition{}, false
			}
			return Transition{To: models.AppointmentStatusPending, StampField: models.StampRescheduledAt}, true
		case models.AppointmentActionStartConsultation,
			models.AppointmentActionComplete,
			models.AppointmentActionMarkNoShow:
			return Transition{}, false
		}
	case models.AppointmentStatusConfirmed:
		switch action {
		case models.AppointmentActionStartConsultation:
			return Transition{To: models.AppointmentStatusInConsultation, StampField: models.StampConsultationStartedAt}, true
		case models.AppointmentActionMarkNoShow:
			return Transition{To: models.AppointmentStatusNoShow, StampField: models.StampCompletedAt}, true
		case models.AppointmentActionCheckIn,
			models.AppointmentActionComplete,
			models.AppointmentActionCancel,
			models.AppointmentActionReschedule:
			return Transition{}, false
		}
	case models.AppointmentStatusInConsultation:
		switch action {
		case models.AppointmentActionComplete:
			return Transition{To: models.AppointmentStatusCompleted, StampField: models.StampCompletedAt}, true
		case models.AppointmentActionCheckIn,
			models.AppointmentActionStartConsultation,
			models.AppointmentActionMarkNoShow,
			models.AppointmentActionCancel,
			models.AppointmentActionReschedule:
			return Transition{}, false
		}
	case models.AppointmentStatusCompleted,
		models.AppointmentStatusCancelled,
		models.AppointmentStatusNoShow:
		return Transition{}, false
	}
	return Transition{}, false
}

// Patients may only withdraw or move their own booking; every other action
// belongs to front-desk staff.
func permitted(role models.ActorRole, action models.AppointmentAction) bool {
	switch role {
	case models.ActorRoleStaff:
		return true
	case models.ActorRolePatient:
		return action == models.AppointmentActionCancel || action == models.AppointmentActionReschedule
	}
	return false
}
