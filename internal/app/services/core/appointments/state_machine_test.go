package appointments

import (
	"bitecare-service/internal/app/models"
	"bitecare-service/internal/pkg/exceptions"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transitionKey struct {
	status models.AppointmentStatus
	action models.AppointmentAction
}

var staff = models.Actor{ID: "staff-1", Role: models.ActorRoleStaff}
var patient = models.Actor{ID: "patient-1", Role: models.ActorRolePatient}

func TestApplyIsTotal(t *testing.T) {
	legal := map[models.AppointmentType]map[transitionKey]Transition{
		models.AppointmentTypeIncident: {
			{models.AppointmentStatusPending, models.AppointmentActionCheckIn}:             {To: models.AppointmentStatusConfirmed, StampField: models.StampCheckedInAt},
			{models.AppointmentStatusPending, models.AppointmentActionCancel}:              {To: models.AppointmentStatusCancelled, StampField: models.StampCancelledAt},
			{models.AppointmentStatusConfirmed, models.AppointmentActionStartConsultation}: {To: models.AppointmentStatusInConsultation, StampField: models.StampConsultationStartedAt},
			{models.AppointmentStatusConfirmed, models.AppointmentActionMarkNoShow}:        {To: models.AppointmentStatusNoShow, StampField: models.StampCompletedAt},
			{models.AppointmentStatusInConsultation, models.AppointmentActionComplete}:     {To: models.AppointmentStatusCompleted, StampField: models.StampCompletedAt},
		},
		models.AppointmentTypeFollowUp: {
			{models.AppointmentStatusPending, models.AppointmentActionCheckIn}:             {To: models.AppointmentStatusConfirmed, StampField: models.StampCheckedInAt},
			{models.AppointmentStatusPending, models.AppointmentActionCancel}:              {To: models.AppointmentStatusCancelled, StampField: models.StampCancelledAt},
			{models.AppointmentStatusPending, models.AppointmentActionReschedule}:          {To: models.AppointmentStatusPending, StampField: models.StampRescheduledAt},
			{models.AppointmentStatusConfirmed, models.AppointmentActionStartConsultation}: {To: models.AppointmentStatusInConsultation, StampField: models.StampConsultationStartedAt},
			{models.AppointmentStatusConfirmed, models.AppointmentActionMarkNoShow}:        {To: models.AppointmentStatusNoShow, StampField: models.StampCompletedAt},
			{models.AppointmentStatusInConsultation, models.AppointmentActionComplete}:     {To: models.AppointmentStatusCompleted, StampField: models.StampCompletedAt},
		},
	}

	for appointmentType, table := range legal {
		for _, status := range models.AllAppointmentStatuses {
			for _, action := range models.AllAppointmentActions {
				name := string(appointmentType) + "/" + string(status) + "/" + string(action)
				t.Run(name, func(t *testing.T) {
					appointment := &models.Appointment{Type: appointmentType, Status: status}
					got, err := Apply(appointment, action, staff)

					expected, ok := table[transitionKey{status, action}]
					if !ok {
						require.Error(t, err)
						assert.True(t, errors.Is(err, exceptions.ErrKindInvalidTransition))
						return
					}
					require.NoError(t, err)
					assert.Equal(t, expected.To, got.To)
					assert.Equal(t, expected.StampField, got.StampField)
					assert.Equal(t, status, got.From)
					assert.Equal(t, action, got.Action)
				})
			}
		}
	}
}

func TestApplyTerminalStatuses(t *testing.T) {
	for _, status := range models.AllAppointmentStatuses {
		if !status.IsTerminal() {
			continue
		}
		t.Run(string(status), func(t *testing.T) {
			appointment := &models.Appointment{Type: models.AppointmentTypeFollowUp, Status: status}
			_, err := Apply(appointment, models.AppointmentActionCancel, staff)
			assert.True(t, errors.Is(err, exceptions.ErrKindInvalidTransition))
		})
	}
}

func TestApplyPatientActions(t *testing.T) {
	t.Run("patient cancels pending incident", func(t *testing.T) {
		appointment := &models.Appointment{Type: models.AppointmentTypeIncident, Status: models.AppointmentStatusPending}
		got, err := Apply(appointment, models.AppointmentActionCancel, patient)
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusCancelled, got.To)
	})

	t.Run("patient cannot cancel confirmed incident", func(t *testing.T) {
		for _, status := range []models.AppointmentStatus{
			models.AppointmentStatusConfirmed,
			models.AppointmentStatusInConsultation,
			models.AppointmentStatusCompleted,
		} {
			appointment := &models.Appointment{Type: models.AppointmentTypeIncident, Status: status}
			_, err := Apply(appointment, models.AppointmentActionCancel, patient)
			assert.True(t, errors.Is(err, exceptions.ErrKindInvalidTransition), string(status))
		}
	})

	t.Run("patient cancels and reschedules pending follow-up", func(t *testing.T) {
		appointment := &models.Appointment{Type: models.AppointmentTypeFollowUp, Status: models.AppointmentStatusPending}

		_, err := Apply(appointment, models.AppointmentActionCancel, patient)
		assert.NoError(t, err)

		got, err := Apply(appointment, models.AppointmentActionReschedule, patient)
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusPending, got.To)
	})

	t.Run("incident cannot be rescheduled", func(t *testing.T) {
		appointment := &models.Appointment{Type: models.AppointmentTypeIncident, Status: models.AppointmentStatusPending}
		_, err := Apply(appointment, models.AppointmentActionReschedule, patient)
		assert.True(t, errors.Is(err, exceptions.ErrKindInvalidTransition))
	})

	t.Run("patient cannot check in", func(t *testing.T) {
		appointment := &models.Appointment{Type: models.AppointmentTypeFollowUp, Status: models.AppointmentStatusPending}
		_, err := Apply(appointment, models.AppointmentActionCheckIn, patient)
		require.Error(t, err)
		customErr, ok := exceptions.As(err)
		require.True(t, ok)
		assert.Equal(t, 403, customErr.StatusCode)
	})

	t.Run("unknown role is refused", func(t *testing.T) {
		appointment := &models.Appointment{Type: models.AppointmentTypeFollowUp, Status: models.AppointmentStatusPending}
		_, err := Apply(appointment, models.AppointmentActionCancel, models.Actor{ID: "x", Role: "guest"})
		assert.Error(t, err)
	})
}

func TestInitialStatus(t *testing.T) {
	t.Run("self-service booking", func(t *testing.T) {
		status, stamps := InitialStatus(models.WorkflowBooking)
		assert.Equal(t, models.AppointmentStatusPending, status)
		assert.Empty(t, stamps)
	})

	t.Run("walk-in", func(t *testing.T) {
		status, stamps := InitialStatus(models.WorkflowWalkIn)
		assert.Equal(t, models.AppointmentStatusInConsultation, status)
		assert.ElementsMatch(t, []string{models.StampCheckedInAt, models.StampConsultationStartedAt}, stamps)
	})
}
