package appointments

import (
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/app/models"
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/exceptions"
	"context"
	"time"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	FormValidator         contracts.FormValidator
	Now                   func() time.Time
	Log                   *zap.Logger
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	formValidator contracts.FormValidator,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository: appointmentRepository,
		FormValidator:         formValidator,
		Now:                   time.Now,
		Log:                   logger,
	}
}

func (uc *appointmentUsecase) FindAllByPatient(ctx context.Context, actor models.Actor, patientID string) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindAllByPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	err := authorize(actor, patientID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindAllByPatient error authorizing actor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	appointments, err := uc.AppointmentRepository.FindAllByPatient(ctx, patientID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindAllByPatient error calling AppointmentRepository.FindAllByPatient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.FindAllByPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, len(appointments)),
	)
	return appointments, nil
}

// Transition applies action to the stored appointment. The write only lands
// if the status is still the one the transition was computed from.
func (uc *appointmentUsecase) Transition(ctx context.Context, actor models.Actor, patientID, appointmentID string, action models.AppointmentAction, reschedule *models.Reschedule) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Transition called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
		zap.String(constvars.LoggingActorRoleKey, string(actor.Role)),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingActionKey, string(action)),
	)

	err := authorize(actor, patientID)
	if err != nil {
		return nil, err
	}

	appointment, err := uc.AppointmentRepository.FindByID(ctx, patientID, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Transition error calling AppointmentRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	transition, err := Apply(appointment, action, actor)
	if err != nil {
		uc.Log.Info("appointmentUsecase.Transition rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStatusKey, string(appointment.Status)),
			zap.Error(err),
		)
		return nil, err
	}

	now := uc.Now()
	fields := map[string]interface{}{
		constvars.AppointmentFieldStatus: string(transition.To),
		transition.StampField:            now,
	}

	if action == models.AppointmentActionReschedule {
		validationErrors := uc.FormValidator.ValidateReschedule(ctx, reschedule)
		if len(validationErrors) > 0 {
			return nil, exceptions.ErrFieldValidation(validationErrors)
		}
		fields[constvars.AppointmentFieldBranch] = reschedule.Branch
		fields[constvars.AppointmentFieldAppointmentDate] = reschedule.AppointmentDate
		fields[constvars.AppointmentFieldTimeSlot] = reschedule.TimeSlot
	}

	err = uc.AppointmentRepository.UpdateIfStatus(ctx, patientID, appointmentID, transition.From, fields)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Transition error calling AppointmentRepository.UpdateIfStatus",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStatusKey, string(transition.From)),
			zap.String(constvars.LoggingNextStatusKey, string(transition.To)),
			zap.Error(err),
		)
		return nil, err
	}

	appointment.Status = transition.To
	appointment.Stamp(transition.StampField, now)
	if reschedule != nil && action == models.AppointmentActionReschedule {
		appointment.Branch = reschedule.Branch
		appointment.AppointmentDate = reschedule.AppointmentDate
		appointment.TimeSlot = reschedule.TimeSlot
	}

	uc.Log.Info("appointmentUsecase.Transition succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStatusKey, string(transition.From)),
		zap.String(constvars.LoggingNextStatusKey, string(transition.To)),
	)
	return appointment, nil
}

func (uc *appointmentUsecase) Watch(ctx context.Context, actor models.Actor, patientID string) (<-chan []models.Appointment, func(), error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Watch called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	err := authorize(actor, patientID)
	if err != nil {
		return nil, nil, err
	}

	updates, cancel, err := uc.AppointmentRepository.Subscribe(ctx, patientID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Watch error calling AppointmentRepository.Subscribe",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, nil, err
	}
	return updates, cancel, nil
}

// authorize keeps patients inside their own records. Staff see everyone.
func authorize(actor models.Actor, patientID string) error {
	switch actor.Role {
	case models.ActorRoleStaff:
		return nil
	case models.ActorRolePatient:
		if actor.ID != "" && actor.ID == patientID {
			return nil
		}
		return exceptions.ErrForeignPatient(actor.ID, patientID)
	}
	return exceptions.ErrNotAuthorized(nil)
}
