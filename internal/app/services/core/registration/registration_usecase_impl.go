package registration

import (
	"bitecare-service/internal/app/config"
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/app/models"
	"bitecare-service/internal/app/services/core/appointments"
	"bitecare-service/internal/app/services/shared/recordstore"
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/exceptions"
	"bitecare-service/internal/pkg/utils"
	"context"
	"time"

	"go.uber.org/zap"
)

type registrationUsecase struct {
	DraftStore            contracts.DraftStore
	FormValidator         contracts.FormValidator
	ProvisioningService   contracts.ProvisioningService
	AppointmentRepository contracts.AppointmentRepository
	PatientRepository     contracts.PatientRepository
	DoseScheduler         contracts.DoseScheduler
	LockService           contracts.LockerService
	InternalConfig        *config.InternalConfig
	Now                   func() time.Time
	Log                   *zap.Logger
}

func NewRegistrationUsecase(
	draftStore contracts.DraftStore,
	formValidator contracts.FormValidator,
	provisioningService contracts.ProvisioningService,
	appointmentRepository contracts.AppointmentRepository,
	patientRepository contracts.PatientRepository,
	doseScheduler contracts.DoseScheduler,
	lockService contracts.LockerService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.RegistrationUsecase {
	return &registrationUsecase{
		DraftStore:            draftStore,
		FormValidator:         formValidator,
		ProvisioningService:   provisioningService,
		AppointmentRepository: appointmentRepository,
		PatientRepository:     patientRepository,
		DoseScheduler:         doseScheduler,
		LockService:           lockService,
		InternalConfig:        internalConfig,
		Now:                   time.Now,
		Log:                   logger,
	}
}

// Start opens a session for the owner and reloads any surviving draft. A
// draft left behind by an interrupted submission comes back with a recovery
// notice; nothing is written remotely.
func (uc *registrationUsecase) Start(ctx context.Context, workflow models.Workflow, ownerID string) (*models.WorkflowSession, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("registrationUsecase.Start called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkflowKey, string(workflow)),
		zap.String(constvars.LoggingActorIDKey, ownerID),
	)

	if !workflow.Valid() {
		return nil, exceptions.ErrUnknownWorkflow(nil, string(workflow))
	}
	if ownerID == "" {
		return nil, exceptions.ErrNotAuthorized(nil)
	}

	session := models.NewWorkflowSession(workflow, ownerID)

	var submitting bool
	_, err := uc.DraftStore.Load(ctx, session.DraftKey(constvars.DraftKeySubmitting), &submitting)
	if err != nil {
		return nil, err
	}

	var form models.RegistrationForm
	hasDraft, err := uc.DraftStore.Load(ctx, session.DraftKey(constvars.DraftKeyFormData), &form)
	if err != nil {
		return nil, err
	}

	if hasDraft {
		var step models.Step
		_, err = uc.DraftStore.Load(ctx, session.DraftKey(constvars.DraftKeyStep), &step)
		if err != nil {
			return nil, err
		}
		// Confirmation is never persisted; anything else out of range means
		// the draft predates the current step layout.
		if step < models.StepSelectReason || step >= models.StepConfirmation {
			step = models.StepDetailsForm
		}
		session.Form = form
		session.Step = step
		session.HasDraft = true
	}

	if submitting {
		if hasDraft {
			var pendingCode string
			_, err = uc.DraftStore.Load(ctx, session.DraftKey(constvars.DraftKeyAppointmentID), &pendingCode)
			if err != nil {
				return nil, err
			}
			session.Notice = &models.RecoveryNotice{
				Message:                constvars.ErrClientRecoveryNeeded,
				Step:                   session.Step,
				PendingAppointmentCode: pendingCode,
			}
			uc.Log.Warn("registrationUsecase.Start found interrupted submission",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingWorkflowKey, string(workflow)),
				zap.String(constvars.LoggingAppointmentCodeKey, pendingCode),
			)
		}

		err = uc.clearSubmitting(ctx, session)
		if err != nil {
			return nil, err
		}
	}

	uc.Log.Info("registrationUsecase.Start succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingStepKey, int(session.Step)),
		zap.Bool("has_draft", session.HasDraft),
	)
	return session, nil
}

// UpdateForm replaces the form payload. Edits made on the first step are
// kept in memory only.
func (uc *registrationUsecase) UpdateForm(ctx context.Context, session *models.WorkflowSession, form models.RegistrationForm) error {
	if err := checkSession(session); err != nil {
		return err
	}

	session.Form = form
	if session.Step == models.StepSelectReason || session.Step == models.StepConfirmation {
		return nil
	}
	return uc.persist(ctx, session)
}

// Advance moves from SelectReason to DetailsForm. Leaving DetailsForm is
// Submit's job.
func (uc *registrationUsecase) Advance(ctx context.Context, session *models.WorkflowSession) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("registrationUsecase.Advance called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingStepKey, int(session.Step)),
	)

	if err := checkSession(session); err != nil {
		return err
	}
	if session.Step != models.StepSelectReason {
		return exceptions.ErrStepOutOfRange(int(session.Step))
	}

	fields := uc.FormValidator.ValidateStep(ctx, session.Workflow, session.Step, &session.Form)
	if len(fields) > 0 {
		session.Errors = fields
		return exceptions.ErrFieldValidation(fields)
	}

	session.ClearErrors()
	session.Step = models.StepDetailsForm
	return uc.persist(ctx, session)
}

func (uc *registrationUsecase) Retreat(ctx context.Context, session *models.WorkflowSession) error {
	if err := checkSession(session); err != nil {
		return err
	}
	if session.Step != models.StepDetailsForm {
		return exceptions.ErrStepOutOfRange(int(session.Step))
	}

	session.ClearErrors()
	session.Step = models.StepSelectReason
	return uc.persist(ctx, session)
}

// Submit validates the details, writes the booking and clears the draft.
// On any failure the draft stays so the user can retry.
func (uc *registrationUsecase) Submit(ctx context.Context, session *models.WorkflowSession) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("registrationUsecase.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkflowKey, string(session.Workflow)),
		zap.String(constvars.LoggingActorIDKey, session.OwnerID),
	)

	if err := checkSession(session); err != nil {
		return err
	}
	if session.Step != models.StepDetailsForm {
		return exceptions.ErrStepOutOfRange(int(session.Step))
	}

	session.ClearErrors()
	fields := uc.FormValidator.ValidateStep(ctx, session.Workflow, session.Step, &session.Form)
	if len(fields) > 0 {
		session.Errors = fields
		return exceptions.ErrFieldValidation(fields)
	}

	lockKey := session.SubmitLockKey()
	lockTTL := time.Duration(uc.InternalConfig.SubmitLock.TTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return err
	}
	if !acquired {
		return exceptions.ErrSubmissionInProgress(lockKey)
	}
	defer func() {
		if err := uc.LockService.Unlock(ctx, lockKey, lockValue); err != nil {
			uc.Log.Error("registrationUsecase.Submit error releasing submit lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}()

	now := uc.Now()
	code, err := utils.GenerateAppointmentCode(now)
	if err != nil {
		return exceptions.ErrServerProcess(err)
	}

	err = uc.markSubmitting(ctx, session, code)
	if err != nil {
		return err
	}

	appointment, submitErr := uc.createAppointment(ctx, session, code, now)
	if submitErr != nil {
		if err := uc.clearSubmitting(ctx, session); err != nil {
			uc.Log.Error("registrationUsecase.Submit error clearing submitting flag",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
		session.GeneralError = constvars.ErrClientBookingFailedRetry
		if customErr, ok := exceptions.As(submitErr); ok {
			session.GeneralError = customErr.ClientMessage
		}
		uc.Log.Error("registrationUsecase.Submit error creating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentCodeKey, code),
			zap.Error(submitErr),
		)
		return submitErr
	}

	err = uc.DraftStore.Clear(ctx,
		session.DraftKey(constvars.DraftKeyFormData),
		session.DraftKey(constvars.DraftKeyStep),
	)
	if err != nil {
		// The flag stays so the surviving draft comes back as a recovery.
		uc.Log.Error("registrationUsecase.Submit error clearing draft, keeping submitting flag",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentCodeKey, code),
			zap.Error(err),
		)
	} else if err := uc.clearSubmitting(ctx, session); err != nil {
		uc.Log.Error("registrationUsecase.Submit error clearing submitting flag",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	session.Appointment = appointment
	session.HasDraft = false
	session.Step = models.StepConfirmation

	uc.Log.Info("registrationUsecase.Submit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingAppointmentCodeKey, appointment.Code),
		zap.String(constvars.LoggingPatientIDKey, appointment.PatientID),
		zap.String(constvars.LoggingStatusKey, string(appointment.Status)),
	)
	return nil
}

func (uc *registrationUsecase) Abandon(ctx context.Context, session *models.WorkflowSession) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("registrationUsecase.Abandon called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkflowKey, string(session.Workflow)),
	)

	if err := checkSession(session); err != nil {
		return err
	}

	err := uc.DraftStore.Clear(ctx, session.DraftKeys()...)
	if err != nil {
		return err
	}

	*session = *models.NewWorkflowSession(session.Workflow, session.OwnerID)
	return nil
}

// createAppointment runs the write sequence: provision a new walk-in, work
// out the dose, write the appointment, then merge medical history. A
// provisioned patient is discarded again if the appointment is not written.
func (uc *registrationUsecase) createAppointment(ctx context.Context, session *models.WorkflowSession, code string, now time.Time) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	form := &session.Form

	patientID, provisioned, err := uc.resolvePatient(ctx, session)
	if err != nil {
		return nil, err
	}

	status, stamps := appointments.InitialStatus(session.Workflow)
	appointment := &models.Appointment{
		Code:            code,
		PatientID:       patientID,
		Type:            form.AppointmentType,
		Branch:          form.Schedule.Branch,
		AppointmentDate: form.Schedule.AppointmentDate,
		TimeSlot:        form.Schedule.TimeSlot,
		Status:          status,
		CreatedAt:       now,
		CreatedBy:       session.OwnerID,
	}
	for _, field := range stamps {
		appointment.Stamp(field, now)
	}

	switch form.AppointmentType {
	case models.AppointmentTypeIncident:
		label, err := uc.DoseScheduler.NextDose(form.Incident.IncidentDate, form.Schedule.AppointmentDate)
		if err != nil {
			uc.compensate(ctx, patientID, provisioned)
			return nil, err
		}
		appointment.Incident = &models.IncidentDetail{
			DoseLabel:               label,
			IncidentDate:            form.Incident.IncidentDate,
			Exposures:               form.Incident.Exposures,
			AnimalType:              form.Incident.AnimalType,
			BiteLocation:            form.Incident.BiteLocation,
			AnimalVaccinationStatus: form.Incident.AnimalVaccinationStatus,
		}
	case models.AppointmentTypeFollowUp:
		appointment.FollowUp = &models.FollowUpDetail{
			PrimaryReason:      form.FollowUp.PrimaryReason,
			NewConditions:      form.FollowUp.NewConditions,
			PolicyConfirmation: form.FollowUp.PolicyConfirmation,
		}
	}

	_, err = uc.AppointmentRepository.Create(ctx, appointment)
	if err != nil {
		uc.compensate(ctx, patientID, provisioned)
		if _, ok := exceptions.As(err); !ok {
			err = exceptions.ErrStoreWrite(err, recordstore.JoinPath(constvars.StorePathAppointments, patientID))
		}
		return nil, err
	}

	if appointment.Type == models.AppointmentTypeIncident {
		history := &models.MedicalHistory{
			Allergies:            form.Incident.Allergies,
			HasPriorVaccination:  form.Incident.HasPriorVaccination,
			PriorVaccinationDate: form.Incident.PriorVaccinationDate,
			UpdatedAt:            now,
		}
		err = uc.PatientRepository.MergeMedicalHistory(ctx, patientID, history)
		if err != nil {
			uc.Log.Warn("registrationUsecase.Submit error merging medical history",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingPatientIDKey, patientID),
				zap.Error(err),
			)
		}
	}

	return appointment, nil
}

// resolvePatient returns the id the appointment is written under and
// whether it was provisioned for this submission.
func (uc *registrationUsecase) resolvePatient(ctx context.Context, session *models.WorkflowSession) (string, bool, error) {
	form := &session.Form
	if !session.Workflow.StaffAssisted() {
		return session.OwnerID, false, nil
	}

	if form.NeedsProvisioning(session.Workflow) {
		patientID, err := uc.ProvisioningService.Provision(ctx, form, session.OwnerID)
		if err != nil {
			return "", false, err
		}
		return patientID, true, nil
	}

	if form.SelectedPatientID == "" {
		return "", false, exceptions.ErrMissingPatientSelection(nil)
	}
	patient, err := uc.PatientRepository.FindByID(ctx, form.SelectedPatientID)
	if err != nil {
		return "", false, err
	}
	return patient.ID, false, nil
}

func (uc *registrationUsecase) compensate(ctx context.Context, patientID string, provisioned bool) {
	if !provisioned {
		return
	}
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	err := uc.ProvisioningService.Discard(ctx, patientID)
	if err != nil {
		uc.Log.Error("registrationUsecase.Submit error discarding provisional patient, leaving it to the orphan reaper",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return
	}
	uc.Log.Info("registrationUsecase.Submit discarded provisional patient",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
}

// persist writes form and step. Confirmation is never persisted.
func (uc *registrationUsecase) persist(ctx context.Context, session *models.WorkflowSession) error {
	if session.Step == models.StepConfirmation {
		return nil
	}

	err := uc.DraftStore.Save(ctx, session.DraftKey(constvars.DraftKeyFormData), session.Form)
	if err != nil {
		return err
	}
	err = uc.DraftStore.Save(ctx, session.DraftKey(constvars.DraftKeyStep), session.Step)
	if err != nil {
		return err
	}
	session.HasDraft = true
	return nil
}

func (uc *registrationUsecase) markSubmitting(ctx context.Context, session *models.WorkflowSession, code string) error {
	err := uc.persist(ctx, session)
	if err != nil {
		return err
	}
	err = uc.DraftStore.Save(ctx, session.DraftKey(constvars.DraftKeyAppointmentID), code)
	if err != nil {
		return err
	}
	return uc.DraftStore.Save(ctx, session.DraftKey(constvars.DraftKeySubmitting), true)
}

func (uc *registrationUsecase) clearSubmitting(ctx context.Context, session *models.WorkflowSession) error {
	return uc.DraftStore.Clear(ctx,
		session.DraftKey(constvars.DraftKeySubmitting),
		session.DraftKey(constvars.DraftKeyAppointmentID),
	)
}

func checkSession(session *models.WorkflowSession) error {
	if !session.Workflow.Valid() {
		return exceptions.ErrUnknownWorkflow(nil, string(session.Workflow))
	}
	if session.OwnerID == "" {
		return exceptions.ErrNotAuthorized(nil)
	}
	if !session.Step.Valid() {
		return exceptions.ErrStepOutOfRange(int(session.Step))
	}
	return nil
}
