package provisioning

import (
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/app/models"
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/exceptions"
	"bitecare-service/internal/pkg/utils"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

var errMissingPersonalDetails = errors.New("walk-in form carries no personal details")

type provisioningService struct {
	PatientRepository contracts.PatientRepository
	Now               func() time.Time
	Log               *zap.Logger
}

func NewProvisioningService(patientRepository contracts.PatientRepository, logger *zap.Logger) contracts.ProvisioningService {
	return &provisioningService{
		PatientRepository: patientRepository,
		Now:               time.Now,
		Log:               logger,
	}
}

// Provision writes a new walk-in patient from the form's personal details
// and returns its provisional id. Every call issues a fresh id.
func (s *provisioningService) Provision(ctx context.Context, form *models.RegistrationForm, actingStaffID string) (string, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("provisioningService.Provision called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActorIDKey, actingStaffID),
	)

	if form.Personal == nil {
		return "", exceptions.ErrProvisioning(errMissingPersonalDetails)
	}

	now := s.Now()
	patientID, err := utils.GenerateWalkInPatientID(now)
	if err != nil {
		return "", exceptions.ErrProvisioning(err)
	}
	patientCode, err := utils.GeneratePatientCode(now)
	if err != nil {
		return "", exceptions.ErrProvisioning(err)
	}

	personal := form.Personal
	patient := &models.Patient{
		ID:               patientID,
		PatientCode:      patientCode,
		Name:             personal.Name,
		DateOfBirth:      personal.DateOfBirth,
		Sex:              personal.Sex,
		Address:          personal.Address,
		Contact:          personal.Contact,
		EmergencyContact: personal.EmergencyContact,
		Consent:          personal.Consent,
		AccountType:      constvars.AccountTypeWalkIn,
		HasAuthAccount:   false,
		CreatedBy:        actingStaffID,
		CreatedAt:        now,
	}

	err = s.PatientRepository.Create(ctx, patient)
	if err != nil {
		s.Log.Error("provisioningService.Provision error calling PatientRepository.Create",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return "", exceptions.ErrProvisioning(err)
	}

	s.Log.Info("provisioningService.Provision succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return patientID, nil
}

// Discard removes a provisional patient. Registered patients are never
// removed through here.
func (s *provisioningService) Discard(ctx context.Context, patientID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("provisioningService.Discard called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	if !utils.IsProvisionalPatientID(patientID) {
		return exceptions.ErrDiscardNonProvisional(patientID)
	}

	err := s.PatientRepository.Delete(ctx, patientID)
	if err != nil {
		s.Log.Error("provisioningService.Discard error calling PatientRepository.Delete",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPatientIDKey, patientID),
			zap.Error(err),
		)
		return err
	}

	s.Log.Info("provisioningService.Discard succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)
	return nil
}
