package contracts

import (
	"bitecare-service/internal/app/models"
	"context"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	FindByID(ctx context.Context, patientID string) (*models.Patient, error)
	FindAll(ctx context.Context) ([]models.Patient, error)
	Delete(ctx context.Context, patientID string) error
	MergeMedicalHistory(ctx context.Context, patientID string, history *models.MedicalHistory) error
}

type ProvisioningService interface {
	Provision(ctx context.Context, form *models.RegistrationForm, actingStaffID string) (string, error)
	Discard(ctx context.Context, patientID string) error
}
