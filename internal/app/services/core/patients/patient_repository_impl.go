package patients

import (
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/app/models"
	"bitecare-service/internal/app/services/shared/recordstore"
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/exceptions"
	"context"
	"time"

	"go.uber.org/zap"
)

type patientRepository struct {
	Store contracts.RecordStore
	Log   *zap.Logger
}

func NewPatientRepository(store contracts.RecordStore, logger *zap.Logger) contracts.PatientRepository {
	return &patientRepository{
		Store: store,
		Log:   logger,
	}
}

func patientPath(patientID string) string {
	return recordstore.JoinPath(constvars.StorePathUsers, patientID)
}

func medicalHistoryPath(patientID string) string {
	return recordstore.JoinPath(constvars.StorePathUsers, patientID, constvars.StorePathMedicalHistory)
}

func (r *patientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return r.Store.Set(ctx, patientPath(patient.ID), patient)
}

func (r *patientRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	path := patientPath(patientID)
	record, err := r.Store.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, exceptions.ErrPatientNotFound(path)
	}

	var patient models.Patient
	if err := record.Decode(&patient); err != nil {
		return nil, exceptions.ErrMongoDBDecodeDocument(err)
	}

	historyRecord, err := r.Store.Get(ctx, medicalHistoryPath(patientID))
	if err != nil {
		return nil, err
	}
	if historyRecord != nil {
		var history models.MedicalHistory
		if err := historyRecord.Decode(&history); err != nil {
			return nil, exceptions.ErrMongoDBDecodeDocument(err)
		}
		patient.MedicalHistory = &history
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(ctx context.Context) ([]models.Patient, error) {
	records, err := r.Store.List(ctx, constvars.StorePathUsers)
	if err != nil {
		return nil, err
	}

	patients := make([]models.Patient, 0, len(records))
	for _, record := range records {
		var patient models.Patient
		if err := record.Decode(&patient); err != nil {
			return nil, exceptions.ErrMongoDBDecodeDocument(err)
		}
		patients = append(patients, patient)
	}
	return patients, nil
}

// Delete removes the patient together with everything stored beneath it.
func (r *patientRepository) Delete(ctx context.Context, patientID string) error {
	return r.Store.Remove(ctx, patientPath(patientID))
}

// MergeMedicalHistory overwrites only the fields it carries and leaves the
// rest of the stored history alone.
func (r *patientRepository) MergeMedicalHistory(ctx context.Context, patientID string, history *models.MedicalHistory) error {
	updatedAt := history.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	fields := map[string]interface{}{
		"hasPriorVaccination": history.HasPriorVaccination,
		"updatedAt":           updatedAt,
	}
	if history.Allergies != "" {
		fields["allergies"] = history.Allergies
	}
	if history.PriorVaccinationDate != "" {
		fields["priorVaccinationDate"] = history.PriorVaccinationDate
	}
	return r.Store.Update(ctx, medicalHistoryPath(patientID), fields)
}
