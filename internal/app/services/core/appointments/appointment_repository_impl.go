package appointments

import (
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/app/models"
	"bitecare-service/internal/app/services/shared/recordstore"
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/exceptions"
	"context"
	"errors"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type appointmentRepository struct {
	Store contracts.RecordStore
	Log   *zap.Logger
}

func NewAppointmentRepository(store contracts.RecordStore, logger *zap.Logger) contracts.AppointmentRepository {
	return &appointmentRepository{
		Store: store,
		Log:   logger,
	}
}

func appointmentsPath(patientID string) string {
	return recordstore.JoinPath(constvars.StorePathAppointments, patientID)
}

func appointmentPath(patientID, appointmentID string) string {
	return recordstore.JoinPath(constvars.StorePathAppointments, patientID, appointmentID)
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *models.Appointment) (string, error) {
	appointmentID := primitive.NewObjectID().Hex()
	appointment.ID = appointmentID

	err := r.Store.Set(ctx, appointmentPath(appointment.PatientID, appointmentID), appointment)
	if err != nil {
		appointment.ID = ""
		return "", err
	}
	return appointmentID, nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, patientID, appointmentID string) (*models.Appointment, error) {
	path := appointmentPath(patientID, appointmentID)
	record, err := r.Store.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, exceptions.ErrAppointmentNotFound(path)
	}

	var appointment models.Appointment
	if err := record.Decode(&appointment); err != nil {
		return nil, exceptions.ErrMongoDBDecodeDocument(err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAllByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	records, err := r.Store.List(ctx, appointmentsPath(patientID))
	if err != nil {
		return nil, err
	}
	return decodeAppointments(records)
}

func (r *appointmentRepository) UpdateIfStatus(ctx context.Context, patientID, appointmentID string, expected models.AppointmentStatus, fields map[string]interface{}) error {
	path := appointmentPath(patientID, appointmentID)
	err := r.Store.UpdateIf(ctx, path, "status", string(expected), fields)
	if errors.Is(err, exceptions.ErrKindNotFound) {
		return exceptions.ErrAppointmentNotFound(path)
	}
	return err
}

func (r *appointmentRepository) Subscribe(ctx context.Context, patientID string) (<-chan []models.Appointment, func(), error) {
	snapshots, stopSnapshots, err := r.Store.Subscribe(ctx, appointmentsPath(patientID))
	if err != nil {
		return nil, nil, err
	}

	stop := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(stop)
			stopSnapshots()
		})
	}

	out := make(chan []models.Appointment, 1)
	go func() {
		defer close(out)
		defer cancel()
		for snapshot := range snapshots {
			appointments, err := decodeAppointments(snapshot.Children)
			if err != nil {
				r.Log.Error("appointmentRepository.Subscribe error decoding snapshot",
					zap.String(constvars.LoggingPatientIDKey, patientID),
					zap.Error(err),
				)
				continue
			}
			select {
			case out <- appointments:
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return out, cancel, nil
}

func decodeAppointments(records []contracts.Record) ([]models.Appointment, error) {
	appointments := make([]models.Appointment, 0, len(records))
	for _, record := range records {
		var appointment models.Appointment
		if err := record.Decode(&appointment); err != nil {
			return nil, exceptions.ErrMongoDBDecodeDocument(err)
		}
		appointments = append(appointments, appointment)
	}
	return appointments, nil
}
