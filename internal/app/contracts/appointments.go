package contracts

import (
	"bitecare-service/internal/app/models"
	"context"
)

type AppointmentUsecase interface {
	FindAllByPatient(ctx context.Context, actor models.Actor, patientID string) ([]models.Appointment, error)
	Transition(ctx context.Context, actor models.Actor, patientID, appointmentID string, action models.AppointmentAction, reschedule *models.Reschedule) (*models.Appointment, error)
	Watch(ctx context.Context, actor models.Actor, patientID string) (<-chan []models.Appointment, func(), error)
}

type AppointmentRepository interface {
	// Create stores appointment under its patient and returns the store key.
	Create(ctx context.Context, appointment *models.Appointment) (string, error)
	FindByID(ctx context.Context, patientID, appointmentID string) (*models.Appointment, error)
	FindAllByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	// UpdateIfStatus writes fields while the stored status is still expected.
	UpdateIfStatus(ctx context.Context, patientID, appointmentID string, expected models.AppointmentStatus, fields map[string]interface{}) error
	Subscribe(ctx context.Context, patientID string) (<-chan []models.Appointment, func(), error)
}

type DoseScheduler interface {
	NextDose(incidentDate, evaluationDate string) (models.DoseLabel, error)
	Schedule(incidentDate string) ([]models.ScheduledDose, error)
}
