package requests

import "bitecare-service/internal/app/models"

type AppointmentTransition struct {
	Reschedule *models.Reschedule `json:"reschedule,omitempty"`
}
