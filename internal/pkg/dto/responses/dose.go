package responses

import "bitecare-service/internal/app/models"

type DoseLookup struct {
	IncidentDate   string                 `json:"incidentDate"`
	EvaluationDate string                 `json:"evaluationDate"`
	DoseLabel      models.DoseLabel       `json:"doseLabel"`
	Schedule       []models.ScheduledDose `json:"schedule"`
}
