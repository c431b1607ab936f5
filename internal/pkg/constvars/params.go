package constvars

const (
	URLParamWorkflow      = "workflow"
	URLParamPatientID     = "patient_id"
	URLParamAppointmentID = "appointment_id"
	URLParamAction        = "action"
)

const (
	URLQueryParamIncidentDate   = "incidentDate"
	URLQueryParamEvaluationDate = "evaluationDate"
)
