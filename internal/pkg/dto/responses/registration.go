package responses

import "bitecare-service/internal/app/models"

// RegistrationSession is the session as handed back to the client, which
// echoes step and form on the next registration call.
type RegistrationSession struct {
	*models.WorkflowSession
	Schedule []models.ScheduledDose `json:"schedule,omitempty"`
}
