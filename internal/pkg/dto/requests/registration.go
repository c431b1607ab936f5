package requests

import "bitecare-service/internal/app/models"

// RegistrationSession is the client-held part of a workflow session.
// Workflow and owner come from the URL and the caller's identity.
type RegistrationSession struct {
	Step models.Step             `json:"step"`
	Form models.RegistrationForm `json:"form"`
}
