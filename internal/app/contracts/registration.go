package contracts

import (
	"bitecare-service/internal/app/models"
	"context"
)

type RegistrationUsecase interface {
	Start(ctx context.Context, workflow models.Workflow, ownerID string) (*models.WorkflowSession, error)
	UpdateForm(ctx context.Context, session *models.WorkflowSession, form models.RegistrationForm) error
	Advance(ctx context.Context, session *models.WorkflowSession) error
	Retreat(ctx context.Context, session *models.WorkflowSession) error
	Submit(ctx context.Context, session *models.WorkflowSession) error
	Abandon(ctx context.Context, session *models.WorkflowSession) error
}

// FormValidator returns a field path to message map; an empty map means the
// step is valid.
type FormValidator interface {
	ValidateStep(ctx context.Context, workflow models.Workflow, step models.Step, form *models.RegistrationForm) map[string]string
	ValidateReschedule(ctx context.Context, reschedule *models.Reschedule) map[string]string
}
