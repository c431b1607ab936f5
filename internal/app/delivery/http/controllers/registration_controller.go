package controllers

import (
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/app/delivery/http/middlewares"
	"bitecare-service/internal/app/models"
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/dto/requests"
	"bitecare-service/internal/pkg/dto/responses"
	"bitecare-service/internal/pkg/exceptions"
	"bitecare-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RegistrationController struct {
	Log                 *zap.Logger
	RegistrationUsecase contracts.RegistrationUsecase
	DoseScheduler       contracts.DoseScheduler
}

func NewRegistrationController(logger *zap.Logger, registrationUsecase contracts.RegistrationUsecase, doseScheduler contracts.DoseScheduler) *RegistrationController {
	return &RegistrationController{
		Log:                 logger,
		RegistrationUsecase: registrationUsecase,
		DoseScheduler:       doseScheduler,
	}
}

type registrationStep func(ctx context.Context, session *models.WorkflowSession) error

func (ctrl *RegistrationController) Start(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	workflow, actor, err := ctrl.resolveCaller(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("RegistrationController.Start called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkflowKey, string(workflow)),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), constvars.RequestTimeoutInSeconds*time.Second)
	defer cancel()

	session, err := ctrl.RegistrationUsecase.Start(ctx, workflow, actor.ID)
	if err != nil {
		ctrl.Log.Error("RegistrationController.Start error calling RegistrationUsecase.Start",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RegistrationStartedMessage, ctrl.buildResponse(session))
}

func (ctrl *RegistrationController) UpdateForm(w http.ResponseWriter, r *http.Request) {
	ctrl.handleStep(w, r, "UpdateForm", constvars.RegistrationUpdatedMessage, nil)
}

func (ctrl *RegistrationController) Advance(w http.ResponseWriter, r *http.Request) {
	ctrl.handleStep(w, r, "Advance", constvars.RegistrationAdvancedMessage, ctrl.RegistrationUsecase.Advance)
}

func (ctrl *RegistrationController) Retreat(w http.ResponseWriter, r *http.Request) {
	ctrl.handleStep(w, r, "Retreat", constvars.RegistrationRetreatedMessage, ctrl.RegistrationUsecase.Retreat)
}

func (ctrl *RegistrationController) Submit(w http.ResponseWriter, r *http.Request) {
	ctrl.handleStep(w, r, "Submit", constvars.RegistrationSubmittedMessage, ctrl.RegistrationUsecase.Submit)
}

func (ctrl *RegistrationController) Abandon(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	workflow, actor, err := ctrl.resolveCaller(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("RegistrationController.Abandon called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkflowKey, string(workflow)),
	)

	ctx, cancel := context.WithTimeout(r.Context(), constvars.RequestTimeoutInSeconds*time.Second)
	defer cancel()

	session := models.NewWorkflowSession(workflow, actor.ID)
	err = ctrl.RegistrationUsecase.Abandon(ctx, session)
	if err != nil {
		ctrl.Log.Error("RegistrationController.Abandon error calling RegistrationUsecase.Abandon",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RegistrationAbandonedMessage, ctrl.buildResponse(session))
}

// handleStep rebuilds the session from the client echo and runs step on
// it. A nil step only replaces the form.
func (ctrl *RegistrationController) handleStep(w http.ResponseWriter, r *http.Request, name, message string, step registrationStep) {
	requestID := utils.GetRequestID(r.Context())

	workflow, actor, err := ctrl.resolveCaller(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	var request requests.RegistrationSession
	err = utils.ParseJSONBody(r, &request)
	if err != nil {
		ctrl.Log.Error("RegistrationController."+name+" error parsing body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("RegistrationController."+name+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingWorkflowKey, string(workflow)),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
		zap.Int(constvars.LoggingStepKey, int(request.Step)),
	)

	ctx, cancel := context.WithTimeout(r.Context(), constvars.RequestTimeoutInSeconds*time.Second)
	defer cancel()

	session := models.NewWorkflowSession(workflow, actor.ID)
	session.Step = request.Step

	if step == nil {
		err = ctrl.RegistrationUsecase.UpdateForm(ctx, session, request.Form)
	} else {
		session.Form = request.Form
		err = step(ctx, session)
	}
	if err != nil {
		ctrl.Log.Error("RegistrationController."+name+" error calling RegistrationUsecase."+name,
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	ctrl.Log.Info("RegistrationController."+name+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingStepKey, int(session.Step)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, ctrl.buildResponse(session))
}

// resolveCaller reads the workflow from the URL. Staff-assisted workflows
// are closed to patients, and self-service booking is closed to staff since
// the booking owner becomes the appointment's patient.
func (ctrl *RegistrationController) resolveCaller(r *http.Request) (models.Workflow, models.Actor, error) {
	workflow := models.Workflow(chi.URLParam(r, constvars.URLParamWorkflow))
	if !workflow.Valid() {
		return "", models.Actor{}, exceptions.ErrUnknownWorkflow(nil, string(workflow))
	}

	actor := middlewares.ActorFromContext(r.Context())
	switch workflow {
	case models.WorkflowWalkIn:
		if actor.Role != models.ActorRoleStaff {
			return "", models.Actor{}, exceptions.ErrStaffOnly(actor.ID)
		}
	case models.WorkflowBooking:
		if actor.Role != models.ActorRolePatient {
			return "", models.Actor{}, exceptions.ErrPatientOnly(actor.ID)
		}
	}
	return workflow, actor, nil
}

func (ctrl *RegistrationController) buildResponse(session *models.WorkflowSession) *responses.RegistrationSession {
	response := &responses.RegistrationSession{WorkflowSession: session}

	appointment := session.Appointment
	if appointment == nil || appointment.Incident == nil {
		return response
	}
	schedule, err := ctrl.DoseScheduler.Schedule(appointment.Incident.IncidentDate)
	if err != nil {
		ctrl.Log.Warn("RegistrationController.buildResponse error building dose schedule",
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		return response
	}
	response.Schedule = schedule
	return response
}

func deadlineAware(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return exceptions.ErrServerDeadlineExceeded(err)
	}
	return err
}
