package controllers

import (
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/app/delivery/http/middlewares"
	"bitecare-service/internal/app/models"
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/dto/requests"
	"bitecare-service/internal/pkg/exceptions"
	"bitecare-service/internal/pkg/utils"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
	}
}

func (ctrl *AppointmentController) FindAllByPatient(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	actor := middlewares.ActorFromContext(r.Context())
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	ctrl.Log.Info("AppointmentController.FindAllByPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), constvars.RequestTimeoutInSeconds*time.Second)
	defer cancel()

	appointments, err := ctrl.AppointmentUsecase.FindAllByPatient(ctx, actor, patientID)
	if err != nil {
		ctrl.Log.Error("AppointmentController.FindAllByPatient error calling AppointmentUsecase.FindAllByPatient",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	ctrl.Log.Info("AppointmentController.FindAllByPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(appointments)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentsSuccessMessage, appointments)
}

func (ctrl *AppointmentController) Transition(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	actor := middlewares.ActorFromContext(r.Context())
	patientID := chi.URLParam(r, constvars.URLParamPatientID)
	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)
	rawAction := chi.URLParam(r, constvars.URLParamAction)

	action, ok := models.ParseAppointmentAction(rawAction)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLParamAction))
		return
	}

	var request requests.AppointmentTransition
	err := utils.ParseJSONBody(r, &request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.Transition called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingActionKey, string(action)),
	)

	ctx, cancel := context.WithTimeout(r.Context(), constvars.RequestTimeoutInSeconds*time.Second)
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.Transition(ctx, actor, patientID, appointmentID, action, request.Reschedule)
	if err != nil {
		ctrl.Log.Error("AppointmentController.Transition error calling AppointmentUsecase.Transition",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, deadlineAware(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.TransitionAppointmentSuccessMessage, appointment)
}

// Stream pushes the patient's full appointment list as a server-sent event
// every time it changes, until the client goes away.
func (ctrl *AppointmentController) Stream(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	actor := middlewares.ActorFromContext(r.Context())
	patientID := chi.URLParam(r, constvars.URLParamPatientID)

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerProcess(fmt.Errorf("streaming unsupported")))
		return
	}

	ctrl.Log.Info("AppointmentController.Stream called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingActorIDKey, actor.ID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	ctx := r.Context()
	updates, stop, err := ctrl.AppointmentUsecase.Watch(ctx, actor, patientID)
	if err != nil {
		ctrl.Log.Error("AppointmentController.Stream error calling AppointmentUsecase.Watch",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	defer stop()

	w.Header().Set(constvars.HeaderContentType, constvars.MIMETextEventStream)
	w.Header().Set(constvars.HeaderCacheControl, "no-cache")
	w.Header().Set(constvars.HeaderConnection, "keep-alive")
	w.WriteHeader(constvars.StatusOK)
	flusher.Flush()

	heartbeat := time.NewTicker(constvars.SSEHeartbeatInSeconds * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			ctrl.Log.Info("AppointmentController.Stream client disconnected",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case appointments, open := <-updates:
			if !open {
				return
			}
			payload, err := json.Marshal(appointments)
			if err != nil {
				ctrl.Log.Error("AppointmentController.Stream error marshalling snapshot",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.Error(err),
				)
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", constvars.SSEEventAppointments, payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
