package controllers

import (
	"bitecare-service/internal/app/config"
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/dto/responses"
	"bitecare-service/internal/pkg/exceptions"
	"bitecare-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type DoseController struct {
	Log            *zap.Logger
	DoseScheduler  contracts.DoseScheduler
	InternalConfig *config.InternalConfig
}

func NewDoseController(logger *zap.Logger, doseScheduler contracts.DoseScheduler, internalConfig *config.InternalConfig) *DoseController {
	return &DoseController{
		Log:            logger,
		DoseScheduler:  doseScheduler,
		InternalConfig: internalConfig,
	}
}

// Lookup reports the dose due on evaluationDate, which defaults to today in
// the clinic's time zone.
func (ctrl *DoseController) Lookup(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	incidentDate := r.URL.Query().Get(constvars.URLQueryParamIncidentDate)
	evaluationDate := r.URL.Query().Get(constvars.URLQueryParamEvaluationDate)

	ctrl.Log.Info("DoseController.Lookup called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.URLQueryParamIncidentDate, incidentDate),
		zap.String(constvars.URLQueryParamEvaluationDate, evaluationDate),
	)

	if incidentDate == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(nil, constvars.URLQueryParamIncidentDate))
		return
	}
	if evaluationDate == "" {
		evaluationDate = utils.FormatDate(ctrl.today())
	}

	label, err := ctrl.DoseScheduler.NextDose(incidentDate, evaluationDate)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	schedule, err := ctrl.DoseScheduler.Schedule(incidentDate)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("DoseController.Lookup succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoseLabelKey, string(label)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoseSuccessMessage, responses.DoseLookup{
		IncidentDate:   incidentDate,
		EvaluationDate: evaluationDate,
		DoseLabel:      label,
		Schedule:       schedule,
	})
}

func (ctrl *DoseController) today() time.Time {
	location, err := time.LoadLocation(ctrl.InternalConfig.App.Timezone)
	if err != nil {
		ctrl.Log.Warn("DoseController.today invalid time zone, using UTC",
			zap.String("timezone", ctrl.InternalConfig.App.Timezone),
			zap.Error(err),
		)
		location = time.UTC
	}
	return time.Now().In(location)
}
