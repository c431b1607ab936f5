package validation

import (
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/app/models"
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/exceptions"
	"bitecare-service/internal/pkg/utils"
	"context"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	fieldAppointmentType      = "appointmentType"
	fieldSelectedPatientID    = "selectedPatientId"
	fieldPersonal             = "personal"
	fieldSchedule             = "schedule"
	fieldIncident             = "incident"
	fieldFollowUp             = "followUp"
	fieldExposures            = "incident.exposures"
	fieldPriorVaccinationDate = "incident.priorVaccinationDate"
	tagRequired               = "required"
	tagAtLeastOneExposure     = "at_least_one_exposure"
)

var phoneNumberPattern = regexp.MustCompile(constvars.RegexPhoneNumberGeneral)

type formValidator struct {
	validate *validator.Validate
	now      func() time.Time
	Log      *zap.Logger
}

// NewFormValidator builds the registration form validator. now decides what
// "today" is for the date rules; nil means time.Now.
func NewFormValidator(logger *zap.Logger, now func() time.Time) contracts.FormValidator {
	if now == nil {
		now = time.Now
	}
	v := &formValidator{
		validate: validator.New(),
		now:      now,
		Log:      logger,
	}
	v.validate.RegisterTagNameFunc(jsonFieldName)
	v.validate.RegisterValidation("phone_number", validatePhoneNumber)
	v.validate.RegisterValidation("not_past_date", v.validateNotPastDate)
	v.validate.RegisterValidation("not_future_date", v.validateNotFutureDate)
	return v
}

func (v *formValidator) ValidateStep(ctx context.Context, workflow models.Workflow, step models.Step, form *models.RegistrationForm) map[string]string {
	var fields map[string]string
	switch step {
	case models.StepSelectReason:
		fields = v.validateReason(workflow, form)
	case models.StepDetailsForm:
		fields = v.validateDetails(workflow, form)
	case models.StepConfirmation:
		fields = map[string]string{}
	default:
		fields = map[string]string{"step": "is invalid"}
	}

	if len(fields) > 0 {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		v.Log.Info("formValidator.ValidateStep rejected step",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingWorkflowKey, string(workflow)),
			zap.Int(constvars.LoggingStepKey, int(step)),
			zap.Any(constvars.LoggingDataKey, fields),
		)
	}
	return fields
}

func (v *formValidator) ValidateReschedule(ctx context.Context, reschedule *models.Reschedule) map[string]string {
	fields := map[string]string{}
	if reschedule == nil {
		fields["reschedule"] = constvars.CustomValidationErrorMessages[tagRequired]
		return fields
	}
	v.mergeStruct(fields, "", reschedule)
	return fields
}

func (v *formValidator) validateReason(workflow models.Workflow, form *models.RegistrationForm) map[string]string {
	fields := map[string]string{}
	if !form.AppointmentType.Valid() {
		if form.AppointmentType == "" {
			fields[fieldAppointmentType] = constvars.CustomValidationErrorMessages[tagRequired]
		} else {
			fields[fieldAppointmentType] = "must be one of [Incident, FollowUp]"
		}
	}
	if workflow.StaffAssisted() && form.HasPatientRecord && strings.TrimSpace(form.SelectedPatientID) == "" {
		fields[fieldSelectedPatientID] = constvars.CustomValidationErrorMessages[tagRequired]
	}
	return fields
}

// validateDetails checks the identity of a new walk-in patient before
// anything else, so front-desk staff fix who the patient is first.
func (v *formValidator) validateDetails(workflow models.Workflow, form *models.RegistrationForm) map[string]string {
	fields := v.validateReason(workflow, form)
	if len(fields) > 0 {
		return fields
	}

	if form.NeedsProvisioning(workflow) {
		if form.Personal == nil {
			fields[fieldPersonal] = constvars.CustomValidationErrorMessages[tagRequired]
			return fields
		}
		v.mergeStruct(fields, fieldPersonal, form.Personal)
		if len(fields) > 0 {
			return fields
		}
	}

	v.mergeStruct(fields, fieldSchedule, &form.Schedule)

	switch form.AppointmentType {
	case models.AppointmentTypeIncident:
		if form.Incident == nil {
			fields[fieldIncident] = constvars.CustomValidationErrorMessages[tagRequired]
			break
		}
		v.mergeStruct(fields, fieldIncident, form.Incident)
		if !form.Incident.Exposures.Any() {
			fields[fieldExposures] = constvars.CustomValidationErrorMessages[tagAtLeastOneExposure]
		}
		if form.Incident.HasPriorVaccination && form.Incident.PriorVaccinationDate == "" {
			fields[fieldPriorVaccinationDate] = constvars.CustomValidationErrorMessages[tagRequired]
		}
	case models.AppointmentTypeFollowUp:
		if form.FollowUp == nil {
			fields[fieldFollowUp] = constvars.CustomValidationErrorMessages[tagRequired]
			break
		}
		v.mergeStruct(fields, fieldFollowUp, form.FollowUp)
	}
	return fields
}

func (v *formValidator) mergeStruct(fields map[string]string, prefix string, s interface{}) {
	err := v.validate.Struct(s)
	if err == nil {
		return
	}
	for key, message := range exceptions.FormatValidationErrors(err) {
		if prefix != "" {
			key = prefix + "." + key
		}
		if _, exists := fields[key]; !exists {
			fields[key] = message
		}
	}
}

func (v *formValidator) validateNotPastDate(fl validator.FieldLevel) bool {
	date, err := utils.ParseDate(fl.Field().String())
	if err != nil {
		return false
	}
	return !utils.IsBeforeToday(date, v.now())
}

func (v *formValidator) validateNotFutureDate(fl validator.FieldLevel) bool {
	date, err := utils.ParseDate(fl.Field().String())
	if err != nil {
		return false
	}
	return !utils.IsAfterToday(date, v.now())
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return phoneNumberPattern.MatchString(fl.Field().String())
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
