package exceptions

import (
	"bitecare-service/internal/pkg/constvars"
	"fmt"
)

var (
	ErrFieldValidation = func(fields map[string]string) *CustomError {
		customErr := BuildNewCustomError(nil, ErrKindValidation, constvars.StatusUnprocessableEntity, constvars.ErrClientPleaseFixHighlightedFields, constvars.ErrDevValidationFailed)
		customErr.Fields = fields
		return customErr
	}
	ErrURLParamValidation = func(err error, paramName string) *CustomError {
		return BuildNewCustomError(err, ErrKindBadRequest, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamValidation, paramName))
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindBadRequest, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotParseTime = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindBadRequest, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseTime)
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrNotAuthorized = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindBadRequest, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevUnauthorized)
	}
	ErrForeignPatient = func(actorID, patientID string) *CustomError {
		return BuildNewCustomError(nil, ErrKindBadRequest, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevForeignPatient, actorID, patientID))
	}
	ErrStaffOnly = func(actorID string) *CustomError {
		return BuildNewCustomError(nil, ErrKindBadRequest, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevStaffOnly, actorID))
	}
	ErrPatientOnly = func(actorID string) *CustomError {
		return BuildNewCustomError(nil, ErrKindBadRequest, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevPatientOnly, actorID))
	}
	ErrUnknownWorkflow = func(err error, workflow string) *CustomError {
		return BuildNewCustomError(err, ErrKindBadRequest, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevUnknownWorkflow, workflow))
	}
	ErrStepOutOfRange = func(step int) *CustomError {
		return BuildNewCustomError(nil, ErrKindBadRequest, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevStepOutOfRange, step))
	}
	ErrMissingPatientSelection = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindBadRequest, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevMissingPatientSelection)
	}

	// Appointment lifecycle
	ErrInvalidTransition = func(action, status string) *CustomError {
		return BuildNewCustomError(nil, ErrKindInvalidTransition, constvars.StatusConflict, constvars.ErrClientActionNotAllowed, fmt.Sprintf(constvars.ErrDevInvalidTransition, action, status))
	}
	ErrTransitionNotPermitted = func(actor, action, status string) *CustomError {
		return BuildNewCustomError(nil, ErrKindInvalidTransition, constvars.StatusForbidden, constvars.ErrClientActionNotAllowed, fmt.Sprintf(constvars.ErrDevTransitionNotPermitted, actor, action, status))
	}
	ErrIncidentInFuture = func(incidentDate, evaluationDate string) *CustomError {
		return BuildNewCustomError(nil, ErrKindValidation, constvars.StatusUnprocessableEntity, constvars.CustomValidationErrorMessages["not_future_date"], fmt.Sprintf(constvars.ErrDevIncidentInFuture, incidentDate, evaluationDate))
	}
	ErrProvisioning = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindProvisioning, constvars.StatusBadGateway, constvars.ErrClientPatientRegistrationFailed, constvars.ErrDevProvisionPatient)
	}
	ErrDiscardNonProvisional = func(patientID string) *CustomError {
		return BuildNewCustomError(nil, ErrKindBadRequest, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevDiscardNonProvisional, patientID))
	}
	ErrSubmissionInProgress = func(key string) *CustomError {
		return BuildNewCustomError(nil, ErrKindSubmissionInProgress, constvars.StatusConflict, constvars.ErrClientSubmissionInProgress, fmt.Sprintf(constvars.ErrDevSubmissionInProgress, key))
	}

	// Record store
	ErrStoreWrite = func(err error, path string) *CustomError {
		return BuildNewCustomError(err, ErrKindStoreWrite, constvars.StatusBadGateway, constvars.ErrClientBookingFailedRetry, fmt.Sprintf(constvars.ErrDevStoreWrite, path))
	}
	ErrStoreRead = func(err error, path string) *CustomError {
		return BuildNewCustomError(err, ErrKindStoreRead, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevStoreRead, path))
	}
	ErrStoreRemove = func(err error, path string) *CustomError {
		return BuildNewCustomError(err, ErrKindStoreWrite, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevStoreRemove, path))
	}
	ErrStoreSubscribe = func(err error, path string) *CustomError {
		return BuildNewCustomError(err, ErrKindStoreRead, constvars.StatusBadGateway, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevStoreSubscribe, path))
	}
	ErrConcurrentUpdate = func(path string) *CustomError {
		return BuildNewCustomError(nil, ErrKindConcurrentUpdate, constvars.StatusConflict, constvars.ErrClientAppointmentChanged, fmt.Sprintf(constvars.ErrDevConcurrentUpdate, path))
	}
	ErrRecordNotFound = func(path string) *CustomError {
		return BuildNewCustomError(nil, ErrKindNotFound, constvars.StatusNotFound, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevRecordNotFound, path))
	}
	ErrAppointmentNotFound = func(path string) *CustomError {
		return BuildNewCustomError(nil, ErrKindNotFound, constvars.StatusNotFound, constvars.ErrClientAppointmentNotFound, fmt.Sprintf(constvars.ErrDevRecordNotFound, path))
	}
	ErrPatientNotFound = func(path string) *CustomError {
		return BuildNewCustomError(nil, ErrKindNotFound, constvars.StatusNotFound, constvars.ErrClientPatientNotFound, fmt.Sprintf(constvars.ErrDevRecordNotFound, path))
	}
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindStoreRead, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument)
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindStoreRead, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocuments)
	}
	ErrMongoDBDecodeDocument = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindStoreRead, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToDecodeDocument)
	}

	// Redis
	ErrRedisGetNoData = func(err error, redisKey string) *CustomError {
		return BuildNewCustomError(err, ErrKindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisGetNoData, redisKey))
	}
	ErrRedisSet = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData)
	}
	ErrRedisDelete = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData)
	}
	ErrRedisRefreshLock = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisRefreshLock)
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, exchange string) *CustomError {
		return BuildNewCustomError(err, ErrKindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, exchange))
	}
	ErrRabbitMQDeclare = func(err error, exchange string) *CustomError {
		return BuildNewCustomError(err, ErrKindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQDeclare, exchange))
	}
	ErrRabbitMQConsume = func(err error, exchange string) *CustomError {
		return BuildNewCustomError(err, ErrKindInternal, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQConsume, exchange))
	}

	// Default Server
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindInternal, constvars.StatusServiceUnavailable, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}
	ErrServerProcess = func(err error) *CustomError {
		return BuildNewCustomError(err, ErrKindInternal, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevServerProcess)
	}
)
