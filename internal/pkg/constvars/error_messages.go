package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":              "is required",
	"email":                 "must be a valid email",
	"min":                   "must be at least %s characters long",
	"max":                   "maximum at %s characters long",
	"len":                   "must be %s characters long",
	"oneof":                 "must be one of [%s]",
	"eq":                    "must be %s",
	"datetime":              "must be a date in %s format",
	"phone_number":          "phone number must be in international format, e.g. +639171234567",
	"not_past_date":         "date cannot be in the past",
	"not_future_date":       "date cannot be in the future",
	"at_least_one_exposure": "select at least one type of exposure",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"len":      true,
	"oneof":    true,
	"eq":       true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the server is taking too long to respond, please try again"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientPleaseFixHighlightedFields    = "please correct the highlighted fields"
	ErrClientActionNotAllowed              = "this action is not allowed for the appointment's current status"
	ErrClientAppointmentChanged            = "the appointment was changed by someone else, please refresh and try again"
	ErrClientAppointmentNotFound           = "appointment not found"
	ErrClientPatientNotFound               = "patient not found"
	ErrClientBookingFailedRetry            = "we could not save the booking, please try again"
	ErrClientPatientRegistrationFailed     = "we could not register the patient, please try again"
	ErrClientSubmissionInProgress          = "this booking is already being submitted"
	ErrClientTooManyRequests               = "too many requests, please slow down"
	ErrClientRecoveryNeeded                = "your previous submission was interrupted, please review the details and submit again"
)

// Error messages for developers
const (
	ErrDevInvalidInput            = "invalid input"
	ErrDevCannotParseJSON         = "cannot parse JSON into struct or other data types"
	ErrDevCannotParseTime         = "cannot parse time into the given format"
	ErrDevCannotMarshalJSON       = "cannot convert struct or other data types to JSON"
	ErrDevUnauthorized            = "unauthorized access"
	ErrDevServerProcess           = "server failed to process the request"
	ErrDevServerDeadlineExceeded  = "server took too long to process the request"
	ErrDevValidationFailed        = "validation failed"
	ErrDevURLParamValidation      = "parameter %s validation failed"
	ErrDevInvalidTransition       = "invalid transition: action %s from status %s"
	ErrDevTransitionNotPermitted  = "invalid transition: actor %s may not %s an appointment in status %s"
	ErrDevIncidentInFuture        = "incident date %s is after evaluation date %s"
	ErrDevProvisionPatient        = "failed to provision walk-in patient"
	ErrDevDiscardNonProvisional   = "refusing to discard non-provisional patient %s"
	ErrDevStoreWrite              = "failed to write record at path %s"
	ErrDevStoreRead               = "failed to read record at path %s"
	ErrDevStoreRemove             = "failed to remove record at path %s"
	ErrDevStoreSubscribe          = "failed to subscribe to path %s"
	ErrDevConcurrentUpdate        = "record at path %s changed since it was read"
	ErrDevRecordNotFound          = "record at path %s not found"
	ErrDevSubmissionInProgress    = "submit lock for %s is held by another request"
	ErrDevUnknownWorkflow         = "unknown workflow %s"
	ErrDevStepOutOfRange          = "step %d is out of range for this operation"
	ErrDevMissingPatientSelection = "staff booking for an existing patient has no selected patient"
	ErrDevTooManyRequests         = "rate limit exceeded"
	ErrDevStaffOnly               = "actor %s is not staff"
	ErrDevPatientOnly             = "actor %s is not a patient"
	ErrDevForeignPatient          = "actor %s may not access records of patient %s"

	// Redis
	ErrDevRedisGetNoData   = "no data found in redis for key %s"
	ErrDevRedisSetData     = "failed to set data to redis"
	ErrDevRedisDeleteData  = "failed to delete data from redis"
	ErrDevRedisRefreshLock = "failed to refresh redis lock"

	// RabbitMQ
	ErrDevRabbitMQPublishMessage = "failed to publish message to exchange %s"
	ErrDevRabbitMQConsume        = "failed to consume from exchange %s"
	ErrDevRabbitMQDeclare        = "failed to declare exchange %s"

	// MongoDB
	ErrDevDBFailedToFindDocument     = "failed to find document"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents"
	ErrDevDBFailedToDecodeDocument   = "failed to decode document"
)
