package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingResponseLengthKey = "response_length"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"

	LoggingActorIDKey          = "actor_id"
	LoggingActorRoleKey        = "actor_role"
	LoggingPatientIDKey        = "patient_id"
	LoggingAppointmentIDKey    = "appointment_id"
	LoggingAppointmentCodeKey  = "appointment_code"
	LoggingAppointmentCountKey = "appointment_count"
	LoggingStatusKey           = "status"
	LoggingNextStatusKey       = "next_status"
	LoggingActionKey           = "action"
	LoggingDoseLabelKey        = "dose_label"
	LoggingWorkflowKey         = "workflow"
	LoggingStepKey             = "step"
	LoggingStorePathKey        = "store_path"
	LoggingRoutingKey          = "routing_key"
	LoggingRedisKey            = "redis_key"

	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
)
