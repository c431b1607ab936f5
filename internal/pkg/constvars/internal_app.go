package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY ContextKey = "request_id"
	CONTEXT_ACTOR_ID_KEY   ContextKey = "actor_id"
	CONTEXT_ACTOR_ROLE_KEY ContextKey = "actor_role"

	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

const (
	ActorRolePatient = "patient"
	ActorRoleStaff   = "staff"
)

const (
	DateLayout            = "2006-01-02"
	CompactDateLayout     = "20060102"
	AppointmentCodePrefix = "APT"
	PatientCodePrefix     = "P"
	WalkInPatientIDPrefix = "walkin_"
	WalkInRandomLength    = 9
	CodeRandomDigits      = 4
)

const (
	AccountTypeWalkIn     = "walkin"
	AccountTypeRegistered = "registered"
)

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderConnection   = "Connection"
)

const (
	ServiceName            = "bitecare-service"
	EnvironmentProduction  = "production"
	EnvironmentDevelopment = "development"
)
