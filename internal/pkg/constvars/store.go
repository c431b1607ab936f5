package constvars

// Record store paths
const (
	StorePathAppointments   = "appointments"
	StorePathUsers          = "users"
	StorePathMedicalHistory = "medicalHistory"
	StorePathSeparator      = "/"
)

// Draft store key suffixes, prefixed by the workflow name
const (
	DraftKeyFormData      = "FormData"
	DraftKeyStep          = "Step"
	DraftKeySubmitting    = "Submitting"
	DraftKeyAppointmentID = "AppointmentId"
	DraftKeyNamespace     = "draft"
	SubmitLockNamespace   = "submitlock"
	ReaperLeaderLockKey   = "reaper:leader"
)

const (
	MongoCollectionRecords = "records"
	ChangeFeedRoutingSep   = "."
)

// Appointment record fields written by partial updates
const (
	AppointmentFieldStatus          = "status"
	AppointmentFieldBranch          = "branch"
	AppointmentFieldAppointmentDate = "appointmentDate"
	AppointmentFieldTimeSlot        = "timeSlot"
)
