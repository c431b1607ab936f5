package constvars

const (
	RegistrationStartedMessage   = "registration session loaded"
	RegistrationUpdatedMessage   = "registration form saved"
	RegistrationAdvancedMessage  = "moved to the next step"
	RegistrationRetreatedMessage = "moved to the previous step"
	RegistrationSubmittedMessage = "appointment booked"
	RegistrationAbandonedMessage = "registration discarded"

	GetAppointmentsSuccessMessage       = "appointments retrieved"
	TransitionAppointmentSuccessMessage = "appointment updated"
	GetDoseSuccessMessage               = "dose schedule computed"
)

const (
	SSEEventAppointments    = "appointments"
	SSEHeartbeatInSeconds   = 15
	RequestTimeoutInSeconds = 10
)
