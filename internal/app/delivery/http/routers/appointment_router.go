package routers

import (
	"bitecare-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, appointmentController *controllers.AppointmentController) {
	router.Get("/{patient_id}", appointmentController.FindAllByPatient)
	router.Get("/{patient_id}/stream", appointmentController.Stream)
	router.Post("/{patient_id}/{appointment_id}/{action}", appointmentController.Transition)
}
