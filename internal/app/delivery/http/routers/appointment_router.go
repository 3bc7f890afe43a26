package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRouter(router chi.Router, appointmentController *controllers.AppointmentController) {
	router.Post("/", appointmentController.CreateAppointment)
	router.Get("/", appointmentController.ListAppointments)
	router.Get("/{appointmentId}", appointmentController.GetAppointmentByID)
	router.Post("/{appointmentId}/cancel", appointmentController.CancelAppointment)
}
