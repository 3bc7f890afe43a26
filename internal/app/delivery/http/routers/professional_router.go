package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachProfessionalRouter(router chi.Router, professionalController *controllers.ProfessionalController) {
	router.Post("/", professionalController.CreateProfessional)
	router.Get("/", professionalController.ListProfessionals)
	router.Get("/{professionalId}", professionalController.GetProfessionalByID)
	router.Put("/{professionalId}/availability", professionalController.UpdateAvailability)
	router.Get("/{professionalId}/dashboard", professionalController.GetDashboardSummary)
}
