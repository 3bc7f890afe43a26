package routers

import (
	"medibook-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachSubaccountRouter(router chi.Router, subaccountController *controllers.SubaccountController) {
	router.Post("/", subaccountController.CreateSubaccount)
	router.Get("/user/{userId}", subaccountController.GetSubaccountByUserID)
}
