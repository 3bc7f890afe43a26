package routers

import (
	"time"

	"medibook-service/internal/app/delivery/http/controllers"
	"medibook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachUserRouter(router chi.Router, userController *controllers.UserController) {
	// Registration and verification carry credentials; throttle harder than
	// the rest of the API.
	authLimiter := middlewares.NewRateLimiter(5, time.Second, time.Minute)
	router.With(authLimiter.Limit).Post("/register", userController.Register)
	router.With(authLimiter.Limit).Post("/verify", userController.VerifyEmail)

	router.Get("/{userId}", userController.GetProfile)
	router.Put("/{userId}", userController.UpdateProfile)
	router.Post("/{userId}/profile-picture", userController.UploadProfilePicture)
}
