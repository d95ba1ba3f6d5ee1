package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/vidora/api/internal/core/ports"
)

func NewHandler(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	videoHandler *VideoHandler,
	subscriptionHandler *SubscriptionHandler,
	tokens ports.TokenIssuer,
	mediaRoot string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	guard := AuthRequired(tokens)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(guard)
				r.Post("/logout", authHandler.Logout)
				r.Post("/password", userHandler.ChangePassword)
				r.Get("/me", userHandler.GetMe)
				r.Patch("/me", userHandler.UpdateProfile)
				r.Get("/history", userHandler.WatchHistory)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			r.Use(guard)
			r.Get("/search", videoHandler.Search)
			r.Post("/", videoHandler.Publish)
			r.Get("/{id}", videoHandler.Get)
			r.Patch("/{id}", videoHandler.Update)
			r.Delete("/{id}", videoHandler.Delete)
			r.Patch("/{id}/publish", videoHandler.TogglePublish)
		})

		r.Route("/subscriptions", func(r chi.Router) {
			r.Use(guard)
			r.Get("/", subscriptionHandler.Channels)
			r.Post("/{channelID}", subscriptionHandler.Toggle)
		})

		r.Route("/channels/{channelID}", func(r chi.Router) {
			r.Use(guard)
			r.Get("/subscribers", subscriptionHandler.Subscribers)
			r.Get("/stats", subscriptionHandler.ChannelStats)
		})
	})

	// Uploaded media is served straight off the storage root.
	fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(mediaRoot)))
	r.Get("/media/*", fileServer.ServeHTTP)

	return r
}
