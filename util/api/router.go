// Package api exposes the relationship engine over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"hive-social-network/config"
	"hive-social-network/middleware"
	"hive-social-network/social"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler carries what the HTTP handlers need.
type Handler struct {
	svc *social.Service
	db  Pinger
	api config.APIConfig
}

func NewHandler(svc *social.Service, db Pinger, cfg config.APIConfig) *Handler {
	return &Handler{svc: svc, db: db, api: cfg}
}

// NewRouter builds the complete HTTP surface.
func NewRouter(h *Handler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.Origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-User-Id", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: cfg.CORS.AllowCredentials,
	}).Handler)

	r.Get("/healthz", h.HealthHandler)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler())
	}

	identity := middleware.Identity(h.svc, respondError)

	r.Route("/api", func(r chi.Router) {
		if !cfg.RateLimit.Disabled {
			r.Use(httprate.LimitByIP(cfg.RateLimit.Requests, cfg.RateLimit.Window))
		}
		r.Use(middleware.PrometheusMetrics)

		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.CreateUserHandler)
			r.Get("/", h.SearchUsersHandler)

			r.Group(func(r chi.Router) {
				r.Use(identity)
				r.Get("/me", h.WhoAmIHandler)
				r.Get("/me/friends", h.ListFriendsHandler)
				r.Get("/me/requests", h.ListPendingRequestsHandler)
				r.Put("/{id}", h.UpdateUserHandler)
				r.Post("/{id}/friend-request", h.SendFriendRequestHandler)
				r.Post("/{id}/friend-accept", h.AcceptFriendRequestHandler)
				r.Post("/{id}/friend-cancel", h.CancelFriendRequestHandler)
				r.Delete("/{id}/friend-remove", h.RemoveFriendHandler)
				r.Get("/{id}/profile", h.GetProfileHandler)
			})

			r.Get("/{id}", h.GetUserHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(identity)

			r.Route("/groups", func(r chi.Router) {
				r.Post("/", h.CreateGroupHandler)
				r.Get("/my", h.ListMyGroupsHandler)
				r.Get("/all", h.ListAllGroupsHandler)
				r.Patch("/join/respond", h.RespondJoinRequestHandler)
				r.Get("/{id}", h.GetGroupHandler)
				r.Put("/{id}", h.UpdateGroupHandler)
				r.Delete("/{id}", h.DeleteGroupHandler)
				r.Post("/{id}/join", h.RequestToJoinHandler)
				r.Delete("/{id}/join", h.CancelJoinRequestHandler)
				r.Patch("/{groupId}/members/{memberId}", h.UpdateMemberRoleHandler)
				r.Delete("/{groupId}/members/{memberId}", h.LeaveOrRemoveHandler)
			})

			r.Route("/posts", func(r chi.Router) {
				r.Post("/", h.CreatePostHandler)
				r.Get("/feed", h.FeedHandler)
				r.Get("/group/{groupId}", h.GroupPostsHandler)
				r.Get("/{id}", h.GetPostHandler)
				r.Put("/{id}", h.UpdatePostHandler)
				r.Delete("/{id}", h.DeletePostHandler)
				r.Post("/{id}/like", h.ToggleLikePostHandler)
			})

			r.Route("/comments", func(r chi.Router) {
				r.Post("/", h.CreateCommentHandler)
				r.Get("/post/{postId}", h.GetCommentsForPostHandler)
				r.Get("/{id}", h.GetCommentHandler)
				r.Put("/{id}", h.UpdateCommentHandler)
				r.Delete("/{id}", h.DeleteCommentHandler)
			})

			r.Get("/search", h.GlobalSearchHandler)
			r.Get("/traffic/posts", h.PostTrafficHandler)
			r.Get("/traffic/comments", h.CommentTrafficHandler)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
