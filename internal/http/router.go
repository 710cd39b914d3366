package http

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/sevasetu/ngo-directory-service/internal/accounts"
	"github.com/sevasetu/ngo-directory-service/internal/auth"
	"github.com/sevasetu/ngo-directory-service/internal/category"
	"github.com/sevasetu/ngo-directory-service/internal/enrich"
	"github.com/sevasetu/ngo-directory-service/internal/messaging"
	"github.com/sevasetu/ngo-directory-service/internal/ngo"
	"github.com/sevasetu/ngo-directory-service/internal/posts"
	"github.com/sevasetu/ngo-directory-service/internal/stats"
	"github.com/sevasetu/ngo-directory-service/internal/telemetry"
)

// SetupRouter initializes all routes for the application. Read endpoints are
// public; write endpoints are guarded by token auth plus a permission check.
func SetupRouter(db *sql.DB, verifier *auth.Verifier, perms auth.Permissions, publisher messaging.PublisherInterface, enrichClient enrich.Client, metrics *telemetry.Metrics) *mux.Router {
	var fallbacks enrich.FallbackRecorder
	if metrics != nil {
		fallbacks = metrics
	}
	enricher := enrich.NewEngine(enrichClient, fallbacks)

	// Category components
	categoryRepo := category.NewRepository(db)
	categoryService := category.NewService(categoryRepo)
	categoryHandler := category.NewHandler(categoryService)

	// NGO components
	ngoRepo := ngo.NewRepository(db)
	ngoService := ngo.NewService(ngoRepo, categoryService, enricher, publisher)
	ngoHandler := ngo.NewHandler(ngoService)

	// Opportunity components
	postsRepo := posts.NewRepository(db)
	postsService := posts.NewService(postsRepo, publisher)
	postsHandler := posts.NewHandler(postsService)

	// Account components
	accountsRepo := accounts.NewRepository(db)
	accountsService := accounts.NewService(accountsRepo, verifier, publisher)
	accountsHandler := accounts.NewHandler(accountsService)

	// Stats components
	statsRepo := stats.NewRepository(db)
	statsHandler := stats.NewHandler(statsRepo)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("ngo-directory-service"))

	authn := auth.Middleware(verifier)
	if metrics != nil {
		authn = auth.MiddlewareWithMetrics(verifier, metrics)
	}
	requires := func(permission string) func(http.Handler) http.Handler {
		if metrics != nil {
			return auth.RequirePermissionWithMetrics(permission, perms, metrics)
		}
		return auth.RequirePermission(permission, perms)
	}

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"ngo-directory-service"}`))
	}).Methods("GET")

	// Auth routes (public)
	r.HandleFunc("/auth/register", accountsHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", accountsHandler.Login).Methods("POST")

	// Public directory reads. Fixed paths under /ngos must be registered
	// before the {id} route.
	r.HandleFunc("/ngos", ngoHandler.ListNGOs).Methods("GET")
	r.HandleFunc("/ngos/blacklisted", ngoHandler.ListBlacklistedNGOs).Methods("GET")
	r.HandleFunc("/ngos/map", ngoHandler.GetMapData).Methods("GET")
	r.HandleFunc("/ngos/{id}", ngoHandler.GetNGO).Methods("GET")
	r.HandleFunc("/search", ngoHandler.SearchNGOs).Methods("GET")
	r.HandleFunc("/categories", categoryHandler.ListCategories).Methods("GET")
	r.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")
	r.HandleFunc("/volunteer-posts", postsHandler.ListPosts).Methods("GET")
	r.HandleFunc("/events", postsHandler.ListEvents).Methods("GET")

	// NGO writes
	r.Handle("/ngos",
		authn(requires("ngo:create")(http.HandlerFunc(ngoHandler.CreateNGO))),
	).Methods("POST")

	r.Handle("/ngos/{id}",
		authn(requires("ngo:update")(http.HandlerFunc(ngoHandler.UpdateNGO))),
	).Methods("PUT")

	r.Handle("/ngos/{id}/verify",
		authn(requires("ngo:verify")(http.HandlerFunc(ngoHandler.VerifyNGO))),
	).Methods("POST")

	r.Handle("/ngos/{id}/blacklist",
		authn(requires("ngo:blacklist")(http.HandlerFunc(ngoHandler.BlacklistNGO))),
	).Methods("POST")

	r.Handle("/ngos/{id}/unblacklist",
		authn(requires("ngo:blacklist")(http.HandlerFunc(ngoHandler.UnblacklistNGO))),
	).Methods("POST")

	// Opportunity writes
	r.Handle("/ngos/{id}/volunteer-posts",
		authn(requires("post:create")(http.HandlerFunc(postsHandler.CreatePost))),
	).Methods("POST")

	r.Handle("/ngos/{id}/events",
		authn(requires("event:create")(http.HandlerFunc(postsHandler.CreateEvent))),
	).Methods("POST")

	// Applications (any authenticated user)
	r.Handle("/volunteer-posts/{id}/apply",
		authn(requires("application:create")(http.HandlerFunc(postsHandler.Apply))),
	).Methods("POST")

	r.Handle("/applications",
		authn(http.HandlerFunc(postsHandler.ListApplications)),
	).Methods("GET")

	return r
}
