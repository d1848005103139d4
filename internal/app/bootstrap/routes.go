// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	errorsfeature "github.com/dalemusser/tutorhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/tutorhub/internal/app/features/health"
	homefeature "github.com/dalemusser/tutorhub/internal/app/features/home"
	profilesfeature "github.com/dalemusser/tutorhub/internal/app/features/profiles"
	tutorsfeature "github.com/dalemusser/tutorhub/internal/app/features/tutors"
	profilestore "github.com/dalemusser/tutorhub/internal/app/store/profiles"
	tutorstore "github.com/dalemusser/tutorhub/internal/app/store/tutors"
	"github.com/dalemusser/tutorhub/internal/app/system/imagestore"
	"github.com/dalemusser/tutorhub/internal/app/system/metrics"
	"github.com/dalemusser/tutorhub/internal/app/system/ratelimit"
	"github.com/dalemusser/tutorhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. TutorHub builds the one image store
// the config names and mounts the tutor and profile resources, the health
// check, the metrics endpoint and, for the local store, the image files.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	images, err := imagestore.New(context.Background(), appCfg.imageStoreConfig(), logger)
	if err != nil {
		logger.Error("image store init failed", zap.Error(err))
		return nil, err
	}
	logger.Info("image store ready", zap.String("store", images.Name()))

	return buildRouter(appCfg, deps, images, metrics.New(), logger), nil
}

// buildRouter wires every route over already-built dependencies.
func buildRouter(appCfg AppConfig, deps DBDeps, images imagestore.ImageStore, m *metrics.Metrics, logger *zap.Logger) chi.Router {
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: appCfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(m.Middleware)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, images.Name(), logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", m.Handler())

	// Locally stored tutor images; nosniff keeps browsers from treating
	// them as anything but the type they are served with.
	if local, ok := images.(*imagestore.Local); ok {
		r.With(middleware.SetHeader("X-Content-Type-Options", "nosniff")).
			Handle(local.URLPrefix()+"/*", fileserver.Handler(local.URLPrefix(), local.Dir()))
	}

	homeHandler := homefeature.NewHandler(logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	tutorsHandler := tutorsfeature.NewHandler(
		tutorstore.New(deps.Tutors),
		images,
		tutorsfeature.Options{
			RequireImage:   appCfg.TutorImageRequired,
			MaxUploadBytes: appCfg.MaxUploadBytes,
			Uploads:        m,
		},
		errLog, logger)

	confirmHandler := profilesfeature.NewHandler(profilestore.New(deps.Confirm, models.KindConfirmedTutor), errLog, logger)
	usersHandler := profilesfeature.NewHandler(profilestore.New(deps.Users, models.KindUser), errLog, logger)
	studentsHandler := profilesfeature.NewHandler(profilestore.New(deps.Students, models.KindStudent), errLog, logger)

	var createGuards []func(http.Handler) http.Handler
	if appCfg.UploadRateLimit > 0 {
		limiter := ratelimit.New(appCfg.UploadRateLimit, appCfg.UploadRateWindow)
		createGuards = append(createGuards, ratelimit.Middleware(limiter, logger))
	}

	api := func(r chi.Router) {
		r.Mount("/tutors", tutorsfeature.Routes(tutorsHandler, createGuards...))
		r.Mount("/confirm", profilesfeature.Routes(confirmHandler, profilesfeature.RouteOptions{Get: true, Delete: true}))
		r.Mount("/users", profilesfeature.Routes(usersHandler, profilesfeature.RouteOptions{Get: true, Delete: true}))
		r.Mount("/students", profilesfeature.Routes(studentsHandler, profilesfeature.RouteOptions{}))
	}
	if appCfg.APIPrefix == "" {
		api(r)
	} else {
		r.Route(appCfg.APIPrefix, api)
	}

	return r
}
