package application

import (
	"bytes"
	"compress/flate"
	"context"
	"net/http"
	"os"

	"github.com/diwise/api-datacubes/internal/pkg/application/auth"
	"github.com/diwise/api-datacubes/internal/pkg/application/services/catalog"
	"github.com/diwise/api-datacubes/internal/pkg/application/services/places"
	"github.com/diwise/api-datacubes/internal/pkg/infrastructure/repositories/cubes"
	"github.com/diwise/api-datacubes/internal/pkg/presentation/handlers"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type API interface {
	Start(port string) error
}

type datacubeAPI struct {
	router chi.Router
	log    zerolog.Logger
}

func NewAPI(r chi.Router, ctx context.Context, catalogSvc catalog.CatalogService, placeSvc places.PlaceService, store cubes.CubeStore, openapiResponse *bytes.Buffer) API {
	return newDatacubeAPI(r, ctx, catalogSvc, placeSvc, store, openapiResponse)
}

func newDatacubeAPI(r chi.Router, ctx context.Context, catalogSvc catalog.CatalogService, placeSvc places.PlaceService, store cubes.CubeStore, openapiResponse *bytes.Buffer) *datacubeAPI {
	log := logging.GetFromContext(ctx)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		Debug:            false,
	}).Handler)

	// Enable gzip compression for our responses
	compressor := middleware.NewCompressor(
		flate.DefaultCompression,
		"application/json", "application/geo+json",
	)
	r.Use(compressor.Handler)
	r.Use(otelchi.Middleware("api-datacubes", otelchi.WithChiRoutes(r)))

	if tokenSecret := os.Getenv("AUTH_TOKEN_SECRET"); tokenSecret != "" {
		r.Use(auth.Middleware(log, []byte(tokenSecret)))
	}

	a := &datacubeAPI{
		router: r,
		log:    log,
	}

	a.addCatalogHandlers(r, log, catalogSvc, placeSvc, store)
	a.addProbeHandlers(r)

	a.router.Get("/api/openapi", a.newRetrieveOpenAPIHandler(log, openapiResponse))

	return a
}

func (a *datacubeAPI) Start(port string) error {
	a.log.Info().Msgf("Starting api-datacubes on port:%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

func (a *datacubeAPI) addCatalogHandlers(r chi.Router, log zerolog.Logger, catalogSvc catalog.CatalogService, placeSvc places.PlaceService, store cubes.CubeStore) {
	concealForbidden := (os.Getenv("CONCEAL_FORBIDDEN_RESOURCES") == "true")

	r.Get(
		"/api/datasets",
		handlers.NewRetrieveDatasetsHandler(log, catalogSvc),
	)
	r.Get(
		"/api/datasets/{id}",
		handlers.NewRetrieveDatasetByIDHandler(log, catalogSvc, store, concealForbidden),
	)
	r.Get(
		"/api/datasets/{id}/places",
		handlers.NewRetrieveDatasetPlaceGroupsHandler(log, catalogSvc, concealForbidden),
	)
	r.Get(
		"/api/datasets/{id}/places/{groupId}",
		handlers.NewRetrieveDatasetPlaceGroupByIDHandler(log, catalogSvc, placeSvc, concealForbidden),
	)
	r.Get(
		"/api/places",
		handlers.NewRetrievePlaceGroupsHandler(log, catalogSvc),
	)
	r.Get(
		"/api/places/{id}",
		handlers.NewRetrievePlaceGroupByIDHandler(log, catalogSvc, placeSvc),
	)
	r.Get(
		"/api/serviceinfo",
		handlers.NewRetrieveServiceInfoHandler(log, catalogSvc),
	)
}

func (a *datacubeAPI) addProbeHandlers(r chi.Router) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func (a *datacubeAPI) newRetrieveOpenAPIHandler(log zerolog.Logger, openapiResponse *bytes.Buffer) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if openapiResponse == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(openapiResponse.Bytes())
	})
}
