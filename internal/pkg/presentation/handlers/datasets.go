package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/diwise/api-datacubes/internal/pkg/application/auth"
	"github.com/diwise/api-datacubes/internal/pkg/application/services/catalog"
	"github.com/diwise/api-datacubes/internal/pkg/application/services/styles"
	"github.com/diwise/api-datacubes/internal/pkg/domain"
	"github.com/diwise/api-datacubes/internal/pkg/infrastructure/repositories/cubes"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-datacubes/handlers")

func NewRetrieveDatasetsHandler(logger zerolog.Logger, svc catalog.CatalogService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-datasets")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		resources := svc.ListResources(auth.FromContext(ctx))

		datasets := make([]domain.DatasetResource, 0, len(resources))
		datasets = append(datasets, resources...)

		body, err := json.MarshalIndent(struct {
			Datasets []domain.DatasetResource `json:"datasets"`
		}{Datasets: datasets}, "", "  ")

		w.Header().Add("Content-Type", "application/json")
		w.Write(body)
	})
}

type datasetDetails struct {
	ID           string                   `json:"id"`
	Title        string                   `json:"title"`
	BoundingBox  *domain.BoundingBox      `json:"bbox,omitempty"`
	Variables    []string                 `json:"variables,omitempty"`
	PlaceGroups  []placeGroupSummary      `json:"placeGroups,omitempty"`
	Style        *styles.ResolvedStyle    `json:"style,omitempty"`
	Augmentation *domain.AugmentationSpec `json:"augmentation,omitempty"`
}

func NewRetrieveDatasetByIDHandler(logger zerolog.Logger, svc catalog.CatalogService, store cubes.CubeStore, concealForbidden bool) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-dataset-by-id")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		datasetID, _ := url.QueryUnescape(chi.URLParam(r, "id"))
		if datasetID == "" {
			err = fmt.Errorf("no dataset id supplied in query")
			log.Error().Err(err).Msg("bad request")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		resource, err := svc.GetResource(datasetID, auth.FromContext(ctx))
		if err != nil {
			writeResourceError(w, log, err, concealForbidden)
			return
		}

		details := &datasetDetails{
			ID:          resource.Identifier,
			Title:       resource.Title,
			BoundingBox: resource.BoundingBox,
			Variables:   variablesOf(ctx, log, store, resource),
		}

		snapshot := svc.Current()

		for _, group := range snapshot.ResourcePlaceGroups(resource) {
			details.PlaceGroups = append(details.PlaceGroups, placeGroupSummary{
				ID:    group.Identifier,
				Title: group.Title,
			})
		}

		if style, found := snapshot.StyleFor(resource); found {
			resolvedStyle, styleErr := styles.Resolve(style, details.Variables)
			if styleErr != nil {
				err = fmt.Errorf("failed to resolve style for dataset %s: (%w)", datasetID, styleErr)
				log.Error().Err(err).Msg("internal error")
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			details.Style = resolvedStyle
		}

		details.Augmentation = snapshot.ResolveAugmentation(resource)

		body, err := json.MarshalIndent(details, "", "  ")
		w.Header().Add("Content-Type", "application/json")
		w.Write(body)
	})
}

// variablesOf prefers the variables of the opened cube over the ones
// declared in configuration. An unconfigured store is not an error.
func variablesOf(ctx context.Context, log zerolog.Logger, store cubes.CubeStore, resource domain.DatasetResource) []string {
	if store == nil || resource.IsComputed() {
		return resource.Variables
	}

	cube, err := store.Open(ctx, cubes.NewOpenDescriptor(resource))
	if err != nil {
		if !errors.Is(err, cubes.ErrNotConfigured) {
			log.Warn().Err(err).Msgf("failed to open dataset %s, falling back to declared variables", resource.Identifier)
		}
		return resource.Variables
	}
	defer cube.Close()

	return cube.Variables()
}

func writeResourceError(w http.ResponseWriter, log zerolog.Logger, err error, concealForbidden bool) {
	if errors.Is(err, catalog.ErrNoSuchResource) {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	if errors.Is(err, catalog.ErrForbidden) {
		log.Info().Err(err).Msg("access denied")
		if concealForbidden {
			w.WriteHeader(http.StatusNotFound)
		} else {
			w.WriteHeader(http.StatusForbidden)
		}
		return
	}

	log.Error().Err(err).Msg("internal error")
	w.WriteHeader(http.StatusInternalServerError)
}
