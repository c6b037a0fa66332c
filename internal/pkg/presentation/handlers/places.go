package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/diwise/api-datacubes/internal/pkg/application/auth"
	"github.com/diwise/api-datacubes/internal/pkg/application/services/catalog"
	"github.com/diwise/api-datacubes/internal/pkg/application/services/places"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

type placeGroupSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func NewRetrievePlaceGroupsHandler(logger zerolog.Logger, svc catalog.CatalogService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-place-groups")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		groups := svc.Current().PlaceGroups()

		summaries := make([]placeGroupSummary, 0, len(groups))
		for _, group := range groups {
			summaries = append(summaries, placeGroupSummary{ID: group.Identifier, Title: group.Title})
		}

		body, err := json.MarshalIndent(struct {
			PlaceGroups []placeGroupSummary `json:"placeGroups"`
		}{PlaceGroups: summaries}, "", "  ")

		w.Header().Add("Content-Type", "application/json")
		w.Write(body)
	})
}

func NewRetrievePlaceGroupByIDHandler(logger zerolog.Logger, svc catalog.CatalogService, placeSvc places.PlaceService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-place-group-by-id")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		groupID, _ := url.QueryUnescape(chi.URLParam(r, "id"))
		group, exists := svc.Current().PlaceGroup(groupID)
		if !exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		collection, err := placeSvc.Resolve(ctx, group, baseURLOf(r))
		if err != nil {
			log.Error().Err(err).Msgf("failed to resolve place group %s", groupID)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		body, err := json.MarshalIndent(collection, "", "  ")
		w.Header().Add("Content-Type", "application/geo+json")
		w.Write(body)
	})
}

func NewRetrieveDatasetPlaceGroupsHandler(logger zerolog.Logger, svc catalog.CatalogService, concealForbidden bool) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-dataset-place-groups")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		datasetID, _ := url.QueryUnescape(chi.URLParam(r, "id"))
		resource, err := svc.GetResource(datasetID, auth.FromContext(ctx))
		if err != nil {
			writeResourceError(w, log, err, concealForbidden)
			return
		}

		groups := svc.Current().ResourcePlaceGroups(resource)

		summaries := make([]placeGroupSummary, 0, len(groups))
		for _, group := range groups {
			summaries = append(summaries, placeGroupSummary{ID: group.Identifier, Title: group.Title})
		}

		body, err := json.MarshalIndent(struct {
			PlaceGroups []placeGroupSummary `json:"placeGroups"`
		}{PlaceGroups: summaries}, "", "  ")

		w.Header().Add("Content-Type", "application/json")
		w.Write(body)
	})
}

func NewRetrieveDatasetPlaceGroupByIDHandler(logger zerolog.Logger, svc catalog.CatalogService, placeSvc places.PlaceService, concealForbidden bool) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "retrieve-dataset-place-group-by-id")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		datasetID, _ := url.QueryUnescape(chi.URLParam(r, "id"))
		resource, err := svc.GetResource(datasetID, auth.FromContext(ctx))
		if err != nil {
			writeResourceError(w, log, err, concealForbidden)
			return
		}

		groupID, _ := url.QueryUnescape(chi.URLParam(r, "groupId"))
		if !slices.Contains(resource.PlaceGroups, groupID) {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		group, exists := svc.Current().PlaceGroup(groupID)
		if !exists {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		collection, err := placeSvc.Resolve(ctx, group, baseURLOf(r))
		if err != nil {
			if errors.Is(err, places.ErrTemplateResolution) {
				log.Error().Err(err).Msg("place group configuration does not match its source data")
			} else {
				log.Error().Err(err).Msgf("failed to resolve place group %s", groupID)
			}
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		body, err := json.MarshalIndent(collection, "", "  ")
		w.Header().Add("Content-Type", "application/geo+json")
		w.Write(body)
	})
}

func baseURLOf(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}
