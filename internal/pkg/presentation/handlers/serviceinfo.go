package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/diwise/api-datacubes/internal/pkg/application/services/catalog"
	"github.com/rs/zerolog"
)

// NewRetrieveServiceInfoHandler serves the passthrough metadata blocks
// from the server configuration unchanged.
func NewRetrieveServiceInfoHandler(logger zerolog.Logger, svc catalog.CatalogService) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := json.MarshalIndent(svc.ServiceInfo(), "", "  ")
		if err != nil {
			logger.Error().Err(err).Msg("failed to marshal service info")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.Write(body)
	})
}
