package application

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diwise/api-datacubes/internal/pkg/application/auth"
	"github.com/diwise/api-datacubes/internal/pkg/application/services/catalog"
	"github.com/diwise/api-datacubes/internal/pkg/application/services/places"
	"github.com/diwise/api-datacubes/internal/pkg/domain"
	"github.com/diwise/api-datacubes/internal/pkg/infrastructure/repositories/cubes"
	"github.com/diwise/api-datacubes/internal/pkg/presentation/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"

	"github.com/matryer/is"
)

func TestGetDatasetsListsOnlyVisibleOnes(t *testing.T) {
	is := is.New(t)
	router, _, _ := newAPIForTesting(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/datasets", nil)

	router.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusOK) // Request failed, status code not OK
	is.True(strings.Contains(w.Body.String(), "\"open\""))
	is.True(!strings.Contains(w.Body.String(), "\"shadow\""))
	is.True(!strings.Contains(w.Body.String(), "\"gated\""))
}

func TestGetDatasetByIDReturnsResolvedDetails(t *testing.T) {
	is := is.New(t)
	router, _, _ := newAPIForTesting(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/datasets/open", nil)

	router.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusOK) // Request failed, status code not OK

	details := struct {
		ID          string     `json:"id"`
		Title       string     `json:"title"`
		BoundingBox [4]float64 `json:"bbox"`
		Variables   []string   `json:"variables"`
		PlaceGroups []struct {
			ID string `json:"id"`
		} `json:"placeGroups"`
		Style *struct {
			Identifier string `json:"id"`
		} `json:"style"`
	}{}
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &details))

	is.Equal(details.ID, "open")
	is.Equal(details.BoundingBox, [4]float64{0, 50, 5, 52.5})
	is.Equal(details.Variables, []string{"conc_chl"})
	is.Equal(len(details.PlaceGroups), 1)
	is.Equal(details.PlaceGroups[0].ID, "inside-cube")
	is.True(details.Style != nil)
	is.Equal(details.Style.Identifier, "default")
}

func TestGetDatasetByIDPrefersVariablesReportedByTheStore(t *testing.T) {
	is := is.New(t)
	_, catalogMock, _ := newAPIForTesting(t)

	store := &cubes.CubeStoreMock{
		OpenFunc: func(ctx context.Context, descriptor cubes.OpenDescriptor) (cubes.Cube, error) {
			return &cubeMock{id: descriptor.Identifier, vars: []string{"conc_chl", "kd489"}}, nil
		},
	}

	router := chi.NewRouter()
	router.Get(
		"/api/datasets/{id}",
		handlers.NewRetrieveDatasetByIDHandler(zerolog.Logger{}, catalogMock, store, false),
	)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/datasets/open", nil)

	router.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusOK) // Request failed, status code not OK

	details := struct {
		Variables []string `json:"variables"`
	}{}
	is.NoErr(json.Unmarshal(w.Body.Bytes(), &details))
	is.Equal(details.Variables, []string{"conc_chl", "kd489"})

	calls := store.OpenCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].Descriptor.Path, "open.zarr")
}

type cubeMock struct {
	id   string
	vars []string
}

func (c *cubeMock) Identifier() string  { return c.id }
func (c *cubeMock) Variables() []string { return c.vars }
func (c *cubeMock) Close() error        { return nil }

func TestGetDatasetByIDReturnsNotFoundForUnknownDatasets(t *testing.T) {
	is := is.New(t)
	router, _, _ := newAPIForTesting(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/datasets/no-such-dataset", nil)

	router.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusNotFound)
}

func TestGetDatasetByIDReturnsForbiddenWithoutScopes(t *testing.T) {
	is := is.New(t)
	router, _, _ := newAPIForTesting(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/datasets/gated", nil)

	router.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusForbidden)
}

func TestForbiddenDatasetsCanBeConcealedAsNotFound(t *testing.T) {
	is := is.New(t)
	_, catalogMock, _ := newAPIForTesting(t)

	concealing := chi.NewRouter()
	concealing.Get(
		"/api/datasets/{id}",
		handlers.NewRetrieveDatasetByIDHandler(zerolog.Logger{}, catalogMock, cubes.NewCubeStore(nil), true),
	)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/datasets/gated", nil)

	concealing.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusNotFound)
}

func TestGetPlaceGroups(t *testing.T) {
	is := is.New(t)
	router, _, _ := newAPIForTesting(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/places", nil)

	router.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusOK) // Request failed, status code not OK
	is.True(strings.Contains(w.Body.String(), "inside-cube"))
	is.True(strings.Contains(w.Body.String(), "elsewhere"))
}

func TestGetPlaceGroupByIDResolvesAgainstTheRequestHost(t *testing.T) {
	is := is.New(t)
	router, _, placeMock := newAPIForTesting(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/places/inside-cube", nil)
	req.Host = "datacubes.example"

	router.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusOK) // Request failed, status code not OK
	is.Equal(w.Header().Get("Content-Type"), "application/geo+json")

	calls := placeMock.ResolveCalls()
	is.Equal(len(calls), 1)
	is.Equal(calls[0].Group.Identifier, "inside-cube")
	is.Equal(calls[0].BaseURL, "http://datacubes.example")
}

func TestGetPlaceGroupByIDReturnsNotFoundForUnknownGroups(t *testing.T) {
	is := is.New(t)
	router, _, _ := newAPIForTesting(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/places/no-such-group", nil)

	router.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusNotFound)
}

func TestGetDatasetPlaceGroupByIDRequiresTheGroupToBeLinked(t *testing.T) {
	is := is.New(t)
	router, _, placeMock := newAPIForTesting(t)

	w := httptest.NewRecorder()
	// elsewhere exists globally but is not referenced by the dataset
	req, _ := http.NewRequest(http.MethodGet, "/api/datasets/open/places/elsewhere", nil)

	router.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusNotFound)
	is.Equal(len(placeMock.ResolveCalls()), 0)
}

func TestGetDatasetPlaceGroups(t *testing.T) {
	is := is.New(t)
	router, _, _ := newAPIForTesting(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/datasets/open/places", nil)

	router.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusOK) // Request failed, status code not OK
	is.True(strings.Contains(w.Body.String(), "inside-cube"))
	is.True(!strings.Contains(w.Body.String(), "elsewhere"))
}

func TestGetServiceInfo(t *testing.T) {
	is := is.New(t)
	router, _, _ := newAPIForTesting(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/serviceinfo", nil)

	router.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusOK) // Request failed, status code not OK
	is.True(strings.Contains(w.Body.String(), "Brockmann Consult GmbH"))
}

func TestGetHealthProbe(t *testing.T) {
	is := is.New(t)
	router, _, _ := newAPIForTesting(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)

	router.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusOK)
}

func TestGetOpenAPIServesTheLoadedDocument(t *testing.T) {
	is := is.New(t)
	router, _, _ := newAPIForTesting(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/openapi", nil)

	router.ServeHTTP(w, req)

	is.Equal(w.Code, http.StatusOK) // Request failed, status code not OK
	is.Equal(w.Body.String(), "{\"openapi\":\"3.0.0\"}")
}

func newAPIForTesting(t *testing.T) (chi.Router, *catalog.CatalogServiceMock, *places.PlaceServiceMock) {
	t.Helper()

	snapshot, err := catalog.Load(strings.NewReader(apiConfigYaml))
	if err != nil {
		t.Fatal("failed to load test configuration:", err.Error())
	}

	catalogMock := &catalog.CatalogServiceMock{
		CurrentFunc: func() *catalog.Snapshot { return snapshot },
		ListResourcesFunc: func(ac auth.AccessContext) []domain.DatasetResource {
			visible := []domain.DatasetResource{}
			for _, r := range snapshot.Resources() {
				if auth.IsVisible(r, ac) {
					visible = append(visible, r)
				}
			}
			return visible
		},
		GetResourceFunc: func(id string, ac auth.AccessContext) (domain.DatasetResource, error) {
			resource, exists := snapshot.Resource(id)
			if !exists {
				return domain.DatasetResource{}, catalog.ErrNoSuchResource
			}
			if !auth.IsAccessible(resource, ac) {
				return domain.DatasetResource{}, catalog.ErrForbidden
			}
			return resource, nil
		},
		ServiceInfoFunc: func() domain.ServiceInfo { return snapshot.ServiceInfo() },
	}

	placeMock := &places.PlaceServiceMock{
		ResolveFunc: func(ctx context.Context, group domain.PlaceGroup, baseURL string) (*geojson.FeatureCollection, error) {
			collection := geojson.NewFeatureCollection()
			collection.Append(geojson.NewFeature(orb.Point{2.5, 51.2}))
			return collection, nil
		},
	}

	r := chi.NewRouter()
	NewAPI(r, context.Background(), catalogMock, placeMock, cubes.NewCubeStore(nil), bytes.NewBufferString("{\"openapi\":\"3.0.0\"}"))

	return r, catalogMock, placeMock
}

const apiConfigYaml string = `
ServiceProvider:
  ProviderName: Brockmann Consult GmbH

Datasets:
  - Identifier: open
    Title: Open cube
    BoundingBox: [0, 50, 5, 52.5]
    Path: open.zarr
    Variables: [conc_chl]
    Style: default
    PlaceGroups:
      - PlaceGroupRef: inside-cube
  - Identifier: shadow
    Path: shadow.zarr
    Hidden: true
  - Identifier: gated
    Path: gated.zarr
    AccessControl:
      RequiredScopes: [read:datasets]

PlaceGroups:
  - Identifier: inside-cube
    Title: Points inside the cube
    Path: places/inside-cube.geojson
  - Identifier: elsewhere
    Title: Points outside the cube
    Path: places/elsewhere.geojson

Styles:
  - Identifier: default
    ColorMappings:
      conc_chl:
        ColorBar: plasma
        ValueRange: [0, 24]
`
