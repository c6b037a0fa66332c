package places

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/diwise/api-datacubes/internal/pkg/domain"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-datacubes/svcs/places")

// ErrTemplateResolution is returned when a ${...} placeholder in a
// property mapping cannot be resolved against the feature.
var ErrTemplateResolution = errors.New("unresolved template placeholder")

//go:generate moq -rm -out placesvc_mock.go . PlaceService

type PlaceService interface {
	// Resolve loads and enriches the features of a place group. Every
	// call re-runs resolution against the sources, so the service
	// holds no state between calls.
	Resolve(ctx context.Context, group domain.PlaceGroup, baseURL string) (*geojson.FeatureCollection, error)
}

func NewPlaceService(logger zerolog.Logger, baseDir string) PlaceService {
	return &placeSvc{
		baseDir: baseDir,
		log:     logger,
	}
}

type placeSvc struct {
	baseDir string
	log     zerolog.Logger
}

func (svc *placeSvc) Resolve(ctx context.Context, group domain.PlaceGroup, baseURL string) (*geojson.FeatureCollection, error) {
	var err error
	ctx, span := tracer.Start(ctx, "resolve-place-group")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, logger := o11y.AddTraceIDToLoggerAndStoreInContext(span, svc.log, ctx)

	primary, err := svc.loadCollection(ctx, group.Path)
	if err != nil {
		err = fmt.Errorf("failed to load place group %q: (%w)", group.Identifier, err)
		return nil, err
	}

	// "properties": null is valid GeoJSON and unmarshals to a nil map
	for _, feature := range primary.Features {
		if feature.Properties == nil {
			feature.Properties = geojson.Properties{}
		}
	}

	if group.Join != nil {
		secondary, joinErr := svc.loadCollection(ctx, group.Join.Path)
		if joinErr != nil {
			err = fmt.Errorf("failed to load join collection of place group %q: (%w)", group.Identifier, joinErr)
			return nil, err
		}

		joinFeatures(primary, secondary, group.Join.Property)
	}

	for index, feature := range primary.Features {
		feature.ID = strconv.Itoa(index)

		for name, template := range group.PropertyMapping {
			value, templErr := resolveTemplate(template, baseURL, feature.Properties)
			if templErr != nil {
				err = fmt.Errorf("property %q of place group %q: (%w)", name, group.Identifier, templErr)
				return nil, err
			}
			feature.Properties[name] = value
		}
	}

	logger.Debug().Msgf("resolved %d features in place group %s", len(primary.Features), group.Identifier)

	return primary, nil
}

func (svc *placeSvc) loadCollection(ctx context.Context, path string) (*geojson.FeatureCollection, error) {
	body, err := svc.readSource(ctx, path)
	if err != nil {
		return nil, err
	}

	collection, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal feature collection %s: (%w)", path, err)
	}

	return collection, nil
}

func (svc *placeSvc) readSource(ctx context.Context, path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		resp, err := otelhttp.Get(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve %s: (%w)", path, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("request for %s failed with status code %d", path, resp.StatusCode)
		}

		return io.ReadAll(resp.Body)
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(svc.baseDir, path)
	}

	return os.ReadFile(path)
}

// joinFeatures merges secondary properties into the primary features
// by equality of the join property's value. Duplicate keys in the
// secondary collection are last write wins, and a primary feature
// without a match keeps its identity and simply gains nothing.
func joinFeatures(primary, secondary *geojson.FeatureCollection, property string) {
	index := map[any]*geojson.Feature{}
	for _, feature := range secondary.Features {
		if value, found := feature.Properties[property]; found {
			index[value] = feature
		}
	}

	for _, feature := range primary.Features {
		value, found := feature.Properties[property]
		if !found {
			continue
		}
		match, found := index[value]
		if !found {
			continue
		}
		for name, secondaryValue := range match.Properties {
			// Primary properties take precedence on collision.
			if _, exists := feature.Properties[name]; !exists {
				feature.Properties[name] = secondaryValue
			}
		}
	}
}

var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// resolveTemplate substitutes ${name} tokens, resolving base_url
// before the feature's own properties.
func resolveTemplate(template, baseURL string, properties geojson.Properties) (string, error) {
	var missing []string

	resolved := placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		name := token[2 : len(token)-1]

		if name == "base_url" {
			return baseURL
		}
		if value, found := properties[name]; found {
			return fmt.Sprintf("%v", value)
		}

		missing = append(missing, name)
		return token
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s in %q", ErrTemplateResolution, missing[0], template)
	}

	return resolved, nil
}
