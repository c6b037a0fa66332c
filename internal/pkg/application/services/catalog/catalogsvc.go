package catalog

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/diwise/api-datacubes/internal/pkg/application/auth"
	"github.com/diwise/api-datacubes/internal/pkg/domain"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api-datacubes/svcs/catalog")

//go:generate moq -rm -out catalogsvc_mock.go . CatalogService

type CatalogService interface {
	Start()
	Shutdown()

	Reload(ctx context.Context) error

	ListResources(ac auth.AccessContext) []domain.DatasetResource
	GetResource(id string, ac auth.AccessContext) (domain.DatasetResource, error)

	Current() *Snapshot
	ServiceInfo() domain.ServiceInfo
}

// NewCatalogService loads the configuration at configPath and serves
// it as an immutable snapshot. A reloadInterval of zero disables the
// background reload loop, leaving Reload up to the caller.
func NewCatalogService(ctx context.Context, logger zerolog.Logger, configPath string, reloadInterval time.Duration) (CatalogService, error) {
	svc := &catalogSvc{
		configPath:     configPath,
		reloadInterval: reloadInterval,
		ctx:            ctx,
		log:            logger,
		keepRunning:    true,
	}

	if err := svc.Reload(ctx); err != nil {
		return nil, err
	}

	return svc, nil
}

type catalogSvc struct {
	configPath     string
	reloadInterval time.Duration

	snapshot atomic.Pointer[Snapshot]

	ctx context.Context
	log zerolog.Logger

	keepRunning bool
}

func (svc *catalogSvc) Start() {
	if svc.reloadInterval > 0 {
		svc.log.Info().Msg("starting catalog service")
		go svc.run()
	}
}

func (svc *catalogSvc) Shutdown() {
	svc.log.Info().Msg("shutting down catalog service")
	svc.keepRunning = false
}

func (svc *catalogSvc) run() {
	nextReloadTime := time.Now().Add(svc.reloadInterval)

	for svc.keepRunning {
		if time.Now().After(nextReloadTime) {
			err := svc.Reload(svc.ctx)
			if err != nil {
				svc.log.Error().Err(err).Msg("failed to reload catalog, keeping previous snapshot")
			}
			nextReloadTime = time.Now().Add(svc.reloadInterval)
		}

		time.Sleep(1 * time.Second)
	}

	svc.log.Info().Msg("catalog service exiting")
}

// Reload builds a brand new snapshot off to the side and publishes it
// with a single atomic swap. In-flight readers keep the snapshot they
// started with; a failed reload publishes nothing.
func (svc *catalogSvc) Reload(ctx context.Context) error {
	var err error
	ctx, span := tracer.Start(ctx, "reload-catalog")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, _, logger := o11y.AddTraceIDToLoggerAndStoreInContext(span, svc.log, ctx)

	configFile, err := os.Open(svc.configPath)
	if err != nil {
		err = fmt.Errorf("failed to open configuration file %s: (%w)", svc.configPath, err)
		return err
	}
	defer configFile.Close()

	snapshot, err := Load(configFile)
	if err != nil {
		return err
	}

	svc.snapshot.Store(snapshot)

	logger.Info().Msgf(
		"catalog loaded from %s: %d datasets, %d place groups, %d styles",
		svc.configPath, len(snapshot.resources), len(snapshot.placeGroups), len(snapshot.styles),
	)

	return nil
}

// Current returns the published snapshot. Callers should capture it
// once per operation and not go back for another.
func (svc *catalogSvc) Current() *Snapshot {
	return svc.snapshot.Load()
}

// ListResources returns the resources visible to the access context,
// preserving their declared order.
func (svc *catalogSvc) ListResources(ac auth.AccessContext) []domain.DatasetResource {
	snapshot := svc.Current()

	visible := make([]domain.DatasetResource, 0, len(snapshot.resources))
	for _, r := range snapshot.resources {
		if auth.IsVisible(r, ac) {
			visible = append(visible, r)
		}
	}

	return visible
}

// GetResource returns a fully resolved resource by identifier.
// ErrNoSuchResource and ErrForbidden are distinct, so the calling
// layer may choose whether to reveal the existence of a resource the
// caller may not access.
func (svc *catalogSvc) GetResource(id string, ac auth.AccessContext) (domain.DatasetResource, error) {
	snapshot := svc.Current()

	resource, exists := snapshot.Resource(id)
	if !exists {
		return domain.DatasetResource{}, fmt.Errorf("%w: %s", ErrNoSuchResource, id)
	}

	if !auth.IsAccessible(resource, ac) {
		return domain.DatasetResource{}, fmt.Errorf("%w: %s", ErrForbidden, id)
	}

	return resource, nil
}

func (svc *catalogSvc) ServiceInfo() domain.ServiceInfo {
	return svc.Current().ServiceInfo()
}
