package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/diwise/api-datacubes/internal/pkg/application/services/catalog"
	"github.com/diwise/api-datacubes/internal/pkg/application/services/places"
	"github.com/diwise/api-datacubes/internal/pkg/infrastructure/repositories/cubes"
	application "github.com/diwise/api-datacubes/internal/pkg/presentation"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
)

func openOASFile(ctx context.Context, path string) *os.File {
	log := logging.GetFromContext(ctx)
	oasfile, err := os.Open(path)
	if err != nil {
		log.Info().Msgf("failed to open the OpenAPI specification file %s.", path)
		return nil
	}
	return oasfile
}

var serverConfigFileName string
var openApiSpecFileName string

func main() {
	serviceName := "api-datacubes"
	serviceVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	log.Info().Msgf("Starting up %s ...", serviceName)

	flag.StringVar(&openApiSpecFileName, "oas", "/opt/diwise/openapi.json", "An OpenAPI specification to be served on /api/openapi")
	flag.StringVar(&serverConfigFileName, "config", "/opt/diwise/config/datacubes.yaml", "The server configuration file to serve datasets from")
	flag.Parse()

	var oasResponseBuffer *bytes.Buffer
	if oasfile := openOASFile(ctx, openApiSpecFileName); oasfile != nil {
		defer oasfile.Close()
		oasResponseBuffer = bytes.NewBuffer(nil)
		written, err := io.Copy(oasResponseBuffer, oasfile)
		if err != nil {
			log.Error().Err(err).Msgf("failed to copy OpenAPI specification into response buffer")
		} else {
			log.Info().Msgf("copied %d bytes from %s into openapi response buffer.", written, openApiSpecFileName)
		}
	}

	reloadInterval, err := time.ParseDuration(
		env.GetVariableOrDefault(log, "CATALOG_RELOAD_INTERVAL", "0s"),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid catalog reload interval")
	}

	catalogSvc, err := catalog.NewCatalogService(ctx, log, serverConfigFileName, reloadInterval)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load the server configuration. Exiting.")
	}
	catalogSvc.Start()
	defer catalogSvc.Shutdown()

	placeSvc := places.NewPlaceService(log, filepath.Dir(serverConfigFileName))

	port := os.Getenv("SERVICE_PORT")
	if port == "" {
		port = "8880"
	}

	r := chi.NewRouter()

	app := application.NewAPI(r, ctx, catalogSvc, placeSvc, cubes.NewCubeStore(nil), oasResponseBuffer)
	err = app.Start(port)
	if err != nil {
		log.Fatal().Msgf("failed to start router: %s", err.Error())
	}
}
