// Package bootstrap wires the process together: configuration, logging,
// storage, domain services and the HTTP server, then runs until a
// shutdown signal arrives.
package bootstrap

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"keneviz-panel-go/internal/domain/catalog"
	"keneviz-panel-go/internal/domain/challenge"
	"keneviz-panel-go/internal/domain/eventbus"
	"keneviz-panel-go/internal/domain/license"
	licensestore "keneviz-panel-go/internal/domain/license/store"
	"keneviz-panel-go/internal/domain/resolver"
	"keneviz-panel-go/internal/domain/session"
	sessionstore "keneviz-panel-go/internal/domain/session/store"
	"keneviz-panel-go/internal/domain/upstream"
	platformconfig "keneviz-panel-go/internal/platform/config"
	platformerrors "keneviz-panel-go/internal/platform/errors"
	platformlogging "keneviz-panel-go/internal/platform/logging"
	platformstorage "keneviz-panel-go/internal/platform/storage"
	httptransport "keneviz-panel-go/internal/transport/http"
	httpadmin "keneviz-panel-go/internal/transport/http/admin"
	httpapi "keneviz-panel-go/internal/transport/http/api"
	httppanel "keneviz-panel-go/internal/transport/http/panel"
)

const adminUsername = "admin"

const scalarHTML = `<!DOCTYPE html>
<html lang="en">
	<head>
		<meta charset="utf-8" />
		<title>Keneviz API Reference</title>
		<meta name="viewport" content="width=device-width, initial-scale=1" />
	</head>
	<body>
		<script
			id="api-reference"
			data-url="/openapi.json"
			data-layout="modern"
			src="https://cdn.jsdelivr.net/npm/@scalar/api-reference"
		></script>
	</body>
</html>`

type stepFn func(context.Context, *appState) error

type initStep struct {
	ID        string
	Title     string
	DependsOn []string
	Kind      platformerrors.Kind
	Execute   stepFn
}

type appState struct {
	config       *platformconfig.Config
	logger       *platformlogging.Logger
	db           *gorm.DB
	licenseStore licensestore.Store
	licenses     *license.Service
	sessions     *session.Manager
	catalog      *catalog.Catalog
	resolver     *resolver.Resolver
	verifier     *challenge.Verifier
	proxy        *upstream.Proxy
	bus          *eventbus.Bus
}

// Run starts the whole service lifecycle: init graph, HTTP server,
// graceful shutdown on SIGINT/SIGTERM.
func Run(ctx context.Context) error {
	state := &appState{}

	steps := InitGraph()
	if err := executeInitSteps(ctx, steps, state); err != nil {
		return err
	}

	logger := state.logger
	logBootstrapGraph(steps, logger)

	defer func() {
		if err := state.licenseStore.Close(); err != nil {
			logger.ErrorTag("bootstrap", "license store did not close cleanly: %v", err)
		}
		logger.Close()
	}()

	rootCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	signalCtx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(rootCtx)

	if _, err := startHTTPServer(state, group, groupCtx); err != nil {
		cancel()
		return err
	}

	return waitForShutdown(signalCtx, cancel, logger, group, state.bus)
}

func logBootstrapGraph(steps []initStep, logger *platformlogging.Logger) {
	logger.InfoTag("bootstrap", "initialisation graph")
	for _, step := range steps {
		logger.InfoTag("bootstrap", "  %s: %s", step.ID, step.Title)
	}
}

func executeInitSteps(ctx context.Context, steps []initStep, state *appState) error {
	if state == nil {
		return platformerrors.New(platformerrors.KindBootstrap, "execute init steps", "nil bootstrap state")
	}

	completed := make(map[string]struct{}, len(steps))
	for _, step := range steps {
		for _, dep := range step.DependsOn {
			if _, ok := completed[dep]; !ok {
				return platformerrors.New(
					platformerrors.KindBootstrap,
					step.ID,
					fmt.Sprintf("dependency %s not satisfied", dep),
				)
			}
		}
		if step.Execute == nil {
			return platformerrors.New(platformerrors.KindBootstrap, step.ID, "missing execute function")
		}
		if err := step.Execute(ctx, state); err != nil {
			var typed *platformerrors.Error
			if stderrors.As(err, &typed) {
				return err
			}
			kind := step.Kind
			if kind == "" {
				kind = platformerrors.KindBootstrap
			}
			return platformerrors.Wrap(kind, step.ID, "bootstrap step failed", err)
		}
		completed[step.ID] = struct{}{}
	}
	return nil
}

// InitGraph declares the ordered initialisation steps with their
// dependencies.
func InitGraph() []initStep {
	return []initStep{
		{
			ID:      "config:load",
			Title:   "Load configuration from environment",
			Kind:    platformerrors.KindConfig,
			Execute: loadConfigStep,
		},
		{
			ID:        "logging:init",
			Title:     "Initialise logging",
			DependsOn: []string{"config:load"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initLoggingStep,
		},
		{
			ID:        "storage:init-database",
			Title:     "Open sqlite database",
			DependsOn: []string{"config:load", "logging:init"},
			Kind:      platformerrors.KindStorage,
			Execute:   initDatabaseStep,
		},
		{
			ID:        "license:init",
			Title:     "Initialise license store and service",
			DependsOn: []string{"storage:init-database"},
			Kind:      platformerrors.KindStorage,
			Execute:   initLicenseStep,
		},
		{
			ID:        "admin:bootstrap",
			Title:     "Ensure admin account exists",
			DependsOn: []string{"license:init"},
			Kind:      platformerrors.KindStorage,
			Execute:   bootstrapAdminStep,
		},
		{
			ID:        "session:init",
			Title:     "Initialise session store and manager",
			DependsOn: []string{"config:load", "logging:init"},
			Kind:      platformerrors.KindSession,
			Execute:   initSessionStep,
		},
		{
			ID:        "catalog:load",
			Title:     "Load endpoint catalog",
			DependsOn: []string{"config:load", "logging:init"},
			Kind:      platformerrors.KindCatalog,
			Execute:   loadCatalogStep,
		},
		{
			ID:        "audit:init",
			Title:     "Initialise event bus and audit trail",
			DependsOn: []string{"storage:init-database"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initAuditStep,
		},
		{
			ID:        "clients:init",
			Title:     "Initialise challenge verifier and upstream proxy",
			DependsOn: []string{"config:load", "logging:init"},
			Kind:      platformerrors.KindBootstrap,
			Execute:   initClientsStep,
		},
	}
}

func loadConfigStep(_ context.Context, state *appState) error {
	cfg, err := platformconfig.NewLoader().Load()
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindConfig, "config:load", "failed to load configuration", err)
	}
	state.config = cfg
	return nil
}

func initLoggingStep(_ context.Context, state *appState) error {
	if state.config == nil {
		return platformerrors.New(platformerrors.KindBootstrap, "logging:init", "config not loaded")
	}
	logger, err := platformlogging.New(platformlogging.Config{
		Level:    state.config.Log.Level,
		Dir:      state.config.Log.Dir,
		Filename: state.config.Log.File,
	})
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "logging:init", "failed to initialise logging", err)
	}
	state.logger = logger
	platformlogging.Default = logger

	logger.InfoTag("bootstrap", "logging ready [%s]", state.config.Log.Level)
	return nil
}

func initDatabaseStep(_ context.Context, state *appState) error {
	if state.config.Storage.DBPath == "" {
		state.logger.WarnTag("bootstrap", "no database path configured, running without persistence")
		return nil
	}
	db, err := platformstorage.Open(state.config.Storage.DBPath)
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindStorage, "storage:init-database", "failed to open database", err)
	}
	state.db = db
	state.logger.InfoTag("bootstrap", "database ready at %s", state.config.Storage.DBPath)
	return nil
}

func initLicenseStep(_ context.Context, state *appState) error {
	if state.db != nil {
		state.licenseStore = licensestore.NewSQLiteStore(state.db)
	} else {
		state.licenseStore = licensestore.NewMemoryStore()
	}
	state.licenses = license.NewService(state.licenseStore, state.logger)
	return nil
}

func bootstrapAdminStep(ctx context.Context, state *appState) error {
	_, err := state.licenseStore.FindAdmin(ctx, adminUsername)
	if err == nil {
		return nil
	}
	if err != licensestore.ErrNotFound {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(state.config.Admin.BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "admin:bootstrap", "failed to hash admin password", err)
	}
	if _, err := state.licenseStore.CreateAdmin(ctx, adminUsername, string(hash)); err != nil {
		// Another instance may have won the race.
		if err == licensestore.ErrAdminExists {
			return nil
		}
		return err
	}
	state.logger.InfoTag("bootstrap", "admin account %q created", adminUsername)
	return nil
}

func initSessionStep(_ context.Context, state *appState) error {
	st, err := sessionstore.New(state.config.Session, state.logger)
	if err != nil {
		return err
	}
	codec := session.NewCodec(state.config.Session.Secret)
	state.sessions = session.NewManager(st, codec, state.config.Session.TTL, state.logger)
	return nil
}

func loadCatalogStep(_ context.Context, state *appState) error {
	if path := state.config.Catalog.Path; path != "" {
		cat, err := catalog.Load(path)
		if err != nil {
			return err
		}
		state.catalog = cat
		state.logger.InfoTag("bootstrap", "catalog loaded from %s (%d endpoints)", path, cat.Len())
	} else {
		state.catalog = catalog.Default()
		state.logger.InfoTag("bootstrap", "built-in catalog loaded (%d endpoints)", state.catalog.Len())
	}
	state.resolver = resolver.New(state.catalog)
	return nil
}

func initAuditStep(_ context.Context, state *appState) error {
	state.bus = eventbus.New(state.logger)
	if state.db == nil {
		state.logger.WarnTag("bootstrap", "no database, audit events will not be persisted")
		return nil
	}
	if _, err := eventbus.NewRecorder(state.bus, state.db, state.logger); err != nil {
		return platformerrors.Wrap(platformerrors.KindBootstrap, "audit:init", "failed to subscribe audit recorder", err)
	}
	return nil
}

func initClientsStep(_ context.Context, state *appState) error {
	if state.config.Challenge.Secret == "" {
		state.logger.WarnTag("bootstrap", "no challenge secret configured, every verification will fail")
	}
	state.verifier = challenge.NewVerifier(state.config.Challenge, state.logger)
	state.proxy = upstream.NewProxy(state.config.Upstream, state.logger)
	return nil
}

func startHTTPServer(state *appState, g *errgroup.Group, groupCtx context.Context) (*http.Server, error) {
	config := state.config
	logger := state.logger

	httpRouter, err := httptransport.Build(httptransport.Options{
		Config:   config,
		Logger:   logger,
		Sessions: state.sessions,
	})
	if err != nil {
		return nil, err
	}
	router := httpRouter.Engine
	root := httpRouter.Root

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			httptransport.RespondError(c, http.StatusNotFound, "not found", gin.H{})
			return
		}
		c.Redirect(http.StatusFound, "/")
	})

	panelService, err := httppanel.NewService(config, logger, state.sessions, state.licenses, state.catalog, state.bus)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindTransport, "panel:new-service", "failed to create panel service", err)
	}
	adminService, err := httpadmin.NewService(config, logger, state.sessions, state.licenses, state.licenseStore, state.bus)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindTransport, "admin:new-service", "failed to create admin service", err)
	}
	apiService, err := httpapi.NewService(config, logger, state.sessions, state.licenses, state.catalog, state.resolver, state.verifier, state.proxy, state.bus)
	if err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindTransport, "api:new-service", "failed to create api service", err)
	}

	panelService.Register(groupCtx, root)
	adminService.Register(groupCtx, root)
	apiService.Register(groupCtx, root)

	router.GET("/openapi.json", func(c *gin.Context) {
		doc, err := swag.ReadDoc()
		if err != nil {
			logger.ErrorTag("HTTP", "failed to generate openapi spec: %v", err)
			httptransport.RespondError(c, http.StatusInternalServerError, "failed to generate openapi spec", gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	})
	router.GET("/docs", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(scalarHTML))
	})

	httpServer := &http.Server{
		Addr:    ":" + strconv.Itoa(config.Server.Port),
		Handler: router,
	}

	g.Go(func() error {
		logger.InfoTag("HTTP", "server listening on http://localhost:%d", config.Server.Port)

		go func() {
			<-groupCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.ErrorTag("HTTP", "server shutdown failed: %v", err)
			} else {
				logger.InfoTag("HTTP", "server shut down cleanly")
			}
		}()

		if err := httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			logger.ErrorTag("HTTP", "server failed: %v", err)
			return err
		}
		return nil
	})

	return httpServer, nil
}

func waitForShutdown(
	ctx context.Context,
	cancel context.CancelFunc,
	logger *platformlogging.Logger,
	g *errgroup.Group,
	bus *eventbus.Bus,
) error {
	<-ctx.Done()
	logger.InfoTag("bootstrap", "shutdown signal received, cleaning up")

	cancel()

	done := make(chan error, 1)
	go func() {
		err := g.Wait()
		if bus != nil {
			bus.WaitAsync()
		}
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.ErrorTag("bootstrap", "error during shutdown: %v", err)
			return err
		}
		logger.InfoTag("bootstrap", "all services stopped")
	case <-time.After(15 * time.Second):
		logger.ErrorTag("bootstrap", "shutdown timed out, forcing exit")
		return stderrors.New("shutdown timed out")
	}
	return nil
}
