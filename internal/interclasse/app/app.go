package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/projetointerclasse/interclasse/internal/interclasse/http"
	"github.com/projetointerclasse/interclasse/internal/interclasse/service"
	"github.com/projetointerclasse/interclasse/internal/interclasse/store"
	"github.com/projetointerclasse/interclasse/pkg/cryptox"
	"github.com/projetointerclasse/interclasse/pkg/jwtx"
	"github.com/projetointerclasse/interclasse/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	issuer = "interclasse"
)

// Application wires the stores, services and HTTP server together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	records  store.KV
	devices  store.KV
	sessions store.KV
	signer   *jwtx.ScopeSigner
	hasher   cryptox.PasswordHasher

	// Services
	recordStore         *store.Records
	registrationService *service.RegistrationService
	loginService        *service.LoginService
	tournamentService   *service.TournamentService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "interclasse",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initSecrets(); err != nil {
		return nil, err
	}
	if err := app.initStores(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("interclasse starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"store_backend", app.cfg.StoreBackend,
		"session_backend", app.cfg.SessionBackend,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down interclasse...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	var errs []error
	if err := app.sessions.Close(); err != nil {
		app.logger.Error("error closing session store", "error", err)
		errs = append(errs, err)
	}
	if err := app.devices.Close(); err != nil {
		app.logger.Error("error closing device store", "error", err)
		errs = append(errs, err)
	}
	if err := app.records.Close(); err != nil {
		app.logger.Error("error closing record store", "error", err)
		errs = append(errs, err)
	}

	app.logger.Info("interclasse stopped")
	return errors.Join(errs...)
}

// initSecrets loads the password pepper and the cookie signing key, creating
// them on first start.
func (app *Application) initSecrets() error {
	pepper, err := cryptox.LoadOrGenerateSecret(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.PasswordHasher{Pepper: pepper}

	key, err := cryptox.LoadOrGenerateSecret(app.cfg.SessionSecretFile)
	if err != nil {
		return fmt.Errorf("failed to load session secret: %w", err)
	}
	app.signer = &jwtx.ScopeSigner{Secret: []byte(key), Issuer: issuer}
	return nil
}

func (app *Application) initStores() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	records, err := OpenRecordStore(ctx, app.cfg)
	if err != nil {
		return err
	}
	app.records = records

	devices, err := OpenDeviceStore(ctx, app.cfg, httpapi.DeviceTTL)
	if err != nil {
		_ = records.Close()
		return err
	}
	app.devices = devices

	sessions, err := OpenSessionStore(ctx, app.cfg)
	if err != nil {
		_ = devices.Close()
		_ = records.Close()
		return err
	}
	app.sessions = sessions

	app.logger.Info("stores ready",
		"store_backend", app.cfg.StoreBackend,
		"session_backend", app.cfg.SessionBackend,
	)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.recordStore = store.NewRecords(app.records, app.hasher)

	app.registrationService = &service.RegistrationService{
		Users:  app.recordStore,
		Hasher: app.hasher,
	}
	app.loginService = &service.LoginService{
		Records: app.recordStore,
		Delay:   app.cfg.LoginDelay,
	}
	app.tournamentService = &service.TournamentService{Records: app.recordStore}

	app.housekeepingService = service.NewHousekeepingService(
		app.logger,
		app.cfg.HousekeepingInterval,
		app.sessions,
		app.devices,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		app.records,
		app.sessions,
		BuildVersion,
		app.logger,
	)
	router.SetCookiePolicy(app.cfg.SessionTTL, app.cfg.CookieSecure)
	router.SetDeviceStore(app.devices)

	router.RegistrationService = app.registrationService
	router.LoginService = app.loginService
	router.TournamentService = app.tournamentService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
