package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"

	echoapi "github.com/trezcool/masomo-portal/apps/portal/echo"
	"github.com/trezcool/masomo-portal/apps/portal/views"
	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/portal"
	"github.com/trezcool/masomo-portal/core/user"
	logsvc "github.com/trezcool/masomo-portal/services/logger"
	notifysvc "github.com/trezcool/masomo-portal/services/notify"
	"github.com/trezcool/masomo-portal/storage/inmem"
	redisstore "github.com/trezcool/masomo-portal/storage/redis"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "PORTAL : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.RegisterValidators(validate, translator)

	db := inmem.Open()
	usrSvc := user.NewService(inmem.NewUserRepository(db), validate, translator)
	if err := usrSvc.SeedAccounts(context.Background(), conf.Accounts); err != nil {
		logger.Fatal(fmt.Sprintf("seeding accounts: %v", err), err)
	}

	// set up session store
	var store portal.SessionStore
	switch conf.Session.Store {
	case "redis":
		client, err := redisstore.Open(context.Background(), conf.Redis)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up redis: %v", err), err)
		}
		defer func() {
			if err := client.Close(); err != nil {
				logger.Error("closing redis", err)
			}
		}()
		store = redisstore.NewSessionStore(client, "", conf.Session.TTL)
	case "memory", "":
		store = inmem.NewSessionStore(db, conf.Session.TTL)
	default:
		logger.Fatal(fmt.Sprintf("unknown session store %q", conf.Session.Store))
	}

	// set up portal
	notifier := notifysvc.NewFlashNotifier(logger)
	var auth portal.Authenticator = usrSvc
	if conf.Portal.TrustedLogin {
		logger.Warn("trusted login enabled: the login form grants any role")
		auth = portal.TrustedAuthenticator
	} else if len(conf.Accounts) == 0 {
		logger.Warn("no accounts configured: nobody can log in")
	}
	if conf.Portal.SkipAuth {
		logger.Warn("skip auth enabled: new sessions start as admin")
	}
	svc := portal.NewService(
		views.DefaultRegistry(),
		portal.NewGate(auth, notifier),
		notifier,
		portal.Options{SkipAuth: conf.Portal.SkipAuth},
	)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start Debug Service
	//
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("sessionStore").Set(conf.Session.Store)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start Portal Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:       conf,
			Logger:     logger,
			Service:    svc,
			Store:      store,
			Toasts:     notifier,
			Metrics:    echoapi.NewMetrics(),
			Validate:   validate,
			Translator: translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
