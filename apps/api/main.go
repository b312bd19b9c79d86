package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof on the default mux
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	echoapi "github.com/trezcool/admitcrm/apps/api/echo"
	"github.com/trezcool/admitcrm/core"
	"github.com/trezcool/admitcrm/core/student"
	emailsvc "github.com/trezcool/admitcrm/services/email"
	logsvc "github.com/trezcool/admitcrm/services/logger"
	inmemdb "github.com/trezcool/admitcrm/storage/database/inmem"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	zl, err := logsvc.NewZapLogger(conf)
	if err != nil {
		log.Fatalf("setting up logger: %v", err)
	}
	logger := logsvc.NewRollbarLogger(zl, conf)
	defer logger.Sync()

	// set up DB
	db, err := inmemdb.Seed(conf.Data.Students, conf.Data.Seed, time.Now())
	if err != nil {
		logger.Fatal(fmt.Sprintf("seeding database: %v", err), err)
	}

	// set up services
	mailSvc := emailsvc.NewConsoleService(conf, logger)
	defer mailSvc.Wait()
	studentSvc := student.NewService(
		inmemdb.NewStudentRepository(db),
		mailSvc,
		logger,
		student.Options{
			Rule:         student.AttentionRule{Window: conf.Attention.Window, Tag: conf.Attention.Tag},
			DefaultLimit: conf.Directory.DefaultLimit,
			StaffName:    conf.StaffName,
		},
	)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	student.InitValidators(validate, translator)

	core.ParseEmailTemplates(logger, conf.Debug)

	// =========================================================================
	// Start Debug & API Services
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewInt("students").Set(int64(conf.Data.Students))

	debugSrv := &http.Server{
		Addr:              conf.Server.DebugAddress,
		Handler:           http.DefaultServeMux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	server := echoapi.NewServer(
		echoapi.Options{
			Conf:       conf,
			Logger:     logger,
			StudentSvc: studentSvc,
			Validate:   validate,
			Translator: translator,
		},
	)

	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		if conf.Server.DebugAddress == "" {
			return nil
		}
		logger.Info(fmt.Sprintf("debug server listening on %s", conf.Server.DebugAddress))
		if err := debugSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "debug server closed")
		}
		return nil
	})
	g.Go(func() error {
		return errors.Wrap(server.Start(), "api server closed")
	})

	// =========================================================================
	// Shutdown

	g.Go(func() error {
		select {
		case <-gctx.Done():
			logger.Warn("a server stopped: Start shutdown...")
		case sig := <-server.ShutdownSignal():
			logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))
		}

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				return errors.Wrap(err, "could not force stop server")
			}
		}
		return errors.Wrap(debugSrv.Shutdown(ctx), "stopping debug server")
	})

	if err = g.Wait(); err != nil {
		logger.Error(fmt.Sprintf("%+v", err), err)
	}
}
