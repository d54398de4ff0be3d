package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"expensetrack/internal/config"
	"expensetrack/internal/logger"
	"expensetrack/internal/mailer"
	"expensetrack/internal/router"
	"expensetrack/internal/schedule"
	"expensetrack/internal/storage/sqlite"
	"expensetrack/internal/token"
)

const shutdownTimeout = 30 * time.Second

func main() {
	var configPath string
	flag.StringVar(&configPath, "c", defaultConfigPath(), "Configuration file")
	flag.Parse()

	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	conf, err := config.Parse(configPath)
	if err != nil {
		os.Stderr.WriteString("unable to parse the configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(conf.Logger)

	if err = conf.Validate(); err != nil {
		log.Fatal("invalid configuration", "error", err)
	}

	stor, err := sqlite.New(conf.DB)
	if err != nil {
		log.Fatal("unable to open database", "error", err)
	}
	defer stor.Close()

	if err = stor.ApplyMigrations(context.Background(), log); err != nil {
		log.Fatal("unable to apply migrations", "error", err)
	}

	tokens := token.NewIssuer(conf.Token.Secret, conf.Token.TTL.Std())
	handler, _ := router.New(stor, tokens, conf.Session.IdleTimeout.Std(), log)

	scheduler := schedule.New(log)
	if conf.SMTP.Host != "" && conf.SMTP.To != "" {
		sender := mailer.New(conf.SMTP.Host, conf.SMTP.Port, conf.SMTP.Username, conf.SMTP.Password, conf.SMTP.From)
		job := schedule.MonthlyReportJob(stor, sender, conf.SMTP.To, log)
		if err = scheduler.AddMonthlyJob(conf.Report.Schedule, job); err != nil {
			log.Fatal("unable to schedule monthly report", "error", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	} else {
		log.Info("monthly report disabled: SMTP host or destination not configured")
	}

	srv := &http.Server{
		Addr:           conf.Server.Addr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		log.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error("server shutdown error", "error", shutdownErr)
		}
		cancel()
	}()

	log.Info("starting server", "addr", conf.Server.Addr)
	if err = srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server error", "error", err)
	}

	<-ctx.Done()
	log.Info("server stopped gracefully")
}

func defaultConfigPath() string {
	if path := os.Getenv("EXPENSETRACK_CONFIG"); path != "" {
		return path
	}
	return "expensetrack.toml"
}
