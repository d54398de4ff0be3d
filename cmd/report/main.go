package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"expensetrack/internal/cli/report"
	"expensetrack/internal/config"
	"expensetrack/internal/logger"
	"expensetrack/internal/storage/sqlite"
)

var (
	username = flag.String("user", "", "username to report on")
	period   = flag.String("period", report.PeriodWeek, "report period: week or month")
	verbose  = flag.Bool("v", false, "list the individual expenses")
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "c", "expensetrack.toml", "Configuration file")
	flag.Parse()

	_ = godotenv.Load()

	conf, err := config.Parse(configPath)
	if err != nil {
		log.Fatalf("Unable to parse the configuration: %s", err.Error())
	}

	stor, err := sqlite.New(conf.DB)
	if err != nil {
		log.Fatalf("Unable to open the database: %s", err.Error())
	}
	defer stor.Close()

	ctx := context.Background()
	if err = stor.ApplyMigrations(ctx, logger.New(conf.Logger)); err != nil {
		log.Fatalf("Unable to apply migrations: %s", err.Error())
	}

	opts := report.Options{
		Username: *username,
		Period:   *period,
		Verbose:  *verbose,
	}

	if err = report.Run(ctx, stor, os.Stdout, opts); err != nil {
		log.Fatalf("Unable to generate report: %s", err.Error())
	}
}
