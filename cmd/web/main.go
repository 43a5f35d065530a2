package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/impact-atlas/pkg/server"
	"github.com/de-tools/impact-atlas/pkg/services/analytics"
	"github.com/de-tools/impact-atlas/pkg/services/config"
	"github.com/de-tools/impact-atlas/pkg/services/ingest"
	"github.com/de-tools/impact-atlas/pkg/services/org"
	"github.com/de-tools/impact-atlas/pkg/services/report"
	"github.com/de-tools/impact-atlas/pkg/store/duckdb"
	duckdbaggregate "github.com/de-tools/impact-atlas/pkg/store/duckdb/aggregate"
	duckdbcatalog "github.com/de-tools/impact-atlas/pkg/store/duckdb/catalog"
	duckdbreport "github.com/de-tools/impact-atlas/pkg/store/duckdb/report"
	duckdbschedule "github.com/de-tools/impact-atlas/pkg/store/duckdb/schedule"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Impact Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a server config file (optional, SERVER_* env vars override)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: settings.DbPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	aggregateStore, err := duckdbaggregate.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create aggregate store: %w", err)
	}
	catalogStore, err := duckdbcatalog.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create catalog store: %w", err)
	}
	reportStore, err := duckdbreport.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create report store: %w", err)
	}
	scheduleStore, err := duckdbschedule.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create schedule store: %w", err)
	}

	ingestSvc, err := ingest.NewService(db, aggregateStore)
	if err != nil {
		return fmt.Errorf("failed to create ingest service: %w", err)
	}

	addr := net.JoinHostPort(settings.Host, settings.Port)
	api := server.NewWebAPI(server.Config{
		Addr:            addr,
		ShutdownTimeout: settings.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Aggregator: analytics.NewAggregator(aggregateStore, catalogStore),
			Engine:     report.NewEngine(reportStore, aggregateStore),
			Scheduler:  report.NewScheduler(scheduleStore),
			Explorer:   org.NewExplorer(catalogStore),
			Ingest:     ingestSvc,
			Logger:     logger,
		},
	})

	return api.Start()
}
