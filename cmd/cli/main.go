package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/de-tools/impact-atlas/pkg/models/api"
	"github.com/de-tools/impact-atlas/pkg/models/domain"
	"github.com/de-tools/impact-atlas/pkg/services/config"
	"github.com/de-tools/impact-atlas/pkg/services/ingest"
	"github.com/de-tools/impact-atlas/pkg/services/report"
	"github.com/de-tools/impact-atlas/pkg/store/duckdb"
	duckdbaggregate "github.com/de-tools/impact-atlas/pkg/store/duckdb/aggregate"
	duckdbreport "github.com/de-tools/impact-atlas/pkg/store/duckdb/report"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath   string
	reportID  int64
	batchFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "atlas",
		Short: "Maintenance commands for Impact Atlas",
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a server config file (optional, SERVER_* env vars override)")

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate a report snapshot",
		RunE:  runGenerate,
	}
	generateCmd.Flags().Int64Var(&reportID, "report", 0, "Report id to regenerate")
	_ = generateCmd.MarkFlagRequired("report")

	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest a measurement batch from a JSON file",
		RunE:  runIngest,
	}
	ingestCmd.Flags().StringVar(&batchFile, "file", "", "Path to a batch JSON file")
	_ = ingestCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(generateCmd, ingestCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadDBSettings() (*duckdb.Settings, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}
	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return &duckdb.Settings{DbPath: settings.DbPath}, nil
}

// CLI invocations run with full access; scoping is a concern of the
// HTTP surface where identities come from the gateway.
var cliCaller = domain.Caller{Subject: "cli", Role: domain.RoleAdmin}

func runGenerate(cmd *cobra.Command, _ []string) error {
	dbSettings, err := loadDBSettings()
	if err != nil {
		return err
	}
	db, err := duckdb.NewDB(*dbSettings)
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	reportStore, err := duckdbreport.NewStore(db)
	if err != nil {
		return err
	}
	aggregateStore, err := duckdbaggregate.NewStore(db)
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	engine := report.NewEngine(reportStore, aggregateStore)
	generated, err := engine.Generate(ctx, cliCaller, reportID)
	if err != nil {
		return err
	}

	fmt.Printf("Report %d (%s) regenerated: %d rows\n", generated.ID, generated.Name, len(generated.CachedRows))
	return nil
}

func runIngest(cmd *cobra.Command, _ []string) error {
	payload, err := os.ReadFile(batchFile)
	if err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}
	var req api.BulkAggregates
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("failed to parse batch file: %w", err)
	}
	batch := ingest.Batch{
		ProjectID:      req.Project,
		OrganizationID: req.Organization,
		PeriodStart:    req.PeriodStart,
		PeriodEnd:      req.PeriodEnd,
	}
	for _, item := range req.Data {
		batch.Items = append(batch.Items, ingest.Item{
			IndicatorID: item.Indicator,
			Value:       item.Value,
			Notes:       item.Notes,
		})
	}

	dbSettings, err := loadDBSettings()
	if err != nil {
		return err
	}
	db, err := duckdb.NewDB(*dbSettings)
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	aggregateStore, err := duckdbaggregate.NewStore(db)
	if err != nil {
		return err
	}
	svc, err := ingest.NewService(db, aggregateStore)
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	created, err := svc.BulkCreate(ctx, cliCaller, batch)
	if err != nil {
		return err
	}

	fmt.Printf("Ingested %d records\n", created)
	return nil
}
