package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"benchgate/adapters/postgres"
	"benchgate/domain/findings"
	"benchgate/internal/agents"
	"benchgate/internal/config"
	"benchgate/internal/docs"
	"benchgate/internal/errors"
	"benchgate/internal/testkit"
	"benchgate/internal/validation"
	"benchgate/ports"
	"benchgate/ui"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "benchgate",
		Short:        "Utility data validation gate for energy benchmarking submissions",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			os.Setenv("LOG_LEVEL", "DEBUG")
		}
	}

	rootCmd.AddCommand(
		newValidateCmd(),
		newChecklistCmd(),
		newDocsCmd(),
		newStatusCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildLedger picks the Postgres ledger when a database is configured
// and falls back to the in-memory one otherwise.
func buildLedger(cfg *config.Config) (ports.RunLedger, error) {
	if cfg.Database.URL == "" {
		return testkit.NewInMemoryRunLedger(), nil
	}
	db, err := postgres.Connect(cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	return postgres.NewRunLedger(db)
}

func newValidateCmd() *cobra.Command {
	var output string
	var minValue, maxValue float64
	var concurrency int

	cmd := &cobra.Command{
		Use:   "validate [files...]",
		Short: "Validate utility data files",
		Long: `Validate one or more utility data files (CSV or XLSX) against the
submission schema and data-quality rules, writing a JSON report per file.

Example: benchgate validate utility_data.csv --min-value 0 --max-value 1000000`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return errors.InvalidInput("--output can only be used with a single input file")
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("min-value") {
				minValue = cfg.Validation.MinValueThreshold
			}
			if !cmd.Flags().Changed("max-value") {
				maxValue = cfg.Validation.MaxValueThreshold
			}

			ledger, err := buildLedger(cfg)
			if err != nil {
				return err
			}

			validator := agents.NewValidator(agents.ValidatorConfig{
				MinValueThreshold: minValue,
				MaxValueThreshold: maxValue,
				OutputDir:         cfg.Reports.OutputDir,
				Ledger:            ledger,
			})

			allPassed := true
			if len(args) == 1 {
				report, err := validator.Run(cmd.Context(), args[0], output)
				if err != nil {
					return err
				}
				printReport(report)
				allPassed = report.Passed
			} else {
				results := validator.RunMany(cmd.Context(), args, concurrency)
				for _, res := range results {
					if res.Err != nil {
						fmt.Fprintf(os.Stderr, "%s: %v\n", res.File, res.Err)
						allPassed = false
						continue
					}
					printReport(res.Report)
					allPassed = allPassed && res.Report.Passed
				}
			}

			if !allPassed {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output report path (single file only)")
	cmd.Flags().Float64Var(&minValue, "min-value", 0.0, "minimum acceptable value for numeric columns")
	cmd.Flags().Float64Var(&maxValue, "max-value", 1e9, "maximum acceptable value for numeric columns")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "concurrent validations when multiple files are given")

	return cmd
}

func printReport(report findings.Report) {
	divider := strings.Repeat("=", 60)
	fmt.Println()
	fmt.Println(divider)
	fmt.Println("VALIDATION RESULTS")
	fmt.Println(divider)
	fmt.Printf("File: %s\n", report.InputFile)
	fmt.Printf("Status: %s\n", report.ValidationStatus)
	fmt.Printf("Rows Processed: %d\n", report.Summary.RowsProcessed)
	fmt.Printf("Errors: %d\n", report.Summary.TotalErrors)
	fmt.Printf("Warnings: %d\n", report.Summary.TotalWarnings)

	if len(report.Errors) > 0 {
		fmt.Println("\nErrors Found:")
		for i, e := range report.Errors {
			if i == 5 {
				break
			}
			fmt.Printf("  - [%s] %s\n", e.Type, e.Message)
		}
	}

	if len(report.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for i, w := range report.Warnings {
			if i == 5 {
				break
			}
			fmt.Printf("  - [%s] %s\n", w.Type, w.Message)
		}
	}
	fmt.Println(divider)
}

func newChecklistCmd() *cobra.Command {
	var buildingID, output string
	var year int

	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Generate a compliance checklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			engineer := agents.NewProcessEngineer(year)
			checklist := engineer.CreateChecklist(buildingID, year)

			fmt.Println(docs.RenderChecklist(checklist))

			if output != "" {
				if err := engineer.SaveJSON(checklist, output); err != nil {
					return err
				}
				fmt.Printf("Saved to: %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&buildingID, "building-id", "b", "", "building identifier")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "compliance year (defaults to current)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")

	return cmd
}

func newDocsCmd() *cobra.Command {
	var output, htmlOutput string
	var year int

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Generate process documentation",
		RunE: func(cmd *cobra.Command, args []string) error {
			engineer := agents.NewProcessEngineer(year)
			doc := engineer.GenerateDocumentation(year)

			md := docs.RenderDocumentation(doc)
			fmt.Println(md)

			if output != "" {
				if err := engineer.SaveJSON(doc, output); err != nil {
					return err
				}
				fmt.Printf("Saved to: %s\n", output)
			}
			if htmlOutput != "" {
				if err := os.WriteFile(htmlOutput, docs.ToHTML(md), 0o644); err != nil {
					return err
				}
				fmt.Printf("Saved HTML to: %s\n", htmlOutput)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "regulation year (defaults to current)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "JSON output file path")
	cmd.Flags().StringVar(&htmlOutput, "html", "", "HTML output file path")

	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show agent status and run history summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ledger, err := buildLedger(cfg)
			if err != nil {
				return err
			}

			validator := agents.NewValidator(agents.ValidatorConfig{Ledger: ledger})
			engineer := agents.NewProcessEngineer(0)

			divider := strings.Repeat("=", 60)
			fmt.Println(divider)
			fmt.Println("AGENT STATUS")
			fmt.Println(divider)
			for _, info := range []agents.StatusInfo{validator.Status(), engineer.Status()} {
				fmt.Printf("\n%s\n", strings.ToUpper(info.AgentName))
				fmt.Printf("  Status: %s\n", info.Status)
				fmt.Printf("  Capabilities: %d\n", len(info.Capabilities))
				for _, capability := range info.Capabilities {
					fmt.Printf("    - %s\n", capability)
				}
			}

			summary, err := ledger.Summary(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("\nRecorded runs: %d (passed %d, failed %d)\n",
				summary.TotalRuns, summary.Passed, summary.Failed)
			fmt.Println(divider)
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the validation HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port == "" {
				port = cfg.Server.Port
			}

			ledger, err := buildLedger(cfg)
			if err != nil {
				return err
			}

			opts := validation.Options{
				MinValueThreshold: cfg.Validation.MinValueThreshold,
				MaxValueThreshold: cfg.Validation.MaxValueThreshold,
			}
			app := ui.NewApp(opts, ledger)
			return app.Start(ui.Config{Port: port})
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (defaults to PORT env or 8080)")
	return cmd
}
