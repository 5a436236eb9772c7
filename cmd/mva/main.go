package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/Mazzol/MVA/adapters/api"
	"github.com/Mazzol/MVA/adapters/excel"
	"github.com/Mazzol/MVA/adapters/postgres"
	"github.com/Mazzol/MVA/adapters/stats/engine"
	"github.com/Mazzol/MVA/adapters/textio"
	"github.com/Mazzol/MVA/app"
	"github.com/Mazzol/MVA/domain/sensitivity"
	"github.com/Mazzol/MVA/internal"
	"github.com/Mazzol/MVA/internal/config"
	"github.com/Mazzol/MVA/ports"
)

func main() {
	// .env is optional; environment variables win.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "mva",
		Short: "Sensitivity index estimation for augmented Monte-Carlo model outputs",
	}

	rootCmd.AddCommand(
		newIndicesCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newIndicesCmd() *cobra.Command {
	var (
		infile    string
		outfile   string
		nsets     int
		methodStr string
		excelPath string
		store     bool
		parallel  int64
	)

	cmd := &cobra.Command{
		Use:   "indices",
		Short: "Derive sensitivity indices from a model output file",
		Long: `Derive the sensitivity indices for previously computed model outputs.

The input file holds one model output per line, in the fixed order produced
by the sampling design. Supported methods are [sobol] and [pawn,Nf,stat,alpha]
where Nf is the number of conditioning values, stat is mean, median or max,
and alpha is the confidence level of the Kolmogorov-Smirnov test.

Example: mva indices -i model_output_augmented.out -o indices.out -n 1000 -m [sobol]`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndices(cmd, infile, outfile, nsets, methodStr, excelPath, store, parallel)
		},
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cmd.Flags().StringVarP(&infile, "infile", "i", cfg.Files.Infile, "Model output file (one real number per line)")
	cmd.Flags().StringVarP(&outfile, "outfile", "o", cfg.Files.Outfile, "File where sensitivity index estimates are written")
	cmd.Flags().IntVarP(&nsets, "nsets", "n", cfg.Files.NSets, "Number of sensitivity samples per group")
	cmd.Flags().StringVarP(&methodStr, "method", "m", "[sobol]", "Method specification: [sobol] or [pawn,Nf,stat,alpha]")
	cmd.Flags().StringVar(&excelPath, "excel", "", "Also write the result table to this .xlsx file")
	cmd.Flags().BoolVar(&store, "store", false, "Record the run in the postgres ledger (DATABASE_URL)")
	cmd.Flags().Int64Var(&parallel, "parallel", 1, "Per-parameter parallelism for the PAWN estimator")

	return cmd
}

func runIndices(cmd *cobra.Command, infile, outfile string, nsets int, methodStr, excelPath string, store bool, parallel int64) error {
	logger := internal.NewDefaultLogger()

	method, err := sensitivity.ParseMethodSpec(methodStr)
	if err != nil {
		return err
	}

	eng := engine.New(logger)
	eng.PawnParallelism = parallel

	sinks := []ports.ReportSink{textio.NewFileReport(outfile)}
	if excelPath != "" {
		sinks = append(sinks, excel.NewWorkbookReport(excelPath))
	}

	var ledger ports.RunLedger
	if store {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.Database.URL == "" {
			return fmt.Errorf("--store requires DATABASE_URL to be set")
		}
		db, err := sqlx.Connect("postgres", cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("connect run ledger: %w", err)
		}
		defer db.Close()
		repo := postgres.NewRunRepository(db)
		if err := repo.EnsureSchema(cmd.Context()); err != nil {
			return err
		}
		ledger = repo
	}

	service := app.NewIndexService(eng, logger)
	table, err := service.Run(cmd.Context(), app.RunRequest{
		Source: textio.NewFileSource(infile),
		NSets:  nsets,
		Method: method,
		Sinks:  sinks,
		Ledger: ledger,
		Infile: infile,
	})
	if err != nil {
		return err
	}

	printTable(table)
	fmt.Printf("wrote:   %q\n", outfile)
	return nil
}

func printTable(table sensitivity.Table) {
	switch t := table.(type) {
	case *sensitivity.SobolTable:
		fmt.Print("si  = [")
		for i, rec := range t.Records {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(formatFloat(rec.FirstOrder))
		}
		fmt.Println("]")
		fmt.Print("sti = [")
		for i, rec := range t.Records {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(formatFloat(rec.TotalOrder))
		}
		fmt.Println("]")
	case *sensitivity.PawnTable:
		fmt.Print("pawn index  = [")
		for i, rec := range t.Records {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(formatFloat(rec.Index))
		}
		fmt.Println("]")
		fmt.Print("influential = [")
		for i, rec := range t.Records {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(strconv.FormatBool(rec.Influential))
		}
		fmt.Println("]")
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sensitivity index computation over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := internal.NewDefaultLogger()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port == "" {
				port = cfg.Server.Port
			}

			server := api.NewServer(engine.New(logger), logger)
			logger.Info("listening on :%s", port)
			return http.ListenAndServe(":"+port, server.Handler())
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "HTTP port (default from MVA_SERVER_PORT)")

	return cmd
}
