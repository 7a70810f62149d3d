// Command importer moves transactions in and out of the ledger as CSV, and
// runs the monthly maintenance operations (recurring generation, month
// closure) that do not need an interactive surface.
package main

import (
	"flag"
	"fmt"
	"os"

	"finledger/internal/config"
	"finledger/internal/database"
	"finledger/internal/logger"
	"finledger/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Env)
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("importer error: %v", err)
	}
}

func usage() error {
	return fmt.Errorf(`usage: importer <command> [flags]

commands:
  import   -file <path>                      import a CSV file
  export   -file <path> [-competency MM/YYYY] export transactions as CSV
  generate -competency MM/YYYY               project recurring definitions
  close    -competency MM/YYYY               mark a month as closed`)
}

func run() error {
	if len(os.Args) < 2 {
		return usage()
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}
	manager, err := database.NewManager(dbConfig)
	if err != nil {
		return err
	}
	if err := manager.RunMigrations(); err != nil {
		return err
	}

	db := manager.DB()
	transactions := services.NewTransactionService(db)
	importer := services.NewImportService(db, transactions)
	recurring := services.NewRecurringService(db)
	closedMonths := services.NewClosedMonthService(db)

	switch os.Args[1] {
	case "import":
		fs := flag.NewFlagSet("import", flag.ExitOnError)
		file := fs.String("file", "", "CSV file to import")
		_ = fs.Parse(os.Args[2:])
		if *file == "" {
			return fmt.Errorf("import: -file is required")
		}
		content, err := os.ReadFile(*file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", *file, err)
		}
		result, err := importer.ImportCSV(string(content))
		if err != nil {
			return err
		}
		fmt.Printf("rows: %d, imported: %d, failed: %d\n", result.TotalRows, result.Imported, result.Failed)
		for _, e := range result.Errors {
			fmt.Println("  " + e)
		}

	case "export":
		fs := flag.NewFlagSet("export", flag.ExitOnError)
		file := fs.String("file", "", "destination file, defaults to stdout")
		comp := fs.String("competency", "", "restrict to one competency (MM/YYYY)")
		_ = fs.Parse(os.Args[2:])

		filter := services.TransactionFilter{}
		if *comp != "" {
			filter.Competency = comp
		}
		out, err := importer.ExportCSV(filter)
		if err != nil {
			return err
		}
		if *file == "" {
			fmt.Print(out)
			return nil
		}
		if err := os.WriteFile(*file, []byte(out), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", *file, err)
		}

	case "generate":
		fs := flag.NewFlagSet("generate", flag.ExitOnError)
		comp := fs.String("competency", "", "target competency (MM/YYYY)")
		_ = fs.Parse(os.Args[2:])
		if *comp == "" {
			return fmt.Errorf("generate: -competency is required")
		}
		generated, issues, err := recurring.GenerateForMonth(*comp)
		if err != nil {
			return err
		}
		fmt.Printf("generated %d transaction(s) for %s\n", len(generated), *comp)
		for _, issue := range issues {
			fmt.Printf("  skipped %q: %s\n", issue.Description, issue.Reason)
		}

	case "close":
		fs := flag.NewFlagSet("close", flag.ExitOnError)
		comp := fs.String("competency", "", "competency to close (MM/YYYY)")
		_ = fs.Parse(os.Args[2:])
		if *comp == "" {
			return fmt.Errorf("close: -competency is required")
		}
		months, err := closedMonths.Close(*comp)
		if err != nil {
			return err
		}
		fmt.Printf("closed months: %v\n", months)

	default:
		return usage()
	}
	return nil
}
