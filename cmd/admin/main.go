package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"homefront/internal/domain/dashboard"
	"homefront/internal/domain/debt"
	"homefront/internal/domain/expense"
	"homefront/internal/domain/income"
	"homefront/internal/domain/user"
	"homefront/internal/infrastructure/postgres"
	"homefront/internal/shared/config"
)

const usage = `Homefront Admin CLI - Management commands for the Homefront API

Usage:
  admin <command> [options]

Commands:
  migrate          Apply pending database migrations
  payoff-report    Print each user's dashboard summary and payoff projection

Examples:
  # Apply the schema
  admin migrate

  # Report for one user
  admin payoff-report --user-id=1

  # Report for several users as JSON
  admin payoff-report --user-id=1,2,3 --format=json

  # Report for all users with higher concurrency
  admin payoff-report --all --workers=8 --timeout=5m --format=yaml
`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		runMigrate(os.Args[2:])
	case "payoff-report":
		runPayoffReport(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Println(usage)
		os.Exit(1)
	}
}

func connect() (*postgres.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Connected to database")
	return db, nil
}

func runMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	timeoutStr := fs.String("timeout", "5m", "Timeout for the operation (e.g., 30s, 5m)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	db, err := connect()
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied")
}

func runPayoffReport(args []string) {
	fs := flag.NewFlagSet("payoff-report", flag.ExitOnError)

	userIDStr := fs.String("user-id", "", "User ID(s) to report (comma-separated for multiple)")
	allUsers := fs.Bool("all", false, "Report every user")
	workers := fs.Int("workers", DefaultWorkerCount, "Number of concurrent workers")
	timeoutStr := fs.String("timeout", "10m", "Timeout for the operation (e.g., 5m, 1h)")
	format := fs.String("format", FormatTable, "Output format: table, json or yaml")

	fs.Usage = func() {
		fmt.Println("Usage: admin payoff-report [options]")
		fmt.Println("\nOptions:")
		fs.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Println("  admin payoff-report --user-id=1")
		fmt.Println("  admin payoff-report --user-id=1,2,3 --format=json")
		fmt.Println("  admin payoff-report --all --workers=8 --timeout=1h")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *userIDStr == "" && !*allUsers {
		fmt.Println("Error: must specify --user-id or --all")
		fs.Usage()
		os.Exit(1)
	}
	if !IsValidFormat(*format) {
		fmt.Printf("Error: unknown format %q\n", *format)
		fs.Usage()
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	db, err := connect()
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var userIDs []int64
	if *allUsers {
		users, err := user.NewService(postgres.NewUserRepository(db)).List(ctx)
		if err != nil {
			log.Fatalf("Failed to list users: %v", err)
		}
		for _, u := range users {
			userIDs = append(userIDs, u.ID)
		}
		log.Printf("Found %d users", len(userIDs))
	} else {
		userIDs, err = ParseUserIDs(*userIDStr)
		if err != nil {
			log.Fatal(err)
		}
	}

	if len(userIDs) == 0 {
		log.Println("No users to process")
		return
	}

	// No cache: the report always reflects the database.
	summaries := dashboard.NewService(
		income.NewService(postgres.NewIncomeRepository(db)),
		expense.NewService(postgres.NewExpenseRepository(db)),
		debt.NewService(postgres.NewDebtRepository(db)),
		nil,
	)

	log.Printf("Building payoff report for %d user(s) with %d workers", len(userIDs), *workers)
	startTime := time.Now()

	rows, err := BuildReport(ctx, summaries, userIDs, *workers)
	if err != nil {
		log.Fatalf("Payoff report failed: %v", err)
	}

	if err := WriteReport(os.Stdout, *format, rows); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	log.Printf("Payoff report completed in %v", time.Since(startTime))
}
