package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/hotel/backend/internal/infrastructure/config"
	"github.com/hotel/backend/internal/infrastructure/logger"
	"github.com/hotel/backend/internal/infrastructure/migration"
)

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "migrations", "path to the migrations directory")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger init failed:", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	migrationsPath, err = filepath.Abs(migrationsPath)
	if err != nil {
		log.Fatal("Failed to resolve migrations path", zap.Error(err))
	}

	// create and list work on the filesystem only
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Usage: migrate create <name> [description]")
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		mf, err := migration.CreateMigration(migrationsPath, args[1], description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created",
			zap.String("version", mf.Version),
			zap.String("up", mf.UpPath),
			zap.String("down", mf.DownPath),
		)
		return

	case "list":
		names, err := migration.ListMigrations(migrationsPath)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		log.Info("Available migrations", zap.Int("count", len(names)))
		for _, name := range names {
			fmt.Println("  -", name)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Database unreachable", zap.Error(err))
	}

	migrator, err := migration.New(db, migrationsPath, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer migrator.Close()

	switch command {
	case "up":
		err = migrator.Up()

	case "down":
		err = migrator.Down()

	case "step":
		n, convErr := intArg(args, "Usage: migrate step <n>", log)
		if convErr != nil {
			log.Fatal("Invalid step count", zap.Error(convErr))
		}
		err = migrator.Steps(n)

	case "goto":
		target, convErr := intArg(args, "Usage: migrate goto <version>", log)
		if convErr != nil || target < 0 {
			log.Fatal("Invalid target version", zap.Strings("args", args[1:]))
		}
		err = migrator.GoTo(uint(target))

	case "version":
		version, dirty, verErr := migrator.Version()
		if verErr != nil {
			log.Fatal("Failed to read version", zap.Error(verErr))
		}
		if version == 0 {
			log.Info("No migrations applied")
		} else {
			log.Info("Current schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		}
		return

	case "force":
		target, convErr := intArg(args, "Usage: migrate force <version>", log)
		if convErr != nil {
			log.Fatal("Invalid version", zap.Error(convErr))
		}
		err = migrator.Force(target)

	case "drop":
		if !hasConfirmFlag(args[1:]) {
			log.Fatal("Drop destroys all data. Re-run as: migrate drop -confirm")
		}
		err = migrator.Drop()

	default:
		log.Error("Unknown command", zap.String("command", command))
		usage()
		os.Exit(1)
	}

	if err != nil {
		log.Fatal("Migration failed", zap.String("command", command), zap.Error(err))
	}
}

func intArg(args []string, usageMsg string, log *zap.Logger) (int, error) {
	if len(args) < 2 {
		log.Fatal(usageMsg)
	}
	return strconv.Atoi(args[1])
}

func hasConfirmFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-confirm" || arg == "--confirm" {
			return true
		}
	}
	return false
}

func usage() {
	fmt.Println(`Payment engine schema migration tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    apply all pending migrations
  down                  roll back all migrations
  step <n>              apply n migrations (negative rolls back)
  goto <version>        migrate to an exact version
  version               show the applied schema version
  force <version>       overwrite the recorded version (repair only)
  drop -confirm         drop every database object
  create <name> [desc]  scaffold a new up/down SQL pair
  list                  list migration pairs on disk

Flags:
  -path string          migrations directory (default "migrations")
  -log-level string     debug, info, warn, or error (default "info")

Database settings come from config.toml or HOTEL_DATABASE_* environment
variables.`)
}
