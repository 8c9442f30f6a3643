package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jobtrail/jobtrail/internal/config"
	"github.com/jobtrail/jobtrail/internal/db"
	"github.com/jobtrail/jobtrail/internal/ingest"
	"github.com/jobtrail/jobtrail/internal/notify"
	"github.com/jobtrail/jobtrail/internal/services"
	"github.com/jobtrail/jobtrail/internal/thread"
	"github.com/jobtrail/jobtrail/internal/tui"
	"github.com/jobtrail/jobtrail/internal/version"
)

func main() {
	// Essential command line flags only (GNU-style double dashes)
	configPathFlag := flag.String("config", "", "Path to JSON configuration file (default: ~/.config/jobtrail/config.json)")
	importFlag := flag.String("import", "", "Import a JSON email snapshot and exit")
	setupFlag := flag.Bool("setup", false, "Create the default configuration file")
	versionFlag := flag.Bool("version", false, "Show version information and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n\n", version.GetVersionString())
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  %s                           # Open the dashboard\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --import snapshot.json    # Load classified emails, then exit\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --config custom.json      # Use custom configuration\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --version                 # Show version information\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  JOBTRAIL_CONFIG  Override default config file path\n")
	}

	flag.Parse()

	if *versionFlag {
		fmt.Println(version.GetDetailedVersionString())
		return
	}

	if *setupFlag {
		runSetup()
		return
	}

	configPath := getConfigPath(*configPathFlag)
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: could not load configuration: %v", err)
		cfg = config.DefaultConfig()
	}

	logger, logClose := initLogger(cfg)
	defer logClose()

	ctx := context.Background()

	dbPath := expandPath(cfg.Database)
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	store, err := db.Open(ctx, dbPath)
	if err != nil {
		log.Fatalf("Could not open database at %s: %v", dbPath, err)
	}
	defer func() { _ = store.Close() }()

	emailStore := db.NewEmailStore(store)
	followupStore := db.NewFollowupStore(store)

	importer := ingest.NewImporter(emailStore, logger)

	// Import mode: load the snapshot and exit
	if *importFlag != "" {
		result, err := importer.ImportFile(ctx, expandPath(*importFlag))
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Printf("Imported %d emails (%d skipped)\n", result.Imported, result.Skipped)
		return
	}

	// A configured snapshot refreshes the store on every start
	if cfg.Snapshot != "" {
		if result, err := importer.ImportFile(ctx, expandPath(cfg.Snapshot)); err != nil {
			log.Printf("Warning: could not import snapshot %s: %v", cfg.Snapshot, err)
		} else if logger != nil {
			logger.Printf("snapshot refresh: %d imported, %d skipped", result.Imported, result.Skipped)
		}
	}

	grouper := thread.NewGrouper(cfg.Grouping)

	emailService := services.NewEmailService(emailStore, grouper)
	emailService.SetLogger(logger)
	statsService := services.NewStatsService(emailStore, grouper, 8)
	statsService.SetLogger(logger)
	followupService := services.NewFollowupService(emailStore, followupStore, grouper,
		cfg.Followup.AppliedAfterDays, cfg.Followup.InterviewAfterDays, cfg.Followup.MaxSuggestions)
	followupService.SetLogger(logger)

	notifier := notify.NewCenter(cfg.Notifications.QueueSize, cfg.NotificationDisplay(), logger)
	defer notifier.Close()

	theme, err := config.NewThemeLoader(config.DefaultThemesDir()).Load(cfg.Theme)
	if err != nil {
		log.Printf("Warning: could not load theme %q: %v", cfg.Theme, err)
		theme = config.DefaultTheme()
	}

	app := tui.NewApp(cfg, theme, emailService, statsService, followupService, notifier, logger)
	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// initLogger opens the configured log file. Logging is optional; when no
// file is configured the components run with a nil logger.
func initLogger(cfg *config.Config) (*log.Logger, func()) {
	path := expandPath(cfg.LogFile)
	if path == "" {
		return nil, func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Printf("Warning: could not create log directory: %v", err)
		return nil, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("Warning: could not open log file: %v", err)
		return nil, func() {}
	}
	logger := log.New(f, "[jobtrail] ", log.LstdFlags|log.Lmicroseconds)
	return logger, func() { _ = f.Close() }
}

// getConfigPath returns the configuration file path using the following priority:
// 1. CLI flag
// 2. Environment variable JOBTRAIL_CONFIG (handled by DefaultConfigPath)
// 3. Default path ~/.config/jobtrail/config.json
func getConfigPath(flagValue string) string {
	if flagValue != "" {
		return expandPath(flagValue)
	}
	return config.DefaultConfigPath()
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return home
	}

	return filepath.Join(home, path[2:])
}

// runSetup creates the default configuration file if it does not exist
func runSetup() {
	configPath := config.DefaultConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("Configuration file already exists: %s\n", configPath)
		return
	}

	cfg := config.DefaultConfig()
	if err := cfg.SaveConfig(configPath); err != nil {
		fmt.Printf("Failed to create config file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Created configuration file: %s\n", configPath)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  %s --import snapshot.json   # load your classified emails\n", os.Args[0])
	fmt.Printf("  %s                          # open the dashboard\n", os.Args[0])
}
