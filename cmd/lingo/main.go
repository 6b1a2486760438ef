// Command lingo translates text and HTML using remote providers, backed
// by the tiered translation cache. It also exposes cache lifecycle
// operations: stats, sweep, export and import.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ZaguanLabs/lingo"
	"github.com/ZaguanLabs/lingo/cache"
	"github.com/ZaguanLabs/lingo/provider"
)

// Build-time variables (can be overridden with ldflags)
var (
	version = lingo.Version
	commit  = lingo.GitCommit
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	// Optional .env for credentials; absence is fine.
	_ = godotenv.Load()

	fs := flag.NewFlagSet("lingo", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	targetLang := fs.String("lang", "", "Target language code (e.g., it, es)")
	sourceLang := fs.String("source", "en", "Source language code")
	providerID := fs.String("provider", "openrouter", "Translation provider (google, openrouter)")
	apiKey := fs.String("api-key", "", "Provider API key (default: LINGO_API_KEY env)")
	model := fs.String("model", "", "Model for LLM-backed providers")
	dbPath := fs.String("db", "lingo.db", "SQLite database path for the durable cache")
	redisURL := fs.String("redis", "", "Redis URL for the fast cache tier (default: LINGO_REDIS_URL env)")
	ttlDays := fs.Int("ttl-days", lingo.DefaultCacheDurationDays, "Cache entry lifetime in days")
	maxRPH := fs.Int("max-rph", lingo.DefaultMaxRequestsPerHour, "Max provider requests per hour")
	htmlMode := fs.Bool("html", false, "Treat input as HTML and preserve markup")
	output := fs.String("output", "", "Output file (default: stdout)")
	outputShort := fs.String("o", "", "Output file (short for --output)")
	exportFile := fs.String("export", "", "Export the cache to FILE and exit")
	importFile := fs.String("import", "", "Import a cache export from FILE and exit")
	showStats := fs.Bool("stats", false, "Print cache statistics and exit")
	sweep := fs.Bool("sweep", false, "Delete expired cache entries and exit")
	clearLang := fs.String("clear-lang", "", "Delete cache entries for a language and exit")
	testConn := fs.Bool("test", false, "Test provider connectivity and exit")
	verbose := fs.Bool("verbose", false, "Enable debug logging")
	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", lingo.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit: %s\n", commit)
		}
		return nil
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetLevel(logrus.WarnLevel)
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	// Handle -o alias for --output
	if *outputShort != "" && *output == "" {
		*output = *outputShort
	}

	store, err := openStore(*dbPath, log)
	if err != nil {
		return err
	}

	// Cache lifecycle modes need no provider.
	switch {
	case *exportFile != "":
		if err := cache.NewExporter(store).ExportToFile(*exportFile); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "exported cache to %s\n", *exportFile)
		return nil
	case *importFile != "":
		result, err := cache.NewImporter(store).ImportFromFile(*importFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "imported %d entries (%d failed)\n", result.Imported, result.Failed)
		return nil
	case *showStats:
		stats, err := store.GetStats()
		if err != nil {
			return err
		}
		return json.NewEncoder(stdout).Encode(stats)
	case *sweep:
		count, err := cache.NewSweeper(store, 0, log).Sweep()
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "deleted %d expired entries\n", count)
		return nil
	case *clearLang != "":
		count, err := store.DeleteByLanguage(*clearLang)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "deleted %d entries for language %s\n", count, *clearLang)
		return nil
	}

	key := *apiKey
	if key == "" {
		key = os.Getenv("LINGO_API_KEY")
	}

	p, err := provider.New(*providerID, provider.Config{APIKey: key, Model: *model})
	if err != nil {
		return err
	}

	ctx := context.Background()

	if *testConn {
		if err := p.TestConnection(ctx); err != nil {
			return fmt.Errorf("connection test failed: %w", err)
		}
		fmt.Fprintf(stdout, "provider %s: connection ok\n", p.Name())
		return nil
	}

	if *targetLang == "" {
		fs.Usage()
		return fmt.Errorf("--lang is required")
	}

	tiered, err := buildTiered(store, *redisURL, *ttlDays, log)
	if err != nil {
		return err
	}

	d := lingo.NewDispatcher(p,
		lingo.WithCache(tiered),
		lingo.WithRateLimiter(lingo.NewRateLimiter(lingo.RateLimitConfig{
			DefaultLimit: *maxRPH,
		})),
		lingo.WithLogger(log),
		lingo.WithConfig(lingo.Config{
			CacheDurationDays: *ttlDays,
			PreserveHTML:      *htmlMode,
			DefaultLanguage:   *sourceLang,
		}),
	)

	input, err := readInput(fs)
	if err != nil {
		return err
	}

	var result string
	if *htmlMode {
		htmlResult, err := d.TranslateHTML(ctx, input, *sourceLang, *targetLang)
		if err != nil {
			return err
		}
		result = htmlResult.Content
		log.WithFields(logrus.Fields{
			"nodes":      htmlResult.TotalNodes,
			"translated": htmlResult.TranslatedCount,
		}).Debug("html translation complete")
	} else {
		result, err = d.Translate(ctx, input, *sourceLang, *targetLang)
		if err != nil {
			return err
		}
	}

	return writeOutput(*output, result, stdout)
}

func openStore(path string, log *logrus.Logger) (*cache.Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	return cache.NewStore(db, cache.WithStoreLogger(log))
}

func buildTiered(store *cache.Store, redisURL string, ttlDays int, log *logrus.Logger) (*cache.Tiered, error) {
	ttl := time.Duration(ttlDays) * 24 * time.Hour

	var fast cache.Layer
	if redisURL == "" {
		redisURL = os.Getenv("LINGO_REDIS_URL")
	}
	if redisURL != "" {
		r, err := cache.NewRedis(cache.RedisConfig{URL: redisURL, TTL: ttl, Logger: log})
		if err != nil {
			// The fast tier is optional: degrade instead of failing.
			log.WithError(err).Warn("redis unavailable, continuing without fast tier")
		} else {
			fast = r
		}
	}

	memory := cache.NewMemoryWithTTL(32<<20, ttl)
	return cache.NewTiered(memory, fast, store,
		cache.WithTieredLogger(log),
		cache.WithDefaultTTL(ttl),
	), nil
}

func readInput(fs *flag.FlagSet) (string, error) {
	if fs.NArg() == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	// User-provided path is intentional for a CLI.
	data, err := os.ReadFile(fs.Arg(0)) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	return string(data), nil
}

func writeOutput(path, content string, stdout io.Writer) error {
	if path == "" {
		_, err := io.WriteString(stdout, content)
		if err == nil && !strings.HasSuffix(content, "\n") {
			_, err = io.WriteString(stdout, "\n")
		}
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
