package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/receipt-ocr/internal/extraction"
	"github.com/zombor/receipt-ocr/internal/receipt"
	"github.com/zombor/receipt-ocr/internal/scanning"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

// newTextSource builds the OCR engine; replaced in tests
var newTextSource = scanning.NewTextSource

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		if errors.Is(err, ff.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	fs := ff.NewFlagSet("receipt-ocr")
	var (
		engine      = fs.StringLong("engine", scanning.EngineTesseract, "Text engine: tesseract, gemini or ollama")
		lang        = fs.StringLong("lang", "eng", "Tesseract language")
		tessdata    = fs.StringLong("tessdata", "", "Tesseract tessdata directory (optional)")
		geminiKey   = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		ollamaURL   = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel = fs.StringLong("ollama-model", "llava", "Ollama model name")
		workers     = fs.IntLong("workers", 4, "Images processed concurrently")
		debug       = fs.BoolLong("debug", "Log raw extracted text to stderr")
		serve       = fs.BoolLong("serve", "Run the HTTP server instead of processing files")
		port        = fs.IntLong("port", 8080, "HTTP server port")
		dbPath      = fs.StringLong("db", "receipts.db", "Database file path")
		storagePath = fs.StringLong("storage", "./receipts", "Storage directory path")
		authUser    = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass    = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		rateLimit   = fs.IntLong("rate-limit", 30, "Uploads allowed per minute, 0 for no limit")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, args,
		ff.WithEnvVarPrefix("RECEIPT_OCR"),
	); err != nil {
		fmt.Fprintf(stderr, "%s\n", ffhelp.Flags(fs))
		return err
	}

	if *showVersion {
		fmt.Fprintln(stdout, version)
		return nil
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	apiKey := *geminiKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if *engine == scanning.EngineGemini && apiKey == "" {
		return errors.New("gemini API key is required: set --gemini-key flag or GEMINI_API_KEY environment variable")
	}

	paths := fs.GetArgs()
	if !*serve && len(paths) == 0 {
		fmt.Fprintf(stderr, "%s\n", ffhelp.Flags(fs))
		return errors.New("at least one image path is required")
	}

	source, err := newTextSource(scanning.Options{
		Engine:         *engine,
		Language:       *lang,
		TessdataPrefix: *tessdata,
		GeminiKey:      apiKey,
		GeminiModel:    *geminiModel,
		OllamaURL:      *ollamaURL,
		OllamaModel:    *ollamaModel,
		Debug:          *debug,
	})
	if err != nil {
		return fmt.Errorf("initializing %s engine: %w", *engine, err)
	}
	defer source.Close()

	processor := extraction.NewProcessor(source)

	if *serve {
		basicAuth := receipt.BasicAuth{Username: *authUser, Password: *authPass}
		return runServer(ctx, processor, *dbPath, *storagePath, *port, basicAuth, *rateLimit)
	}

	records := processFiles(ctx, processor, paths, *workers)
	return writeRecords(stdout, records)
}

func runServer(ctx context.Context, processor *extraction.Processor, dbPath, storagePath string, port int, basicAuth receipt.BasicAuth, rateLimit int) error {
	slog.Info("Initializing database...", "path", dbPath)
	db, err := receipt.NewBoltDB(dbPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()

	slog.Info("Initializing storage...", "path", storagePath)
	store, err := receipt.NewLocalStorage(storagePath)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	service := receipt.NewService(db, processor, store)
	server := receipt.NewServer(service, basicAuth, rateLimit)

	addr := fmt.Sprintf(":%d", port)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(addr)
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if basicAuth.Username != "" || basicAuth.Password != "" {
		slog.Info("Basic auth enabled", "user", basicAuth.Username)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return <-errCh
}
