package main

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/aurora-ai/aurora-erp/internal/advisor"
	"github.com/aurora-ai/aurora-erp/internal/erp"
	"github.com/aurora-ai/aurora-erp/internal/settings"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("aurora-erp")
	var (
		port        = fs.IntLong("port", 8080, "HTTP server port")
		dbPath      = fs.StringLong("db", "aurora-erp.db", "Settings database file path")
		advisorType = fs.StringLong("advisor", "gemini", "AI advisor: 'gemini' or 'off'")
		geminiKey   = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel = fs.StringLong("gemini-model", "gemini-2.5-flash", "Google Gemini model name")
		authUser    = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass    = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("AURORA"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize settings database
	slog.Info("Initializing settings database...")
	themes, err := settings.Open(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize settings database", "error", err)
		os.Exit(1)
	}
	defer themes.Close()

	// Initialize advisor based on type
	var adv advisor.Advisor
	switch *advisorType {
	case "gemini":
		// Get Gemini API key from flag or environment
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable, or run with --advisor off")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini advisor...", "model", *geminiModel)
		adv, err = advisor.NewGemini(context.Background(), apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
		defer adv.Close()
	case "off":
		slog.Info("AI advisor disabled")
	default:
		slog.Error("Invalid advisor type", "type", *advisorType, "valid", "gemini or off")
		os.Exit(1)
	}

	// Initialize service over the demo dataset
	store := erp.NewStore(erp.SeedData())
	service := erp.NewService(store, adv)

	// Initialize server
	basicAuth := erp.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := erp.NewServer(service, themes, basicAuth)

	// Start server in goroutine
	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
