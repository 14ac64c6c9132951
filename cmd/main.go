// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/term"

	"lease-lens/internal/analyzer"
	"lease-lens/internal/config"
	"lease-lens/internal/extract"
	"lease-lens/internal/help"
	"lease-lens/internal/llm"
	"lease-lens/internal/observability"
	"lease-lens/internal/report"
	"lease-lens/internal/version"
	"lease-lens/internal/web"
)

// configFlags holds command line flag values
type configFlags struct {
	inputFile    string
	configFile   string
	outputFormat string
	outputPDF    string
	reportFile   string
	verbose      bool
	debug        bool
	noColor      bool
	webMode      bool
	webPort      string
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format  string
	verbose bool
	debug   bool
	noColor bool
	webPort string
}

// resolveConfiguration resolves final values from the config file and
// command line flags. Flags win when explicitly set.
func resolveConfiguration(cfg *config.Config, flags *configFlags) *finalConfiguration {
	final := &finalConfiguration{}

	// Format
	final.format = "text" // default fallback
	if cfg != nil && cfg.Defaults.Format != "" {
		final.format = cfg.Defaults.Format
	}
	if isFlagSet("format") && flags.outputFormat != "" {
		final.format = flags.outputFormat
	}

	// Verbose
	final.verbose = false // default fallback
	if cfg != nil {
		final.verbose = cfg.Defaults.Verbose
	}
	if isFlagSet("verbose") {
		final.verbose = flags.verbose
	}

	// Debug
	final.debug = false // default fallback
	if cfg != nil {
		final.debug = cfg.Defaults.Debug
	}
	if isFlagSet("debug") {
		final.debug = flags.debug
	}

	// No color
	final.noColor = false // default fallback
	if cfg != nil {
		final.noColor = cfg.Defaults.NoColor
	}
	if isFlagSet("no-color") {
		final.noColor = flags.noColor
	}

	// Web port
	final.webPort = "8080" // default fallback
	if cfg != nil && cfg.Web.Port != "" {
		final.webPort = cfg.Web.Port
	}
	if isFlagSet("port") && flags.webPort != "" {
		final.webPort = flags.webPort
	}

	return final
}

// isFlagSet checks if a flag was explicitly set on the command line
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string) *config.Config {
	configPath := configFile
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg = config.Default()
	}
	return cfg
}

func main() {
	inputFile := flag.String("file", "", "Path to the lease document to analyze (.pdf, .docx, .txt)")
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	outputFormat := flag.String("format", "", "Output format: text, json (default: text)")
	outputPDF := flag.String("output", "", "Path for the highlighted PDF (default: <file>_highlighted.pdf)")
	reportFile := flag.String("report", "", "Path to write the analysis report (if not specified, output to stdout)")
	verbose := flag.Bool("verbose", false, "Display source sentences, entities, and missed highlights")
	debug := flag.Bool("debug", false, "Enable debug logging to show extraction, matching, and highlighting flow")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	showHelp := flag.Bool("help", false, "Show help information")
	showVersion := flag.Bool("version", false, "Show version information")
	webMode := flag.Bool("web", false, "Start web server mode instead of CLI analysis")
	webPort := flag.String("port", "", "Port for web server (default: 8080, only used with --web)")

	flag.Parse()

	flags := &configFlags{
		inputFile:    *inputFile,
		configFile:   *configFile,
		outputFormat: *outputFormat,
		outputPDF:    *outputPDF,
		reportFile:   *reportFile,
		verbose:      *verbose,
		debug:        *debug,
		noColor:      *noColor,
		webMode:      *webMode,
		webPort:      *webPort,
	}

	// Auto-detect non-interactive environment
	if !isTerminal(os.Stdout) || os.Getenv("CI") != "" {
		flags.noColor = true
	}

	cfg := loadConfiguration(flags.configFile)
	finalConfig := resolveConfiguration(cfg, flags)

	var observer *observability.Observer
	if finalConfig.debug {
		observer = observability.NewObserver(observability.LevelDebug, os.Stderr)
	}

	if *showVersion {
		fmt.Println(version.Info())
		return
	}

	if *showHelp {
		handleHelp(finalConfig.noColor)
		return
	}

	if flags.webMode {
		if err := runWebServer(cfg, observer, finalConfig.webPort); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Positional argument works as a --file shorthand.
	if flags.inputFile == "" && flag.NArg() == 1 {
		flags.inputFile = flag.Arg(0)
	}
	if flags.inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: Input file is required\n")
		fmt.Fprintf(os.Stderr, "Usage: %s --file <path-to-lease> [options]\n", version.Name)
		fmt.Fprintf(os.Stderr, "Use --help for more information\n")
		os.Exit(1)
	}

	if err := runAnalysis(cfg, observer, flags, finalConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runAnalysis drives one CLI analysis: extract, classify, highlight, report.
func runAnalysis(cfg *config.Config, observer *observability.Observer, flags *configFlags, finalConfig *finalConfiguration) error {
	ext := strings.ToLower(filepath.Ext(flags.inputFile))
	if !supportedExtension(ext) {
		return fmt.Errorf("unsupported file type %q (supported: %s)",
			ext, strings.Join(extract.SupportedExtensions, ", "))
	}
	if _, err := os.Stat(flags.inputFile); err != nil {
		return fmt.Errorf("cannot access input file: %w", err)
	}

	runID := uuid.New().String()
	observer = observer.WithRunID(runID)

	client := llm.NewClient(llm.Options{
		APIKey:   cfg.APIKey(),
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		Observer: observer,
	})

	outputPath := flags.outputPDF
	if outputPath == "" {
		base := strings.TrimSuffix(flags.inputFile, ext)
		outputPath = base + "_highlighted.pdf"
		if cfg.Defaults.OutputDir != "" && cfg.Defaults.OutputDir != "." {
			outputPath = filepath.Join(cfg.Defaults.OutputDir, filepath.Base(outputPath))
		}
	}

	a := analyzer.New(cfg, client, observer)
	result, stats, err := a.RunFile(context.Background(), flags.inputFile, outputPath)
	if err != nil {
		return err
	}

	rendered, err := report.Export(finalConfig.format, &report.Report{
		File:       flags.inputFile,
		OutputPath: outputPath,
		RunID:      runID,
		Result:     result,
		Stats:      stats,
	}, report.Options{
		Verbose: finalConfig.verbose,
		NoColor: finalConfig.noColor,
	})
	if err != nil {
		return err
	}

	if flags.reportFile != "" {
		if err := os.WriteFile(flags.reportFile, []byte(rendered), 0644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("Report written to %s\n", flags.reportFile)
		return nil
	}
	fmt.Println(rendered)
	return nil
}

// runWebServer validates the port and serves until the listener fails.
func runWebServer(cfg *config.Config, observer *observability.Observer, port string) error {
	portStr, err := validatePort(port)
	if err != nil {
		return err
	}
	if !isPortAvailable(portStr) {
		return fmt.Errorf("port %s is already in use", portStr)
	}

	workDir, err := os.MkdirTemp("", "lease-lens-")
	if err != nil {
		return fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	client := llm.NewClient(llm.Options{
		APIKey:   cfg.APIKey(),
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
		Observer: observer,
	})

	a := analyzer.New(cfg, client, observer)
	server := web.NewServer(cfg, a, observer, workDir)

	fmt.Printf("%s web server listening on http://localhost:%s\n", version.Name, portStr)
	return server.Run(":" + portStr)
}

// validatePort checks that the port is numeric and unprivileged
func validatePort(portStr string) (string, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", fmt.Errorf("invalid port %q: must be a number", portStr)
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("port %d out of range (1-65535)", port)
	}
	if port < 1024 {
		return "", fmt.Errorf("port %d requires root privileges (ports below 1024 are privileged)", port)
	}
	return portStr, nil
}

// isPortAvailable checks if a port is available for binding
func isPortAvailable(port string) bool {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return false
	}
	listener.Close()
	return true
}

func handleHelp(noColor bool) {
	helpSystem := help.NewSystem(noColor)

	args := flag.Args()
	if len(args) == 1 && strings.ToLower(args[0]) == "formats" {
		names := report.DefaultRegistry.List()
		sort.Strings(names)
		var formats []help.FormatInfo
		for _, name := range names {
			f, ok := report.DefaultRegistry.Get(name)
			if !ok {
				continue
			}
			formats = append(formats, help.FormatInfo{
				Name:        f.Name(),
				Description: f.Description(),
				Extension:   f.FileExtension(),
			})
		}
		helpSystem.ShowFormatsHelp(formats)
		return
	}
	helpSystem.ShowGeneralHelp()
}

func supportedExtension(ext string) bool {
	for _, s := range extract.SupportedExtensions {
		if s == ext {
			return true
		}
	}
	return false
}

// isTerminal checks if the file descriptor is a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
