// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package help renders the CLI help screens.
package help

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
)

// FormatInfo describes an output format for the formats help screen.
type FormatInfo struct {
	Name        string
	Description string
	Extension   string
}

// System manages help content for the application
type System struct {
	noColor bool
	colors  map[string]*color.Color
}

// NewSystem creates a new help system
func NewSystem(noColor bool) *System {
	if noColor {
		color.NoColor = true
	}

	return &System{
		noColor: noColor,
		colors: map[string]*color.Color{
			"title":   color.New(color.FgWhite, color.Bold),
			"header":  color.New(color.FgBlue, color.Bold),
			"example": color.New(color.FgMagenta),
			"warning": color.New(color.FgYellow),
		},
	}
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Println("Lease Lens - Lease Agreement Analyzer")
	fmt.Println("=====================================")
	fmt.Println()
	h.colors["header"].Println("USAGE:")
	fmt.Println("  lease-lens --file <path-to-lease> [options]")
	fmt.Println("  lease-lens --web [--port <port>]  # Web server mode")
	fmt.Println()

	h.colors["header"].Println("OPTIONS:")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --file\t<path>\tPath to the lease document to analyze (.pdf, .docx, .txt)")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --format\t<format>\tOutput format: text, json (default: text)")
	fmt.Fprintln(w, "  --output\t<path>\tPath for the highlighted PDF (default: <file>_highlighted.pdf)")
	fmt.Fprintln(w, "  --report\t<path>\tPath to write the analysis report (if not specified, output to stdout)")
	fmt.Fprintln(w, "  --verbose\t\tDisplay source sentences, entities, and missed highlights")
	fmt.Fprintln(w, "  --debug\t\tEnable debug logging to show extraction, matching, and highlighting flow")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --web\t\tStart web server mode instead of CLI analysis")
	fmt.Fprintln(w, "  --port\t<port>\tPort for web server (default: 8080, only used with --web)")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help message")
	fmt.Fprintln(w, "  --help formats\t\tList available output formats")
	w.Flush()

	fmt.Println()
	h.colors["header"].Println("EXAMPLES:")
	fmt.Println("  Basic Usage:")
	h.colors["example"].Println("    lease-lens --file lease.pdf")
	h.colors["example"].Println("    lease-lens --file lease.pdf --verbose --format json")
	fmt.Println("  Kannada leases (translated before classification):")
	h.colors["example"].Println("    lease-lens --file kannada_lease.pdf --output kannada_highlighted.pdf")
	fmt.Println("  Web server:")
	h.colors["example"].Println("    lease-lens --web --port 9000")

	fmt.Println()
	h.colors["header"].Println("ENVIRONMENT:")
	fmt.Println("  MISTRAL_API_KEY  API key for the classification and translation service")
	fmt.Println("                   (variable name configurable via llm.api_key_env)")
}

// ShowFormatsHelp lists the registered output formats.
func (h *System) ShowFormatsHelp(formats []FormatInfo) {
	h.colors["title"].Println("Available Output Formats")
	fmt.Println("========================")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, f := range formats {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", f.Name, f.Extension, f.Description)
	}
	w.Flush()
}
