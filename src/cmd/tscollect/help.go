package main

import (
	"fmt"
	"os"
)

func customUsage() {
	fmt.Fprintf(os.Stderr, "tscollect - Tailscale status and journal collector\n\n")
	fmt.Fprintf(os.Stderr, "Collects the local Tailscale agent status and recent tailscaled journal\n")
	fmt.Fprintf(os.Stderr, "entries, and appends them as one NDJSON record per run to a fixed log\n")
	fmt.Fprintf(os.Stderr, "file for ingestion by a monitoring agent.\n\n")
	fmt.Fprintf(os.Stderr, "Usage: %s [options] [output-dir]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Arguments:\n")
	fmt.Fprintf(os.Stderr, "  output-dir\n\tOutput directory (default: /var/log/tailscale-custom)\n")

	fmt.Fprintf(os.Stderr, "\nGeneral:\n")
	fmt.Fprintf(os.Stderr, "  -config string\n\tConfig file path\n")
	fmt.Fprintf(os.Stderr, "  -version\n\tShow version information\n")
	fmt.Fprintf(os.Stderr, "  -quiet\n\tSuppress all console output\n")

	fmt.Fprintf(os.Stderr, "\nLogging:\n")
	fmt.Fprintf(os.Stderr, "  -log-output string\n\tLog output: file, stdout, stderr, both, none (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -log-level string\n\tLog level: debug, info, warn, error (overrides config)\n")
	fmt.Fprintf(os.Stderr, "  -log-dir string\n\tLog directory (when using file output)\n")
	fmt.Fprintf(os.Stderr, "  -log-file string\n\tLog file base name (when using file output)\n")
	fmt.Fprintf(os.Stderr, "  -log-console string\n\tConsole target: stdout, stderr, split (overrides config)\n")

	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  # Collect into the default directory\n")
	fmt.Fprintf(os.Stderr, "  %s\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Collect into a custom directory\n")
	fmt.Fprintf(os.Stderr, "  %s /tmp/tailscale-logs\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "  # Run from a scheduler without console output\n")
	fmt.Fprintf(os.Stderr, "  %s -quiet\n\n", os.Args[0])

	fmt.Fprintf(os.Stderr, "Environment Variables:\n")
	fmt.Fprintf(os.Stderr, "  TSCOLLECT_CONFIG_FILE  Config file path\n")
	fmt.Fprintf(os.Stderr, "  TSCOLLECT_CONFIG_DIR   Config directory\n")
}
