package common

import (
	"fmt"
	"io"
	"strings"

	"github.com/ternarybob/banner"
)

// StartupInfo is what the startup banner reports about the running server.
type StartupInfo struct {
	Environment string
	ServiceURL  string
	Cache       string
	Storage     string
}

// PrintBanner writes the application startup banner to w and logs the same
// details.
func PrintBanner(w io.Writer, info StartupInfo, logger *Logger) {
	version := GetVersion()
	build := GetBuild()
	commit := GetGitCommit()

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 60
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		`  __ _             _`,
		` / _(_)_ __  _ __ | | __ _ _ __`,
		`| |_| | '_ \| '_ \| |/ _' | '_ \`,
		`|  _| | | | | |_) | | (_| | | | |`,
		`|_| |_|_| |_| .__/|_|\__,_|_| |_|`,
		`            |_|`,
	}

	fmt.Fprintf(w, "\n%s\n\n", hr)
	for _, line := range art {
		fmt.Fprintf(w, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s  Mortgage, Savings, Retirement & Net Worth Projections%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(w, "\n%s\n\n", hr)

	kvPad := 14
	kvLines := [][2]string{
		{"Version", version},
		{"Build", build},
		{"Commit", commit},
		{"Environment", info.Environment},
		{"Service URL", info.ServiceURL},
		{"Cache", info.Cache},
		{"Storage", info.Storage},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(w, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}
	fmt.Fprintf(w, "\n%s\n\n", hr)

	logger.Info().
		Str("version", version).
		Str("build", build).
		Str("commit", commit).
		Str("environment", info.Environment).
		Str("service_url", info.ServiceURL).
		Str("cache", info.Cache).
		Str("storage", info.Storage).
		Msg("Application started")
}

// PrintShutdownBanner writes the shutdown banner to w.
func PrintShutdownBanner(w io.Writer, logger *Logger) {
	hr := banner.ColorCyan + strings.Repeat("═", 40) + banner.ColorReset
	fmt.Fprintf(w, "\n%s\n", hr)
	fmt.Fprintf(w, "%s  FINPLAN SHUTTING DOWN%s\n", banner.ColorBold+banner.ColorWhite, banner.ColorReset)
	fmt.Fprintf(w, "%s\n\n", hr)

	logger.Info().Msg("Application shutting down")
}
