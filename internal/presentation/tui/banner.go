package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/switchyard/pkg/adapters/process"
	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/muesli/termenv"
)

// PrintBanner outputs the switchyard banner with the running version.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	// Indigo to rose, one colour per line
	lines := []struct{ text, color string }{
		{"  ┌─┐┬ ┬┬┌┬┐┌─┐┬ ┬┬ ┬┌─┐┬─┐┌┬┐", "#818cf8"},
		{"  └─┐│││││ │ │  ├─┤└┬┘├─┤├┬┘ ││", "#c084fc"},
		{"  └─┘└┴┘┴ ┴ └─┘┴ ┴ ┴ ┴ ┴┴└──┴┘", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, out.String("  "+strings.TrimSpace(version)).Faint())
	}
	fmt.Fprintln(w)
}

// StageBanner returns a process.BannerFunc that prints "=== LABEL ===" in
// colour, followed by the invocation about to run.
func StageBanner(w io.Writer) process.BannerFunc {
	out := termenv.NewOutput(w)
	return func(label, invocation string) {
		color := "#818cf8"
		switch domain.Stage(label) {
		case domain.StageDryRun:
			color = "#facc15"
		case domain.StageBroadcast:
			color = "#fb7185"
		}
		header := out.String(fmt.Sprintf("=== %s ===", strings.ToUpper(label))).Foreground(out.Color(color)).Bold()
		fmt.Fprintf(w, "\n%s\n%s\n\n", header, out.String(invocation).Faint())
	}
}

// ScreenClearer returns a function that clears the terminal behind w.
func ScreenClearer(w io.Writer) func() {
	out := termenv.NewOutput(w)
	return func() {
		out.ClearScreen()
	}
}

// PrintPath prints the chosen path as a numbered breadcrumb block.
func PrintPath(w io.Writer, path domain.Path) {
	rule := strings.Repeat("-", 34)
	fmt.Fprintf(w, "\n%s\nChosen path:\n", rule)
	for i, label := range path {
		fmt.Fprintf(w, "%2d. %s\n", i+1, label)
	}
	fmt.Fprintf(w, "%s\n\n", rule)
}

// PrintSystemMessage prints a standardized system message.
func PrintSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}
