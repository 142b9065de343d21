package cmd

import (
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/term"
)

// renderMarkdown renders markdown for the terminal. raw returns content
// unchanged; rendering failures also fall back to the raw text.
func renderMarkdown(content string, raw bool) string {
	if raw {
		return content
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(terminalWidth()),
	)
	if err != nil {
		logger.Debug("markdown renderer unavailable", "err", err)
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		logger.Debug("cannot render markdown", "err", err)
		return content
	}
	return out
}

func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return 80
	}
	return min(w, 120)
}
