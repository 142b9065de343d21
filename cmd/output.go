package cmd

import (
	"fmt"
	"io"
	"os"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// All commands use these functions to ensure consistent icon usage and
// indentation throughout pandora's CLI output.
//
// Icon semantics:
//   ✓  success / healthy
//   ✗  error / failure          (written to stderr)
//   ⚠  warning
//   ○  skipped / not applicable
//   -  not found / missing
//   ~  neutral info / state change

// stdout and stderr are swapped out by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func line(w io.Writer, icon, name, msg string) {
	if name == "" {
		fmt.Fprintf(w, "  %s  %s\n", icon, msg)
	} else {
		fmt.Fprintf(w, "  %s  [%s] %s\n", icon, name, msg)
	}
}

// printSection prints a top-level section header, e.g. "=== Teams ===".
func printSection(title string) {
	fmt.Fprintf(stdout, "\n%s\n", sectionStyle.Render("=== "+title+" ==="))
}

// printBullet prints a grouped-section bullet, e.g. "● Agents (3):".
func printBullet(title string) {
	fmt.Fprintf(stdout, "\n%s\n", nameStyle.Render("● "+title))
}

// printOK prints a success line.
//
//	name = "" → "  ✓  msg"
//	name set  → "  ✓  [name] msg"
func printOK(name, msg string) { line(stdout, okStyle.Render("✓"), name, msg) }

// printErr prints an error line to stderr.
func printErr(name, msg string) { line(stderr, errStyle.Render("✗"), name, msg) }

// printWarn prints a warning line.
func printWarn(name, msg string) { line(stdout, warnStyle.Render("⚠"), name, msg) }

// printSkip prints a skipped / not-applicable line.
func printSkip(name, msg string) { line(stdout, mutedStyle.Render("○"), name, msg) }

// printMiss prints a not-found / missing line.
func printMiss(name, msg string) { line(stdout, mutedStyle.Render("-"), name, msg) }

// printInfo prints a neutral informational / state-change line.
func printInfo(name, msg string) { line(stdout, infoStyle.Render("~"), name, msg) }

// printKV prints an aligned "key: value" row under a section.
func printKV(key, value string, width int) {
	fmt.Fprintf(stdout, "  %s %s\n", keyStyle.Render(fmt.Sprintf("%-*s", width+1, key+":")), value)
}
