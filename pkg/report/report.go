// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/invitehound/pkg/hunt"
)

// 🎨 Display configuration
const (
	candidateIndent = 4  // spaces to indent candidate entries
	codeWidth       = 10 // Base width for the code column
	typeWidth       = 12 // Width for the source type
)

// 🎯 Reporter renders poll cycles for humans on a console, with a
// structured copy going to zerolog
type Reporter struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
	cycles  int
}

// 🏭 New creates a new reporter
func New(console io.Writer, level zerolog.Level) *Reporter {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Reporter{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 📝 formatCandidate formats one discovered candidate for display
func (r *Reporter) formatCandidate(c hunt.Candidate) string {
	// Symbol and color follow how confident the extraction context is
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case c.Confidence >= 0.8:
		symbol = '✓'
		symbolColor = color.FgGreen
	case c.Confidence >= 0.5:
		symbol = '•'
		symbolColor = color.FgCyan
	default:
		symbol = '-'
		symbolColor = color.FgYellow
	}

	var typeColor color.Attribute
	switch c.SourceType {
	case "github":
		typeColor = color.FgCyan
	case "x_live":
		typeColor = color.FgYellow
	default:
		typeColor = color.FgBlue
	}

	return fmt.Sprintf("%s%s %s %s %s %s",
		fmt.Sprintf("%*s", candidateIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		color.New(color.Bold).Sprint(fmt.Sprintf("%-*s", codeWidth, c.Code)),
		color.New(typeColor).Sprint(fmt.Sprintf("%-*s", typeWidth, c.SourceType)),
		fmt.Sprintf("%3.0f%%", c.Confidence*100),
		color.New(color.Faint).Sprint(c.SourceTitle))
}

// 📝 Cycle renders one poll cycle: a header line, one line per new
// candidate, one warning per failed source
func (r *Reporter) Cycle(report hunt.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cycles++

	summary := fmt.Sprintf("%d/%d sources ok", report.Succeeded, report.Attempted)
	if report.Cooling > 0 {
		summary += fmt.Sprintf(", %d cooling", report.Cooling)
	}
	if report.Disabled > 0 {
		summary += fmt.Sprintf(", %d disabled", report.Disabled)
	}

	fmt.Fprintf(r.console, "%s %s %s %s %s %s\n",
		color.New(color.FgMagenta).Sprint("◆"),
		color.New(color.Bold).Sprintf("cycle %d", r.cycles),
		color.New(color.Faint).Sprint("•"),
		color.New(color.FgYellow).Sprintf("%d new", len(report.New)),
		color.New(color.Faint).Sprint("•"),
		summary)

	for _, c := range report.New {
		fmt.Fprintln(r.console, r.formatCandidate(c))
	}
	for _, err := range report.Errors {
		fmt.Fprintf(r.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(err.Error()))
	}

	r.zlog.Info().
		Int("cycle", r.cycles).
		Int("new_candidates", len(report.New)).
		Int("attempted", report.Attempted).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Int("cooling", report.Cooling).
		Dur("took", report.Duration).
		Msg("poll cycle")
}

// 📝 Header logs a header
func (r *Reporter) Header(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("invitehound")
	fmt.Fprintf(r.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	r.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (r *Reporter) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	r.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (r *Reporter) Warning(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	r.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (r *Reporter) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	r.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (r *Reporter) Info(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	r.zlog.Info().Msg(msg)
}

// 📝 Infof logs a formatted info message
func (r *Reporter) Infof(format string, args ...interface{}) {
	r.Info(fmt.Sprintf(format, args...))
}

// 📝 Warningf logs a formatted warning message
func (r *Reporter) Warningf(format string, args ...interface{}) {
	r.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message
func (r *Reporter) Errorf(format string, args ...interface{}) {
	r.Error(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (r *Reporter) Successf(format string, args ...interface{}) {
	r.Success(fmt.Sprintf(format, args...))
}
