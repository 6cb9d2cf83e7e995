// Copyright 2026 GitAR Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the terminal output helpers shared by every gr
// subcommand: headers, labels, and status lines that degrade to plain
// text when color is disabled or stdout isn't a terminal.
package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	Cyan   = color.New(color.FgCyan)
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Red    = color.New(color.FgRed)
	Dim    = color.New(color.Faint)
)

// InitColors disables color output when requested, NO_COLOR is set, or
// stdout is not a terminal. Call once from main() after flag parsing.
func InitColors(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

// Header prints a bold section title.
func Header(title string) {
	color.New(color.Bold).Printf("== %s ==\n", title)
}

// SubHeader prints a lighter-weight section title under a Header.
func SubHeader(title string) {
	color.New(color.Bold, color.Faint).Printf("-- %s --\n", title)
}

// Label formats a field label for "label value" lines.
func Label(text string) string {
	return color.New(color.Bold).Sprint(text)
}

// DimText renders text in faint style, for secondary/contextual info.
func DimText(text string) string {
	return Dim.Sprint(text)
}

// CountText renders a count, highlighted when nonzero.
func CountText(n int) string {
	if n == 0 {
		return Dim.Sprint("0")
	}
	return Green.Sprint(n)
}

// Success prints a green success line to stdout.
func Success(msg string) { Green.Println(msg) }

// Successf is Success with Printf-style formatting.
func Successf(format string, args ...any) { Green.Printf(format+"\n", args...) }

// Warning prints a yellow warning line to stderr.
func Warning(msg string) { fmt.Fprintln(os.Stderr, Yellow.Sprint(msg)) }

// Warningf is Warning with Printf-style formatting.
func Warningf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, Yellow.Sprintf(format, args...))
}

// Info prints an informational line to stderr (verbose mode).
func Info(msg string) { fmt.Fprintln(os.Stderr, Cyan.Sprint(msg)) }

// Infof is Info with Printf-style formatting.
func Infof(format string, args ...any) {
	fmt.Fprintln(os.Stderr, Cyan.Sprintf(format, args...))
}

// Errorf prints a red error line to stderr.
func Errorf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, Red.Sprintf(format, args...))
}
