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

// Package main implements the gr CLI: a unified client for merge/pull
// requests, pipelines, projects, releases, container registries, and
// trending repositories across GitLab and GitHub.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	flag "github.com/spf13/pflag"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
	"github.com/gitar-cli/gitar/internal/ui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// GlobalFlags holds the flags that apply to every gr subcommand.
type GlobalFlags struct {
	Verbose int
	NoColor bool
	Refresh bool
	Host    string
	logger  *slog.Logger
}

func main() {
	var (
		showVersion = flag.BoolP("version", "V", false, "Show version and exit")
		showHelp    = flag.BoolP("help", "h", false, "Show usage and exit")
		noColor     = flag.Bool("no-color", false, "Disable color output")
		verbose     = flag.CountP("verbose", "v", "Increase verbosity (-v for info, -vv for debug)")
		refresh     = flag.BoolP("refresh", "r", false, "Bypass cache TTL for this invocation, still write the fresh response on success")
		host        = flag.String("host", "gitlab.com", "Domain to operate against, e.g. gitlab.com or github.com")
	)

	flag.SetInterspersed(false)

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `gr - unified GitLab/GitHub command-line client

Usage:
  gr <command> [options]

Commands:
  init    Write a starter gitar.toml into the config directory
  mr      Merge/pull request operations: create, merge, list, close, get, approve, comment
  pp      Pipeline/workflow operations: list, lint, rn, merged-ci, chart
  pj      Project operations: members, tags, get
  rl      Release operations: list, assets
  dk      Container registry operations: list, tags, image
  br      Print the web URL for a resource (non-goal: does not launch a browser)
  us      User lookups
  my      Authenticated-user queries: merge-requests, projects, starred
  tr      Trending repositories (GitHub only)
  amps    External script runners: list, exec (non-goal: does not invoke the shell)

Global Options:
  --host HOST       Domain to operate against (default gitlab.com)
  -r, --refresh     Bypass cache TTL, still write the fresh response on success
  -v, --verbose     Increase verbosity (-v for info, -vv for debug; RUST_LOG=debug forces debug)
  --no-color        Disable color output (respects NO_COLOR)
  -V, --version     Show version and exit
  -h, --help        Show this help and exit

List Options (mr list, pp list, pj tags, rl list, dk tags, my *):
  --page N, --from-page N, --to-page N, --num-pages
  --sort {asc,desc}
  --created-after DATE, --created-before DATE
  --format {plain,csv,toml,pipe}
  --throttle MS, --throttle-range LO-HI

Environment:
  <DOMAIN>_API_TOKEN   Bearer token fallback, e.g. GITLAB_COM_API_TOKEN
  RUST_LOG             Set to "debug" to force debug-level logging
  XDG_CONFIG_HOME      Overrides the config directory (default ~/.config/gitar)
`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("gr version %s (commit %s, built %s)\n", version, commit, date)
		os.Exit(0)
	}
	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if os.Getenv("NO_COLOR") != "" {
		*noColor = true
	}
	ui.InitColors(*noColor)

	level := slog.LevelWarn
	switch {
	case os.Getenv("RUST_LOG") == "debug":
		level = slog.LevelDebug
	case *verbose >= 2:
		level = slog.LevelDebug
	case *verbose >= 1:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	logger = logger.With("invocation_id", uuid.NewString())
	slog.SetDefault(logger)

	globals := GlobalFlags{
		Verbose: *verbose,
		NoColor: *noColor,
		Refresh: *refresh,
		Host:    *host,
		logger:  logger,
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := args[0]
	cmdArgs := args[1:]

	var err error
	switch command {
	case "init":
		err = runInit(ctx, cmdArgs, globals)
	case "mr":
		err = runMr(ctx, cmdArgs, globals)
	case "pp":
		err = runPp(ctx, cmdArgs, globals)
	case "pj":
		err = runPj(ctx, cmdArgs, globals)
	case "rl":
		err = runRl(ctx, cmdArgs, globals)
	case "dk":
		err = runDk(ctx, cmdArgs, globals)
	case "br":
		err = runBr(ctx, cmdArgs, globals)
	case "us":
		err = runUs(ctx, cmdArgs, globals)
	case "my":
		err = runMy(ctx, cmdArgs, globals)
	case "tr":
		err = runTr(ctx, cmdArgs, globals)
	case "amps":
		err = runAmps(ctx, cmdArgs, globals)
	default:
		fmt.Fprintf(os.Stderr, "gr: unknown command %q\n", command)
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		if gerr, ok := gitarerrors.As(err); ok && globals.Verbose > 0 {
			ui.Errorf("%s", gerr.Chain())
		} else {
			ui.Errorf("%s", err.Error())
		}
		os.Exit(gitarerrors.ExitCodeFor(err))
	}
}
