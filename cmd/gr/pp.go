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

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
	"github.com/gitar-cli/gitar/internal/ui"
	"github.com/gitar-cli/gitar/pkg/domain"
)

// runPp dispatches `gr pp <list|lint|rn|merged-ci|chart|get>`.
func runPp(ctx context.Context, args []string, globals GlobalFlags) error {
	if len(args) == 0 {
		return gitarerrors.NewConfigError("pp requires a subcommand", "", "list, lint, rn, merged-ci, chart, get", nil)
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return ppList(ctx, rest, globals)
	case "get":
		return ppGet(ctx, rest, globals)
	case "lint":
		return ppLint(ctx, rest, globals)
	case "rn":
		return ppRunners(ctx, rest, globals)
	case "merged-ci":
		return ppMergedCI(ctx, rest, globals)
	case "chart":
		return ppChart(ctx, rest, globals)
	default:
		return gitarerrors.NewConfigError("unknown pp subcommand", sub, "list, lint, rn, merged-ci, chart, get", nil)
	}
}

func pipelineTable(pipelines []domain.Pipeline) table {
	t := table{Headers: []string{"id", "status", "ref", "sha", "duration", "web_url"}}
	for _, p := range pipelines {
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(p.ID, 10), p.Status, p.Ref, p.SHA, p.Duration.String(), p.WebURL,
		})
	}
	return t
}

func ppList(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("pp list", flag.ExitOnError)
	lf := bindListFlags(fs)
	ref := fs.String("ref", "", "filter by ref/branch")
	status := fs.String("status", "", "filter by status")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return gitarerrors.NewConfigError("pp list requires a project", "", "gr pp list <group/project>", nil)
	}
	project := fs.Arg(0)

	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	createdAfter, err := lf.parseCreatedAfter()
	if err != nil {
		return err
	}
	createdBefore, err := lf.parseCreatedBefore()
	if err != nil {
		return err
	}
	filter := domain.PipelineFilter{
		Ref: *ref, Status: *status, CreatedAfter: createdAfter, CreatedBefore: createdBefore, SortAscending: lf.sortAscending(),
	}
	op, err := s.provider.ListPipelines(project, filter)
	if err != nil {
		return err
	}
	override, err := lf.override()
	if err != nil {
		return err
	}
	pipelines, totalPages, err := runList(ctx, s, op, lf.paginateOptions(s.domain.MaxPagesFor("pipeline")), override)
	if err != nil {
		return err
	}
	if lf.numPages {
		fmt.Println(totalPages)
		return nil
	}
	return renderTable(lf.format, pipelineTable(pipelines))
}

func ppGet(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("pp get", flag.ExitOnError)
	format := fs.String("format", "plain", "output format: plain, csv, toml, pipe")
	if err := fs.Parse(args); err != nil {
		return err
	}
	project, id, err := requireProjectAndID(fs, "pp get")
	if err != nil {
		return err
	}
	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.GetPipeline(project, id)
	if err != nil {
		return err
	}
	p, err := runOp(ctx, s, op, noOverride)
	if err != nil {
		return err
	}
	return renderTable(*format, pipelineTable([]domain.Pipeline{p}))
}

func ppLint(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("pp lint", flag.ExitOnError)
	file := fs.String("file", "", "path to the pipeline definition to lint (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || *file == "" {
		return gitarerrors.NewConfigError("pp lint requires a project and --file", "", "gr pp lint <group/project> --file .gitlab-ci.yml", nil)
	}
	project := fs.Arg(0)

	yaml, err := readFileArg(*file)
	if err != nil {
		return err
	}
	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.LintPipeline(project, yaml)
	if err != nil {
		return err
	}
	result, err := runOp(ctx, s, op, noOverride)
	if err != nil {
		return err
	}
	if result.Valid {
		ui.Success("valid")
		return nil
	}
	ui.Warning("invalid:")
	for _, e := range result.Errors {
		fmt.Println(" -", e)
	}
	return nil
}

func ppRunners(ctx context.Context, args []string, globals GlobalFlags) error {
	if len(args) == 0 || args[0] != "list" {
		return gitarerrors.NewConfigError("pp rn requires list <status>", "", "gr pp rn list <group/project> [status]", nil)
	}
	fs := flag.NewFlagSet("pp rn list", flag.ExitOnError)
	lf := bindListFlags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return gitarerrors.NewConfigError("pp rn list requires a project", "", "gr pp rn list <group/project> [status]", nil)
	}
	project := fs.Arg(0)
	status := ""
	if fs.NArg() > 1 {
		status = fs.Arg(1)
	}

	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.ListRunners(project, status)
	if err != nil {
		return err
	}
	override, err := lf.override()
	if err != nil {
		return err
	}
	runners, _, err := runList(ctx, s, op, lf.paginateOptions(s.domain.MaxPagesFor("pipeline")), override)
	if err != nil {
		return err
	}
	t := table{Headers: []string{"id", "name", "status", "online", "tags"}}
	for _, r := range runners {
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(r.ID, 10), r.Name, r.Status, strconv.FormatBool(r.Online), strings.Join(r.Tags, ","),
		})
	}
	return renderTable(lf.format, t)
}

func ppMergedCI(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("pp merged-ci", flag.ExitOnError)
	format := fs.String("format", "plain", "output format: plain, csv, toml, pipe")
	ref := fs.String("ref", "main", "branch to look up the last merged pipeline for")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return gitarerrors.NewConfigError("pp merged-ci requires a project", "", "gr pp merged-ci <group/project> --ref main", nil)
	}
	project := fs.Arg(0)

	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.MergedCI(project, *ref)
	if err != nil {
		return err
	}
	p, err := runOp(ctx, s, op, noOverride)
	if err != nil {
		return err
	}
	return renderTable(*format, pipelineTable([]domain.Pipeline{p}))
}

// ppChart renders each pipeline's status as a bar proportional to its
// duration, a quick terminal view of recent run times without leaving
// the shell.
func ppChart(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("pp chart", flag.ExitOnError)
	lf := bindListFlags(fs)
	ref := fs.String("ref", "", "filter by ref/branch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return gitarerrors.NewConfigError("pp chart requires a project", "", "gr pp chart <group/project>", nil)
	}
	project := fs.Arg(0)

	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.ListPipelines(project, domain.PipelineFilter{Ref: *ref})
	if err != nil {
		return err
	}
	override, err := lf.override()
	if err != nil {
		return err
	}
	pipelines, _, err := runList(ctx, s, op, lf.paginateOptions(s.domain.MaxPagesFor("pipeline")), override)
	if err != nil {
		return err
	}

	longest := 0.0
	for _, p := range pipelines {
		if secs := p.Duration.Seconds(); secs > longest {
			longest = secs
		}
	}
	const maxWidth = 40
	for _, p := range pipelines {
		width := 0
		if longest > 0 {
			width = int(p.Duration.Seconds() / longest * maxWidth)
		}
		bar := strings.Repeat("#", width)
		line := fmt.Sprintf("%-8d %-10s %8s %s", p.ID, p.Status, p.Duration.String(), bar)
		switch p.Status {
		case "success", "completed":
			ui.Green.Println(line)
		case "failed":
			ui.Red.Println(line)
		default:
			ui.Yellow.Println(line)
		}
	}
	return nil
}
