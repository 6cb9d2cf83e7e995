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

	flag "github.com/spf13/pflag"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
	"github.com/gitar-cli/gitar/pkg/domain"
)

// runMr dispatches `gr mr <create|merge|list|close|get|approve|comment>`.
func runMr(ctx context.Context, args []string, globals GlobalFlags) error {
	if len(args) == 0 {
		return gitarerrors.NewConfigError("mr requires a subcommand", "", "create, merge, list, close, get, approve, comment", nil)
	}
	sub, rest := args[0], args[1:]
	switch sub {
	case "list":
		return mrList(ctx, rest, globals)
	case "get":
		return mrGet(ctx, rest, globals)
	case "create":
		return mrCreate(ctx, rest, globals)
	case "update":
		return mrUpdate(ctx, rest, globals)
	case "close":
		return mrClose(ctx, rest, globals)
	case "merge":
		return mrMerge(ctx, rest, globals)
	case "approve":
		return mrApprove(ctx, rest, globals)
	case "comment":
		return mrComment(ctx, rest, globals)
	default:
		return gitarerrors.NewConfigError("unknown mr subcommand", sub, "create, merge, list, close, get, approve, comment", nil)
	}
}

func mrList(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("mr list", flag.ExitOnError)
	lf := bindListFlags(fs)
	state := fs.String("state", "", "filter by state: open, closed, merged")
	author := fs.String("author", "", "filter by author username")
	assignee := fs.String("assignee", "", "filter by assignee username")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return gitarerrors.NewConfigError("mr list requires a project", "", "gr mr list <group/project>", nil)
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
	filter := domain.MrFilter{
		State:         domain.MrState(*state),
		Author:        orDefault(*author, s.domain.MrDefaults.Author),
		Assignee:      orDefault(*assignee, s.domain.MrDefaults.Assignee),
		CreatedAfter:  createdAfter,
		CreatedBefore: createdBefore,
		SortAscending: lf.sortAscending(),
	}
	if filter.State == "" {
		filter.State = domain.MrState(s.domain.MrDefaults.State)
	}

	op, err := s.provider.ListMergeRequests(project, filter)
	if err != nil {
		return err
	}
	override, err := lf.override()
	if err != nil {
		return err
	}
	mrs, totalPages, err := runList(ctx, s, op, lf.paginateOptions(s.domain.MaxPagesFor("merge_request")), override)
	if err != nil {
		return err
	}
	if lf.numPages {
		fmt.Println(totalPages)
		return nil
	}

	domain.SortMergeRequests(mrs, filter)
	return renderTable(lf.format, mrTable(mrs))
}

func mrTable(mrs []domain.MergeRequest) table {
	t := table{Headers: []string{"id", "state", "title", "source", "target", "author", "web_url"}}
	for _, m := range mrs {
		t.Rows = append(t.Rows, []string{
			strconv.FormatInt(m.ID, 10), string(m.State), m.Title, m.Source, m.Target, m.Author.Username, m.WebURL,
		})
	}
	return t
}

func mrGet(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("mr get", flag.ExitOnError)
	format := fs.String("format", "plain", "output format: plain, csv, toml, pipe")
	if err := fs.Parse(args); err != nil {
		return err
	}
	project, id, err := requireProjectAndID(fs, "mr get")
	if err != nil {
		return err
	}
	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.GetMergeRequest(project, id)
	if err != nil {
		return err
	}
	mr, err := runOp(ctx, s, op, noOverride)
	if err != nil {
		return err
	}
	return renderTable(*format, mrTable([]domain.MergeRequest{mr}))
}

func mrCreate(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("mr create", flag.ExitOnError)
	title := fs.String("title", "", "merge request title (required)")
	description := fs.String("description", "", "merge request description")
	source := fs.String("source", "", "source branch (required)")
	target := fs.String("target", "", "target branch (required)")
	draft := fs.Bool("draft", false, "open as draft")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || *title == "" || *source == "" || *target == "" {
		return gitarerrors.NewConfigError("mr create requires a project plus --title/--source/--target", "", "gr mr create <group/project> --title T --source S --target T2", nil)
	}
	project := fs.Arg(0)

	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.CreateMergeRequest(project, domain.CreateMrInput{
		Title: *title, Description: *description, Source: *source, Target: *target, Draft: *draft,
	})
	if err != nil {
		return err
	}
	mr, err := runOp(ctx, s, op, noOverride)
	if err != nil {
		return err
	}
	return renderTable("plain", mrTable([]domain.MergeRequest{mr}))
}

func mrUpdate(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("mr update", flag.ExitOnError)
	title := fs.String("title", "", "new title")
	description := fs.String("description", "", "new description")
	target := fs.String("target", "", "new target branch")
	if err := fs.Parse(args); err != nil {
		return err
	}
	project, id, err := requireProjectAndID(fs, "mr update")
	if err != nil {
		return err
	}
	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	patch := domain.UpdateMrPatch{}
	if fs.Changed("title") {
		patch.Title = title
	}
	if fs.Changed("description") {
		patch.Description = description
	}
	if fs.Changed("target") {
		patch.Target = target
	}
	op, err := s.provider.UpdateMergeRequest(project, id, patch)
	if err != nil {
		return err
	}
	mr, err := runOp(ctx, s, op, noOverride)
	if err != nil {
		return err
	}
	return renderTable("plain", mrTable([]domain.MergeRequest{mr}))
}

func mrClose(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("mr close", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	project, id, err := requireProjectAndID(fs, "mr close")
	if err != nil {
		return err
	}
	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.CloseMergeRequest(project, id)
	if err != nil {
		return err
	}
	mr, err := runOp(ctx, s, op, noOverride)
	if err != nil {
		return err
	}
	return renderTable("plain", mrTable([]domain.MergeRequest{mr}))
}

func mrMerge(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("mr merge", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	project, id, err := requireProjectAndID(fs, "mr merge")
	if err != nil {
		return err
	}
	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.MergeMergeRequest(project, id)
	if err != nil {
		return err
	}
	mr, err := runOp(ctx, s, op, noOverride)
	if err != nil {
		return err
	}
	return renderTable("plain", mrTable([]domain.MergeRequest{mr}))
}

func mrApprove(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("mr approve", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	project, id, err := requireProjectAndID(fs, "mr approve")
	if err != nil {
		return err
	}
	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.ApproveMergeRequest(project, id)
	if err != nil {
		return err
	}
	mr, err := runOp(ctx, s, op, noOverride)
	if err != nil {
		return err
	}
	return renderTable("plain", mrTable([]domain.MergeRequest{mr}))
}

func mrComment(ctx context.Context, args []string, globals GlobalFlags) error {
	fs := flag.NewFlagSet("mr comment", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 3 {
		return gitarerrors.NewConfigError("mr comment requires a project, an id, and a body", "", "gr mr comment <group/project> <id> <body>", nil)
	}
	project := fs.Arg(0)
	id, err := strconv.ParseInt(fs.Arg(1), 10, 64)
	if err != nil {
		return gitarerrors.NewConfigError("invalid merge request id", fs.Arg(1), "", err)
	}
	body := fs.Arg(2)

	s, err := newSession(globals, project)
	if err != nil {
		return err
	}
	op, err := s.provider.CreateComment(project, id, body)
	if err != nil {
		return err
	}
	c, err := runOp(ctx, s, op, noOverride)
	if err != nil {
		return err
	}
	fmt.Printf("comment %d by %s: %s\n", c.ID, c.Author.Username, c.Body)
	return nil
}
