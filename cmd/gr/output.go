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
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pelletier/go-toml/v2"

	gitarerrors "github.com/gitar-cli/gitar/internal/errors"
)

// table is a format-neutral result: a header row plus one row per item,
// rendered by renderTable into one of plain|csv|toml|pipe.
type table struct {
	Headers []string
	Rows    [][]string
}

func renderTable(format string, t table) error {
	switch format {
	case "", "plain":
		return renderPlain(t)
	case "csv":
		return renderCSV(t)
	case "pipe":
		return renderPipe(t)
	case "toml":
		return renderTOML(t)
	default:
		return gitarerrors.NewConfigError("unknown output format", format, "use plain, csv, toml, or pipe", nil)
	}
}

func renderPlain(t table) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.Headers, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func renderCSV(t table) error {
	w := csv.NewWriter(os.Stdout)
	if err := w.Write(t.Headers); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func renderPipe(t table) error {
	fmt.Println(strings.Join(t.Headers, "|"))
	for _, row := range t.Rows {
		fmt.Println(strings.Join(row, "|"))
	}
	return nil
}

// renderTOML encodes the table as an array of tables keyed "item", the
// same go-toml/v2 encoder the config loader decodes with.
func renderTOML(t table) error {
	items := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		item := make(map[string]string, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(row) {
				item[h] = row[i]
			}
		}
		items = append(items, item)
	}
	enc := toml.NewEncoder(os.Stdout)
	return enc.Encode(map[string]any{"item": items})
}
