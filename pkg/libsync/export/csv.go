/*
Copyright 2025 Flant JSC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/flant/regsync/pkg/libsync/reconcile"
)

// WriteCSV writes the report as CSV: the fixed header row first, then one row
// per record in enumeration order. Records without a plan get empty command
// cells so every row carries the same ten columns.
func WriteCSV(w io.Writer, report *reconcile.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(reconcile.Header()); err != nil {
		return fmt.Errorf("Write CSV header: %w", err)
	}

	for _, record := range report.Records() {
		if err := cw.Write(recordRow(record)); err != nil {
			return fmt.Errorf("Write CSV row for %s: %w", record.Identity, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the report to path, truncating a previous report if one
// is there.
func WriteCSVFile(path string, report *reconcile.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Create report file: %w", err)
	}

	if err := WriteCSV(file, report); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

func recordRow(record reconcile.Record) []string {
	row := []string{
		record.Identity.Repo,
		record.Identity.Tag,
		record.Source.String(),
		record.Target.String(),
		record.Status.String(),
	}

	commands := make([]string, 5)
	for i, step := range record.Plan.Steps {
		commands[i] = step.Command()
	}

	return append(row, commands...)
}
