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

package reconcile

import (
	"github.com/samber/lo"
)

// Header names the exported record fields, in column order.
func Header() []string {
	return []string{
		"Image",
		"Tag",
		"Source digest",
		"Target digest",
		"Status",
		"Pull command",
		"Retag command",
		"Push command",
		"Cleanup source image",
		"Cleanup target image",
	}
}

// Report is the outcome of one reconciliation run: every record in source
// catalog enumeration order, plus the non-fatal warnings accumulated along
// the way.
type Report struct {
	records  []Record
	warnings []string
}

func NewReport(records []Record, warnings []string) *Report {
	return &Report{records: records, warnings: warnings}
}

func (r *Report) Records() []Record {
	return r.records
}

func (r *Report) Warnings() []string {
	return r.warnings
}

func (r *Report) Missing() []Record {
	return r.withStatus(StatusMissingOnTarget)
}

func (r *Report) InSync() []Record {
	return r.withStatus(StatusInSync)
}

func (r *Report) Conflicts() []Record {
	return r.withStatus(StatusConflict)
}

func (r *Report) Unresolved() []Record {
	return r.withStatus(StatusUnknown)
}

func (r *Report) withStatus(status Status) []Record {
	return lo.Filter(r.records, func(record Record, _ int) bool {
		return record.Status == status
	})
}
