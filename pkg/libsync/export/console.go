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
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/flant/regsync/pkg/libsync/reconcile"
)

// PrintSummary writes per-status counts and the identities that need an
// operator decision: conflicting tags and identities whose lookup failed.
func PrintSummary(w io.Writer, report *reconcile.Report) {
	missing, inSync := report.Missing(), report.InSync()
	conflicts, unresolved := report.Conflicts(), report.Unresolved()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Reconciled %d images: %d missing on target, %d in sync, %d in conflict, %d unresolved\n",
		len(report.Records()), len(missing), len(inSync), len(conflicts), len(unresolved))

	if len(conflicts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, color.RedString("%s:", reconcile.StatusConflict))
		for _, record := range conflicts {
			fmt.Fprintf(w, "  %s (source %s, target %s)\n", record.Identity, record.Source, record.Target)
		}
	}

	if len(unresolved) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, color.YellowString("%s:", reconcile.StatusUnknown))
		for _, record := range unresolved {
			fmt.Fprintf(w, "  %s: %v\n", record.Identity, record.LookupErr)
		}
	}

	if warnings := report.Warnings(); len(warnings) > 0 {
		fmt.Fprintln(w)
		for _, warning := range warnings {
			fmt.Fprintln(w, color.YellowString("Warning: %s", warning))
		}
	}
}

// PrintPlans writes the docker commands a non dry-run execution would run,
// one block per missing image.
func PrintPlans(w io.Writer, report *reconcile.Report) {
	missing := report.Missing()
	if len(missing) == 0 {
		fmt.Fprintln(w, "Nothing to transfer, the target registry holds every source image.")
		return
	}

	fmt.Fprintln(w, "These commands would run:")
	for _, record := range missing {
		for _, command := range record.Plan.Commands() {
			fmt.Fprintln(w, command)
		}
		fmt.Fprintln(w)
	}
}
