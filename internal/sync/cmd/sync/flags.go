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

package sync

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/flant/regsync/pkg/libsync/reconcile"
)

func addFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(
		&SourceRegistry,
		"source",
		"",
		"Source registry to reconcile images from.",
	)
	flagSet.StringVar(
		&SourceRegistryUser,
		"source-user",
		os.Getenv("REGSYNC_SOURCE_USER"),
		"Source registry login.",
	)
	flagSet.StringVar(
		&SourceRegistryPassword,
		"source-password",
		os.Getenv("REGSYNC_SOURCE_PASSWORD"),
		"Source registry password. Prompted for if a login is set and this is left empty.",
	)
	flagSet.StringVar(
		&TargetRegistry,
		"target",
		"",
		"Target registry to reconcile images into.",
	)
	flagSet.StringVar(
		&TargetRegistryUser,
		"target-user",
		os.Getenv("REGSYNC_TARGET_USER"),
		"Target registry login.",
	)
	flagSet.StringVar(
		&TargetRegistryPassword,
		"target-password",
		os.Getenv("REGSYNC_TARGET_PASSWORD"),
		"Target registry password. Prompted for if a login is set and this is left empty.",
	)
	flagSet.BoolVar(
		&DryRun,
		"dry-run",
		false,
		"Print the docker commands that would transfer missing images instead of running them.",
	)
	flagSet.StringVar(
		&ReportPath,
		"report",
		"output.csv",
		"Path of the CSV comparison report. Pass an empty string to disable the report file.",
	)
	flagSet.IntVar(
		&Parallelism,
		"parallelism",
		reconcile.DefaultParallelism,
		"Number of concurrent digest resolutions. 1 resolves digests one by one.",
	)
	flagSet.BoolVar(
		&TLSSkipVerify,
		"tls-skip-verify",
		false,
		"Disable TLS certificate validation.",
	)
	flagSet.BoolVar(
		&Insecure,
		"insecure",
		false,
		"Interact with registries over HTTP.",
	)
}
