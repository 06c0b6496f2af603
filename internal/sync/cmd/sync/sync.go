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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/logs"
	"github.com/spf13/cobra"

	"github.com/flant/regsync/internal/version"
	"github.com/flant/regsync/pkg/libsync/executor"
	"github.com/flant/regsync/pkg/libsync/export"
	"github.com/flant/regsync/pkg/libsync/reconcile"
	"github.com/flant/regsync/pkg/libsync/registry"
	"github.com/flant/regsync/pkg/libsync/util/log"
	"github.com/flant/regsync/pkg/libsync/validation"
)

var ErrSyncFailed = errors.New("sync failed, see the log for details")

// CLI Parameters
var (
	SourceRegistry         string
	SourceRegistryUser     string
	SourceRegistryPassword string

	TargetRegistry         string
	TargetRegistryUser     string
	TargetRegistryPassword string

	DryRun      bool
	ReportPath  string
	Parallelism int

	Insecure      bool
	TLSSkipVerify bool
)

const syncLong = `Reconcile two container registries tag by tag.

This command enumerates every repository of the source registry, compares
the manifest digest of each tag against the target registry and transfers
the images the target registry is missing through the local Docker daemon.
Tags that hold different digests on the two sides are never overwritten,
they are reported as conflicts for a human to resolve.

Every comparison is written into a CSV report alongside the docker commands
that transfer the image, so the run can be audited or replayed by hand.

Additional configuration options are available as environment variables:

 * $REGSYNC_SOURCE_USER/$REGSYNC_SOURCE_PASSWORD — source registry credentials;
 * $REGSYNC_TARGET_USER/$REGSYNC_TARGET_PASSWORD — target registry credentials;
 * $REGSYNC_DEBUG_LOG                            — registry client debug logging, levels 1 to 3.

© Flant JSC 2025`

func NewCommand() *cobra.Command {
	syncCmd := &cobra.Command{
		Use:           "sync",
		Short:         "Reconcile two container registries tag by tag",
		Long:          syncLong,
		SilenceErrors: true,
		SilenceUsage:  true,
		PreRunE:       parseAndValidateParameters,
		RunE:          runSync,
	}

	addFlags(syncCmd.Flags())

	switch debugLogLevel := log.DebugLogLevel(); {
	case debugLogLevel >= 3:
		logs.Debug.SetOutput(os.Stderr)
	case debugLogLevel >= 2:
		logs.Warn.SetOutput(os.Stderr)
	case debugLogLevel >= 1:
		logs.Progress.SetOutput(os.Stderr)
	}

	return syncCmd
}

func runSync(cmd *cobra.Command, _ []string) error {
	logger := setupLogger()
	logger.InfoF("regsync version: %s", version.Version)

	source, target, err := buildRegistryClients()
	if err != nil {
		return fmt.Errorf("Prepare registry clients: %w", err)
	}

	accessCtx, cancelAccessCheck := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancelAccessCheck()
	if err = validateRegistryAccess(accessCtx, source, target); err != nil && os.Getenv("REGSYNC_BYPASS_ACCESS_CHECKS") != "1" {
		return fmt.Errorf("Registry access validation failure: %w", err)
	}

	var report *reconcile.Report
	if err := logger.Process("Reconcile registries", func() error {
		reconciler := reconcile.NewReconciler(
			source, target,
			reconcile.WithLogger(logger),
			reconcile.WithParallelism(Parallelism),
		)

		r, err := reconciler.Run(cmd.Context())
		if err != nil {
			return err
		}

		report = r
		return nil
	}); err != nil {
		return ErrSyncFailed
	}

	if ReportPath != "" {
		if err := export.WriteCSVFile(ReportPath, report); err != nil {
			return fmt.Errorf("Write CSV report: %w", err)
		}
		logger.InfoF("Report written to %s", ReportPath)
	}

	export.PrintSummary(os.Stdout, report)

	if DryRun {
		export.PrintPlans(os.Stdout, report)
		return nil
	}

	if err := logger.Process("Transfer missing images", func() error {
		return transferMissingImages(cmd.Context(), logger, report, source, target)
	}); err != nil {
		return ErrSyncFailed
	}

	return nil
}

func setupLogger() *log.SLogger {
	logLevel := slog.LevelInfo
	if log.DebugLogLevel() >= 3 {
		logLevel = slog.LevelDebug
	}
	return log.NewSLogger(logLevel)
}

func buildRegistryClients() (source, target *registry.Client, err error) {
	source, err = registry.NewClient(SourceRegistry, clientOptions(sourceAuthProvider())...)
	if err != nil {
		return nil, nil, fmt.Errorf("Source registry: %w", err)
	}

	target, err = registry.NewClient(TargetRegistry, clientOptions(targetAuthProvider())...)
	if err != nil {
		return nil, nil, fmt.Errorf("Target registry: %w", err)
	}

	return source, target, nil
}

func clientOptions(authProvider authn.Authenticator) []registry.Option {
	opts := []registry.Option{registry.UseAuthProvider(authProvider)}
	if Insecure {
		opts = append(opts, registry.UsePlainHTTP())
	}
	if TLSSkipVerify {
		opts = append(opts, registry.SkipTLSVerification())
	}
	return opts
}

func sourceAuthProvider() authn.Authenticator {
	if SourceRegistryUser != "" {
		return authn.FromConfig(authn.AuthConfig{
			Username: SourceRegistryUser,
			Password: SourceRegistryPassword,
		})
	}

	return authn.Anonymous
}

func targetAuthProvider() authn.Authenticator {
	if TargetRegistryUser != "" {
		return authn.FromConfig(authn.AuthConfig{
			Username: TargetRegistryUser,
			Password: TargetRegistryPassword,
		})
	}

	return authn.Anonymous
}

func validateRegistryAccess(ctx context.Context, source, target *registry.Client) error {
	accessValidator := validation.NewRemoteRegistryAccessValidator()

	opts := registryAccessOptions(SourceRegistry, sourceAuthProvider())
	if err := accessValidator.ValidateCatalogAccess(ctx, source.Host(), opts...); err != nil {
		return fmt.Errorf("Source registry: %w", err)
	}

	opts = registryAccessOptions(TargetRegistry, targetAuthProvider())
	if err := accessValidator.ValidateReadAccess(ctx, target.Host(), opts...); err != nil {
		return fmt.Errorf("Target registry: %w", err)
	}

	return nil
}

func registryAccessOptions(endpoint string, authProvider authn.Authenticator) []validation.Option {
	opts := []validation.Option{validation.UseAuthProvider(authProvider)}
	if Insecure || strings.HasPrefix(endpoint, "http://") {
		opts = append(opts, validation.UsePlainHTTP())
	}
	if TLSSkipVerify {
		opts = append(opts, validation.SkipTLSVerification())
	}
	return opts
}

func transferMissingImages(
	ctx context.Context,
	logger executor.Logger,
	report *reconcile.Report,
	source, target *registry.Client,
) error {
	dockerExecutor, err := executor.NewDockerExecutor(logger, daemonCredentials(source, target)...)
	if err != nil {
		return err
	}

	if err := dockerExecutor.Login(ctx); err != nil {
		return err
	}

	return dockerExecutor.ExecuteAll(ctx, report)
}

func daemonCredentials(source, target *registry.Client) []executor.Credential {
	credentials := make([]executor.Credential, 0, 2)
	if SourceRegistryUser != "" {
		credentials = append(credentials, executor.Credential{
			Host:     source.Host(),
			Username: SourceRegistryUser,
			Password: SourceRegistryPassword,
		})
	}
	if TargetRegistryUser != "" {
		credentials = append(credentials, executor.Credential{
			Host:     target.Host(),
			Username: TargetRegistryUser,
			Password: TargetRegistryPassword,
		})
	}
	return credentials
}
