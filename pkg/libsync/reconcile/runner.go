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
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/flant/regsync/pkg/libsync/util/parallel"
)

// ErrCatalogUnavailable marks a source registry whose catalog cannot be
// listed. There is nothing to reconcile without a catalog, so this is fatal
// for the whole run.
var ErrCatalogUnavailable = errors.New("registry catalog unavailable")

const DefaultParallelism = 4

// RegistryClient is the read surface of one registry endpoint used during
// reconciliation.
type RegistryClient interface {
	Host() string
	Catalog(ctx context.Context) ([]string, error)
	Tags(ctx context.Context, repo string) ([]string, error)
	Digest(ctx context.Context, identity ImageIdentity) (DigestObservation, error)
}

type Logger interface {
	DebugF(format string, a ...interface{})
	DebugLn(a ...interface{})

	InfoF(format string, a ...interface{})
	InfoLn(a ...interface{})

	WarnF(format string, a ...interface{})
	WarnLn(a ...interface{})

	Process(topic string, run func() error) error
}

// Reconciler walks the source registry catalog and classifies every
// image:tag pair it finds against the target registry.
type Reconciler struct {
	source RegistryClient
	target RegistryClient

	logger      Logger
	parallelism int
}

type Option func(r *Reconciler)

func WithLogger(logger Logger) Option {
	return func(r *Reconciler) {
		r.logger = logger
	}
}

// WithParallelism bounds the number of identities resolved concurrently.
// Values below 1 lift the bound entirely.
func WithParallelism(parallelism int) Option {
	return func(r *Reconciler) {
		r.parallelism = parallelism
	}
}

func NewReconciler(source, target RegistryClient, opts ...Option) *Reconciler {
	r := &Reconciler{
		source:      source,
		target:      target,
		logger:      nopLogger{},
		parallelism: DefaultParallelism,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run produces the report for one reconciliation pass. Records come back in
// source catalog enumeration order regardless of resolution concurrency.
// Repositories whose tag list cannot be fetched are skipped with a warning,
// identities whose digest lookup failed are retained as unresolved.
func (r *Reconciler) Run(ctx context.Context) (*Report, error) {
	repos, err := r.source.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCatalogUnavailable, r.source.Host(), err)
	}

	identities, warnings := r.enumerate(ctx, repos)
	r.logger.InfoF("Found %d images to reconcile in %d repositories of %s", len(identities), len(repos), r.source.Host())

	records := make([]Record, len(identities))
	err = parallel.ForEachWithErrors(identities, r.parallelism, func(identity ImageIdentity, index int) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		records[index] = r.resolve(ctx, identity)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Resolve digests: %w", err)
	}

	for _, record := range records {
		if record.LookupErr != nil {
			warnings = append(warnings, fmt.Sprintf("Digest lookup failed for %s: %v", record.Identity, record.LookupErr))
		}
	}

	return NewReport(records, warnings), nil
}

// enumerate expands the catalog into image:tag identities, in the order the
// registry returned them.
func (r *Reconciler) enumerate(ctx context.Context, repos []string) ([]ImageIdentity, []string) {
	identities := make([]ImageIdentity, 0, len(repos))
	warnings := []string{}

	for _, repo := range repos {
		tags, err := r.source.Tags(ctx, repo)
		if err != nil {
			warning := fmt.Sprintf("Skipped repository %q: list tags: %v", repo, err)
			r.logger.WarnLn(warning)
			warnings = append(warnings, warning)
			continue
		}

		for _, tag := range tags {
			identities = append(identities, ImageIdentity{Repo: repo, Tag: tag})
		}
	}

	return identities, warnings
}

func (r *Reconciler) resolve(ctx context.Context, identity ImageIdentity) Record {
	merr := &multierror.Error{}

	source, err := r.source.Digest(ctx, identity)
	if err != nil {
		merr = multierror.Append(merr, fmt.Errorf("source: %w", err))
	}

	target, err := r.target.Digest(ctx, identity)
	if err != nil {
		merr = multierror.Append(merr, fmt.Errorf("target: %w", err))
	}

	if lookupErr := merr.ErrorOrNil(); lookupErr != nil {
		r.logger.WarnF("Could not resolve %s: %v", identity, lookupErr)
		return NewUnresolvedRecord(identity, lookupErr)
	}

	record := NewRecord(identity, source, target, r.source.Host(), r.target.Host())
	r.logger.DebugF("%s: %s", identity, record.Status)
	return record
}

type nopLogger struct{}

func (nopLogger) DebugF(_ string, _ ...interface{}) {}
func (nopLogger) DebugLn(_ ...interface{})          {}
func (nopLogger) InfoF(_ string, _ ...interface{})  {}
func (nopLogger) InfoLn(_ ...interface{})           {}
func (nopLogger) WarnF(_ string, _ ...interface{})  {}
func (nopLogger) WarnLn(_ ...interface{})           {}

func (nopLogger) Process(_ string, run func() error) error { return run() }
