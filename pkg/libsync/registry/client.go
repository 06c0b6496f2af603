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

package registry

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"

	"github.com/flant/regsync/pkg/libsync/reconcile"
	"github.com/flant/regsync/pkg/libsync/util/auth"
	"github.com/flant/regsync/pkg/libsync/util/errorutil"
)

// Client issues read-only catalog, tag list and manifest digest queries
// against one registry endpoint. Safe for concurrent use.
type Client struct {
	host     string
	registry name.Registry

	nameOpts   []name.Option
	remoteOpts []remote.Option
}

var _ reconcile.RegistryClient = (*Client)(nil)

func NewClient(endpoint string, opts ...Option) (*Client, error) {
	o := &options{authProvider: authn.Anonymous}
	for _, opt := range opts {
		opt(o)
	}

	host, plainHTTP, err := ParseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	nameOpts, remoteOpts := auth.MakeRemoteRegistryRequestOptions(o.authProvider, plainHTTP || o.plainHTTP, o.skipTLSVerification)

	reg, err := name.NewRegistry(host, nameOpts...)
	if err != nil {
		return nil, fmt.Errorf("Parse registry address %q: %w", host, err)
	}

	return &Client{
		host:       host,
		registry:   reg,
		nameOpts:   nameOpts,
		remoteOpts: remoteOpts,
	}, nil
}

// Host returns the scheme-less registry address.
func (c *Client) Host() string {
	return c.host
}

// Catalog lists every repository the registry hosts, following pagination to
// exhaustion.
func (c *Client) Catalog(ctx context.Context) ([]string, error) {
	repos, err := remote.Catalog(ctx, c.registry, c.remoteOpts...)
	if err != nil {
		return nil, fmt.Errorf("List catalog of %s: %w", c.host, err)
	}

	return repos, nil
}

// Tags lists the tags of one repository, in the order the registry returned
// them.
func (c *Client) Tags(ctx context.Context, repo string) ([]string, error) {
	repository, err := name.NewRepository(c.host+"/"+repo, c.nameOpts...)
	if err != nil {
		return nil, fmt.Errorf("Parse repository %q: %w", repo, err)
	}

	tags, err := remote.List(repository, c.requestOpts(ctx)...)
	if err != nil {
		return nil, fmt.Errorf("List tags of %s: %w", repository, err)
	}

	return tags, nil
}

// Digest resolves the manifest digest the registry holds for identity. A
// confirmed not-found answer maps to an absent observation, any other failure
// is returned as an error so the caller keeps the identity as unresolved
// instead of mistaking it for absent.
func (c *Client) Digest(ctx context.Context, identity reconcile.ImageIdentity) (reconcile.DigestObservation, error) {
	ref, err := name.ParseReference(identity.RefOn(c.host), c.nameOpts...)
	if err != nil {
		return reconcile.DigestObservation{}, fmt.Errorf("Parse reference %q: %w", identity.RefOn(c.host), err)
	}

	opts := c.requestOpts(ctx)

	desc, err := remote.Head(ref, opts...)
	if err == nil {
		return reconcile.DigestPresent(desc.Digest), nil
	}
	if errorutil.IsImageNotFoundError(err) {
		return reconcile.DigestAbsent(), nil
	}

	// Some registries serve manifests but mishandle HEAD. A GET both retries
	// the lookup and verifies the digest against the manifest body.
	getDesc, getErr := remote.Get(ref, opts...)
	if getErr == nil {
		return reconcile.DigestPresent(getDesc.Digest), nil
	}
	if errorutil.IsImageNotFoundError(getErr) {
		return reconcile.DigestAbsent(), nil
	}

	return reconcile.DigestObservation{}, fmt.Errorf("Resolve digest of %s: %w", ref, getErr)
}

// requestOpts clones the shared options so concurrent requests do not append
// into the same backing array.
func (c *Client) requestOpts(ctx context.Context) []remote.Option {
	return append(slices.Clone(c.remoteOpts), remote.WithContext(ctx))
}
