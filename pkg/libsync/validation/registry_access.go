package validation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"

	"github.com/flant/regsync/pkg/libsync/util/auth"
	"github.com/flant/regsync/pkg/libsync/util/errorutil"
)

// ErrAuthenticationFailed marks credentials a registry rejected. Fatal for
// the run, never retried.
var ErrAuthenticationFailed = errors.New("registry authentication failed")

type options struct {
	plainHTTP           bool
	skipTLSVerification bool
	authProvider        authn.Authenticator
}

type Option func(o *options)

func UsePlainHTTP() Option {
	return func(o *options) {
		o.plainHTTP = true
	}
}

func SkipTLSVerification() Option {
	return func(o *options) {
		o.skipTLSVerification = true
	}
}

func UseAuthProvider(authProvider authn.Authenticator) Option {
	return func(o *options) {
		o.authProvider = authProvider
	}
}

type RegistryAccessValidator interface {
	ValidateCatalogAccess(ctx context.Context, registryAddr string, opts ...Option) error
	ValidateReadAccess(ctx context.Context, registryAddr string, opts ...Option) error
}

type RemoteRegistryAccessValidator struct{}

func NewRemoteRegistryAccessValidator() *RemoteRegistryAccessValidator {
	return &RemoteRegistryAccessValidator{}
}

// ValidateCatalogAccess lists the registry catalog with the configured
// credentials. Use it for registries the run must enumerate.
func (v *RemoteRegistryAccessValidator) ValidateCatalogAccess(ctx context.Context, registryAddr string, o ...Option) error {
	opts := v.useOptions(o)
	nameOpts, remoteOpts := auth.MakeRemoteRegistryRequestOptions(opts.authProvider, opts.plainHTTP, opts.skipTLSVerification)

	reg, err := name.NewRegistry(registryAddr, nameOpts...)
	if err != nil {
		return fmt.Errorf("Parse registry address: %w", err)
	}

	if _, err := remote.Catalog(ctx, reg, remoteOpts...); err != nil {
		if errorutil.IsAuthenticationError(err) {
			return fmt.Errorf("%s: %w: %w", registryAddr, ErrAuthenticationFailed, err)
		}
		return fmt.Errorf("List catalog of %s: %w", registryAddr, err)
	}

	return nil
}

// ValidateReadAccess exercises the registry auth handshake through a manifest
// probe on a synthetic tag. A not-found answer means the credentials were
// accepted, catalog scope is not required.
func (v *RemoteRegistryAccessValidator) ValidateReadAccess(ctx context.Context, registryAddr string, o ...Option) error {
	opts := v.useOptions(o)
	nameOpts, remoteOpts := auth.MakeRemoteRegistryRequestOptions(opts.authProvider, opts.plainHTTP, opts.skipTLSVerification)
	remoteOpts = append(remoteOpts, remote.WithContext(ctx))

	ref, err := name.NewTag(registryAddr+"/regsync-access-check:regsyncReadCheck", nameOpts...)
	if err != nil {
		return fmt.Errorf("Parse registry address: %w", err)
	}

	_, err = remote.Head(ref, remoteOpts...)
	switch {
	case err == nil, errorutil.IsImageNotFoundError(err):
		return nil
	case errorutil.IsAuthenticationError(err):
		return fmt.Errorf("%s: %w: %w", registryAddr, ErrAuthenticationFailed, err)
	default:
		return fmt.Errorf("Validate read access to %s: %w", registryAddr, err)
	}
}

func (v *RemoteRegistryAccessValidator) useOptions(opts []Option) *options {
	o := &options{
		authProvider: authn.Anonymous,
	}

	for _, opt := range opts {
		opt(o)
	}
	return o
}
