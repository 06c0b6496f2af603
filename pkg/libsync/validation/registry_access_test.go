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

package validation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/registry"
	"github.com/stretchr/testify/require"

	"github.com/flant/regsync/testing/util/regtest"
)

func TestCatalogAccessValidationPlainHTTP(t *testing.T) {
	host := regtest.StartRegistry(t)
	regtest.PushRandomImage(t, host, "app", "v1")

	err := NewRemoteRegistryAccessValidator().ValidateCatalogAccess(context.TODO(), host, UsePlainHTTP())
	require.NoError(t, err, "Should validate successfully")
}

func TestReadAccessValidationPlainHTTP(t *testing.T) {
	host := regtest.StartRegistry(t)

	err := NewRemoteRegistryAccessValidator().ValidateReadAccess(context.TODO(), host, UsePlainHTTP())
	require.NoError(t, err, "Should validate successfully against an empty registry")
}

func TestAccessValidationWithSkipTLSVerify(t *testing.T) {
	server := httptest.NewTLSServer(registry.New())
	t.Cleanup(server.Close)
	host := strings.TrimPrefix(server.URL, "https://")

	validator := NewRemoteRegistryAccessValidator()

	err := validator.ValidateCatalogAccess(context.TODO(), host, SkipTLSVerification())
	require.NoError(t, err, "Should validate successfully")

	err = validator.ValidateReadAccess(context.TODO(), host, SkipTLSVerification())
	require.NoError(t, err, "Should validate successfully")
}

func TestAccessValidationRejectedCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("WWW-Authenticate", `Basic realm="registry"`)
		http.Error(w, "authentication required", http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)
	host := strings.TrimPrefix(server.URL, "http://")

	provider := authn.FromConfig(authn.AuthConfig{Username: "operator", Password: "wrong"})
	validator := NewRemoteRegistryAccessValidator()

	err := validator.ValidateCatalogAccess(context.TODO(), host, UsePlainHTTP(), UseAuthProvider(provider))
	require.ErrorIs(t, err, ErrAuthenticationFailed)
	require.ErrorContains(t, err, host)

	err = validator.ValidateReadAccess(context.TODO(), host, UsePlainHTTP(), UseAuthProvider(provider))
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}

func TestAccessValidationUnreachableRegistry(t *testing.T) {
	server := httptest.NewServer(registry.New())
	host := strings.TrimPrefix(server.URL, "http://")
	server.Close()

	err := NewRemoteRegistryAccessValidator().ValidateCatalogAccess(context.TODO(), host, UsePlainHTTP())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrAuthenticationFailed, "an unreachable registry is not an authentication failure")
}
