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

package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-containerregistry/pkg/v1/remote/transport"
	"github.com/stretchr/testify/require"
)

func TestIsImageNotFoundError(t *testing.T) {
	require.False(t, IsImageNotFoundError(nil))

	notFound := &transport.Error{StatusCode: http.StatusNotFound}
	require.True(t, IsImageNotFoundError(notFound))
	require.True(t, IsImageNotFoundError(fmt.Errorf("resolve digest: %w", notFound)))

	require.True(t, IsImageNotFoundError(errors.New("MANIFEST_UNKNOWN: manifest unknown")))
	require.True(t, IsImageNotFoundError(errors.New("NAME_UNKNOWN: repository name not known to registry")))

	require.False(t, IsImageNotFoundError(&transport.Error{StatusCode: http.StatusInternalServerError}))
	require.False(t, IsImageNotFoundError(errors.New("connection refused")))
	require.False(t, IsImageNotFoundError(errors.New("context deadline exceeded")))
}

func TestIsAuthenticationError(t *testing.T) {
	require.False(t, IsAuthenticationError(nil))

	require.True(t, IsAuthenticationError(&transport.Error{StatusCode: http.StatusUnauthorized}))
	require.True(t, IsAuthenticationError(&transport.Error{StatusCode: http.StatusForbidden}))
	require.True(t, IsAuthenticationError(fmt.Errorf("ping registry: %w", &transport.Error{StatusCode: http.StatusUnauthorized})))
	require.True(t, IsAuthenticationError(errors.New("UNAUTHORIZED: authentication required")))
	require.True(t, IsAuthenticationError(errors.New("DENIED: requested access to the resource is denied")))

	require.False(t, IsAuthenticationError(&transport.Error{StatusCode: http.StatusNotFound}))
	require.False(t, IsAuthenticationError(errors.New("connection refused")))
}
