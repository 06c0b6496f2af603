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
	"net/http"
	"strings"

	"github.com/google/go-containerregistry/pkg/v1/remote/transport"
)

// IsImageNotFoundError reports whether err is a registry answer that confirms
// the requested manifest or repository does not exist. Transport failures,
// timeouts and 5xx responses are not confirmations and return false.
func IsImageNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	var transportErr *transport.Error
	if errors.As(err, &transportErr) && transportErr.StatusCode == http.StatusNotFound {
		return true
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "MANIFEST_UNKNOWN") || strings.Contains(errMsg, "NAME_UNKNOWN")
}

// IsAuthenticationError reports whether err is a registry rejecting our
// credentials or denying access to the requested resource.
func IsAuthenticationError(err error) bool {
	if err == nil {
		return false
	}

	var transportErr *transport.Error
	if errors.As(err, &transportErr) &&
		(transportErr.StatusCode == http.StatusUnauthorized || transportErr.StatusCode == http.StatusForbidden) {
		return true
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "UNAUTHORIZED") || strings.Contains(errMsg, "DENIED")
}
