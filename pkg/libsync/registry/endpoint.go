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
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
)

// ParseEndpoint splits a registry endpoint as given on the command line into
// a scheme-less host and a plain HTTP marker. Endpoints may carry an explicit
// http:// or https:// prefix, bare hosts default to HTTPS. Image references
// and generated commands name registries by host only, never by scheme.
func ParseEndpoint(endpoint string) (host string, plainHTTP bool, err error) {
	host = strings.TrimSuffix(endpoint, "/")
	switch {
	case strings.HasPrefix(host, "http://"):
		host = strings.TrimPrefix(host, "http://")
		plainHTTP = true
	case strings.HasPrefix(host, "https://"):
		host = strings.TrimPrefix(host, "https://")
	}

	if host == "" {
		return "", false, errors.New("empty registry address")
	}

	if _, err := name.NewRegistry(host); err != nil {
		return "", false, fmt.Errorf("Parse registry address %q: %w", endpoint, err)
	}

	return host, plainHTTP, nil
}
