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

package auth

import (
	"crypto/tls"
	"net/http"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/hashicorp/go-cleanhttp"
)

func MakeRemoteRegistryRequestOptions(authProvider authn.Authenticator, plainHTTP, skipTLSVerification bool) ([]name.Option, []remote.Option) {
	n, r := make([]name.Option, 0), make([]remote.Option, 0)

	if plainHTTP {
		n = append(n, name.Insecure)
	}

	if authProvider != nil && authProvider != authn.Anonymous {
		r = append(r, remote.WithAuth(authProvider))
	}

	if skipTLSVerification {
		r = append(r, remote.WithTransport(MakeInsecureTransport()))
	}

	puller, err := remote.NewPuller(r...)
	if err != nil {
		panic(err)
	}

	r = append(r, remote.Reuse(puller))
	return n, r
}

func MakeInsecureTransport() *http.Transport {
	transport := cleanhttp.DefaultTransport()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	return transport
}
