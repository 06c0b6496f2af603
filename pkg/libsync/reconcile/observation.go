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
	v1 "github.com/google/go-containerregistry/pkg/v1"
)

// DigestObservation is the answer one registry gave about one ImageIdentity:
// either the manifest digest it holds under that tag, or a confirmed absence.
// A failed lookup is neither and must not be folded into Absent.
type DigestObservation struct {
	digest  v1.Hash
	present bool
}

func DigestPresent(digest v1.Hash) DigestObservation {
	return DigestObservation{digest: digest, present: true}
}

func DigestAbsent() DigestObservation {
	return DigestObservation{}
}

func (o DigestObservation) Present() bool {
	return o.present
}

func (o DigestObservation) Digest() v1.Hash {
	return o.digest
}

func (o DigestObservation) String() string {
	if !o.present {
		return ""
	}
	return o.digest.String()
}
