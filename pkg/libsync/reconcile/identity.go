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

// ImageIdentity is one repository:tag pair drawn from the source registry
// catalog. It names a single reconciliation unit within a run.
type ImageIdentity struct {
	Repo string
	Tag  string
}

func (id ImageIdentity) String() string {
	return id.Repo + ":" + id.Tag
}

// RefOn renders the fully qualified image reference of this identity on the
// given registry host. Hosts are scheme-less, image references name
// registries by host/path only.
func (id ImageIdentity) RefOn(host string) string {
	return host + "/" + id.Repo + ":" + id.Tag
}
