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

// Status describes the relationship between the source and target copies of
// one image:tag pair.
type Status int

const (
	// StatusUnknown marks identities whose digest lookup failed on either
	// side. They are retained in the report instead of being misclassified.
	StatusUnknown Status = iota
	StatusMissingOnTarget
	StatusInSync
	StatusConflict
)

func (s Status) String() string {
	switch s {
	case StatusMissingOnTarget:
		return "Image doesn't exist on target"
	case StatusInSync:
		return "Image already present on target"
	case StatusConflict:
		return "Conflict: same tag exist in both registries with different digest"
	default:
		return "Unknown: digest lookup failed"
	}
}

// Classify derives the status of one identity from what both registries said
// about it. First matching rule wins:
//
//  1. target digest absent: the tag has no counterpart, MissingOnTarget.
//  2. both digests present and equal: InSync.
//  3. anything else: Conflict. This covers unequal digests as well as a tag
//     the target holds while the source does not, both are divergences that
//     need an operator decision rather than an automatic overwrite.
func Classify(source, target DigestObservation) Status {
	switch {
	case !target.Present():
		return StatusMissingOnTarget
	case source.Present() && source.Digest() == target.Digest():
		return StatusInSync
	default:
		return StatusConflict
	}
}
