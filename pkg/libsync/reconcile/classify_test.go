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
	"strings"
	"testing"

	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/stretchr/testify/require"
)

func testHash(t *testing.T, hexDigit string) v1.Hash {
	t.Helper()
	hash, err := v1.NewHash("sha256:" + strings.Repeat(hexDigit, 64))
	require.NoError(t, err)
	return hash
}

func TestClassify(t *testing.T) {
	digestA := testHash(t, "a")
	digestB := testHash(t, "b")

	tests := []struct {
		name   string
		source DigestObservation
		target DigestObservation
		want   Status
	}{
		{
			name:   "target absent",
			source: DigestPresent(digestA),
			target: DigestAbsent(),
			want:   StatusMissingOnTarget,
		},
		{
			name:   "both absent",
			source: DigestAbsent(),
			target: DigestAbsent(),
			want:   StatusMissingOnTarget,
		},
		{
			name:   "equal digests",
			source: DigestPresent(digestA),
			target: DigestPresent(digestA),
			want:   StatusInSync,
		},
		{
			name:   "different digests",
			source: DigestPresent(digestA),
			target: DigestPresent(digestB),
			want:   StatusConflict,
		},
		{
			name:   "source absent while target present",
			source: DigestAbsent(),
			target: DigestPresent(digestA),
			want:   StatusConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Classify(tt.source, tt.target))
		})
	}
}

func TestClassifyIsTotalAndDeterministic(t *testing.T) {
	observations := []DigestObservation{
		DigestAbsent(),
		DigestPresent(testHash(t, "a")),
		DigestPresent(testHash(t, "b")),
	}

	for _, source := range observations {
		for _, target := range observations {
			first := Classify(source, target)
			require.Contains(t,
				[]Status{StatusMissingOnTarget, StatusInSync, StatusConflict},
				first, "classification of (%s, %s) fell outside the status set", source, target)

			for range 5 {
				require.Equal(t, first, Classify(source, target))
			}
		}
	}
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "Image doesn't exist on target", StatusMissingOnTarget.String())
	require.Equal(t, "Image already present on target", StatusInSync.String())
	require.Equal(t, "Conflict: same tag exist in both registries with different digest", StatusConflict.String())
	require.Equal(t, "Unknown: digest lookup failed", StatusUnknown.String())
}
