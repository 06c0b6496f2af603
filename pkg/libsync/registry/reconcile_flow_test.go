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
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flant/regsync/pkg/libsync/reconcile"
	"github.com/flant/regsync/pkg/libsync/util/log"
	"github.com/flant/regsync/testing/util/regtest"
)

func TestReconcileFlowAgainstLiveRegistries(t *testing.T) {
	sourceHost := regtest.StartRegistry(t)
	targetHost := regtest.StartRegistry(t)

	// app:v1 holds the same content on both sides.
	shared := regtest.RandomImage(t)
	regtest.PushImage(t, shared, sourceHost, "app", "v1")
	regtest.PushImage(t, shared, targetHost, "app", "v1")

	// app:v2 exists only on the source.
	regtest.PushRandomImage(t, sourceHost, "app", "v2")

	// team/web:stable holds different content on each side.
	regtest.PushRandomImage(t, sourceHost, "team/web", "stable")
	regtest.PushRandomImage(t, targetHost, "team/web", "stable")

	source, err := NewClient("http://" + sourceHost)
	require.NoError(t, err)
	target, err := NewClient("http://" + targetHost)
	require.NoError(t, err)

	reconciler := reconcile.NewReconciler(
		source, target,
		reconcile.WithLogger(log.NewSLogger(slog.LevelDebug)),
		reconcile.WithParallelism(2),
	)

	report, err := reconciler.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Records(), 3)
	assert.Empty(t, report.Warnings())

	statuses := map[string]reconcile.Status{}
	for _, record := range report.Records() {
		statuses[record.Identity.String()] = record.Status
	}
	assert.Equal(t, map[string]reconcile.Status{
		"app:v1":          reconcile.StatusInSync,
		"app:v2":          reconcile.StatusMissingOnTarget,
		"team/web:stable": reconcile.StatusConflict,
	}, statuses)

	missing := report.Missing()
	require.Len(t, missing, 1)
	assert.Equal(t, []string{
		"docker pull " + sourceHost + "/app:v2",
		"docker tag " + sourceHost + "/app:v2 " + targetHost + "/app:v2",
		"docker push " + targetHost + "/app:v2",
		"docker rmi " + sourceHost + "/app:v2",
		"docker rmi " + targetHost + "/app:v2",
	}, missing[0].Plan.Commands())

	conflicts := report.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, "team/web:stable", conflicts[0].Identity.String())
	assert.NotEqual(t, conflicts[0].Source.Digest(), conflicts[0].Target.Digest())
	assert.True(t, conflicts[0].Plan.Empty())
}
