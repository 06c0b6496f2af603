package regtest

import (
	"io"
	golog "log"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/registry"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/random"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/stretchr/testify/require"
)

// StartRegistry runs an in-memory registry over plain HTTP and returns its
// scheme-less host. The server is shut down when the test finishes.
func StartRegistry(tb testing.TB) string {
	tb.Helper()

	handler := registry.New(registry.Logger(golog.New(io.Discard, "", 0)))
	server := httptest.NewServer(handler)
	tb.Cleanup(server.Close)

	return strings.TrimPrefix(server.URL, "http://")
}

func RandomImage(tb testing.TB) v1.Image {
	tb.Helper()

	img, err := random.Image(256, 1)
	require.NoError(tb, err)

	return img
}

// PushImage publishes img under host/repo:tag and returns its manifest
// digest.
func PushImage(tb testing.TB, img v1.Image, host, repo, tag string) v1.Hash {
	tb.Helper()

	ref, err := name.ParseReference(host+"/"+repo+":"+tag, name.Insecure)
	require.NoError(tb, err)
	require.NoError(tb, remote.Write(ref, img))

	digest, err := img.Digest()
	require.NoError(tb, err)

	return digest
}

// PushRandomImage publishes a fresh random image under host/repo:tag.
func PushRandomImage(tb testing.TB, host, repo, tag string) v1.Hash {
	tb.Helper()

	return PushImage(tb, RandomImage(tb), host, repo, tag)
}
