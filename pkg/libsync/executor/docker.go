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

package executor

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/hashicorp/go-multierror"

	"github.com/flant/regsync/pkg/libsync/reconcile"
)

// ErrAuthenticationFailed reports that the Docker daemon rejected the
// credentials for one of the configured registries.
var ErrAuthenticationFailed = errors.New("docker registry login failed")

type Logger interface {
	DebugF(format string, a ...interface{})
	DebugLn(a ...interface{})

	InfoF(format string, a ...interface{})
	InfoLn(a ...interface{})

	WarnF(format string, a ...interface{})
	WarnLn(a ...interface{})

	Process(topic string, run func() error) error
}

// Credential holds registry credentials for the Docker daemon to use when
// pulling from or pushing to a registry host.
type Credential struct {
	Host     string
	Username string
	Password string
}

// DockerExecutor runs transfer plans against the local Docker daemon.
// Each step maps onto one Engine API call, in the same order the plan
// lists its docker commands.
type DockerExecutor struct {
	cli    *client.Client
	logger Logger

	credentials []Credential

	// auths caches the encoded X-Registry-Auth payload per registry host.
	auths map[string]string
}

func NewDockerExecutor(logger Logger, credentials ...Credential) (*DockerExecutor, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("Create Docker client: %w", err)
	}

	return NewDockerExecutorWithClient(cli, logger, credentials...), nil
}

func NewDockerExecutorWithClient(cli *client.Client, logger Logger, credentials ...Credential) *DockerExecutor {
	e := &DockerExecutor{
		cli:         cli,
		logger:      logger,
		credentials: credentials,
		auths:       map[string]string{},
	}

	for _, credential := range credentials {
		e.auths[credential.Host] = encodeAuthConfig(registry.AuthConfig{
			Username:      credential.Username,
			Password:      credential.Password,
			ServerAddress: credential.Host,
		})
	}

	return e
}

// Login verifies each configured credential against the Docker daemon
// before any transfer starts, so that bad credentials fail the run as a
// whole instead of failing midway through a plan.
func (e *DockerExecutor) Login(ctx context.Context) error {
	for _, credential := range e.credentials {
		e.logger.InfoF("Logging in to %s as %s", credential.Host, credential.Username)

		if _, err := e.cli.RegistryLogin(ctx, registry.AuthConfig{
			Username:      credential.Username,
			Password:      credential.Password,
			ServerAddress: credential.Host,
		}); err != nil {
			return fmt.Errorf("%s: %w: %w", credential.Host, ErrAuthenticationFailed, err)
		}
	}

	return nil
}

// Execute runs every step of the plan in order and stops at the first
// failure. A partial transfer leaves the pulled tags on the daemon for
// the next run to reuse.
func (e *DockerExecutor) Execute(ctx context.Context, plan reconcile.ActionPlan) error {
	for _, step := range plan.Steps {
		e.logger.InfoLn(step.Command())

		if err := e.run(ctx, step); err != nil {
			return fmt.Errorf("%s: %w", step.Command(), err)
		}
	}

	return nil
}

// ExecuteAll transfers every image the report marks as missing on the
// target. A failed transfer is logged and does not block the remaining
// ones; all failures are combined into the returned error.
func (e *DockerExecutor) ExecuteAll(ctx context.Context, report *reconcile.Report) error {
	missing := report.Missing()
	if len(missing) == 0 {
		e.logger.InfoLn("Nothing to transfer, the target registry holds every source image.")
		return nil
	}

	var errs *multierror.Error
	for _, record := range missing {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := e.logger.Process(fmt.Sprintf("Transfer %s", record.Identity), func() error {
			return e.Execute(ctx, record.Plan)
		})
		if err != nil {
			e.logger.WarnF("Transfer of %s failed: %v", record.Identity, err)
			errs = multierror.Append(errs, fmt.Errorf("Transfer %s: %w", record.Identity, err))
		}
	}

	return errs.ErrorOrNil()
}

func (e *DockerExecutor) run(ctx context.Context, step reconcile.ActionStep) error {
	switch step.Kind {
	case reconcile.StepPull:
		resp, err := e.cli.ImagePull(ctx, step.Ref, image.PullOptions{RegistryAuth: e.authFor(step.Ref)})
		if err != nil {
			return err
		}
		return drainDockerStream(resp)
	case reconcile.StepRetag:
		return e.cli.ImageTag(ctx, step.Ref, step.NewRef)
	case reconcile.StepPush:
		resp, err := e.cli.ImagePush(ctx, step.Ref, image.PushOptions{RegistryAuth: e.authFor(step.Ref)})
		if err != nil {
			return err
		}
		return drainDockerStream(resp)
	case reconcile.StepCleanupSource, reconcile.StepCleanupTarget:
		_, err := e.cli.ImageRemove(ctx, step.Ref, image.RemoveOptions{})
		return err
	default:
		return fmt.Errorf("unexpected step kind %d", step.Kind)
	}
}

// authFor resolves the encoded auth payload for the registry host of the
// reference. The Engine API requires the X-Registry-Auth header on push
// even for anonymous access, so unknown hosts get an empty config.
func (e *DockerExecutor) authFor(ref string) string {
	host, _, found := strings.Cut(ref, "/")
	if found {
		if auth, ok := e.auths[host]; ok {
			return auth
		}
	}

	return base64.StdEncoding.EncodeToString([]byte("{}"))
}

// drainDockerStream consumes the progress stream of a pull or push until
// EOF. The daemon reports operation failures inside the stream rather
// than through the response status, so each message must be checked.
func drainDockerStream(stream io.ReadCloser) error {
	defer stream.Close()

	decoder := json.NewDecoder(stream)
	for {
		var message jsonmessage.JSONMessage
		if err := decoder.Decode(&message); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("Decode Docker daemon response: %w", err)
		}

		if message.Error != nil {
			return message.Error
		}
	}
}

func encodeAuthConfig(authConfig registry.AuthConfig) string {
	buf, err := json.Marshal(authConfig)
	if err != nil {
		panic(err)
	}

	return base64.StdEncoding.EncodeToString(buf)
}
