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

package sync

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/flant/regsync/pkg/libsync/registry"
)

func parseAndValidateParameters(_ *cobra.Command, _ []string) error {
	var err error
	if err = validateRegistryEndpoints(); err != nil {
		return err
	}
	if err = validateParallelismFlag(); err != nil {
		return err
	}
	if err = promptMissingPasswords(); err != nil {
		return err
	}

	return nil
}

func validateRegistryEndpoints() error {
	if SourceRegistry == "" {
		return errors.New("--source is required. Specify the registry to reconcile images from.")
	}
	if TargetRegistry == "" {
		return errors.New("--target is required. Specify the registry to reconcile images into.")
	}

	if _, _, err := registry.ParseEndpoint(SourceRegistry); err != nil {
		return fmt.Errorf("Validate --source: %w", err)
	}
	if _, _, err := registry.ParseEndpoint(TargetRegistry); err != nil {
		return fmt.Errorf("Validate --target: %w", err)
	}

	return nil
}

func validateParallelismFlag() error {
	if Parallelism < 1 {
		return errors.New("Parallelism cannot be less than one")
	}

	return nil
}

func promptMissingPasswords() error {
	var err error
	if SourceRegistryUser != "" && SourceRegistryPassword == "" {
		SourceRegistryPassword, err = promptPassword(fmt.Sprintf("Password for %s at %s: ", SourceRegistryUser, SourceRegistry))
		if err != nil {
			return fmt.Errorf("Read source registry password: %w", err)
		}
	}
	if TargetRegistryUser != "" && TargetRegistryPassword == "" {
		TargetRegistryPassword, err = promptPassword(fmt.Sprintf("Password for %s at %s: ", TargetRegistryUser, TargetRegistry))
		if err != nil {
			return fmt.Errorf("Read target registry password: %w", err)
		}
	}

	return nil
}

// promptPassword reads a password from stdin without echo, falling back to
// plain buffered reading when stdin is not a terminal.
var promptPassword = func(prompt string) (string, error) {
	fmt.Print(prompt)

	passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		reader := bufio.NewReader(os.Stdin)
		line, readErr := reader.ReadString('\n')
		if readErr != nil {
			return "", readErr
		}
		passwordBytes = []byte(strings.TrimRight(line, "\r\n"))
	}
	fmt.Println()

	return string(passwordBytes), nil
}
