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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flant/regsync/internal/sync/cmd/sync"
	"github.com/flant/regsync/internal/version"
)

type RootCommand struct {
	cmd *cobra.Command
}

func NewRootCommand() *RootCommand {
	rootCmd := &RootCommand{}

	rootCmd.cmd = &cobra.Command{
		Use:           "regsync",
		Short:         "regsync reconciles container images between two registries",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.registerCommands()

	return rootCmd
}

func (r *RootCommand) registerCommands() {
	r.cmd.AddCommand(sync.NewCommand())
}

func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

func execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}
