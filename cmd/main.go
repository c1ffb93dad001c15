/*
Copyright 2024 Blnk Finance Authors.

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
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jerry-enebeli/budget"
	"github.com/jerry-enebeli/budget/config"
	"github.com/jerry-enebeli/budget/internal/logging"
	"github.com/jerry-enebeli/budget/internal/traces"
)

// errReported is returned by commands whose failure was already shown to the user.
var errReported = errors.New("operation failed")

// Budget is the command-line client application.
type Budget struct {
	cmd *cobra.Command
}

// budgetInstance carries state shared by every command of one invocation.
type budgetInstance struct {
	configFile string
	cnf        *config.Configuration
	shutdown   traces.ShutdownFunc
	opts       []budget.Option
}

func recoverPanic() {
	if rec := recover(); rec != nil {
		logrus.Error(rec)
		os.Exit(1)
	}
}

// preRun loads the configuration and sets up logging and tracing before any command runs.
func preRun(app *budgetInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := config.InitConfig(app.configFile); err != nil {
			return err
		}

		cnf, err := config.Fetch()
		if err != nil {
			return err
		}

		if err := logging.Setup(cnf.Log, cmd.ErrOrStderr()); err != nil {
			return err
		}

		shutdown, err := traces.SetupOTelSDK(cmd.Context(), cnf.Tracing)
		if err != nil {
			return fmt.Errorf("error setting up tracing: %v", err)
		}

		app.cnf = cnf
		app.shutdown = shutdown
		return nil
	}
}

func postRun(app *budgetInstance) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if app.shutdown == nil {
			return nil
		}
		return app.shutdown(context.Background())
	}
}

// open builds the client for one command. Console notifications go to the command's
// error stream.
func (app *budgetInstance) open(cmd *cobra.Command, opts ...budget.Option) (*budget.Budget, error) {
	opts = append([]budget.Option{budget.WithOutput(cmd.ErrOrStderr())}, append(app.opts, opts...)...)
	b, err := budget.NewBudget(cmd.Context(), app.cnf, opts...)
	if err != nil {
		return nil, fmt.Errorf("error creating budget client: %v", err)
	}
	return b, nil
}

func NewCLI(opts ...budget.Option) *Budget {
	app := &budgetInstance{opts: opts}

	rootCmd := &cobra.Command{
		Use:                "budget",
		Short:              "Manage accounts and transfers of a budget backend",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  preRun(app),
		PersistentPostRunE: postRun(app),
	}
	rootCmd.PersistentFlags().StringVar(&app.configFile, "config", config.DEFAULT_CONFIG_FILE, "Configuration file for the budget client")

	rootCmd.AddCommand(accountCommands(app))
	rootCmd.AddCommand(transferCommand(app))
	rootCmd.AddCommand(watchCommand(app))
	rootCmd.AddCommand(configCommand(app))

	return &Budget{cmd: rootCmd}
}

func (b Budget) executeCLI() {
	if err := b.cmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func main() {
	defer recoverPanic()

	cli := NewCLI()
	cli.executeCLI()
}
