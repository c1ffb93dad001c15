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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jerry-enebeli/budget/model"
)

const defaultWatchInterval = 30 * time.Second

func watchCommand(app *budgetInstance) *cobra.Command {
	var interval time.Duration
	var closed bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep refreshing accounts and print them whenever a refresh completes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			b, err := app.open(cmd)
			if err != nil {
				return err
			}
			defer b.Close()

			select {
			case <-b.Accounts.Initialized():
			case <-ctx.Done():
				return nil
			}

			show := func(accounts []model.AccountWithBalance) {
				if err := printAccounts(cmd.OutOrStdout(), accounts); err != nil {
					logrus.WithError(err).Error("failed to print accounts")
				}
			}
			subscribe := b.Accounts.OpenAccounts
			if closed {
				subscribe = b.Accounts.ClosedAccounts
			}
			defer subscribe(show)()

			err = b.Accounts.Watch(ctx, interval)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().DurationVar(&interval, "interval", defaultWatchInterval, "time between refreshes")
	cmd.Flags().BoolVar(&closed, "closed", false, "watch closed accounts instead of open ones")

	return cmd
}
