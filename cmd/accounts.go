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
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jerry-enebeli/budget"
	"github.com/jerry-enebeli/budget/internal/confirm"
	"github.com/jerry-enebeli/budget/model"
)

func accountCommands(app *budgetInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}

	cmd.AddCommand(listAccountsCommand(app))
	cmd.AddCommand(createAccountCommand(app))
	cmd.AddCommand(closeAccountCommand(app))
	cmd.AddCommand(editAccountCommand(app))

	return cmd
}

func listAccountsCommand(app *budgetInstance) *cobra.Command {
	var closed, cached bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open accounts, or closed ones with --closed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.open(cmd, budget.WithoutInitialRefresh())
			if err != nil {
				return err
			}
			defer b.Close()

			if cached {
				loaded, err := b.Accounts.LoadSnapshot(cmd.Context())
				if err != nil {
					return fmt.Errorf("error reading cached accounts: %v", err)
				}
				if !loaded {
					return fmt.Errorf("no cached accounts, run without --cached first")
				}
			} else if !b.Accounts.RefreshStore(cmd.Context()) {
				return errReported
			}

			accounts := b.Store.Open.Get()
			if closed {
				accounts = b.Store.Closed.Get()
			}
			return printAccounts(cmd.OutOrStdout(), accounts)
		},
	}
	cmd.Flags().BoolVar(&closed, "closed", false, "list closed accounts instead of open ones")
	cmd.Flags().BoolVar(&cached, "cached", false, "read the last snapshot from Redis instead of the backend")

	return cmd
}

func createAccountCommand(app *budgetInstance) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> <currency>",
		Short: "Open a new account with a zero balance",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.open(cmd, budget.WithoutInitialRefresh())
			if err != nil {
				return err
			}
			defer b.Close()

			if !b.Accounts.CreateAccount(cmd.Context(), args[0], model.Currency(args[1])) {
				return errReported
			}
			return printAccounts(cmd.OutOrStdout(), b.Store.Open.Get())
		},
	}
}

func closeAccountCommand(app *budgetInstance) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "close <id>",
		Short: "Close an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []budget.Option{budget.WithoutInitialRefresh()}
			if yes {
				opts = append(opts, budget.WithConfirmer(confirm.Always(true)))
			}
			b, err := app.open(cmd, opts...)
			if err != nil {
				return err
			}
			defer b.Close()

			if !b.Accounts.RefreshStore(cmd.Context()) {
				return errReported
			}

			account, ok := findAccount(b.Store.Open.Get(), args[0])
			if !ok {
				return fmt.Errorf("no open account with id %q", args[0])
			}

			if !b.Accounts.CloseAccount(cmd.Context(), account.Account) {
				return errReported
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "account %q closed\n", account.Name)
			return err
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "close without asking for confirmation")

	return cmd
}

func editAccountCommand(app *budgetInstance) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <new-name>",
		Short: "Rename an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := app.open(cmd, budget.WithoutInitialRefresh())
			if err != nil {
				return err
			}
			defer b.Close()

			b.Accounts.EditAccount(cmd.Context(), args[0], args[1])
			return nil
		},
	}
}

func findAccount(accounts []model.AccountWithBalance, id string) (model.AccountWithBalance, bool) {
	for _, a := range accounts {
		if a.ID == id {
			return a, true
		}
	}
	return model.AccountWithBalance{}, false
}

// printAccounts writes accounts as a table. Balances are printed exactly as the backend formatted them.
func printAccounts(out io.Writer, accounts []model.AccountWithBalance) error {
	if len(accounts) == 0 {
		_, err := fmt.Fprintln(out, "no accounts")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBALANCE\tCURRENCY\tSTATUS\tCREATED")
	for _, a := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Name, a.Balance, a.Currency, a.Status, model.FormatDate(a.CreatedAt))
	}
	return w.Flush()
}
