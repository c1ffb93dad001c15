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

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jerry-enebeli/budget"
	"github.com/jerry-enebeli/budget/model"
)

func transferCommand(app *budgetInstance) *cobra.Command {
	var from, to, amount, toAmount string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move money from one account to another",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromAmount, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %v", amount, err)
			}
			received := fromAmount
			if toAmount != "" {
				if received, err = decimal.NewFromString(toAmount); err != nil {
					return fmt.Errorf("invalid to-amount %q: %v", toAmount, err)
				}
			}
			if !fromAmount.IsPositive() || !received.IsPositive() {
				return fmt.Errorf("amounts must be positive")
			}

			b, err := app.open(cmd, budget.WithoutInitialRefresh())
			if err != nil {
				return err
			}
			defer b.Close()

			ok := b.Transactions.CreateTransferTransaction(cmd.Context(), model.TransferTransactionArgs{
				FromAccountID: from,
				FromAmount:    fromAmount,
				ToAccountID:   to,
				ToAmount:      received,
			})
			if !ok {
				return errReported
			}

			// Balances changed on the backend; the store only learns about it on refresh.
			if !b.Accounts.RefreshStore(cmd.Context()) {
				return errReported
			}
			return printAccounts(cmd.OutOrStdout(), b.Store.Open.Get())
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "id of the account to take money from")
	cmd.Flags().StringVar(&to, "to", "", "id of the account to put money into")
	cmd.Flags().StringVar(&amount, "amount", "", "amount taken from the source account")
	cmd.Flags().StringVar(&toAmount, "to-amount", "", "amount received by the destination account, when the currencies differ")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
