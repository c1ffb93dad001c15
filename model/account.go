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

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account. Accounts start open and can only be
// closed; there is no way back.
type AccountStatus string

const (
	AccountStatusOpen   AccountStatus = "open"
	AccountStatusClosed AccountStatus = "closed"
)

// ParseAccountStatus maps a wire status to an AccountStatus. Only "open" is open;
// every other value, including unknown ones, is treated as closed.
func ParseAccountStatus(s string) AccountStatus {
	if s == string(AccountStatusOpen) {
		return AccountStatusOpen
	}
	return AccountStatusClosed
}

type Account struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Currency  Currency      `json:"currency"`
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// IsOpen reports whether the account still accepts transactions.
func (a Account) IsOpen() bool {
	return a.Status == AccountStatusOpen
}

// AccountWithBalance is an account together with its server-computed balance.
// Balance is kept as the exact string the backend sent and is never reformatted.
type AccountWithBalance struct {
	Account
	Balance string `json:"balance"`
}

// BalanceDecimal parses the balance for arithmetic and currency-aware formatting.
func (a AccountWithBalance) BalanceDecimal() (decimal.Decimal, error) {
	return decimal.NewFromString(a.Balance)
}

// PartitionByStatus splits accounts into open and closed ones, keeping the source order
// inside each group. Every account lands in exactly one of the two slices.
func PartitionByStatus(accounts []AccountWithBalance) (open, closed []AccountWithBalance) {
	open = make([]AccountWithBalance, 0, len(accounts))
	closed = make([]AccountWithBalance, 0)
	for _, acc := range accounts {
		if acc.IsOpen() {
			open = append(open, acc)
		} else {
			closed = append(closed, acc)
		}
	}
	return open, closed
}
