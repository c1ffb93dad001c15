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

// DateLayout is the calendar date format the backend accepts.
const DateLayout = "2006-01-02"

// TransferTransactionArgs requests a transfer between two accounts. The amounts are given
// separately because the accounts may hold different currencies.
type TransferTransactionArgs struct {
	FromAccountID string
	FromAmount    decimal.Decimal

	ToAccountID string
	ToAmount    decimal.Decimal
}

// FormatDate returns the UTC calendar date of t.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
