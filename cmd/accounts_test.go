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
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerry-enebeli/budget/model"
)

func balanceAccount(id string, currency model.Currency, balance string) model.AccountWithBalance {
	created := time.Date(2024, 4, 22, 15, 28, 3, 0, time.UTC)
	return model.AccountWithBalance{
		Account: model.Account{
			ID:        id,
			Name:      "account-" + id,
			Currency:  currency,
			Status:    model.AccountStatusOpen,
			CreatedAt: created,
			UpdatedAt: created,
		},
		Balance: balance,
	}
}

func TestPrintAccounts_KeepsBackendBalance(t *testing.T) {
	accounts := []model.AccountWithBalance{
		balanceAccount("usd", "USD", "0.125"),
		balanceAccount("jpy", "JPY", "10.5"),
		balanceAccount("eth", "ETH", "1.5"),
		balanceAccount("xyz", "XYZ", "1,000.00"),
	}

	var out bytes.Buffer
	require.NoError(t, printAccounts(&out, accounts))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"ID", "NAME", "BALANCE", "CURRENCY", "STATUS", "CREATED"}, strings.Fields(lines[0]))

	want := map[string]string{"usd": "0.125", "jpy": "10.5", "eth": "1.5", "xyz": "1,000.00"}
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		require.Len(t, fields, 6, line)
		assert.Equal(t, want[fields[0]], fields[2], line)
	}
}

func TestPrintAccounts_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printAccounts(&out, nil))
	assert.Equal(t, "no accounts\n", out.String())
}
