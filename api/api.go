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

package api

import (
	"github.com/jerry-enebeli/budget/internal/request"
)

// Backend endpoints. Every endpoint is a POST with a JSON body.
const (
	GetAccountsPath    = "/api/accounts/get"
	CreateAccountPath  = "/api/accounts/create"
	CloseAccountPath   = "/api/accounts/close"
	CreateTransferPath = "/api/transactions/create/transfer"
)

// Api groups the resource clients of the budget backend.
type Api struct {
	Accounts     *Accounts
	Transactions *Transactions
}

// NewAPI creates the resource clients on top of a shared transport.
func NewAPI(client *request.Client) *Api {
	return &Api{
		Accounts:     NewAccounts(client),
		Transactions: NewTransactions(client),
	}
}
