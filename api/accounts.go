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
	"context"

	"github.com/jerry-enebeli/budget/api/model"
	"github.com/jerry-enebeli/budget/internal/apierror"
	"github.com/jerry-enebeli/budget/internal/request"
	domain "github.com/jerry-enebeli/budget/model"
)

// Accounts translates account operations into backend requests.
type Accounts struct {
	client *request.Client
}

func NewAccounts(client *request.Client) *Accounts {
	return &Accounts{client: client}
}

// List fetches every account, open and closed, with its current balance.
func (a *Accounts) List(ctx context.Context) ([]domain.AccountWithBalance, error) {
	resp, err := request.Post[model.GetAccountsResponse](ctx, a.client, GetAccountsPath, model.EmptyRequest{})
	if err != nil {
		return nil, err
	}

	res := make([]domain.AccountWithBalance, 0, len(resp.Accounts))
	for _, record := range resp.Accounts {
		account, err := record.ToAccount()
		if err != nil {
			return nil, apierror.Newf("couldn't parse account %q: %v", record.ID, err)
		}
		res = append(res, account)
	}
	return res, nil
}

// Create opens a new account with a zero balance.
func (a *Accounts) Create(ctx context.Context, name string, currency domain.Currency) error {
	newAccount := model.CreateAccountRequest{Name: name, Currency: string(currency)}
	if err := newAccount.ValidateCreateAccount(); err != nil {
		return apierror.From(err)
	}
	normalized, _ := domain.ValidateCurrency(newAccount.Currency)
	newAccount.Currency = string(normalized)

	_, err := request.Post[model.EmptyResponse](ctx, a.client, CreateAccountPath, newAccount)
	return err
}

// Close moves an account to the closed state. Accounts are never deleted.
func (a *Accounts) Close(ctx context.Context, id string) error {
	req := model.CloseAccountRequest{ID: id}
	if err := req.ValidateCloseAccount(); err != nil {
		return apierror.From(err)
	}

	_, err := request.Post[model.EmptyResponse](ctx, a.client, CloseAccountPath, req)
	return err
}

// Edit is not supported by the backend yet and always fails.
func (a *Accounts) Edit(_ context.Context, _ string, _ string) error {
	return apierror.ErrNotImplemented
}
