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
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jerry-enebeli/budget/model"
)

// AccountRecord is an account as the backend serializes it.
type AccountRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Balance   string `json:"balance"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type GetAccountsResponse struct {
	Accounts []AccountRecord `json:"accounts"`
}

type CreateAccountRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

type CloseAccountRequest struct {
	ID string `json:"id"`
}

// ToAccount converts the wire record to the domain shape. The balance is copied verbatim
// and unknown statuses become closed.
func (r AccountRecord) ToAccount() (model.AccountWithBalance, error) {
	createdAt, err := parseTimestamp("created_at", r.CreatedAt)
	if err != nil {
		return model.AccountWithBalance{}, err
	}
	updatedAt, err := parseTimestamp("updated_at", r.UpdatedAt)
	if err != nil {
		return model.AccountWithBalance{}, err
	}

	return model.AccountWithBalance{
		Account: model.Account{
			ID:        r.ID,
			Name:      r.Name,
			Currency:  model.Currency(r.Currency),
			Status:    model.ParseAccountStatus(r.Status),
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
		Balance: r.Balance,
	}, nil
}

func (a *CreateAccountRequest) ValidateCreateAccount() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Name, validation.Required),
		validation.Field(&a.Currency, validation.Required, validation.By(currencyValidation)),
	)
}

func (c *CloseAccountRequest) ValidateCloseAccount() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ID, validation.Required),
	)
}
