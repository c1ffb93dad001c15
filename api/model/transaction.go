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
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jerry-enebeli/budget/model"
)

// CreateTransferRequest is the body of /api/transactions/create/transfer. Amounts travel as
// strings so that no floating point conversion happens on either side.
type CreateTransferRequest struct {
	Date          string `json:"date"`
	FromAccountID string `json:"from_account_id"`
	FromAmount    string `json:"from_amount"`
	ToAccountID   string `json:"to_account_id"`
	ToAmount      string `json:"to_amount"`
}

// NewCreateTransferRequest stamps args with the given calendar date.
func NewCreateTransferRequest(date string, args model.TransferTransactionArgs) CreateTransferRequest {
	return CreateTransferRequest{
		Date:          date,
		FromAccountID: args.FromAccountID,
		FromAmount:    args.FromAmount.String(),
		ToAccountID:   args.ToAccountID,
		ToAmount:      args.ToAmount.String(),
	}
}

func (t *CreateTransferRequest) ValidateCreateTransfer() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.Date, validation.Required, validation.By(validateDateFormat(model.DateLayout))),
		validation.Field(&t.FromAccountID, validation.Required),
		validation.Field(&t.FromAmount, validation.Required),
		validation.Field(&t.ToAccountID, validation.Required, validation.By(func(value interface{}) error {
			if value == t.FromAccountID {
				return errors.New("must differ from the source account")
			}
			return nil
		})),
		validation.Field(&t.ToAmount, validation.Required),
	)
}
