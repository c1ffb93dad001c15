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
	"time"

	"github.com/jerry-enebeli/budget/api/model"
	"github.com/jerry-enebeli/budget/internal/apierror"
	"github.com/jerry-enebeli/budget/internal/request"
	domain "github.com/jerry-enebeli/budget/model"
)

// Transactions translates transaction operations into backend requests.
type Transactions struct {
	client *request.Client
	now    func() time.Time
}

func NewTransactions(client *request.Client) *Transactions {
	return &Transactions{client: client, now: time.Now}
}

// WithClock replaces the clock used to date new transactions.
func (t *Transactions) WithClock(now func() time.Time) *Transactions {
	t.now = now
	return t
}

// CreateTransfer records a transfer dated today (UTC).
func (t *Transactions) CreateTransfer(ctx context.Context, args domain.TransferTransactionArgs) error {
	req := model.NewCreateTransferRequest(domain.FormatDate(t.now()), args)
	if err := req.ValidateCreateTransfer(); err != nil {
		return apierror.From(err)
	}

	_, err := request.Post[model.EmptyResponse](ctx, t.client, CreateTransferPath, req)
	return err
}
