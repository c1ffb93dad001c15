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

package budget

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jerry-enebeli/budget/internal/apierror"
	"github.com/jerry-enebeli/budget/internal/notification"
	"github.com/jerry-enebeli/budget/model"
)

var transactionTracer = otel.Tracer("budget.transactions")

const msgCreateTransferFailed = "couldn't create transfer transaction: "

// TransactionsClient is the transactions resource of the backend API.
type TransactionsClient interface {
	CreateTransfer(ctx context.Context, args model.TransferTransactionArgs) error
}

// TransactionService records transactions. It does not refresh the account store, so
// balances shown after a transfer are stale until the next refresh.
type TransactionService struct {
	client   TransactionsClient
	notifier notification.Notifier
}

func NewTransactionService(client TransactionsClient, notifier notification.Notifier) *TransactionService {
	return &TransactionService{client: client, notifier: notifier}
}

// CreateTransferTransaction moves money between two accounts. It reports whether the
// backend accepted the transfer.
func (s *TransactionService) CreateTransferTransaction(ctx context.Context, args model.TransferTransactionArgs) bool {
	ctx, span := transactionTracer.Start(ctx, "CreateTransferTransaction", trace.WithAttributes(
		attribute.String("transfer.from_account_id", args.FromAccountID),
		attribute.String("transfer.to_account_id", args.ToAccountID),
	))
	defer span.End()

	if err := s.client.CreateTransfer(ctx, args); err != nil {
		span.RecordError(err)
		s.notifier.Notify(msgCreateTransferFailed + apierror.Cause(err))
		return false
	}

	span.AddEvent("transfer created")
	return true
}
