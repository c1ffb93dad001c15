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
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jerry-enebeli/budget/internal/apierror"
	"github.com/jerry-enebeli/budget/internal/cache"
	"github.com/jerry-enebeli/budget/internal/confirm"
	"github.com/jerry-enebeli/budget/internal/notification"
	"github.com/jerry-enebeli/budget/internal/store"
	"github.com/jerry-enebeli/budget/model"
)

var accountTracer = otel.Tracer("budget.accounts")

const (
	msgCreateAccountFailed  = "couldn't create account: "
	msgCloseAccountFailed   = "couldn't close account: "
	msgRefreshFailed        = "couldn't refresh accounts: "
	msgEditNotImplemented   = "account editing is not implemented yet"
	msgEditAccountFailed    = "couldn't edit account: "
	closeAccountQuestionFmt = "Do you really want to close account %q"
)

// AccountsClient is the accounts resource of the backend API.
type AccountsClient interface {
	List(ctx context.Context) ([]model.AccountWithBalance, error)
	Create(ctx context.Context, name string, currency model.Currency) error
	Close(ctx context.Context, id string) error
	Edit(ctx context.Context, id string, newName string) error
}

// AccountService keeps the account store in sync with the backend and reports
// failures through its notifier instead of returning them.
type AccountService struct {
	client    AccountsClient
	store     *store.AccountStore
	notifier  notification.Notifier
	confirmer confirm.Confirmer

	snapshot    cache.Cache
	snapshotKey string
	snapshotTTL time.Duration

	// issued is the last refresh token handed out; applied is the token of the newest
	// refresh accepted for the store. A result older than applied is dropped.
	issued  atomic.Uint64
	mu      sync.Mutex
	applied uint64
	// pending is the newest accepted result not yet written to the store. Only one caller
	// at a time writes, and it does so without holding mu so subscribers may call back
	// into the service.
	pending  *pendingReplace
	applying bool

	initialized chan struct{}
}

// AccountServiceOption configures an AccountService.
type AccountServiceOption func(*AccountService)

// WithSnapshotCache mirrors every applied refresh into c under key so LoadSnapshot can
// prime the store without reaching the backend.
func WithSnapshotCache(c cache.Cache, key string, ttl time.Duration) AccountServiceOption {
	return func(s *AccountService) {
		s.snapshot = c
		s.snapshotKey = key
		s.snapshotTTL = ttl
	}
}

// NewAccountService creates the service and starts the initial refresh in the background.
// Initialized is closed once that refresh has finished, successfully or not.
func NewAccountService(client AccountsClient, accounts *store.AccountStore, notifier notification.Notifier, confirmer confirm.Confirmer, opts ...AccountServiceOption) *AccountService {
	s := newAccountService(client, accounts, notifier, confirmer, opts...)
	go func() {
		defer close(s.initialized)
		s.RefreshStore(context.Background())
	}()
	return s
}

// NewIdleAccountService creates the service without the initial refresh. The store keeps
// its empty lists until RefreshStore or LoadSnapshot is called.
func NewIdleAccountService(client AccountsClient, accounts *store.AccountStore, notifier notification.Notifier, confirmer confirm.Confirmer, opts ...AccountServiceOption) *AccountService {
	s := newAccountService(client, accounts, notifier, confirmer, opts...)
	close(s.initialized)
	return s
}

func newAccountService(client AccountsClient, accounts *store.AccountStore, notifier notification.Notifier, confirmer confirm.Confirmer, opts ...AccountServiceOption) *AccountService {
	s := &AccountService{
		client:      client,
		store:       accounts,
		notifier:    notifier,
		confirmer:   confirmer,
		initialized: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialized is closed when the refresh started on construction has completed.
func (s *AccountService) Initialized() <-chan struct{} {
	return s.initialized
}

// OpenAccounts calls fn with the current open accounts and again after every refresh.
func (s *AccountService) OpenAccounts(fn func([]model.AccountWithBalance)) (unsubscribe func()) {
	return s.store.Open.Subscribe(fn)
}

// ClosedAccounts calls fn with the current closed accounts and again after every refresh.
func (s *AccountService) ClosedAccounts(fn func([]model.AccountWithBalance)) (unsubscribe func()) {
	return s.store.Closed.Subscribe(fn)
}

// CreateAccount creates an account and refreshes the store. It reports whether the
// account was created.
func (s *AccountService) CreateAccount(ctx context.Context, name string, currency model.Currency) bool {
	ctx, span := accountTracer.Start(ctx, "CreateAccount", trace.WithAttributes(
		attribute.String("account.name", name),
		attribute.String("account.currency", string(currency)),
	))
	defer span.End()

	if err := s.client.Create(ctx, name, currency); err != nil {
		span.RecordError(err)
		s.notifier.Notify(msgCreateAccountFailed + apierror.Cause(err))
		return false
	}

	span.AddEvent("account created")
	s.RefreshStore(ctx)
	return true
}

// CloseAccount asks the user for confirmation, closes the account and refreshes the store.
// It reports whether the account was closed; a declined confirmation changes nothing.
func (s *AccountService) CloseAccount(ctx context.Context, account model.Account) bool {
	ctx, span := accountTracer.Start(ctx, "CloseAccount", trace.WithAttributes(attribute.String("account.id", account.ID)))
	defer span.End()

	if !s.confirmer.Confirm(fmt.Sprintf(closeAccountQuestionFmt, account.Name)) {
		span.AddEvent("close declined")
		logrus.WithField("account_id", account.ID).Debug("account close declined")
		return false
	}

	if err := s.client.Close(ctx, account.ID); err != nil {
		span.RecordError(err)
		s.notifier.Notify(msgCloseAccountFailed + apierror.Cause(err))
		return false
	}

	span.AddEvent("account closed")
	s.RefreshStore(ctx)
	return true
}

// EditAccount is not supported by the backend yet; it only tells the user so.
func (s *AccountService) EditAccount(ctx context.Context, id string, newName string) {
	err := s.client.Edit(ctx, id, newName)
	switch {
	case err == nil:
		s.RefreshStore(ctx)
	case errors.Is(err, apierror.ErrNotImplemented):
		s.notifier.Notify(msgEditNotImplemented)
	default:
		s.notifier.Notify(msgEditAccountFailed + apierror.Cause(err))
	}
}

// RefreshStore fetches every account and replaces the open and closed lists with it.
// A refresh that completes after a newer one has already been applied is discarded.
// Subscribers run without any service lock held and may call back into the service; a
// refresh started from a subscriber reaches the store once that subscriber returns.
// It reports whether the fetch succeeded.
func (s *AccountService) RefreshStore(ctx context.Context) bool {
	ctx, span := accountTracer.Start(ctx, "RefreshStore")
	defer span.End()

	token := s.issued.Add(1)
	accounts, err := s.client.List(ctx)
	if err != nil {
		span.RecordError(err)
		s.notifier.Notify(msgRefreshFailed + apierror.Cause(err))
		return false
	}

	open, closed := model.PartitionByStatus(accounts)

	s.mu.Lock()
	if token < s.applied {
		applied := s.applied
		s.mu.Unlock()
		span.AddEvent("stale refresh discarded")
		logrus.WithFields(logrus.Fields{"token": token, "applied": applied}).Debug("discarding stale account refresh")
		return true
	}
	s.applied = token
	s.pending = &pendingReplace{open: open, closed: closed, snapshot: accounts}
	s.mu.Unlock()

	span.SetAttributes(attribute.Int("accounts.open", len(open)), attribute.Int("accounts.closed", len(closed)))
	s.applyPending(ctx)
	return true
}

// LoadSnapshot fills the store from the snapshot cache. It reports false when no cache is
// configured, the snapshot is missing, or a live refresh has already been applied.
func (s *AccountService) LoadSnapshot(ctx context.Context) (bool, error) {
	if s.snapshot == nil {
		return false, nil
	}

	var accounts []model.AccountWithBalance
	hit, err := s.snapshot.Get(ctx, s.snapshotKey, &accounts)
	if err != nil || !hit {
		return false, err
	}

	s.mu.Lock()
	if s.applied != 0 {
		s.mu.Unlock()
		return false, nil
	}
	open, closed := model.PartitionByStatus(accounts)
	s.pending = &pendingReplace{open: open, closed: closed}
	s.mu.Unlock()

	s.applyPending(ctx)
	return true, nil
}

type pendingReplace struct {
	open, closed []model.AccountWithBalance
	// snapshot is mirrored to the snapshot cache once the store holds it; nil skips the write.
	snapshot []model.AccountWithBalance
}

// applyPending writes pending results to the store until none are left. When another call
// is already writing, including one further up the stack that is notifying a subscriber,
// it leaves the result to that call and returns.
func (s *AccountService) applyPending(ctx context.Context) {
	s.mu.Lock()
	if s.applying {
		s.mu.Unlock()
		return
	}
	s.applying = true
	s.mu.Unlock()

	finished := false
	defer func() {
		// reached only when a subscriber panicked
		if !finished {
			s.mu.Lock()
			s.applying = false
			s.mu.Unlock()
		}
	}()

	for {
		s.mu.Lock()
		p := s.pending
		s.pending = nil
		if p == nil {
			s.applying = false
			finished = true
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.store.Replace(p.open, p.closed)
		if p.snapshot != nil {
			s.saveSnapshot(ctx, p.snapshot)
		}
	}
}

func (s *AccountService) saveSnapshot(ctx context.Context, accounts []model.AccountWithBalance) {
	if s.snapshot == nil {
		return
	}
	if err := s.snapshot.Set(ctx, s.snapshotKey, accounts, s.snapshotTTL); err != nil {
		logrus.WithError(err).Warn("failed to save accounts snapshot")
	}
}
