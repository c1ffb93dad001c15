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
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/jerry-enebeli/budget/api"
	"github.com/jerry-enebeli/budget/config"
	"github.com/jerry-enebeli/budget/internal/cache"
	"github.com/jerry-enebeli/budget/internal/confirm"
	"github.com/jerry-enebeli/budget/internal/notification"
	redis_db "github.com/jerry-enebeli/budget/internal/redis-db"
	"github.com/jerry-enebeli/budget/internal/request"
	"github.com/jerry-enebeli/budget/internal/store"
)

// snapshotKeyPrefix namespaces cached account lists by backend URL.
const snapshotKeyPrefix = "budget:accounts:"

// Budget wires the backend clients, the account store and the services on top of them.
type Budget struct {
	Api          *api.Api
	Store        *store.AccountStore
	Accounts     *AccountService
	Transactions *TransactionService

	redis *redis_db.Redis
}

type options struct {
	httpClient     *http.Client
	notifier       notification.Notifier
	confirmer      confirm.Confirmer
	out            io.Writer
	snapshot       cache.Cache
	initialRefresh bool
}

// Option overrides one of the collaborators NewBudget builds from the configuration.
type Option func(*options)

func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

func WithNotifier(n notification.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

func WithConfirmer(c confirm.Confirmer) Option {
	return func(o *options) { o.confirmer = c }
}

// WithOutput sets where console notifications are printed. Defaults to stderr.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithCache uses c for account snapshots instead of connecting to the configured Redis.
func WithCache(c cache.Cache) Option {
	return func(o *options) { o.snapshot = c }
}

// WithoutInitialRefresh skips the account refresh normally started on construction.
func WithoutInitialRefresh() Option {
	return func(o *options) { o.initialRefresh = false }
}

// NewBudget builds every component once from cnf. When Redis is configured but
// unreachable, snapshots are disabled and a warning is logged.
func NewBudget(ctx context.Context, cnf *config.Configuration, opts ...Option) (*Budget, error) {
	if cnf == nil {
		return nil, errors.New("configuration is required")
	}

	o := options{out: os.Stderr, initialRefresh: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.notifier == nil {
		o.notifier = notification.FromConfig(cnf, o.out)
	}
	if o.confirmer == nil {
		o.confirmer = confirm.Terminal()
	}

	b := &Budget{Store: store.NewAccountStore()}
	b.Api = api.NewAPI(request.NewClient(cnf.Backend.ApiUrl, transportOptions(cnf, o.httpClient)...))

	var serviceOpts []AccountServiceOption
	snapshot := o.snapshot
	if snapshot == nil && cnf.Redis.Dns != "" {
		r, err := redis_db.NewRedisClient(ctx, redis_db.SplitAddresses(cnf.Redis.Dns), cnf.Redis.SkipTLSVerify)
		if err != nil {
			logrus.WithError(err).Warn("redis unavailable, account snapshots disabled")
		} else {
			b.redis = r
			snapshot = cache.NewRedisCache(r.Client())
		}
	}
	if snapshot != nil {
		serviceOpts = append(serviceOpts, WithSnapshotCache(snapshot, snapshotKeyPrefix+cnf.Backend.ApiUrl, cnf.Redis.SnapshotTTL()))
	}

	if o.initialRefresh {
		b.Accounts = NewAccountService(b.Api.Accounts, b.Store, o.notifier, o.confirmer, serviceOpts...)
	} else {
		b.Accounts = NewIdleAccountService(b.Api.Accounts, b.Store, o.notifier, o.confirmer, serviceOpts...)
	}
	b.Transactions = NewTransactionService(b.Api.Transactions, o.notifier)

	return b, nil
}

func transportOptions(cnf *config.Configuration, hc *http.Client) []request.Option {
	var opts []request.Option
	if hc != nil {
		opts = append(opts, request.WithHTTPClient(hc))
	}
	if timeout := cnf.Backend.Timeout(); timeout > 0 {
		opts = append(opts, request.WithTimeout(timeout))
	}
	if cnf.Backend.Username != "" {
		opts = append(opts, request.WithBasicAuth(cnf.Backend.Username, cnf.Backend.Password))
	}
	if len(cnf.Backend.Headers) > 0 {
		opts = append(opts, request.WithHeaders(cnf.Backend.Headers))
	}
	return opts
}

// Close releases the Redis connection, if one was opened.
func (b *Budget) Close() error {
	if b.redis == nil {
		return nil
	}
	return b.redis.Close()
}
