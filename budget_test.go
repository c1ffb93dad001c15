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
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jarcoal/httpmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerry-enebeli/budget/api"
	"github.com/jerry-enebeli/budget/config"
	"github.com/jerry-enebeli/budget/internal/confirm"
	"github.com/jerry-enebeli/budget/internal/request"
	"github.com/jerry-enebeli/budget/model"
)

const testBaseURL = "http://budget.test"

const accountsBody = `{"accounts": [
	{"id": "a1", "name": "Checking", "balance": "100.00", "currency": "USD", "status": "open",
	 "created_at": "2024-04-22T15:28:03Z", "updated_at": "2024-04-22T15:28:03Z"},
	{"id": "a2", "name": "Old savings", "balance": "0", "currency": "EUR", "status": "closed",
	 "created_at": "2023-01-01T00:00:00Z", "updated_at": "2024-01-01T00:00:00Z"}
]}`

func testConfig() *config.Configuration {
	return &config.Configuration{
		ProjectName: "Budget Manager",
		Backend: config.BackendConfig{
			ApiUrl:   testBaseURL,
			Username: "admin",
			Password: "secret",
			Headers:  map[string]string{"X-Client": "cli"},
		},
	}
}

func waitInitialized(t *testing.T, svc *AccountService) {
	t.Helper()
	select {
	case <-svc.Initialized():
	case <-time.After(2 * time.Second):
		t.Fatal("initial refresh did not finish")
	}
}

func TestNewBudget(t *testing.T) {
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder("POST", testBaseURL+api.GetAccountsPath, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "Basic "+request.BasicAuth("admin", "secret"), req.Header.Get("Authorization"))
		assert.Equal(t, "cli", req.Header.Get("X-Client"))
		return httpmock.NewStringResponse(http.StatusOK, accountsBody), nil
	})

	rec := &recordingNotifier{}
	b, err := NewBudget(context.Background(), testConfig(),
		WithHTTPClient(&http.Client{Transport: mt}),
		WithNotifier(rec),
		WithConfirmer(confirm.Always(true)),
	)
	require.NoError(t, err)
	defer b.Close()

	waitInitialized(t, b.Accounts)
	assert.Equal(t, []string{"a1"}, ids(b.Store.Open.Get()))
	assert.Equal(t, []string{"a2"}, ids(b.Store.Closed.Get()))
	assert.Empty(t, rec.Messages())
	assert.Equal(t, 1, mt.GetTotalCallCount())
}

func TestNewBudget_TransferDoesNotRefresh(t *testing.T) {
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder("POST", testBaseURL+api.GetAccountsPath, httpmock.NewStringResponder(http.StatusOK, accountsBody))

	var body map[string]string
	mt.RegisterResponder("POST", testBaseURL+api.CreateTransferPath, func(req *http.Request) (*http.Response, error) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&body))
		return httpmock.NewStringResponse(http.StatusOK, "{}"), nil
	})

	b, err := NewBudget(context.Background(), testConfig(),
		WithHTTPClient(&http.Client{Transport: mt}),
		WithNotifier(&recordingNotifier{}),
		WithConfirmer(confirm.Always(true)),
		WithoutInitialRefresh(),
	)
	require.NoError(t, err)

	ok := b.Transactions.CreateTransferTransaction(context.Background(), model.TransferTransactionArgs{
		FromAccountID: "a1",
		FromAmount:    decimal.NewFromInt(10),
		ToAccountID:   "a2",
		ToAmount:      decimal.NewFromInt(9),
	})
	require.True(t, ok)

	assert.Equal(t, "10", body["from_amount"])
	assert.Equal(t, "9", body["to_amount"])
	assert.Equal(t, 0, mt.GetCallCountInfo()["POST "+testBaseURL+api.GetAccountsPath])
	assert.Equal(t, 1, mt.GetTotalCallCount())
}

func TestNewBudget_FailureIsNotified(t *testing.T) {
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder("POST", testBaseURL+api.CreateAccountPath,
		httpmock.NewStringResponder(http.StatusConflict, "account already exists"))

	rec := &recordingNotifier{}
	b, err := NewBudget(context.Background(), testConfig(),
		WithHTTPClient(&http.Client{Transport: mt}),
		WithNotifier(rec),
		WithoutInitialRefresh(),
	)
	require.NoError(t, err)

	assert.False(t, b.Accounts.CreateAccount(context.Background(), "Checking", "USD"))
	assert.Equal(t, []string{`couldn't create account: got unexpected status code 409, body: "account already exists"`}, rec.Messages())
}

func TestNewBudget_RedisSnapshots(t *testing.T) {
	mr := miniredis.RunT(t)
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder("POST", testBaseURL+api.GetAccountsPath, httpmock.NewStringResponder(http.StatusOK, accountsBody))

	cnf := testConfig()
	cnf.Redis.Dns = mr.Addr()

	b, err := NewBudget(context.Background(), cnf,
		WithHTTPClient(&http.Client{Transport: mt}),
		WithNotifier(&recordingNotifier{}),
		WithConfirmer(confirm.Always(true)),
	)
	require.NoError(t, err)
	defer b.Close()

	waitInitialized(t, b.Accounts)
	assert.True(t, mr.Exists(snapshotKeyPrefix+testBaseURL))

	offline, err := NewBudget(context.Background(), cnf,
		WithHTTPClient(&http.Client{Transport: httpmock.NewMockTransport()}),
		WithNotifier(&recordingNotifier{}),
		WithoutInitialRefresh(),
	)
	require.NoError(t, err)
	defer offline.Close()

	loaded, err := offline.Accounts.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, []string{"a1"}, ids(offline.Store.Open.Get()))
}

func TestNewBudget_UnreachableRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cnf := testConfig()
	cnf.Redis.Dns = addr

	b, err := NewBudget(context.Background(), cnf,
		WithHTTPClient(&http.Client{Transport: httpmock.NewMockTransport()}),
		WithNotifier(&recordingNotifier{}),
		WithoutInitialRefresh(),
	)
	require.NoError(t, err)
	assert.NoError(t, b.Close())

	loaded, err := b.Accounts.LoadSnapshot(context.Background())
	assert.NoError(t, err)
	assert.False(t, loaded)
}

func TestNewBudget_NilConfig(t *testing.T) {
	_, err := NewBudget(context.Background(), nil)
	assert.EqualError(t, err, "configuration is required")
}
