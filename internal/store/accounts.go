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

package store

import (
	"github.com/jerry-enebeli/budget/model"
)

// AccountStore keeps the latest known accounts split by status. Every account known to the
// store is in exactly one of the two containers.
type AccountStore struct {
	Open   *Value[[]model.AccountWithBalance]
	Closed *Value[[]model.AccountWithBalance]
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		Open:   New([]model.AccountWithBalance{}),
		Closed: New([]model.AccountWithBalance{}),
	}
}

// Replace swaps both containers. Open is replaced first, so a reader looking at both
// between the two calls may briefly see an account in neither or both of them.
func (s *AccountStore) Replace(open, closed []model.AccountWithBalance) {
	s.Open.Set(open)
	s.Closed.Set(closed)
}

// All returns the content of both containers, open accounts first.
func (s *AccountStore) All() []model.AccountWithBalance {
	open, closed := s.Open.Get(), s.Closed.Get()
	res := make([]model.AccountWithBalance, 0, len(open)+len(closed))
	res = append(res, open...)
	return append(res, closed...)
}
