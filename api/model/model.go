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
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jerry-enebeli/budget/model"
)

// EmptyRequest is sent to endpoints that take no parameters.
type EmptyRequest struct{}

// EmptyResponse is the body of endpoints that answer with nothing but a status.
type EmptyResponse struct{}

func currencyValidation(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, ok := model.ValidateCurrency(s); !ok {
		return fmt.Errorf("unsupported currency %q", s)
	}
	return nil
}

func validateDateFormat(format string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if _, err := time.Parse(format, s); err != nil {
			return errors.New("please format the date as 'YYYY-MM-DD' (e.g., 2024-04-22)")
		}
		return nil
	}
}

func parseTimestamp(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", field, value, err)
	}
	return t, nil
}
