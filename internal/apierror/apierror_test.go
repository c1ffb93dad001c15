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

package apierror_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jerry-enebeli/budget/internal/apierror"
	"github.com/stretchr/testify/assert"
)

func TestNewFailure(t *testing.T) {
	f := apierror.New("something went wrong")

	assert.Equal(t, "something went wrong", f.Cause)
	assert.Equal(t, "something went wrong", f.Error())
}

func TestNewf(t *testing.T) {
	f := apierror.Newf("got unexpected status code %d", 500)
	assert.Equal(t, "got unexpected status code 500", f.Error())
}

func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Plain error",
			err:      errors.New("dial tcp: connection refused"),
			expected: "dial tcp: connection refused",
		},
		{
			name:     "Failure is kept",
			err:      apierror.New("couldn't parse response"),
			expected: "couldn't parse response",
		},
		{
			name:     "Wrapped failure is unwrapped",
			err:      fmt.Errorf("outer: %w", apierror.New("inner cause")),
			expected: "inner cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, apierror.From(tt.err).Cause)
		})
	}
}

func TestFrom_Nil(t *testing.T) {
	assert.Nil(t, apierror.From(nil))
	assert.Equal(t, "", apierror.Cause(nil))
}

func TestErrNotImplemented(t *testing.T) {
	var f *apierror.Failure
	assert.True(t, errors.As(apierror.ErrNotImplemented, &f))
	assert.Equal(t, "not implemented yet", apierror.Cause(apierror.ErrNotImplemented))
}
