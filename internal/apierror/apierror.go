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

package apierror

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Failure is the single error kind produced by the client. It carries a human-readable
// cause and nothing else: callers are not expected to branch on failure reasons.
type Failure struct {
	Cause string `json:"cause"`
}

func (f *Failure) Error() string {
	return f.Cause
}

// ErrNotImplemented is returned by operations the backend does not support yet.
var ErrNotImplemented = New("not implemented yet")

// New creates a Failure with the given cause.
func New(cause string) *Failure {
	return &Failure{Cause: cause}
}

// Newf creates a Failure with a formatted cause.
func Newf(format string, args ...interface{}) *Failure {
	return &Failure{Cause: fmt.Sprintf(format, args...)}
}

// From converts any error into a Failure. An error that already is (or wraps) a Failure is
// returned unchanged so that causes are never prefixed twice on the way up.
func From(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	logrus.WithError(err).Debug("converting error to failure")
	return New(err.Error())
}

// Cause returns the human-readable cause of err, or an empty string for a nil error.
func Cause(err error) string {
	if err == nil {
		return ""
	}
	return From(err).Cause
}
