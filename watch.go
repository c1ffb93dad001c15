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
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sirupsen/logrus"
)

// maxWatchBackoff caps the wait between failing refreshes, as a multiple of the interval.
const maxWatchBackoff = 10

// Watch refreshes the store every interval until ctx is done. While refreshes keep failing
// the wait grows exponentially up to ten intervals, and drops back to interval after the
// next success.
func (s *AccountService) Watch(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return errors.New("watch interval must be positive")
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = interval
	b.MaxInterval = maxWatchBackoff * interval
	b.MaxElapsedTime = 0
	b.Reset()

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		wait := interval
		if s.RefreshStore(ctx) {
			b.Reset()
		} else {
			wait = b.NextBackOff()
			logrus.WithField("retry_in", wait.String()).Warn("account refresh failed")
		}
		timer.Reset(wait)
	}
}
