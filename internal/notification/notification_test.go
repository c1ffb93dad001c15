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

package notification

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jerry-enebeli/budget/config"
	"github.com/jerry-enebeli/budget/internal/request"
)

func TestConsole_Notify(t *testing.T) {
	var buf bytes.Buffer
	NewConsole(&buf).Notify("couldn't create account: boom")

	assert.Contains(t, buf.String(), "couldn't create account: boom")
}

func TestSlack_Notify(t *testing.T) {
	mt := httpmock.NewMockTransport()
	var captured slackMessage
	mt.RegisterResponder("POST", "https://hooks.slack.test/services/abc", func(req *http.Request) (*http.Response, error) {
		require.NoError(t, json.NewDecoder(req.Body).Decode(&captured))
		return httpmock.NewStringResponse(http.StatusOK, "ok"), nil
	})

	slack := NewSlack("https://hooks.slack.test/services/abc", "Budget", request.WithHTTPClient(&http.Client{Transport: mt}))
	slack.now = func() time.Time { return time.Date(2024, 4, 22, 15, 0, 0, 0, time.UTC) }
	slack.Notify(`couldn't close account: "quoted" cause`)

	require.Len(t, captured.Blocks, 3)
	assert.Equal(t, "Message From Budget 🐞", captured.Blocks[0].Text.Text)
	assert.Equal(t, "*Message:*\ncouldn't close account: \"quoted\" cause", captured.Blocks[1].Fields[0].Text)
	assert.Equal(t, "*Time:*\n22 Apr 24 15:00 UTC", captured.Blocks[2].Fields[0].Text)
	assert.Equal(t, 1, mt.GetTotalCallCount())
}

func TestSlack_NotifyFailureIsSwallowed(t *testing.T) {
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder("POST", "https://hooks.slack.test/services/abc", httpmock.NewErrorResponder(errors.New("no route to host")))

	slack := NewSlack("https://hooks.slack.test/services/abc", "Budget", request.WithHTTPClient(&http.Client{Transport: mt}))
	assert.NotPanics(t, func() { slack.Notify("hello") })
}

func TestWebhook_Notify(t *testing.T) {
	mt := httpmock.NewMockTransport()
	var captured map[string]interface{}
	mt.RegisterResponder("POST", "https://example.test/notify", func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "Bearer token", req.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(req.Body).Decode(&captured))
		return httpmock.NewStringResponse(http.StatusNoContent, ""), nil
	})

	webhook := NewWebhook("https://example.test/notify", map[string]string{"Authorization": "Bearer token"},
		request.WithHTTPClient(&http.Client{Transport: mt}))
	webhook.now = func() time.Time { return time.Date(2024, 4, 22, 15, 0, 0, 0, time.UTC) }
	webhook.Notify("couldn't refresh accounts: timeout")

	assert.Equal(t, "couldn't refresh accounts: timeout", captured["message"])
	assert.Equal(t, "2024-04-22T15:00:00Z", captured["time"])
}

func TestMulti_Notify(t *testing.T) {
	var got []string
	m := Multi{
		NotifierFunc(func(msg string) { got = append(got, "a:"+msg) }),
		NotifierFunc(func(msg string) { got = append(got, "b:"+msg) }),
	}
	m.Notify("hi")

	assert.Equal(t, []string{"a:hi", "b:hi"}, got)
}

func TestFromConfig(t *testing.T) {
	var buf bytes.Buffer

	n := FromConfig(nil, &buf)
	assert.Len(t, n.(Multi), 1)

	cnf := &config.Configuration{ProjectName: "Budget"}
	cnf.Notification.Slack.WebhookUrl = "https://hooks.slack.test/services/abc"
	cnf.Notification.Webhook.Url = "https://example.test/notify"

	n = FromConfig(cnf, &buf)
	multi := n.(Multi)
	require.Len(t, multi, 3)
	assert.IsType(t, &Console{}, multi[0])
	assert.IsType(t, &Slack{}, multi[1])
	assert.IsType(t, &Webhook{}, multi[2])
}
