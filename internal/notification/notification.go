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
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	"github.com/jerry-enebeli/budget/config"
	"github.com/jerry-enebeli/budget/internal/request"
)

// deliveryTimeout bounds a single remote notification.
const deliveryTimeout = 5 * time.Second

// Notifier delivers a human-readable message to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) {
	f(msg)
}

// Console prints messages to a terminal.
type Console struct {
	out   io.Writer
	color *color.Color
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out, color: color.New(color.FgYellow, color.Bold)}
}

func (c *Console) Notify(msg string) {
	logrus.WithField("notification", msg).Debug("notifying user")
	_, _ = c.color.Fprintln(c.out, "! "+msg)
}

// Slack posts messages to a Slack incoming webhook.
type Slack struct {
	client  *request.Client
	project string
	now     func() time.Time
}

func NewSlack(webhookURL, project string, opts ...request.Option) *Slack {
	return &Slack{client: request.NewClient(webhookURL, opts...), project: project, now: time.Now}
}

type slackText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

type slackBlock struct {
	Type   string      `json:"type"`
	Text   *slackText  `json:"text,omitempty"`
	Fields []slackText `json:"fields,omitempty"`
}

type slackMessage struct {
	Blocks []slackBlock `json:"blocks"`
}

func (s *Slack) message(msg string) slackMessage {
	return slackMessage{Blocks: []slackBlock{
		{Type: "header", Text: &slackText{Type: "plain_text", Text: fmt.Sprintf("Message From %s 🐞", s.project), Emoji: true}},
		{Type: "section", Fields: []slackText{{Type: "mrkdwn", Text: "*Message:*\n" + msg}}},
		{Type: "section", Fields: []slackText{{Type: "mrkdwn", Text: "*Time:*\n" + s.now().Format(time.RFC822)}}},
	}}
}

func (s *Slack) Notify(msg string) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	if err := s.client.Send(ctx, "", s.message(msg)); err != nil {
		logrus.WithError(err).Error("failed to send slack notification")
	}
}

// Webhook posts messages as {"message": ..., "time": ...} to an arbitrary URL.
type Webhook struct {
	client *request.Client
	now    func() time.Time
}

func NewWebhook(url string, headers map[string]string, opts ...request.Option) *Webhook {
	opts = append(opts, request.WithHeaders(headers))
	return &Webhook{client: request.NewClient(url, opts...), now: time.Now}
}

type webhookPayload struct {
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

func (w *Webhook) Notify(msg string) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	if err := w.client.Send(ctx, "", webhookPayload{Message: msg, Time: w.now().UTC()}); err != nil {
		logrus.WithError(err).Error("failed to send webhook notification")
	}
}

// Multi delivers every message to all of its notifiers, in order.
type Multi []Notifier

func (m Multi) Notify(msg string) {
	for _, n := range m {
		n.Notify(msg)
	}
}

// FromConfig builds the console notifier plus every remote sink the configuration enables.
func FromConfig(cnf *config.Configuration, out io.Writer) Notifier {
	notifiers := Multi{NewConsole(out)}
	if cnf == nil {
		return notifiers
	}
	if cnf.Notification.Slack.WebhookUrl != "" {
		notifiers = append(notifiers, NewSlack(cnf.Notification.Slack.WebhookUrl, cnf.ProjectName))
	}
	if cnf.Notification.Webhook.Url != "" {
		notifiers = append(notifiers, NewWebhook(cnf.Notification.Webhook.Url, cnf.Notification.Webhook.Headers))
	}
	return notifiers
}
