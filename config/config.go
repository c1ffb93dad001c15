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

package config

import (
	"encoding/json"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const (
	DEFAULT_PROJECT_NAME         = "Budget Manager"
	DEFAULT_CONFIG_FILE          = "budget.json"
	DEFAULT_LOG_LEVEL            = "info"
	DEFAULT_LOG_FORMAT           = "text"
	DEFAULT_SNAPSHOT_TTL_SECONDS = 24 * 60 * 60
)

var ConfigStore atomic.Value

type BackendConfig struct {
	ApiUrl         string            `json:"api_url" envconfig:"BUDGET_BACKEND_API_URL"`
	TimeoutSeconds int               `json:"timeout_seconds" envconfig:"BUDGET_BACKEND_TIMEOUT_SECONDS"`
	Username       string            `json:"username" envconfig:"BUDGET_BACKEND_USERNAME"`
	Password       string            `json:"password" envconfig:"BUDGET_BACKEND_PASSWORD"`
	Headers        map[string]string `json:"headers" envconfig:"BUDGET_BACKEND_HEADERS"`
}

// Timeout returns the per-request timeout. Zero means requests are not bounded.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

type RedisConfig struct {
	Dns           string `json:"dns" envconfig:"BUDGET_REDIS_DNS"`
	SkipTLSVerify bool   `json:"skip_tls_verify" envconfig:"BUDGET_REDIS_SKIP_TLS_VERIFY"`
	// SnapshotTTLSeconds is how long a cached account list stays readable.
	SnapshotTTLSeconds int `json:"snapshot_ttl_seconds" envconfig:"BUDGET_REDIS_SNAPSHOT_TTL_SECONDS"`
}

func (r RedisConfig) SnapshotTTL() time.Duration {
	return time.Duration(r.SnapshotTTLSeconds) * time.Second
}

type SlackWebhook struct {
	WebhookUrl string `json:"webhook_url" envconfig:"BUDGET_SLACK_WEBHOOK_URL"`
}

type WebhookConfig struct {
	Url     string            `json:"url" envconfig:"BUDGET_WEBHOOK_URL"`
	Headers map[string]string `json:"headers" envconfig:"BUDGET_WEBHOOK_HEADERS"`
}

type Notification struct {
	Slack   SlackWebhook  `json:"slack"`
	Webhook WebhookConfig `json:"webhook"`
}

type LogConfig struct {
	Level  string `json:"level" envconfig:"BUDGET_LOG_LEVEL"`
	Format string `json:"format" envconfig:"BUDGET_LOG_FORMAT"`
}

type TracingConfig struct {
	Endpoint    string `json:"endpoint" envconfig:"BUDGET_OTEL_ENDPOINT"`
	ServiceName string `json:"service_name" envconfig:"BUDGET_OTEL_SERVICE_NAME"`
}

type Configuration struct {
	ProjectName  string        `json:"project_name" envconfig:"BUDGET_PROJECT_NAME"`
	Backend      BackendConfig `json:"backend"`
	Redis        RedisConfig   `json:"redis"`
	Notification Notification  `json:"notification"`
	Log          LogConfig     `json:"log"`
	Tracing      TracingConfig `json:"tracing"`
}

func loadConfigFromFile(file string) error {
	var cnf Configuration
	_, err := os.Stat(file)
	if err == nil {
		f, err := os.Open(file)
		if err != nil {
			return errors.Wrapf(err, "open config file %s", file)
		}
		defer f.Close()

		err = json.NewDecoder(f).Decode(&cnf)
		if err != nil {
			return errors.Wrapf(err, "decode config file %s", file)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		log.Println("config json not passed, will use env variables")
	}

	// override config from environment variables
	err = envconfig.Process("budget", &cnf)
	if err != nil {
		return errors.Wrap(err, "read environment")
	}

	err = cnf.validateAndAddDefaults()
	if err != nil {
		return err
	}

	ConfigStore.Store(&cnf)
	return nil
}

func InitConfig(configFile string) error {
	return loadConfigFromFile(configFile)
}

func Fetch() (*Configuration, error) {
	config := ConfigStore.Load()
	c, ok := config.(*Configuration)
	if !ok {
		return nil, errors.New("config not loaded. Create a json file called budget.json or set BUDGET_BACKEND_API_URL")
	}
	return c, nil
}

func (cnf *Configuration) validateAndAddDefaults() error {
	cnf.ProjectName = strings.TrimSpace(cnf.ProjectName)
	cnf.Backend.ApiUrl = strings.TrimSpace(cnf.Backend.ApiUrl)
	cnf.Redis.Dns = strings.TrimSpace(cnf.Redis.Dns)

	if cnf.ProjectName == "" {
		cnf.ProjectName = DEFAULT_PROJECT_NAME
	}

	if cnf.Backend.ApiUrl == "" {
		log.Println("Error: Backend API URL is empty. It's a required field.")
		return errors.New("backend API URL is required")
	}
	cnf.Backend.ApiUrl = strings.TrimSuffix(cnf.Backend.ApiUrl, "/")

	if cnf.Backend.TimeoutSeconds < 0 {
		return errors.New("backend timeout can't be negative")
	}

	if cnf.Backend.Password != "" && cnf.Backend.Username == "" {
		return errors.New("backend username is required when a password is set")
	}

	cnf.Log.Level = strings.ToLower(strings.TrimSpace(cnf.Log.Level))
	if cnf.Log.Level == "" {
		cnf.Log.Level = DEFAULT_LOG_LEVEL
	}
	cnf.Log.Format = strings.ToLower(strings.TrimSpace(cnf.Log.Format))
	if cnf.Log.Format == "" {
		cnf.Log.Format = DEFAULT_LOG_FORMAT
	}

	if cnf.Redis.SnapshotTTLSeconds <= 0 {
		cnf.Redis.SnapshotTTLSeconds = DEFAULT_SNAPSHOT_TTL_SECONDS
	}

	if cnf.Tracing.ServiceName == "" {
		cnf.Tracing.ServiceName = "budget-client"
	}

	return nil
}

// MockConfig sets a mock configuration for testing purposes.
func MockConfig(mockConfig *Configuration) {
	ConfigStore.Store(mockConfig)
}
