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
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAndAddDefaults(t *testing.T) {
	cnf := Configuration{}
	err := cnf.validateAndAddDefaults()
	if err == nil || err.Error() != "backend API URL is required" {
		t.Errorf("Expected backend API URL required error, got %v", err)
	}

	cnf = Configuration{
		Backend: BackendConfig{ApiUrl: " http://localhost:8080/ ", TimeoutSeconds: -1},
	}
	err = cnf.validateAndAddDefaults()
	assert.EqualError(t, err, "backend timeout can't be negative")

	cnf = Configuration{
		Backend: BackendConfig{ApiUrl: "http://localhost:8080", Password: "secret"},
	}
	err = cnf.validateAndAddDefaults()
	assert.EqualError(t, err, "backend username is required when a password is set")

	// Test case with all required fields filled, expect no error
	cnf = Configuration{
		Backend: BackendConfig{ApiUrl: " http://localhost:8080/ "},
		Log:     LogConfig{Level: "DEBUG"},
	}
	err = cnf.validateAndAddDefaults()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cnf.Backend.ApiUrl)
	assert.Equal(t, DEFAULT_PROJECT_NAME, cnf.ProjectName)
	assert.Equal(t, "debug", cnf.Log.Level)
	assert.Equal(t, DEFAULT_LOG_FORMAT, cnf.Log.Format)
	assert.Equal(t, "budget-client", cnf.Tracing.ServiceName)
	assert.Equal(t, time.Duration(0), cnf.Backend.Timeout())
	assert.Equal(t, 24*time.Hour, cnf.Redis.SnapshotTTL())
}

func TestLoadConfigFromFile(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "budget.json")
	if err != nil {
		t.Fatalf("Unable to create temporary file: %v", err)
	}
	defer os.Remove(tmpFile.Name())

	sampleConfig := Configuration{
		ProjectName: "Temp Project",
		Backend: BackendConfig{
			ApiUrl:         "http://file-backend:8080",
			TimeoutSeconds: 5,
		},
		Notification: Notification{
			Slack: SlackWebhook{WebhookUrl: "https://hooks.slack.test/abc"},
		},
	}
	if err := json.NewEncoder(tmpFile).Encode(sampleConfig); err != nil {
		t.Fatalf("Unable to write to temporary file: %v", err)
	}
	tmpFile.Close()

	// Environment variables override the file
	t.Setenv("BUDGET_PROJECT_NAME", "Env Project")
	t.Setenv("BUDGET_BACKEND_API_URL", "http://env-backend:8080")

	if err := loadConfigFromFile(tmpFile.Name()); err != nil {
		t.Fatalf("loadConfigFromFile failed: %v", err)
	}

	loadedConfig, err := Fetch()
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	assert.Equal(t, "Env Project", loadedConfig.ProjectName)
	assert.Equal(t, "http://env-backend:8080", loadedConfig.Backend.ApiUrl)
	assert.Equal(t, 5*time.Second, loadedConfig.Backend.Timeout())
	assert.Equal(t, "https://hooks.slack.test/abc", loadedConfig.Notification.Slack.WebhookUrl)
}

func TestLoadConfigFromFile_EnvOnly(t *testing.T) {
	t.Setenv("BUDGET_BACKEND_API_URL", "http://env-only:8080")
	t.Setenv("BUDGET_BACKEND_HEADERS", "X-Client:cli,X-Team:finance")

	err := InitConfig("does-not-exist.json")
	require.NoError(t, err)

	cnf, err := Fetch()
	require.NoError(t, err)
	assert.Equal(t, "http://env-only:8080", cnf.Backend.ApiUrl)
	assert.Equal(t, map[string]string{"X-Client": "cli", "X-Team": "finance"}, cnf.Backend.Headers)
}

func TestLoadConfigFromFile_Malformed(t *testing.T) {
	tmpFile, err := os.CreateTemp("", "budget.json")
	require.NoError(t, err)
	defer os.Remove(tmpFile.Name())

	_, err = tmpFile.WriteString("{not json")
	require.NoError(t, err)
	tmpFile.Close()

	err = loadConfigFromFile(tmpFile.Name())
	assert.ErrorContains(t, err, "decode config file")
}

func TestMockConfig(t *testing.T) {
	MockConfig(&Configuration{ProjectName: "Mocked"})

	cnf, err := Fetch()
	require.NoError(t, err)
	assert.Equal(t, "Mocked", cnf.ProjectName)
}
