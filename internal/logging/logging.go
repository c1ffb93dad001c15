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

package logging

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/jerry-enebeli/budget/config"
)

// Setup configures the standard logrus logger from the log section of the configuration
// and sends the standard library logger's output through it.
func Setup(cnf config.LogConfig, out io.Writer) error {
	logger := logrus.StandardLogger()
	if err := configure(logger, cnf, out); err != nil {
		return err
	}
	log.SetFlags(0)
	log.SetOutput(logger.WriterLevel(logrus.InfoLevel))
	return nil
}

func configure(logger *logrus.Logger, cnf config.LogConfig, out io.Writer) error {
	level, err := logrus.ParseLevel(cnf.Level)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}

	switch strings.ToLower(cnf.Format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", cnf.Format)
	}

	logger.SetLevel(level)
	if out != nil {
		logger.SetOutput(out)
	}
	return nil
}
