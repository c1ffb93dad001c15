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

package confirm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(question string) bool
}

// Func adapts a plain function to the Confirmer interface.
type Func func(question string) bool

func (f Func) Confirm(question string) bool {
	return f(question)
}

// Always answers every question with the same value.
type Always bool

func (a Always) Confirm(string) bool {
	return bool(a)
}

// Prompt reads the answer from In after writing the question to Out.
// Only "y" and "yes", in any case, count as agreement.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

func (p Prompt) Confirm(question string) bool {
	_, _ = color.New(color.Bold).Fprintf(p.Out, "%s? [y/N]: ", question)

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && line == "" {
		logrus.WithError(err).Debug("no answer to confirmation prompt")
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Terminal returns a Prompt on stdin when stdin is an interactive terminal.
// Otherwise every question is declined.
func Terminal() Confirmer {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return Func(func(question string) bool {
			fmt.Fprintf(os.Stderr, "%s? refusing without a terminal, pass --yes to confirm\n", question)
			return false
		})
	}
	return Prompt{In: os.Stdin, Out: os.Stdout}
}
