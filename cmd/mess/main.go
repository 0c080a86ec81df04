// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"
	"strings"

	"mess.dev/engine/internal/config"
	"mess.dev/engine/internal/engine"
	"mess.dev/engine/internal/ulog"
)

func main() {
	opts := config.Parse(os.Args[1:])
	ulog.SetLevel(opts.LogLevel)

	client, err := engine.NewClient()
	if err != nil {
		ulog.Error("failed to initialize engine", "error", err)
		os.Exit(1)
	}

	// a non-empty positional command runs once, non-interactively,
	// instead of starting the UCI repl: e.g. `mess bench depth 8`.
	if len(opts.Command) > 0 {
		if err := client.Run(opts.Command...); err != nil {
			ulog.Error("command failed", "command", strings.Join(opts.Command, " "), "error", err)
			os.Exit(1)
		}
		return
	}

	if err := client.Start(); err != nil {
		ulog.Error("uci repl exited", "error", err)
		os.Exit(1)
	}
}
