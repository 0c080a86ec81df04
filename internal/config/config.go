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

// Package config parses the cmd/mess binary's command-line arguments.
// No CLI-flag library appears anywhere in the retrieval pack this
// engine was built from, so this wraps the standard library's flag
// package rather than reaching for one.
package config

import (
	"flag"

	"mess.dev/engine/internal/ulog"
)

// Options holds cmd/mess's startup configuration.
type Options struct {
	// LogLevel sets ulog's minimum emitted level.
	LogLevel ulog.Level

	// Command, if non-empty, is run once non-interactively instead of
	// starting the UCI repl: "bench", "bench depth <d>", "perft depth
	// <d>", or "eval"; perft and eval act on the engine's current board.
	Command []string
}

// Parse reads Options from args (typically os.Args[1:]). Any leftover
// positional arguments after the flags become Command.
func Parse(args []string) Options {
	fs := flag.NewFlagSet("mess", flag.ContinueOnError)

	logLevel := fs.String("loglevel", "info", "minimum log level: debug, info, warn, error")

	// cmd/mess is usually driven over stdin by a GUI, not flags; an
	// unparseable flag isn't fatal, it just falls through to the UCI
	// repl with default options.
	_ = fs.Parse(args)

	var opts Options
	switch *logLevel {
	case "debug":
		opts.LogLevel = ulog.LevelDebug
	case "warn":
		opts.LogLevel = ulog.LevelWarn
	case "error":
		opts.LogLevel = ulog.LevelError
	default:
		opts.LogLevel = ulog.LevelInfo
	}

	opts.Command = fs.Args()
	return opts
}
