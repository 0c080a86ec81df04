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

// Package ulog is the engine's ambient logger: every line goes to
// stderr so stdout stays reserved for the UCI protocol stream a GUI is
// parsing. It wraps github.com/seekerror/logw, the structured logger
// the retrieval pack's own chess engine (morlock, in
// internal/engine.go) reaches for to log its lifecycle, rather than
// hand-rolling one on the standard library.
package ulog

import (
	"context"
	"fmt"
	"strings"

	"github.com/seekerror/logw"
)

// Level filters which calls reach logw.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// level is the minimum Level that gets logged; SetLevel adjusts it.
// Debug is useful while chasing a search/pool bug without recompiling.
var level = LevelInfo

// background is the context threaded through every logw call: ulog's
// callers (the UCI command loop, cmd/mess's startup) have no request
// scope of their own to hand it.
var background = context.Background()

// SetLevel adjusts the minimum level logged.
func SetLevel(l Level) { level = l }

func Debug(msg string, args ...any) {
	if level <= LevelDebug {
		logw.Debugf(background, "%s", format(msg, args))
	}
}

func Info(msg string, args ...any) {
	if level <= LevelInfo {
		logw.Infof(background, "%s", format(msg, args))
	}
}

func Warn(msg string, args ...any) {
	if level <= LevelWarn {
		logw.Warnf(background, "%s", format(msg, args))
	}
}

func Error(msg string, args ...any) {
	if level <= LevelError {
		logw.Errorf(background, "%s", format(msg, args))
	}
}

// format renders msg followed by its key/value argument pairs as
// "key=value", since logw is a printf-style logger with no structured
// field API of its own.
func format(msg string, args []any) string {
	if len(args) == 0 {
		return msg
	}
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
	}
	return b.String()
}
