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

package engine_test

import (
	"testing"

	"mess.dev/engine/internal/engine"
)

// client.Run never parallelizes, so every command here finishes before
// the next one starts; it exercises the real command/option dispatch
// the same way a GUI sending one line at a time would.
func TestClientHandlesACompleteGame(t *testing.T) {
	client, err := engine.NewClient()
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	steps := [][]string{
		{"isready"},
		{"uci"},
		{"ucinewgame"},
		{"position", "startpos"},
		{"go", "depth", "3"},
		{"position", "startpos", "moves", "e2e4", "e7e5"},
		{"go", "depth", "2"},
		{"d"},
	}

	for _, args := range steps {
		if err := client.Run(args...); err != nil {
			t.Fatalf("run %v: %v", args, err)
		}
	}
}

func TestClientRejectsUnknownCommand(t *testing.T) {
	client, err := engine.NewClient()
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if err := client.Run("notacommand"); err == nil {
		t.Fatal("expected an error for an unknown command")
	}
}

func TestSetOptionResizesHash(t *testing.T) {
	client, err := engine.NewClient()
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if err := client.Run("setoption", "name", "Hash", "value", "32"); err != nil {
		t.Fatalf("setoption Hash: %v", err)
	}
	if err := client.Run("setoption", "name", "Threads", "value", "2"); err != nil {
		t.Fatalf("setoption Threads: %v", err)
	}
	if err := client.Run("position", "startpos"); err != nil {
		t.Fatalf("position: %v", err)
	}
	if err := client.Run("go", "depth", "2"); err != nil {
		t.Fatalf("go: %v", err)
	}
}

func TestStopWithoutSearchErrors(t *testing.T) {
	client, err := engine.NewClient()
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if err := client.Run("stop"); err == nil {
		t.Fatal("expected stop to error with no search in progress")
	}
}
