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

package cmd_test

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"mess.dev/engine/pkg/uci/cmd"
)

func TestRunWithBlocksWhenNotParallelized(t *testing.T) {
	var buf bytes.Buffer
	schema := cmd.NewSchema(&buf)

	var ran bool
	c := cmd.Command{
		Name:     "slow",
		Parallel: true,
		Run: func(cmd.Interaction) error {
			time.Sleep(10 * time.Millisecond)
			ran = true
			return nil
		},
	}

	if err := c.RunWith(nil, false, schema); err != nil {
		t.Fatalf("RunWith: %v", err)
	}
	if !ran {
		t.Fatal("command should have run synchronously before RunWith returned")
	}
}

func TestRunWithDispatchesParallelCommands(t *testing.T) {
	var buf bytes.Buffer
	schema := cmd.NewSchema(&buf)

	var wg sync.WaitGroup
	wg.Add(1)
	c := cmd.Command{
		Name:     "slow",
		Parallel: true,
		Run: func(cmd.Interaction) error {
			defer wg.Done()
			return nil
		},
	}

	if err := c.RunWith(nil, true, schema); err != nil {
		t.Fatalf("RunWith: %v", err)
	}
	wg.Wait() // would hang forever if RunWith hadn't actually dispatched Run
}

func TestRunWithIgnoresParallelizeWithoutParallelFlag(t *testing.T) {
	var buf bytes.Buffer
	schema := cmd.NewSchema(&buf)

	var ran bool
	c := cmd.Command{
		Name: "serial",
		Run: func(cmd.Interaction) error {
			ran = true
			return nil
		},
	}

	if err := c.RunWith(nil, true, schema); err != nil {
		t.Fatalf("RunWith: %v", err)
	}
	if !ran {
		t.Fatal("a non-Parallel command must run synchronously regardless of parallelize")
	}
}
