// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command robintable-cli is a trivial driver over robintable.HashMap: it
// reads newline-delimited "set key value", "get key", "del key", "len",
// "clear", or "stats" commands from stdin and applies them, printing results
// to stdout. It
// exists only to exercise the core through its public API -- it is not part
// of the core and holds no hash table logic of its own.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/gopherdata/robintable"
)

func main() {
	var verbose bool
	pflag.BoolVarP(&verbose, "verbose", "v", false, "log every applied command")
	pflag.Parse()

	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level.SetLevel(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "robintable-cli: building logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(os.Stdin, os.Stdout, logger); err != nil {
		logger.Error("run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer, logger *zap.Logger) error {
	m := robintable.New[string, string]()
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if err := apply(m, fields, out); err != nil {
			logger.Warn("command failed",
				zap.Int("line", lineNo), zap.String("text", line), zap.Error(err))
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		logger.Debug("command applied", zap.Int("line", lineNo), zap.String("text", line))
	}
	return scanner.Err()
}

func apply(m *robintable.HashMap[string, string], fields []string, out io.Writer) error {
	if len(fields) == 0 {
		return errors.New("empty command")
	}
	switch strings.ToLower(fields[0]) {
	case "set":
		if len(fields) != 3 {
			return errors.New("usage: set <key> <value>")
		}
		p := m.GetOrInsert(fields[1])
		*p = fields[2]
		return nil
	case "get":
		if len(fields) != 2 {
			return errors.New("usage: get <key>")
		}
		v, err := m.At(fields[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, v)
		return nil
	case "del":
		if len(fields) != 2 {
			return errors.New("usage: del <key>")
		}
		if !m.Erase(fields[1]) {
			return robintable.ErrKeyNotFound
		}
		return nil
	case "len":
		fmt.Fprintln(out, m.Len())
		return nil
	case "clear":
		m.Clear()
		return nil
	case "stats":
		printStats(out, m.Stats())
		return nil
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func printStats(out io.Writer, s robintable.MapStats) {
	fmt.Fprintf(out, "size=%d\n", s.Size)
	for i, sub := range s.Subtables {
		fmt.Fprintf(out, "  subtable[%s]: size=%d capacity=%d load=%.3f max_psl=%d\n",
			strconv.Itoa(i), sub.Size, sub.Capacity, sub.LoadFactor, sub.MaxPSL)
	}
}
