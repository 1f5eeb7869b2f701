/**
 * Copyright 2025 Adobe. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

// Starting point for lockbench cmd
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/adobe/lockbench/lib/build"
	"github.com/adobe/lockbench/lib/lockbench"
	"github.com/adobe/lockbench/lib/log"
)

// printUsage is emitted on every invocation, valid arguments or not
func printUsage(w io.Writer, name string) {
	fmt.Fprintf(w, "Usage: %s --method [method] --iters [iters]\n", name)
	fmt.Fprintln(w, "Methods:")
	fmt.Fprintln(w, "  1 - Single resource access (safe)")
	fmt.Fprintln(w, "  2 - Deadlock demo (simulated)")
	fmt.Fprintln(w, "  3 - Scoped lock method")
	fmt.Fprintln(w, "  4 - Ordered locks method")
	fmt.Fprintf(w, "Default: method=%d iters=%d\n", int(lockbench.DefaultMethod), lockbench.DefaultIters)
}

func newCommand() *cobra.Command {
	var method int
	var iters int
	var cfgPath string
	var logVerbosity string
	var logTimestamp bool

	cmd := &cobra.Command{
		Use:   "lockbench",
		Short: "Lock coordination benchmark",
		Long:  `Demonstrates and times four ways two workers can coordinate over two lock-guarded cells`,
		// The fixed usage block is printed separately by main, cobra
		// must not append its own on errors
		SilenceUsage: true,
		PersistentPreRunE: func(_ /*cmd*/ *cobra.Command, _ /*args*/ []string) (err error) {
			logCfg := log.DefaultConfig()
			logCfg.Level = logVerbosity
			logCfg.UseTimestamp = logTimestamp
			return log.Initialize(logCfg)
		},
		RunE: func(cmd *cobra.Command, _ /*args*/ []string) (err error) {
			logger := log.WithFunc("main", "RunE")

			cfg := lockbench.DefaultConfig()
			if err = cfg.ReadConfigFile(cfgPath); err != nil {
				logger.Error("Lockbench: Unable to apply config file", "cfg_path", cfgPath, "err", err)
				return fmt.Errorf("Lockbench: Unable to apply config file %s: %v", cfgPath, err)
			}
			if cfg.LogLevel != "" && !cmd.Flags().Changed("verbosity") {
				logCfg := log.DefaultConfig()
				logCfg.Level = cfg.LogLevel
				logCfg.UseTimestamp = logTimestamp
				if err = log.Initialize(logCfg); err != nil {
					return err
				}
			}
			// Explicit flags win over the config file
			if cmd.Flags().Changed("method") {
				cfg.Method = lockbench.Method(method)
			}
			if cmd.Flags().Changed("iters") {
				cfg.Iters = iters
			}

			if err = cfg.Validate(); err != nil {
				logger.Error("Lockbench: Invalid run configuration", "err", err)
				return err
			}

			logger.Info("Lockbench run", "method", cfg.Method.String(), "iters", cfg.Iters)

			// The cells live for exactly one run and are passed down by
			// reference, nothing here is process-global
			rs := lockbench.NewResources()

			if cfg.Method == lockbench.MethodDeadlock {
				done := lockbench.RunDeadlock(rs)
				// Warn up front: the workers hold inverted lock orders
				// and are expected to never join, the process hangs here
				logger.Info(lockbench.DeadlockNotice)
				<-done
				return nil
			}

			res := lockbench.Run(cfg, rs)
			a, b := rs.Snapshot()
			logger.Debug("Lockbench final values", "a", a, "b", b)
			logger.Info(res.Format())

			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&method, "method", "m", int(lockbench.DefaultMethod), "access method (1-4)")
	flags.IntVarP(&iters, "iters", "i", lockbench.DefaultIters, "iterations per worker")
	flags.StringVarP(&cfgPath, "cfg", "c", "", "yaml configuration file")
	flags.StringVarP(&logVerbosity, "verbosity", "v", "info", "log level (debug, info, warn, error)")
	flags.BoolVar(&logTimestamp, "timestamp", true, "prepend timestamps for each log line")
	flags.Lookup("timestamp").NoOptDefVal = "false"

	return cmd
}

func main() {
	fmt.Printf("Lockbench %s (%s)\n", build.Version, build.Time)
	printUsage(os.Stdout, os.Args[0])

	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
