// main.go: The horcrux command-line tool.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/agilira/horcrux"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Exit codes, one per error category.
const (
	exitOK            = 0
	exitGeneric       = 1
	exitConfiguration = 2
	exitInput         = 3
	exitFormat        = 4
	exitSetValidation = 5
	exitCryptographic = 6
	exitIO            = 7
)

// cliConfig holds environment-supplied defaults (HORCRUX_DIR, HORCRUX_PARTS,
// HORCRUX_THRESHOLD, HORCRUX_VERBOSE). Flags override them.
type cliConfig struct {
	Dir       string `envconfig:"DIR" default:"."`
	Parts     int    `envconfig:"PARTS" default:"0"`
	Threshold int    `envconfig:"THRESHOLD" default:"0"`
	Verbose   bool   `envconfig:"VERBOSE" default:"false"`
}

var (
	cfg cliConfig
	log = logrus.New()

	rootCmd = &cobra.Command{
		Use:           "horcrux",
		Short:         "Split a file into encrypted fragments; bind them back together",
		Long:          "Horcrux splits a file into N encrypted fragments such that any K\nof them can resurrect the original. No passwords involved.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cfg.Verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	if err := envconfig.Process("horcrux", &cfg); err != nil {
		fmt.Fprintln(os.Stderr, "horcrux:", err)
		os.Exit(exitConfiguration)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "horcrux:", err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitOK)
}

// exitCode maps an error to its category's exit code.
func exitCode(err error) int {
	switch {
	case errors.Is(err, horcrux.ErrInvalidTotal),
		errors.Is(err, horcrux.ErrInvalidThreshold),
		errors.Is(err, horcrux.ErrThresholdExceedsTotal):
		return exitConfiguration
	case errors.Is(err, horcrux.ErrNotAFile),
		errors.Is(err, horcrux.ErrEmptySecret):
		return exitInput
	case errors.Is(err, horcrux.ErrMissingHeaderMarker),
		errors.Is(err, horcrux.ErrMissingBodyMarker),
		errors.Is(err, horcrux.ErrMalformedHeader),
		errors.Is(err, horcrux.ErrUnsupportedVersion):
		return exitFormat
	case errors.Is(err, horcrux.ErrNoShards),
		errors.Is(err, horcrux.ErrDifferentFiles),
		errors.Is(err, horcrux.ErrDifferentSplitRuns),
		errors.Is(err, horcrux.ErrInconsistentTotal),
		errors.Is(err, horcrux.ErrInconsistentThreshold),
		errors.Is(err, horcrux.ErrDuplicateIndex),
		errors.Is(err, horcrux.ErrAmbiguousShardSets),
		errors.Is(err, horcrux.ErrInsufficientShards):
		return exitSetValidation
	case errors.Is(err, horcrux.ErrInvalidKeySize),
		errors.Is(err, horcrux.ErrEmptyShares),
		errors.Is(err, horcrux.ErrLengthMismatch),
		errors.Is(err, horcrux.ErrDivisionByZero):
		return exitCryptographic
	case errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission):
		return exitIO
	default:
		return exitGeneric
	}
}

func engine() *horcrux.Engine {
	return horcrux.New(horcrux.WithLogger(log))
}
