// inspect.go: The inspect subcommand.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [horcrux file...]",
	Short: "Show the metadata of horcrux files",
	Long: `Show the metadata recorded in one or more horcrux files: the original
filename, when it was split, the shard position, and a digest of the
encrypted body. No key material is printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng := engine()
		for _, path := range args {
			info, err := eng.Inspect(path)
			if err != nil {
				return err
			}
			h := info.Header
			fmt.Printf("%s:\n", path)
			fmt.Printf("  file:      %s\n", h.OriginalFilename)
			fmt.Printf("  split at:  %s\n", time.UnixMilli(h.Timestamp).UTC().Format(time.RFC3339))
			fmt.Printf("  shard:     %d of %d (threshold %d)\n", h.Index, h.Total, h.Threshold)
			fmt.Printf("  version:   %d\n", h.Version)
			fmt.Printf("  body:      %d bytes, blake2b %s\n", info.BodySize, info.BodyDigest)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
