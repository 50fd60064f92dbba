// split.go: The split subcommand.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"

	"github.com/agilira/horcrux"
	"github.com/spf13/cobra"
)

var (
	splitParts     int
	splitThreshold int
	splitDestDir   string

	splitCmd = &cobra.Command{
		Use:   "split [file]",
		Short: "Split a file into encrypted horcruxes",
		Long: `Split a file into N encrypted fragments (horcruxes).
You need T fragments to recover the file.

Example:
  horcrux split diary.txt -n 5 -t 3

  This creates 5 files. Any 3 are needed to recover diary.txt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts := splitParts
			if parts == 0 {
				parts = cfg.Parts
			}
			threshold := splitThreshold
			if threshold == 0 {
				threshold = cfg.Threshold
			}

			eng := engine()
			result, err := eng.SplitFile(args[0], horcrux.SplitOptions{Total: parts, Threshold: threshold})
			if err != nil {
				return err
			}

			paths, err := eng.SaveHorcruxes(result.Horcruxes, splitDestDir)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Println("created", p)
			}
			fmt.Printf("split %d bytes into %d horcruxes (%d bytes total); any %d resurrect it\n",
				result.OriginalSize, parts, result.TotalSize, threshold)
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().IntVarP(&splitParts, "parts", "n", 0, "total number of horcruxes to make")
	splitCmd.Flags().IntVarP(&splitThreshold, "threshold", "t", 0, "number of horcruxes required to resurrect the file")
	splitCmd.Flags().StringVarP(&splitDestDir, "destination", "d", ".", "directory to write horcruxes into")
}
