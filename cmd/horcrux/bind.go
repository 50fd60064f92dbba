// bind.go: The bind subcommand.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/agilira/horcrux"
	"github.com/spf13/cobra"
)

var (
	bindOutput string

	bindCmd = &cobra.Command{
		Use:   "bind [horcrux files...]",
		Short: "Bind horcruxes back into the original file",
		Long: `Bind horcruxes back into the original file.

With explicit arguments, exactly those files are used:
  horcrux bind diary.txt.1_5.horcrux diary.txt.3_5.horcrux diary.txt.4_5.horcrux

With no arguments, the directory (-d, default ".") is scanned for a
single horcrux set:
  horcrux bind -d shards/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng := engine()

			if len(args) == 0 {
				result, err := eng.AutoBind(cfg.Dir)
				if err != nil {
					return err
				}
				out := bindOutput
				if out == "" {
					out = result.Filename
				}
				if err := os.WriteFile(out, result.Data, 0o644); err != nil {
					return err
				}
				fmt.Printf("resurrected %s from %d horcruxes\n", out, result.HorcruxesUsed)
				return nil
			}

			out := bindOutput
			if out == "" {
				info, err := eng.Inspect(args[0])
				if err != nil {
					return err
				}
				out = info.Header.OriginalFilename
			}
			result, err := eng.BindFiles(args, out, horcrux.BindOptions{})
			if err != nil {
				return err
			}
			fmt.Printf("resurrected %s from %d horcruxes\n", out, result.HorcruxesUsed)
			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(bindCmd)

	bindCmd.Flags().StringVarP(&bindOutput, "output", "o", "", "output path (default: the recorded original filename)")
	bindCmd.Flags().StringVarP(&cfg.Dir, "directory", "d", ".", "directory to scan when no files are given")
}
