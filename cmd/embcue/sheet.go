package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/embcue"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet <file>",
	Short: "Print the raw embedded cue sheet text",
	Args:  cobra.ExactArgs(1),
	RunE:  runSheet,
}

func init() {
	rootCmd.AddCommand(sheetCmd)
}

func runSheet(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	playlist, err := embcue.Open(path)
	if err != nil {
		return err
	}
	defer playlist.Close()

	sheet := playlist.Sheet()
	fmt.Fprint(cmd.OutOrStdout(), sheet)
	if !strings.HasSuffix(sheet, "\n") {
		fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}
