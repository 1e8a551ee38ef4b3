package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/simonhull/embcue"
)

var tracksCmd = &cobra.Command{
	Use:   "tracks <file>",
	Short: "Print the playlist described by a file's embedded cue sheet",
	Args:  cobra.ExactArgs(1),
	RunE:  runTracks,
}

func init() {
	rootCmd.AddCommand(tracksCmd)
}

func runTracks(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	playlist, err := embcue.Open(path)
	if err != nil {
		return err
	}
	defer playlist.Close()

	tracks := playlist.ReadAll()

	rows := make([][]string, 0, len(tracks))
	for _, t := range tracks {
		rows = append(rows, []string{
			strconv.Itoa(t.Number),
			t.Tags.Title,
			t.Tags.Artist,
			t.Tags.Album,
			formatOffset(t.Start, false),
			formatOffset(t.End, true),
		})
	}

	fmt.Fprint(cmd.OutOrStdout(), renderTable(
		[]string{"#", "Title", "Artist", "Album", "Start", "End"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	))

	for _, w := range playlist.Warnings() {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}

	return nil
}
