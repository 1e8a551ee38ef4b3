package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/simonhull/embcue/internal/config"
	"github.com/simonhull/embcue/internal/library"
)

var listCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List indexed playlists, or one container's tracks",
	Long: `Without arguments, list every container in the library index with
its track count. With a file argument, list that container's indexed
tracks without re-probing the file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	store, err := library.Open(cfg.LibraryPath)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()

	if len(args) == 0 {
		containers, err := store.Containers(ctx)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(containers))
		for _, c := range containers {
			rows = append(rows, []string{
				c.Path,
				strconv.Itoa(c.TrackNum),
				c.ScannedAt.Format("2006-01-02 15:04"),
			})
		}

		fmt.Fprint(cmd.OutOrStdout(), renderTable(
			[]string{"Container", "Tracks", "Scanned"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignLeft},
		))
		return nil
	}

	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	tracks, err := store.Tracks(ctx, path)
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		return fmt.Errorf("%s is not in the library index; run 'embcue scan' first", path)
	}

	rows := make([][]string, 0, len(tracks))
	for _, t := range tracks {
		rows = append(rows, []string{
			strconv.Itoa(t.Number),
			t.Tags.Title,
			t.Tags.Artist,
			formatOffset(t.Start, false),
			formatOffset(t.End, true),
		})
	}

	fmt.Fprint(cmd.OutOrStdout(), renderTable(
		[]string{"#", "Title", "Artist", "Start", "End"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight},
	))
	return nil
}
