package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/simonhull/embcue"
	"github.com/simonhull/embcue/internal/config"
	"github.com/simonhull/embcue/internal/library"
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>...",
	Short: "Probe directories for embedded cue sheets and index them",
	Long: `Walk the given directories, probe every file with a known audio
extension for an embedded cue sheet, and store the resulting playlists
in the library index. Re-scanning a file replaces its previous entry.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logger := setupLogger(effectiveLogLevel(cfg.LogLevel))

	store, err := library.Open(cfg.LibraryPath)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer store.Close()

	paths, err := collectCandidates(args, cfg.ScanExtensions)
	if err != nil {
		return err
	}
	logger.Info().Int("candidates", len(paths)).Msg("scanning for embedded cue sheets")

	ctx := cmd.Context()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	var indexed int
	results := make(chan scanResult)

	go func() {
		for _, path := range paths {
			path := path
			g.Go(func() error {
				return scanOne(ctx, logger, path, results)
			})
		}
		g.Wait()
		close(results)
	}()

	for res := range results {
		if err := store.ReplacePlaylist(ctx, res.path, res.info.ModTime(), res.tracks); err != nil {
			logger.Error().Err(err).Str("path", res.path).Msg("index update failed")
			continue
		}
		indexed++
		logger.Info().
			Str("path", res.path).
			Int("tracks", len(res.tracks)).
			Msg("indexed playlist")
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info().Int("indexed", indexed).Int("probed", len(paths)).Msg("scan complete")
	return nil
}

type scanResult struct {
	path   string
	info   fs.FileInfo
	tracks []*embcue.Track
}

// scanOne probes one file and sends a result when it holds a cue sheet.
// Files that decline or cannot be read are simply skipped; only context
// cancellation stops the sweep.
func scanOne(ctx context.Context, logger zerolog.Logger, path string, results chan<- scanResult) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	// Files can vanish between the walk and the probe.
	info, err := os.Stat(path)
	if err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable file")
		return nil
	}

	playlist, err := embcue.OpenContext(ctx, path)
	if err != nil {
		if errors.Is(err, embcue.ErrNoCueSheet) || errors.Is(err, embcue.ErrNotLocal) {
			return nil
		}
		return err
	}
	defer playlist.Close()

	select {
	case results <- scanResult{path: path, info: info, tracks: playlist.ReadAll()}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// collectCandidates walks the roots and gathers absolute paths of files
// whose extension appears in extensions.
func collectCandidates(roots, extensions []string) ([]string, error) {
	var paths []string

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, err
		}

		err = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
			for _, e := range extensions {
				if ext == strings.ToLower(e) {
					paths = append(paths, path)
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	return paths, nil
}
