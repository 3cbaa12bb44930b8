package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/quidome/media-timestamper-go/pkg/backup"
	"github.com/quidome/media-timestamper-go/pkg/extract"
	"github.com/quidome/media-timestamper-go/pkg/locate"
	"github.com/quidome/media-timestamper-go/pkg/restamp"
)

const version = "0.1.0"

type options struct {
	verbose bool
	dryRun  bool
}

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:     "media-timestamper",
		Short:   "A CLI tool to recover media capture timestamps from export pages",
		Long:    "Media Timestamper reads the HTML pages of a social-media data export, recovers each photo/video's capture timestamp from the page text, and writes it back into the media file's embedded metadata.",
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Media Timestamper CLI")
			cmd.Printf("Version: %s\n", version)
			if opts.verbose {
				cmd.Println("Verbose mode: enabled")
			}
			if opts.dryRun {
				cmd.Println("Dry run mode: enabled")
			}
			cmd.Println("")
			cmd.Println("Use --help to see available commands and options")
		},
	}

	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&opts.dryRun, "dry-run", "n", false, "perform a dry run without making changes")

	rootCmd.AddCommand(newExtractCmd(opts))
	rootCmd.AddCommand(newApplyCmd(opts))

	return rootCmd
}

func newExtractCmd(opts *options) *cobra.Command {
	var marker string

	extractCmd := &cobra.Command{
		Use:   "extract [page.html]",
		Short: "Print the timestamps found in an export page",
		Long:  "Extract walks one export HTML page and prints the recovered filename-to-timestamp mapping, one tab-separated pair per line, sorted by filename.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extOpts := extract.DefaultOptions()
			if marker != "" {
				extOpts.Marker = marker
			}

			mapping, err := extract.File(args[0], extOpts)
			if err != nil {
				return err
			}

			names := make([]string, 0, len(mapping))
			for name := range mapping {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				cmd.Printf("%s\t%s\n", name, mapping[name])
			}

			if opts.verbose {
				cmd.PrintErrf("found %d timestamped files\n", len(mapping))
			}

			return nil
		},
	}

	extractCmd.Flags().StringVar(&marker, "marker", "", `class substring that marks timestamp blocks (default "timestamp")`)

	return extractCmd
}

func newApplyCmd(opts *options) *cobra.Command {
	var (
		marker    string
		maxDepth  int
		backupDir string
		force     bool
	)

	applyCmd := &cobra.Command{
		Use:   "apply [page.html] [mediadir]",
		Short: "Write recovered timestamps into the media files",
		Long:  "Apply extracts timestamps from an export HTML page, locates each referenced file under the media directory, and writes the timestamp into the file's metadata using exiftool.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, mediaDir := args[0], args[1]

			logger := log.New(cmd.ErrOrStderr())
			if opts.verbose {
				logger.SetLevel(log.DebugLevel)
			}

			extOpts := extract.DefaultOptions()
			if marker != "" {
				extOpts.Marker = marker
			}

			mapping, err := extract.File(page, extOpts)
			if err != nil {
				return err
			}
			if len(mapping) == 0 {
				cmd.Println("no timestamped media references found")
				return nil
			}
			logger.Debug("extracted timestamps", "page", page, "count", len(mapping))

			locOpts := locate.DefaultOptions()
			locOpts.MaxDepth = maxDepth
			index, err := locate.Index(os.DirFS(mediaDir), ".", locOpts)
			if err != nil {
				return fmt.Errorf("scan media directory: %w", err)
			}

			ops := restamp.Plan(mapping, index)
			for i := range ops {
				if ops[i].Path != "" {
					ops[i].Path = filepath.Join(mediaDir, filepath.FromSlash(ops[i].Path))
				}
			}

			applyOpts := restamp.Options{
				DryRun: opts.dryRun,
				Force:  force,
				Logger: logger,
			}
			if !opts.dryRun {
				tool, err := restamp.LookPath()
				if err != nil {
					return err
				}
				applyOpts.Tool = tool

				if backupDir != "" {
					for _, op := range ops {
						if op.Path == "" {
							continue
						}
						dst, err := backup.File(op.Path, backupDir)
						if err != nil {
							return fmt.Errorf("backup %s: %w", op.Path, err)
						}
						logger.Debug("backed up", "src", op.Path, "dst", dst)
					}
				}
			}

			_, summary, err := restamp.Apply(ops, applyOpts)
			if err != nil {
				return err
			}

			cmd.Printf("processed %d files: %d written, %d skipped, %d missing, %d failed\n",
				summary.Total, summary.Written, summary.Skipped, summary.Missing, summary.Failed)
			if opts.dryRun {
				cmd.Println("Dry run mode: No files were modified")
			}

			if summary.Failed > 0 {
				return fmt.Errorf("%d files failed", summary.Failed)
			}
			return nil
		},
	}

	applyCmd.Flags().StringVar(&marker, "marker", "", `class substring that marks timestamp blocks (default "timestamp")`)
	applyCmd.Flags().IntVar(&maxDepth, "max-depth", -1, "maximum recursion depth when locating media files (0 = no recursion)")
	applyCmd.Flags().StringVar(&backupDir, "backup-dir", "", "copy originals into this directory before writing")
	applyCmd.Flags().BoolVar(&force, "force", false, "write even when a file already carries a timestamp")

	return applyCmd
}
