package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"readmesync/internal/config"
	"readmesync/internal/extractor"
	"readmesync/internal/markdown"
	"readmesync/internal/project"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "readmesync",
		Short: "Keep a crate's README in sync with its crate-level documentation",
		Long: "readmesync extracts the crate-level documentation (//!, /*! */ and\n" +
			"#![doc = \"...\"]) from a crate's entry source file and rewrites the region\n" +
			"of its README delimited by " + markdown.MarkerBegin + " and\n" +
			markdown.MarkerEnd + ". Everything outside the region, including the\n" +
			"file's line-ending convention, is left untouched.",
		Args: cobra.NoArgs,
		Run:  runSync,
	}
	projectDir     string
	entrypoint     string
	readmePath     string
	lineTerminator string
	checkOnly      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&projectDir, "project-dir", "p", ".", "Directory inside the crate to sync")
	rootCmd.Flags().StringVarP(&entrypoint, "entrypoint", "e", "", "Doc source: lib, bin or bin:<name> (default: lib, falling back to bin)")
	rootCmd.Flags().StringVarP(&readmePath, "readme", "r", "", "README path relative to the project root (overrides the manifest)")
	rootCmd.Flags().StringVarP(&lineTerminator, "line-terminator", "t", "", "Line terminator for the written README: auto, lf or crlf")
	rootCmd.Flags().BoolVarP(&checkOnly, "check", "c", false, "Verify the README is up to date without writing; exits 2 when stale")
}

func runSync(cmd *cobra.Command, args []string) {
	stale, err := sync(syncOptions{
		projectDir:     projectDir,
		entrypoint:     entrypoint,
		readmePath:     readmePath,
		lineTerminator: lineTerminator,
		checkOnly:      checkOnly,
	})
	if err != nil {
		log.Fatalf("%v", err)
	}
	if stale {
		os.Exit(2)
	}
}

// syncOptions carries one invocation's settings. Flags win over the config
// file and environment; empty fields fall back to the config.
type syncOptions struct {
	projectDir     string
	entrypoint     string
	readmePath     string
	lineTerminator string
	checkOnly      bool
}

// sync runs the whole resolve-extract-inject-write pipeline once. In check
// mode it never writes and reports whether the README is stale instead. The
// README is only written after the full merged document is built, so any
// failure leaves the disk untouched.
func sync(opts syncOptions) (stale bool, err error) {
	proj, err := project.FromDir(opts.projectDir)
	if err != nil {
		return false, fmt.Errorf("failed to resolve project: %w", err)
	}

	cfg, err := config.Load(filepath.Join(proj.Directory, config.DefaultFilename))
	if err != nil {
		return false, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.entrypoint == "" {
		opts.entrypoint = cfg.Entrypoint
	}
	if opts.readmePath == "" {
		opts.readmePath = cfg.Readme
	}
	if opts.lineTerminator == "" {
		opts.lineTerminator = cfg.LineTerminator
	}

	entryFile, err := resolveEntryFile(proj, opts.entrypoint)
	if err != nil {
		return false, fmt.Errorf("failed to resolve entry file: %w", err)
	}

	ext, err := extractor.NewExtractor("rust")
	if err != nil {
		return false, fmt.Errorf("failed to initialize extractor: %w", err)
	}
	doc, err := ext.ExtractFromFile(entryFile)
	if err != nil {
		return false, fmt.Errorf("failed to extract crate docs: %w", err)
	}
	var docLines []string
	if doc == nil {
		fmt.Printf("  -> No crate-level documentation in %s; syncing an empty region.\n", entryFile)
	} else {
		docLines = doc.Slice()
	}

	target := resolveReadmePath(proj, opts.readmePath)

	// An absent README starts from an empty document; nothing outside the
	// fresh region exists to preserve.
	var readme markdown.Markdown
	term := markdown.LF
	exists := isRegularFile(target)
	if exists {
		readme, err = markdown.FromFile(target)
		if err != nil {
			return false, fmt.Errorf("failed to read README: %w", err)
		}
		term, err = markdown.InferTerminator(target)
		if err != nil {
			return false, fmt.Errorf("failed to infer line terminator: %w", err)
		}
	}
	switch strings.ToLower(opts.lineTerminator) {
	case "", "auto":
	case "lf":
		term = markdown.LF
	case "crlf":
		term = markdown.CRLF
	default:
		return false, fmt.Errorf("unknown line terminator %q (want auto, lf or crlf)", opts.lineTerminator)
	}

	merged, err := markdown.Inject(readme, docLines)
	if err != nil {
		return false, fmt.Errorf("failed to inject docs into %s: %w", target, err)
	}

	if opts.checkOnly {
		current := ""
		if exists {
			data, err := os.ReadFile(target)
			if err != nil {
				return false, fmt.Errorf("failed to read README: %w", err)
			}
			current = string(data)
		}
		if merged.Render(term) != current {
			fmt.Printf("%s is out of date.\n", target)
			return true, nil
		}
		fmt.Printf("%s is up to date.\n", target)
		return false, nil
	}

	if err := merged.WriteToFile(target, term); err != nil {
		return false, fmt.Errorf("failed to write README: %w", err)
	}
	fmt.Printf("  -> Synced %s from %s.\n", target, entryFile)
	return false, nil
}

// resolveEntryFile picks the source file whose crate docs drive the README.
func resolveEntryFile(proj *project.Project, entrypoint string) (string, error) {
	switch {
	case entrypoint == "":
		if path, ok := proj.LibEntryPath(); ok {
			return path, nil
		}
		if path, ok := proj.BinDefaultEntryPath(); ok {
			return path, nil
		}
		return "", fmt.Errorf("no library or binary entry file found in %s", proj.Directory)
	case entrypoint == "lib":
		if path, ok := proj.LibEntryPath(); ok {
			return path, nil
		}
		return "", fmt.Errorf("library entry file not found in %s", proj.Directory)
	case entrypoint == "bin":
		if path, ok := proj.BinDefaultEntryPath(); ok {
			return path, nil
		}
		return "", fmt.Errorf("binary entry file not found in %s", proj.Directory)
	case strings.HasPrefix(entrypoint, "bin:"):
		name := strings.TrimPrefix(entrypoint, "bin:")
		if path, ok := proj.BinEntryPath(name); ok {
			return path, nil
		}
		return "", fmt.Errorf("no entry file for binary %q", name)
	default:
		return "", fmt.Errorf("unknown entrypoint %q (want lib, bin or bin:<name>)", entrypoint)
	}
}

// resolveReadmePath returns the README to rewrite. The README does not need
// to exist yet — the first sync creates it at the configured-or-default
// location; existence only decides whether there is anything to read.
func resolveReadmePath(proj *project.Project, override string) string {
	if override != "" {
		return filepath.Join(proj.Directory, override)
	}
	return proj.EffectiveReadmePath()
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
