package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/boyter/gocodewalker"
	"github.com/opencontainers/go-digest"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/multimediallc/dta-reader/internal/config"
	"github.com/multimediallc/dta-reader/pkg/dta"
	f "github.com/multimediallc/dta-reader/pkg/functional"
	"github.com/multimediallc/dta-reader/pkg/msreader"
)

func stripRoot(root string, path string) string {
	if root == "." {
		return path
	}
	return strings.TrimPrefix(path, root+"/")
}

func main() {
	var (
		configDir string
		cfg       = config.Default()
		logger    = zap.NewNop()
	)
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "Print version",
	}
	cli.VersionPrinter = func(cCtx *cli.Context) {
		fmt.Println(cCtx.App.Version)
	}
	formatFlag := &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format.  Allowed values are: default, one-line, and json (default from dta.toml)",
	}
	outputFormat := func(cCtx *cli.Context) (OutputFormat, error) {
		if cCtx.IsSet("format") {
			return validateFormat(cCtx.String("format"))
		}
		return validateFormat(cfg.Output.Format)
	}
	source := func(cCtx *cli.Context) (*dta.File, error) {
		if cCtx.NArg() == 0 {
			return nil, fmt.Errorf("source file or directory is required")
		}
		return openSource(cCtx.Args().First(), cfg, logger)
	}

	app := &cli.App{
		Name:        "dta-cli",
		Usage:       "CLI tool for random access to DTA peak-list files",
		Version:     "v0.1.0",
		Description: "A source is either a concatenated .dta file with spectra separated by blank lines, or a directory of .dta files.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Value:       "./",
				Usage:       "Directory holding dta.toml",
				Destination: &configDir,
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log index lifecycle events to stderr",
			},
		},
		Before: func(cCtx *cli.Context) error {
			var err error
			cfg, err = config.ReadConfig(configDir)
			if err != nil {
				return fmt.Errorf("error reading dta config: %w", err)
			}
			if cCtx.Bool("verbose") {
				if logger, err = zap.NewDevelopment(); err != nil {
					return err
				}
			}
			return nil
		},
		After: func(*cli.Context) error {
			_ = logger.Sync()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "count",
				Usage:     "Print the number of spectra in a source",
				UsageText: "dta-cli count <source>",
				Action: func(cCtx *cli.Context) error {
					df, err := source(cCtx)
					if err != nil {
						return err
					}
					fmt.Println(df.SpectraCount())
					return nil
				},
			},
			{
				Name:        "ids",
				Usage:       "List spectrum identifiers",
				UsageText:   "dta-cli ids [options] <source>",
				Description: "List the identifiers of all spectra in iteration order: 1-based indexes for a concatenated file, filenames for a directory.",
				Flags:       []cli.Flag{formatFlag},
				Action: func(cCtx *cli.Context) error {
					format, err := outputFormat(cCtx)
					if err != nil {
						return err
					}
					df, err := source(cCtx)
					if err != nil {
						return err
					}
					return printIDs(os.Stdout, df, format)
				},
			},
			{
				Name:        "show",
				Aliases:     []string{"s"},
				Usage:       "Print one or more spectra",
				UsageText:   "dta-cli show [options] <source> [id1] [id2]...",
				Description: "Print the spectra with the given identifiers. Identifiers can also be piped on stdin. Without identifiers every spectrum is printed.",
				Flags:       []cli.Flag{formatFlag},
				Action: func(cCtx *cli.Context) error {
					format, err := outputFormat(cCtx)
					if err != nil {
						return err
					}
					df, err := source(cCtx)
					if err != nil {
						return err
					}
					ids := cCtx.Args().Tail()
					if isStdinPiped() {
						piped, err := scanStdin()
						if err != nil {
							return err
						}
						ids = append(ids, piped...)
					}
					return showSpectra(os.Stdout, df, f.RemoveDuplicates(ids), format, cfg.Output.Header)
				},
			},
			{
				Name:        "index",
				Aliases:     []string{"i"},
				Usage:       "Print the byte ranges of all spectra",
				UsageText:   "dta-cli index [options] <source>",
				Description: "Print identifier, start offset and size of every spectrum in a concatenated file. Directory members are listed by name.",
				Flags: []cli.Flag{
					formatFlag,
					&cli.BoolFlag{
						Name:    "digest",
						Aliases: []string{"d"},
						Usage:   "Include a sha256 digest of each spectrum (default from dta.toml)",
					},
				},
				Action: func(cCtx *cli.Context) error {
					format, err := outputFormat(cCtx)
					if err != nil {
						return err
					}
					withDigest := cfg.Output.Digest
					if cCtx.IsSet("digest") {
						withDigest = cCtx.Bool("digest")
					}
					df, err := source(cCtx)
					if err != nil {
						return err
					}
					return printIndex(os.Stdout, df, format, withDigest)
				},
			},
			{
				Name:        "scan",
				Usage:       "Find DTA sources below a directory",
				UsageText:   "dta-cli scan [options] [root]",
				Description: "Walk root (default: current directory) and list every DTA source with its mode and spectrum count. A matching file holding more than one spectrum is a concatenated source; the remaining matches are members, and each directory holding members is reported once.",
				Flags:       []cli.Flag{formatFlag},
				Action: func(cCtx *cli.Context) error {
					format, err := outputFormat(cCtx)
					if err != nil {
						return err
					}
					root := "."
					if cCtx.NArg() > 0 {
						root = cCtx.Args().First()
					}
					return scanSources(os.Stdout, root, cfg, logger, format)
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func openSource(path string, cfg *config.Config, logger *zap.Logger) (*dta.File, error) {
	df, err := dta.Open(path, dta.WithPattern(cfg.Pattern), dta.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("error opening dta source: %w", err)
	}
	return df, nil
}

func printIDs(w io.Writer, df *dta.File, format OutputFormat) error {
	ids := df.SpectraIDs()
	if format == FormatJSON {
		return json.NewEncoder(w).Encode(ids)
	}
	if len(ids) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, joinFor(format, ids))
	return err
}

type spectrumJSON struct {
	ID      string `json:"id"`
	MsLevel int    `json:"ms_level"`
	Text    string `json:"text"`
}

func showSpectra(w io.Writer, df *dta.File, ids []string, format OutputFormat, header bool) error {
	var (
		errs error
		out  []spectrumJSON
	)
	emit := func(s *dta.Spectrum) {
		switch format {
		case FormatJSON:
			out = append(out, spectrumJSON{ID: s.ID(), MsLevel: s.MsLevel(), Text: s.Text})
		case FormatOneLine:
			_, _ = fmt.Fprintf(w, "%s: %s\n", s.ID(), strings.Join(s.Lines(), "; "))
		default:
			if header {
				_, _ = fmt.Fprintf(w, "# %s\n", s.ID())
			}
			_, _ = fmt.Fprint(w, s.Text)
			if !strings.HasSuffix(s.Text, "\n") {
				_, _ = fmt.Fprintln(w)
			}
			_, _ = fmt.Fprintln(w)
		}
	}

	if len(ids) == 0 {
		for s, err := range df.All() {
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			emit(s)
		}
	} else {
		for _, id := range ids {
			s, err := df.Lookup(id)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("spectrum %s: %w", id, err))
				continue
			}
			emit(s)
		}
	}

	if format == FormatJSON {
		if out == nil {
			out = []spectrumJSON{}
		}
		if err := json.NewEncoder(w).Encode(out); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

type indexEntry struct {
	ID string `json:"id"`
	msreader.IndexElement
	Digest string `json:"digest,omitempty"`
}

func printIndex(w io.Writer, df *dta.File, format OutputFormat, withDigest bool) error {
	var entries []indexEntry
	if df.IsDirectory() {
		for _, name := range df.SpectraIDs() {
			entry := indexEntry{ID: name}
			if withDigest {
				s, err := df.SpectrumByFilename(name)
				if err != nil {
					return fmt.Errorf("spectrum %s: %w", name, err)
				}
				entry.Digest = digest.FromString(s.Text).String()
			}
			entries = append(entries, entry)
		}
	} else {
		for i, r := range df.MsNIndexes(dta.MsLevel) {
			entry := indexEntry{ID: strconv.Itoa(i + 1), IndexElement: r}
			if withDigest {
				text, err := dta.ReadRange(df.Source(), r)
				if err != nil {
					return fmt.Errorf("spectrum %s: %w", entry.ID, err)
				}
				entry.Digest = digest.FromString(text).String()
			}
			entries = append(entries, entry)
		}
	}

	if format == FormatJSON {
		if entries == nil {
			entries = []indexEntry{}
		}
		return json.NewEncoder(w).Encode(entries)
	}
	lines := f.Map(entries, func(e indexEntry) string {
		fields := []string{e.ID}
		if !df.IsDirectory() {
			fields = append(fields, strconv.FormatUint(e.Start, 10), strconv.FormatUint(uint64(e.Size), 10))
		}
		if e.Digest != "" {
			fields = append(fields, e.Digest)
		}
		return strings.Join(fields, "\t")
	})
	if len(lines) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, joinFor(format, lines))
	return err
}

type sourceJSON struct {
	Path    string `json:"path"`
	Mode    string `json:"mode"`
	Spectra int    `json:"spectra"`
}

// scanSources lists every DTA source below root. A file matching the member
// pattern that holds more than one spectrum is a concatenated source. Other
// matches are directory members, and their parent directory is reported once
// as a directory source.
func scanSources(w io.Writer, root string, cfg *config.Config, logger *zap.Logger, format OutputFormat) error {
	if rootStat, err := os.Stat(root); err != nil || !rootStat.IsDir() {
		return fmt.Errorf("root is not a directory: %s", root)
	}
	if !doublestar.ValidatePattern(cfg.Pattern) {
		return fmt.Errorf("%w: %q", dta.ErrInvalidPattern, cfg.Pattern)
	}

	fileListQueue := make(chan *gocodewalker.File, 100)

	walker := gocodewalker.NewFileWalker(root, fileListQueue)
	walker.IncludeHidden = true
	walker.ExcludeDirectory = []string{".git"}

	errChan := make(chan error)

	go func() {
		err := walker.Start()
		errChan <- err
		close(errChan)
	}()

	paths := make([]string, 0)
	for file := range fileListQueue {
		if ok, _ := doublestar.Match(cfg.Pattern, file.Filename); ok {
			paths = append(paths, stripRoot(filepath.Clean(root), file.Location))
		}
	}

	if err := <-errChan; err != nil {
		return fmt.Errorf("error walking %s: %s", root, err)
	}

	var (
		errs    error
		sources []sourceJSON
		dirs    = f.NewSet[string]()
	)
	add := func(path string) {
		df, err := openSource(filepath.Join(root, path), cfg, logger)
		if err != nil {
			errs = multierr.Append(errs, err)
			return
		}
		if !df.IsDirectory() && df.SpectraCount() <= 1 {
			dirs.Add(filepath.Dir(path))
			return
		}
		sources = append(sources, sourceJSON{Path: path, Mode: modeName(df), Spectra: df.SpectraCount()})
	}
	for _, path := range paths {
		add(path)
	}
	for _, dir := range dirs.Items() {
		add(dir)
	}
	slices.SortFunc(sources, func(a, b sourceJSON) int {
		return strings.Compare(a.Path, b.Path)
	})

	if format == FormatJSON {
		if sources == nil {
			sources = []sourceJSON{}
		}
		return multierr.Append(errs, json.NewEncoder(w).Encode(sources))
	}
	if len(sources) > 0 {
		lines := f.Map(sources, func(s sourceJSON) string {
			return fmt.Sprintf("%s\t%s\t%d", s.Path, s.Mode, s.Spectra)
		})
		_, _ = fmt.Fprintln(w, joinFor(format, lines))
	}
	return errs
}

func modeName(df *dta.File) string {
	if df.IsDirectory() {
		return "directory"
	}
	return "file"
}
