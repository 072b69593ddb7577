package ioload

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/brewdb/pkg/config"
	"github.com/gnames/brewdb/pkg/format"
	"github.com/gnames/brewdb/pkg/format/beersmith"
	"github.com/gnames/brewdb/pkg/format/beerxml"
	"github.com/gnames/brewdb/pkg/format/mmum"
	"github.com/gnames/brewdb/pkg/schema"
	"github.com/gnames/brewdb/pkg/store"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"
)

// recipeExts are file extensions picked up by ImportDir.
var recipeExts = []string{".xml", ".beerxml", ".bsmx", ".json"}

// FileProcessor imports recipe files and applies the duplicate policy:
// an existing recipe is kept unless Replace is set, then it is deleted
// and imported again in the same transaction.
type FileProcessor struct {
	store   store.Store
	parsers map[format.Format]format.Parser

	// replace deletes existing recipes before import.
	replace bool

	// format is used for all files when set.
	format format.Format

	jobs int
}

// Stats summarizes a directory import.
type Stats struct {
	Files    int
	Imported int
	Skipped  int
	Failed   int
	Duration time.Duration
}

// NewFileProcessor creates a FileProcessor with all known parsers.
func NewFileProcessor(cfg *config.Config, st store.Store) *FileProcessor {
	res := &FileProcessor{
		store:   st,
		parsers: make(map[format.Format]format.Parser),
		replace: cfg.Import.Replace,
		format:  format.Format(cfg.Import.Format),
		jobs:    max(cfg.JobsNumber, 1),
	}
	for _, p := range []format.Parser{beersmith.New(), beerxml.New(), mmum.New()} {
		res.parsers[p.Format()] = p
	}
	return res
}

// ParseFile reads and parses a recipe file.
func (p *FileProcessor) ParseFile(path string) (*format.ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}

	f := p.format
	if f == format.Unknown {
		f = format.Detect(path, data)
	}
	parser, ok := p.parsers[f]
	if !ok {
		return nil, format.UnknownFormatError(path)
	}
	return parser.Parse(data)
}

// ImportFile imports one file under the given UID. It returns the
// stored recipe and false if the recipe existed and was left untouched.
func (p *FileProcessor) ImportFile(
	ctx context.Context,
	path, uid string,
) (*schema.Recipe, bool, error) {
	return p.importWith(ctx, uid, func() (*format.ParseResult, error) {
		return p.ParseFile(path)
	})
}

func (p *FileProcessor) importWith(
	ctx context.Context,
	uid string,
	parse func() (*format.ParseResult, error),
) (*schema.Recipe, bool, error) {
	if _, _, err := SplitUID(uid); err != nil {
		return nil, false, err
	}

	var rec *schema.Recipe
	var imported bool
	err := p.store.Transaction(ctx, func(tx store.Session) error {
		exists, err := tx.RecipeExists(ctx, uid)
		if err != nil {
			return err
		}
		if exists && !p.replace {
			rec, err = tx.GetRecipe(ctx, uid)
			return err
		}

		res, err := parse()
		if err != nil {
			return err
		}
		if exists {
			slog.Info("Replacing recipe", "uid", uid)
			if err = tx.DeleteRecipe(ctx, uid); err != nil {
				return err
			}
		}
		rec, err = importTx(ctx, tx, uid, res)
		imported = err == nil
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return rec, imported, nil
}

// parsed is a recipe file after the parsing stage.
type parsed struct {
	path string
	uid  string
	res  *format.ParseResult
	err  error
}

// ImportDir imports all recipe files of a directory. UIDs are made of
// the source and file names without extension. Files are parsed
// concurrently and saved one by one; a failed file is logged and
// counted, it does not stop the import.
func (p *FileProcessor) ImportDir(
	ctx context.Context,
	dir, source string,
) (Stats, error) {
	start := time.Now()
	paths, err := recipeFiles(dir)
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{Files: len(paths)}
	if len(paths) == 0 {
		gn.Warn("No recipe files found in <em>%s</em>", dir)
		return stats, nil
	}

	chIn := make(chan string)
	chOut := make(chan parsed)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(chIn)
		for _, v := range paths {
			select {
			case chIn <- v:
			case <-gCtx.Done():
				return gCtx.Err()
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for range p.jobs {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return p.parseWorker(gCtx, source, chIn, chOut)
		})
	}

	go func() {
		wg.Wait()
		close(chOut)
	}()

	g.Go(func() error {
		return p.saveParsed(gCtx, chOut, &stats)
	})

	if err := g.Wait(); err != nil {
		return stats, err
	}

	stats.Duration = time.Since(start)
	slog.Info("Imported recipe directory",
		"dir", dir,
		"files", stats.Files,
		"imported", stats.Imported,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	gn.Info("Imported <em>%s</em> of %s recipes in %s",
		humanize.Comma(int64(stats.Imported)),
		humanize.Comma(int64(stats.Files)),
		gnfmt.TimeString(stats.Duration.Seconds()),
	)
	return stats, nil
}

func (p *FileProcessor) parseWorker(
	ctx context.Context,
	source string,
	chIn <-chan string,
	chOut chan<- parsed,
) error {
	for path := range chIn {
		name := filepath.Base(path)
		uid := source + ":" + strings.TrimSuffix(name, filepath.Ext(name))
		res, err := p.ParseFile(path)
		select {
		case chOut <- parsed{path: path, uid: uid, res: res, err: err}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (p *FileProcessor) saveParsed(
	ctx context.Context,
	chOut <-chan parsed,
	stats *Stats,
) error {
	bar := newProgressBar(stats.Files, "Recipes: ")
	defer bar.Finish()

	for v := range chOut {
		bar.Increment()
		if v.err != nil {
			stats.Failed++
			slog.Warn("Cannot parse recipe file", "path", v.path, "error", v.err)
			continue
		}

		res := v.res
		_, imported, err := p.importWith(ctx, v.uid,
			func() (*format.ParseResult, error) { return res, nil })
		switch {
		case ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			stats.Failed++
			slog.Warn("Cannot import recipe", "path", v.path,
				"error", RecipeImportError(v.path, err))
		case imported:
			stats.Imported++
		default:
			stats.Skipped++
		}
	}
	return nil
}

func recipeFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ReadFileError(dir, err)
	}

	var res []string
	for _, v := range entries {
		if v.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(v.Name()))
		if slices.Contains(recipeExts, ext) {
			res = append(res, filepath.Join(dir, v.Name()))
		}
	}
	return res, nil
}

func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}

// String renders stats for logs and messages.
func (s Stats) String() string {
	return fmt.Sprintf("files: %d, imported: %d, skipped: %d, failed: %d",
		s.Files, s.Imported, s.Skipped, s.Failed)
}
