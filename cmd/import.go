/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"github.com/gnames/brewdb/internal/ioload"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command for a single file.
func getImportCmd() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import FILE UID",
		Short: "Import one recipe file",
		Long: `Import parses a BeerXML, BeerSmith or MMuM recipe file and saves
it under UID. The UID has the form "source:id", e.g. "mmum:42".

The format is detected from the file unless --format is given. An
already imported recipe is kept unless --replace is set.

Examples:
  brewdb import hell.xml brewtoad:1234
  brewdb import 42.json mmum:42 --format mmum --replace`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, replaceFlag, formatFlag)
			err := runImport(cmd, args[0], args[1])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addImportFlags(importCmd)
	return importCmd
}

// getImportDirCmd returns the import-dir command.
func getImportDirCmd() *cobra.Command {
	importDirCmd := &cobra.Command{
		Use:   "import-dir DIR SOURCE",
		Short: "Import all recipe files of a directory",
		Long: `Import-dir imports every recipe file of DIR. The UID of a recipe
is SOURCE joined with the file name without extension, so
"42.json" in source "mmum" becomes "mmum:42".

Files are parsed concurrently by --jobs workers. A file that fails to
parse or validate is logged and skipped.

Examples:
  brewdb import-dir ~/recipes/mmum mmum -j 8`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, replaceFlag, formatFlag, jobsFlag)
			err := runImportDir(cmd, args[0], args[1])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addImportFlags(importDirCmd)
	importDirCmd.Flags().IntP("jobs", "j", 0,
		"number of parsing workers (default from config)")
	return importDirCmd
}

func addImportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("replace", "r", false,
		"replace recipes that are already imported")
	cmd.Flags().StringP("format", "F", "",
		"recipe format: beerxml, beersmith or mmum")
}

func runImport(cmd *cobra.Command, path, uid string) error {
	ctx := cmd.Context()

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	rec, imported, err := ioload.NewFileProcessor(cfg, db).ImportFile(ctx, path, uid)
	if err != nil {
		return err
	}

	if !imported {
		gn.Info("Recipe <em>%s</em> already exists, use --replace to import it again", uid)
		return nil
	}
	name := uid
	if rec.Name != nil {
		name = *rec.Name
	}
	gn.Info("Imported <em>%s</em> as <em>%s</em>", name, uid)
	return nil
}

func runImportDir(cmd *cobra.Command, dir, source string) error {
	ctx := cmd.Context()

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := ioload.NewFileProcessor(cfg, db).ImportDir(ctx, dir, source)
	if err != nil {
		return err
	}
	if stats.Failed > 0 {
		gn.Warn("%d files failed, see the log for details", stats.Failed)
	}
	return nil
}
