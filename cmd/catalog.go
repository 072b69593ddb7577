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
	"github.com/gnames/brewdb/internal/iocatalog"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCatalogCmd returns the catalog command with its subcommands.
func getCatalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the catalog of canonical ingredients and styles",
		Long: `The catalog holds canonical styles, hops, fermentables and yeasts.
Recipe ingredients are linked to catalog records by 'brewdb map'.`,
	}

	loadCmd := &cobra.Command{
		Use:   "load FILE",
		Short: "Load catalog records from a YAML file",
		Long: `Load reads styles, hops, fermentables and yeasts from a YAML file
and saves them in one transaction. Existing records with the same ids
are updated, so the same file can be loaded again after edits.

Examples:
  brewdb catalog load catalog.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runCatalogLoad(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	catalogCmd.AddCommand(loadCmd)
	return catalogCmd
}

func runCatalogLoad(cmd *cobra.Command, path string) error {
	ctx := cmd.Context()

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = iocatalog.New(db).Seed(ctx, path)
	return err
}
