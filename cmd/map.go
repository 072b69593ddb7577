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
	"github.com/gnames/brewdb/internal/iomap"
	"github.com/gnames/brewdb/pkg/schema"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getMapCmd returns the map command.
func getMapCmd() *cobra.Command {
	mapCmd := &cobra.Command{
		Use:   "map KIND",
		Short: "Link recipe ingredients and styles to the catalog",
		Long: `Map resolves recipe rows of KIND against the catalog and saves
the links. KIND is one of style, fermentable, hop, yeast or all.

By default only rows without a link are considered. With --all every
row is resolved again, and rows that no longer match keep their
previous link. Style matches outside of the configured style limits
are rejected.

Examples:
  brewdb map hops
  brewdb map style --fuzzy
  brewdb map all --all --batch-size 500`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			applyFlags(cmd, allFlag, fuzzyFlag, batchSizeFlag)
			err := runMap(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	mapCmd.Flags().BoolP("all", "a", false,
		"map all rows, not only the ones without a link")
	mapCmd.Flags().Bool("fuzzy", false,
		"use fuzzy recipe name matching for styles")
	mapCmd.Flags().IntP("batch-size", "b", 0,
		"rows saved per transaction (default from config)")
	return mapCmd
}

// mapKinds converts the KIND argument to kinds.
func mapKinds(arg string) ([]schema.Kind, error) {
	if arg == "all" {
		return schema.Kinds, nil
	}
	kind, ok := schema.ParseKind(arg)
	if !ok {
		return nil, iomap.MappingKindError(schema.Kind(arg))
	}
	return []schema.Kind{kind}, nil
}

func runMap(cmd *cobra.Command, arg string) error {
	ctx := cmd.Context()

	kinds, err := mapKinds(arg)
	if err != nil {
		return err
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	p := iomap.New(cfg, db)
	for _, kind := range kinds {
		if _, err = p.Map(ctx, kind, cfg.Mapping.All); err != nil {
			return err
		}
	}
	return nil
}
