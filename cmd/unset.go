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

// getUnsetCmd returns the unset command.
func getUnsetCmd() *cobra.Command {
	unsetCmd := &cobra.Command{
		Use:   "unset KIND ID",
		Short: "Remove links of recipe rows to a catalog record",
		Long: `Unset clears the link of every recipe row of KIND that points to
the catalog record ID. Use it after a wrong match, then fix the
catalog and run 'brewdb map' again.

Examples:
  brewdb unset hop cascade
  brewdb unset style 21A`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runUnset(cmd, args[0], args[1])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	return unsetCmd
}

func runUnset(cmd *cobra.Command, arg, id string) error {
	ctx := cmd.Context()

	kind, ok := schema.ParseKind(arg)
	if !ok {
		return iomap.MappingKindError(schema.Kind(arg))
	}

	db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = iomap.New(cfg, db).Unset(ctx, kind, id)
	return err
}
