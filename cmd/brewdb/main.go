// Package main provides the brewdb CLI application.
// brewdb imports brewing recipes and links their ingredients to a
// catalog.
package main

import "github.com/gnames/brewdb/cmd"

func main() {
	cmd.Execute()
}
