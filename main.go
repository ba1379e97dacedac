package main

import "github.com/xll-gen/bundlefile/cmd"

// main is the entry point of the bundlefile CLI.
// It executes the root command which handles argument parsing and subcommand dispatch.
func main() {
	cmd.Execute()
}
