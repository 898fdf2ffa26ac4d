// Package cmd implements the CLI command for the codemancer application.
//
// # Architecture
//
//   - root.go: Main entry point, App struct, cobra command setup, and flags
//   - args.go: Resolution of the positional `[inputs] [prompt...]` arguments
//   - run.go: One run from prompt assembly to applying the code blocks
//
// # Flow
//
// A run validates the configuration, reads the input files into the prompt,
// streams the completion to the terminal, extracts the fenced code blocks
// and hands them to the apply engine, which asks before writing each block
// to its output file or running it as a bash command.
//
// Every fatal error is returned from the cobra RunE and printed in red by
// Execute before exiting with status 1.
//
// # Usage
//
//	// Main entry point
//	func main() {
//	    cmd.Execute()
//	}
package cmd
