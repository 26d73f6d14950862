// Package main is the entry point for the cs2kt CLI.
package main

import "cs2kt.dev/pkg/cs2kt/cmd"

func main() {
	cmd.Execute()
}
