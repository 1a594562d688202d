// Package main is the entry point for the tsguard CLI.
package main

import "tsguard.dev/pkg/tsguard/cmd"

func main() {
	cmd.Execute()
}
