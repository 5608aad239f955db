// Package main is the entry point for the vlogstats CLI tool, which computes
// dice statistics, hotness scores and moving-average series from VASL log
// analysis reports.
package main

import "github.com/pacman-ghost/vasl-templates-sub000/cmd"

func main() {
	cmd.Execute()
}
