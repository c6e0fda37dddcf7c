// Package main provides the entry point for the linefreq CLI.
//
// linefreq counts how often each distinct line of a text file occurs and
// prints the lines ranked by frequency, or saves that report to a file.
//
// Usage:
//
//	linefreq [input-file] [output-file]
//	linefreq --config linefreq.yaml
package main

func main() {
	Execute()
}
