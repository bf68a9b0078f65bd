package main

import "strconv"

// formatBytes rounds n up to whole kilobytes, the form middleware.BodyLimit parses
func formatBytes(n int64) string {
	const kb = 1024
	return strconv.FormatInt((n+kb-1)/kb, 10) + "K"
}
