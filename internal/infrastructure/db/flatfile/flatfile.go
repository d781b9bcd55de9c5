// Package flatfile persists the registry collections as delimited text
// files, one record per line. Repositories hold the collection in memory
// between an initial Load and an explicit Save; parsing is best-effort and
// malformed lines are dropped without surfacing an error.
package flatfile

import "strings"

const (
	fieldDelimiter = ","
	fileMode       = 0o644
)

// readLines splits raw file contents into lines, dropping blank ones and
// trailing carriage returns.
func readLines(data []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
