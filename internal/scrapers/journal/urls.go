package journal

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// ReadURLs reads one url per line, blank lines and lines starting with # are
// skipped. Duplicates keep their first position.
func ReadURLs(r io.Reader) ([]string, error) {
	seen := map[string]bool{}
	var urls []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

func ReadURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadURLs(f)
}
