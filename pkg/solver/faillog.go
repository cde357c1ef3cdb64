package solver

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// FailureLog is an append-only record of locators whose fetch retries
// were exhausted, one url per line. Deleting the file is safe; it only
// forgets past failures.
type FailureLog struct {
	path string
}

// NewFailureLog creates a failure log writing to path
func NewFailureLog(path string) *FailureLog {
	return &FailureLog{path: path}
}

// Append records a failed url
func (f *FailureLog) Append(url string) error {
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open failure log: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, url); err != nil {
		return fmt.Errorf("failed to write failure log: %w", err)
	}

	return nil
}

// URLs returns all recorded urls in order. A missing file yields an
// empty list.
func (f *FailureLog) URLs() ([]string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open failure log: %w", err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read failure log: %w", err)
	}

	return urls, nil
}
