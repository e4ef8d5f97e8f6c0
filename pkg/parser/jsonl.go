// Package parser extracts usage events from Claude Code session logs.
//
// Logs are append-only newline-delimited JSON under the projects
// directory. Files may be read while being written, so truncated
// trailing lines and schema drift are expected; any line that does not
// parse is skipped rather than failing the scan.
package parser

import (
	"bufio"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/costguard/costguard/pkg/models"
)

// rawLine mirrors the parts of a session log line this system reads.
// Unknown fields are ignored for forward compatibility.
type rawLine struct {
	Timestamp string `json:"timestamp"`
	SessionID string `json:"sessionId"`
	Message   struct {
		Model string `json:"model"`
		Usage *struct {
			InputTokens              int64 `json:"input_tokens"`
			OutputTokens             int64 `json:"output_tokens"`
			CacheCreationInputTokens int64 `json:"cache_creation_input_tokens"`
			CacheReadInputTokens     int64 `json:"cache_read_input_tokens"`
		} `json:"usage"`
	} `json:"message"`
}

// FindUsageFiles recursively collects all .jsonl files under root.
// A missing root means a fresh installation with no usage yet, so it
// yields an empty list, not an error.
func FindUsageFiles(root string) []string {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && filepath.Ext(path) == ".jsonl" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		log.Debug().Err(err).Str("root", root).Msg("usage file walk ended early")
	}
	return files
}

// ParseFile reads one JSONL file and returns the usage events it
// contains. Malformed lines, lines without usage data, and lines with
// unparsable timestamps are skipped.
func ParseFile(path string) ([]models.UsageEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var events []models.UsageEvent
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var raw rawLine
		if err := json.Unmarshal(line, &raw); err != nil {
			continue
		}
		if raw.Message.Usage == nil {
			continue
		}

		ts, err := time.Parse(time.RFC3339, raw.Timestamp)
		if err != nil {
			continue
		}

		usage := raw.Message.Usage
		events = append(events, models.UsageEvent{
			Timestamp: ts,
			SessionID: raw.SessionID,
			Model:     raw.Message.Model,
			Usage: models.TokenUsage{
				InputTokens:      usage.InputTokens,
				OutputTokens:     usage.OutputTokens,
				CacheWriteTokens: usage.CacheCreationInputTokens,
				CacheReadTokens:  usage.CacheReadInputTokens,
			},
		})
	}

	return events, scanner.Err()
}

// ParseAll reads every usage file under root. A file whose scan ends
// early (unreadable, or a line beyond the scanner cap) is logged but
// still contributes the events parsed before the failure; absence of
// logs yields no events.
func ParseAll(root string) []models.UsageEvent {
	var all []models.UsageEvent
	for _, path := range FindUsageFiles(root) {
		events, err := ParseFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("usage file scan ended early")
		}
		all = append(all, events...)
	}
	return all
}
