// Package loader reads analysis reports produced by the log-file analyser,
// in its JSON or XML form, and validates every roll value.
package loader

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pacman-ghost/vasl-templates-sub000/internal/model"
)

// ErrUnknownFormat is returned for a file that is neither a JSON nor an XML report.
var ErrUnknownFormat = errors.New("unknown report format")

// File is one loaded report file.
type File struct {
	Path   string
	Hash   string // sha256 of the file contents
	Report *model.Report
}

// LoadFile reads and validates the report at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	r, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f := &File{
		Path:   path,
		Hash:   fmt.Sprintf("%x", sha256.Sum256(data)),
		Report: r,
	}
	log.Debug().
		Str("file", path).
		Str("hash", f.Hash[:12]).
		Int("sources", len(r.LogFiles)).
		Int("rolls", r.RollCount()).
		Int("players", r.Players.Len()).
		Msg("loaded report")
	return f, nil
}

// Load reads every file and merges them into a single report, sources in
// argument order.
func Load(paths ...string) (*model.Report, []*File, error) {
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no report files given")
	}
	files := make([]*File, 0, len(paths))
	reports := make([]*model.Report, 0, len(paths))
	for _, p := range paths {
		f, err := LoadFile(p)
		if err != nil {
			return nil, nil, err
		}
		files = append(files, f)
		reports = append(reports, f.Report)
	}
	merged := Merge(reports...)
	log.Info().
		Int("files", len(files)).
		Int("sources", len(merged.LogFiles)).
		Int("players", merged.Players.Len()).
		Msg("reports loaded")
	return merged, files, nil
}

// Parse decodes a report. ext (".json" or ".xml") picks the format; for any
// other extension the first non-blank byte decides.
func Parse(data []byte, ext string) (*model.Report, error) {
	var (
		r   *model.Report
		err error
	)
	switch strings.ToLower(ext) {
	case ".json":
		r, err = ParseJSON(data)
	case ".xml":
		r, err = ParseXML(data)
	default:
		trimmed := bytes.TrimSpace(data)
		switch {
		case len(trimmed) > 0 && trimmed[0] == '{':
			r, err = ParseJSON(data)
		case len(trimmed) > 0 && trimmed[0] == '<':
			r, err = ParseXML(data)
		default:
			return nil, ErrUnknownFormat
		}
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(r); err != nil {
		return nil, err
	}
	return r, nil
}

// ParseJSON decodes the analyser's JSON report.
func ParseJSON(data []byte) (*model.Report, error) {
	var r model.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse json report: %w", err)
	}
	return &r, nil
}

// Validate rejects unknown event types, roll events without a player, and
// malformed roll values.
func Validate(r *model.Report) error {
	for i, lf := range r.LogFiles {
		for j, ev := range lf.Events {
			switch ev.Type {
			case model.EventRoll:
				if ev.PlayerID == "" {
					return fmt.Errorf("log file %d, event %d: roll has no player", i, j)
				}
				if err := ev.RollValue.Validate(); err != nil {
					return fmt.Errorf("log file %d, event %d: %w", i, j, err)
				}
			case model.EventTurnTrack, model.EventCustomLabel:
			case model.EventLogFile:
				return fmt.Errorf("log file %d, event %d: unexpected log file marker", i, j)
			default:
				return fmt.Errorf("log file %d, event %d: unknown event type %q", i, j, ev.Type)
			}
		}
	}
	return nil
}
