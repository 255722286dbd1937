// Package export writes a cached itinerary in machine-readable form.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/Yates-Labs/roam/internal/session"
)

// Format is a supported export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatTOML}

// ContentType returns the media type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatTOML:
		return "application/toml"
	default:
		return "application/json"
	}
}

// ParseFormat resolves a format name case-insensitively. An empty name means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatTOML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s (supported: json, toml)", s)
	}
}

// ItineraryExport is the exported view of a cached itinerary.
type ItineraryExport struct {
	Destination string    `json:"destination" toml:"destination"`
	Days        int       `json:"days" toml:"days"`
	Month       string    `json:"month" toml:"month"`
	Budget      string    `json:"budget" toml:"budget"`
	Activities  []string  `json:"activities" toml:"activities"`
	Companion   string    `json:"companion" toml:"companion"`
	Language    string    `json:"language" toml:"language"`
	Model       string    `json:"model,omitempty" toml:"model,omitempty"`
	GeneratedAt time.Time `json:"generated_at" toml:"generated_at"`
	Itinerary   string    `json:"itinerary" toml:"itinerary"`
}

// FromEntry builds the export view of entry.
func FromEntry(entry session.Entry) ItineraryExport {
	req := entry.Request
	activities := make([]string, len(req.Activities))
	for i, a := range req.Activities {
		activities[i] = string(a)
	}

	return ItineraryExport{
		Destination: req.Destination,
		Days:        req.Days,
		Month:       req.Month.String(),
		Budget:      string(req.Budget),
		Activities:  activities,
		Companion:   string(req.Companion),
		Language:    req.Language.Name,
		Model:       entry.Result.Model,
		GeneratedAt: entry.Result.GeneratedAt.UTC(),
		Itinerary:   entry.Result.Text(),
	}
}

// Write exports entry to w in the named format.
func Write(entry session.Entry, format string, w io.Writer) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}

	view := FromEntry(entry)
	switch f {
	case FormatTOML:
		return exportTOML(view, w)
	default:
		return exportJSON(view, w)
	}
}

func exportJSON(view ItineraryExport, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(view); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func exportTOML(view ItineraryExport, w io.Writer) error {
	encoder := toml.NewEncoder(w)
	encoder.SetIndentTables(true)
	if err := encoder.Encode(view); err != nil {
		return fmt.Errorf("failed to encode TOML: %w", err)
	}
	return nil
}
