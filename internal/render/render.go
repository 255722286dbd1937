// Package render turns itinerary text into a PDF. Fonts are chosen per output
// language through an ordered chain of strategies; when no font for the
// language's script is available the renderer falls back to a built-in Latin
// font and strips the text down to printable ASCII.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"

	"github.com/Yates-Labs/roam/internal/language"
)

var (
	ErrRenderingFailed = errors.New("rendering failed")
	ErrEmptyText       = fmt.Errorf("%w: itinerary text is empty", ErrRenderingFailed)
	ErrCacheEmpty      = fmt.Errorf("%w: no itinerary has been generated yet", ErrRenderingFailed)
	ErrNoUsableFont    = fmt.Errorf("%w: no usable font", ErrRenderingFailed)
	ErrFontUnavailable = errors.New("font unavailable")
)

// ContentType is the media type of every rendered document.
const ContentType = "application/pdf"

// Input is everything a document is rendered from.
type Input struct {
	Text        string
	Destination string
	Days        int
	Month       string
	Language    language.Language

	// CreatedAt is stamped into the document metadata. Rendering the same
	// input twice yields identical bytes.
	CreatedAt time.Time
}

// Document is a rendered itinerary.
type Document struct {
	Content     []byte
	Filename    string
	ContentType string
	Title       string

	// Strategy names the font strategy that produced the document.
	Strategy string
	Warnings []string
}

// Degraded reports whether the document was produced by a fallback font.
func (d *Document) Degraded() bool { return len(d.Warnings) > 0 }

// Config controls font lookup.
type Config struct {
	// FontDir holds the TrueType files listed in scriptFonts.
	FontDir string

	// Fallback enables the built-in Latin font when no script font loads.
	Fallback bool

	// Compress toggles stream compression.
	Compress bool
}

// DefaultConfig returns the settings used when none are configured.
func DefaultConfig() Config {
	return Config{
		FontDir:  "assets/fonts",
		Fallback: true,
		Compress: true,
	}
}

// Renderer produces PDF documents. It holds no per-document state.
type Renderer struct {
	config Config
	logger *zap.Logger
}

// NewRenderer creates a renderer.
func NewRenderer(config Config, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{config: config, logger: logger}
}

// Strategies returns the font chain tried for lang, in order.
func (r *Renderer) Strategies(lang language.Language) []FontStrategy {
	family, file := FontFor(lang)
	chain := []FontStrategy{
		UTF8FontStrategy{Dir: r.config.FontDir, Family: family, File: file},
	}
	if r.config.Fallback {
		chain = append(chain, CoreFontStrategy{Family: "Helvetica"})
	}
	return chain
}

// Render builds the document for in. It never writes to disk.
func (r *Renderer) Render(in Input) (*Document, error) {
	if strings.TrimSpace(in.Text) == "" {
		return nil, ErrEmptyText
	}

	title := Title(in)
	var (
		warnings []string
		failures []string
	)

	for _, strategy := range r.Strategies(in.Language) {
		content, err := r.renderWith(strategy, title, in)
		if err != nil {
			r.logger.Warn("font strategy failed",
				zap.String("strategy", strategy.Name()),
				zap.String("language", in.Language.Name),
				zap.Error(err))
			failures = append(failures, fmt.Sprintf("%s: %v", strategy.Name(), err))
			continue
		}

		if len(failures) > 0 {
			warnings = append(warnings, fmt.Sprintf(
				"no %s font available (%s); rendered with %s and removed characters it cannot print",
				in.Language.Name, strings.Join(failures, "; "), strategy.Name()))
		}

		return &Document{
			Content:     content,
			Filename:    Filename(in.Destination),
			ContentType: ContentType,
			Title:       title,
			Strategy:    strategy.Name(),
			Warnings:    warnings,
		}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNoUsableFont, strings.Join(failures, "; "))
}

func (r *Renderer) renderWith(strategy FontStrategy, title string, in Input) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", r.config.FontDir)
	pdf.SetCompression(r.config.Compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(stamp(in.CreatedAt))
	pdf.SetModificationDate(stamp(in.CreatedAt))
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)

	face, err := strategy.Apply(pdf)
	if err != nil {
		return nil, err
	}

	body := in.Text
	if face.Sanitize {
		title = Sanitize(title)
		body = Sanitize(body)
	}

	pdf.SetTitle(title, true)
	pdf.SetCreator("roam", false)
	pdf.AddPage()

	pdf.SetFont(face.Family, "B", 16)
	pdf.MultiCell(0, 10, title, "", "C", false)
	pdf.Ln(6)

	pdf.SetFont(face.Family, "", 12)
	pdf.MultiCell(0, 7, body, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Title is the heading line of the document.
func Title(in Input) string {
	title := fmt.Sprintf("%d-Day Travel Itinerary for %s in %s", in.Days, in.Destination, in.Month)
	if in.Language.Name != "" && in.Language.Name != language.Default.Name {
		title += fmt.Sprintf(" (%s)", in.Language.Name)
	}
	return title
}

// Filename is the suggested download name for a destination.
func Filename(destination string) string {
	part := safeFilenamePart(destination)
	if part == "" {
		part = "Trip"
	}
	return part + "_Itinerary.pdf"
}

// stamp keeps documents reproducible when no timestamp was supplied.
func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return t.UTC()
}
