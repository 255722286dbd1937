package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/phpdave11/gofpdf"

	"github.com/Yates-Labs/roam/internal/language"
)

// Font files looked up in the configured font directory, per script.
var scriptFonts = map[language.Script]fontFile{
	language.ScriptLatin:      {Family: "DejaVuSans", File: "DejaVuSans.ttf"},
	language.ScriptCyrillic:   {Family: "DejaVuSans", File: "DejaVuSans.ttf"},
	language.ScriptDevanagari: {Family: "NotoSansDevanagari", File: "NotoSansDevanagari-Regular.ttf"},
	language.ScriptBengali:    {Family: "NotoSansBengali", File: "NotoSansBengali-Regular.ttf"},
}

type fontFile struct {
	Family string
	File   string
}

// FontFor returns the font file that can print lang's script.
func FontFor(lang language.Language) (family, file string) {
	f, ok := scriptFonts[lang.Script]
	if !ok {
		f = scriptFonts[language.ScriptLatin]
	}
	return f.Family, f.File
}

// Typeface is what a strategy installed on a document.
type Typeface struct {
	Family string

	// Sanitize is set when the face cannot print arbitrary Unicode and text
	// must go through Sanitize first.
	Sanitize bool
}

// FontStrategy is one link of the font-fallback chain. Apply registers its
// fonts on pdf or reports why it cannot.
type FontStrategy interface {
	Name() string
	Apply(pdf *gofpdf.Fpdf) (Typeface, error)
}

// UTF8FontStrategy embeds a TrueType font from dir.
type UTF8FontStrategy struct {
	Dir    string
	Family string
	File   string
}

func (s UTF8FontStrategy) Name() string { return s.File }

func (s UTF8FontStrategy) Apply(pdf *gofpdf.Fpdf) (Typeface, error) {
	if s.Dir == "" {
		return Typeface{}, fmt.Errorf("%w: no font directory configured for %s", ErrFontUnavailable, s.File)
	}
	path := filepath.Join(s.Dir, s.File)
	if _, err := os.Stat(path); err != nil {
		return Typeface{}, fmt.Errorf("%w: %v", ErrFontUnavailable, err)
	}

	// The same face doubles as bold; fonts ship as a single regular file.
	pdf.AddUTF8Font(s.Family, "", s.File)
	pdf.AddUTF8Font(s.Family, "B", s.File)
	if pdf.Err() {
		return Typeface{}, fmt.Errorf("%w: loading %s: %v", ErrFontUnavailable, s.File, pdf.Error())
	}
	return Typeface{Family: s.Family}, nil
}

// CoreFontStrategy uses a font built into every PDF reader. It never fails but
// can only print Latin text, so it requires sanitising.
type CoreFontStrategy struct {
	Family string
}

func (s CoreFontStrategy) Name() string { return s.Family }

func (s CoreFontStrategy) Apply(pdf *gofpdf.Fpdf) (Typeface, error) {
	return Typeface{Family: s.Family, Sanitize: true}, nil
}
