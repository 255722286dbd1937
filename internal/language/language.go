// Package language holds the output languages an itinerary can be written in,
// together with the writing system each one needs when it is rendered.
package language

import (
	"strings"

	"golang.org/x/text/language"
)

// Script identifies the writing system a language is printed in.
type Script string

const (
	ScriptLatin      Script = "latin"
	ScriptCyrillic   Script = "cyrillic"
	ScriptDevanagari Script = "devanagari"
	ScriptBengali    Script = "bengali"
)

// Language is a supported output language.
type Language struct {
	Name   string
	Tag    language.Tag
	Script Script
}

// Code returns the BCP 47 code of the language (e.g. "bn").
func (l Language) Code() string {
	return l.Tag.String()
}

// Default is used when a request does not name a language.
var Default = Language{Name: "English", Tag: language.English, Script: ScriptLatin}

var supported = []Language{
	Default,
	{Name: "Spanish", Tag: language.Spanish, Script: ScriptLatin},
	{Name: "French", Tag: language.French, Script: ScriptLatin},
	{Name: "German", Tag: language.German, Script: ScriptLatin},
	{Name: "Italian", Tag: language.Italian, Script: ScriptLatin},
	{Name: "Portuguese", Tag: language.Portuguese, Script: ScriptLatin},
	{Name: "Dutch", Tag: language.Dutch, Script: ScriptLatin},
	{Name: "Indonesian", Tag: language.Indonesian, Script: ScriptLatin},
	{Name: "Russian", Tag: language.Russian, Script: ScriptCyrillic},
	{Name: "Hindi", Tag: language.Hindi, Script: ScriptDevanagari},
	{Name: "Bengali", Tag: language.Bengali, Script: ScriptBengali},
}

// Index maps built at init time.
var (
	byName map[string]Language
	byCode map[string]Language
)

func init() {
	byName = make(map[string]Language, len(supported))
	byCode = make(map[string]Language, len(supported))
	for _, l := range supported {
		byName[strings.ToLower(l.Name)] = l
		byCode[l.Code()] = l
	}
}

// Lookup resolves a language by display name ("Bengali") or code ("bn"),
// ignoring case and surrounding whitespace.
func Lookup(s string) (Language, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return Language{}, false
	}
	if l, ok := byName[key]; ok {
		return l, true
	}
	l, ok := byCode[key]
	return l, ok
}

// Supported returns every supported language in display order.
func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

// Names returns the display names of all supported languages.
func Names() []string {
	names := make([]string, len(supported))
	for i, l := range supported {
		names[i] = l.Name
	}
	return names
}
