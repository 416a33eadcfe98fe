package transcription

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ErrUnknownLanguage is returned for language names or tags that cannot be resolved.
var ErrUnknownLanguage = errors.New("unknown language")

// Language is a transcription target language.
type Language struct {
	Tag language.Tag
	// Name is the English display name used in model instructions.
	Name string
}

// Code returns the ISO 639-1 (or closest) base language code, e.g. "es".
func (l Language) Code() string {
	base, _ := l.Tag.Base()
	return base.String()
}

// Native returns the language's name in itself, e.g. "español".
func (l Language) Native() string {
	return display.Self.Name(l.Tag)
}

func (l Language) String() string {
	return l.Name
}

// supportedTags is the selectable set, in presentation order.
var supportedTags = []language.Tag{
	language.English,
	language.Spanish,
	language.French,
	language.German,
	language.Italian,
	language.Portuguese,
	language.Dutch,
	language.Polish,
	language.Swedish,
	language.Russian,
	language.Ukrainian,
	language.Turkish,
	language.Arabic,
	language.Hindi,
	language.Indonesian,
	language.Vietnamese,
	language.Japanese,
	language.Korean,
	language.Chinese,
}

// English is the default target language.
var English = newLanguage(language.English)

func newLanguage(tag language.Tag) Language {
	return Language{Tag: tag, Name: display.English.Tags().Name(tag)}
}

// SupportedLanguages lists the languages offered for selection.
func SupportedLanguages() []Language {
	out := make([]Language, len(supportedTags))
	for i, tag := range supportedTags {
		out[i] = newLanguage(tag)
	}

	return out
}

// ParseLanguage resolves an English display name ("Spanish") or a BCP 47
// tag ("es", "pt-BR"). Matching is case-insensitive.
func ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Language{}, fmt.Errorf("%w: empty", ErrUnknownLanguage)
	}

	for _, lang := range SupportedLanguages() {
		if strings.EqualFold(lang.Name, s) {
			return lang, nil
		}
	}

	tag, err := language.Parse(s)
	if err != nil {
		return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
	}

	lang := newLanguage(tag)
	if lang.Name == "" {
		return Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
	}

	return lang, nil
}
