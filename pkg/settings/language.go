package settings

import (
	"fmt"
	"strings"

	"github.com/aretw0/datastore/pkg/core"
)

// Language is the user interface language. The zero value is English.
type Language int

const (
	English Language = iota
	German
	Spanish
)

var languageNames = [...]string{
	English: "ENGLISH",
	German:  "GERMAN",
	Spanish: "SPANISH",
}

// Languages returns every supported language in declaration order.
func Languages() []Language {
	return []Language{English, German, Spanish}
}

// ParseLanguage resolves a language by name, ignoring case.
func ParseLanguage(name string) (Language, error) {
	for i, n := range languageNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Language(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown language %q", core.ErrValidation, name)
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l >= English && int(l) < len(languageNames)
}

func (l Language) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Language(%d)", int(l))
	}
	return languageNames[l]
}

// MarshalText implements encoding.TextMarshaler.
func (l Language) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid language %d", int(l))
	}
	return []byte(languageNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Language) UnmarshalText(text []byte) error {
	parsed, err := ParseLanguage(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
