package scaffold

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/alexisbeaulieu97/elementkit/internal/dom"
)

var (
	directoryPattern = regexp.MustCompile(`^[a-zA-Z0-9-_]+$`)
	namePattern      = regexp.MustCompile(`^(\w+-)+\w+$`)
)

// Names holds the spellings of a component name substituted into templates.
type Names struct {
	Title  string
	Pascal string
	Snake  string
}

// NewNames derives every spelling from name.
func NewNames(name string) Names {
	return Names{
		Title:  ToTitleFormat(name),
		Pascal: ToPascalCase(name),
		Snake:  ToSnakeCase(name),
	}
}

// ValidDirectory reports whether dir is usable as a project directory name.
func ValidDirectory(dir string) bool {
	return directoryPattern.MatchString(dir)
}

// ValidName reports whether name is hyphenated with at least two words and
// its hyphenated form is a valid custom element tag.
func ValidName(name string) bool {
	return namePattern.MatchString(name) && dom.ValidName(ToSnakeCase(name))
}

// ToTitleFormat turns super-cool-component, superCoolComponent or
// SuperCoolComponent into "Super Cool Component".
func ToTitleFormat(name string) string {
	words := splitWords(name)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

// ToPascalCase turns any supported spelling into SuperCoolComponent.
func ToPascalCase(name string) string {
	words := splitWords(name)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, "")
}

// ToSnakeCase turns any supported spelling into super-cool-component. The
// hyphenated form doubles as the custom element tag.
func ToSnakeCase(name string) string {
	return strings.Join(splitWords(name), "-")
}

// DefaultName proposes a component name for a project directory. Single
// word directories get an "-element" suffix so the result is a valid tag.
func DefaultName(directory string) string {
	name := ToSnakeCase(directory)
	if name == "" {
		return ""
	}
	if !strings.Contains(name, "-") {
		name += "-element"
	}
	return name
}

// splitWords breaks name on hyphens, underscores, spaces and lower-to-upper
// case transitions, returning lower-cased words.
func splitWords(name string) []string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '-' || r == '_' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r) && i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
	}
	flush()
	return words
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
