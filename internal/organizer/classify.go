package organizer

import (
	"sort"
	"strings"
)

// DefaultCategory is the destination for files whose extension is absent,
// oversized, or unknown.
const DefaultCategory = "Other"

// maxExtensionLength bounds the extension strings the classifier will
// consider. Anything longer is treated as having no extension at all.
const maxExtensionLength = 64

// extensionRule pairs a lowercase extension (without the dot) with the
// category directory it maps to.
type extensionRule struct {
	ext      string
	category string
}

// extensionTable is the built-in extension -> category mapping. Lookup is a
// linear scan and the first match wins, so earlier entries shadow later ones.
var extensionTable = []extensionRule{
	{"jpg", "Images"},
	{"jpeg", "Images"},
	{"png", "Images"},
	{"gif", "Images"},
	{"bmp", "Images"},
	{"tif", "Images"},
	{"tiff", "Images"},
	{"svg", "Images"},

	{"txt", "Documents"},
	{"md", "Documents"},
	{"pdf", "Documents"},
	{"doc", "Documents"},
	{"docx", "Documents"},
	{"rtf", "Documents"},

	{"xls", "Spreadsheets"},
	{"xlsx", "Spreadsheets"},
	{"csv", "Spreadsheets"},

	{"ppt", "Presentations"},
	{"pptx", "Presentations"},

	{"mp3", "Audio"},
	{"wav", "Audio"},
	{"flac", "Audio"},
	{"aac", "Audio"},
	{"ogg", "Audio"},

	{"mp4", "Video"},
	{"mkv", "Video"},
	{"avi", "Video"},
	{"mov", "Video"},
	{"wmv", "Video"},

	{"zip", "Archives"},
	{"rar", "Archives"},
	{"7z", "Archives"},
	{"tar", "Archives"},
	{"gz", "Archives"},

	{"c", "Source"},
	{"h", "Source"},
	{"cpp", "Source"},
	{"hpp", "Source"},
	{"py", "Source"},
	{"java", "Source"},
	{"js", "Source"},
	{"ts", "Source"},
	{"cs", "Source"},
	{"go", "Source"},
	{"rb", "Source"},
	{"php", "Source"},
}

// Classifier maps file extensions to category names.
//
// The rule set is assembled once at construction and never mutated afterwards;
// a Classifier is safe to share across a run.
type Classifier struct {
	rules []extensionRule
}

// NewClassifier creates a Classifier from the built-in table plus optional
// overrides (extension -> category, without the dot).
//
// Overrides are consulted before the built-in rules, so a config entry like
// "svg" -> "Vector" shadows the default mapping. Override keys are sorted for
// deterministic rule order.
func NewClassifier(overrides map[string]string) *Classifier {
	rules := make([]extensionRule, 0, len(overrides)+len(extensionTable))

	keys := make([]string, 0, len(overrides))
	for ext := range overrides {
		keys = append(keys, ext)
	}
	sort.Strings(keys)

	for _, ext := range keys {
		rules = append(rules, extensionRule{
			ext:      strings.ToLower(ext),
			category: overrides[ext],
		})
	}
	rules = append(rules, extensionTable...)

	return &Classifier{rules: rules}
}

// Category returns the category name for the given extension (without the
// dot), matched case-insensitively.
//
// An absent, empty, oversized, or unmatched extension resolves to
// [DefaultCategory].
func (c *Classifier) Category(ext string) string {
	if ext == "" || len(ext) > maxExtensionLength {
		return DefaultCategory
	}

	ext = strings.ToLower(ext)
	for _, rule := range c.rules {
		if rule.ext == ext {
			return rule.category
		}
	}

	return DefaultCategory
}

// ExtensionOf derives the extension of a filename: everything after the last
// dot.
//
// Dotless names and dotfiles ("Makefile", ".bashrc") have no extension and
// return the empty string.
func ExtensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return ""
	}
	return name[idx+1:]
}
