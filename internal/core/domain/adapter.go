package domain

import (
	"html"
	"path/filepath"
	"regexp"
	"strings"
)

// DataSourceUnknown is declared by adapters whose report files mix data sources.
// Every record such an adapter produces must name its own data source.
const DataSourceUnknown = "Unknown"

// Priority bands used by the built-in adapters.
// Base adapters live between PriorityBaseMin and PriorityBaseMax; custom adapters
// that must run before them should declare PriorityCustom or higher.
const (
	PriorityBaseMin = 10
	PriorityBaseMax = 110
	PriorityCustom  = 200
)

// AdapterInfo is the declarative metadata of an adapter.
// It is read once at registration and never re-evaluated per file.
type AdapterInfo struct {
	// Name uniquely identifies the adapter.
	Name string

	// Description is plain text shown to users.
	// Absolute URLs and line breaks are rendered by RenderDescription.
	Description string

	// Priority controls probe order. Higher probes first.
	Priority int

	// DataSource labels the origin system of the records the adapter produces.
	DataSource string

	// FileExtensions are normalised (lowercase, leading dot).
	FileExtensions []string

	// Version is optional.
	Version string
}

// Handles reports whether the adapter declares the given extension.
func (i AdapterInfo) Handles(ext string) bool {
	ext = NormaliseExtension(ext)
	for _, e := range i.FileExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// NormaliseExtension lowercases an extension and ensures a leading dot.
// Returns "" for a blank extension.
func NormaliseExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	ext = strings.TrimLeft(ext, ".")
	if ext == "" {
		return ""
	}
	return "." + ext
}

// ExtensionOf returns the normalised extension of a file name or path.
func ExtensionOf(fileName string) string {
	return NormaliseExtension(filepath.Ext(fileName))
}

var (
	markupPattern = regexp.MustCompile(`</?[A-Za-z][A-Za-z0-9-]*(\s[^<>]*)?/?>`)
	urlPattern    = regexp.MustCompile(`https?://[^\s<>"]+`)
)

// ValidateDescription rejects descriptions that contain HTML tags.
func ValidateDescription(desc string) error {
	if markupPattern.MatchString(desc) {
		return ErrInvalidInput
	}
	return nil
}

// RenderDescription converts a plain text description to HTML.
// Text is escaped, absolute links become anchors and newlines become <br>.
func RenderDescription(desc string) string {
	var b strings.Builder
	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(desc, -1) {
		b.WriteString(html.EscapeString(desc[last:loc[0]]))
		link := html.EscapeString(desc[loc[0]:loc[1]])
		b.WriteString(`<a href="` + link + `">` + link + `</a>`)
		last = loc[1]
	}
	b.WriteString(html.EscapeString(desc[last:]))

	out := strings.ReplaceAll(b.String(), "\r\n", "\n")
	return strings.ReplaceAll(out, "\n", "<br>")
}
