// Package assets provides embedded static files for the application.
// Using Go's embed package allows for single-binary deployment without
// external file dependencies.
package assets

import (
	"bytes"
	"embed"
	"html"
	"html/template"
	"regexp"
)

// Templates embeds all HTML templates.
//
//go:embed templates/*.html
var Templates embed.FS

// DemoBoxSelector selects the scrolling box of the demo page.
const DemoBoxSelector = "#scrolling-box"

// GetTemplate parses and returns a named template from the embedded filesystem.
func GetTemplate(name string) (*template.Template, error) {
	return template.ParseFS(Templates, "templates/"+name)
}

// versionSanitizer keeps alphanumerics, dots, dashes, underscores and plus signs.
var versionSanitizer = regexp.MustCompile(`[^a-zA-Z0-9.\-_+]`)

// SanitizeVersion strips a build version down to safe characters.
// Returns "unknown" if the result is empty after sanitization.
func SanitizeVersion(version string) string {
	escaped := html.EscapeString(version)
	sanitized := versionSanitizer.ReplaceAllString(escaped, "")
	if sanitized == "" {
		return "unknown"
	}
	if len(sanitized) > 100 {
		sanitized = sanitized[:100]
	}
	return sanitized
}

// DemoPageData configures the demo page.
type DemoPageData struct {
	Version    string
	ItemCount  int
	ItemHeight int
	BoxHeight  int
	Easings    []string
}

// Items returns the 1-based item numbers.
func (d DemoPageData) Items() []int {
	items := make([]int, d.ItemCount)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

// DefaultDemoPageData returns a page with 100 items of 40px in a 400px box.
func DefaultDemoPageData() DemoPageData {
	return DemoPageData{
		Version:    "dev",
		ItemCount:  100,
		ItemHeight: 40,
		BoxHeight:  400,
	}
}

var demoPageTemplate = template.Must(GetTemplate("demo.html"))

// RenderDemoPage renders the demo page: a positioned scrolling box
// (DemoBoxSelector) holding numbered items with ids "item-N".
func RenderDemoPage(data DemoPageData) (string, error) {
	data.Version = SanitizeVersion(data.Version)

	var buf bytes.Buffer
	if err := demoPageTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
