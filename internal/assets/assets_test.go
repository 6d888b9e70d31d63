package assets

import (
	"strings"
	"testing"
)

func TestSanitizeVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1.2.3", "1.2.3"},
		{"v1.0.0-rc.1+build_7", "v1.0.0-rc.1+build_7"},
		{"<script>alert(1)</script>", "ltscriptgtalert1ltscriptgt"},
		{"", "unknown"},
		{"!!!", "unknown"},
		{strings.Repeat("a", 150), strings.Repeat("a", 100)},
	}
	for _, tt := range tests {
		if got := SanitizeVersion(tt.in); got != tt.want {
			t.Errorf("SanitizeVersion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderDemoPage(t *testing.T) {
	data := DefaultDemoPageData()
	data.ItemCount = 12
	data.Version = "1.0.0"
	data.Easings = []string{"cubic.in", "linear.none"}

	page, err := RenderDemoPage(data)
	if err != nil {
		t.Fatalf("RenderDemoPage() error = %v", err)
	}

	if !strings.Contains(page, `id="scrolling-box"`) {
		t.Error("Expected the scrolling box")
	}
	if got := strings.Count(page, "<li "); got != 12 {
		t.Errorf("Expected 12 items, got %d", got)
	}
	if !strings.Contains(page, `id="item-12"`) || strings.Contains(page, `id="item-13"`) {
		t.Error("Expected items numbered 1 to 12")
	}
	if !strings.Contains(page, "cubic.in, linear.none") {
		t.Error("Expected the easing list")
	}
	if !strings.Contains(page, "Pisces 1.0.0") {
		t.Error("Expected the version in the footer")
	}
}

func TestGetTemplate(t *testing.T) {
	tmpl, err := GetTemplate("demo.html")
	if err != nil {
		t.Fatalf("GetTemplate() error = %v", err)
	}
	if tmpl.Name() != "demo.html" {
		t.Errorf("Expected template demo.html, got %q", tmpl.Name())
	}
	if _, err := GetTemplate("missing.html"); err == nil {
		t.Error("Expected an error for a missing template")
	}
}
