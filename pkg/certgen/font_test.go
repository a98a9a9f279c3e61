package certgen

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/canvas"
)

func TestFontWeightFromSubfamily(t *testing.T) {
	tests := []struct {
		subfamily string
		expected  FontWeight
	}{
		{"Regular", FontWeightRegular},
		{"Bold", FontWeightBold},
		{"Bold Italic", FontWeightBold},
		{"Italic", FontWeightItalic},
		{"Oblique", FontWeightItalic},
		{"", FontWeightRegular},
	}

	for _, tt := range tests {
		t.Run(tt.subfamily, func(t *testing.T) {
			if got := fontWeightFromSubfamily(tt.subfamily); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestFontWeightFontStyle(t *testing.T) {
	if FontWeightBold.FontStyle() != canvas.FontBold {
		t.Error("expected bold style")
	}
	if FontWeightItalic.FontStyle()&canvas.FontItalic == 0 {
		t.Error("expected italic style")
	}
	if FontWeight("unknown").FontStyle() != canvas.FontRegular {
		t.Error("expected regular style for unknown weight")
	}
}

func TestLoadFamily(t *testing.T) {
	loader, err := NewFontLoader("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"", DefaultFontFamily} {
		family, err := loader.LoadFamily(name)
		if err != nil {
			t.Fatalf("LoadFamily(%q): unexpected error: %v", name, err)
		}
		if family == nil {
			t.Fatalf("LoadFamily(%q): expected a family", name)
		}
	}

	if _, err := loader.LoadFamily("Comic Sans MS"); err == nil {
		t.Error("expected an error for an unknown family")
	}
}

func TestNewFontLoaderMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "font_metadata.json")
	data := `[{"name":"Serif","weight":"bold","path":"/fonts/serif-bold.ttf"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loader, err := NewFontLoader(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loader.AvailableFonts) != 1 || loader.AvailableFonts[0].Weight != FontWeightBold {
		t.Fatalf("unexpected fonts %+v", loader.AvailableFonts)
	}

	// only a bold face is listed, regular is required
	if _, err := loader.LoadFamily("Serif"); err == nil {
		t.Error("expected an error without a regular face")
	}

	if _, err := NewFontLoader(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected an error for a missing metadata file")
	}
}

func TestScanFontDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not a font"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// unparseable fonts are skipped
	if err := os.WriteFile(filepath.Join(dir, "broken.ttf"), []byte("garbage"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fonts, err := ScanFontDir(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fonts) != 0 {
		t.Errorf("expected no fonts, got %+v", fonts)
	}
}

func TestDefaultFontRasterizesCaptions(t *testing.T) {
	tr := newTestRenderer(t, ClassicLayout(), RenderOptions{})

	var captions []string
	for _, l := range []Layout{ClassicLayout(), ModernLayout()} {
		for _, certificateType := range []string{"Completion", "Achievement", "Excellence", "Participation"} {
			captions = append(captions, fmt.Sprintf(l.Title.Text, certificateType))
		}
		captions = append(captions,
			l.CertifyCaption.Text,
			l.CourseCaption.Text,
			l.InstructorCaption.Text,
			fmt.Sprintf(l.IssueDate.Text, "November 15, 2025"),
			l.SignatureCaption.Text,
		)
	}
	captions = append(captions,
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"abcdefghijklmnopqrstuvwxyz",
		"0123456789 .,:-'",
	)

	for _, weight := range []FontWeight{FontWeightRegular, FontWeightBold, FontWeightItalic} {
		for _, caption := range captions {
			t.Run(fmt.Sprintf("%s/%s", weight, caption), func(t *testing.T) {
				defer func() {
					if r := recover(); r != nil {
						t.Fatalf("rasterizing %q panicked: %v", caption, r)
					}
				}()

				s := NewSurface(1122, 120)
				face := tr.face(TextStyle{Weight: weight, Size: 24, Color: "#000000"})
				s.Text(561, 80, caption, face)
				img := s.Rasterize(1)

				dark := false
				for i := 0; i < len(img.Pix) && !dark; i += 4 {
					dark = img.Pix[i+3] > 0 && img.Pix[i] < 128
				}
				if !dark {
					t.Errorf("expected %q to leave ink on the surface", caption)
				}
			})
		}
	}
}
