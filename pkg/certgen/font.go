package certgen

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

type FontWeight string

const (
	FontWeightRegular FontWeight = "regular"
	FontWeightBold    FontWeight = "bold"
	FontWeightItalic  FontWeight = "italic"
)

// Get font style of canvas type
func (w FontWeight) FontStyle() canvas.FontStyle {
	switch w {
	case FontWeightBold:
		return canvas.FontBold
	case FontWeightItalic:
		return canvas.FontRegular | canvas.FontItalic
	default:
		return canvas.FontRegular
	}
}

func fontWeightFromSubfamily(subfamily string) FontWeight {
	s := strings.ToLower(subfamily)
	switch {
	case strings.Contains(s, "bold"):
		return FontWeightBold
	case strings.Contains(s, "italic"), strings.Contains(s, "oblique"):
		return FontWeightItalic
	default:
		return FontWeightRegular
	}
}

// DefaultFontFamily names the embedded Go TrueType faces.
const DefaultFontFamily = "Go"

type FontMetadata struct {
	Name   string     `json:"name"`
	Weight FontWeight `json:"weight"`
	Path   string     `json:"path"`
}

func getFontMetadataByPath(fontPath string) (*FontMetadata, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	font, err := sfnt.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	name, err := font.Name(nil, sfnt.NameIDFamily)
	if err != nil {
		return nil, fmt.Errorf("retrieving font name: %w", err)
	}

	// Subfamily is optional, a missing entry means regular
	subfamily, _ := font.Name(nil, sfnt.NameIDSubfamily)

	return &FontMetadata{
		Name:   name,
		Weight: fontWeightFromSubfamily(subfamily),
		Path:   fontPath,
	}, nil
}

// Scan through the directory to process .ttf and .otf files.
func ScanFontDir(dir string) ([]FontMetadata, error) {
	var fonts []FontMetadata

	err := filepath.Walk(dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(info.Name()))
		if ext != ".ttf" && ext != ".otf" {
			return nil
		}

		meta, err := getFontMetadataByPath(path)
		if err != nil {
			log.Printf("Skipping %q: %v", path, err)
			return nil
		}

		fonts = append(fonts, *meta)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return fonts, nil
}

// List the available font family and its path
func GetAvailableFonts(path string) ([]*FontMetadata, error) {
	var fonts []*FontMetadata

	data, err := os.ReadFile(path)
	if err != nil {
		return fonts, fmt.Errorf("error reading %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &fonts); err != nil {
		return fonts, fmt.Errorf("error unmarshalling font metadata: %w", err)
	}

	return fonts, nil
}

type FontLoader struct {
	AvailableFonts []*FontMetadata
}

// NewFontLoader reads the metadata written by ScanFontDir. An empty path
// gives a loader that only knows the embedded family.
func NewFontLoader(metadataPath string) (*FontLoader, error) {
	if metadataPath == "" {
		return &FontLoader{}, nil
	}

	fonts, err := GetAvailableFonts(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load font metadata: %w", err)
	}

	return &FontLoader{AvailableFonts: fonts}, nil
}

// LoadFamily loads every weight of a family. Weights the metadata does not
// list fall back to the regular face of the family.
func (fl *FontLoader) LoadFamily(name string) (*canvas.FontFamily, error) {
	if name == "" || name == DefaultFontFamily {
		return LoadDefaultFontFamily()
	}

	files := make(map[FontWeight]string)
	for _, font := range fl.AvailableFonts {
		if font.Name == name {
			if _, exists := files[font.Weight]; !exists {
				files[font.Weight] = font.Path
			}
		}
	}

	regular, ok := files[FontWeightRegular]
	if !ok {
		return nil, fmt.Errorf("font %s not found", name)
	}

	family := canvas.NewFontFamily(name)
	for _, weight := range []FontWeight{FontWeightRegular, FontWeightBold, FontWeightItalic} {
		path, ok := files[weight]
		if !ok {
			path = regular
		}
		if err := family.LoadFontFile(path, weight.FontStyle()); err != nil {
			return nil, fmt.Errorf("failed to load font file %s: %w", path, err)
		}
	}

	return family, nil
}

// LoadDefaultFontFamily loads the embedded Go faces. They are TrueType
// outlines, which the canvas rasterizer handles for every glyph.
func LoadDefaultFontFamily() (*canvas.FontFamily, error) {
	family := canvas.NewFontFamily(DefaultFontFamily)

	faces := []struct {
		weight FontWeight
		data   []byte
	}{
		{FontWeightRegular, goregular.TTF},
		{FontWeightBold, gobold.TTF},
		{FontWeightItalic, goitalic.TTF},
	}

	for _, f := range faces {
		if err := family.LoadFont(f.data, 0, f.weight.FontStyle()); err != nil {
			return nil, fmt.Errorf("failed to load embedded %s font: %w", f.weight, err)
		}
	}

	return family, nil
}
