package certgen

type Config struct {
	// A path to json where it store font name and path to the font file, written by ScanFontDir.
	// Empty means only the embedded font is available.
	FontMetadataPath string
	// Font family used for every line, empty selects the embedded Go faces
	FontFamily string
	// Layout name, see LayoutByName
	Layout string
	// Rasterization scale used by the exporter
	Scale float64
}

func NewDefaultConfig() *Config {
	return &Config{
		FontFamily: DefaultFontFamily,
		Layout:     LayoutClassic,
		Scale:      DefaultScale,
	}
}
