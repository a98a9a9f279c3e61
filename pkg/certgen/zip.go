package certgen

import (
	"archive/zip"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

const ArchiveName = "certificates.zip"

type ZipEntry struct {
	Name     string
	Data     []byte
	Modified time.Time
}

func addEntryToZip(archive *zip.Writer, entry ZipEntry) error {
	header := &zip.FileHeader{
		Name:     entry.Name,
		Method:   zip.Deflate,
		Modified: entry.Modified,
	}

	writer, err := archive.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = writer.Write(entry.Data)
	return err
}

// WriteZip writes the entries in order as a deflated archive.
func WriteZip(w io.Writer, entries []ZipEntry) error {
	archive := zip.NewWriter(w)

	for _, entry := range entries {
		if err := addEntryToZip(archive, entry); err != nil {
			archive.Close()
			return fmt.Errorf("failed to add %s to archive: %w", entry.Name, err)
		}
	}

	return archive.Close()
}

// entrySet keeps archive entries unique by name, in first-seen order.
type entrySet struct {
	entries      []ZipEntry
	index        map[string]int
	disambiguate bool
}

func newEntrySet(disambiguate bool) *entrySet {
	return &entrySet{
		index:        make(map[string]int),
		disambiguate: disambiguate,
	}
}

// add stores the entry and returns the name it ends up under. A repeated name
// replaces the earlier entry, or gets a "_2", "_3", ... suffix when disambiguating.
func (s *entrySet) add(entry ZipEntry) string {
	if i, exists := s.index[entry.Name]; exists {
		if !s.disambiguate {
			s.entries[i] = entry
			return entry.Name
		}
		entry.Name = s.nextFreeName(entry.Name)
	}

	s.index[entry.Name] = len(s.entries)
	s.entries = append(s.entries, entry)
	return entry.Name
}

func (s *entrySet) nextFreeName(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", base, n, ext)
		if _, exists := s.index[candidate]; !exists {
			return candidate
		}
	}
}
