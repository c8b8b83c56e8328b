package services

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Belphemur/ToshoSubtitles/internal/config"
	"github.com/Belphemur/ToshoSubtitles/internal/models"

	"github.com/dustin/go-humanize"
	"github.com/nwaples/rardecode/v2"
)

// ErrNoSubtitlesInArchive is returned when an archive holds no subtitle files
var ErrNoSubtitlesInArchive = errors.New("archive contains no subtitle files")

// maxCollisionSuffix bounds the " (n)" suffixes tried for an existing filename
const maxCollisionSuffix = 10000

var (
	zipMagic = []byte("PK\x03\x04")
	rarMagic = []byte("Rar!\x1a\x07")
)

// subtitleExtensions are the archive entries kept when extracting
var subtitleExtensions = map[string]bool{
	".ass": true,
	".ssa": true,
	".srt": true,
	".vtt": true,
}

// SubtitleSaver writes downloaded subtitles into the download directory
type SubtitleSaver interface {
	// Save writes the result and returns the paths of the written files
	Save(result *models.DownloadResult) ([]string, error)
}

// FileSaver saves subtitles like a browser download manager: an existing file is
// never overwritten, the new file gets a " (1)", " (2)", ... suffix instead.
type FileSaver struct {
	directory       string
	extractArchives bool
	mu              sync.Mutex
}

// NewSubtitleSaver creates a saver for directory. When extractArchives is set,
// ZIP and RAR payloads are unpacked and only their subtitle entries are written.
func NewSubtitleSaver(directory string, extractArchives bool) *FileSaver {
	if directory == "" {
		directory = "."
	}
	return &FileSaver{directory: directory, extractArchives: extractArchives}
}

// Save implements SubtitleSaver
func (s *FileSaver) Save(result *models.DownloadResult) ([]string, error) {
	if result == nil {
		return nil, errors.New("nothing to save")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.directory, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download directory: %w", err)
	}

	if s.extractArchives {
		switch {
		case isZip(result):
			return s.saveArchive(result, extractZip)
		case isRar(result):
			return s.saveArchive(result, extractRar)
		}
	}

	path, err := s.writeUnique(result.Filename, result.Content)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// archiveEntry is a subtitle file found inside an archive
type archiveEntry struct {
	name    string
	content []byte
}

type extractor func(content []byte) ([]archiveEntry, error)

func (s *FileSaver) saveArchive(result *models.DownloadResult, extract extractor) ([]string, error) {
	logger := config.GetLogger()

	entries, err := extract(result.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", result.Filename, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", result.Filename, ErrNoSubtitlesInArchive)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		path, err := s.writeUnique(entry.name, entry.content)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	logger.Info().
		Str("archive", result.Filename).
		Int("files", len(paths)).
		Msg("Extracted subtitles from archive")
	return paths, nil
}

// writeUnique writes content under name in the download directory, appending a
// counter before the extension while the name is taken
func (s *FileSaver) writeUnique(name string, content []byte) (string, error) {
	logger := config.GetLogger()

	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == ".." || name == "" {
		name = "subtitle"
	}
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for n := 0; n < maxCollisionSuffix; n++ {
		candidate := name
		if n > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
		}
		path := filepath.Join(s.directory, candidate)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", path, err)
		}

		if _, err := f.Write(content); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close %s: %w", path, err)
		}

		logger.Info().Str("path", path).Str("size", humanize.Bytes(uint64(len(content)))).Msg("Saved subtitle")
		return path, nil
	}
	return "", fmt.Errorf("no free filename for %s in %s", name, s.directory)
}

func isZip(result *models.DownloadResult) bool {
	return bytes.HasPrefix(result.Content, zipMagic) ||
		strings.Contains(strings.ToLower(result.ContentType), "zip") ||
		strings.EqualFold(filepath.Ext(result.Filename), ".zip")
}

func isRar(result *models.DownloadResult) bool {
	return bytes.HasPrefix(result.Content, rarMagic) ||
		strings.Contains(strings.ToLower(result.ContentType), "rar") ||
		strings.EqualFold(filepath.Ext(result.Filename), ".rar")
}

func isSubtitleFile(name string) bool {
	return subtitleExtensions[strings.ToLower(filepath.Ext(name))]
}

func extractZip(content []byte) ([]archiveEntry, error) {
	zipReader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open ZIP archive: %w", err)
	}

	entries := make([]archiveEntry, 0)
	for _, file := range zipReader.File {
		if file.FileInfo().IsDir() || !isSubtitleFile(file.Name) {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in ZIP: %w", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s from ZIP: %w", file.Name, err)
		}

		entries = append(entries, archiveEntry{name: filepath.Base(file.Name), content: data})
	}
	return entries, nil
}

func extractRar(content []byte) ([]archiveEntry, error) {
	rarReader, err := rardecode.NewReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open RAR archive: %w", err)
	}

	entries := make([]archiveEntry, 0)
	for {
		header, err := rarReader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read RAR archive: %w", err)
		}
		if header.IsDir || !isSubtitleFile(header.Name) {
			continue
		}

		data, err := io.ReadAll(rarReader)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s from RAR: %w", header.Name, err)
		}
		entries = append(entries, archiveEntry{name: filepath.Base(strings.ReplaceAll(header.Name, "\\", "/")), content: data})
	}
	return entries, nil
}
