// Package audio writes ID3 metadata to the mp3 files produced by audio-only sessions.
package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/sirupsen/logrus"

	"github.com/ytget/yt-archiver/internal/logging"
)

// MP3Extension selects the files TagDirectory touches
const MP3Extension = ".mp3"

// Tagger sets title and album frames on extracted mp3 files.
//
// The title (TIT2) is only written when the file has none; it is derived from
// the file name, with the underscores of restricted file names turned back
// into spaces. The album (TALB) is always set so a playlist archive groups
// together in players.
type Tagger struct {
	logger logrus.FieldLogger
}

// NewTagger creates a new Tagger
func NewTagger(logger logrus.FieldLogger) *Tagger {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Tagger{logger: logger}
}

// TagDirectory tags every mp3 file directly inside dir. Failures are logged per
// file and returned joined; files that could be tagged are saved regardless.
func (t *Tagger) TagDirectory(dir, album string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), MP3Extension) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := t.TagFile(path, album); err != nil {
			t.logger.WithError(err).WithField("file", entry.Name()).Warn("Failed to tag file")
			errs = append(errs, fmt.Errorf("%s: %w", entry.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// TagFile tags a single mp3 file
func (t *Tagger) TagFile(path, album string) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	if strings.TrimSpace(tag.Title()) == "" {
		tag.SetTitle(TitleFromFilename(path))
	}
	if album != "" {
		tag.SetAlbum(album)
	}

	return tag.Save()
}

// TitleFromFilename turns "Artist_-_Song.mp3" into "Artist - Song"
func TitleFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSpace(strings.ReplaceAll(base, "_", " "))
}
