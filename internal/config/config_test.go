package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-archiver/internal/model"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultTier, cfg.DefaultTier)
	assert.Equal(t, DefaultFilenameTemplate, cfg.FilenameTemplate)
	assert.Equal(t, DefaultLanguage, cfg.Language)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Equal(t, DefaultS3Region, cfg.S3.Region)
	assert.Empty(t, cfg.FFmpegLocation)
	assert.False(t, cfg.S3.Enabled())
	assert.NotEmpty(t, cfg.ArchiveDir)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("YTA_FFMPEG_LOCATION", "/opt/ffmpeg/bin")
	t.Setenv("YTA_DEFAULT_TIER", "mp3")
	t.Setenv("YTA_ARCHIVE_DIR", "/srv/archives")
	t.Setenv("YTA_S3_BUCKET", "media")
	t.Setenv("YTA_LOG_LEVEL", "debug")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/opt/ffmpeg/bin", cfg.FFmpegLocation)
	assert.Equal(t, model.TierAudioOnly, cfg.DefaultTier)
	assert.Equal(t, "/srv/archives", cfg.ArchiveDir)
	assert.Equal(t, "media", cfg.S3.Bucket)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	content := `default_tier: video_high
ffmpeg_location: /usr/local/bin/ffmpeg
filename_template: "%(id)s.%(ext)s"
s3:
  bucket: archives
  prefix: yt
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "yt-archiver.yaml"), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, model.TierVideoHigh, cfg.DefaultTier)
	assert.Equal(t, "/usr/local/bin/ffmpeg", cfg.FFmpegLocation)
	assert.Equal(t, "%(id)s.%(ext)s", cfg.FilenameTemplate)
	assert.Equal(t, "archives", cfg.S3.Bucket)
	assert.Equal(t, "yt", cfg.S3.Prefix)
	assert.Equal(t, filepath.Join(dir, "yt-archiver.yaml"), cfg.ConfigFile)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "yt-archiver.yaml"), []byte("ffmpeg_location: /from/file\n"), 0644))
	t.Setenv("YTA_FFMPEG_LOCATION", "/from/env")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.FFmpegLocation)
}

func TestLoadWithFlags(t *testing.T) {
	t.Setenv("YTA_FFMPEG_LOCATION", "/from/env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("ffmpeg-location", "", "")
	flags.String("tier", "", "")
	flags.String("unrelated", "", "")
	require.NoError(t, flags.Parse([]string{"--ffmpeg-location", "/from/flag", "--tier", "video-low"}))

	cfg, err := LoadWithFlags(flags, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/from/flag", cfg.FFmpegLocation)
	assert.Equal(t, model.TierVideoLow, cfg.DefaultTier)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "bad tier", env: map[string]string{"YTA_DEFAULT_TIER": "8k"}},
		{name: "template with separator", env: map[string]string{"YTA_FILENAME_TEMPLATE": "../%(title)s.%(ext)s"}},
		{name: "broken yaml", file: "default_tier: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			dir := t.TempDir()
			if tt.file != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "yt-archiver.yaml"), []byte(tt.file), 0644))
			}

			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}
