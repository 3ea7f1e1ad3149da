// Package config loads application configuration from the environment, an
// optional yt-archiver.yaml file and command-line flags, and layers the GUI's
// persisted preferences on top.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ytget/yt-archiver/internal/model"
	"github.com/ytget/yt-archiver/internal/platform"
	"github.com/ytget/yt-archiver/internal/publish"
)

// Configuration sources
const (
	EnvPrefix      = "YTA"
	ConfigName     = "yt-archiver"
	ConfigType     = "yaml"
	fallbackOutDir = "yt-archiver"
)

// Configuration keys
const (
	KeyArchiveDir       = "archive_dir"
	KeyDefaultTier      = "default_tier"
	KeyFFmpegLocation   = "ffmpeg_location"
	KeyYTDLPPath        = "ytdlp_path"
	KeyFilenameTemplate = "filename_template"
	KeyLanguage         = "language"
	KeyLogLevel         = "log_level"
	KeyMetricsAddr      = "metrics_addr"
	KeyS3Bucket         = "s3.bucket"
	KeyS3Region         = "s3.region"
	KeyS3Prefix         = "s3.prefix"
	KeyS3Endpoint       = "s3.endpoint"
	KeyS3AccessKey      = "s3.access_key"
	KeyS3SecretKey      = "s3.secret_key"
)

// Default values
const (
	DefaultTier             = model.TierVideoMedium
	DefaultFilenameTemplate = "%(title)s.%(ext)s"
	DefaultLanguage         = "system"
	DefaultLogLevel         = "info"
	DefaultS3Region         = "us-east-1"
)

// FlagKeys maps command-line flag names to configuration keys
var FlagKeys = map[string]string{
	"output-dir":      KeyArchiveDir,
	"tier":            KeyDefaultTier,
	"ffmpeg-location": KeyFFmpegLocation,
	"yt-dlp":          KeyYTDLPPath,
	"template":        KeyFilenameTemplate,
	"log-level":       KeyLogLevel,
	"metrics-addr":    KeyMetricsAddr,
	"s3-bucket":       KeyS3Bucket,
	"s3-region":       KeyS3Region,
	"s3-prefix":       KeyS3Prefix,
	"s3-endpoint":     KeyS3Endpoint,
}

// Config holds all application configuration
type Config struct {
	// Output
	ArchiveDir       string
	DefaultTier      model.FormatTier
	FilenameTemplate string

	// External tools
	FFmpegLocation string // empty lets yt-dlp search PATH
	YTDLPPath      string

	// UI
	Language string

	// Observability
	LogLevel    string
	MetricsAddr string

	// Publishing
	S3 publish.S3Config

	// ConfigFile is the file that was read, empty when none was found
	ConfigFile string
}

// Load reads configuration from YTA_* environment variables and an optional
// yt-archiver.yaml in the given directories (current directory when none)
func Load(paths ...string) (*Config, error) {
	return LoadWithFlags(nil, paths...)
}

// LoadWithFlags is Load with command-line flags taking precedence. Only flags
// listed in FlagKeys and present in flags are bound.
func LoadWithFlags(flags *pflag.FlagSet, paths ...string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(ConfigName)
	v.SetConfigType(ConfigType)
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	tier, err := model.ParseFormatTier(v.GetString(KeyDefaultTier))
	if err != nil {
		return nil, fmt.Errorf("invalid %s_DEFAULT_TIER: %w", EnvPrefix, err)
	}

	archiveDir := v.GetString(KeyArchiveDir)
	if archiveDir == "" {
		archiveDir = defaultArchiveDir()
	}

	cfg := &Config{
		ArchiveDir:       archiveDir,
		DefaultTier:      tier,
		FilenameTemplate: v.GetString(KeyFilenameTemplate),
		FFmpegLocation:   v.GetString(KeyFFmpegLocation),
		YTDLPPath:        v.GetString(KeyYTDLPPath),
		Language:         v.GetString(KeyLanguage),
		LogLevel:         v.GetString(KeyLogLevel),
		MetricsAddr:      v.GetString(KeyMetricsAddr),
		S3: publish.S3Config{
			Bucket:    v.GetString(KeyS3Bucket),
			Region:    v.GetString(KeyS3Region),
			Prefix:    v.GetString(KeyS3Prefix),
			Endpoint:  v.GetString(KeyS3Endpoint),
			AccessKey: v.GetString(KeyS3AccessKey),
			SecretKey: v.GetString(KeyS3SecretKey),
		},
		ConfigFile: v.ConfigFileUsed(),
	}

	if cfg.FilenameTemplate == "" {
		cfg.FilenameTemplate = DefaultFilenameTemplate
	}
	if strings.ContainsAny(cfg.FilenameTemplate, `/\`) {
		return nil, fmt.Errorf("filename template must not contain path separators: %q", cfg.FilenameTemplate)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyDefaultTier, string(DefaultTier))
	v.SetDefault(KeyFilenameTemplate, DefaultFilenameTemplate)
	v.SetDefault(KeyLanguage, DefaultLanguage)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyS3Region, DefaultS3Region)
}

func defaultArchiveDir() string {
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return filepath.Join(".", fallbackOutDir)
	}
	return dir
}
