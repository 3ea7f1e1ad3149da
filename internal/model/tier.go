package model

import (
	"fmt"
	"strings"
)

// FormatTier is the quality tier chosen by the user for one session
type FormatTier string

const (
	TierVideoHigh   FormatTier = "video_high"
	TierVideoMedium FormatTier = "video_medium"
	TierVideoLow    FormatTier = "video_low"
	TierAudioOnly   FormatTier = "audio_only"
)

// legacyTierAliases maps the value names used by older builds of the app
var legacyTierAliases = map[string]FormatTier{
	"mp4_1440": TierVideoHigh,
	"mp4_1080": TierVideoMedium,
	"mp4_720":  TierVideoLow,
	"mp3":      TierAudioOnly,
}

// String returns the string representation of FormatTier
func (t FormatTier) String() string {
	return string(t)
}

// IsAudio reports whether the tier produces audio-only output
func (t FormatTier) IsAudio() bool {
	return t == TierAudioOnly
}

// IsValid reports whether t is one of the known tiers
func (t FormatTier) IsValid() bool {
	switch t {
	case TierVideoHigh, TierVideoMedium, TierVideoLow, TierAudioOnly:
		return true
	}
	return false
}

// ParseFormatTier parses a tier name, accepting dashes and legacy aliases
func ParseFormatTier(s string) (FormatTier, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")

	if tier, ok := legacyTierAliases[normalized]; ok {
		return tier, nil
	}

	tier := FormatTier(normalized)
	if !tier.IsValid() {
		return "", fmt.Errorf("unknown format tier: %q", s)
	}
	return tier, nil
}

// FormatQuery is an opaque format selector string interpreted by the fetch engine
type FormatQuery string

// String returns the string representation of FormatQuery
func (q FormatQuery) String() string {
	return string(q)
}

// AudioExtract asks the media toolchain to transcode the fetched stream to audio
type AudioExtract struct {
	Codec   string
	Quality string
}
