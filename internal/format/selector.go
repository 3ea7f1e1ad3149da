// Package format maps user-facing quality tiers to the ordered format queries
// understood by the fetch engine.
package format

import (
	"fmt"

	"github.com/ytget/yt-archiver/internal/model"
)

// Query templates understood by yt-dlp
const (
	heightCappedTemplate = "bestvideo[height<=%d]+bestaudio/best[height<=%d]"
	AnyVideoQuery        = model.FormatQuery("bestvideo+bestaudio/best")
	BestAudioQuery       = model.FormatQuery("bestaudio/best")
)

// Audio extraction defaults for the audio-only tier
const (
	AudioCodec   = "mp3"
	AudioQuality = "192"
)

// MergeContainer is the container used when video and audio streams are merged
const MergeContainer = "mp4"

// Selection is the result of choosing formats for a tier
type Selection struct {
	Queries           []model.FormatQuery
	Postprocess       *model.AudioExtract
	MergeOutputFormat string
}

// HasPostprocess reports whether the selection asks for audio extraction
func (s Selection) HasPostprocess() bool {
	return s.Postprocess != nil
}

// HeightCapped returns the query preferring streams no taller than height
func HeightCapped(height int) model.FormatQuery {
	return model.FormatQuery(fmt.Sprintf(heightCappedTemplate, height, height))
}

// Select returns the ordered queries (most preferred first) for tier.
// Unknown tiers get the catch-all query and no postprocess.
func Select(tier model.FormatTier) Selection {
	switch tier {
	case model.TierVideoHigh:
		return videoSelection(1440, 1080, 720)
	case model.TierVideoMedium:
		return videoSelection(1080, 720)
	case model.TierVideoLow:
		return videoSelection(720)
	case model.TierAudioOnly:
		return Selection{
			Queries:     []model.FormatQuery{BestAudioQuery},
			Postprocess: &model.AudioExtract{Codec: AudioCodec, Quality: AudioQuality},
		}
	default:
		return Selection{Queries: []model.FormatQuery{AnyVideoQuery}}
	}
}

func videoSelection(heights ...int) Selection {
	queries := make([]model.FormatQuery, 0, len(heights)+1)
	for _, h := range heights {
		queries = append(queries, HeightCapped(h))
	}
	queries = append(queries, AnyVideoQuery)
	return Selection{Queries: queries, MergeOutputFormat: MergeContainer}
}

// Tiers returns all tiers in display order
func Tiers() []model.FormatTier {
	return []model.FormatTier{
		model.TierVideoHigh,
		model.TierVideoMedium,
		model.TierVideoLow,
		model.TierAudioOnly,
	}
}

// Label returns the English display label for tier
func Label(tier model.FormatTier) string {
	switch tier {
	case model.TierVideoHigh:
		return "Video - 1440p"
	case model.TierVideoMedium:
		return "Video - 1080p"
	case model.TierVideoLow:
		return "Video - 720p"
	case model.TierAudioOnly:
		return "Audio Only (MP3)"
	default:
		return string(tier)
	}
}
