package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-archiver/internal/model"
)

func TestSelect_QueryOrder(t *testing.T) {
	tests := []struct {
		tier     model.FormatTier
		expected []model.FormatQuery
	}{
		{
			tier: model.TierVideoHigh,
			expected: []model.FormatQuery{
				"bestvideo[height<=1440]+bestaudio/best[height<=1440]",
				"bestvideo[height<=1080]+bestaudio/best[height<=1080]",
				"bestvideo[height<=720]+bestaudio/best[height<=720]",
				"bestvideo+bestaudio/best",
			},
		},
		{
			tier: model.TierVideoMedium,
			expected: []model.FormatQuery{
				"bestvideo[height<=1080]+bestaudio/best[height<=1080]",
				"bestvideo[height<=720]+bestaudio/best[height<=720]",
				"bestvideo+bestaudio/best",
			},
		},
		{
			tier: model.TierVideoLow,
			expected: []model.FormatQuery{
				"bestvideo[height<=720]+bestaudio/best[height<=720]",
				"bestvideo+bestaudio/best",
			},
		},
		{
			tier:     model.TierAudioOnly,
			expected: []model.FormatQuery{"bestaudio/best"},
		},
		{
			tier:     model.FormatTier("unknown"),
			expected: []model.FormatQuery{"bestvideo+bestaudio/best"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			sel := Select(tt.tier)
			assert.Equal(t, tt.expected, sel.Queries)
		})
	}
}

func TestSelect_EveryTierHasQueries(t *testing.T) {
	for _, tier := range Tiers() {
		sel := Select(tier)
		assert.NotEmpty(t, sel.Queries, "tier %s", tier)
	}
}

func TestSelect_OnlyAudioHasPostprocess(t *testing.T) {
	for _, tier := range Tiers() {
		sel := Select(tier)
		if tier == model.TierAudioOnly {
			require.True(t, sel.HasPostprocess())
			assert.Equal(t, "mp3", sel.Postprocess.Codec)
			assert.Equal(t, "192", sel.Postprocess.Quality)
			assert.Empty(t, sel.MergeOutputFormat)
			continue
		}
		assert.False(t, sel.HasPostprocess(), "tier %s", tier)
		assert.Equal(t, MergeContainer, sel.MergeOutputFormat)
	}

	assert.False(t, Select("bogus").HasPostprocess())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Video - 1440p", Label(model.TierVideoHigh))
	assert.Equal(t, "Audio Only (MP3)", Label(model.TierAudioOnly))
	assert.Equal(t, "bogus", Label("bogus"))
}
