package model

import "testing"

func TestParseFormatTier(t *testing.T) {
	tests := []struct {
		input    string
		expected FormatTier
		wantErr  bool
	}{
		{"video_high", TierVideoHigh, false},
		{"video-medium", TierVideoMedium, false},
		{" VIDEO_LOW ", TierVideoLow, false},
		{"audio_only", TierAudioOnly, false},
		{"mp4_1440", TierVideoHigh, false},
		{"mp4_1080", TierVideoMedium, false},
		{"mp4_720", TierVideoLow, false},
		{"mp3", TierAudioOnly, false},
		{"flac", "", true},
		{"", "", true},
	}

	for _, test := range tests {
		result, err := ParseFormatTier(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseFormatTier(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
			continue
		}
		if result != test.expected {
			t.Errorf("ParseFormatTier(%q) = %s, expected %s", test.input, result, test.expected)
		}
	}
}

func TestFormatTier_IsAudio(t *testing.T) {
	for _, tier := range []FormatTier{TierVideoHigh, TierVideoMedium, TierVideoLow} {
		if tier.IsAudio() {
			t.Errorf("%s should not be audio", tier)
		}
	}
	if !TierAudioOnly.IsAudio() {
		t.Error("audio_only should be audio")
	}
}
