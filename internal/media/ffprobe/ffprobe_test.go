package ffprobe

import (
	"encoding/json"
	"testing"
)

const sampleOutput = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1080, "height": 1920, "avg_frame_rate": "30000/1001", "r_frame_rate": "30/1"},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "sample_rate": "48000", "channels": 2}
  ],
  "format": {"filename": "clip.mp4", "nb_streams": 2, "duration": "42.5", "size": "1048576", "format_name": "mov,mp4,m4a"}
}`

func parseSample(t *testing.T) Result {
	t.Helper()
	var result Result
	if err := json.Unmarshal([]byte(sampleOutput), &result); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	return result
}

func TestVideoStream(t *testing.T) {
	result := parseSample(t)
	stream, ok := result.VideoStream()
	if !ok {
		t.Fatal("expected video stream")
	}
	if stream.Width != 1080 || stream.Height != 1920 {
		t.Fatalf("unexpected dimensions %dx%d", stream.Width, stream.Height)
	}
}

func TestAudioStreamCount(t *testing.T) {
	result := parseSample(t)
	if count := result.AudioStreamCount(); count != 1 {
		t.Fatalf("audio stream count = %d, want 1", count)
	}
}

func TestDurationSeconds(t *testing.T) {
	result := parseSample(t)
	if dur := result.DurationSeconds(); dur != 42.5 {
		t.Fatalf("duration = %v, want 42.5", dur)
	}
	if dur := (Result{}).DurationSeconds(); dur != 0 {
		t.Fatalf("empty duration = %v, want 0", dur)
	}
}

func TestFrameRate(t *testing.T) {
	result := parseSample(t)
	fps := result.FrameRate()
	if fps < 29.9 || fps > 30.0 {
		t.Fatalf("fps = %v, want ~29.97", fps)
	}
}

func TestParseFraction(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"30/1", 30},
		{"0/0", 0},
		{"", 0},
		{"25", 25},
		{"24000/1001", 23.976023976023978},
		{"bad/1", 0},
		{"1/0", 0},
	}
	for _, tc := range cases {
		if got := parseFraction(tc.in); got != tc.want {
			t.Errorf("parseFraction(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
