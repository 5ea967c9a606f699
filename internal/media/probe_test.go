package media_test

import (
	"encoding/json"
	"testing"

	"plexnote/internal/media"
)

func TestFindCodecResWalksNestedPayloads(t *testing.T) {
	payload := `{
		"media_type": "season",
		"children": [
			{"title": "Episode 1", "media_info": [
				{"parts": [{"streams": []}], "video_codec": "hevc", "video_resolution": "2160"}
			]}
		]
	}`
	var tree any
	if err := json.Unmarshal([]byte(payload), &tree); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	codec, res := media.FindCodecRes(tree)
	if codec != "HEVC" {
		t.Errorf("codec = %q, want HEVC", codec)
	}
	if res != "2160p" {
		t.Errorf("resolution = %q, want 2160p", res)
	}
}

func TestFindCodecResNormalisesDimensions(t *testing.T) {
	tree := map[string]any{"video_codec": "h264", "video_full_resolution": "640x480"}
	codec, res := media.FindCodecRes(tree)
	if codec != "H264" || res != "480p" {
		t.Fatalf("got (%q, %q), want (H264, 480p)", codec, res)
	}
}

func TestFindCodecResEmptyTree(t *testing.T) {
	codec, res := media.FindCodecRes(map[string]any{"title": "nichts"})
	if codec != "" || res != "" {
		t.Fatalf("expected empty result, got (%q, %q)", codec, res)
	}
}

func TestLanguagesFromStreams(t *testing.T) {
	item := decodeItem(t, `{
		"media_info": [{"parts": [{
			"file": "/media/film.mkv",
			"streams": [
				{"type": 1, "languageCode": "und"},
				{"type": 2, "languageCode": "DE"},
				{"type": 2, "languageCode": "en"},
				{"type": 2, "languageCode": "de"},
				{"type": 3, "subtitle_language_code": "de"}
			]
		}]}]
	}`)
	audio, subs := item.Languages()
	if len(audio) != 2 || audio[0] != "de" || audio[1] != "en" {
		t.Fatalf("audio = %v, want [de en]", audio)
	}
	if len(subs) != 1 || subs[0] != "de" {
		t.Fatalf("subs = %v, want [de]", subs)
	}
}

func TestLanguagesFilenameFallback(t *testing.T) {
	item := decodeItem(t, `{
		"media_info": [{"parts": [{
			"file": "/media/Film (2020) [de+en].mkv",
			"streams": [{"type": 3, "subtitle_language_code": "de"}]
		}]}]
	}`)
	audio, _ := item.Languages()
	if len(audio) != 2 || audio[0] != "de" || audio[1] != "en" {
		t.Fatalf("audio from filename = %v, want [de en]", audio)
	}
}
