package mediatypes

import "testing"

func TestImageContentType(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"covers/album.jpg", "image/jpeg"},
		{"covers/album.jpeg", "image/jpeg"},
		{"covers/album.png", "image/png"},
		{"covers/album.gif", "image/gif"},
		{"covers/album.webp", "image/webp"},
		{"covers/logo.svg", "image/svg+xml"},
		{"covers/album.PNG", "image/png"},
		{"covers/album.Jpg", "image/jpeg"},
		{"covers/album.xyz", OctetStream},
		{"covers/noext", OctetStream},
		{"", OctetStream},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := ImageContentType(tt.key); got != tt.want {
				t.Errorf("ImageContentType(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestAudioContentType(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"tracks/song.mp3", "audio/mpeg"},
		{"tracks/song.wav", "audio/wav"},
		{"tracks/song.ogg", "audio/ogg"},
		{"tracks/song.m4a", "audio/mp4"},
		{"tracks/song.flac", "audio/flac"},
		{"tracks/song.FLAC", "audio/flac"},
		{"tracks/song.xyz", OctetStream},
		{"tracks/song", OctetStream},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := AudioContentType(tt.key); got != tt.want {
				t.Errorf("AudioContentType(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestIsImageIsAudio(t *testing.T) {
	if !IsImage("a/b.png") {
		t.Error("IsImage(.png) = false, want true")
	}
	if IsImage("a/b.mp3") {
		t.Error("IsImage(.mp3) = true, want false")
	}
	if !IsAudio("a/b.mp3") {
		t.Error("IsAudio(.mp3) = false, want true")
	}
	if IsAudio("a/b.png") {
		t.Error("IsAudio(.png) = true, want false")
	}
}
