package domain

import (
	"testing"
	"time"
)

func TestParseTrackID(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr bool
	}{
		{name: "bare id", ref: "4uLU6hMCjMI75M1A2tKUQC", want: "4uLU6hMCjMI75M1A2tKUQC"},
		{name: "uri", ref: "spotify:track:4uLU6hMCjMI75M1A2tKUQC", want: "4uLU6hMCjMI75M1A2tKUQC"},
		{name: "encoded uri", ref: "spotify%3Atrack%3A4uLU6hMCjMI75M1A2tKUQC", want: "4uLU6hMCjMI75M1A2tKUQC"},
		{
			name: "now playing href",
			ref:  "https://open.spotify.com/album/1A2B?highlight=spotify%3Atrack%3A4uLU6hMCjMI75M1A2tKUQC",
			want: "4uLU6hMCjMI75M1A2tKUQC",
		},
		{name: "track url", ref: "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC?si=abc", want: "4uLU6hMCjMI75M1A2tKUQC"},
		{name: "album uri", ref: "spotify:album:1A2B", wantErr: true},
		{name: "album url", ref: "https://open.spotify.com/album/1A2B", wantErr: true},
		{name: "empty", ref: "  ", wantErr: true},
		{name: "bad characters", ref: "abc/def", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseTrackID(tc.ref)
			if (err != nil) != tc.wantErr {
				t.Fatalf("expected error: %v, got: %v", tc.wantErr, err)
			}
			if got != tc.want {
				t.Fatalf("ParseTrackID(%q) = %q, want %q", tc.ref, got, tc.want)
			}
		})
	}
}

func TestAccessToken_Valid(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		token AccessToken
		want  bool
	}{
		{name: "empty value", token: AccessToken{Expiry: now.Add(time.Hour)}, want: false},
		{name: "unexpired", token: AccessToken{Value: "tok", Expiry: now.Add(time.Minute)}, want: true},
		{name: "expired", token: AccessToken{Value: "tok", Expiry: now.Add(-time.Minute)}, want: false},
		{name: "no expiry", token: AccessToken{Value: "tok"}, want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.token.Valid(now); got != tc.want {
				t.Fatalf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}
