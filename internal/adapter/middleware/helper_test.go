package middleware

import (
	"strconv"
	"testing"
	"time"
)

func TestValidReqID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"uuid v4", "9b2fe1a2-45c7-4f3a-8b77-3c2f19a4d901", true},
		{"hex32", "0123456789abcdef0123456789abcdef", true},
		{"uppercase uuid folds", "9B2FE1A2-45C7-4F3A-8B77-3C2F19A4D901", true},
		{"too short", "abc123", false},
		{"empty", "", false},
		{"uuid with bad variant", "9b2fe1a2-45c7-4f3a-cb77-3c2f19a4d901", false},
	}
	for _, tt := range tests {
		if got := validReqID(tt.id); got != tt.want {
			t.Errorf("%s: validReqID(%q) = %v, want %v", tt.name, tt.id, got, tt.want)
		}
	}
}

func TestParseAxRequestAt(t *testing.T) {
	epoch := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{"epoch seconds", strconv.FormatInt(epoch.Unix(), 10), epoch, false},
		{"epoch millis", strconv.FormatInt(epoch.UnixMilli(), 10), epoch, false},
		{"rfc3339 zulu", "2026-08-30T10:00:00Z", epoch, false},
		{"rfc3339 with offset", "2026-08-30T17:00:00+07:00", epoch, false},
		{"naive local timestamp", "2026-08-30 10:00:00", time.Time{}, true},
		{"empty", "", time.Time{}, true},
		{"garbage", "soon", time.Time{}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAxRequestAt(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("want error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("parsed %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildKey(t *testing.T) {
	key := buildKey("POST", "/opportunities/:opportunity_id/transition", "aaaa", "req1")
	want := "idemp:wf:post:/opportunities/:opportunity_id/transition:aaaa:req1"
	if key != want {
		t.Fatalf("key = %q, want %q", key, want)
	}
}

func TestBodyHashIsStable(t *testing.T) {
	a := bodyHash([]byte(`{"decision":"approved"}`))
	b := bodyHash([]byte(`{"decision":"approved"}`))
	c := bodyHash([]byte(`{"decision":"rejected"}`))
	if a != b {
		t.Fatal("same body must hash identically")
	}
	if a == c {
		t.Fatal("different bodies must hash differently")
	}
}
