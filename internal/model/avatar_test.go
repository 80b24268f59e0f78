package model

import (
	"testing"
	"time"
)

func TestAvatarGlyph(t *testing.T) {
	cases := []struct {
		icon string
		want string
	}{
		{"wizard", "🧙"},
		{"dragon", "🐉"},
		{"crown", "👑"},
		{"", "👤"},
		{"unknown-key", "👤"},
	}
	for _, tc := range cases {
		if got := AvatarGlyph(tc.icon); got != tc.want {
			t.Errorf("AvatarGlyph(%q) = %q, want %q", tc.icon, got, tc.want)
		}
	}
}

func TestAvatarAffordable(t *testing.T) {
	avatar := Avatar{ID: 2, Icon: "wizard", Price: 120}
	if !avatar.Affordable(120) {
		t.Fatal("price equal to balance should be affordable")
	}
	if avatar.Affordable(119) {
		t.Fatal("price above balance should not be affordable")
	}
	avatar.Owned = true
	if avatar.Affordable(1000) {
		t.Fatal("owned avatar should never show as purchasable")
	}
}

func TestSkillIconGlyph(t *testing.T) {
	if got := SkillIconGlyph("study"); got != "🎓" {
		t.Fatalf("study glyph = %q", got)
	}
	if got := SkillIconGlyph("nope"); got != "👤" {
		t.Fatalf("unknown key should fall back, got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 0, 0, 0, time.UTC)
	cases := []struct {
		date string
		want string
	}{
		{"2026-08-29", "Hoje"},
		{"2026-08-30", "30/08/2026"},
		{"2025-01-02", "02/01/2025"},
		{"not-a-date", "not-a-date"},
	}
	for _, tc := range cases {
		if got := FormatDate(tc.date, now); got != tc.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestIsToday(t *testing.T) {
	now := time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC)
	if !IsToday("2026-08-29", now) {
		t.Fatal("same calendar day should be today")
	}
	if IsToday("2026-08-28", now) {
		t.Fatal("previous day should not be today")
	}
	if IsToday("garbage", now) {
		t.Fatal("unparseable date should not be today")
	}
}
