package domain

import "testing"

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  TrustLevel
	}{
		{name: "zero score", score: 0, want: TrustBronze},
		{name: "just below silver", score: 59.9, want: TrustBronze},
		{name: "silver floor", score: 60, want: TrustSilver},
		{name: "silver ceiling", score: 79, want: TrustSilver},
		{name: "gold floor", score: 80, want: TrustGold},
		{name: "gold ceiling", score: 94, want: TrustGold},
		{name: "platinum floor", score: 95, want: TrustPlatinum},
		{name: "max score", score: 100, want: TrustPlatinum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelForScore(tt.score); got != tt.want {
				t.Errorf("LevelForScore(%v) = %s, want %s", tt.score, got, tt.want)
			}
		})
	}
}

func TestLevelForScore_Monotonic(t *testing.T) {
	// Higher scores must never map to lower tiers.
	prev := LevelForScore(0)
	for s := 1; s <= 100; s++ {
		cur := LevelForScore(float64(s))
		if !cur.AtLeast(prev) {
			t.Fatalf("LevelForScore(%d) = %s ranks below LevelForScore(%d) = %s", s, cur, s-1, prev)
		}
		prev = cur
	}
}

func TestTrustLevelAtLeast(t *testing.T) {
	if !TrustPlatinum.AtLeast(TrustBronze) {
		t.Error("PLATINUM should rank at least BRONZE")
	}
	if TrustUnverified.AtLeast(TrustBronze) {
		t.Error("UNVERIFIED should rank below BRONZE")
	}
	if !TrustGold.AtLeast(TrustGold) {
		t.Error("a level should rank at least itself")
	}
}

func TestAnonymousContext(t *testing.T) {
	ctx := AnonymousContext()

	if ctx.TrustLevel != TrustUnverified {
		t.Errorf("Expected UNVERIFIED, got %s", ctx.TrustLevel)
	}
	if ctx.TrustScore != 0 {
		t.Errorf("Expected score 0, got %v", ctx.TrustScore)
	}
	if ctx.ComplianceLevel != CompliancePublic {
		t.Errorf("Expected PUBLIC clearance, got %s", ctx.ComplianceLevel)
	}
	if ctx.HasPermission("service:register") {
		t.Error("Anonymous context should hold no permissions")
	}
	if ctx.HasProject("chittyos-core") {
		t.Error("Anonymous context should hold no project access")
	}
}

func TestTrustContextMembership(t *testing.T) {
	ctx := &TrustContext{
		Permissions:   []string{"service:register", "service:deregister"},
		ProjectAccess: []string{"chittyos-core"},
	}

	if !ctx.HasPermission("service:register") {
		t.Error("Expected permission service:register")
	}
	if ctx.HasPermission("registry:admin") {
		t.Error("Did not expect permission registry:admin")
	}
	if !ctx.HasProject("chittyos-core") {
		t.Error("Expected project chittyos-core")
	}
	if ctx.HasProject("other") {
		t.Error("Did not expect project other")
	}
}
