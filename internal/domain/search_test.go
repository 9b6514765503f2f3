package domain

import "testing"

func TestScoreRecord(t *testing.T) {
	tests := []struct {
		name           string
		queryStr       string
		record         *ServiceRecord
		expectPositive bool
	}{
		{
			name:           "exact name match",
			queryStr:       "chittytrust",
			record:         &ServiceRecord{ServiceName: "chittytrust"},
			expectPositive: true,
		},
		{
			name:           "prefix match",
			queryStr:       "chitty",
			record:         &ServiceRecord{ServiceName: "chittytrust"},
			expectPositive: true,
		},
		{
			name:           "substring match",
			queryStr:       "trust",
			record:         &ServiceRecord{ServiceName: "chittytrust"},
			expectPositive: true,
		},
		{
			name:           "display name match",
			queryStr:       "scoring",
			record:         &ServiceRecord{ServiceName: "chittytrust", DisplayName: "Trust Scoring Engine"},
			expectPositive: true,
		},
		{
			name:           "capability match",
			queryStr:       "ocr",
			record:         &ServiceRecord{ServiceName: "chittyevidence", Capabilities: []string{"ocr", "storage"}},
			expectPositive: true,
		},
		{
			name:           "no match",
			queryStr:       "xyz",
			record:         &ServiceRecord{ServiceName: "chittytrust", DisplayName: "ChittyTrust"},
			expectPositive: false,
		},
		{
			name:           "empty query",
			queryStr:       "",
			record:         &ServiceRecord{ServiceName: "chittytrust"},
			expectPositive: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScoreRecord(ParseSearchQuery(tt.queryStr), tt.record)

			if tt.expectPositive && score <= 0 {
				t.Errorf("Expected positive score, got %f", score)
			}
			if !tt.expectPositive && score > 0 {
				t.Errorf("Expected zero score, got %f", score)
			}
		})
	}
}

func TestScoreRecord_ExactBeatsPrefix(t *testing.T) {
	query := ParseSearchQuery("chittyid")
	exact := &ServiceRecord{ServiceName: "chittyid"}
	prefixed := &ServiceRecord{ServiceName: "chittyidentity"}

	if ScoreRecord(query, exact) <= ScoreRecord(query, prefixed) {
		t.Error("Exact name match should outrank prefix match")
	}
}

func TestRankRecords(t *testing.T) {
	records := []*ServiceRecord{
		{ServiceName: "chittyledger", DisplayName: "ChittyLedger"},
		{ServiceName: "chittytrust", DisplayName: "ChittyTrust"},
		{ServiceName: "unrelated", DisplayName: "Unrelated"},
	}

	candidates := RankRecords(ParseSearchQuery("trust"), records)

	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].Record.ServiceName != "chittytrust" {
		t.Errorf("Expected chittytrust first, got %s", candidates[0].Record.ServiceName)
	}
}

func TestRankRecords_Ordering(t *testing.T) {
	records := []*ServiceRecord{
		{ServiceName: "chittyverify"},
		{ServiceName: "verify"},
	}

	candidates := RankRecords(ParseSearchQuery("verify"), records)

	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].Record.ServiceName != "verify" {
		t.Errorf("Expected exact match first, got %s", candidates[0].Record.ServiceName)
	}
	if candidates[0].Score <= candidates[1].Score {
		t.Errorf("Expected descending scores, got %f then %f", candidates[0].Score, candidates[1].Score)
	}
}
