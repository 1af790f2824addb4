package loot

import (
	"strings"
	"testing"
)

func TestSummarize_ChestReward(t *testing.T) {
	raw := `{"okay": true, "loot_details": [{"loot_action": "generic_chest", "loot_item": "generic_chest", "chest_type_id": 282, "count": 3}]}`

	got, err := Summarize([]byte(raw))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "Electrum Chest x3" {
		t.Fatalf("got %q, want %q", got, "Electrum Chest x3")
	}
}

func TestSummarize_MultipleRewardsJoined(t *testing.T) {
	raw := `{"okay": true, "loot_details": [
		{"loot_action": "generic_chest", "loot_item": "generic_chest", "chest_type_id": 2, "count": 1},
		{"loot_action": "unlock_hero", "loot_item": "unlock_hero", "hero_id": 58},
		{"loot_action": "claim", "unlock_hero_skin": 131}
	]}`

	got, err := Summarize([]byte(raw))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "Gold Chest x1, Briv, Icewind Dale" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestSummarize_UnknownSkinFallsBackToID(t *testing.T) {
	raw := `{"okay": true, "loot_details": [{"loot_action": "claim", "unlock_hero_skin": 999}]}`

	got, err := Summarize([]byte(raw))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "999" {
		t.Fatalf("got %q, want raw skin id", got)
	}
}

func TestSummarize_UnknownChestIsSkipped(t *testing.T) {
	raw := `{"okay": true, "loot_details": [{"loot_action": "generic_chest", "loot_item": "generic_chest", "chest_type_id": 9999, "count": 1}]}`

	got, err := Summarize([]byte(raw))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	// nothing recognized, the raw response comes back
	if got != raw {
		t.Fatalf("got %q, want raw response", got)
	}
}

func TestSummarize_FailMessage(t *testing.T) {
	raw := `{"okay": false, "fail_message": "already claimed"}`

	got, err := Summarize([]byte(raw))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "already claimed" {
		t.Fatalf("got %q", got)
	}
}

func TestSummarize_NotOkayWithoutMessage(t *testing.T) {
	raw := `{"okay": false}`

	got, err := Summarize([]byte(raw))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != raw {
		t.Fatalf("got %q, want raw response", got)
	}
}

func TestSummarize_UnrecognizedEntriesFallBackToRaw(t *testing.T) {
	raw := `{"okay": true, "loot_details": [{"loot_action": "unknown", "loot_item": "unknown"}]}`

	got, err := Summarize([]byte(raw))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != raw {
		t.Fatalf("got %q, want raw response", got)
	}
}

func TestSummarize_NoUsableStructure(t *testing.T) {
	raw := `{"processing_time": "0.03"}`

	got, err := Summarize([]byte(raw))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != raw {
		t.Fatalf("got %q, want raw response", got)
	}
}

func TestSummarize_UnknownHeroIsAnError(t *testing.T) {
	raw := `{"okay": true, "loot_details": [{"loot_action": "unlock_hero", "loot_item": "unlock_hero", "hero_id": 9999}]}`

	if _, err := Summarize([]byte(raw)); err == nil {
		t.Fatal("expected lookup error for unknown hero id")
	}
}

func TestSummarizeSafe_NeverFails(t *testing.T) {
	raw := `{"okay": true, "loot_details": [{"loot_action": "unlock_hero", "loot_item": "unlock_hero", "hero_id": 9999}]}`

	got := SummarizeSafe([]byte(raw))
	if !strings.Contains(got, "interpretation error") || !strings.Contains(got, "9999") {
		t.Fatalf("fallback message missing context: %q", got)
	}

	if got := SummarizeSafe([]byte("not json at all")); !strings.Contains(got, "not json at all") {
		t.Fatalf("fallback message should embed raw response: %q", got)
	}
}
