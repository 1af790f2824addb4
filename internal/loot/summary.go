// Package loot turns raw redeemcoupon responses into short human-readable
// reward summaries for the redemption ledger.
package loot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type detail struct {
	LootAction     string `json:"loot_action"`
	LootItem       string `json:"loot_item"`
	Count          int    `json:"count"`
	ChestTypeID    int    `json:"chest_type_id"`
	HeroID         *int   `json:"hero_id"`
	UnlockHeroSkin *int   `json:"unlock_hero_skin"`
}

type response struct {
	Okay        *bool    `json:"okay"`
	LootDetails []detail `json:"loot_details"`
	FailMessage *string  `json:"fail_message"`
}

// Summarize interprets a redemption response. Recognized loot entries are
// rendered and joined with ", "; an unknown hero id is an error (the hero
// table is incomplete, and we want that recorded, not guessed at). When
// nothing usable is found the raw response is returned verbatim.
func Summarize(raw []byte) (string, error) {
	var res response
	if err := json.Unmarshal(raw, &res); err != nil {
		return "", fmt.Errorf("failed to decode redemption response: %w", err)
	}

	switch {
	case res.Okay != nil && *res.Okay && res.LootDetails != nil:
		var parts []string
		for _, d := range res.LootDetails {
			part, err := summarizeDetail(d)
			if err != nil {
				return "", err
			}
			if part != "" {
				parts = append(parts, part)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, ", "), nil
		}
	case res.Okay != nil && !*res.Okay:
		if res.FailMessage != nil {
			return *res.FailMessage, nil
		}
	}
	return string(raw), nil
}

func summarizeDetail(d detail) (string, error) {
	switch {
	case d.LootAction == "generic_chest" && d.LootItem == "generic_chest":
		name, ok := chestNames[d.ChestTypeID]
		if !ok {
			return "", nil
		}
		return fmt.Sprintf("%s Chest x%d", name, d.Count), nil

	case d.LootAction == "unlock_hero" && d.LootItem == "unlock_hero":
		if d.HeroID == nil {
			return "", fmt.Errorf("unlock_hero entry without hero_id")
		}
		name, ok := heroNames[*d.HeroID]
		if !ok {
			return "", fmt.Errorf("unknown hero id %d", *d.HeroID)
		}
		return name, nil

	case d.LootAction == "claim" && d.UnlockHeroSkin != nil:
		if name, ok := skinNames[*d.UnlockHeroSkin]; ok {
			return name, nil
		}
		return strconv.Itoa(*d.UnlockHeroSkin), nil
	}
	// unrecognized action/item combinations are skipped
	return "", nil
}

// SummarizeSafe is Summarize with the failure path the driver wants: one
// malformed payload must never abort a batch, so any interpretation error
// degrades to the raw response plus the error text.
func SummarizeSafe(raw []byte) string {
	summary, err := Summarize(raw)
	if err != nil {
		return fmt.Sprintf("%s (interpretation error: %v)", raw, err)
	}
	return summary
}
