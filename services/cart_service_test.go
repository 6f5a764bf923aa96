package services

import (
	"strings"
	"testing"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
)

// itemWithGroups builds a menu item carrying a required single-pick spice
// group (options 11/12) and an optional extras group capped at two picks
// (options 21/22/23, 23 unavailable).
func itemWithGroups() *entity.MenuItem {
	spice := entity.Customization{
		Name:       "Spice Level",
		MinSelect:  1,
		MaxSelect:  1,
		IsRequired: true,
		Options: []entity.CustomizationOption{
			{Label: "Mild", IsAvailable: true},
			{Label: "Hot", IsAvailable: true},
		},
	}
	spice.ID = 1
	spice.Options[0].ID = 11
	spice.Options[0].CustomizationID = 1
	spice.Options[1].ID = 12
	spice.Options[1].CustomizationID = 1

	extras := entity.Customization{
		Name:      "Extras",
		MaxSelect: 2,
		Options: []entity.CustomizationOption{
			{Label: "Extra Chicken", PriceDelta: 350, IsAvailable: true},
			{Label: "Fried Egg", PriceDelta: 150, IsAvailable: true},
			{Label: "Extra Plantain", PriceDelta: 200, IsAvailable: false},
		},
	}
	extras.ID = 2
	for i := range extras.Options {
		extras.Options[i].ID = uint(21 + i)
		extras.Options[i].CustomizationID = 2
	}

	item := &entity.MenuItem{
		Name:           "Jollof Bowl",
		Price:          1499,
		IsAvailable:    true,
		Customizations: []entity.Customization{spice, extras},
	}
	item.ID = 5
	return item
}

func TestResolveSelectionsHappyPath(t *testing.T) {
	item := itemWithGroups()

	out, err := resolveSelections(item, []CartSelectionIn{
		{OptionID: 12},
		{OptionID: 21, FreeText: "well done"},
	})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 selections, got %d", len(out))
	}

	if out[0].CustomizationID != 1 || out[0].OptionID != 12 || out[0].Label != "Hot" {
		t.Errorf("spice selection resolved wrong: %+v", out[0])
	}
	if out[1].PriceDelta != 350 || out[1].FreeText != "well done" {
		t.Errorf("extras selection resolved wrong: %+v", out[1])
	}
}

func TestResolveSelectionsRequiredGroupMissing(t *testing.T) {
	item := itemWithGroups()

	_, err := resolveSelections(item, []CartSelectionIn{{OptionID: 21}})
	if err == nil || !strings.Contains(err.Error(), "Spice Level") {
		t.Fatalf("expected missing-selection error naming the group, got %v", err)
	}
}

func TestResolveSelectionsTooMany(t *testing.T) {
	item := itemWithGroups()
	item.Customizations[1].Options[2].IsAvailable = true

	_, err := resolveSelections(item, []CartSelectionIn{
		{OptionID: 11},
		{OptionID: 21},
		{OptionID: 22},
		{OptionID: 23},
	})
	if err == nil || !strings.Contains(err.Error(), "Extras") {
		t.Fatalf("expected too-many error naming the group, got %v", err)
	}
}

func TestResolveSelectionsForeignOption(t *testing.T) {
	item := itemWithGroups()

	_, err := resolveSelections(item, []CartSelectionIn{
		{OptionID: 11},
		{OptionID: 99},
	})
	if err == nil || !strings.Contains(err.Error(), "belong") {
		t.Fatalf("expected foreign-option error, got %v", err)
	}
}

func TestResolveSelectionsUnavailableOption(t *testing.T) {
	item := itemWithGroups()

	_, err := resolveSelections(item, []CartSelectionIn{
		{OptionID: 11},
		{OptionID: 23},
	})
	if err == nil || !strings.Contains(err.Error(), "not available") {
		t.Fatalf("expected unavailable-option error, got %v", err)
	}
}

func TestResolveSelectionsDuplicate(t *testing.T) {
	item := itemWithGroups()

	_, err := resolveSelections(item, []CartSelectionIn{
		{OptionID: 11},
		{OptionID: 11},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestResolveSelectionsNoGroups(t *testing.T) {
	item := &entity.MenuItem{Name: "Sobolo", Price: 399, IsAvailable: true}
	item.ID = 7

	out, err := resolveSelections(item, nil)
	if err != nil {
		t.Fatalf("plain item should resolve with no selections: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no selections, got %d", len(out))
	}
}
