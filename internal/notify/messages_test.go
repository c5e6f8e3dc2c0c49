package notify

import (
	"slices"
	"testing"
)

func TestChooseMessageReturnsCatalogueEntry(t *testing.T) {
	for range 50 {
		message := ChooseMessage()
		if !slices.Contains(reminderMessages, message) {
			t.Fatalf("ChooseMessage() = %q, not in catalogue", message)
		}
	}
}

func TestChooseVariantFallsBackWhenEmpty(t *testing.T) {
	fallback := ActionVariant{Label: "fallback"}
	if got := chooseVariant(nil, fallback); got != fallback {
		t.Errorf("chooseVariant(nil) = %+v, want %+v", got, fallback)
	}
}

func TestActionVariantsHaveLabels(t *testing.T) {
	for _, variants := range [][]ActionVariant{remindVariants, skipVariants} {
		for _, variant := range variants {
			if variant.Label == "" || variant.LogLine == "" {
				t.Errorf("incomplete variant %+v", variant)
			}
		}
	}
	if !slices.Contains(remindVariants, ChooseRemindVariant()) {
		t.Error("ChooseRemindVariant() returned an unknown variant")
	}
	if !slices.Contains(skipVariants, ChooseSkipVariant()) {
		t.Error("ChooseSkipVariant() returned an unknown variant")
	}
}
