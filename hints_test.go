package main

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

func TestHintLedgerNeverRepeats(t *testing.T) {
	ledger := newHintLedger(rand.New(rand.NewSource(3)))

	issued := make(map[HintKind]bool)
	for i := 0; i < len(allHintKinds); i++ {
		kind, ok := ledger.issue(2)
		if !ok {
			t.Fatalf("issue %d returned exhausted with %d kinds issued", i, len(issued))
		}
		if issued[kind] {
			t.Fatalf("hint kind %q issued twice", kind)
		}
		issued[kind] = true
	}

	if _, ok := ledger.issue(2); ok {
		t.Fatal("expected exhausted pool to return ok=false")
	}

	// Other seats have their own pools.
	if _, ok := ledger.issue(3); !ok {
		t.Fatal("seat 3's pool should be untouched")
	}
}

func TestHintLedgerMaterialize(t *testing.T) {
	ledger := newHintLedger(rand.New(rand.NewSource(3)))
	id := Identity{Provider: ProviderGoogle, ModelID: "gemini-2.5-flash", Size: SizeEfficient}

	cases := []struct {
		kind HintKind
		want string
	}{
		{HintProvider, "Your provider is 'google'."},
		{HintIDLength, fmt.Sprintf("Your model name has %d characters.", len("gemini-2.5-flash"))},
		{HintFirstLetter, "The first letter of your model ID is 'g'."},
		{HintSizeClass, "You are a smaller/efficient model."},
	}

	for _, c := range cases {
		if got := ledger.materialize(id, c.kind); got != c.want {
			t.Fatalf("materialize(%q) = %q, want %q", c.kind, got, c.want)
		}
	}

	flagship := Identity{Provider: ProviderOpenAI, ModelID: "gpt-5", Size: SizeFlagship}
	if got := ledger.materialize(flagship, HintSizeClass); got != "You are a flagship/large model." {
		t.Fatalf("flagship size hint = %q", got)
	}
}

func TestHintSubstringStaysInterior(t *testing.T) {
	for _, id := range defaultCatalog {
		ledger := newHintLedger(rand.New(rand.NewSource(11)))
		for i := 0; i < 50; i++ {
			sub := ledger.interiorSubstring(id.ModelID)

			if len(sub) > 3 {
				t.Fatalf("%s: substring %q longer than 3", id.ModelID, sub)
			}
			idx := strings.Index(id.ModelID, sub)
			if idx < 0 {
				t.Fatalf("%s: substring %q not found in model ID", id.ModelID, sub)
			}
			interior := id.ModelID[1 : len(id.ModelID)-1]
			if !strings.Contains(interior, sub) {
				t.Fatalf("%s: substring %q touches the first or last character", id.ModelID, sub)
			}
		}
	}
}

func TestHintSubstringDeterministicPerSeed(t *testing.T) {
	a := newHintLedger(rand.New(rand.NewSource(9))).interiorSubstring("claude-sonnet-4-5")
	b := newHintLedger(rand.New(rand.NewSource(9))).interiorSubstring("claude-sonnet-4-5")
	if a != b {
		t.Fatalf("same seed produced different substrings: %q vs %q", a, b)
	}
}
