package main

import (
	"fmt"
	"math/rand"
)

type HintKind string

const (
	HintProvider    HintKind = "provider"
	HintIDLength    HintKind = "id_length"
	HintFirstLetter HintKind = "first_letter"
	HintSizeClass   HintKind = "size_class"
	HintSubstring   HintKind = "id_substring"
)

var allHintKinds = []HintKind{
	HintProvider,
	HintIDLength,
	HintFirstLetter,
	HintSizeClass,
	HintSubstring,
}

// hintLedger tracks which hint kinds each seat has already received.
// A kind, once issued to a seat, is never issued to that seat again.
type hintLedger struct {
	rng  *rand.Rand
	seen map[int][]HintKind
}

func newHintLedger(rng *rand.Rand) *hintLedger {
	return &hintLedger{
		rng:  rng,
		seen: make(map[int][]HintKind),
	}
}

func (l *hintLedger) hasSeen(seat int, kind HintKind) bool {
	for _, k := range l.seen[seat] {
		if k == kind {
			return true
		}
	}
	return false
}

// issue picks one uniformly-random unseen hint kind for the seat and
// records it. Returns false when the seat has exhausted the pool, which
// callers treat as a no-op, not an error.
func (l *hintLedger) issue(seat int) (HintKind, bool) {
	unseen := make([]HintKind, 0, len(allHintKinds))
	for _, k := range allHintKinds {
		if !l.hasSeen(seat, k) {
			unseen = append(unseen, k)
		}
	}
	if len(unseen) == 0 {
		return "", false
	}

	kind := unseen[l.rng.Intn(len(unseen))]
	l.seen[seat] = append(l.seen[seat], kind)

	return kind, true
}

// materialize renders hint content from the seat's true identity. The only
// randomness is the substring offset, drawn from the match RNG.
func (l *hintLedger) materialize(id Identity, kind HintKind) string {
	switch kind {
	case HintProvider:
		return fmt.Sprintf("Your provider is '%s'.", id.Provider)
	case HintIDLength:
		return fmt.Sprintf("Your model name has %d characters.", len(id.ModelID))
	case HintFirstLetter:
		return fmt.Sprintf("The first letter of your model ID is '%c'.", id.ModelID[0])
	case HintSizeClass:
		if id.Size == SizeFlagship {
			return "You are a flagship/large model."
		}
		return "You are a smaller/efficient model."
	case HintSubstring:
		return fmt.Sprintf("Your model ID contains the substring '%s'.", l.interiorSubstring(id.ModelID))
	}

	return ""
}

// interiorSubstring picks up to 3 characters from the interior of the
// model ID, never including the first or last character, so a single hint
// cannot reveal the whole ID.
func (l *hintLedger) interiorSubstring(modelID string) string {
	n := len(modelID)

	length := 3
	if n-2 < length {
		length = n - 2
	}
	if length < 1 {
		// One- and two-character IDs have no interior; fall back to the
		// first character, which HintFirstLetter discloses anyway.
		return modelID[:1]
	}

	start := 1
	if span := n - 1 - length; span > 1 {
		start += l.rng.Intn(span)
	}

	return modelID[start : start+length]
}
