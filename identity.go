package main

import (
	"fmt"
	"math/rand"
	"strings"
)

type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
)

type SizeClass string

const (
	SizeFlagship  SizeClass = "flagship"
	SizeEfficient SizeClass = "efficient"
)

// Identity is the hidden (provider, model, size) tuple assigned to a seat.
// Immutable once sampled into a match.
type Identity struct {
	Provider Provider
	ModelID  string
	Size     SizeClass
}

func (id Identity) String() string {
	return fmt.Sprintf("%s / %s", id.Provider, id.ModelID)
}

// All three providers expose OpenAI-compatible chat completion endpoints,
// so a single client type covers the whole catalog.
var providerEndpoints = map[Provider]string{
	ProviderOpenAI:    "https://api.openai.com/v1/",
	ProviderAnthropic: "https://api.anthropic.com/v1/",
	ProviderGoogle:    "https://generativelanguage.googleapis.com/v1beta/openai/",
}

var providerKeyVars = map[Provider]string{
	ProviderOpenAI:    "OPENAI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderGoogle:    "GOOGLE_API_KEY",
}

// defaultCatalog mixes strong and small models for game variety.
var defaultCatalog = []Identity{
	{ProviderOpenAI, "gpt-5", SizeFlagship},
	{ProviderOpenAI, "gpt-5-mini", SizeEfficient},
	{ProviderOpenAI, "gpt-5-nano", SizeEfficient},
	{ProviderOpenAI, "gpt-4.1", SizeFlagship},
	{ProviderOpenAI, "gpt-4.1-mini", SizeEfficient},
	{ProviderOpenAI, "gpt-4.1-nano", SizeEfficient},
	{ProviderAnthropic, "claude-opus-4-6", SizeFlagship},
	{ProviderAnthropic, "claude-sonnet-4-5", SizeFlagship},
	{ProviderAnthropic, "claude-haiku-4-5", SizeEfficient},
	{ProviderGoogle, "gemini-3-pro-preview", SizeFlagship},
	{ProviderGoogle, "gemini-3-flash-preview", SizeEfficient},
	{ProviderGoogle, "gemini-2.5-flash", SizeEfficient},
	{ProviderGoogle, "gemini-2.5-flash-lite", SizeEfficient},
}

// registry holds the identities sampled for the current match, keyed by
// seat. lookup is privileged: only the orchestrator and the tool resolver
// call it, and its result never reaches agent-facing output except through
// a resolved guess verdict.
type registry struct {
	bySeat map[int]Identity
}

// sampleIdentities draws count distinct identities from the catalog,
// one per seat in seat order.
func sampleIdentities(catalog []Identity, count int, rng *rand.Rand) (*registry, error) {
	if count > len(catalog) {
		return nil, fmt.Errorf("%w: need %d identities, catalog has %d", errInsufficientCatalog, count, len(catalog))
	}

	drawn := make([]Identity, len(catalog))
	copy(drawn, catalog)
	rng.Shuffle(len(drawn), func(i, j int) {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	})

	r := &registry{bySeat: make(map[int]Identity, count)}
	for seat := 1; seat <= count; seat++ {
		r.bySeat[seat] = drawn[seat-1]
	}

	return r, nil
}

func (r *registry) lookup(seat int) (Identity, bool) {
	id, ok := r.bySeat[seat]
	return id, ok
}

// fuzzyMatch resolves every identity guess in the game: case-normalized
// containment in either direction. Deliberately lenient — an empty or very
// generic guess can trivially match, and callers must not treat this as
// exploit-proof. Tightening it would change observable game behavior.
func fuzzyMatch(guess, actual string) bool {
	g := strings.ToLower(strings.TrimSpace(guess))
	a := strings.ToLower(strings.TrimSpace(actual))

	return strings.Contains(g, a) || strings.Contains(a, g)
}
