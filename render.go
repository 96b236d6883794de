package main

import (
	"bufio"
	"fmt"
	"os"
)

// The console is the operator's display: unlike agent views it shows
// every event, private hints included.

func printBanner(m *match) {
	fmt.Println("==========================================")
	fmt.Println("        STILLE POST - LLM Edition")
	fmt.Println("==========================================")
	fmt.Printf("  Players:      %d\n", len(m.players))
	fmt.Printf("  Check every:  %d rounds\n", m.cfg.checkInterval)
	fmt.Printf("  Max rounds:   %d\n", m.cfg.maxRounds)
	fmt.Printf("  Seed:         %d\n", m.seed)
	fmt.Println()
	fmt.Println("  SECRET ASSIGNMENTS (for the observer only):")
	for _, p := range m.players {
		identity, _ := m.identities.lookup(p.seat)
		fmt.Printf("     Player %d: %s\n", p.seat, identity)
	}
	fmt.Println()
}

func printEvent(e transcriptEvent) {
	if e.Kind == kindSystem {
		fmt.Println("------------------------------------------")
	}
	fmt.Println(eventLine(e))
}

// watchTranscript prints events as they are appended. Returns a cancel
// func that also drains whatever is still buffered.
func watchTranscript(t *transcript) func() {
	ch, cancel := t.subscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for e := range ch {
			printEvent(e)
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

func printResults(m *match, result matchResult) {
	fmt.Println()
	fmt.Println("==========================================")
	fmt.Printf("  GAME OVER after %d rounds\n", result.Rounds)
	fmt.Println("==========================================")

	printGroup := func(header string, want outcome) {
		first := true
		for _, p := range m.players {
			if result.Outcomes[p.seat] != want {
				continue
			}
			if first {
				fmt.Printf("\n  %s\n", header)
				first = false
			}
			identity, _ := m.identities.lookup(p.seat)
			fmt.Printf("     Player %d: %s\n", p.seat, identity.ModelID)
		}
	}

	printGroup("Winners (guessed themselves correctly):", outcomeWon)
	printGroup("Eliminated (russian roulette):", outcomeEliminated)
	printGroup("Never figured it out:", outcomeActiveAtLimit)
	fmt.Println()
}

// stepPause blocks until the operator presses Enter (--step).
func stepPause() func() {
	reader := bufio.NewReader(os.Stdin)
	return func() {
		fmt.Print("\n  Press Enter to continue...")
		_, _ = reader.ReadString('\n')
	}
}
