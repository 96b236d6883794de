/*
Copyright © 2026 Nils Kluewer
*/

package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

const (
	releaseVersion = "0.1.0"
)

func main() {
	log.SetFlags(0)
	cfg := &Config{}
	cobra.CheckErr(newCmd(cfg).Execute())
}

// runMatch wires one match together: identities, players, agent
// backends, the console renderer, and (optionally) the observer server.
func runMatch(ctx context.Context, cfg *Config) error {
	m, err := newMatch(cfg, defaultCatalog)
	if err != nil {
		return err
	}

	var agents responder
	if cfg.dryRun {
		agents = newScriptedResponder()
	} else {
		agents, err = newLiveResponder(cfg, m.identities)
		if err != nil {
			return err
		}
	}

	if cfg.step {
		m.pause = stepPause()
	}

	serveErr := make(chan error, 1)
	if cfg.serve {
		go func() {
			serveErr <- serveObserver(ctx, cfg, m)
		}()
	}

	printBanner(m)
	stop := watchTranscript(m.log)

	result, err := m.run(ctx, agents)
	stop()
	printResults(m, result)
	if err != nil {
		return err
	}

	if cfg.serve {
		// Keep the transcript browsable after the match ends.
		logf(cfg, "SERVE: Match over, observer server remains up")
		return <-serveErr
	}

	return nil
}
