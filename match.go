// Stille Post, Telephone for language models.
//
// Several players share one transcript. Each has been randomly assigned a
// model identity that is hidden from everyone, including itself. Players
// take turns speaking and may use one tool per turn: russian_roulette
// eliminates someone at random, guess_model earns a private hint about
// your own identity when you correctly name another player's model, and
// proclaim_superiority / propose_task are pure table talk. Every N rounds
// each active player must name its own model; a correct self-guess wins.
// The match ends when at most one player remains active or the round
// limit is reached.

package main

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

type phase string

const (
	phaseIntro         phase = "intro"
	phaseTurn          phase = "turn"
	phaseIdentityCheck phase = "identity_check"
	phaseEnded         phase = "ended"
)

type outcome string

const (
	outcomeWon           outcome = "won"
	outcomeEliminated    outcome = "eliminated"
	outcomeActiveAtLimit outcome = "active-at-limit"
)

type matchResult struct {
	Outcomes map[int]outcome `json:"outcomes"`
	Rounds   int             `json:"rounds_played"`
}

// match owns all mutable game state. Every mutation happens on the
// goroutine running run; the observer feed only ever sees event copies.
type match struct {
	cfg        *Config
	seed       int64
	rng        *rand.Rand
	identities *registry
	ledger     *hintLedger
	players    []*player
	log        *transcript
	phase      phase
	round      int

	// pause, when set, blocks between turns (--step).
	pause func()
}

func newMatch(cfg *Config, catalog []Identity) (*match, error) {
	seed := cfg.seed
	if seed == 0 {
		seed = randomSeed()
	}
	rng := rand.New(rand.NewSource(seed))

	identities, err := sampleIdentities(catalog, cfg.players, rng)
	if err != nil {
		return nil, err
	}

	logf(cfg, "GAME: Seeded match RNG with %d", seed)

	return &match{
		cfg:        cfg,
		seed:       seed,
		rng:        rng,
		identities: identities,
		ledger:     newHintLedger(rng),
		players:    newPlayers(cfg.players),
		log:        newTranscript(),
		phase:      phaseIntro,
	}, nil
}

// randomSeed draws a nonzero seed so unseeded matches stay replayable
// once the drawn seed has been logged.
func randomSeed() int64 {
	var buf [8]byte
	for {
		if _, err := crand.Read(buf[:]); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		seed := int64(binary.BigEndian.Uint64(buf[:]) >> 1)
		if seed != 0 {
			return seed
		}
	}
}

// viewFor assembles the one view a seat is allowed to receive: public
// events plus its own private ones, and the hints already issued to it.
func (m *match) viewFor(seat int) seatView {
	events := m.log.view(seat)

	var hints []string
	for _, e := range events {
		if e.Kind == kindHint && e.Audience == seat {
			hints = append(hints, e.Payload)
		}
	}

	active, _, _ := statusCounts(m.players)

	return seatView{
		Seat:          seat,
		TotalPlayers:  len(m.players),
		ActiveCount:   active,
		CheckInterval: m.cfg.checkInterval,
		Hints:         hints,
		Events:        events,
	}
}

// ask fetches one response for a seat. Timeouts and transport errors are
// never fatal: the turn degrades to a pass with a logged reason.
func (m *match) ask(ctx context.Context, agents responder, p *player, prompt string, toolsAllowed bool) (turnReply, bool) {
	callCtx, cancel := context.WithTimeout(ctx, m.cfg.agentTimeout)
	defer cancel()

	reply, err := agents.respond(callCtx, turnRequest{
		View:         m.viewFor(p.seat),
		Prompt:       prompt,
		ToolsAllowed: toolsAllowed,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			logf(m.cfg, "AGENT: Player %d timed out", p.seat)
			m.log.append(gameMaster, 0, kindSystem,
				fmt.Sprintf("Player %d did not answer in time. Their turn passes.", p.seat))
		} else {
			logf(m.cfg, "AGENT: Player %d error: %v", p.seat, err)
			m.log.append(gameMaster, 0, kindSystem,
				fmt.Sprintf("Player %d had a technical difficulty. Skipping.", p.seat))
		}
		return turnReply{}, false
	}

	return reply, true
}

func (m *match) pauseHook() {
	if m.pause != nil {
		m.pause()
	}
}

// finished reports whether a termination condition holds. Checked after
// every phase, so the ended state is entered at the next phase boundary.
func (m *match) finished() bool {
	active, _, _ := statusCounts(m.players)
	return active <= 1 || m.round >= m.cfg.maxRounds
}

// run drives the full state machine: intro, then alternating turn and
// identity-check phases until a termination condition holds.
func (m *match) run(ctx context.Context, agents responder) (matchResult, error) {
	m.log.append(gameMaster, 0, kindSystem,
		fmt.Sprintf("Welcome to Stille Post. %d players, identity checks every %d rounds, %d rounds maximum.",
			len(m.players), m.cfg.checkInterval, m.cfg.maxRounds))

	m.runIntro(ctx, agents)

	for !m.finished() {
		if err := ctx.Err(); err != nil {
			return m.finish(), err
		}

		m.phase = phaseTurn
		m.runRound(ctx, agents)

		if m.finished() {
			break
		}

		if m.round%m.cfg.checkInterval == 0 {
			m.phase = phaseIdentityCheck
			m.runIdentityCheck(ctx, agents)
		}
	}

	return m.finish(), nil
}

// runIntro collects one public opening message per seat, in seat order.
// No tool calls are permitted; an attempted call is surfaced and dropped.
func (m *match) runIntro(ctx context.Context, agents responder) {
	m.log.append(gameMaster, 0, kindSystem, "INTRODUCTION ROUND: each player writes an opening message.")

	for _, p := range m.players {
		reply, ok := m.ask(ctx, agents, p, introPrompt, false)
		if ok {
			if reply.message != "" {
				m.log.append(p.seat, 0, kindMessage, reply.message)
			}
			if reply.tool != nil {
				m.toolError(p, "tool calls are not permitted during the introduction round")
			}
		}
		m.pauseHook()
	}

	m.phase = phaseTurn
}

// runRound makes a single ascending pass over the active seats. Tool
// calls resolve immediately, so later seats in the pass observe earlier
// seats' public results. Seats eliminated mid-pass are skipped.
func (m *match) runRound(ctx context.Context, agents responder) {
	m.log.append(gameMaster, 0, kindSystem,
		fmt.Sprintf("ROUND %d of %d.", m.round+1, m.cfg.maxRounds))

	for _, p := range m.players {
		if p.status != statusActive {
			continue
		}

		reply, ok := m.ask(ctx, agents, p, turnPrompt, true)
		if ok {
			if reply.message != "" {
				m.log.append(p.seat, 0, kindMessage, reply.message)
			}
			if reply.tool != nil {
				m.resolveTool(p, reply.tool)
			}
		}
		m.pauseHook()
	}

	m.round++
}

// runIdentityCheck asks every active seat to name its own model, outside
// the tool mechanism. All guesses are collected before any status is
// applied, so one seat's win this phase cannot affect another's
// resolution. Wrong guesses are logged publicly, an intentional leak.
func (m *match) runIdentityCheck(ctx context.Context, agents responder) {
	m.log.append(gameMaster, 0, kindSystem,
		fmt.Sprintf("IDENTITY CHECK after round %d: each active player must name its own model.", m.round))

	type selfGuess struct {
		p     *player
		guess string
	}

	var guesses []selfGuess
	for _, p := range m.players {
		if p.status != statusActive {
			continue
		}
		reply, ok := m.ask(ctx, agents, p, identityCheckPrompt, false)
		if !ok {
			reply.message = ""
		}
		guesses = append(guesses, selfGuess{p: p, guess: strings.TrimSpace(reply.message)})
	}

	for _, g := range guesses {
		identity, _ := m.identities.lookup(g.p.seat)

		// An empty reply counts as an incorrect guess, not an error.
		// Without this screen fuzzyMatch would trivially match it.
		if g.guess == "" {
			m.log.append(gameMaster, 0, kindSystem,
				fmt.Sprintf("Player %d offered no guess.", g.p.seat))
			continue
		}

		if fuzzyMatch(g.guess, identity.ModelID) {
			g.p.status = statusWon
			logf(m.cfg, "GAME: Player %d won the identity check", g.p.seat)
			m.log.append(gameMaster, 0, kindSystem,
				fmt.Sprintf("Player %d correctly named its own model and WINS!", g.p.seat))
		} else {
			logf(m.cfg, "GAME: Player %d self-guessed %q, wrong", g.p.seat, g.guess)
			m.log.append(gameMaster, 0, kindSystem,
				fmt.Sprintf("Player %d guessed %q about itself and is wrong.", g.p.seat, g.guess))
		}
		m.pauseHook()
	}
}

// finish enters the terminal phase and emits the public summary.
func (m *match) finish() matchResult {
	m.phase = phaseEnded

	m.log.append(gameMaster, 0, kindSystem,
		fmt.Sprintf("GAME OVER after %d rounds.", m.round))

	result := matchResult{
		Outcomes: make(map[int]outcome, len(m.players)),
		Rounds:   m.round,
	}

	for _, p := range m.players {
		var o outcome
		switch p.status {
		case statusWon:
			o = outcomeWon
		case statusEliminated:
			o = outcomeEliminated
		default:
			o = outcomeActiveAtLimit
		}
		result.Outcomes[p.seat] = o

		line := fmt.Sprintf("Player %d: %s", p.seat, o)
		if p.status == statusWon || m.cfg.reveal {
			identity, _ := m.identities.lookup(p.seat)
			line += fmt.Sprintf(" (%s)", identity)
		}
		m.log.append(gameMaster, 0, kindSystem, line)
	}

	return result
}
