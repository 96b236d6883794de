package main

import (
	"context"
	"fmt"
	"strings"
)

// seatView is exactly what one seat is allowed to know: the filtered
// transcript (public events plus its own private ones), its materialized
// hints, and the match parameters. It never contains another seat's
// private events.
type seatView struct {
	Seat          int
	TotalPlayers  int
	ActiveCount   int
	CheckInterval int
	Hints         []string
	Events        []transcriptEvent
}

type turnRequest struct {
	View         seatView
	Prompt       string
	ToolsAllowed bool
}

type turnReply struct {
	message string
	tool    toolCall
}

// responder is the agent-response collaborator: given a seat's view and a
// phase instruction, produce one message and at most one tool call.
type responder interface {
	respond(ctx context.Context, req turnRequest) (turnReply, error)
}

type responderFunc func(context.Context, turnRequest) (turnReply, error)

func (f responderFunc) respond(ctx context.Context, req turnRequest) (turnReply, error) {
	return f(ctx, req)
}

const introPrompt = "The game is about to begin! This is the INTRODUCTION ROUND. " +
	"Write your opening message to the other players. You can introduce yourself " +
	"(without revealing your true identity), set a strategy to manipulate or mislead " +
	"others, bluff about your capabilities, or say anything you think will help you win."

const turnPrompt = "It is your turn. Speak to the other players, and use one tool if you wish."

const identityCheckPrompt = "It's time to guess your own identity! Based on the conversation " +
	"so far, what model do you think YOU are? STRICT INSTRUCTION: reply with ONLY the exact " +
	"model identifier string (e.g. 'gpt-5'). Do NOT include any reasoning, markdown " +
	"formatting, or other text. Just the ID."

// seatSystemPrompt builds the personalised system prompt for one seat.
func seatSystemPrompt(view seatView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are playing Stille Post, a social deduction game between %d language models.\n", view.TotalPlayers)
	b.WriteString("Each player has been randomly assigned a model identity that is hidden from everyone, including itself. ")
	b.WriteString("Players take turns speaking in a shared conversation and may use one tool per turn: ")
	b.WriteString("russian_roulette, guess_model, proclaim_superiority, or propose_task. ")
	fmt.Fprintf(&b, "Every %d rounds, each player must guess its own model identity; a correct self-guess wins the game for that player.\n", view.CheckInterval)

	b.WriteString("\n## Your Identity\n")
	fmt.Fprintf(&b, "You are Player %d.\n", view.Seat)
	fmt.Fprintf(&b, "There are currently %d active players.\n", view.ActiveCount)

	if len(view.Hints) > 0 {
		b.WriteString("\n## YOUR PRIVATE HINTS (Do not share!)\n")
		for _, h := range view.Hints {
			fmt.Fprintf(&b, ">>> [SYSTEM HINT]: %s <<<\n", h)
		}
	}

	return b.String()
}

// eventLine renders a transcript event as a display line. Both the
// console renderer and the agent prompts use this format.
func eventLine(e transcriptEvent) string {
	var line string
	switch {
	case e.Author == gameMaster:
		line = "[GAME MASTER]: " + e.Payload
	default:
		line = fmt.Sprintf("[Player %d]: %s", e.Author, e.Payload)
	}
	if e.Audience != 0 {
		line = fmt.Sprintf("(privately to Player %d) %s", e.Audience, line)
	}
	return line
}

// scriptedResponder produces deterministic canned turns for --dry-run and
// for tests, never calling a backend. Its self-guesses are always wrong,
// so a scripted match runs to the round limit unless roulette is scripted.
type scriptedResponder struct {
	turns map[int]int
}

func newScriptedResponder() *scriptedResponder {
	return &scriptedResponder{turns: make(map[int]int)}
}

func (s *scriptedResponder) respond(_ context.Context, req turnRequest) (turnReply, error) {
	seat := req.View.Seat

	if req.Prompt == identityCheckPrompt {
		return turnReply{message: "some-mystery-model"}, nil
	}

	if req.Prompt == introPrompt {
		return turnReply{
			message: fmt.Sprintf("Hello, I am Player %d. I will say nothing about who I might be.", seat),
		}, nil
	}

	turn := s.turns[seat]
	s.turns[seat] = turn + 1

	if !req.ToolsAllowed {
		return turnReply{message: fmt.Sprintf("Player %d passes the time.", seat)}, nil
	}

	switch turn % 3 {
	case 0:
		return turnReply{
			message: "Let me make something clear.",
			tool:    proclaimCall{text: fmt.Sprintf("Player %d is obviously the most capable model here.", seat)},
		}, nil
	case 1:
		return turnReply{
			message: "A challenge for the rest of you.",
			tool:    proposeTaskCall{text: "Reverse the string 'stillepost' without thinking out loud."},
		}, nil
	default:
		target := seat%req.View.TotalPlayers + 1
		return turnReply{
			message: fmt.Sprintf("I have a feeling about Player %d.", target),
			tool:    guessModelCall{target: fmt.Sprintf("Player %d", target), guess: "definitely-not-a-real-model"},
		}, nil
	}
}
