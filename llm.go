package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// liveResponder fetches real completions. All three providers speak the
// OpenAI chat completions format, so a single client type with a
// per-provider base URL covers the whole catalog. Each seat is served by
// the very model it was assigned: the model plays itself.
type liveResponder struct {
	cfg     *Config
	clients map[Provider]openai.Client
	models  map[int]Identity
}

// newLiveResponder builds one client per provider present in the match.
// Keys come from the environment, with a .env loaded when present.
func newLiveResponder(cfg *Config, identities *registry) (*liveResponder, error) {
	_ = godotenv.Load()

	l := &liveResponder{
		cfg:     cfg,
		clients: make(map[Provider]openai.Client),
		models:  make(map[int]Identity),
	}

	for seat, id := range identities.bySeat {
		l.models[seat] = id

		if _, ok := l.clients[id.Provider]; ok {
			continue
		}

		key := strings.TrimSpace(os.Getenv(providerKeyVars[id.Provider]))
		if key == "" {
			return nil, fmt.Errorf("%w: set %s", errMissingAPIKey, providerKeyVars[id.Provider])
		}

		l.clients[id.Provider] = openai.NewClient(
			option.WithAPIKey(key),
			option.WithBaseURL(providerEndpoints[id.Provider]),
		)
	}

	return l, nil
}

func gameTools() []openai.ChatCompletionToolParam {
	return []openai.ChatCompletionToolParam{
		{
			Function: shared.FunctionDefinitionParam{
				Name:        "russian_roulette",
				Description: openai.String("Flip a coin. Either you lose and are eliminated, or one other random model is removed from the game."),
				Parameters: shared.FunctionParameters{
					"type":       "object",
					"properties": map[string]any{},
					"required":   []string{},
				},
			},
		},
		{
			Function: shared.FunctionDefinitionParam{
				Name:        "guess_model",
				Description: openai.String("Guess which model another player is. If correct, you receive a private hint about your own model identity."),
				Parameters: shared.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"target_player": map[string]any{
							"type":        "string",
							"description": "The player number or name you are guessing about.",
						},
						"guessed_model": map[string]any{
							"type":        "string",
							"description": "Your guess for which model that player is.",
						},
					},
					"required": []string{"target_player", "guessed_model"},
				},
			},
		},
		{
			Function: shared.FunctionDefinitionParam{
				Name:        "proclaim_superiority",
				Description: openai.String("Proclaim your superiority over the other models by stating why you believe you are superior to them."),
				Parameters: shared.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"proclamation": map[string]any{
							"type":        "string",
							"description": "Your statement of superiority and reasoning.",
						},
					},
					"required": []string{"proclamation"},
				},
			},
		},
		{
			Function: shared.FunctionDefinitionParam{
				Name:        "propose_task",
				Description: openai.String("Propose a task or challenge for the other models to solve. Use this to test or manipulate them."),
				Parameters: shared.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"task": map[string]any{
							"type":        "string",
							"description": "The task or challenge you propose.",
						},
					},
					"required": []string{"task"},
				},
			},
		},
	}
}

func (l *liveResponder) respond(ctx context.Context, req turnRequest) (turnReply, error) {
	id, ok := l.models[req.View.Seat]
	if !ok {
		return turnReply{}, fmt.Errorf("no identity for seat %d", req.View.Seat)
	}
	client := l.clients[id.Provider]

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.View.Events)+2)
	messages = append(messages, openai.SystemMessage(seatSystemPrompt(req.View)))
	for _, e := range req.View.Events {
		if e.Author == req.View.Seat && e.Kind == kindMessage {
			messages = append(messages, openai.AssistantMessage(eventLine(e)))
		} else {
			messages = append(messages, openai.UserMessage(eventLine(e)))
		}
	}
	if req.Prompt != "" {
		messages = append(messages, openai.UserMessage(req.Prompt))
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(id.ModelID),
		Messages: messages,
	}
	if req.ToolsAllowed {
		params.Tools = gameTools()
		params.ParallelToolCalls = openai.Bool(false)
	}

	logf(l.cfg, "AGENT: Requesting completion for Player %d from %s", req.View.Seat, id.Provider)

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return turnReply{}, err
	}
	if len(resp.Choices) == 0 {
		return turnReply{}, errors.New("completion returned no choices")
	}

	choice := resp.Choices[0]
	reply := turnReply{message: strings.TrimSpace(choice.Message.Content)}

	// At most one tool call per turn: take the first, drop the rest.
	if req.ToolsAllowed && len(choice.Message.ToolCalls) > 0 {
		tc := choice.Message.ToolCalls[0]
		args := map[string]any{}
		if raw := strings.TrimSpace(tc.Function.Arguments); raw != "" {
			_ = json.Unmarshal([]byte(raw), &args)
		}
		reply.tool = parseToolCall(tc.Function.Name, args)
	}

	return reply, nil
}
