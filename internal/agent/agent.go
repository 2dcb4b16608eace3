// Package agent runs a persona-bound, tool-augmented generation loop on top
// of a chat model with native function calling. The model decides whether and
// how often to call the declared tools; the loop here just executes requested
// calls, feeds results back, and stops at the model's final text answer.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/llms"
)

// maxRounds caps tool-use iterations per request so a confused model cannot
// loop forever.
const maxRounds = 6

// Generator is the chat model behind the agent. Satisfied by llm.Client.
type Generator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Tool is a callable capability declared to the model: a name, a description,
// a JSON schema for its arguments, and the handler that executes a call.
type Tool struct {
	Name        string
	Description string
	Schema      map[string]any
	Handler     func(ctx context.Context, args json.RawMessage) (string, error)
}

// Agent is a persona-bound conversational agent.
type Agent struct {
	gen    Generator
	tools  []Tool
	system string
	logger *slog.Logger
}

// New creates an Agent with the fixed persona system prompt and the given tools.
func New(gen Generator, tools ...Tool) *Agent {
	return &Agent{
		gen:    gen,
		tools:  tools,
		system: SystemPrompt,
		logger: slog.Default(),
	}
}

// Run sends the input to the model and loops over requested tool calls until
// the model produces a final text answer. Tool handler failures are reported
// back to the model as error strings so it can recover or apologize;
// generation failures propagate to the caller.
func (a *Agent) Run(ctx context.Context, input string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, a.system),
		llms.TextParts(llms.ChatMessageTypeHuman, input),
	}

	llmTools := make([]llms.Tool, len(a.tools))
	for i, t := range a.tools {
		llmTools[i] = llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Schema,
			},
		}
	}

	var lastText string
	for round := 0; round < maxRounds; round++ {
		resp, err := a.gen.GenerateContent(ctx, messages, llms.WithTools(llmTools))
		if err != nil {
			return "", fmt.Errorf("generating response: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("model returned no choices")
		}
		choice := resp.Choices[0]
		lastText = choice.Content

		if len(choice.ToolCalls) == 0 {
			return choice.Content, nil
		}

		// Echo the assistant's tool-call turn back into context.
		assistantMsg := llms.MessageContent{Role: llms.ChatMessageTypeAI}
		if choice.Content != "" {
			assistantMsg.Parts = append(assistantMsg.Parts, llms.TextPart(choice.Content))
		}
		for _, tc := range choice.ToolCalls {
			assistantMsg.Parts = append(assistantMsg.Parts, tc)
		}
		messages = append(messages, assistantMsg)

		for _, tc := range choice.ToolCalls {
			name := tc.FunctionCall.Name
			args := tc.FunctionCall.Arguments
			a.logger.Debug("agent tool call", "tool", name, "args", args)

			result := a.callTool(ctx, name, json.RawMessage(args))
			messages = append(messages, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: tc.ID,
						Name:       name,
						Content:    result,
					},
				},
			})
		}
	}

	if lastText != "" {
		return lastText, nil
	}
	return "", fmt.Errorf("tool loop exceeded %d rounds without a final answer", maxRounds)
}

func (a *Agent) callTool(ctx context.Context, name string, args json.RawMessage) string {
	for _, t := range a.tools {
		if t.Name != name {
			continue
		}
		result, err := t.Handler(ctx, args)
		if err != nil {
			a.logger.Warn("tool call failed", "tool", name, "error", err)
			return "Error: " + err.Error()
		}
		return result
	}
	return "Unknown tool: " + name
}
