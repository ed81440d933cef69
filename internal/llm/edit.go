package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretesun/hey-there/internal/domain"
	"github.com/tmc/langchaingo/llms"
)

// EditPlan sends history plus the new instruction and returns the full
// replacement plan. history is expected to start with the current plan.
func (c *Client) EditPlan(ctx context.Context, history []domain.Turn, instruction string) (*domain.Plan, error) {
	msgs := make([]llms.MessageContent, 0, len(history)+2)
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeSystem,
		EditSystemInstruction(c.planner.Language, c.planner.OffTopicMessage, c.planJSON)))
	msgs = append(msgs, buildMessageHistory(history)...)
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeHuman, instruction))

	c.logger.Debug("editing plan", "history", len(history))
	resp, err := c.llm.GenerateContent(ctx, msgs, c.callOptions(llms.WithJSONMode())...)
	if err != nil {
		return nil, fmt.Errorf("failed to edit plan: %w", err)
	}
	content, err := firstChoice(resp)
	if err != nil {
		return nil, err
	}

	var p domain.Plan
	if err := json.Unmarshal([]byte(stripFences(content)), &p); err != nil {
		return nil, fmt.Errorf("edited plan is not valid JSON: %w", err)
	}
	if err := domain.ValidateStruct(&p); err != nil {
		return nil, fmt.Errorf("edited plan is invalid: %w", err)
	}
	return &p, nil
}
