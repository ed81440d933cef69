package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretesun/hey-there/internal/domain"
	"github.com/tmc/langchaingo/llms"
)

// GeneratePackingList asks for a packing list tailored to p.
func (c *Client) GeneratePackingList(ctx context.Context, p *domain.Plan) (*domain.PackingList, error) {
	if p == nil {
		return nil, domain.NoPlanError{}
	}

	prompt := BuildPackingPrompt(p, c.planner.Language, c.packJSON)
	msgs := []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)}

	resp, err := c.llm.GenerateContent(ctx, msgs, c.callOptions(llms.WithJSONMode())...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate packing list: %w", err)
	}
	content, err := firstChoice(resp)
	if err != nil {
		return nil, err
	}

	var list domain.PackingList
	if err := json.Unmarshal([]byte(stripFences(content)), &list); err != nil {
		return nil, fmt.Errorf("packing list is not valid JSON: %w", err)
	}
	if err := domain.ValidateStruct(&list); err != nil {
		return nil, fmt.Errorf("packing list is invalid: %w", err)
	}
	return &list, nil
}
