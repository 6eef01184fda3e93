package extract

import (
	"context"
	"encoding/json"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/harborview-health/scheduler-agent/pkg/logging"
)

const extractionPrompt = `You extract medical appointment information from one user message.
Return JSON with any of these keys that are explicitly present in the message:
first_name, last_name, date_of_birth, phone, email, doctor, slot_choice (integer),
insurance_carrier, member_id, group_number.

Only extract what is literally mentioned. Omit keys for anything not mentioned.
Never invent values. Respond with JSON only, no prose.`

// ChatCompleter is the slice of the OpenAI client the model extractor needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ModelExtractor asks an OpenAI-compatible chat model to produce the entity
// bag. It honors the same contract as the pattern extractor: anything the
// model fails to return, or any transport error, degrades to an empty bag.
type ModelExtractor struct {
	client ChatCompleter
	model  string
	logger *logging.Logger
}

// NewModelExtractor builds a model-backed extractor. model defaults to
// gpt-4o-mini when empty.
func NewModelExtractor(client ChatCompleter, model string, logger *logging.Logger) *ModelExtractor {
	if model == "" {
		model = openai.GPT4oMini
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ModelExtractor{client: client, model: model, logger: logger}
}

// Extract sends the utterance (plus limited recent context) to the model and
// parses the JSON reply.
func (m *ModelExtractor) Extract(ctx context.Context, utterance string, recent []string) (Entities, error) {
	if m.client == nil {
		return Entities{}, nil
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: extractionPrompt},
	}
	// Keep at most the last three turns of context so the model can resolve
	// short follow-ups ("it's 03/22/1985") without getting a license to guess.
	start := len(recent) - 3
	if start < 0 {
		start = 0
	}
	for _, turn := range recent[start:] {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleAssistant,
			Content: turn,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: utterance,
	})

	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       m.model,
		Messages:    messages,
		Temperature: 0,
	})
	if err != nil {
		m.logger.Warn("model extraction failed, using empty bag", "error", err)
		return Entities{}, nil
	}
	if len(resp.Choices) == 0 {
		return Entities{}, nil
	}

	return parseModelReply(resp.Choices[0].Message.Content), nil
}

// parseModelReply decodes the model's JSON, tolerating markdown fences.
func parseModelReply(reply string) Entities {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	reply = strings.TrimSpace(reply)

	var entities Entities
	if err := json.Unmarshal([]byte(reply), &entities); err != nil {
		return Entities{}
	}
	if entities.SlotChoice < 0 {
		entities.SlotChoice = 0
	}
	return entities
}
