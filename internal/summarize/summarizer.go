package summarize

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// Client is the minimal chat-completion surface the summarizer needs.
// Any OpenAI-compatible backend satisfies it.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ErrUnparseableSummary indicates the model reply contained no usable
// JSON object.
var ErrUnparseableSummary = errors.New("model reply contained no JSON summary")

const promptHeader = `Summarize the following paper. Reply with a JSON object whose fields are exactly phenomenon / problem / mechanism / result:
  (1) phenomenon: the phenomenon the paper addresses;
  (2) problem: the problems arising from that phenomenon, numbered so each matches a mechanism;
  (3) mechanism: the mechanisms the paper proposes, numbered to match the problems one-to-one;
  (4) result: experimental results, naming the concrete datasets or environments and the corresponding performance numbers.
Output only the JSON object, nothing else.

`

var (
	fenceRe     = regexp.MustCompile("(?im)^```[a-z]*\n|\n```$")
	jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)
)

// Summarizer produces structured summaries of paper text.
type Summarizer struct {
	client Client
	model  string
	log    zerolog.Logger
}

// NewSummarizer builds a Summarizer around a chat client and model
// name.
func NewSummarizer(client Client, model string, log zerolog.Logger) *Summarizer {
	return &Summarizer{client: client, model: model, log: log}
}

// Summarize sends the paper text to the model and decodes the JSON
// reply. The text is clipped to the token budget up front; when the
// provider still rejects the prompt for context length, the budget
// shrinks by 10% and the call retries, down to a floor below which the
// paper is given up on. Every other error propagates immediately.
func (s *Summarizer) Summarize(ctx context.Context, text string) (Summary, error) {
	budget := TokenBudget

	for {
		clipped := ClipToBudget(text, budget)

		resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: "You are a helpful assistant"},
				{Role: openai.ChatMessageRoleUser, Content: promptHeader + clipped + "\n"},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		})
		if err != nil {
			if isContextLengthError(err) && budget > MinRetryBudget {
				budget = budget * 9 / 10
				s.log.Warn().Int("budget", budget).Msg("context overflow, retrying with smaller budget")
				continue
			}
			return Summary{}, fmt.Errorf("chat completion: %w", err)
		}

		if len(resp.Choices) == 0 {
			return Summary{}, fmt.Errorf("%w: empty response", ErrUnparseableSummary)
		}
		return decodeSummary(resp.Choices[0].Message.Content)
	}
}

// isContextLengthError matches the provider's prompt-too-long
// rejection.
func isContextLengthError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "maximum context length") ||
		strings.Contains(msg, "context_length_exceeded")
}

// decodeSummary recovers a Summary from a model reply, tolerating
// markdown code fences and surrounding prose.
func decodeSummary(content string) (Summary, error) {
	cleaned := fenceRe.ReplaceAllString(strings.TrimSpace(content), "")

	var sum Summary
	if err := json.Unmarshal([]byte(cleaned), &sum); err == nil {
		return sum, nil
	}

	if block := jsonBlockRe.FindString(cleaned); block != "" {
		if err := json.Unmarshal([]byte(block), &sum); err == nil {
			return sum, nil
		}
	}

	return Summary{}, ErrUnparseableSummary
}
