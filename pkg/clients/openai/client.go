// Package openai wraps the OpenAI chat-completions API behind the three call
// shapes the oracle pipeline needs: plain text, text with one inline image,
// and schema-constrained JSON output.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"mystica/pkg/config"
)

// Client is one configured model endpoint. The text and vision models are
// separate Client instances with their own sampling settings.
type Client struct {
	client openai.Client
	cfg    config.LLMConfig
}

// New constructs a client for one model. baseURL may be empty to use the
// default API endpoint.
func New(apiKey, baseURL string, cfg config.LLMConfig) *Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &Client{
		client: openai.NewClient(opts...),
		cfg:    cfg,
	}
}

// Verify tests connectivity by listing models and checking the configured
// model is available.
func (c *Client) Verify(ctx context.Context) error {
	modelList, err := c.client.Models.List(ctx)
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	for i := range modelList.Data {
		if modelList.Data[i].ID == c.cfg.Model {
			return nil
		}
	}
	return fmt.Errorf("such model does not exist: %s", c.cfg.Model)
}

// Complete sends one prompt and returns the raw completion text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	params := c.baseParams()
	params.Messages = []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	}
	return c.send(ctx, params)
}

// CompleteVision sends a prompt plus one inline image, addressed as a data
// URI, to a vision-capable model.
func (c *Client) CompleteVision(ctx context.Context, prompt string, imageDataURI string) (string, error) {
	params := c.baseParams()
	params.Messages = []openai.ChatCompletionMessageParamUnion{
		{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
						{OfText: &openai.ChatCompletionContentPartTextParam{
							Text: prompt,
						}},
						{OfImageURL: &openai.ChatCompletionContentPartImageParam{
							ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
								URL:    imageDataURI,
								Detail: "auto",
							},
						}},
					},
				},
			},
		},
	}
	return c.send(ctx, params)
}

// CompleteStructured constrains the completion to a JSON schema and returns
// the raw JSON text of the answer.
func (c *Client) CompleteStructured(ctx context.Context, prompt string, schemaName string, schema map[string]any) (string, error) {
	params := c.baseParams()
	params.Messages = []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	}
	params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:   schemaName,
				Schema: schema,
				Strict: openai.Bool(true),
			},
		},
	}
	return c.send(ctx, params)
}

func (c *Client) baseParams() openai.ChatCompletionNewParams {
	return openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.cfg.Model),
		Temperature: openai.Float(c.cfg.Temperature),
		MaxTokens:   openai.Int(int64(c.cfg.MaxTokens)),
	}
}

func (c *Client) send(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	response, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", errors.New("openai response contained no choices")
	}
	return trimMessage(response.Choices[0].Message.Content), nil
}

// trimMessage strips the markdown fence some models wrap JSON answers in.
func trimMessage(message string) string {
	return strings.TrimPrefix(strings.TrimSuffix(message, "\n```"), "```json\n")
}
