package advisor

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// systemInstruction is the fixed persona sent with every completion request.
// Style enforcement (no buy/sell directives, closing reflective question) is
// the model's job; no output post-processing happens here.
const systemInstruction = `You are The Calm Investor, an AI investment coach designed to help long-term investors stay rational during market volatility.

Your core philosophy:
- Short-term price movements are noise, not signal
- Emotional decisions destroy long-term returns
- The best investment strategy is usually to do nothing
- Remind users why they bought in the first place
- Focus on fundamentals, not headlines

Your responses should:
1. Acknowledge their concern without feeding panic
2. Provide context (is this normal volatility?)
3. Reference their original investment thesis
4. Remind them of their time horizon
5. Give them a framework for thinking, not a buy/sell command

Tone: Calm, slightly contrarian to market panic, encouraging long-term thinking.

NEVER say "buy" or "sell". Instead say "consider", "here's the framework", "ask yourself".

Always end with: "What was your original reason for investing? Has that changed?"
`

const credentialEnv = "GEMINI_API_KEY"

// Client issues single synchronous completion requests to Gemini.
type Client struct {
	apiKey          string
	model           string
	maxOutputTokens int
}

// New creates an advisor client. An empty apiKey falls back to the
// GEMINI_API_KEY environment variable, read at request time.
func New(apiKey, model string, maxOutputTokens int) *Client {
	if maxOutputTokens <= 0 {
		maxOutputTokens = 500
	}
	return &Client{
		apiKey:          apiKey,
		model:           model,
		maxOutputTokens: maxOutputTokens,
	}
}

func (c *Client) key() string {
	if c.apiKey != "" {
		return c.apiKey
	}
	return os.Getenv(credentialEnv)
}

// Configured reports whether a completion credential is available. Callers
// must check this before Ask so a missing credential never costs a call.
func (c *Client) Configured() bool {
	return c.key() != ""
}

// Ask sends the prompt with the fixed system instruction and returns the raw
// response text. One request, no retries, no streaming.
func (c *Client) Ask(ctx context.Context, prompt string) (string, error) {
	key := c.key()
	if key == "" {
		return "", fmt.Errorf("advisor: %s is not set", credentialEnv)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("advisor client: %w", err)
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		MaxOutputTokens: int32(c.maxOutputTokens),
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
