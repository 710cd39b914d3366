package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

var (
	ErrGroqRequest     = errors.New("groq request failed")
	ErrInvalidResponse = errors.New("invalid response from groq")
	ErrEmptyCompletion = errors.New("empty completion")
)

// Client generates text for the enrichment pipeline. Implementations must be
// safe for concurrent use.
type Client interface {
	GenerateSummary(ctx context.Context, text string, maxLength int) (string, error)
	SuggestCategories(ctx context.Context, mission string, vocabulary []string) ([]string, error)
}

// GroqClient calls the Groq chat-completions API.
type GroqClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGroqClient builds a client from GROQ_API_KEY, GROQ_BASE_URL and GROQ_MODEL.
// Returns (nil, nil) when no API key is configured so callers can fall back to
// the disabled variant.
func NewGroqClient() (*GroqClient, error) {
	apiKey := strings.TrimSpace(os.Getenv("GROQ_API_KEY"))
	if apiKey == "" {
		return nil, nil
	}

	baseURL := strings.TrimSpace(os.Getenv("GROQ_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://api.groq.com/openai"
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	model := strings.TrimSpace(os.Getenv("GROQ_MODEL"))
	if model == "" {
		model = "mixtral-8x7b-32768"
	}

	return &GroqClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// GenerateSummary asks for a 2-3 sentence summary bounded by maxLength characters.
func (c *GroqClient) GenerateSummary(ctx context.Context, text string, maxLength int) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the following NGO description in 2-3 sentences (maximum %d characters).\n"+
			"Focus on their main mission and impact:\n\n%s\n\nSummary:",
		maxLength, text,
	)

	content, err := c.complete(ctx, prompt, 100, 0.3)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(content), nil
}

// SuggestCategories asks for 1-3 labels drawn from the closed vocabulary.
func (c *GroqClient) SuggestCategories(ctx context.Context, mission string, vocabulary []string) ([]string, error) {
	prompt := fmt.Sprintf(
		"Based on this NGO mission, suggest 1-3 relevant categories from this list:\n%s\n\n"+
			"Mission: %s\n\nReturn only category names separated by commas:",
		strings.Join(vocabulary, ", "), mission,
	)

	content, err := c.complete(ctx, prompt, 50, 0.2)
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, part := range strings.Split(content, ",") {
		label := strings.TrimSpace(part)
		if label != "" {
			labels = append(labels, label)
		}
	}
	if len(labels) > 3 {
		labels = labels[:3]
	}
	return labels, nil
}

func (c *GroqClient) complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	url := c.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call groq: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		log.Printf("Groq completion failed: %d - %s", resp.StatusCode, string(respBody))
		return "", fmt.Errorf("%w: status %d", ErrGroqRequest, resp.StatusCode)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(result.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	return result.Choices[0].Message.Content, nil
}
