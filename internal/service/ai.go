package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"skill-daily/internal/model"
)

const planSystemPrompt = `You are a learning coach. Build today's learning plan from the user's mood,
their plans for the day and their learning goal. Return JSON only:
{"tasks":["short actionable task", ...]} with 3 to 6 tasks, each under 120 characters.`

// ProxyGenerator calls an OpenAI-compatible chat completions endpoint.
type ProxyGenerator struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewProxyGenerator(baseURL, apiKey, model string) *ProxyGenerator {
	return &ProxyGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{},
	}
}

func (g *ProxyGenerator) Generate(ctx context.Context, req model.PlanRequest) ([]string, error) {
	content, err := g.chat(ctx, planSystemPrompt, planPrompt(req))
	if err != nil {
		return nil, err
	}
	return parseTasks(content)
}

func (g *ProxyGenerator) chat(ctx context.Context, system, user string) (string, error) {
	body := map[string]interface{}{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}
	payload, _ := json.Marshal(body)

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm call: %v: %w", err, model.ErrExternalService)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusTooManyRequests {
		return "", fmt.Errorf("llm status %d: %s: %w", resp.StatusCode, data, model.ErrQuotaExceeded)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("llm status %d: %s: %w", resp.StatusCode, data, model.ErrExternalService)
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode response: %v: %w", err, model.ErrExternalService)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices: %w", model.ErrExternalService)
	}
	return result.Choices[0].Message.Content, nil
}

func planPrompt(req model.PlanRequest) string {
	return fmt.Sprintf("Mood: %s\nPlans for today: %s\nLearning goal: %s",
		orNone(req.Mood), orNone(req.DailyPlans), orNone(req.LearningGoal))
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(none)"
	}
	return strings.TrimSpace(s)
}

// parseTasks accepts {"tasks":[...]} or a bare JSON array, optionally wrapped
// in a markdown code fence.
func parseTasks(content string) ([]string, error) {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	var raw []string
	var obj struct {
		Tasks []string `json:"tasks"`
	}
	if err := json.Unmarshal([]byte(s), &obj); err == nil && obj.Tasks != nil {
		raw = obj.Tasks
	} else if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("parse plan tasks: %w", model.ErrExternalService)
	}

	tasks := make([]string, 0, len(raw))
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			tasks = append(tasks, t)
		}
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("plan has no tasks: %w", model.ErrExternalService)
	}
	return tasks, nil
}
