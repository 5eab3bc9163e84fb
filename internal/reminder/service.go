package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// FallbackMessage is returned whenever the text-generation call cannot
// produce a message. Callers never see an error from this package.
const FallbackMessage = "Olá! Gostaria de lembrar gentilmente sobre o seu saldo em aberto conosco. Podemos conversar sobre o acerto?"

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Service generates short WhatsApp collection reminders via the Gemini
// generateContent endpoint, degrading to FallbackMessage on any failure.
type Service struct {
	client  *http.Client
	apiKey  string
	model   string
	baseURL string
}

func NewService(cfg Config) *Service {
	return &Service{
		client:  &http.Client{Timeout: cfg.Timeout},
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}
}

// Debt is one recent debt shown to the model for context.
type Debt struct {
	Description string
	Amount      int64 // cents
}

type Params struct {
	CustomerName string
	Outstanding  int64 // cents
	RecentDebts  []Debt
}

// Message returns a collection reminder for the customer. It never fails:
// timeouts, transport errors, non-2xx responses and empty completions all
// degrade to FallbackMessage.
func (s *Service) Message(ctx context.Context, p Params) string {
	if s.apiKey == "" {
		return FallbackMessage
	}

	msg, err := s.generate(ctx, buildPrompt(p))
	if err != nil {
		slog.Error("reminder generation failed", "customer", p.CustomerName, "error", err)
		return FallbackMessage
	}

	return msg
}

func buildPrompt(p Params) string {
	debts := p.RecentDebts
	if len(debts) > 3 {
		debts = debts[:3]
	}

	parts := make([]string, 0, len(debts))
	for _, d := range debts {
		parts = append(parts, fmt.Sprintf("%s (R$ %.2f)", d.Description, float64(d.Amount)/100.0))
	}

	var sb strings.Builder

	sb.WriteString("Você é um assistente de cobrança amigável para um pequeno comerciante brasileiro.\n")
	fmt.Fprintf(&sb, "O cliente se chama %s e deve um total de R$ %.2f.\n", p.CustomerName, float64(p.Outstanding)/100.0)
	fmt.Fprintf(&sb, "As últimas dívidas são: %s.\n\n", strings.Join(parts, ", "))
	sb.WriteString("Escreva uma mensagem de WhatsApp educada, profissional e empática lembrando o cliente da pendência.\n")
	sb.WriteString("Não seja agressivo. Use um tom de parceria.\n")
	sb.WriteString("A mensagem deve ser curta e direta.\n")
	sb.WriteString("Inclua emojis de forma moderada.")

	return sb.String()
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", s.baseURL, s.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling text generation: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty completion")
	}

	msg := strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text)
	if msg == "" {
		return "", fmt.Errorf("blank completion")
	}

	return msg, nil
}
