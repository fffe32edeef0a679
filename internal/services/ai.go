package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/yuridamin/quadro-api/internal/constants"
)

type AIService struct {
	client *openai.Client
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// GenerateActions asks the model to translate a free-form board request into
// a list of action descriptors. The output is structured but unverified: the
// dispatcher treats every field of it as untrusted input.
func (s *AIService) GenerateActions(ctx context.Context, message string, cardTitles []string) ([]map[string]interface{}, error) {
	if s.client == nil {
		return nil, fmt.Errorf("OpenAI client not initialized")
	}

	today := time.Now().Format(constants.DateLayout)

	prompt := fmt.Sprintf(`Você é o assistente de um quadro Kanban. Converta o pedido do usuário em uma lista JSON de ações.

Data de hoje: %s

Cards existentes no quadro:
%s

Pedido do usuário:
%s

Tipos de ação disponíveis (campo "type"):
- "create-task": {"titulo", "prioridade"?, "coluna"?, "descricao"?, "prazo"?, "labels"?}
- "move-task": {"card", "coluna"}
- "add-checklist": {"card", "itens": [..]}
- "delete-task": {"card"}
- "update-deadline": {"card", "prazo"}
- "update-assignee": {"card", "responsavel"}
- "update-title": {"card", "novoTitulo"}
- "update-description": {"card", "descricao"}
- "update-labels": {"card", "labels": [..]}
- "update-priority": {"card", "prioridade"}
- "update-status": {"card", "status"}
- "update-estimated-hours": {"card", "horasEstimadas"}
- "update-worked-hours": {"card", "horasTrabalhadas"}
- "add-worked-hours": {"card", "horas"}
- "update-checklist-item": {"card", "item", "concluido"}
- "bulk-update": {"where": {...}, "set": {...}}
- "bulk-delete": {"where": {...}}
- "cards_hoje": {}
- "cards_atrasados": {}
- "burndown": {"card"? ou "coluna"?}
- "chat-response": {"mensagem"} — use para responder perguntas sem mexer no quadro

Regras:
- Retorne somente um array JSON de ações, sem texto adicional
- Converta datas relativas ("amanhã", "sexta") para o formato AAAA-MM-DD
- Prioridades: baixa, media, alta, urgente; colunas: backlog, doing, done
- Se o pedido não exigir nenhuma mudança, retorne uma ação chat-response`,
		today,
		strings.Join(cardTitles, "\n"),
		message,
	)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := stripCodeFence(resp.Choices[0].Message.Content)

	var actions []map[string]interface{}
	if err := json.Unmarshal([]byte(content), &actions); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	return actions, nil
}

// stripCodeFence removes a markdown code fence the model sometimes wraps the
// JSON in despite the prompt.
func stripCodeFence(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
