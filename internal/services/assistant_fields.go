package services

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Action descriptors arrive as loosely-shaped JSON objects from the text
// generation service, which fills fields under Portuguese or English key
// names depending on how the user phrased the request. Each logical field is
// read through a fixed, ordered alias list: the first key holding a non-empty
// value wins, and values are never merged across keys.
//
// Alias order is Portuguese key first, then English.
var (
	aliasTitle       = []string{"titulo", "title"}
	aliasCardTitle   = []string{"card", "cardTitle", "titulo", "title"}
	aliasColumn      = []string{"coluna", "column"}
	aliasDescription = []string{"descricao", "description"}
	aliasDeadline    = []string{"prazo", "deadline", "data"}
	aliasLabels      = []string{"labels", "etiquetas"}
	aliasPriority    = []string{"prioridade", "priority"}
	aliasAssignee    = []string{"responsavel", "assignee"}
	aliasNewTitle    = []string{"novoTitulo", "newTitle"}
	aliasStatus      = []string{"status", "coluna", "column"}
	aliasEstimated   = []string{"horasEstimadas", "estimatedHours"}
	aliasWorked      = []string{"horasTrabalhadas", "workedHours"}
	aliasHours       = []string{"horas", "hours"}
	aliasItemTitle   = []string{"item", "itemTitulo", "itemTitle"}
	aliasDone        = []string{"concluido", "isDone", "done"}
	aliasItems       = []string{"itens", "items"}
	aliasWhere       = []string{"where", "filtro"}
	aliasSet         = []string{"set", "valores"}
	aliasMessage     = []string{"mensagem", "message"}
)

// firstString returns the first non-empty string value under the alias keys.
func firstString(action map[string]interface{}, keys []string) (string, bool) {
	for _, key := range keys {
		v, ok := action[key]
		if !ok || v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s != "" {
			return s, true
		}
	}
	return "", false
}

// firstNumber returns the first parseable numeric value under the alias keys.
// The generator emits numbers either as JSON numbers or as digit strings.
func firstNumber(action map[string]interface{}, keys []string) (float64, bool) {
	for _, key := range keys {
		v, ok := action[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f, true
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// firstBool returns the first boolean value under the alias keys.
func firstBool(action map[string]interface{}, keys []string) (bool, bool) {
	for _, key := range keys {
		v, ok := action[key]
		if !ok || v == nil {
			continue
		}
		switch b := v.(type) {
		case bool:
			return b, true
		case string:
			switch strings.ToLower(strings.TrimSpace(b)) {
			case "true", "sim", "yes":
				return true, true
			case "false", "nao", "não", "no":
				return false, true
			}
		}
	}
	return false, false
}

// firstList returns the first list value under the alias keys, together with
// whether any of the keys held a value at all (needed to distinguish a
// missing field from a wrongly-typed one).
func firstList(action map[string]interface{}, keys []string) ([]interface{}, bool, bool) {
	for _, key := range keys {
		v, ok := action[key]
		if !ok || v == nil {
			continue
		}
		if list, ok := v.([]interface{}); ok {
			return list, true, true
		}
		return nil, false, true
	}
	return nil, false, false
}

// firstMap returns the first object value under the alias keys.
func firstMap(action map[string]interface{}, keys []string) (map[string]interface{}, bool) {
	for _, key := range keys {
		v, ok := action[key]
		if !ok || v == nil {
			continue
		}
		if m, ok := v.(map[string]interface{}); ok {
			return m, true
		}
	}
	return nil, false
}

// cardPrefixRe matches the lead-in the generator tends to echo back before a
// card title ("the card X", "o card X", "tarefa X", ...).
var cardPrefixRe = regexp.MustCompile(`(?i)^\s*(?:the\s+|o\s+|a\s+)?(?:card|task|cart[aã]o|tarefa)\s+`)

// cleanCardTitle strips the card/task lead-in and surrounding quotes from a
// raw title reference.
func cleanCardTitle(raw string) string {
	s := strings.TrimSpace(raw)
	s = cardPrefixRe.ReplaceAllString(s, "")
	s = strings.Trim(s, `"'“”‘’`)
	return strings.TrimSpace(s)
}

// datePart returns the YYYY-MM-DD prefix of a stored deadline string.
// Deadlines are compared on this literal prefix, never parsed.
func datePart(deadline string) string {
	if len(deadline) > 10 {
		return deadline[:10]
	}
	return deadline
}
