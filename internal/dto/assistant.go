package dto

// ActionOutcome is the per-action result record returned to the chat UI.
// A batch of N actions always yields exactly N outcomes, in input order.
type ActionOutcome struct {
	Success   bool                   `json:"success"`
	Type      string                 `json:"type"`
	CardTitle string                 `json:"cardTitle,omitempty"`
	Message   string                 `json:"message,omitempty"`
	Error     string                 `json:"error,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// OkOutcome builds a success outcome for the given action type.
func OkOutcome(actionType string) ActionOutcome {
	return ActionOutcome{Success: true, Type: actionType}
}

// FailOutcome builds a failure outcome carrying the action type and error.
func FailOutcome(actionType, errMsg string) ActionOutcome {
	return ActionOutcome{Success: false, Type: actionType, Error: errMsg}
}

// ExecutionReport is the ordered outcome list for one executed batch.
type ExecutionReport struct {
	Results []ActionOutcome `json:"results"`
}
