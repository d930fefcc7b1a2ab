package httptransport

import (
	"moneyguard/internal/session"
)

type locationFindingJSON struct {
	Label  string `json:"label"`
	Detail string `json:"detail,omitempty"`
}

type effectJSON struct {
	Type     string                `json:"type"`
	Risk     string                `json:"risk,omitempty"`
	Message  string                `json:"message,omitempty"`
	Text     string                `json:"text,omitempty"`
	Reason   string                `json:"reason,omitempty"`
	Title    string                `json:"title,omitempty"`
	Findings []locationFindingJSON `json:"findings,omitempty"`
}

// encodeEffect flattens one orchestrator effect into its wire form. The
// switch is exhaustive over the closed effect set.
func encodeEffect(e session.Effect) effectJSON {
	switch e := e.(type) {
	case session.ShowRiskDialog:
		return effectJSON{Type: "show_risk_dialog", Risk: e.Finding.Risk.Name, Message: e.Message}
	case session.ShowCredentialResult:
		return effectJSON{Type: "show_credential_result", Text: e.Text}
	case session.ShowUnusualLocationPrompt:
		findings := make([]locationFindingJSON, 0, len(e.Findings))
		for _, f := range e.Findings {
			findings = append(findings, locationFindingJSON{Label: f.Label, Detail: f.Detail})
		}
		return effectJSON{Type: "show_unusual_location_prompt", Findings: findings}
	case session.ShowUntrustedDeviceStepUp:
		return effectJSON{Type: "show_step_up", Reason: e.Reason}
	case session.NavigateAuthorized:
		return effectJSON{Type: "navigate_authorized"}
	case session.NavigateBlocked:
		return effectJSON{Type: "navigate_blocked", Title: e.Title, Message: e.Message}
	}
	return effectJSON{Type: "unknown"}
}

func encodeEffects(effects []session.Effect) []effectJSON {
	out := make([]effectJSON, 0, len(effects))
	for _, e := range effects {
		out = append(out, encodeEffect(e))
	}
	return out
}
