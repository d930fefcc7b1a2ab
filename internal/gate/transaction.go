package gate

import "moneyguard/internal/risk"

// Canonical priorities for the funds-debit gate. Lower evaluates first, and
// only the first matching rule's message is surfaced, so posture-wide rules
// pre-empt the more specific register findings.
const (
	PriorityLowRiskPosture      = 0
	PriorityIdentityCompromised = 1
	PriorityMalware             = 2
	PriorityUnsecureNetwork     = 3
	PriorityRootedDevice        = 4
	PriorityMITM                = 5
)

func hasRisk(findings []risk.Finding, name string) bool {
	for _, f := range findings {
		if f.Risk.Name == name {
			return true
		}
	}
	return false
}

func blockOnRisk(name, title, message string) Predicate {
	return func(findings []risk.Finding, _ Context) Outcome {
		if hasRisk(findings, name) {
			return Block{Title: title, Message: message}
		}
		return Allow{}
	}
}

// TransactionRules is the rule register guarding funds-debit authorization.
// The two leading rules inspect persisted posture only and therefore fire
// even on an empty risk register.
func TransactionRules() []Rule {
	return []Rule{
		{
			Name:     "low_risk_posture",
			Priority: PriorityLowRiskPosture,
			Evaluate: func(_ []risk.Finding, ctx Context) Outcome {
				if ctx.RiskScore > 0 && ctx.RiskScore < ctx.HighRiskThreshold {
					return Block{
						Title:   "Low Risk Posture",
						Message: "Your device's security score is below the required threshold for transactions.",
					}
				}
				return Allow{}
			},
		},
		{
			Name:     "identity_compromised",
			Priority: PriorityIdentityCompromised,
			Evaluate: func(_ []risk.Finding, ctx Context) Outcome {
				if ctx.IdentityCompromised {
					return Block{
						Title:   "Identity Compromised",
						Message: "Your credentials have been flagged as compromised. Please update them before transacting.",
					}
				}
				return Allow{}
			},
		},
		{
			Name:     "malware_detected",
			Priority: PriorityMalware,
			Evaluate: blockOnRisk(risk.RiskMalware,
				"Malware Detected",
				"Malicious software was detected on this device. Transactions are disabled."),
		},
		{
			Name:     "unsecure_network",
			Priority: PriorityUnsecureNetwork,
			Evaluate: blockOnRisk(risk.RiskUnsecuredWifi,
				"Unsecure Network",
				"You are connected to an unprotected Wi-Fi network. Switch networks to continue."),
		},
		{
			Name:     "device_compromised",
			Priority: PriorityRootedDevice,
			Evaluate: blockOnRisk(risk.RiskRootedDevice,
				"Device Security Compromised",
				"This device appears to be rooted or jailbroken. Transactions are disabled."),
		},
		{
			Name:     "network_risk",
			Priority: PriorityMITM,
			Evaluate: blockOnRisk(risk.RiskMITM,
				"Network Security Risk",
				"Network traffic may be intercepted. Transactions are disabled on this connection."),
		},
	}
}
