package risk

// Catalog maps stable risk names to the human-readable message shown in risk
// dialogs. Lookup is total: unknown names fall back to the risk's own detail
// text, and an empty detail falls back to the name itself.
type Catalog struct {
	messages map[string]string
}

// NewCatalog returns a catalog preloaded with the canonical risk messages.
func NewCatalog() *Catalog {
	return &Catalog{messages: map[string]string{
		RiskMalware:       "Malicious software was detected on this device.",
		RiskUnsecuredWifi: "This device is connected to an unprotected Wi-Fi network.",
		RiskRootedDevice:  "This device appears to be rooted or jailbroken.",
		RiskMITM:          "Network traffic may be intercepted by a third party.",
		RiskDebugger:      "A debugger is attached to the application.",
		RiskOutdatedOS:    "The operating system is outdated and no longer receives security updates.",
	}}
}

// Describe returns the display message for a risk.
func (c *Catalog) Describe(r SpecificRisk) string {
	if msg, ok := c.messages[r.Name]; ok {
		return msg
	}
	if r.Detail != "" {
		return r.Detail
	}
	return r.Name
}
