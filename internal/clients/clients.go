// Package clients holds the HTTP implementations of the orchestrator's
// collaborator ports: the partner bank, the protection service (registration,
// policy, credential and location checks), and the risk-scan engine. Each
// client owns its wire format; callers see only the port types.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"moneyguard/internal/risk"
	"moneyguard/internal/session"
	"moneyguard/pkg/platform/sentinel"
)

const defaultTimeout = 10 * time.Second

type httpClient struct {
	base   string
	client *http.Client
}

func newHTTPClient(base string, timeout time.Duration) httpClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return httpClient{base: base, client: &http.Client{Timeout: timeout}}
}

// doJSON posts in (when non-nil) and decodes the response into out. Non-2xx
// statuses surface as ErrUnavailable so the orchestrator's per-step policy
// decides what happens next.
func (c httpClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Buffer
	if in != nil {
		body = &bytes.Buffer{}
		if err := json.NewEncoder(body).Encode(in); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, sentinel.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, sentinel.ErrUnavailable)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Bank implements session.BankClient against the partner bank's REST API.
type Bank struct {
	http httpClient
}

func NewBank(baseURL string, timeout time.Duration) *Bank {
	return &Bank{http: newHTTPClient(baseURL, timeout)}
}

func (b *Bank) Login(ctx context.Context, username, password string, meta session.ClientMeta) (session.BankSession, error) {
	req := struct {
		Username   string `json:"username"`
		Password   string `json:"password"`
		DeviceName string `json:"device_name,omitempty"`
		UserAgent  string `json:"user_agent,omitempty"`
		RemoteIP   string `json:"remote_ip,omitempty"`
	}{username, password, meta.DeviceName, meta.UserAgent, meta.RemoteIP}

	var resp struct {
		SessionID string `json:"session_id"`
		FullName  string `json:"full_name"`
	}
	if err := b.http.doJSON(ctx, http.MethodPost, "/sessions", req, &resp); err != nil {
		return session.BankSession{}, err
	}
	return session.BankSession{SessionID: resp.SessionID, FullName: resp.FullName}, nil
}

// Protection talks to the protection service. One base URL serves four
// ports: registration, policy status, credential check, location check.
type Protection struct {
	http httpClient
}

func NewProtection(baseURL string, timeout time.Duration) *Protection {
	return &Protection{http: newHTTPClient(baseURL, timeout)}
}

func (p *Protection) Register(ctx context.Context, partnerBankID, bankSessionID string) (session.Registration, error) {
	req := struct {
		PartnerBankID string `json:"partner_bank_id"`
		BankSessionID string `json:"bank_session_id"`
	}{partnerBankID, bankSessionID}

	var resp struct {
		Token          string `json:"token"`
		InstallationID string `json:"installation_id"`
		UserDetails    string `json:"user_details"`
		Succeeded      bool   `json:"succeeded"`
		RequiresStepUp bool   `json:"requires_step_up"`
	}
	if err := p.http.doJSON(ctx, http.MethodPost, "/registrations", req, &resp); err != nil {
		return session.Registration{}, err
	}
	return session.Registration{
		Token:          resp.Token,
		InstallationID: resp.InstallationID,
		UserDetails:    resp.UserDetails,
		Succeeded:      resp.Succeeded,
		RequiresStepUp: resp.RequiresStepUp,
	}, nil
}

func (p *Protection) Status(ctx context.Context, token string) (session.PolicyStatus, error) {
	var resp struct {
		Status string `json:"status"`
	}
	path := "/policy?token=" + url.QueryEscape(token)
	if err := p.http.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return session.PolicyStatusUnknown, err
	}
	switch resp.Status {
	case "active":
		return session.PolicyStatusActive, nil
	case "valid_app_not_installed":
		return session.PolicyStatusValidAppNotInstalled, nil
	case "inactive":
		return session.PolicyStatusInactive, nil
	}
	return session.PolicyStatusUnknown, nil
}

func (p *Protection) Check(ctx context.Context, token, hashedSuffix, domain string) (session.CredentialResult, error) {
	req := struct {
		Token        string `json:"token"`
		HashedSuffix string `json:"hashed_suffix"`
		Domain       string `json:"domain"`
	}{token, hashedSuffix, domain}

	var resp struct {
		Status string `json:"status"`
		Text   string `json:"text"`
	}
	if err := p.http.doJSON(ctx, http.MethodPost, "/credentials/check", req, &resp); err != nil {
		return session.CredentialResult{}, err
	}

	result := session.CredentialResult{Status: session.CredentialStatusUndetermined, Text: resp.Text}
	switch resp.Status {
	case "safe":
		result.Status = session.CredentialStatusSafe
	case "unsafe":
		result.Status = session.CredentialStatusUnsafe
	}
	return result, nil
}

func (p *Protection) UnusualLocations(ctx context.Context, token string) ([]session.LocationFinding, error) {
	var resp struct {
		Findings []struct {
			Label  string `json:"label"`
			Detail string `json:"detail"`
		} `json:"findings"`
	}
	path := "/locations/unusual?token=" + url.QueryEscape(token)
	if err := p.http.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	findings := make([]session.LocationFinding, 0, len(resp.Findings))
	for _, f := range resp.Findings {
		findings = append(findings, session.LocationFinding{Label: f.Label, Detail: f.Detail})
	}
	return findings, nil
}

// Scanner implements risk.Source against the risk-scan engine.
type Scanner struct {
	http httpClient
}

func NewScanner(baseURL string, timeout time.Duration) *Scanner {
	return &Scanner{http: newHTTPClient(baseURL, timeout)}
}

func (s *Scanner) Scan(ctx context.Context) (risk.ScanReport, error) {
	var resp struct {
		Status   string `json:"status"`
		Findings []struct {
			Name     string `json:"name"`
			Category string `json:"category"`
			Detail   string `json:"detail"`
			Status   string `json:"status"`
			Raw      string `json:"raw"`
		} `json:"findings"`
	}
	if err := s.http.doJSON(ctx, http.MethodPost, "/scan", struct{}{}, &resp); err != nil {
		return risk.ScanReport{}, err
	}

	report := risk.ScanReport{Status: parseStatus(resp.Status)}
	for _, f := range resp.Findings {
		report.Findings = append(report.Findings, risk.Finding{
			Risk: risk.SpecificRisk{
				Name:     f.Name,
				Category: risk.Category(f.Category),
				Detail:   f.Detail,
			},
			Status: parseStatus(f.Status),
			Raw:    f.Raw,
		})
	}
	return report, nil
}

func parseStatus(s string) risk.Status {
	switch s {
	case "safe":
		return risk.StatusSafe
	case "warn":
		return risk.StatusWarn
	case "unsafe_credentials":
		return risk.StatusUnsafeCredentials
	case "unsafe_location":
		return risk.StatusUnsafeLocation
	case "unsafe":
		return risk.StatusUnsafe
	}
	return risk.StatusSafe
}
