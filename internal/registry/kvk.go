// Package registry looks companies up in the Dutch Chamber of Commerce
// (KVK) registry.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/tenderdesk/tenderdesk/internal/domain"
)

const serviceName = "kvk"

var kvkNumberPattern = regexp.MustCompile(`^[0-9]{8}$`)

// CompanyProfile is the subset of the KVK basisprofiel the application uses.
type CompanyProfile struct {
	KvKNumber    string     `json:"kvk_number"`
	Name         string     `json:"name"`
	TradeNames   []string   `json:"trade_names,omitempty"`
	City         string     `json:"city,omitempty"`
	Sector       string     `json:"sector,omitempty"`
	RegisteredAt *time.Time `json:"registered_at,omitempty"`
}

type Client interface {
	// Lookup returns nil, nil when the registry does not know the number.
	Lookup(ctx context.Context, kvkNumber string) (*CompanyProfile, error)
}

// ValidateKvKNumber reports a validation error unless n is eight digits.
func ValidateKvKNumber(n string) error {
	if !kvkNumberPattern.MatchString(n) {
		return domain.NewValidationError("kvk_number", "must be 8 digits")
	}
	return nil
}

type KvKClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxTries   uint
}

func NewKvKClient(baseURL, apiKey string, timeout time.Duration) *KvKClient {
	return &KvKClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		maxTries:   3,
	}
}

type basisprofiel struct {
	KvKNummer               string `json:"kvkNummer"`
	Naam                    string `json:"naam"`
	FormeleRegistratiedatum string `json:"formeleRegistratiedatum"`
	Handelsnamen            []struct {
		Naam string `json:"naam"`
	} `json:"handelsnamen"`
	SBIActiviteiten []struct {
		Omschrijving       string `json:"sbiOmschrijving"`
		IndHoofdactiviteit string `json:"indHoofdactiviteit"`
	} `json:"sbiActiviteiten"`
	Embedded struct {
		Hoofdvestiging struct {
			Adressen []struct {
				Type   string `json:"type"`
				Plaats string `json:"plaats"`
			} `json:"adressen"`
		} `json:"hoofdvestiging"`
	} `json:"_embedded"`
}

func (c *KvKClient) Lookup(ctx context.Context, kvkNumber string) (*CompanyProfile, error) {
	if err := ValidateKvKNumber(kvkNumber); err != nil {
		return nil, err
	}

	profile, err := backoff.Retry(ctx, func() (*basisprofiel, error) {
		return c.fetch(ctx, kvkNumber)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(c.maxTries))
	if err != nil {
		return nil, &domain.ExternalServiceError{Service: serviceName, Err: err}
	}
	if profile == nil {
		return nil, nil
	}

	return profile.toCompanyProfile(), nil
}

var errRetryable = errors.New("retryable registry response")

func (c *KvKClient) fetch(ctx context.Context, kvkNumber string) (*basisprofiel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/basisprofielen/"+kvkNumber, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(err)
		}
		return nil, fmt.Errorf("calling registry: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", errRetryable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, backoff.Permanent(fmt.Errorf("unexpected registry status %d: %s", resp.StatusCode, body))
	}

	var profile basisprofiel
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decoding registry response: %w", err))
	}
	return &profile, nil
}

func (b *basisprofiel) toCompanyProfile() *CompanyProfile {
	p := &CompanyProfile{
		KvKNumber: b.KvKNummer,
		Name:      b.Naam,
	}
	for _, h := range b.Handelsnamen {
		p.TradeNames = append(p.TradeNames, h.Naam)
	}
	for _, a := range b.SBIActiviteiten {
		if p.Sector == "" || a.IndHoofdactiviteit == "Ja" {
			p.Sector = a.Omschrijving
		}
	}
	for _, a := range b.Embedded.Hoofdvestiging.Adressen {
		if p.City == "" || a.Type == "bezoekadres" {
			p.City = a.Plaats
		}
	}
	if t, err := time.Parse("20060102", b.FormeleRegistratiedatum); err == nil {
		p.RegisteredAt = &t
	}
	return p
}
