package provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// WalletProvider answers token-ownership questions by running the
// CosmWasm {"tokens":{"owner":...}} smart query against the access
// contract through an LCD REST endpoint.
type WalletProvider struct {
	client   *http.Client
	lcdURL   string
	contract string
	tracer   trace.Tracer
}

func NewWalletProvider(tracer trace.Tracer, lcdURL, contract string) *WalletProvider {
	return &WalletProvider{
		client:   &http.Client{Timeout: 15 * time.Second},
		lcdURL:   strings.TrimRight(lcdURL, "/"),
		contract: contract,
		tracer:   tracer,
	}
}

// OwnsToken reports whether the address holds at least one token of
// the access collection.
func (p *WalletProvider) OwnsToken(ctx context.Context, address string) (bool, error) {
	_, span := p.tracer.Start(ctx, "wallet.owns-token")
	defer span.End()

	query := fmt.Sprintf(`{"tokens":{"owner":%q}}`, address)
	encoded := base64.StdEncoding.EncodeToString([]byte(query))
	url := fmt.Sprintf("%s/cosmwasm/wasm/v1/contract/%s/smart/%s", p.lcdURL, p.contract, encoded)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("LCD smart query error %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Data struct {
			Tokens []string `json:"tokens"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("decode smart query response: %w", err)
	}

	return len(payload.Data.Tokens) > 0, nil
}
