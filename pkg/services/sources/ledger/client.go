package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
)

// Client submits transfer instructions to the external ledger, which owns
// double-entry atomicity. Failures surface verbatim; there is no retry.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

type transferPayload struct {
	ID                  string          `json:"id"`
	SourceAccount       string          `json:"sourceAccount"`
	DestinationAccount  string          `json:"destinationAccount"`
	SourceAmount        decimal.Decimal `json:"sourceAmount"`
	SourceCurrency      string          `json:"sourceCurrency"`
	DestinationAmount   decimal.Decimal `json:"destinationAmount"`
	DestinationCurrency string          `json:"destinationCurrency"`
	Rate                decimal.Decimal `json:"rate"`
	Description         string          `json:"description"`
}

type transferResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) SubmitTransfer(ctx context.Context, instr domain.TransferInstruction) error {
	body, err := json.Marshal(transferPayload{
		ID:                  instr.ID.String(),
		SourceAccount:       instr.SourceAccount,
		DestinationAccount:  instr.DestinationAccount,
		SourceAmount:        instr.SourceAmount.Value,
		SourceCurrency:      string(instr.SourceAmount.Currency),
		DestinationAmount:   instr.DestinationAmount.Value,
		DestinationCurrency: string(instr.DestinationAmount.Currency),
		Rate:                instr.Rate.Value,
		Description:         instr.Description,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/transfers", c.baseURL), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("transfer submission failed: %w", err)
	}
	defer resp.Body.Close()

	var result transferResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode ledger response: %w", err)
	}

	if !result.Success {
		return &domain.LedgerRejectedError{Message: result.Message}
	}
	return nil
}
