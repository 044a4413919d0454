package api

// TransferDraft is the transfer form payload. The destination amount is
// always recomputed server-side from the source amount and rate.
type TransferDraft struct {
	SourceAccount       string  `json:"sourceAccount"`
	DestinationAccount  string  `json:"destinationAccount"`
	SourceAmount        float64 `json:"sourceAmount"`
	SourceCurrency      string  `json:"sourceCurrency"`
	DestinationCurrency string  `json:"destinationCurrency"`
	Rate                float64 `json:"rate"`
	Description         string  `json:"description"`
}

// TransferPreview is the reactive destination amount for the form.
type TransferPreview struct {
	DestinationAmount   float64 `json:"destinationAmount"`
	DestinationCurrency string  `json:"destinationCurrency"`
}

// TransferResult reports the outcome of a submitted transfer.
type TransferResult struct {
	ID      string `json:"id,omitempty"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`

	// FieldErrors is populated when validation blocked the submission.
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
}
