package adapters

import (
	"github.com/shopspring/decimal"
	"github.com/tawsil-ops/ops-atlas/pkg/models/api"
	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
	"github.com/tawsil-ops/ops-atlas/pkg/services/transfer"
)

func MapAPIDraftToTransferDraft(d api.TransferDraft) transfer.Draft {
	return transfer.Draft{
		SourceAccount:       d.SourceAccount,
		DestinationAccount:  d.DestinationAccount,
		SourceAmount:        domain.NewAmount(decimal.NewFromFloat(d.SourceAmount), domain.CurrencyCode(d.SourceCurrency)),
		DestinationCurrency: domain.CurrencyCode(d.DestinationCurrency),
		Rate:                domain.NewExchangeRate(decimal.NewFromFloat(d.Rate)),
		Description:         d.Description,
	}
}
