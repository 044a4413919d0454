package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/tawsil-ops/ops-atlas/pkg/models/domain"
)

// Reporter outputs aggregate summaries to the console in a formatted text form
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(summary *domain.AggregateSummary) error {
	tmpl := `
Period: {{.Range.Start.Format "2006-01-02"}} to {{.Range.End.Format "2006-01-02 15:04"}}
Exchange rate: 1 MAD = {{.Rate.Value}} CFA
{{- if .Partial}}
WARNING: partial data, failed sources: {{range .PartialSources}}{{.}} {{end}}
{{- end}}

=== Revenue ===
Business: {{.BusinessRevenue.Value.StringFixed 2}} {{.BusinessRevenue.Currency}}
Express:  {{.ExpressRevenue.Value.StringFixed 2}} {{.ExpressRevenue.Currency}}
Total:    {{.TotalRevenue.Value.StringFixed 2}} {{.TotalRevenue.Currency}}
Margin:   {{.TotalMargin.Value.StringFixed 2}} {{.TotalMargin.Currency}} (avg rate {{.AverageMarginRate}})

=== Activity ===
Orders: {{.TotalOrders}}
Parcels: {{.TotalParcels}} ({{.InTransit}} in transit, {{.Delivered}} delivered)

=== Treasury ===
Balance: {{.TreasuryBalanceCFA.Value.StringFixed 2}} CFA / {{.TreasuryBalanceMAD.Value.StringFixed 2}} MAD
Global:  {{.TreasuryGlobalCFA.Value.StringFixed 2}} CFA / {{.TreasuryGlobalMAD.Value.StringFixed 2}} MAD
{{if .TopClients}}
=== Top clients ===
{{range .TopClients}}- {{.Name}}: {{.Metric.StringFixed 2}}
{{end}}{{end}}{{if .TopDestinations}}
=== Top destinations ===
{{range .TopDestinations}}- {{.Name}}: {{.Metric}}
{{end}}{{end}}
`
	t, err := template.New("summary").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, summary)
}
