package wage

import "github.com/shopspring/decimal"

// Rate sources, in resolution order.
const (
	SourceCustomSalary = "CUSTOM_SALARY"
	SourcePosition     = "POSITION"
	SourceCampaign     = "CAMPAIGN"
	SourceNone         = "NONE"
)

// RateRefs is the read-only pay configuration of one employee, as
// loaded from the reference registry.
type RateRefs struct {
	HasFixedSalary      bool
	CustomMonthlySalary *decimal.Decimal
	PositionHourlyRate  *decimal.Decimal
	CampaignHourlyRate  *decimal.Decimal
}

// Rates is the resolved hourly rate per bucket.
type Rates struct {
	Regular     decimal.Decimal
	Overtime135 decimal.Decimal
	Overtime200 decimal.Decimal
	Night       decimal.Decimal
	Source      string
}

// ResolveRates picks the regular hourly rate with first-match-wins
// precedence: fixed custom salary (monthly / 30 days / 8 hours), then
// position rate, then campaign rate. An employee with no resolvable
// rate gets zero rates, not an error.
func ResolveRates(refs RateRefs) Rates {
	var regular decimal.Decimal
	source := SourceNone

	switch {
	case refs.HasFixedSalary && refs.CustomMonthlySalary != nil && refs.CustomMonthlySalary.IsPositive():
		regular = refs.CustomMonthlySalary.Div(daysPerMonth).Div(hoursPerShift)
		source = SourceCustomSalary
	case refs.PositionHourlyRate != nil && refs.PositionHourlyRate.IsPositive():
		regular = *refs.PositionHourlyRate
		source = SourcePosition
	case refs.CampaignHourlyRate != nil && refs.CampaignHourlyRate.IsPositive():
		regular = *refs.CampaignHourlyRate
		source = SourceCampaign
	}

	return Rates{
		Regular:     regular,
		Overtime135: regular.Mul(overtime135Factor),
		Overtime200: regular.Mul(overtime200Factor),
		Night:       regular.Mul(nightFactor),
		Source:      source,
	}
}
