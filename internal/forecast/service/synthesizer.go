// Package service implements the forecast event synthesizer.
package service

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/allisson/liquidity/internal/forecast/domain"
)

// Synthesizer produces simulated forecast events for a generation run.
type Synthesizer interface {
	// Synthesize returns exactly params.RowCount events. Rows are i.i.d.;
	// output order is generation order. Two calls with identical params
	// (including seed) return identical events.
	Synthesize(params domain.GenerateParams) ([]*domain.ForecastEvent, error)
}

// cashflowProfile fixes the categorical distribution of one cash-flow type:
// its sampling weight, direction, reporting category, amount bounds, the
// counterparty pool, and the forecast id prefix.
type cashflowProfile struct {
	cashflowType   domain.CashflowType
	weight         float64
	direction      domain.Direction // empty means sampled per row
	category       string
	amountLow      float64
	amountHigh     float64
	counterparties []string
	idPrefix       string
}

var customers = []string{
	"Acme Retailers", "BlueSky Corp", "Northwind Traders", "Globex LLC", "Innotech",
	"Wayne Enterprises", "Stark Industries", "Wonka Imports", "Umbrella Co", "Oscorp",
}

var vendors = []string{
	"Okta Inc", "AWS", "Google Cloud", "Microsoft 365", "Salesforce", "Zoom Video",
	"PG&E", "Comcast Business", "WeWork", "Square Payroll",
}

// profiles is an ordered slice, not a map: sampling must iterate in a fixed
// order or seeded runs stop being reproducible.
var profiles = []cashflowProfile{
	{
		cashflowType:   domain.CashflowTypeARInvoice,
		weight:         0.35,
		direction:      domain.DirectionInflow,
		category:       "Revenue > Customer Invoice",
		amountLow:      5000,
		amountHigh:     35000,
		counterparties: customers,
		idPrefix:       "AR_",
	},
	{
		cashflowType:   domain.CashflowTypePayroll,
		weight:         0.10,
		direction:      domain.DirectionOutflow,
		category:       "Payroll > Salaries",
		amountLow:      25000,
		amountHigh:     40000,
		counterparties: []string{"Company Staff"},
		idPrefix:       "PAY",
	},
	{
		cashflowType:   domain.CashflowTypeAPBill,
		weight:         0.25,
		direction:      domain.DirectionOutflow,
		category:       "Ops > Vendor Bill",
		amountLow:      100,
		amountHigh:     12000,
		counterparties: vendors,
		idPrefix:       "AP_",
	},
	{
		cashflowType:   domain.CashflowTypeTax,
		weight:         0.05,
		direction:      domain.DirectionOutflow,
		category:       "Finance > Taxes",
		amountLow:      8000,
		amountHigh:     40000,
		counterparties: []string{"IRS"},
		idPrefix:       "TAX",
	},
	{
		cashflowType:   domain.CashflowTypeLoanPayment,
		weight:         0.08,
		direction:      domain.DirectionOutflow,
		category:       "Finance > Loan Payment",
		amountLow:      3000,
		amountHigh:     15000,
		counterparties: []string{"Bank of Gotham"},
		idPrefix:       "LOA",
	},
	{
		cashflowType:   domain.CashflowTypeCreditDraw,
		weight:         0.07,
		direction:      domain.DirectionInflow,
		category:       "Finance > Credit Line",
		amountLow:      20000,
		amountHigh:     100000,
		counterparties: []string{"Bank of Gotham"},
		idPrefix:       "CRE",
	},
	{
		cashflowType:   domain.CashflowTypeOther,
		weight:         0.10,
		direction:      "",
		category:       "Misc > One-off",
		amountLow:      500,
		amountHigh:     10000,
		counterparties: append(append([]string{}, customers...), vendors...),
		idPrefix:       "OTH",
	},
}

// synthesizer implements Synthesizer with a seeded randomness source.
type synthesizer struct{}

// NewSynthesizer creates a new Synthesizer.
func NewSynthesizer() Synthesizer {
	return &synthesizer{}
}

// Synthesize samples params.RowCount independent events.
func (s *synthesizer) Synthesize(params domain.GenerateParams) ([]*domain.ForecastEvent, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(params.Seed))
	dayRange := int(params.EndDate.Sub(params.StartDate).Hours()/24) + 1
	idCounters := make(map[domain.CashflowType]int, len(profiles))

	events := make([]*domain.ForecastEvent, 0, params.RowCount)
	for i := 0; i < params.RowCount; i++ {
		profile := pickProfile(rng)

		direction := profile.direction
		if direction == "" {
			direction = domain.DirectionInflow
			if rng.Float64() < 0.5 {
				direction = domain.DirectionOutflow
			}
		}

		eventDate := params.StartDate.AddDate(0, 0, rng.Intn(dayRange))
		// Simulated creation precedes the due date by 15-59 days.
		createdAt := eventDate.AddDate(0, 0, -(15 + rng.Intn(45)))

		idCounters[profile.cashflowType]++

		events = append(events, &domain.ForecastEvent{
			ForecastID:   readableID(profile.idPrefix, idCounters[profile.cashflowType]),
			BusinessID:   params.BusinessIDs[rng.Intn(len(params.BusinessIDs))],
			CashflowType: profile.cashflowType,
			Direction:    direction,
			Amount:       sampleAmount(rng, profile.amountLow, profile.amountHigh),
			Currency:     params.Currency,
			EventDate:    eventDate,
			Category:     profile.category,
			Counterparty: profile.counterparties[rng.Intn(len(profile.counterparties))],
			Confidence:   math.Round(rng.Float64()*100) / 100,
			Scenario:     params.Scenario,
			Status:       sampleStatus(rng, params.AdjustedRate, params.CancelledRate),
			CreatedAt:    createdAt,
		})
	}

	return events, nil
}

// pickProfile samples a cash-flow profile from the fixed categorical distribution.
func pickProfile(rng *rand.Rand) cashflowProfile {
	target := rng.Float64()
	cumulative := 0.0
	for _, profile := range profiles {
		cumulative += profile.weight
		if target < cumulative {
			return profile
		}
	}
	return profiles[len(profiles)-1]
}

// sampleAmount draws a log-normal amount centered between low and high and
// clips it to [low, high]. Bounds are positive, so amounts always are.
func sampleAmount(rng *rand.Rand, low, high float64) decimal.Decimal {
	const sigma = 0.5
	mu := math.Log((low + high) / 2)
	value := math.Exp(rng.NormFloat64()*sigma + mu)
	value = math.Min(math.Max(value, low), high)
	return decimal.NewFromFloat(value).Round(2)
}

// sampleStatus draws the row status from the configured per-row rates.
func sampleStatus(rng *rand.Rand, adjustedRate, cancelledRate float64) domain.EventStatus {
	target := rng.Float64()
	switch {
	case target < adjustedRate:
		return domain.EventStatusAdjusted
	case target < adjustedRate+cancelledRate:
		return domain.EventStatusCancelled
	default:
		return domain.EventStatusPlanned
	}
}

// readableID builds a per-type sequential identifier (e.g., "PAY-00001").
func readableID(prefix string, counter int) string {
	return fmt.Sprintf("%s-%05d", prefix, counter)
}
