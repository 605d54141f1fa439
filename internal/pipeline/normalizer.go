package pipeline

import (
	"github.com/david/tenderflow/internal/config"
	"github.com/david/tenderflow/internal/models"
)

// Normalize converts a raw scraped record into its canonical form. It never
// fails: unparsable dates and amounts resolve to nil fields so a malformed
// record degrades instead of dropping out of the batch.
func Normalize(raw models.RawRecord, cfg *config.Config) models.Opportunity {
	opp := models.Opportunity{
		Title:            cleanText(sanitizeUTF8(raw.Title)),
		OrganizationName: cleanText(sanitizeUTF8(raw.OrganizationName)),
		LocationText:     cleanText(sanitizeUTF8(raw.LocationText)),
		Description:      htmlToText(sanitizeHTML(sanitizeUTF8(raw.Description))),
		SourceWebsite:    cleanText(raw.SourceWebsite),
		SourceURL:        raw.SourceURL,
		DeadlineText:     raw.DeadlineText,
		PublishedText:    raw.PublishedText,
		BudgetText:       raw.BudgetText,
	}

	if raw.DeadlineText != "" {
		if t, err := parseDateRobust(raw.DeadlineText); err == nil {
			opp.Deadline = &t
		}
	}
	if raw.PublishedText != "" {
		if t, err := parseDateRobust(raw.PublishedText); err == nil {
			opp.Published = &t
		}
	}

	if raw.BudgetText != "" {
		min, max, currency := parseAmountRobust(raw.BudgetText, cfg.Budget.ReferenceCurrency)
		if min > 0 || max > 0 {
			rate := exchangeRate(cfg, currency)
			if min > 0 {
				v := min * rate
				opp.BudgetMin = &v
			}
			if max > 0 {
				v := max * rate
				opp.BudgetMax = &v
			}
			if opp.BudgetMin != nil && opp.BudgetMax != nil && *opp.BudgetMin > *opp.BudgetMax {
				opp.BudgetMin, opp.BudgetMax = opp.BudgetMax, opp.BudgetMin
			}
			opp.Currency = cfg.Budget.ReferenceCurrency
		}
	}

	return opp
}

// exchangeRate returns the configured rate into the reference currency.
// An unknown code falls back to 1.0 so the amount survives un-converted
// rather than vanishing.
func exchangeRate(cfg *config.Config, currency string) float64 {
	if rate, ok := cfg.Budget.ExchangeRates[currency]; ok {
		return rate
	}
	return 1.0
}
