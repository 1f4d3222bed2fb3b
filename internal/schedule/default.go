package schedule

import "github.com/docsort/docsort/internal/model"

// DefaultConfig returns the built-in schedule set used before any
// configuration has been imported. It follows the usual estate-inventory
// schedule layout.
func DefaultConfig() model.ScheduleConfig {
	return model.ScheduleConfig{
		Categories: []model.CategoryDefinition{
			{
				ID:    "schedule-a-real-estate",
				Label: "Schedule A — Real Estate",
				Keywords: []model.WeightedTerm{
					{Term: "deed", Weight: 10},
					{Term: "deed of trust", Weight: 12},
					{Term: "real property", Weight: 8},
					{Term: "parcel", Weight: 6},
					{Term: "mortgage", Weight: 6},
					{Term: "property tax", Weight: 6},
					{Term: "escrow", Weight: 5},
				},
				SmallTerms: []model.WeightedTerm{
					{Term: "lot", Weight: 2},
					{Term: "acre", Weight: 2},
					{Term: "easement", Weight: 3},
					{Term: "title", Weight: 2},
				},
			},
			{
				ID:    "schedule-b-securities",
				Label: "Schedule B — Stocks and Bonds",
				Keywords: []model.WeightedTerm{
					{Term: "brokerage", Weight: 10},
					{Term: "shares", Weight: 6},
					{Term: "dividend", Weight: 8},
					{Term: "mutual fund", Weight: 8},
					{Term: "stock certificate", Weight: 12},
					{Term: "bond", Weight: 5},
					{Term: "portfolio", Weight: 6},
				},
				SmallTerms: []model.WeightedTerm{
					{Term: "cusip", Weight: 4},
					{Term: "ticker", Weight: 3},
					{Term: "equity", Weight: 2},
				},
			},
			{
				ID:    "schedule-c-cash",
				Label: "Schedule C — Mortgages, Notes, and Cash",
				Keywords: []model.WeightedTerm{
					{Term: "bank statement", Weight: 10},
					{Term: "checking account", Weight: 8},
					{Term: "savings account", Weight: 8},
					{Term: "certificate of deposit", Weight: 10},
					{Term: "promissory note", Weight: 12},
					{Term: "account balance", Weight: 6},
				},
				SmallTerms: []model.WeightedTerm{
					{Term: "interest", Weight: 2},
					{Term: "deposit", Weight: 2},
					{Term: "withdrawal", Weight: 2},
					{Term: "routing", Weight: 3},
				},
			},
			{
				ID:    "schedule-d-insurance",
				Label: "Schedule D — Insurance",
				Keywords: []model.WeightedTerm{
					{Term: "policy", Weight: 6},
					{Term: "life insurance", Weight: 12},
					{Term: "beneficiary", Weight: 8},
					{Term: "annuity", Weight: 10},
					{Term: "premium", Weight: 6},
					{Term: "death benefit", Weight: 10},
				},
				SmallTerms: []model.WeightedTerm{
					{Term: "insured", Weight: 3},
					{Term: "coverage", Weight: 2},
					{Term: "claim", Weight: 2},
				},
			},
			{
				ID:    "schedule-e-retirement",
				Label: "Schedule E — Retirement Accounts",
				Keywords: []model.WeightedTerm{
					{Term: "401k", Weight: 12},
					{Term: "ira", Weight: 8},
					{Term: "pension", Weight: 10},
					{Term: "retirement", Weight: 8},
					{Term: "rollover", Weight: 6},
					{Term: "required minimum distribution", Weight: 10},
				},
				SmallTerms: []model.WeightedTerm{
					{Term: "vested", Weight: 3},
					{Term: "contribution", Weight: 2},
					{Term: "custodian", Weight: 2},
				},
			},
			{
				ID:    "schedule-f-misc",
				Label: "Schedule F — Other Miscellaneous Property",
				Keywords: []model.WeightedTerm{
					{Term: "vehicle", Weight: 8},
					{Term: "certificate of title", Weight: 10},
					{Term: "appraisal", Weight: 8},
					{Term: "jewelry", Weight: 6},
					{Term: "collection", Weight: 4},
					{Term: "bill of sale", Weight: 8},
				},
				SmallTerms: []model.WeightedTerm{
					{Term: "vin", Weight: 4},
					{Term: "make", Weight: 1},
					{Term: "model", Weight: 1},
					{Term: "antique", Weight: 3},
				},
			},
		},
		FilenameRules: []model.FilenameRule{
			{Pattern: `\bdeed\b`, Category: "schedule-a-real-estate"},
			{Pattern: `property.?tax`, Category: "schedule-a-real-estate"},
			{Pattern: `\bbrokerage\b`, Category: "schedule-b-securities"},
			{Pattern: `bank.?statement`, Category: "schedule-c-cash"},
			{Pattern: `\bpolicy\b`, Category: "schedule-d-insurance"},
			{Pattern: `\b401k\b`, Category: "schedule-e-retirement"},
			{Pattern: `\bira\b`, Category: "schedule-e-retirement"},
			{Pattern: `\btitle\b`, Category: "schedule-f-misc"},
		},
	}
}
