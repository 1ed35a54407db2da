package jurisdiction

import (
	"github.com/rgehrsitz/taxpilot/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxYear is the year the built-in table describes.
const TaxYear = 2024

// Default returns the built-in 2024 table. Each call returns a fresh copy
// that the caller may modify.
func Default() *domain.JurisdictionTable {
	return &domain.JurisdictionTable{
		Year:    TaxYear,
		Federal: federal2024(),
		States:  states2024(),
	}
}

func federal2024() domain.FederalRules {
	return domain.FederalRules{
		Single: []domain.FederalBracket{
			threshold(0, "0.10"),
			threshold(11600, "0.12"),
			threshold(47150, "0.22"),
			threshold(100525, "0.24"),
			threshold(191950, "0.32"),
			threshold(243725, "0.35"),
			threshold(609350, "0.37"),
		},
		Married: []domain.FederalBracket{
			threshold(0, "0.10"),
			threshold(23200, "0.12"),
			threshold(94300, "0.22"),
			threshold(201050, "0.24"),
			threshold(383900, "0.32"),
			threshold(487450, "0.35"),
			threshold(731200, "0.37"),
		},
		StandardDeduction: domain.FederalStandardDeduction{
			Single:          decimal.NewFromInt(14600),
			Married:         decimal.NewFromInt(29200),
			HeadOfHousehold: decimal.NewFromInt(21900),
		},
		StudentLoanInterestCap:     decimal.NewFromInt(2500),
		IRADeductionCap:            decimal.NewFromInt(7000),
		ChildTaxCreditPerDependent: decimal.NewFromInt(2000),
		SelfEmployment: domain.SelfEmploymentRules{
			EarningsFactor:  decimal.RequireFromString("0.9235"),
			TaxRate:         decimal.RequireFromString("0.153"),
			DeductibleShare: decimal.RequireFromString("0.5"),
		},
	}
}

func threshold(at int64, r string) domain.FederalBracket {
	return domain.FederalBracket{Threshold: decimal.NewFromInt(at), Rate: decimal.RequireFromString(r)}
}

func band(lo, hi int64, r string) domain.StateBracket {
	upper := decimal.NewFromInt(hi)
	return domain.StateBracket{Min: decimal.NewFromInt(lo), Max: &upper, Rate: decimal.RequireFromString(r)}
}

func top(lo int64, r string) domain.StateBracket {
	return domain.StateBracket{Min: decimal.NewFromInt(lo), Rate: decimal.RequireFromString(r)}
}

func rate(r string) *decimal.Decimal {
	d := decimal.RequireFromString(r)
	return &d
}

func amounts(single, marriedJoint, marriedSeparate, headOfHousehold int64) *domain.FilingStatusAmounts {
	return &domain.FilingStatusAmounts{
		Single:          decimal.NewFromInt(single),
		MarriedJoint:    decimal.NewFromInt(marriedJoint),
		MarriedSeparate: decimal.NewFromInt(marriedSeparate),
		HeadOfHousehold: decimal.NewFromInt(headOfHousehold),
	}
}

func exemption(single, marriedJoint, marriedSeparate, headOfHousehold, dependent int64) *domain.PersonalExemption {
	return &domain.PersonalExemption{
		FilingStatusAmounts: *amounts(single, marriedJoint, marriedSeparate, headOfHousehold),
		Dependent:           decimal.NewFromInt(dependent),
	}
}

// states2024 lists the 50 states. The District of Columbia is not included.
func states2024() map[string]domain.JurisdictionTaxInfo {
	return map[string]domain.JurisdictionTaxInfo{
		"AL": {
			Name:         "Alabama",
			Abbreviation: "AL",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 500, "0.02"),
				band(500, 3000, "0.04"),
				top(3000, "0.05"),
			},
			StandardDeduction: amounts(2500, 7500, 3750, 2500),
			PersonalExemption: exemption(1500, 3000, 1500, 1500, 1000),
		},
		"AK": {
			Name:         "Alaska",
			Abbreviation: "AK",
			HasIncomeTax: false,
		},
		"AZ": {
			Name:         "Arizona",
			Abbreviation: "AZ",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 27808, "0.0259"),
				band(27808, 69675, "0.0334"),
				band(69675, 104835, "0.0417"),
				top(104835, "0.045"),
			},
			StandardDeduction: amounts(13850, 27700, 13850, 20800),
		},
		"AR": {
			Name:         "Arkansas",
			Abbreviation: "AR",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 4300, "0.02"),
				band(4300, 8500, "0.04"),
				band(8500, 12800, "0.059"),
				top(12800, "0.0595"),
			},
			StandardDeduction: amounts(2340, 4680, 2340, 3440),
		},
		"CA": {
			Name:         "California",
			Abbreviation: "CA",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 10099, "0.01"),
				band(10099, 23942, "0.02"),
				band(23942, 37788, "0.04"),
				band(37788, 52455, "0.06"),
				band(52455, 66295, "0.08"),
				band(66295, 338639, "0.093"),
				band(338639, 406364, "0.103"),
				band(406364, 677278, "0.113"),
				top(677278, "0.123"),
			},
			StandardDeduction: amounts(5202, 10404, 5202, 10726),
		},
		"CO": {
			Name:              "Colorado",
			Abbreviation:      "CO",
			HasIncomeTax:      true,
			FlatRate:          rate("0.044"),
			StandardDeduction: amounts(13850, 27700, 13850, 20800),
		},
		"CT": {
			Name:         "Connecticut",
			Abbreviation: "CT",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 10000, "0.03"),
				band(10000, 50000, "0.05"),
				band(50000, 100000, "0.055"),
				band(100000, 200000, "0.06"),
				band(200000, 250000, "0.065"),
				band(250000, 500000, "0.069"),
				top(500000, "0.0699"),
			},
			StandardDeduction: amounts(13850, 27700, 13850, 20800),
		},
		"DE": {
			Name:         "Delaware",
			Abbreviation: "DE",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 2000, "0.022"),
				band(2000, 5000, "0.039"),
				band(5000, 10000, "0.048"),
				band(10000, 20000, "0.052"),
				top(20000, "0.066"),
			},
			StandardDeduction: amounts(3250, 6500, 3250, 3250),
		},
		"FL": {
			Name:         "Florida",
			Abbreviation: "FL",
			HasIncomeTax: false,
		},
		"GA": {
			Name:         "Georgia",
			Abbreviation: "GA",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 750, "0.01"),
				band(750, 2250, "0.02"),
				band(2250, 3750, "0.03"),
				band(3750, 5250, "0.04"),
				band(5250, 7000, "0.05"),
				top(7000, "0.0575"),
			},
			StandardDeduction: amounts(4600, 6000, 3000, 4600),
			PersonalExemption: exemption(2700, 5400, 2700, 2700, 3000),
		},
		"HI": {
			Name:         "Hawaii",
			Abbreviation: "HI",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 2400, "0.014"),
				band(2400, 4800, "0.032"),
				band(4800, 9600, "0.055"),
				band(9600, 14400, "0.064"),
				band(14400, 19200, "0.068"),
				band(19200, 24000, "0.072"),
				band(24000, 36000, "0.076"),
				band(36000, 48000, "0.079"),
				band(48000, 150000, "0.0825"),
				band(150000, 175000, "0.09"),
				band(175000, 200000, "0.10"),
				top(200000, "0.11"),
			},
			StandardDeduction: amounts(2200, 4400, 2200, 3212),
		},
		"ID": {
			Name:         "Idaho",
			Abbreviation: "ID",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 1568, "0.01"),
				band(1568, 3135, "0.03"),
				band(3135, 4703, "0.045"),
				band(4703, 6270, "0.06"),
				top(6270, "0.0695"),
			},
			StandardDeduction: amounts(13850, 27700, 13850, 20800),
		},
		"IL": {
			Name:              "Illinois",
			Abbreviation:      "IL",
			HasIncomeTax:      true,
			FlatRate:          rate("0.0495"),
			StandardDeduction: amounts(2375, 4750, 2375, 2375),
			PersonalExemption: exemption(2425, 4850, 2425, 2425, 2425),
		},
		"IN": {
			Name:              "Indiana",
			Abbreviation:      "IN",
			HasIncomeTax:      true,
			FlatRate:          rate("0.0323"),
			StandardDeduction: amounts(13850, 27700, 13850, 20800),
			PersonalExemption: exemption(1000, 2000, 1000, 1000, 1500),
		},
		"IA": {
			Name:         "Iowa",
			Abbreviation: "IA",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 1743, "0.0033"),
				band(1743, 4358, "0.0067"),
				band(4358, 8716, "0.0225"),
				band(8716, 19619, "0.0414"),
				band(19619, 32659, "0.0563"),
				band(32659, 65318, "0.0596"),
				band(65318, 98039, "0.0625"),
				top(98039, "0.0853"),
			},
			StandardDeduction: amounts(2130, 5240, 2620, 3130),
		},
		"KS": {
			Name:         "Kansas",
			Abbreviation: "KS",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 15000, "0.031"),
				band(15000, 30000, "0.0525"),
				top(30000, "0.057"),
			},
			StandardDeduction: amounts(3500, 8000, 4000, 5800),
			PersonalExemption: exemption(2250, 4500, 2250, 2250, 2250),
		},
		"KY": {
			Name:              "Kentucky",
			Abbreviation:      "KY",
			HasIncomeTax:      true,
			FlatRate:          rate("0.045"),
			StandardDeduction: amounts(2770, 5540, 2770, 2770),
		},
		"LA": {
			Name:         "Louisiana",
			Abbreviation: "LA",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 12500, "0.0185"),
				band(12500, 50000, "0.035"),
				top(50000, "0.0425"),
			},
			StandardDeduction: amounts(4500, 9000, 4500, 6750),
			PersonalExemption: exemption(4500, 9000, 4500, 4500, 1000),
		},
		"ME": {
			Name:         "Maine",
			Abbreviation: "ME",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 24500, "0.058"),
				band(24500, 58050, "0.0675"),
				top(58050, "0.0715"),
			},
			StandardDeduction: amounts(13850, 27700, 13850, 20800),
		},
		"MD": {
			Name:         "Maryland",
			Abbreviation: "MD",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 1000, "0.02"),
				band(1000, 2000, "0.03"),
				band(2000, 3000, "0.04"),
				band(3000, 100000, "0.0475"),
				band(100000, 125000, "0.05"),
				band(125000, 150000, "0.0525"),
				band(150000, 250000, "0.055"),
				top(250000, "0.0575"),
			},
			StandardDeduction: amounts(2400, 4850, 2400, 2400),
			PersonalExemption: exemption(3200, 6400, 3200, 3200, 3200),
		},
		"MA": {
			Name:              "Massachusetts",
			Abbreviation:      "MA",
			HasIncomeTax:      true,
			FlatRate:          rate("0.05"),
			StandardDeduction: amounts(4400, 8800, 4400, 6900),
			PersonalExemption: exemption(4400, 8800, 4400, 4400, 1000),
		},
		"MI": {
			Name:              "Michigan",
			Abbreviation:      "MI",
			HasIncomeTax:      true,
			FlatRate:          rate("0.0425"),
			StandardDeduction: amounts(5050, 10100, 5050, 5050),
			PersonalExemption: exemption(5050, 10100, 5050, 5050, 5050),
		},
		"MN": {
			Name:         "Minnesota",
			Abbreviation: "MN",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 29458, "0.0535"),
				band(29458, 96770, "0.068"),
				band(96770, 171220, "0.0785"),
				top(171220, "0.0985"),
			},
			StandardDeduction: amounts(13850, 27700, 13850, 20800),
		},
		"MS": {
			Name:         "Mississippi",
			Abbreviation: "MS",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 5000, "0.03"),
				band(5000, 10000, "0.04"),
				top(10000, "0.05"),
			},
			StandardDeduction: amounts(2300, 4600, 2300, 3400),
			PersonalExemption: exemption(6000, 12000, 6000, 6000, 1500),
		},
		"MO": {
			Name:         "Missouri",
			Abbreviation: "MO",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 1121, "0.015"),
				band(1121, 2242, "0.02"),
				band(2242, 3363, "0.025"),
				band(3363, 4484, "0.03"),
				band(4484, 5605, "0.035"),
				band(5605, 6726, "0.04"),
				band(6726, 7847, "0.045"),
				band(7847, 8968, "0.05"),
				top(8968, "0.054"),
			},
			StandardDeduction: amounts(13850, 27700, 13850, 20800),
		},
		"MT": {
			Name:         "Montana",
			Abbreviation: "MT",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 3100, "0.01"),
				band(3100, 5500, "0.02"),
				band(5500, 8400, "0.03"),
				band(8400, 11300, "0.04"),
				band(11300, 14500, "0.05"),
				band(14500, 18700, "0.06"),
				top(18700, "0.0675"),
			},
			StandardDeduction: amounts(5040, 10080, 5040, 7380),
			PersonalExemption: exemption(2980, 5960, 2980, 2980, 2980),
		},
		"NE": {
			Name:         "Nebraska",
			Abbreviation: "NE",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 3700, "0.0246"),
				band(3700, 22170, "0.0351"),
				band(22170, 35730, "0.0501"),
				top(35730, "0.0684"),
			},
			StandardDeduction: amounts(7350, 18700, 9350, 10800),
			PersonalExemption: exemption(151, 302, 151, 151, 151),
		},
		"NV": {
			Name:         "Nevada",
			Abbreviation: "NV",
			HasIncomeTax: false,
		},
		"NH": {
			Name:         "New Hampshire",
			Abbreviation: "NH",
			HasIncomeTax: false,
		},
		"NJ": {
			Name:         "New Jersey",
			Abbreviation: "NJ",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 20000, "0.014"),
				band(20000, 35000, "0.0175"),
				band(35000, 40000, "0.035"),
				band(40000, 75000, "0.0553"),
				band(75000, 500000, "0.0637"),
				band(500000, 1000000, "0.0897"),
				top(1000000, "0.1075"),
			},
			StandardDeduction: amounts(1000, 2000, 1000, 1000),
			PersonalExemption: exemption(1000, 2000, 1000, 1000, 1500),
		},
		"NM": {
			Name:         "New Mexico",
			Abbreviation: "NM",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 5500, "0.017"),
				band(5500, 11000, "0.032"),
				band(11000, 16000, "0.047"),
				band(16000, 210000, "0.049"),
				top(210000, "0.059"),
			},
			StandardDeduction: amounts(13850, 27700, 13850, 20800),
		},
		"NY": {
			Name:         "New York",
			Abbreviation: "NY",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 8500, "0.04"),
				band(8500, 11700, "0.045"),
				band(11700, 13900, "0.0525"),
				band(13900, 80650, "0.055"),
				band(80650, 215400, "0.06"),
				band(215400, 1077550, "0.0685"),
				band(1077550, 5000000, "0.0965"),
				band(5000000, 25000000, "0.103"),
				top(25000000, "0.109"),
			},
			StandardDeduction: amounts(8000, 16050, 8000, 11200),
		},
		"NC": {
			Name:              "North Carolina",
			Abbreviation:      "NC",
			HasIncomeTax:      true,
			FlatRate:          rate("0.0475"),
			StandardDeduction: amounts(12750, 25500, 12750, 19125),
		},
		"ND": {
			Name:         "North Dakota",
			Abbreviation: "ND",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 41775, "0.0110"),
				band(41775, 101050, "0.0204"),
				band(101050, 204200, "0.0227"),
				band(204200, 445000, "0.0264"),
				top(445000, "0.0290"),
			},
			StandardDeduction: amounts(13850, 27700, 13850, 20800),
		},
		"OH": {
			Name:         "Ohio",
			Abbreviation: "OH",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 26050, "0.0285"),
				band(26050, 41600, "0.0333"),
				band(41600, 83350, "0.0380"),
				band(83350, 104250, "0.0428"),
				top(104250, "0.0476"),
			},
			StandardDeduction: amounts(2400, 4800, 2400, 3550),
			PersonalExemption: exemption(2400, 4800, 2400, 2400, 2400),
		},
		"OK": {
			Name:         "Oklahoma",
			Abbreviation: "OK",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 1000, "0.0025"),
				band(1000, 2500, "0.0075"),
				band(2500, 3750, "0.0175"),
				band(3750, 4900, "0.0275"),
				band(4900, 7200, "0.0375"),
				top(7200, "0.05"),
			},
			StandardDeduction: amounts(6350, 12700, 6350, 9350),
			PersonalExemption: exemption(1000, 2000, 1000, 1000, 1000),
		},
		"OR": {
			Name:         "Oregon",
			Abbreviation: "OR",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 4050, "0.0475"),
				band(4050, 10200, "0.0675"),
				band(10200, 25550, "0.0875"),
				band(25550, 64000, "0.099"),
				top(64000, "0.099"),
			},
			StandardDeduction: amounts(2605, 5210, 2605, 4160),
		},
		"PA": {
			Name:              "Pennsylvania",
			Abbreviation:      "PA",
			HasIncomeTax:      true,
			FlatRate:          rate("0.0307"),
			StandardDeduction: amounts(0, 0, 0, 0),
		},
		"RI": {
			Name:         "Rhode Island",
			Abbreviation: "RI",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 68200, "0.0375"),
				band(68200, 155050, "0.0475"),
				top(155050, "0.0599"),
			},
			StandardDeduction: amounts(9550, 19100, 9550, 14200),
		},
		"SC": {
			Name:         "South Carolina",
			Abbreviation: "SC",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 3200, "0.0"),
				band(3200, 16040, "0.03"),
				top(16040, "0.07"),
			},
			StandardDeduction: amounts(13850, 27700, 13850, 20800),
		},
		"SD": {
			Name:         "South Dakota",
			Abbreviation: "SD",
			HasIncomeTax: false,
		},
		"TN": {
			Name:         "Tennessee",
			Abbreviation: "TN",
			HasIncomeTax: false,
		},
		"TX": {
			Name:         "Texas",
			Abbreviation: "TX",
			HasIncomeTax: false,
		},
		"UT": {
			Name:              "Utah",
			Abbreviation:      "UT",
			HasIncomeTax:      true,
			FlatRate:          rate("0.0495"),
			StandardDeduction: amounts(13850, 27700, 13850, 20800),
		},
		"VT": {
			Name:         "Vermont",
			Abbreviation: "VT",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 42150, "0.0335"),
				band(42150, 102200, "0.066"),
				band(102200, 208450, "0.076"),
				top(208450, "0.0875"),
			},
			StandardDeduction: amounts(7150, 14300, 7150, 10550),
		},
		"VA": {
			Name:         "Virginia",
			Abbreviation: "VA",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 3000, "0.02"),
				band(3000, 5000, "0.03"),
				band(5000, 17000, "0.05"),
				top(17000, "0.0575"),
			},
			StandardDeduction: amounts(4500, 9000, 4500, 6750),
			PersonalExemption: exemption(930, 1860, 930, 930, 930),
		},
		"WA": {
			Name:         "Washington",
			Abbreviation: "WA",
			HasIncomeTax: false,
		},
		"WV": {
			Name:         "West Virginia",
			Abbreviation: "WV",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 10000, "0.03"),
				band(10000, 25000, "0.04"),
				band(25000, 40000, "0.045"),
				band(40000, 60000, "0.06"),
				top(60000, "0.065"),
			},
			StandardDeduction: amounts(13850, 27700, 13850, 20800),
		},
		"WI": {
			Name:         "Wisconsin",
			Abbreviation: "WI",
			HasIncomeTax: true,
			Brackets: []domain.StateBracket{
				band(0, 13810, "0.0354"),
				band(13810, 27630, "0.0465"),
				band(27630, 304170, "0.0627"),
				top(304170, "0.0765"),
			},
			StandardDeduction: amounts(13850, 27700, 13850, 20800),
		},
		"WY": {
			Name:         "Wyoming",
			Abbreviation: "WY",
			HasIncomeTax: false,
		},
	}
}
