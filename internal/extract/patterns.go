package extract

import "regexp"

// Organization classes for pattern grouping. A class is detected from the
// record's source website and text via the configured alias lists.
const (
	ClassUNAgencies       = "un_agencies"
	ClassWorldBank        = "world_bank"
	ClassDevelopmentBanks = "development_banks"
	ClassHealthFunds      = "health_funds"
	ClassNGOs             = "ngos"
	ClassGeneric          = "generic"
)

type pattern struct {
	id         string
	re         *regexp.Regexp
	confidence float64
}

type patternGroup struct {
	class    string
	patterns []pattern
}

// patternGroups is tried in priority order: organization-specific formats
// carry a higher base confidence than the generic fallbacks. Dynamic
// dispatch per organization is just this table plus a classifier lookup.
var patternGroups = []patternGroup{
	{
		class: ClassUNAgencies,
		patterns: []pattern{
			// UNDP country office format (UNDP-PHL-00123)
			{"undp_country", regexp.MustCompile(`\b(UNDP-[A-Z]{2,4}-\d{4,6})\b`), 0.98},
			// UN solicitation with org segment (RFP/2024/PROC/001)
			{"un_solicitation_org", regexp.MustCompile(`\b((?:RFP|RFQ|ITB|EOI|RFI)[/-]\d{4}[/-][A-Z]{2,6}[/-]\d{2,4})\b`), 0.95},
			// UN standard solicitation (RFP/2024/001)
			{"un_solicitation", regexp.MustCompile(`\b((?:RFP|RFQ|ITB|EOI|RFI)[/-]\d{4}[/-]\d{3,4})\b`), 0.95},
			// UN agency format (UNHCR/2024/001)
			{"un_agency", regexp.MustCompile(`\b(UN[A-Z]{2,4}[/-]\d{4}[/-]\d{3,4})\b`), 0.90},
			// Extended agency format (UNICEF/2024/PROC/001)
			{"un_extended", regexp.MustCompile(`\b([A-Z]{3,6}[/-]\d{4}[/-][A-Z]{2,4}[/-]\d{3,4})\b`), 0.85},
		},
	},
	{
		class: ClassWorldBank,
		patterns: []pattern{
			// Project ID (P158522)
			{"wb_project", regexp.MustCompile(`\bP(\d{6})\b`), 0.95},
			// Trust fund (TF123456)
			{"wb_trust_fund", regexp.MustCompile(`\bTF(\d{6})\b`), 0.90},
			// Procurement notice (WB/2024/001)
			{"wb_procurement", regexp.MustCompile(`\b(WB[/-]\d{4}[/-]\d{3,4})\b`), 0.85},
		},
	},
	{
		class: ClassDevelopmentBanks,
		patterns: []pattern{
			{"adb_notice", regexp.MustCompile(`\b(ADB[/-]\d{4}[/-]\d{3,4})\b`), 0.90},
			{"afdb_notice", regexp.MustCompile(`\b(A[Ff]DB[/-]\d{4}[/-]\d{3,4})\b`), 0.90},
			{"devbank_notice", regexp.MustCompile(`\b([A-Z]{2,4}DB[/-]\d{4}[/-]\d{3,4})\b`), 0.85},
		},
	},
	{
		class: ClassHealthFunds,
		patterns: []pattern{
			// Global Fund style (TGF-25-031)
			{"tgf_notice", regexp.MustCompile(`\b(TGF-\d{2}-\d{2,4})\b`), 0.92},
		},
	},
	{
		class: ClassNGOs,
		patterns: []pattern{
			// NGO standard format (SC/2024/MEDIA/001)
			{"ngo_standard", regexp.MustCompile(`\b([A-Z]{2,4}[/-]\d{4}[/-][A-Z]{3,6}[/-]\d{3,4})\b`), 0.90},
			// Dash format (IRC-2024-001)
			{"ngo_dash", regexp.MustCompile(`\b([A-Z]{3,5}-\d{4}-\d{3,4})\b`), 0.85},
			// Explicit reference label (REF-2024-001)
			{"ngo_ref", regexp.MustCompile(`\b(REF[/-]\d{4}[/-]\d{3,4})\b`), 0.80},
		},
	},
	{
		class: ClassGeneric,
		patterns: []pattern{
			// prefix/digits/digits fallback (ABC-2024-17, XYZ/24/003)
			{"generic_prefix", regexp.MustCompile(`\b([A-Z]{2,5}[/-]\d{2,6}[/-]\d{2,6})\b`), 0.65},
			// Year-number (2024-001)
			{"generic_year", regexp.MustCompile(`\b(\d{4}[/-]\d{3,4})\b`), 0.60},
			// Compact alphanumeric (ABC12345)
			{"generic_alnum", regexp.MustCompile(`\b([A-Z]{2,4}\d{4,8})\b`), 0.55},
		},
	},
}
