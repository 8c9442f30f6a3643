package thread

// Rules holds the heuristic pattern lists the grouper is built from. The
// lists are data, not logic, so they can be tuned from configuration without
// touching the grouping code.
type Rules struct {
	// ATSDomains are recruiting-platform sending domains whose second-level
	// label identifies the platform, not the employer (e.g. myworkday.com).
	ATSDomains []string `json:"ats_domains"`

	// DomainSuffixes are branding suffixes stripped from a company domain
	// label, e.g. q2ebanking -> q2.
	DomainSuffixes []string `json:"domain_suffixes"`

	// SubjectPrefixes are reply/forward/reminder style prefixes stripped
	// from the front of a subject before comparison.
	SubjectPrefixes []string `json:"subject_prefixes"`

	// AdminSuffixes are administrative words stripped from the end of a
	// normalized subject.
	AdminSuffixes []string `json:"admin_suffixes"`

	// GenericAliases are sender local parts that never identify an
	// employer (notification mailboxes on ATS platforms).
	GenericAliases []string `json:"generic_aliases"`
}

// DefaultRules returns the built-in pattern lists.
func DefaultRules() Rules {
	return Rules{
		ATSDomains: []string{
			"myworkday",
			"smartrecruiters",
			"greenhouse",
			"lever",
			"ashbyhq",
			"icims",
		},
		DomainSuffixes: []string{
			"ebanking",
			"banking",
			"interviews",
			"hiring",
			"talent",
			"hr",
			"recruitment",
			"careers",
		},
		SubjectPrefixes: []string{
			"re",
			"fw",
			"fwd",
			"reminder",
			"urgent",
			"action required",
		},
		AdminSuffixes: []string{
			"confirmation",
			"confirmed",
			"scheduled",
			"please confirm",
			"action required",
			"rsvp",
			"booking",
			"availability request",
		},
		GenericAliases: []string{
			"notification",
			"notifications",
		},
	}
}
