package thread

import (
	"strings"

	"github.com/jobtrail/jobtrail/internal/model"
)

// companyToken derives the employer token for an email's sender, or "" when
// no employer identity can be recovered.
func (g *Grouper) companyToken(e model.EmailRecord) string {
	domain := e.SenderDomain()
	if domain == "" {
		return ""
	}
	label := secondLevelLabel(domain)
	if label == "" {
		return ""
	}
	if g.isATSDomain(domain) {
		// The sending domain identifies the recruiting platform, not the
		// employer; try to recover the employer from other fields.
		return g.recoverEmployer(e)
	}
	return g.stripDomainSuffix(label)
}

// secondLevelLabel returns the second-to-last dot-separated label of a
// domain (q2ebanking.com -> q2ebanking).
func secondLevelLabel(domain string) string {
	labels := strings.Split(strings.ToLower(strings.Trim(domain, ".")), ".")
	if len(labels) >= 2 {
		return labels[len(labels)-2]
	}
	if len(labels) == 1 {
		return labels[0]
	}
	return ""
}

// isATSDomain reports whether any label of the sending domain names a known
// recruiting platform.
func (g *Grouper) isATSDomain(domain string) bool {
	for _, label := range strings.Split(strings.ToLower(domain), ".") {
		if _, ok := g.ats[label]; ok {
			return true
		}
	}
	return false
}

// recoverEmployer attempts to identify the true employer behind an ATS
// sending domain: first the sender local part (unless it is a generic
// notification alias), then a "<company> hiring/talent/..." display name,
// then a leading company name in the subject. Returns "" when all fail,
// which pushes the email to the later grouping rules.
func (g *Grouper) recoverEmployer(e model.EmailRecord) string {
	local := e.SenderLocalPart()
	if plus := strings.Index(local, "+"); plus >= 0 {
		local = local[:plus]
	}
	if local != "" {
		if _, generic := g.generic[local]; !generic {
			if tok := sanitizeToken(local); tok != "" {
				return tok
			}
		}
	}

	if name := e.SenderName(); name != "" {
		if m := g.teamNameRe.FindStringSubmatch(name); m != nil {
			if tok := sanitizeToken(m[1]); tok != "" {
				return tok
			}
		}
	}

	if m := g.subjectLeadRe.FindStringSubmatch(e.Subject); m != nil {
		if tok := sanitizeToken(m[1]); tok != "" {
			return tok
		}
	}

	return ""
}

// stripDomainSuffix removes a branding suffix from a domain label when the
// remaining root keeps at least two characters (q2ebanking -> q2).
func (g *Grouper) stripDomainSuffix(label string) string {
	if g.suffixRe == nil {
		return label
	}
	if m := g.suffixRe.FindStringSubmatch(label); m != nil {
		return m[1]
	}
	return label
}

// sanitizeToken lowercases a candidate employer name and keeps only
// alphanumerics; tokens shorter than two characters are discarded.
func sanitizeToken(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	tok := b.String()
	if len(tok) < 2 {
		return ""
	}
	return tok
}
