package thread

import "strings"

// normalizeSubject reduces a subject line to its comparable core so that
// replies, reminders and scheduling follow-ups about the same conversation
// collapse to one grouping key.
//
// Steps, in order: strip reply/forward/reminder prefixes, strip a trailing
// "- FirstName LastName" personalization, lowercase, fold confusable
// characters (l and | read as i in several ATS templates), strip trailing
// administrative words, collapse whitespace.
func (g *Grouper) normalizeSubject(subject string) string {
	s := strings.TrimSpace(subject)
	if s == "" {
		return ""
	}

	for {
		stripped := g.prefixRe.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}

	s = g.personalRe.ReplaceAllString(s, "")

	s = strings.ToLower(s)
	s = g.confusables.Replace(s)

	for {
		stripped := g.adminRe.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}

	return strings.Join(strings.Fields(s), " ")
}
