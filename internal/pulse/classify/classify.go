package classify

import "strings"

// Rule maps a case-insensitive substring pattern to a project label.
type Rule struct {
	Pattern string
	Label   string
}

// LabelMeetings and LabelBusiness are the constant labels for the generic
// keyword groups.
const (
	LabelMeetings = "meetings"
	LabelBusiness = "business"
)

// clientPatterns are known client/brand names. They are evaluated before the
// generic keyword groups: a brand mention always dominates, so
// "Standup with Beam team" classifies as "beam", not as a meeting.
var clientPatterns = []string{
	"beam",
	"acme corp",
	"northwind",
	"lighthouse",
	"redwood",
	"vantage",
}

var meetingKeywords = []string{
	"standup",
	"stand-up",
	"retrospective",
	"retro",
	"demo",
	"kickoff",
	"sync",
	"1:1",
	"one-on-one",
}

var businessKeywords = []string{
	"invoice",
	"proposal",
	"contract",
	"launch",
	"renewal",
	"quote",
	"payment",
}

// Classifier evaluates an ordered rule list, first match wins. The zero
// value is unusable; build instances with New and derive per-source variants
// with With.
type Classifier struct {
	rules []Rule
}

// New returns the shared classifier: client patterns first, then meeting
// keywords, then business keywords.
func New() *Classifier {
	rules := make([]Rule, 0, len(clientPatterns)+len(meetingKeywords)+len(businessKeywords))
	for _, p := range clientPatterns {
		rules = append(rules, Rule{Pattern: p, Label: normalizeLabel(p)})
	}
	for _, k := range meetingKeywords {
		rules = append(rules, Rule{Pattern: k, Label: LabelMeetings})
	}
	for _, k := range businessKeywords {
		rules = append(rules, Rule{Pattern: k, Label: LabelBusiness})
	}
	return &Classifier{rules: rules}
}

// With returns a derived classifier with extra rules evaluated before the
// receiver's. The receiver is not modified.
func (c *Classifier) With(extra ...Rule) *Classifier {
	rules := make([]Rule, 0, len(extra)+len(c.rules))
	rules = append(rules, extra...)
	rules = append(rules, c.rules...)
	return &Classifier{rules: rules}
}

// Classify maps free text to a project label. Empty string means no match;
// callers treat that as unclassified. Pure and deterministic: identical input
// always yields identical output.
func (c *Classifier) Classify(text string) string {
	if text == "" {
		return ""
	}
	lower := strings.ToLower(text)
	for _, r := range c.rules {
		if strings.Contains(lower, strings.ToLower(r.Pattern)) {
			return r.Label
		}
	}
	return ""
}

// normalizeLabel strips non-alphanumeric characters from a pattern and
// lowercases it, so "Acme Corp" becomes "acmecorp".
func normalizeLabel(pattern string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(pattern) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
