package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_ClientBeforeMeeting(t *testing.T) {
	c := New()

	// A brand mention dominates even when a meeting keyword is present.
	assert.Equal(t, "beam", c.Classify("Standup with Beam team"))
	assert.Equal(t, LabelMeetings, c.Classify("Weekly standup"))
}

func TestClassify_LabelNormalization(t *testing.T) {
	c := New()

	assert.Equal(t, "acmecorp", c.Classify("Kickoff call with ACME CORP next week"))
}

func TestClassify_MeetingBeforeBusiness(t *testing.T) {
	c := New()

	assert.Equal(t, LabelMeetings, c.Classify("Retrospective on the invoice process"))
	assert.Equal(t, LabelBusiness, c.Classify("Sent the invoice yesterday"))
}

func TestClassify_NoMatch(t *testing.T) {
	c := New()

	assert.Equal(t, "", c.Classify("fixed a flaky test"))
	assert.Equal(t, "", c.Classify(""))
}

func TestClassify_Deterministic(t *testing.T) {
	c := New()

	first := c.Classify("Lighthouse proposal review")
	second := c.Classify("Lighthouse proposal review")
	assert.Equal(t, first, second)
	assert.Equal(t, "lighthouse", first)
}

func TestWith_PrependsRules(t *testing.T) {
	base := New()
	derived := base.With(Rule{Pattern: "payout", Label: "finance"})

	assert.Equal(t, "finance", derived.Classify("Payout to Beam completed"))
	// Base classifier is unchanged.
	assert.Equal(t, "beam", base.Classify("Payout to Beam completed"))
}
