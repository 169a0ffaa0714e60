package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	customervo "github.com/aegis-support/aegis/internal/domain/customer/valueobjects"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
)

func TestClassifier_SeverityLevels(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		name     string
		text     string
		category issuevo.Category
		expected issuevo.Severity
	}{
		{
			name:     "production outage is critical",
			text:     "Complete outage: production down, service unavailable for all customers",
			category: issuevo.CategoryTechnical,
			expected: issuevo.SeverityCritical,
		},
		{
			name:     "broken feature is high",
			text:     "Export to CSV is broken and not working since yesterday, blocking our reports",
			category: issuevo.CategoryTechnical,
			expected: issuevo.SeverityHigh,
		},
		{
			name:     "question is normal",
			text:     "Question: how to configure the webhook retries? Need some clarification",
			category: issuevo.CategoryGeneral,
			expected: issuevo.SeverityNormal,
		},
		{
			name:     "cosmetic issue is low",
			text:     "Small typo in the documentation sidebar, cosmetic only",
			category: issuevo.CategoryGeneral,
			expected: issuevo.SeverityLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.text, tt.category, customervo.TierBasic)
			assert.Equal(t, tt.expected, result.Severity)
			assert.True(t, result.Severity.IsValid())
			assert.GreaterOrEqual(t, result.Confidence, 0.0)
			assert.LessOrEqual(t, result.Confidence, 1.0)
		})
	}
}

func TestClassifier_EmptyInputDefaultsToNormal(t *testing.T) {
	c := NewClassifier()

	for _, text := range []string{"", "   ", "\t\n"} {
		result := c.Classify(text, issuevo.CategoryGeneral, customervo.TierBasic)
		assert.Equal(t, issuevo.SeverityNormal, result.Severity)
		assert.LessOrEqual(t, result.Confidence, 0.5)
	}
}

func TestClassifier_NoLexiconEvidenceUsesCategoryPrior(t *testing.T) {
	c := NewClassifier()

	result := c.Classify("zxqv wlrtk pmnds", issuevo.CategoryFeatureRequest, customervo.TierBasic)
	assert.Equal(t, issuevo.SeverityLow, result.Severity)
	assert.LessOrEqual(t, result.Confidence, 0.5)

	result = c.Classify("zxqv wlrtk pmnds", issuevo.CategoryTechnical, customervo.TierBasic)
	assert.Equal(t, issuevo.SeverityNormal, result.Severity)
}

func TestClassifier_Deterministic(t *testing.T) {
	c := NewClassifier()
	text := "urgent: data loss after the last deployment, emergency"

	first := c.Classify(text, issuevo.CategoryTechnical, customervo.TierPremium)
	for i := 0; i < 10; i++ {
		again := c.Classify(text, issuevo.CategoryTechnical, customervo.TierPremium)
		assert.Equal(t, first, again)
	}
}

func TestClassifier_EnterpriseTierBoost(t *testing.T) {
	c := NewClassifier()
	// One high hit and one normal hit: the enterprise boost must keep
	// the verdict at high with more confidence than the basic tier.
	text := "error during import, need help"

	basic := c.Classify(text, issuevo.CategoryTechnical, customervo.TierBasic)
	enterprise := c.Classify(text, issuevo.CategoryTechnical, customervo.TierEnterprise)

	assert.Equal(t, issuevo.SeverityHigh, basic.Severity)
	assert.Equal(t, issuevo.SeverityHigh, enterprise.Severity)
	assert.Greater(t, enterprise.Confidence, basic.Confidence)
}
