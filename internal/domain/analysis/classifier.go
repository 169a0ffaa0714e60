package analysis

import (
	"strings"

	customervo "github.com/aegis-support/aegis/internal/domain/customer/valueobjects"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
)

// Classification is the classifier's verdict for one issue.
type Classification struct {
	Severity   issuevo.Severity
	Confidence float64
}

// severityLexicon maps each severity to its indicator phrases. Phrase
// hits are weighted by the severity's urgency so a single "production
// down" outweighs several "minor issue" mentions.
var severityLexicon = map[issuevo.Severity][]string{
	issuevo.SeverityCritical: {
		"system down", "outage", "cannot access", "complete failure",
		"data loss", "security breach", "urgent", "emergency",
		"production down", "service unavailable",
	},
	issuevo.SeverityHigh: {
		"major issue", "significant problem", "blocking", "broken",
		"not working", "error", "failure", "important",
		"affecting multiple users", "performance issue",
	},
	issuevo.SeverityNormal: {
		"question", "help", "how to", "clarification",
		"minor issue", "improvement", "suggestion",
	},
	issuevo.SeverityLow: {
		"feature request", "enhancement", "nice to have",
		"cosmetic", "documentation", "typo",
	},
}

var severityWeights = map[issuevo.Severity]float64{
	issuevo.SeverityCritical: 3,
	issuevo.SeverityHigh:     2,
	issuevo.SeverityNormal:   1,
	issuevo.SeverityLow:      0.5,
}

// severityOrder fixes the tie-break order so classification is
// deterministic: on equal scores the more urgent severity wins.
var severityOrder = []issuevo.Severity{
	issuevo.SeverityCritical,
	issuevo.SeverityHigh,
	issuevo.SeverityNormal,
	issuevo.SeverityLow,
}

// Classifier scores issue text against the severity lexicon. It is a
// pure function of its inputs: no model state changes between calls, so
// identical inputs always classify identically.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify returns the severity and a confidence in [0, 1]. Empty or
// unrecognized input maps to Normal with low confidence instead of
// failing; the caller decides whether low confidence warrants human
// review.
func (c *Classifier) Classify(text string, category issuevo.Category, tier customervo.Tier) Classification {
	content := strings.ToLower(strings.TrimSpace(text))
	if content == "" {
		return Classification{Severity: issuevo.SeverityNormal, Confidence: 0.3}
	}

	scores := make(map[issuevo.Severity]float64, len(severityLexicon))
	var total float64
	for severity, phrases := range severityLexicon {
		var score float64
		for _, phrase := range phrases {
			if strings.Contains(content, phrase) {
				score += severityWeights[severity]
			}
		}
		scores[severity] = score
		total += score
	}

	// Enterprise customers get urgency benefit of the doubt on
	// otherwise ambiguous reports.
	if tier == customervo.TierEnterprise {
		if scores[issuevo.SeverityHigh] > 0 {
			scores[issuevo.SeverityHigh] += 0.5
			total += 0.5
		}
		if scores[issuevo.SeverityCritical] > 0 {
			scores[issuevo.SeverityCritical] += 0.5
			total += 0.5
		}
	}

	if total == 0 {
		// No lexicon evidence: fall back to a category prior.
		severity := issuevo.SeverityNormal
		if category == issuevo.CategoryFeatureRequest {
			severity = issuevo.SeverityLow
		}
		return Classification{Severity: severity, Confidence: 0.4}
	}

	best := issuevo.SeverityNormal
	var bestScore float64
	for _, severity := range severityOrder {
		if scores[severity] > bestScore {
			best = severity
			bestScore = scores[severity]
		}
	}

	return Classification{Severity: best, Confidence: confidence(bestScore, total)}
}

// confidence blends the winning share of the total evidence with the
// absolute strength of that evidence, so a lone weak hit does not read
// as certainty.
func confidence(bestScore, total float64) float64 {
	margin := bestScore / total
	strength := bestScore / 4
	if strength > 1 {
		strength = 1
	}
	c := 0.5*margin + 0.5*strength
	if c > 1 {
		c = 1
	}
	return c
}
