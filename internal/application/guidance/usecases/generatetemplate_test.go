package usecases

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegis-support/aegis/internal/domain/customer"
	customervo "github.com/aegis-support/aegis/internal/domain/customer/valueobjects"
	"github.com/aegis-support/aegis/internal/domain/guidance"
	vo "github.com/aegis-support/aegis/internal/domain/guidance/valueobjects"
	"github.com/aegis-support/aegis/internal/domain/issue"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
	apperrors "github.com/aegis-support/aegis/internal/shared/errors"
)

func guidanceIssue(t *testing.T, id uint, severity issuevo.Severity, status issuevo.IssueStatus) *issue.Issue {
	t.Helper()
	now := time.Now().UTC()
	var resolvedAt *time.Time
	if status.IsTerminal() {
		resolvedAt = &now
	}
	iss, err := issue.ReconstructIssue(
		id, 8, "API returns 500 on upload", "Uploads over 10MB fail",
		issuevo.CategoryTechnical, severity, status,
		"api", 6, now.Add(-4*time.Hour), resolvedAt, now.Add(-6*time.Hour), now,
	)
	require.NoError(t, err)
	return iss
}

func guidanceCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	cust, err := customer.ReconstructCustomer(8, "Dana Reyes", "dana@globex.test", "Globex", customervo.TierPremium, time.Now().UTC())
	require.NoError(t, err)
	return cust
}

func guidanceComment(t *testing.T, id uint, role string, at time.Time) *issue.Comment {
	t.Helper()
	c, err := issue.ReconstructComment(id, 60, 8, role, "message "+role, false, at)
	require.NoError(t, err)
	return c
}

// splitGenerator answers the intent-analysis prompt and the template
// prompt differently, the way the use case issues them.
func splitGenerator(intentReply, templateReply string, intentErr, templateErr error) *mockGenerator {
	return &mockGenerator{
		GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			if strings.Contains(prompt, "Analyze this customer support message") {
				return intentReply, intentErr
			}
			return templateReply, templateErr
		},
	}
}

func newGenerateFixture(t *testing.T, iss *issue.Issue, comments []*issue.Comment, gen *mockGenerator, templateRepo *mockTemplateRepository) *GenerateTemplateUseCase {
	t.Helper()
	if templateRepo == nil {
		templateRepo = &mockTemplateRepository{}
	}
	cust := guidanceCustomer(t)
	return NewGenerateTemplateUseCase(
		&mockIssueRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*issue.Issue, error) { return iss, nil },
		},
		&mockCommentRepository{
			ListByIssueIDFunc: func(ctx context.Context, issueID uint) ([]*issue.Comment, error) { return comments, nil },
		},
		&mockCustomerRepository{
			GetByIDFunc: func(ctx context.Context, id uint) (*customer.Customer, error) { return cust, nil },
		},
		templateRepo,
		gen,
		&mockLogger{},
	)
}

func TestGenerateTemplateUseCase_Execute_FirstResponse(t *testing.T) {
	iss := guidanceIssue(t, 60, issuevo.SeverityHigh, issuevo.StatusOpen)
	gen := splitGenerator(
		`{"intent":"question","urgency":"high","sentiment":"negative","topics":["uploads"],"requests":["fix the API"]}`,
		"Hello {{customer_name}}, we are investigating and will reply within {{response_time}} hours. - {{support_agent}}",
		nil, nil,
	)
	uc := newGenerateFixture(t, iss, nil, gen, nil)

	result, err := uc.Execute(context.Background(), GenerateTemplateCommand{
		IssueID:        60,
		MessageContent: "Why do my uploads keep failing?",
	})
	require.NoError(t, err)

	assert.Equal(t, "initial_response", result.TemplateCategory)
	assert.Equal(t, "question", result.MessageIntent.Intent)
	assert.Equal(t, []string{"uploads"}, result.MessageIntent.Topics)

	tmpl := result.RecommendedTemplate
	assert.Equal(t, []string{"customer_name", "response_time", "support_agent"}, tmpl.Variables)
	assert.Equal(t, "Dana Reyes", tmpl.SuggestedValues["customer_name"])
	assert.Equal(t, "4", tmpl.SuggestedValues["response_time"])
	assert.Equal(t, "[Your Name]", tmpl.SuggestedValues["support_agent"])
	assert.Equal(t, "professional, empathetic, reassuring", tmpl.Tone)

	// 0.7 + 0.1 high severity, scaled by the question factor, + 0.05
	// for having variables.
	assert.InDelta(t, 0.77, result.ConfidenceScore, 1e-9)
	assert.Contains(t, result.CustomizationSuggestions, "Emphasize urgency and priority handling")
	assert.Contains(t, result.CustomizationSuggestions, "Include technical details if available")
}

func TestGenerateTemplateUseCase_Execute_EscalationCategory(t *testing.T) {
	iss := guidanceIssue(t, 60, issuevo.SeverityCritical, issuevo.StatusInProgress)
	now := time.Now().UTC()
	comments := []*issue.Comment{
		guidanceComment(t, 1, "customer", now.Add(-2*time.Hour)),
		guidanceComment(t, 2, "support", now.Add(-time.Hour)),
		guidanceComment(t, 3, "customer", now),
	}
	gen := splitGenerator(
		`{"intent":"complaint","urgency":"critical","sentiment":"angry","topics":[],"requests":[]}`,
		"We sincerely apologize, {{customer_name}}.",
		nil, nil,
	)
	uc := newGenerateFixture(t, iss, comments, gen, nil)

	result, err := uc.Execute(context.Background(), GenerateTemplateCommand{
		IssueID:        60,
		MessageContent: "This is unacceptable, nothing works",
	})
	require.NoError(t, err)

	assert.Equal(t, "escalation", result.TemplateCategory)
	assert.Equal(t, "urgent, professional, apologetic", result.RecommendedTemplate.Tone)
	assert.Contains(t, result.CustomizationSuggestions, "Include specific timeline commitments")
}

func TestGenerateTemplateUseCase_Execute_ResolutionCategory(t *testing.T) {
	iss := guidanceIssue(t, 60, issuevo.SeverityNormal, issuevo.StatusResolved)
	now := time.Now().UTC()
	comments := []*issue.Comment{
		guidanceComment(t, 1, "customer", now.Add(-time.Hour)),
		guidanceComment(t, 2, "support", now),
	}
	gen := splitGenerator(
		`{"intent":"appreciation","urgency":"low","sentiment":"positive","topics":[],"requests":[]}`,
		"Glad we could help, {{customer_name}}!",
		nil, nil,
	)
	uc := newGenerateFixture(t, iss, comments, gen, nil)

	result, err := uc.Execute(context.Background(), GenerateTemplateCommand{
		IssueID:        60,
		MessageContent: "Thanks, everything works now",
	})
	require.NoError(t, err)

	assert.Equal(t, "resolution", result.TemplateCategory)
}

func TestGenerateTemplateUseCase_Execute_FallbackOnGeneratorFailure(t *testing.T) {
	iss := guidanceIssue(t, 60, issuevo.SeverityNormal, issuevo.StatusOpen)
	gen := &mockGenerator{
		GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
			return "", assert.AnError
		},
	}
	uc := newGenerateFixture(t, iss, nil, gen, nil)

	result, err := uc.Execute(context.Background(), GenerateTemplateCommand{
		IssueID:        60,
		MessageContent: "Why do my uploads keep failing?",
	})
	require.NoError(t, err)

	// Intent collapses to the neutral default, the template to the
	// canned initial response.
	assert.Equal(t, "question", result.MessageIntent.Intent)
	assert.Equal(t, "medium", result.MessageIntent.Urgency)
	assert.Equal(t, "initial_response", result.TemplateCategory)

	tmpl := result.RecommendedTemplate
	assert.Contains(t, tmpl.Content, "ticket number #{{issue_id}}")
	assert.Equal(t,
		[]string{"customer_name", "issue_title", "issue_id", "severity", "response_time", "support_agent"},
		tmpl.Variables,
	)
	assert.Equal(t, "API returns 500 on upload", tmpl.SuggestedValues["issue_title"])
	assert.Equal(t, "60", tmpl.SuggestedValues["issue_id"])
	assert.Equal(t, "24", tmpl.SuggestedValues["response_time"])
}

func TestGenerateTemplateUseCase_Execute_FencedIntentJSON(t *testing.T) {
	iss := guidanceIssue(t, 60, issuevo.SeverityNormal, issuevo.StatusOpen)
	gen := splitGenerator(
		"```json\n{\"intent\":\"request\",\"urgency\":\"low\",\"sentiment\":\"neutral\",\"topics\":[],\"requests\":[]}\n```",
		"On it, {{customer_name}}.",
		nil, nil,
	)
	uc := newGenerateFixture(t, iss, nil, gen, nil)

	result, err := uc.Execute(context.Background(), GenerateTemplateCommand{
		IssueID:        60,
		MessageContent: "Could you enable the beta flag for us?",
	})
	require.NoError(t, err)
	assert.Equal(t, "request", result.MessageIntent.Intent)
}

func TestGenerateTemplateUseCase_Execute_Alternatives(t *testing.T) {
	iss := guidanceIssue(t, 60, issuevo.SeverityHigh, issuevo.StatusOpen)
	sev := issuevo.SeverityHigh
	stored, err := guidance.ReconstructResponseTemplate(
		12, "outage-ack", vo.CategoryInitialResponse, &sev,
		"We are aware of the issue, {{customer_name}}.", []string{"customer_name"},
		40, 0.85, true, time.Now().UTC(), time.Now().UTC(),
	)
	require.NoError(t, err)

	var gotLimit int
	templateRepo := &mockTemplateRepository{
		ListActiveFunc: func(ctx context.Context, category vo.TemplateCategory, severity *issuevo.Severity, limit int) ([]*guidance.ResponseTemplate, error) {
			gotLimit = limit
			assert.Equal(t, vo.CategoryInitialResponse, category)
			require.NotNil(t, severity)
			assert.Equal(t, issuevo.SeverityHigh, *severity)
			return []*guidance.ResponseTemplate{stored}, nil
		},
	}
	gen := splitGenerator(
		`{"intent":"question","urgency":"high","sentiment":"neutral","topics":[],"requests":[]}`,
		"Hi {{customer_name}}.",
		nil, nil,
	)
	uc := newGenerateFixture(t, iss, nil, gen, templateRepo)

	result, err := uc.Execute(context.Background(), GenerateTemplateCommand{
		IssueID:        60,
		MessageContent: "Is the API down?",
	})
	require.NoError(t, err)

	assert.Equal(t, alternativeLimit, gotLimit)
	require.Len(t, result.Alternatives, 1)
	assert.Equal(t, uint(12), result.Alternatives[0].TemplateID)
	assert.Equal(t, 0.85, result.Alternatives[0].EffectivenessScore)
}

func TestGenerateTemplateUseCase_Execute_AlternativesFailureIsNonFatal(t *testing.T) {
	iss := guidanceIssue(t, 60, issuevo.SeverityHigh, issuevo.StatusOpen)
	templateRepo := &mockTemplateRepository{
		ListActiveFunc: func(ctx context.Context, category vo.TemplateCategory, severity *issuevo.Severity, limit int) ([]*guidance.ResponseTemplate, error) {
			return nil, assert.AnError
		},
	}
	gen := splitGenerator(
		`{"intent":"question","urgency":"high","sentiment":"neutral","topics":[],"requests":[]}`,
		"Hi {{customer_name}}.",
		nil, nil,
	)
	uc := newGenerateFixture(t, iss, nil, gen, templateRepo)

	result, err := uc.Execute(context.Background(), GenerateTemplateCommand{
		IssueID:        60,
		MessageContent: "Is the API down?",
	})
	require.NoError(t, err)
	assert.Empty(t, result.Alternatives)
}

func TestGenerateTemplateUseCase_Execute_ValidationErrors(t *testing.T) {
	uc := newGenerateFixture(t, nil, nil, &mockGenerator{}, nil)

	_, err := uc.Execute(context.Background(), GenerateTemplateCommand{MessageContent: "hi"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), GenerateTemplateCommand{IssueID: 60})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
}
