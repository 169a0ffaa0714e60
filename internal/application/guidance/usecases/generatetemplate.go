package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/aegis-support/aegis/internal/domain/customer"
	"github.com/aegis-support/aegis/internal/domain/guidance"
	vo "github.com/aegis-support/aegis/internal/domain/guidance/valueobjects"
	"github.com/aegis-support/aegis/internal/domain/issue"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
	"github.com/aegis-support/aegis/internal/shared/errors"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

const alternativeLimit = 3

type GenerateTemplateCommand struct {
	IssueID        uint
	MessageContent string
	Context        string
}

// MessageIntent is what the generator inferred about the customer's
// message. On generation failure the fields fall back to neutral
// defaults, never to empty strings.
type MessageIntent struct {
	Intent    string   `json:"intent"`
	Urgency   string   `json:"urgency"`
	Sentiment string   `json:"sentiment"`
	Topics    []string `json:"topics"`
	Requests  []string `json:"requests"`
}

type RecommendedTemplate struct {
	Content         string            `json:"content"`
	Variables       []string          `json:"variables"`
	SuggestedValues map[string]string `json:"suggested_values"`
	Category        string            `json:"category"`
	Tone            string            `json:"tone"`
}

type AlternativeTemplate struct {
	TemplateID         uint    `json:"template_id"`
	Name               string  `json:"name"`
	Content            string  `json:"content"`
	EffectivenessScore float64 `json:"effectiveness_score"`
}

type GenerateTemplateResult struct {
	IssueID                  uint                  `json:"issue_id"`
	TemplateCategory         string                `json:"template_category"`
	RecommendedTemplate      RecommendedTemplate   `json:"recommended_template"`
	Alternatives             []AlternativeTemplate `json:"alternatives"`
	ConfidenceScore          float64               `json:"confidence_score"`
	MessageIntent            MessageIntent         `json:"message_intent"`
	CustomizationSuggestions []string              `json:"customization_suggestions"`
}

// GenerateTemplateUseCase recommends a reply template for an incoming
// customer message. The text generator personalizes the draft; when it
// fails or times out a deterministic fallback template is served, so
// the operation degrades instead of erroring.
type GenerateTemplateUseCase struct {
	issueRepo    issue.Repository
	commentRepo  issue.CommentRepository
	customerRepo customer.Repository
	templateRepo guidance.TemplateRepository
	generator    guidance.TextGenerator
	logger       logger.Interface
}

func NewGenerateTemplateUseCase(
	issueRepo issue.Repository,
	commentRepo issue.CommentRepository,
	customerRepo customer.Repository,
	templateRepo guidance.TemplateRepository,
	generator guidance.TextGenerator,
	logger logger.Interface,
) *GenerateTemplateUseCase {
	return &GenerateTemplateUseCase{
		issueRepo:    issueRepo,
		commentRepo:  commentRepo,
		customerRepo: customerRepo,
		templateRepo: templateRepo,
		generator:    generator,
		logger:       logger,
	}
}

func (uc *GenerateTemplateUseCase) Execute(ctx context.Context, cmd GenerateTemplateCommand) (*GenerateTemplateResult, error) {
	uc.logger.Infow("executing generate template use case", "issue_id", cmd.IssueID)

	if cmd.IssueID == 0 {
		return nil, errors.NewValidationError("issue ID is required")
	}
	if len(cmd.MessageContent) == 0 {
		return nil, errors.NewValidationError("message content is required")
	}

	iss, err := uc.issueRepo.GetByID(ctx, cmd.IssueID)
	if err != nil {
		return nil, err
	}
	cust, err := uc.customerRepo.GetByID(ctx, iss.CustomerID())
	if err != nil {
		return nil, err
	}
	comments, err := uc.commentRepo.ListByIssueID(ctx, cmd.IssueID)
	if err != nil {
		uc.logger.Errorw("failed to load conversation", "issue_id", cmd.IssueID, "error", err)
		return nil, err
	}

	intent := uc.analyzeIntent(ctx, cmd.MessageContent)
	category := determineCategory(intent, iss.Status(), len(comments))

	template := uc.generateTemplate(ctx, iss, cust, cmd.MessageContent, category, cmd.Context)

	alternatives, err := uc.loadAlternatives(ctx, category, iss.Severity())
	if err != nil {
		// Alternatives are optional context; serve the recommendation
		// without them.
		uc.logger.Warnw("failed to load alternative templates", "category", category.String(), "error", err)
		alternatives = []AlternativeTemplate{}
	}

	return &GenerateTemplateResult{
		IssueID:                  cmd.IssueID,
		TemplateCategory:         category.String(),
		RecommendedTemplate:      template,
		Alternatives:             alternatives,
		ConfidenceScore:          templateConfidence(template, iss.Severity(), intent),
		MessageIntent:            intent,
		CustomizationSuggestions: customizationSuggestions(iss.Severity(), iss.Category()),
	}, nil
}

// analyzeIntent asks the generator to classify the message. Any failure
// or unparseable reply collapses to a neutral default intent.
func (uc *GenerateTemplateUseCase) analyzeIntent(ctx context.Context, message string) MessageIntent {
	fallback := MessageIntent{
		Intent:    "question",
		Urgency:   "medium",
		Sentiment: "neutral",
		Topics:    []string{},
		Requests:  []string{},
	}

	prompt := fmt.Sprintf(`Analyze this customer support message and identify:
1. Primary intent (question, complaint, request, escalation, appreciation)
2. Urgency level (low, medium, high, critical)
3. Sentiment (positive, neutral, negative, frustrated, angry)
4. Key topics mentioned
5. Specific requests or questions

Message: %q

Respond with only a JSON object with keys: intent, urgency, sentiment, topics, requests.`, message)

	reply, err := uc.generator.Generate(ctx, prompt)
	if err != nil {
		uc.logger.Warnw("intent analysis failed, using fallback", "error", err)
		return fallback
	}

	var intent MessageIntent
	if err := json.Unmarshal([]byte(extractJSON(reply)), &intent); err != nil {
		uc.logger.Warnw("intent analysis returned unparseable reply, using fallback", "error", err)
		return fallback
	}
	if intent.Intent == "" {
		return fallback
	}
	if intent.Topics == nil {
		intent.Topics = []string{}
	}
	if intent.Requests == nil {
		intent.Requests = []string{}
	}
	return intent
}

// determineCategory picks the template category from conversational
// context. The first reply on an issue is always an initial response.
func determineCategory(intent MessageIntent, status issuevo.IssueStatus, commentCount int) vo.TemplateCategory {
	if commentCount <= 1 {
		return vo.CategoryInitialResponse
	}

	if intent.Intent == "escalation" || intent.Intent == "complaint" || intent.Urgency == "critical" {
		return vo.CategoryEscalation
	}
	if status == issuevo.StatusResolved {
		return vo.CategoryResolution
	}
	if intent.Intent == "question" {
		for _, req := range intent.Requests {
			if strings.Contains(strings.ToLower(req), "clarification") {
				return vo.CategoryClarification
			}
		}
	}
	return vo.CategoryStatusUpdate
}

func (uc *GenerateTemplateUseCase) generateTemplate(
	ctx context.Context,
	iss *issue.Issue,
	cust *customer.Customer,
	message string,
	category vo.TemplateCategory,
	extra string,
) RecommendedTemplate {
	prompt := fmt.Sprintf(`Generate a professional support response template for:

Customer: %s
Company: %s
Tier: %s

Issue Details:
- Title: %s
- Severity: %s
- Category: %s
- Status: %s

Customer Message: %q

Template Category: %s
Required Tone: %s

Additional Context: %s

Generate a response that:
1. Addresses the customer's specific message
2. Maintains the required tone
3. Uses placeholders {{variable_name}} for customizable parts
4. Is concise but comprehensive

Respond with only the template text.`,
		cust.Name(), cust.Company(), cust.Tier().String(),
		iss.Title(), iss.Severity().String(), iss.Category().String(), iss.Status().String(),
		message, category.String(), category.Tone(), extra)

	content, err := uc.generator.Generate(ctx, prompt)
	if err != nil {
		uc.logger.Warnw("template generation failed, serving fallback",
			"issue_id", iss.ID(), "category", category.String(), "error", err)
		return fallbackTemplate(category, iss, cust)
	}

	variables := extractVariables(content)
	return RecommendedTemplate{
		Content:         content,
		Variables:       variables,
		SuggestedValues: suggestValues(variables, iss, cust),
		Category:        category.String(),
		Tone:            category.Tone(),
	}
}

func (uc *GenerateTemplateUseCase) loadAlternatives(ctx context.Context, category vo.TemplateCategory, severity issuevo.Severity) ([]AlternativeTemplate, error) {
	templates, err := uc.templateRepo.ListActive(ctx, category, &severity, alternativeLimit)
	if err != nil {
		return nil, err
	}

	alternatives := make([]AlternativeTemplate, 0, len(templates))
	for _, t := range templates {
		alternatives = append(alternatives, AlternativeTemplate{
			TemplateID:         t.ID(),
			Name:               t.Name(),
			Content:            t.Content(),
			EffectivenessScore: t.EffectivenessScore(),
		})
	}
	return alternatives, nil
}

var variablePattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

func extractVariables(content string) []string {
	seen := make(map[string]bool)
	variables := []string{}
	for _, m := range variablePattern.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			variables = append(variables, m[1])
		}
	}
	return variables
}

// responseTimeHours is the committed first-response window per severity,
// offered as a suggested value for {{response_time}}.
func responseTimeHours(severity issuevo.Severity) string {
	switch severity {
	case issuevo.SeverityCritical:
		return "1"
	case issuevo.SeverityHigh:
		return "4"
	case issuevo.SeverityNormal:
		return "24"
	default:
		return "48"
	}
}

func suggestValues(variables []string, iss *issue.Issue, cust *customer.Customer) map[string]string {
	suggestions := make(map[string]string, len(variables))
	for _, v := range variables {
		switch v {
		case "customer_name":
			suggestions[v] = cust.Name()
		case "company":
			suggestions[v] = cust.Company()
		case "issue_id":
			suggestions[v] = fmt.Sprintf("%d", iss.ID())
		case "issue_title":
			suggestions[v] = iss.Title()
		case "severity":
			suggestions[v] = iss.Severity().String()
		case "current_status":
			suggestions[v] = iss.Status().String()
		case "response_time", "estimated_time":
			suggestions[v] = responseTimeHours(iss.Severity())
		case "support_agent":
			suggestions[v] = "[Your Name]"
		default:
			suggestions[v] = fmt.Sprintf("[%s]", titleWords(v))
		}
	}
	return suggestions
}

func fallbackTemplate(category vo.TemplateCategory, iss *issue.Issue, cust *customer.Customer) RecommendedTemplate {
	var content string
	switch category {
	case vo.CategoryStatusUpdate:
		content = `Hello {{customer_name}},

I wanted to provide you with an update on your support ticket #{{issue_id}}.

Current Status: {{current_status}}

We have made progress on your issue and our team is continuing to work on a resolution. We expect to have this resolved within {{estimated_time}} hours.

Thank you for your patience as we work to resolve this matter.

Best regards,
{{support_agent}}`
	default:
		content = `Dear {{customer_name}},

Thank you for contacting our support team regarding "{{issue_title}}". We have received your request and assigned it ticket number #{{issue_id}}.

We understand the importance of resolving this {{severity}} priority issue promptly. Our team is currently investigating and we will provide you with an update within {{response_time}} hours.

If you have any additional information that might help us resolve this issue faster, please don't hesitate to share it.

Best regards,
{{support_agent}}
Support Team`
	}

	variables := extractVariables(content)
	return RecommendedTemplate{
		Content:         content,
		Variables:       variables,
		SuggestedValues: suggestValues(variables, iss, cust),
		Category:        category.String(),
		Tone:            category.Tone(),
	}
}

// templateConfidence scores how well the recommendation is expected to
// fit: clearer intents and severities with firm playbooks score higher.
func templateConfidence(template RecommendedTemplate, severity issuevo.Severity, intent MessageIntent) float64 {
	confidence := 0.7

	if severity.IsHighOrAbove() {
		confidence += 0.1
	}

	intentFactor := map[string]float64{
		"question":     0.9,
		"complaint":    0.8,
		"request":      0.85,
		"escalation":   0.75,
		"appreciation": 0.95,
	}
	factor, ok := intentFactor[intent.Intent]
	if !ok {
		factor = 0.8
	}
	confidence *= factor

	if len(template.Variables) > 0 {
		confidence += 0.05
	}

	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

func customizationSuggestions(severity issuevo.Severity, category issuevo.Category) []string {
	suggestions := []string{}

	switch severity {
	case issuevo.SeverityCritical:
		suggestions = append(suggestions,
			"Consider adding executive contact information for escalation",
			"Include specific timeline commitments",
		)
	case issuevo.SeverityHigh:
		suggestions = append(suggestions, "Emphasize urgency and priority handling")
	}

	switch category {
	case issuevo.CategoryTechnical:
		suggestions = append(suggestions,
			"Include technical details if available",
			"Mention specific troubleshooting steps taken",
		)
	case issuevo.CategoryBilling:
		suggestions = append(suggestions,
			"Reference specific billing periods or amounts",
			"Include account manager contact if applicable",
		)
	}

	suggestions = append(suggestions,
		"Personalize greeting based on customer relationship",
		"Add specific next steps with clear timelines",
	)
	return suggestions
}

// titleWords turns a snake_case variable name into a readable label,
// e.g. "account_manager" becomes "Account Manager".
func titleWords(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// extractJSON trims markdown fences the generator sometimes wraps
// around JSON replies.
func extractJSON(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}
	return trimmed
}
