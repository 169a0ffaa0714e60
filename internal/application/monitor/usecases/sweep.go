package usecases

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/aegis-support/aegis/internal/domain/alert"
	alertvo "github.com/aegis-support/aegis/internal/domain/alert/valueobjects"
	"github.com/aegis-support/aegis/internal/domain/issue"
	issuevo "github.com/aegis-support/aegis/internal/domain/issue/valueobjects"
	"github.com/aegis-support/aegis/internal/infrastructure/metrics"
	sharedConfig "github.com/aegis-support/aegis/internal/shared/config"
	"github.com/aegis-support/aegis/internal/shared/logger"
)

const lockStripes = 64

// alertCandidate is one (issue, type) pair the current sweep believes
// should have an active alert.
type alertCandidate struct {
	issueID   uint
	alertType alertvo.AlertType
	severity  issuevo.Severity
	message   string
}

// SweepUseCase is the critical issue monitor. Each Execute evaluates
// every non-terminal issue against the alert predicates, raises alerts
// for conditions without one, and resolves alerts whose condition has
// cleared. Sweeps are idempotent: a condition that already has a
// non-resolved alert raises nothing new.
//
// Dedup is enforced twice. A striped mutex per (issue, type) key
// serializes raisers inside this process; the repository's conditional
// insert holds the invariant across processes.
type SweepUseCase struct {
	issueRepo issue.Repository
	alertRepo alert.Repository
	cfg       sharedConfig.MonitorConfig
	logger    logger.Interface

	locks [lockStripes]sync.Mutex

	// now is replaceable for deterministic tests.
	now func() time.Time
}

func NewSweepUseCase(
	issueRepo issue.Repository,
	alertRepo alert.Repository,
	cfg sharedConfig.MonitorConfig,
	logger logger.Interface,
) *SweepUseCase {
	return &SweepUseCase{
		issueRepo: issueRepo,
		alertRepo: alertRepo,
		cfg:       cfg,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Execute runs one sweep and returns the number of alerts it created.
// Implements the batch job contract used by the scheduler.
func (uc *SweepUseCase) Execute(ctx context.Context) (int, error) {
	now := uc.now()

	candidates, err := uc.collectCandidates(ctx, now)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, cand := range candidates {
		ok, err := uc.raise(ctx, cand)
		if err != nil {
			// One failed alert must not abort the sweep; the next run
			// retries the condition.
			uc.logger.Errorw("failed to raise alert",
				"issue_id", cand.issueID, "alert_type", cand.alertType.String(), "error", err)
			continue
		}
		if ok {
			created++
			metrics.ObserveSweepAlert(cand.alertType.String())
		}
	}

	resolved, err := uc.resolveCleared(ctx, candidates)
	if err != nil {
		uc.logger.Errorw("failed to resolve cleared alerts", "error", err)
	}

	uc.logger.Infow("sweep completed", "created", created, "resolved", resolved, "candidates", len(candidates))
	return created, nil
}

// collectCandidates evaluates all predicates at one instant so a sweep
// sees a consistent view of which conditions hold.
func (uc *SweepUseCase) collectCandidates(ctx context.Context, now time.Time) ([]alertCandidate, error) {
	active, err := uc.issueRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list active issues", "error", err)
		return nil, err
	}

	breach := time.Duration(uc.cfg.BreachThresholdHours) * time.Hour
	var candidates []alertCandidate

	for _, iss := range active {
		if iss.Status() == issuevo.StatusOpen || iss.Status() == issuevo.StatusInProgress {
			if age := iss.AgeAt(now); age > breach {
				candidates = append(candidates, alertCandidate{
					issueID:   iss.ID(),
					alertType: alertvo.TypeUnattended,
					severity:  iss.Severity(),
					message: fmt.Sprintf("Issue #%d has been unattended for %d hours",
						iss.ID(), int(age.Hours())),
				})
			}
		}

		sla := time.Duration(iss.Severity().SLAHours()) * time.Hour
		if open := now.Sub(iss.CreatedAt()); open > sla {
			candidates = append(candidates, alertCandidate{
				issueID:   iss.ID(),
				alertType: alertvo.TypeSLABreach,
				severity:  iss.Severity(),
				message: fmt.Sprintf("Issue #%d exceeded its %d hour SLA for %s severity",
					iss.ID(), iss.Severity().SLAHours(), iss.Severity().String()),
			})
		}

		if iss.Status().IsEscalated() {
			candidates = append(candidates, alertCandidate{
				issueID:   iss.ID(),
				alertType: alertvo.TypeEscalation,
				severity:  iss.Severity(),
				message:   fmt.Sprintf("Issue #%d is in escalated status", iss.ID()),
			})
		}
	}

	since := now.AddDate(0, 0, -uc.cfg.EscalationWindowDays)
	escalations, err := uc.issueRepo.CustomersInEscalation(ctx, since, uc.cfg.EscalationMinIssues)
	if err != nil {
		uc.logger.Errorw("failed to query customer escalations", "error", err)
		return nil, err
	}
	for _, esc := range escalations {
		candidates = append(candidates, alertCandidate{
			issueID:   esc.NewestIssueID,
			alertType: alertvo.TypeCustomerEscalation,
			severity:  issuevo.SeverityHigh,
			message: fmt.Sprintf("Customer #%d has %d high-severity issues in the last %d days",
				esc.CustomerID, esc.IssueCount, uc.cfg.EscalationWindowDays),
		})
	}

	return candidates, nil
}

func (uc *SweepUseCase) raise(ctx context.Context, cand alertCandidate) (bool, error) {
	mu := uc.lockFor(cand.issueID, cand.alertType)
	mu.Lock()
	defer mu.Unlock()

	newAlert, err := alert.NewAlert(cand.issueID, cand.alertType, cand.severity, cand.message)
	if err != nil {
		return false, err
	}
	return uc.alertRepo.CreateIfNoActive(ctx, newAlert)
}

// resolveCleared resolves every non-resolved alert whose (issue, type)
// condition no longer holds. Acknowledged alerts clear the same way.
func (uc *SweepUseCase) resolveCleared(ctx context.Context, candidates []alertCandidate) (int, error) {
	firing := make(map[string]bool, len(candidates))
	for _, cand := range candidates {
		firing[alertKey(cand.issueID, cand.alertType)] = true
	}

	open, err := uc.alertRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	resolved := 0
	for _, a := range open {
		if firing[alertKey(a.IssueID(), a.Type())] {
			continue
		}
		if !a.Resolve() {
			continue
		}
		if err := uc.alertRepo.Update(ctx, a); err != nil {
			uc.logger.Errorw("failed to persist alert resolution", "alert_id", a.ID(), "error", err)
			continue
		}
		resolved++
	}
	return resolved, nil
}

func (uc *SweepUseCase) lockFor(issueID uint, alertType alertvo.AlertType) *sync.Mutex {
	h := fnv.New32a()
	fmt.Fprintf(h, "%d:%s", issueID, alertType)
	return &uc.locks[h.Sum32()%lockStripes]
}

func alertKey(issueID uint, alertType alertvo.AlertType) string {
	return fmt.Sprintf("%d:%s", issueID, alertType)
}
