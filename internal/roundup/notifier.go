package roundup

import (
	"fmt"
	"strings"

	"roundly/internal/domain"
	"roundly/internal/models"
)

// Notifier writes the human-readable summary rows after a mapping pass.
// Insert-only; the read flag is mutated elsewhere by the dashboard.
type Notifier struct {
	store NotificationStore
}

func NewNotifier(store NotificationStore) *Notifier {
	return &Notifier{store: store}
}

// SyncComplete writes the batch summary, and when at least one ticker
// received an allocation, a second row itemizing the tickers and the total
// dollar amount still pending stock purchase.
func (n *Notifier) SyncComplete(userID uint, res *Result) error {
	summary := &models.Notification{
		UserID:    userID,
		Type:      domain.NotificationTypeSync,
		Title:     "Sync complete",
		Message:   fmt.Sprintf("Processed %d transactions: %d mapped, %d could not be matched.", res.Matched+res.Failed, res.Matched, res.Failed),
		Reference: res.Reference,
	}
	if err := n.store.Create(summary); err != nil {
		return err
	}
	if len(res.Allocated) == 0 {
		return nil
	}
	tickers := strings.Join(sortedKeys(res.Allocated), ", ")
	allocation := &models.Notification{
		UserID:    userID,
		Type:      domain.NotificationTypeInvestment,
		Title:     "Round-ups allocated",
		Message:   fmt.Sprintf("$%.2f allocated to %s, pending stock purchase.", res.Total, tickers),
		Reference: res.Reference,
	}
	return n.store.Create(allocation)
}

// MemberInvited notifies a user they were added to a family or business.
func (n *Notifier) MemberInvited(userID uint, groupName string) error {
	return n.store.Create(&models.Notification{
		UserID:  userID,
		Type:    domain.NotificationTypeMember,
		Title:   "Added to " + groupName,
		Message: fmt.Sprintf("You are now a member of %s. Your transactions count toward its dashboard.", groupName),
	})
}

// GoalCreated confirms a new savings goal.
func (n *Notifier) GoalCreated(userID uint, goalName string, target float64) error {
	return n.store.Create(&models.Notification{
		UserID:  userID,
		Type:    domain.NotificationTypeGoal,
		Title:   "Goal created",
		Message: fmt.Sprintf("Goal %q created with a target of $%.2f.", goalName, target),
	})
}
