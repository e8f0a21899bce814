package domain

import "fmt"

type ReportStatus string

const (
	ReportPending  ReportStatus = "pending"
	ReportApproved ReportStatus = "approved"
	ReportRejected ReportStatus = "rejected"
)

func ParseReportStatus(s string) (ReportStatus, error) {
	switch st := ReportStatus(s); st {
	case ReportPending, ReportApproved, ReportRejected:
		return st, nil
	}
	return "", fmt.Errorf("%w: report status %q", ErrCorruptValue, s)
}

type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
	ActionRevoke  ReviewAction = "revoke"
	ActionRestore ReviewAction = "restore"
	ActionDelete  ReviewAction = "delete"
)

// ParseReviewAction accepts "pending" as an alias of restore.
func ParseReviewAction(s string) (ReviewAction, error) {
	switch a := ReviewAction(s); a {
	case ActionApprove, ActionReject, ActionRevoke, ActionRestore, ActionDelete:
		return a, nil
	case "pending":
		return ActionRestore, nil
	}
	return "", fmt.Errorf("%w: unknown review action %q", ErrValidation, s)
}

// NextStatus is the report review state machine. Delete is only allowed from
// rejected; the returned status is the one the row had when it was removed.
func NextStatus(from ReportStatus, action ReviewAction) (ReportStatus, error) {
	switch action {
	case ActionApprove:
		if from == ReportPending {
			return ReportApproved, nil
		}
	case ActionReject:
		if from == ReportPending {
			return ReportRejected, nil
		}
	case ActionRevoke:
		if from == ReportApproved {
			return ReportRejected, nil
		}
	case ActionRestore:
		if from == ReportRejected {
			return ReportPending, nil
		}
	case ActionDelete:
		if from == ReportRejected {
			return ReportRejected, nil
		}
	default:
		return "", fmt.Errorf("%w: unknown review action %q", ErrValidation, action)
	}
	return "", fmt.Errorf("%w: can't %s a %s report", ErrInvalidTransition, action, from)
}

type LedgerReason string

const (
	ReasonDonate LedgerReason = "donate"
	ReasonReport LedgerReason = "report"
	ReasonSignin LedgerReason = "signin"
	ReasonQuest  LedgerReason = "quest"
	ReasonRedeem LedgerReason = "redeem"
	ReasonAdjust LedgerReason = "adjust"
)

func ParseLedgerReason(s string) (LedgerReason, error) {
	switch r := LedgerReason(s); r {
	case ReasonDonate, ReasonReport, ReasonSignin, ReasonQuest, ReasonRedeem, ReasonAdjust:
		return r, nil
	}
	return "", fmt.Errorf("%w: ledger reason %q", ErrCorruptValue, s)
}

// Ledger reference types pointing back to the row that caused an entry.
const (
	RefDonation   = "donation"
	RefSignin     = "daily"
	RefQuest      = "quest"
	RefRedemption = "redemption"
	RefUser       = "user"
)

type QuestCode string

const (
	QuestView5   QuestCode = "view_5"
	QuestShare1  QuestCode = "share_1"
	QuestReport1 QuestCode = "report_1"
)

func ParseQuestCode(s string) (QuestCode, error) {
	switch c := QuestCode(s); c {
	case QuestView5, QuestShare1, QuestReport1:
		return c, nil
	}
	return "", fmt.Errorf("%w: quest %q", ErrNotFound, s)
}

// Counter is the tracked action a quest reads its progress from.
func (c QuestCode) Counter() CounterKind {
	switch c {
	case QuestView5:
		return CounterViews
	case QuestShare1:
		return CounterShares
	case QuestReport1:
		return CounterReports
	}
	return ""
}

type CounterKind string

const (
	CounterViews   CounterKind = "views"
	CounterShares  CounterKind = "shares"
	CounterReports CounterKind = "reports"
)

type ItemKind string

const (
	ItemVirtual  ItemKind = "virtual"
	ItemPhysical ItemKind = "physical"
)

func ParseItemKind(s string) (ItemKind, error) {
	switch k := ItemKind(s); k {
	case ItemVirtual, ItemPhysical:
		return k, nil
	}
	return "", fmt.Errorf("%w: item kind %q", ErrCorruptValue, s)
}

type ItemStatus string

const (
	ItemActive   ItemStatus = "active"
	ItemInactive ItemStatus = "inactive"
)

func ParseItemStatus(s string) (ItemStatus, error) {
	switch st := ItemStatus(s); st {
	case ItemActive, ItemInactive:
		return st, nil
	}
	return "", fmt.Errorf("%w: item status %q", ErrCorruptValue, s)
}

type RedemptionStatus string

const (
	RedemptionPending   RedemptionStatus = "pending"
	RedemptionFulfilled RedemptionStatus = "fulfilled"
	RedemptionCancelled RedemptionStatus = "cancelled"
)

func ParseRedemptionStatus(s string) (RedemptionStatus, error) {
	switch st := RedemptionStatus(s); st {
	case RedemptionPending, RedemptionFulfilled, RedemptionCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: redemption status %q", ErrCorruptValue, s)
}
