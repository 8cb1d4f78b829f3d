// Package workflow implements the submission moderation state machine.
// It is the single source of truth for which actions are allowed from which
// status; handlers re-check it before touching the database and the SPA
// derives its action buttons from the same table via the actions endpoint.
package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/launchhub/portal_end/models"
)

// Action is a transition request against a submission.
type Action string

const (
	ActionSubmit         Action = "submit"
	ActionApprove        Action = "approve"
	ActionFeature        Action = "feature"
	ActionUnfeature      Action = "unfeature"
	ActionReject         Action = "reject"
	ActionRequestChanges Action = "request_changes"
	ActionDelete         Action = "delete"
)

var (
	// ErrStateConflict means the action is not allowed from the current
	// status. The current status must be left untouched.
	ErrStateConflict = errors.New("action not allowed from current status")
	// ErrEmptyNote means a reject or request-changes decision was issued
	// without a reason/message.
	ErrEmptyNote = errors.New("a non-empty note is required for this action")
	// ErrForbidden means the actor's role may never perform the action.
	ErrForbidden = errors.New("role may not perform this action")
	// ErrUnknownAction means the action name is not part of the table.
	ErrUnknownAction = errors.New("unknown action")
)

// approveFrom is shared by approve and feature.
var approveFrom = []models.SubmissionStatus{
	models.StatusSUBMITTED,
	models.StatusCHANGES_REQUESTED,
	models.StatusPENDING,
	models.StatusREJECTED,
}

// allowedFrom is the transition table: which statuses each action may be
// invoked from. Delete is handled separately because its from-set depends
// on the actor's role.
var allowedFrom = map[Action][]models.SubmissionStatus{
	ActionSubmit:    {models.StatusPENDING, models.StatusCHANGES_REQUESTED},
	ActionApprove:   approveFrom,
	ActionFeature:   approveFrom,
	ActionUnfeature: {models.StatusFEATURED},
	ActionReject: {
		models.StatusSUBMITTED,
		models.StatusPENDING,
		models.StatusCHANGES_REQUESTED,
	},
	ActionRequestChanges: {models.StatusSUBMITTED, models.StatusPENDING},
}

// moderatorActions are the actions reserved for moderator/admin roles.
var moderatorActions = map[Action]bool{
	ActionApprove:        true,
	ActionFeature:        true,
	ActionUnfeature:      true,
	ActionReject:         true,
	ActionRequestChanges: true,
}

// ParseAction maps a URL/action name onto an Action.
func ParseAction(name string) (Action, error) {
	switch Action(strings.ToLower(name)) {
	case ActionSubmit, ActionApprove, ActionFeature, ActionUnfeature,
		ActionReject, ActionRequestChanges, ActionDelete:
		return Action(strings.ToLower(name)), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// Eligible reports whether action may be invoked from status, ignoring the
// actor's role. Delete is never answered here; use CanDelete.
func Eligible(status models.SubmissionStatus, action Action) bool {
	for _, from := range allowedFrom[action] {
		if from == status {
			return true
		}
	}
	return false
}

// CanDelete reports whether the role may delete a submission in the given
// status. Owners may not delete published work; moderators may delete
// anything.
func CanDelete(status models.SubmissionStatus, role models.UserRole) bool {
	if role.IsModerator() {
		return true
	}
	return status != models.StatusAPPROVED && status != models.StatusFEATURED
}

// NeedsNote reports whether the action requires moderator input.
func NeedsNote(action Action) bool {
	return action == ActionReject || action == ActionRequestChanges
}

// EligibleActions computes the action set to offer for a submission in the
// given status, viewed with the given role. Owners see submit/delete;
// moderators see the moderation set plus delete. The result must be
// re-derived from status on every request, never cached.
func EligibleActions(status models.SubmissionStatus, role models.UserRole) []Action {
	var actions []Action

	if role.IsModerator() {
		for _, a := range []Action{ActionApprove, ActionFeature, ActionUnfeature,
			ActionReject, ActionRequestChanges} {
			if Eligible(status, a) {
				actions = append(actions, a)
			}
		}
	} else {
		if Eligible(status, ActionSubmit) {
			actions = append(actions, ActionSubmit)
		}
	}

	if CanDelete(status, role) {
		actions = append(actions, ActionDelete)
	}
	return actions
}

// Outcome is the lifecycle patch produced by a successful transition.
type Outcome struct {
	Status         models.SubmissionStatus
	SetSubmittedAt bool
	SetFeaturedAt  bool
	// ModNotes, when non-nil, overwrites the stored moderation notes.
	ModNotes *string
}

// Apply validates a transition request and returns the resulting patch.
// It never mutates anything itself; callers persist the outcome with a
// conditional update filtered on the same from-set, so a concurrent
// transition surfaces as a state conflict rather than a lost update.
func Apply(current models.SubmissionStatus, role models.UserRole, action Action, note string) (Outcome, error) {
	if action == ActionDelete {
		if !CanDelete(current, role) {
			return Outcome{}, fmt.Errorf("%w: delete from %s", ErrStateConflict, current)
		}
		return Outcome{Status: current}, nil
	}

	if _, ok := allowedFrom[action]; !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	// Submit stays an owner action; the ownership check lives in the handler.
	if moderatorActions[action] && !role.IsModerator() {
		return Outcome{}, fmt.Errorf("%w: %s requires a moderator", ErrForbidden, action)
	}

	note = strings.TrimSpace(note)
	if NeedsNote(action) && note == "" {
		return Outcome{}, fmt.Errorf("%w: %s", ErrEmptyNote, action)
	}

	if !Eligible(current, action) {
		return Outcome{}, fmt.Errorf("%w: %s from %s", ErrStateConflict, action, current)
	}

	switch action {
	case ActionSubmit:
		return Outcome{Status: models.StatusSUBMITTED, SetSubmittedAt: true}, nil
	case ActionApprove:
		// Previously written notes stay readable after re-approval.
		return Outcome{Status: models.StatusAPPROVED}, nil
	case ActionFeature:
		return Outcome{Status: models.StatusFEATURED, SetFeaturedAt: true}, nil
	case ActionUnfeature:
		// FeaturedAt survives as a historical marker.
		return Outcome{Status: models.StatusAPPROVED}, nil
	case ActionReject:
		return Outcome{Status: models.StatusREJECTED, ModNotes: &note}, nil
	case ActionRequestChanges:
		return Outcome{Status: models.StatusCHANGES_REQUESTED, ModNotes: &note}, nil
	}
	return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

// AllowedFrom exposes the from-set for an action so persistence can filter
// conditional updates on it.
func AllowedFrom(action Action) []models.SubmissionStatus {
	from := allowedFrom[action]
	out := make([]models.SubmissionStatus, len(from))
	copy(out, from)
	return out
}
