package workflow

import (
	"errors"
	"testing"

	"github.com/launchhub/portal_end/models"
)

var allStatuses = []models.SubmissionStatus{
	models.StatusPENDING,
	models.StatusSUBMITTED,
	models.StatusAPPROVED,
	models.StatusFEATURED,
	models.StatusCHANGES_REQUESTED,
	models.StatusREJECTED,
}

func contains(actions []Action, want Action) bool {
	for _, a := range actions {
		if a == want {
			return true
		}
	}
	return false
}

func TestApproveEligibility(t *testing.T) {
	eligible := map[models.SubmissionStatus]bool{
		models.StatusSUBMITTED:         true,
		models.StatusCHANGES_REQUESTED: true,
		models.StatusPENDING:           true,
		models.StatusREJECTED:          true,
	}
	for _, status := range allStatuses {
		for _, action := range []Action{ActionApprove, ActionFeature} {
			got := Eligible(status, action)
			if got != eligible[status] {
				t.Errorf("Eligible(%s, %s) = %v, want %v", status, action, got, eligible[status])
			}
		}
	}
}

func TestRejectEligibility(t *testing.T) {
	eligible := map[models.SubmissionStatus]bool{
		models.StatusSUBMITTED:         true,
		models.StatusPENDING:           true,
		models.StatusCHANGES_REQUESTED: true,
	}
	for _, status := range allStatuses {
		if got := Eligible(status, ActionReject); got != eligible[status] {
			t.Errorf("Eligible(%s, reject) = %v, want %v", status, got, eligible[status])
		}
	}
}

func TestUnfeatureOnlyFromFeatured(t *testing.T) {
	for _, status := range allStatuses {
		want := status == models.StatusFEATURED
		if got := Eligible(status, ActionUnfeature); got != want {
			t.Errorf("Eligible(%s, unfeature) = %v, want %v", status, got, want)
		}
	}

	out, err := Apply(models.StatusFEATURED, models.UserRoleMODERATOR, ActionUnfeature, "")
	if err != nil {
		t.Fatalf("unfeature from FEATURED: %v", err)
	}
	if out.Status != models.StatusAPPROVED {
		t.Errorf("unfeature result = %s, want APPROVED", out.Status)
	}
	if out.SetFeaturedAt {
		t.Error("unfeature must not touch featuredAt")
	}
}

func TestRequestChangesEligibility(t *testing.T) {
	eligible := map[models.SubmissionStatus]bool{
		models.StatusSUBMITTED: true,
		models.StatusPENDING:   true,
	}
	for _, status := range allStatuses {
		if got := Eligible(status, ActionRequestChanges); got != eligible[status] {
			t.Errorf("Eligible(%s, request_changes) = %v, want %v", status, got, eligible[status])
		}
	}
}

func TestSecondApproveIsStateConflict(t *testing.T) {
	out, err := Apply(models.StatusSUBMITTED, models.UserRoleMODERATOR, ActionApprove, "")
	if err != nil {
		t.Fatalf("first approve: %v", err)
	}
	if out.Status != models.StatusAPPROVED {
		t.Fatalf("first approve result = %s, want APPROVED", out.Status)
	}

	// APPROVED is not in approve's from-set; the second call must be
	// rejected, not silently accepted.
	_, err = Apply(out.Status, models.UserRoleMODERATOR, ActionApprove, "")
	if !errors.Is(err, ErrStateConflict) {
		t.Errorf("second approve error = %v, want ErrStateConflict", err)
	}
}

func TestRejectWithEmptyReason(t *testing.T) {
	for _, note := range []string{"", "   ", "\n\t"} {
		_, err := Apply(models.StatusSUBMITTED, models.UserRoleMODERATOR, ActionReject, note)
		if !errors.Is(err, ErrEmptyNote) {
			t.Errorf("reject with note %q error = %v, want ErrEmptyNote", note, err)
		}
	}

	_, err := Apply(models.StatusSUBMITTED, models.UserRoleMODERATOR, ActionRequestChanges, "")
	if !errors.Is(err, ErrEmptyNote) {
		t.Errorf("request_changes with empty note error = %v, want ErrEmptyNote", err)
	}
}

func TestModeratorActionsForbiddenForOwners(t *testing.T) {
	for _, action := range []Action{ActionApprove, ActionFeature, ActionReject, ActionRequestChanges} {
		_, err := Apply(models.StatusSUBMITTED, models.UserRoleUSER, action, "note")
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("%s as USER error = %v, want ErrForbidden", action, err)
		}
	}
}

func TestDeleteEligibility(t *testing.T) {
	for _, status := range allStatuses {
		published := status == models.StatusAPPROVED || status == models.StatusFEATURED
		if got := CanDelete(status, models.UserRoleUSER); got == published {
			t.Errorf("CanDelete(%s, USER) = %v, want %v", status, got, !published)
		}
		if !CanDelete(status, models.UserRoleMODERATOR) {
			t.Errorf("CanDelete(%s, MODERATOR) = false, want true", status)
		}
		if !CanDelete(status, models.UserRoleADMIN) {
			t.Errorf("CanDelete(%s, ADMIN) = false, want true", status)
		}
	}

	_, err := Apply(models.StatusFEATURED, models.UserRoleUSER, ActionDelete, "")
	if !errors.Is(err, ErrStateConflict) {
		t.Errorf("owner delete of FEATURED error = %v, want ErrStateConflict", err)
	}
	if _, err := Apply(models.StatusFEATURED, models.UserRoleADMIN, ActionDelete, ""); err != nil {
		t.Errorf("moderator delete of FEATURED: %v", err)
	}
}

func TestFullLifecycleScenario(t *testing.T) {
	// PENDING -> submit -> SUBMITTED
	out, err := Apply(models.StatusPENDING, models.UserRoleUSER, ActionSubmit, "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Status != models.StatusSUBMITTED || !out.SetSubmittedAt {
		t.Fatalf("submit outcome = %+v, want SUBMITTED with submittedAt", out)
	}

	// moderator requests changes with a message
	out, err = Apply(out.Status, models.UserRoleMODERATOR, ActionRequestChanges, "Add screenshots")
	if err != nil {
		t.Fatalf("request changes: %v", err)
	}
	if out.Status != models.StatusCHANGES_REQUESTED {
		t.Fatalf("request changes result = %s", out.Status)
	}
	if out.ModNotes == nil || *out.ModNotes != "Add screenshots" {
		t.Fatalf("request changes modNotes = %v, want \"Add screenshots\"", out.ModNotes)
	}

	// owner resubmits: re-enters SUBMITTED, never PENDING
	out, err = Apply(out.Status, models.UserRoleUSER, ActionSubmit, "")
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if out.Status != models.StatusSUBMITTED {
		t.Fatalf("resubmit result = %s, want SUBMITTED", out.Status)
	}

	// moderator approves and features
	out, err = Apply(out.Status, models.UserRoleMODERATOR, ActionFeature, "")
	if err != nil {
		t.Fatalf("feature: %v", err)
	}
	if out.Status != models.StatusFEATURED || !out.SetFeaturedAt {
		t.Fatalf("feature outcome = %+v, want FEATURED with featuredAt", out)
	}

	// unfeature drops back to APPROVED without clearing featuredAt
	out, err = Apply(out.Status, models.UserRoleMODERATOR, ActionUnfeature, "")
	if err != nil {
		t.Fatalf("unfeature: %v", err)
	}
	if out.Status != models.StatusAPPROVED || out.SetFeaturedAt {
		t.Fatalf("unfeature outcome = %+v, want APPROVED without touching featuredAt", out)
	}
}

func TestRejectedCanBeReapproved(t *testing.T) {
	out, err := Apply(models.StatusREJECTED, models.UserRoleMODERATOR, ActionApprove, "")
	if err != nil {
		t.Fatalf("approve from REJECTED: %v", err)
	}
	if out.Status != models.StatusAPPROVED {
		t.Errorf("approve from REJECTED result = %s", out.Status)
	}
	// Approval does not clear previously written notes.
	if out.ModNotes != nil {
		t.Errorf("approve must not touch modNotes, got %v", out.ModNotes)
	}
}

func TestEligibleActionsByRole(t *testing.T) {
	tests := []struct {
		status models.SubmissionStatus
		role   models.UserRole
		want   []Action
	}{
		{models.StatusPENDING, models.UserRoleUSER, []Action{ActionSubmit, ActionDelete}},
		{models.StatusCHANGES_REQUESTED, models.UserRoleUSER, []Action{ActionSubmit, ActionDelete}},
		{models.StatusSUBMITTED, models.UserRoleUSER, []Action{ActionDelete}},
		{models.StatusAPPROVED, models.UserRoleUSER, nil},
		{models.StatusFEATURED, models.UserRoleUSER, nil},
		{models.StatusSUBMITTED, models.UserRoleMODERATOR,
			[]Action{ActionApprove, ActionFeature, ActionReject, ActionRequestChanges, ActionDelete}},
		{models.StatusAPPROVED, models.UserRoleMODERATOR, []Action{ActionDelete}},
		{models.StatusFEATURED, models.UserRoleADMIN, []Action{ActionUnfeature, ActionDelete}},
		{models.StatusREJECTED, models.UserRoleMODERATOR,
			[]Action{ActionApprove, ActionFeature, ActionDelete}},
	}

	for _, tt := range tests {
		got := EligibleActions(tt.status, tt.role)
		if len(got) != len(tt.want) {
			t.Errorf("EligibleActions(%s, %s) = %v, want %v", tt.status, tt.role, got, tt.want)
			continue
		}
		for _, a := range tt.want {
			if !contains(got, a) {
				t.Errorf("EligibleActions(%s, %s) missing %s", tt.status, tt.role, a)
			}
		}
	}
}

func TestParseAction(t *testing.T) {
	if a, err := ParseAction("Approve"); err != nil || a != ActionApprove {
		t.Errorf("ParseAction(Approve) = %v, %v", a, err)
	}
	if _, err := ParseAction("publish"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("ParseAction(publish) error = %v, want ErrUnknownAction", err)
	}
}

func TestAllowedFromIsACopy(t *testing.T) {
	from := AllowedFrom(ActionApprove)
	if len(from) == 0 {
		t.Fatal("approve from-set is empty")
	}
	from[0] = models.StatusFEATURED
	if Eligible(models.StatusFEATURED, ActionApprove) {
		t.Error("mutating AllowedFrom result leaked into the table")
	}
}
