package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/launchhub/portal_end/models"
	"github.com/launchhub/portal_end/repository"
	"github.com/launchhub/portal_end/utils"
	"github.com/launchhub/portal_end/workflow"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		raw        string
		kind       models.SubmissionKind
		collection string
		wantErr    bool
	}{
		{"project", models.KindProject, repository.ProjectsCollection, false},
		{"startup", models.KindStartup, repository.StartupsCollection, false},
		{"projects", "", "", true},
		{"", "", "", true},
		{"PROJECT", "", "", true},
	}

	for _, tt := range tests {
		kind, collection, err := parseKind(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseKind(%q): expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseKind(%q): unexpected error %v", tt.raw, err)
			continue
		}
		if kind != tt.kind || collection != tt.collection {
			t.Errorf("parseKind(%q) = (%v, %q), want (%v, %q)",
				tt.raw, kind, collection, tt.kind, tt.collection)
		}
	}
}

func TestWorkflowToApiError(t *testing.T) {
	tests := []struct {
		name     string
		in       error
		wantCode string
		wantHTTP int
	}{
		{"state conflict", workflow.ErrStateConflict, "STATE_CONFLICT", http.StatusConflict},
		{"empty note", workflow.ErrEmptyNote, "VALIDATION_ERROR", http.StatusBadRequest},
		{"forbidden", workflow.ErrForbidden, "FORBIDDEN", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := workflowToApiError(tt.in)
			apiErr, ok := err.(*utils.ApiError)
			if !ok {
				t.Fatalf("expected *utils.ApiError, got %T", err)
			}
			if apiErr.ErrorCode != tt.wantCode {
				t.Errorf("code = %q, want %q", apiErr.ErrorCode, tt.wantCode)
			}
			if apiErr.StatusCode != tt.wantHTTP {
				t.Errorf("status = %d, want %d", apiErr.StatusCode, tt.wantHTTP)
			}
		})
	}
}

func TestSubmissionDocSummary(t *testing.T) {
	submitted := time.Now().Add(-time.Hour)

	project := submissionDoc{
		ID:        primitive.NewObjectID(),
		Title:     "Campus Ride Share",
		OwnerName: "ada",
		Lifecycle: models.Lifecycle{
			Status:      models.StatusSUBMITTED,
			SubmittedAt: &submitted,
		},
	}
	got := project.summary(models.KindProject)
	if got.Title != "Campus Ride Share" {
		t.Errorf("project summary title = %q", got.Title)
	}
	if got.Kind != models.KindProject || got.Status != models.StatusSUBMITTED {
		t.Errorf("project summary = %+v", got)
	}
	if got.SubmittedAt == nil || !got.SubmittedAt.Equal(submitted) {
		t.Errorf("project summary submittedAt = %v", got.SubmittedAt)
	}

	// Startups carry a name instead of a title.
	startup := submissionDoc{
		ID:        primitive.NewObjectID(),
		Name:      "Finlytics",
		OwnerName: "grace",
		Lifecycle: models.Lifecycle{Status: models.StatusPENDING},
	}
	if title := startup.summary(models.KindStartup).Title; title != "Finlytics" {
		t.Errorf("startup summary title = %q", title)
	}
}

func TestQueueForIsolatesModerators(t *testing.T) {
	a := queueFor("moderator-a")
	b := queueFor("moderator-b")
	if a == b {
		t.Fatal("two moderators share one working set")
	}
	if queueFor("moderator-a") != a {
		t.Error("same moderator did not get their set back")
	}
}

func TestDeleteFilterRestatesOwnerPolicy(t *testing.T) {
	id := primitive.NewObjectID()

	owner := deleteFilter(id, models.UserRoleUSER)
	nin, ok := owner["status"]
	if !ok {
		t.Fatal("owner delete filter has no status condition; a concurrent approval would not block the delete")
	}
	cond, ok := nin.(bson.M)
	if !ok {
		t.Fatalf("status condition = %T, want bson.M", nin)
	}
	excluded, ok := cond["$nin"].([]models.SubmissionStatus)
	if !ok {
		t.Fatalf("status condition = %v, want $nin over statuses", cond)
	}
	want := map[models.SubmissionStatus]bool{
		models.StatusAPPROVED: true,
		models.StatusFEATURED: true,
	}
	if len(excluded) != len(want) {
		t.Fatalf("excluded statuses = %v, want APPROVED and FEATURED", excluded)
	}
	for _, s := range excluded {
		if !want[s] {
			t.Errorf("unexpected excluded status %s", s)
		}
	}

	for _, role := range []models.UserRole{models.UserRoleMODERATOR, models.UserRoleADMIN} {
		filter := deleteFilter(id, role)
		if _, ok := filter["status"]; ok {
			t.Errorf("%s delete filter restricts status; moderators may delete any state", role)
		}
		if filter["_id"] != id {
			t.Errorf("%s delete filter lost the id condition", role)
		}
	}
}

func TestValidateMedia(t *testing.T) {
	item := func(id string) models.MediaItem {
		return models.MediaItem{ID: id, URL: "https://cdn.example.com/" + id, Type: models.MediaIMAGE}
	}

	if err := validateMedia(nil, ""); err != nil {
		t.Errorf("empty media: unexpected error %v", err)
	}

	media := []models.MediaItem{item("a"), item("b")}
	if err := validateMedia(media, "b"); err != nil {
		t.Errorf("cover in set: unexpected error %v", err)
	}
	if err := validateMedia(media, "zzz"); err == nil {
		t.Error("expected error for cover outside the media set")
	}

	over := make([]models.MediaItem, models.MaxMediaItems+1)
	for i := range over {
		over[i] = item(string(rune('a' + i)))
	}
	if err := validateMedia(over, ""); err == nil {
		t.Errorf("expected error above the %d item cap", models.MaxMediaItems)
	}
}
