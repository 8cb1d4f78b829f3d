package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/launchhub/portal_end/models"
)

func fixedLoader(items []models.SubmissionSummary, err error) Loader {
	return func(ctx context.Context, f Filter) ([]models.SubmissionSummary, error) {
		return items, err
	}
}

func sampleItems() []models.SubmissionSummary {
	return []models.SubmissionSummary{
		{ID: "a", Kind: models.KindProject, Title: "Alpha", Status: models.StatusSUBMITTED},
		{ID: "b", Kind: models.KindProject, Title: "Beta", Status: models.StatusPENDING},
		{ID: "c", Kind: models.KindStartup, Title: "Gamma", Status: models.StatusSUBMITTED},
	}
}

func TestLoadReplacesCollection(t *testing.T) {
	set := NewSubmissionSet(fixedLoader(sampleItems(), nil))
	if err := set.Load(context.Background(), Filter{}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if set.Len() != 3 {
		t.Fatalf("Len = %d, want 3", set.Len())
	}

	set.loader = fixedLoader(nil, nil)
	if err := set.Load(context.Background(), Filter{}); err != nil {
		t.Fatalf("empty load must not be an error: %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("Len after empty load = %d, want 0", set.Len())
	}
}

func TestApplyTransitionPatchesOnlyMatch(t *testing.T) {
	set := NewSubmissionSet(fixedLoader(sampleItems(), nil))
	if err := set.Load(context.Background(), Filter{}); err != nil {
		t.Fatalf("load: %v", err)
	}

	now := time.Now()
	ok := set.ApplyTransition("a", models.SubmissionSummary{
		Status:     models.StatusFEATURED,
		FeaturedAt: &now,
	})
	if !ok {
		t.Fatal("ApplyTransition(a) = false")
	}

	items := set.Items()
	if items[0].ID != "a" || items[0].Status != models.StatusFEATURED {
		t.Errorf("entry a = %+v, want FEATURED", items[0])
	}
	if items[0].FeaturedAt == nil {
		t.Error("entry a featuredAt not set")
	}
	// other entries and ordering untouched
	if items[1].ID != "b" || items[1].Status != models.StatusPENDING {
		t.Errorf("entry b changed: %+v", items[1])
	}
	if items[2].ID != "c" || items[2].Status != models.StatusSUBMITTED {
		t.Errorf("entry c changed: %+v", items[2])
	}

	if set.ApplyTransition("missing", models.SubmissionSummary{Status: models.StatusAPPROVED}) {
		t.Error("ApplyTransition(missing) = true, want false")
	}
}

func TestApplyTransitionOverwritesModNotes(t *testing.T) {
	set := NewSubmissionSet(fixedLoader([]models.SubmissionSummary{
		{ID: "a", Status: models.StatusSUBMITTED, ModNotes: "old feedback"},
	}, nil))
	if err := set.Load(context.Background(), Filter{}); err != nil {
		t.Fatalf("load: %v", err)
	}

	set.ApplyTransition("a", models.SubmissionSummary{
		Status:   models.StatusCHANGES_REQUESTED,
		ModNotes: "Add screenshots",
	})
	got, _ := set.Get("a")
	if got.ModNotes != "Add screenshots" {
		t.Errorf("modNotes = %q, want overwrite, not append", got.ModNotes)
	}
}

func TestRemoveConfirmed(t *testing.T) {
	set := NewSubmissionSet(fixedLoader(sampleItems(), nil))
	if err := set.Load(context.Background(), Filter{}); err != nil {
		t.Fatalf("load: %v", err)
	}

	err := set.Remove(context.Background(), "b", func() error { return nil })
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if set.Len() != 2 {
		t.Errorf("Len = %d, want 2", set.Len())
	}
	if _, ok := set.Get("b"); ok {
		t.Error("entry b still present after confirmed remove")
	}
}

func TestRemoveCompensatesOnFailure(t *testing.T) {
	set := NewSubmissionSet(fixedLoader(sampleItems(), nil))
	if err := set.Load(context.Background(), Filter{}); err != nil {
		t.Fatalf("load: %v", err)
	}

	backendErr := errors.New("backend down")
	err := set.Remove(context.Background(), "b", func() error { return backendErr })
	if !errors.Is(err, backendErr) {
		t.Fatalf("remove error = %v, want backend error", err)
	}
	// the compensating reload brings the optimistically removed entry back
	if _, ok := set.Get("b"); !ok {
		t.Error("entry b not restored by compensating reload")
	}
	if set.Len() != 3 {
		t.Errorf("Len after reconcile = %d, want 3", set.Len())
	}
}

func TestReloadSnapshotSurvivesCompetingLoad(t *testing.T) {
	byFilter := func(ctx context.Context, f Filter) ([]models.SubmissionSummary, error) {
		if f.Status == models.StatusREJECTED {
			return []models.SubmissionSummary{
				{ID: "r1", Kind: models.KindProject, Status: models.StatusREJECTED},
			}, nil
		}
		return []models.SubmissionSummary{
			{ID: "s1", Kind: models.KindProject, Status: models.StatusSUBMITTED},
			{ID: "s2", Kind: models.KindStartup, Status: models.StatusSUBMITTED},
		}, nil
	}

	set := NewSubmissionSet(byFilter)
	snapshot, err := set.Reload(context.Background(), Filter{Status: models.StatusSUBMITTED})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	// A second moderator loads a different filter into the same set before
	// the first answer is assembled.
	if err := set.Load(context.Background(), Filter{Status: models.StatusREJECTED}); err != nil {
		t.Fatalf("competing load: %v", err)
	}

	if len(snapshot) != 2 {
		t.Fatalf("snapshot len = %d, want 2", len(snapshot))
	}
	for _, item := range snapshot {
		if item.Status != models.StatusSUBMITTED {
			t.Errorf("snapshot entry %q has status %s, want SUBMITTED only", item.ID, item.Status)
		}
	}

	if set.Len() != 1 {
		t.Errorf("set Len = %d, want the competing load's 1 entry", set.Len())
	}
}

func TestItemsReturnsSnapshot(t *testing.T) {
	set := NewSubmissionSet(fixedLoader(sampleItems(), nil))
	if err := set.Load(context.Background(), Filter{}); err != nil {
		t.Fatalf("load: %v", err)
	}

	snapshot := set.Items()
	snapshot[0].Status = models.StatusREJECTED
	got, _ := set.Get("a")
	if got.Status == models.StatusREJECTED {
		t.Error("mutating the snapshot leaked into the set")
	}
}
