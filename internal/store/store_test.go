package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dori/todomaster/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	tmpDir := t.TempDir()
	s, err := Open(filepath.Join(tmpDir, "test.db"), nil)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)

	due := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	task, err := model.NewTask("Write migration")
	if err != nil {
		t.Fatalf("NewTask failed: %v", err)
	}
	task.DueDate = &due
	task.Priority = model.PriorityHigh

	in := []model.Task{task}
	if err := s.Save(KindTasks, in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var out []model.Task
	if err := s.Load(KindTasks, &out); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(out) != 1 {
		t.Fatalf("Expected 1 task, got %d", len(out))
	}
	if out[0].ID != task.ID || out[0].Title != task.Title {
		t.Errorf("Round trip mismatch: got %+v", out[0])
	}
	if out[0].DueDate == nil || !out[0].DueDate.Equal(due) {
		t.Errorf("Due date mismatch: got %v, want %v", out[0].DueDate, due)
	}
	if out[0].Priority != model.PriorityHigh {
		t.Errorf("Priority mismatch: got %v", out[0].Priority)
	}
}

func TestLoadMissingSlotIsEmpty(t *testing.T) {
	s := openTestStore(t)

	var out []model.Task
	if err := s.Load(KindTasks, &out); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Expected empty collection for missing slot, got %d items", len(out))
	}
}

func TestLoadCorruptSlotIsEmpty(t *testing.T) {
	s := openTestStore(t)

	// Write garbage directly into the slot
	_, err := s.db.Exec(`INSERT INTO slots (kind, payload, updated_at) VALUES (?, ?, ?)`,
		string(KindTasks), []byte("{not json"), time.Now())
	if err != nil {
		t.Fatalf("Failed to plant corrupt payload: %v", err)
	}

	var out []model.Task
	if err := s.Load(KindTasks, &out); err != nil {
		t.Fatalf("Load should treat corrupt data as no data, got error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Expected empty collection for corrupt slot, got %d items", len(out))
	}
}

func TestSaveOverwritesPreviousValue(t *testing.T) {
	s := openTestStore(t)

	first, _ := model.NewTask("First")
	second, _ := model.NewTask("Second")

	if err := s.Save(KindTasks, []model.Task{first, second}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save(KindTasks, []model.Task{second}); err != nil {
		t.Fatalf("Overwriting save failed: %v", err)
	}

	var out []model.Task
	if err := s.Load(KindTasks, &out); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != second.ID {
		t.Errorf("Expected only the second task after overwrite, got %+v", out)
	}
}

func TestSlotsAreIndependent(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save(KindTheme, model.ThemeDark); err != nil {
		t.Fatalf("Save theme failed: %v", err)
	}
	if err := s.Save(KindTags, []model.Tag{model.NewTag("@home", "#34C759")}); err != nil {
		t.Fatalf("Save tags failed: %v", err)
	}
	if err := s.Clear(KindTags); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	var theme model.Theme
	if err := s.Load(KindTheme, &theme); err != nil {
		t.Fatalf("Load theme failed: %v", err)
	}
	if theme != model.ThemeDark {
		t.Errorf("Theme slot affected by clearing tags: got %q", theme)
	}

	var tags []model.Tag
	if err := s.Load(KindTags, &tags); err != nil {
		t.Fatalf("Load tags failed: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("Expected cleared tags slot to be empty, got %d", len(tags))
	}
}
