package cloud

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dori/todomaster/internal/model"
)

func taskAt(t *testing.T, title string, updated time.Time) model.Task {
	t.Helper()
	tk, err := model.NewTask(title)
	require.NoError(t, err)
	tk.CreatedAt = updated.Add(-time.Hour)
	tk.UpdatedAt = updated
	return tk
}

func TestMergeInsertsUnknownRemoteRecords(t *testing.T) {
	now := time.Now()
	local := []model.Task{taskAt(t, "local", now)}
	remote := []model.Task{taskAt(t, "remote", now)}

	merged := Merge(local, remote)

	require.Len(t, merged, 2)
	assert.Equal(t, "local", merged[0].Title)
	assert.Equal(t, "remote", merged[1].Title)
}

func TestMergeKeepsNewerTimestamp(t *testing.T) {
	now := time.Now()

	older := taskAt(t, "old title", now.Add(-time.Hour))
	newer := older
	newer.Title = "new title"
	newer.UpdatedAt = now

	t.Run("remote newer replaces local", func(t *testing.T) {
		merged := Merge([]model.Task{older}, []model.Task{newer})
		require.Len(t, merged, 1)
		assert.Equal(t, "new title", merged[0].Title)
		assert.True(t, merged[0].UpdatedAt.Equal(now))
	})

	t.Run("local newer wins", func(t *testing.T) {
		merged := Merge([]model.Task{newer}, []model.Task{older})
		require.Len(t, merged, 1)
		assert.Equal(t, "new title", merged[0].Title)
	})

	t.Run("equal timestamps keep local", func(t *testing.T) {
		remote := older
		remote.Title = "remote copy"
		merged := Merge([]model.Task{older}, []model.Task{remote})
		require.Len(t, merged, 1)
		assert.Equal(t, "old title", merged[0].Title)
	})
}

func TestMergeNeverDeletes(t *testing.T) {
	now := time.Now()
	local := []model.Task{taskAt(t, "a", now), taskAt(t, "b", now)}

	merged := Merge(local, nil)

	assert.GreaterOrEqual(t, len(merged), len(local))
	assert.Equal(t, local, merged)
}

func TestMergeIsIdempotent(t *testing.T) {
	now := time.Now()
	shared := taskAt(t, "shared", now.Add(-time.Minute))
	remoteShared := shared
	remoteShared.Title = "shared v2"
	remoteShared.UpdatedAt = now

	local := []model.Task{taskAt(t, "only local", now), shared}
	remote := []model.Task{remoteShared, taskAt(t, "only remote", now)}

	once := Merge(local, remote)
	twice := Merge(once, remote)

	assert.Equal(t, once, twice)
}

func TestResolverReusesCategoriesByName(t *testing.T) {
	work := model.NewCategory("Work", "#FF9500", "briefcase")
	r := NewResolver([]model.Category{work}, nil)

	now := time.Now()
	tasks := r.Resolve([]Record{
		{ID: "1", Title: "first", Category: "Work", LastModified: now},
		{ID: "2", Title: "second", Category: "Work", LastModified: now},
		{ID: "3", Title: "third", Category: "Errands", LastModified: now},
	})

	require.Len(t, tasks, 3)
	assert.Equal(t, work.ID, tasks[0].Category.ID)
	assert.Equal(t, work.ID, tasks[1].Category.ID)

	// Exactly one new category appears, with the default appearance
	require.Len(t, r.Categories(), 2)
	created := r.Categories()[1]
	assert.Equal(t, "Errands", created.Name)
	assert.Equal(t, model.DefaultCategoryColor, created.ColorHex)
	assert.Equal(t, created.ID, tasks[2].Category.ID)
}

func TestResolverDeduplicatesTagsWithinOnePass(t *testing.T) {
	r := NewResolver(nil, nil)

	now := time.Now()
	tasks := r.Resolve([]Record{
		{ID: "1", Title: "first", Tags: []string{"@home"}, LastModified: now},
		{ID: "2", Title: "second", Tags: []string{"@home", "@urgent"}, LastModified: now},
	})

	require.Len(t, r.Tags(), 2)
	assert.Equal(t, tasks[0].Tags[0].ID, tasks[1].Tags[0].ID)
}

func TestResolveFillsTimestampsFromLastModified(t *testing.T) {
	now := time.Now()
	r := NewResolver(nil, nil)

	tasks := r.Resolve([]Record{{ID: "1", Title: "t", Priority: 99, LastModified: now}})

	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].CreatedAt.Equal(now))
	assert.True(t, tasks[0].UpdatedAt.Equal(now))
	// Out-of-range priority falls back to none
	assert.Equal(t, model.PriorityNone, tasks[0].Priority)
}

func TestEncodeTaskCarriesNamesNotIDs(t *testing.T) {
	cat := model.NewCategory("Work", "#FF9500", "briefcase")
	tk := taskAt(t, "encode me", time.Now())
	tk.Category = &cat
	tk.Tags = []model.Tag{model.NewTag("@home", "#000000")}
	tk.Priority = model.PriorityHigh

	r := EncodeTask(tk)

	assert.Equal(t, tk.ID, r.ID)
	assert.Equal(t, "Work", r.Category)
	assert.Equal(t, []string{"@home"}, r.Tags)
	assert.Equal(t, int(model.PriorityHigh), r.Priority)
	assert.True(t, r.LastModified.Equal(tk.UpdatedAt))
}
