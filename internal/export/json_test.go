package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"task-manager/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []*domain.Task {
	created := time.Date(2024, 5, 6, 7, 8, 9, 10, time.UTC)
	done := domain.NewTask(1, "A", "descA", nil, created)
	done.Completed = true
	return []*domain.Task{
		done,
		domain.NewTask(2, "Café <draft>", "naïve & \"quoted\"", []string{"x", "y", "x"}, created.Add(time.Second)),
	}
}

func TestEncode(t *testing.T) {
	t.Run("uses two-space indentation and exact field names", func(t *testing.T) {
		data, err := Encode(FromTasks(sampleTasks()[:1]))
		require.NoError(t, err)

		expected := `[
  {
    "id": 1,
    "title": "A",
    "description": "descA",
    "completed": true,
    "created_at": "2024-05-06T07:08:09.00000001Z",
    "tags": []
  }
]
`
		assert.Equal(t, expected, string(data))
	})

	t.Run("keeps non-ascii and html characters unescaped", func(t *testing.T) {
		data, err := Encode(FromTasks(sampleTasks()))
		require.NoError(t, err)
		assert.Contains(t, string(data), `"Café <draft>"`)
		assert.Contains(t, string(data), `"naïve & \"quoted\""`)
	})

	t.Run("empty registry encodes as empty list", func(t *testing.T) {
		data, err := Encode(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})
}

func TestWriteFileAndReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	tasks := sampleTasks()

	require.NoError(t, WriteFile(path, FromTasks(tasks)))

	records, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, records, len(tasks))

	for i, record := range records {
		restored, err := record.ToTask()
		require.NoError(t, err)
		assert.Equal(t, tasks[i].ID, restored.ID)
		assert.Equal(t, tasks[i].Title, restored.Title)
		assert.Equal(t, tasks[i].Description, restored.Description)
		assert.Equal(t, tasks[i].Completed, restored.Completed)
		assert.Equal(t, tasks[i].Tags, restored.Tags)
		assert.True(t, tasks[i].CreatedAt.Equal(restored.CreatedAt))
	}

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Mode().Perm()&^os.FileMode(filePermissions), "new export must not be more permissive than 0644")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the export file should be written")
}

func TestWriteFile_OverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("old content that is much longer than the new export"), 0o644))

	require.NoError(t, WriteFile(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteFile_FollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.json")
	link := filepath.Join(dir, "link.json")
	require.NoError(t, os.WriteFile(target, []byte("orig"), 0o644))
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, WriteFile(link, FromTasks(sampleTasks())))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link should still be a symlink")

	records, err := ReadFile(target)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestWriteFile_KeepsExistingMode(t *testing.T) {
	tests := []struct {
		name string
		mode os.FileMode
	}{
		{name: "owner only", mode: 0o600},
		{name: "read only", mode: 0o444},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))
			require.NoError(t, os.Chmod(path, tt.mode))

			// A read-only file is rejected unless running as root; either way
			// its mode must survive.
			_ = WriteFile(path, FromTasks(sampleTasks()))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, tt.mode, info.Mode().Perm())
		})
	}
}

func TestWriteFile_ExistingFileInReadOnlyDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))
	require.NoError(t, os.Chmod(dir, 0o555))
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	require.NoError(t, WriteFile(path, FromTasks(sampleTasks())))

	records, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestWriteFile_Failures(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "tasks.json")
		err := WriteFile(path, FromTasks(sampleTasks()))
		assert.Error(t, err)
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("target is a directory", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "tasks.json")
		require.NoError(t, os.Mkdir(target, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), []byte("x"), 0o644))

		err := WriteFile(target, FromTasks(sampleTasks()))
		assert.Error(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "nothing besides the directory should be written")
	})
}

func TestReadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "absent.json"))
	assert.True(t, os.IsNotExist(err))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o644))
	_, err = ReadFile(bad)
	assert.ErrorContains(t, err, "failed to parse")
}

func TestRecord_ToTaskRejectsBadTimestamp(t *testing.T) {
	_, err := Record{ID: 1, CreatedAt: "yesterday"}.ToTask()
	assert.Error(t, err)
}
