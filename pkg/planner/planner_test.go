package planner

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/sortnorris/pkg/storage"
)

func TestTargetDirectory(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{"ZeroPadded", time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC), "/target/2024/01/05"},
		{"DoubleDigits", time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC), "/target/1999/12/31"},
		{"LeapDay", time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC), "/target/2020/02/29"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, filepath.FromSlash(tt.want), TargetDirectory(filepath.FromSlash("/target"), tt.ts, time.UTC))
		})
	}
}

func TestTargetDirectory_Pure(t *testing.T) {
	ts := time.Unix(1700000000, 0)
	for _, root := range []string{"/a", "relative/root", "/"} {
		first := TargetDirectory(root, ts, time.UTC)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, TargetDirectory(root, time.Unix(1700000000, 0), time.UTC))
		}
	}
}

func TestTargetDirectory_Location(t *testing.T) {
	// 2024-03-01 02:00 UTC is still Feb 29 in New York
	ts := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC)
	ny := time.FixedZone("EST", -5*3600)

	assert.Equal(t, filepath.Join("/t", "2024", "03", "01"), TargetDirectory("/t", ts, time.UTC))
	assert.Equal(t, filepath.Join("/t", "2024", "02", "29"), TargetDirectory("/t", ts, ny))

	p := New(nil, ny)
	assert.Equal(t, filepath.Join("/t", "2024", "02", "29"), p.TargetDirectory("/t", ts))
}

func TestEnsureDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := New(storage.NewLocalFs(fs), time.UTC)
	ctx := context.Background()

	t.Run("DryRunDoesNotCreate", func(t *testing.T) {
		created, err := p.EnsureDirectory(ctx, "/target/2024/01/01", true)
		require.NoError(t, err)
		assert.True(t, created, "dry run should report the intended creation")

		exists, _ := afero.DirExists(fs, "/target/2024/01/01")
		assert.False(t, exists)
	})

	t.Run("Creates", func(t *testing.T) {
		created, err := p.EnsureDirectory(ctx, "/target/2024/01/01", false)
		require.NoError(t, err)
		assert.True(t, created)

		exists, _ := afero.DirExists(fs, "/target/2024/01/01")
		assert.True(t, exists)
	})

	t.Run("Idempotent", func(t *testing.T) {
		created, err := p.EnsureDirectory(ctx, "/target/2024/01/01", false)
		require.NoError(t, err)
		assert.False(t, created)

		created, err = p.EnsureDirectory(ctx, "/target/2024/01/01", true)
		require.NoError(t, err)
		assert.False(t, created)
	})
}

func TestNextAvailableName(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := New(storage.NewLocalFs(fs), time.UTC)
	ctx := context.Background()
	dir := "/target/2024/01/01"
	require.NoError(t, fs.MkdirAll(dir, 0755))

	touch := func(name string) {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, name), []byte("x"), 0644))
	}

	name, err := p.NextAvailableName(ctx, "a", ".txt", dir)
	require.NoError(t, err)
	assert.Equal(t, "a_001.txt", name)

	touch("a.txt")
	touch("a_001.txt")
	touch("a_002.txt")
	name, err = p.NextAvailableName(ctx, "a", ".txt", dir)
	require.NoError(t, err)
	assert.Equal(t, "a_003.txt", name)

	// Lowest gap wins
	require.NoError(t, fs.Remove(filepath.Join(dir, "a_001.txt")))
	name, err = p.NextAvailableName(ctx, "a", ".txt", dir)
	require.NoError(t, err)
	assert.Equal(t, "a_001.txt", name)

	// No extension
	name, err = p.NextAvailableName(ctx, "README", "", dir)
	require.NoError(t, err)
	assert.Equal(t, "README_001", name)
}

func TestNextAvailableName_WidensPast999(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := New(storage.NewLocalFs(fs), time.UTC)
	dir := "/d"
	require.NoError(t, fs.MkdirAll(dir, 0755))
	for i := 1; i <= 999; i++ {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, fmt.Sprintf("img_%03d.jpg", i)), nil, 0644))
	}

	name, err := p.NextAvailableName(context.Background(), "img", ".jpg", dir)
	require.NoError(t, err)
	assert.Equal(t, "img_1000.jpg", name)
}

func TestNextAvailableName_NeverExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	p := New(storage.NewLocalFs(fs), time.UTC)
	ctx := context.Background()
	dir := "/d"
	require.NoError(t, fs.MkdirAll(dir, 0755))

	for i := 0; i < 20; i++ {
		name, err := p.NextAvailableName(ctx, "f", ".bin", dir)
		require.NoError(t, err)
		exists, _ := afero.Exists(fs, filepath.Join(dir, name))
		require.False(t, exists, "returned name %s already exists", name)
		assert.Equal(t, fmt.Sprintf("f_%03d.bin", i+1), name)
		require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, name), nil, 0644))
	}
}

func TestNextAvailableName_Cancelled(t *testing.T) {
	p := New(storage.NewLocalFs(afero.NewMemMapFs()), time.UTC)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.NextAvailableName(ctx, "a", ".txt", "/d")
	assert.ErrorIs(t, err, context.Canceled)
}
