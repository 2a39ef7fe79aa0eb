package extensions

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/sortnorris/pkg/storage"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"CommaSeparated", "jpg, .png ,gif", []string{".gif", ".jpg", ".png"}},
		{"NewlineSeparated", ".mov\nmp4\n", []string{".mov", ".mp4"}},
		{"Mixed", "jpg,png\nraw\r\n, cr2", []string{".cr2", ".jpg", ".png", ".raw"}},
		{"Duplicates", "jpg,.jpg\njpg", []string{".jpg"}},
		{"BlankEntries", ",,\n\n  ,txt,", []string{".txt"}},
		{"CaseKept", "JPG,jpg", []string{".JPG", ".jpg"}},
		{"Empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, set.Sorted())
			assert.Equal(t, len(tt.want), set.Len())
			for _, e := range set.Sorted() {
				assert.True(t, strings.HasPrefix(e, "."), "entry %q must start with a dot", e)
			}
		})
	}
}

func TestSetContains(t *testing.T) {
	set := New("jpg", ".PNG")

	assert.True(t, set.Contains(".jpg"))
	assert.True(t, set.Contains(".PNG"))
	assert.False(t, set.Contains(".png"))
	assert.False(t, set.Contains("jpg"))
	assert.False(t, set.Contains(""))
	assert.Equal(t, ".PNG,.jpg", set.String())
}

func TestZeroSet(t *testing.T) {
	var set Set
	assert.False(t, set.Contains(".jpg"))
	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.Sorted())
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/exts.txt", []byte("jpg,png\nheic"), 0644))

	set, err := Load(fs, "/exts.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{".heic", ".jpg", ".png"}, set.Sorted())

	_, err = Load(fs, "/missing.txt")
	assert.Error(t, err)
}

func TestExt(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"photo.jpg", ".jpg"},
		{"/a/b/archive.tar.gz", ".gz"},
		{"README", ""},
		{".bashrc", ""},
		{"..hidden", ""},
		{".config.yaml", ".yaml"},
		{"trailing.", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Ext(tt.name))
		})
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, "photo", Stem("/x/photo.jpg"))
	assert.Equal(t, "archive.tar", Stem("archive.tar.gz"))
	assert.Equal(t, ".bashrc", Stem(".bashrc"))
	assert.Equal(t, "README", Stem("README"))
}

func TestDiscover(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, p := range []string{"/root/a.jpg", "/root/b.JPG", "/root/sub/c.mp4", "/root/sub/README", "/root/.hidden", "/root/sub/d.jpg"} {
		require.NoError(t, fs.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, afero.WriteFile(fs, p, []byte("x"), 0644))
	}
	backend := storage.NewLocalFs(fs)

	set, err := Discover(context.Background(), backend, "/root")
	require.NoError(t, err)
	assert.Equal(t, []string{".JPG", ".jpg", ".mp4"}, set.Sorted())

	var buf bytes.Buffer
	require.NoError(t, WriteList(&buf, set))
	assert.Equal(t, ".JPG\n.jpg\n.mp4\n", buf.String())

	// Round trip through the list parser
	parsed, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, set.Sorted(), parsed.Sorted())
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(context.Background(), storage.NewLocalFs(afero.NewMemMapFs()), "/nope")
	assert.Error(t, err)
}
