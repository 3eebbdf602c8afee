package alfred

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/project-cli/internal/store"
)

func fixture() *store.Store {
	s := store.New()
	web := store.NewShortcutSet()
	web.Set("repo", "https://bb/projects/T/repos/web")
	web.Set("src", "/code/web")
	web.Set("docs", "https://docs?a=1&b=2")
	s.PutProject("web", web)

	api := store.NewShortcutSet()
	api.Set("repo", "https://bb/projects/T/repos/api")
	s.PutProject("api", api)

	s.PutProject("notes", nil)
	s.Active = "web"
	return s
}

func TestProjects(t *testing.T) {
	fb := Projects(fixture(), "")
	require.Len(t, fb.Items, 3)
	assert.Equal(t, Item{Title: "api", Subtitle: "1 shortcut", Arg: "api", Autocomplete: "api"}, fb.Items[0])
	assert.Equal(t, "0 shortcuts", fb.Items[1].Subtitle)

	fb = Projects(fixture(), "repo")
	require.Len(t, fb.Items, 2)
	assert.Equal(t, Item{Title: "api", Arg: "api", Autocomplete: "api"}, fb.Items[0])

	fb = Projects(store.New(), "")
	assert.NotNil(t, fb.Items)
	assert.Empty(t, fb.Items)
}

func TestShortcuts(t *testing.T) {
	fb, err := Shortcuts(fixture(), "")
	require.NoError(t, err)
	var titles []string
	for _, item := range fb.Items {
		titles = append(titles, item.Title)
	}
	assert.Equal(t, []string{"repo", "docs", "src"}, titles)
	assert.Equal(t, "/code/web", fb.Items[2].Subtitle)

	_, err = Shortcuts(store.New(), "")
	assert.ErrorIs(t, err, store.ErrNoActiveProject)
}

func TestNotCloned(t *testing.T) {
	fb := NotCloned(fixture())
	require.Len(t, fb.Items, 1)
	assert.Equal(t, "api", fb.Items[0].Title)
	assert.Equal(t, "https://bb/projects/T/repos/api", fb.Items[0].Subtitle)
}

func TestWrite(t *testing.T) {
	fb, err := Shortcuts(fixture(), "url")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, fb))
	assert.Contains(t, buf.String(), `"subtitle": "https://docs?a=1&b=2"`)
	assert.Contains(t, buf.String(), "\n    \"items\"")

	buf.Reset()
	require.NoError(t, Write(&buf, Feedback{Items: []Item{}}))
	assert.JSONEq(t, `{"items": []}`, buf.String())
}
