package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/project-cli/internal/shortcut"
	"github.com/aidanlsb/project-cli/internal/store"
)

func testEnv(t *testing.T) Env {
	t.Helper()
	home := t.TempDir()
	return Env{
		Expander: shortcut.Expander{
			HomeDir:   func() (string, error) { return home, nil },
			LookupEnv: func(string) (string, bool) { return "", false },
		},
		Cwd: filepath.Join(home, "work"),
	}
}

func withActive(t *testing.T, name string) *store.Store {
	t.Helper()
	s := store.New()
	_, err := AddProject(s, name, false)
	require.NoError(t, err)
	return s
}

func TestAddProjectOnEmptyStore(t *testing.T) {
	s := store.New()
	res, err := AddProject(s, "alpha", false)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "Added project 'alpha'. Active = alpha", res.Message)
	assert.Equal(t, "alpha", s.Active)
	assert.Equal(t, []string{"alpha"}, s.ProjectNames())
}

func TestAddProjectExisting(t *testing.T) {
	s := withActive(t, "alpha")
	set, _ := s.Project("alpha")
	set.Set("docs", "https://x")
	_, err := AddProject(s, "beta", false)
	require.NoError(t, err)

	_, err = AddProject(s, "alpha", false)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
	assert.Equal(t, "beta", s.Active)

	res, err := AddProject(s, "alpha", true)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "alpha", s.Active)
	set, _ = s.Project("alpha")
	assert.Equal(t, 1, set.Len(), "force keeps shortcuts")

	res, err = AddProject(s, "alpha", true)
	require.NoError(t, err)
	assert.False(t, res.Changed)
}

func TestProjectNameValidation(t *testing.T) {
	for _, name := range []string{"", store.ActiveKey, " padded", "-flag"} {
		_, err := AddProject(store.New(), name, false)
		assert.ErrorIs(t, err, store.ErrInvalidName, "name %q", name)
	}
}

func TestSelectProject(t *testing.T) {
	s := withActive(t, "alpha")
	_, err := AddProject(s, "beta", false)
	require.NoError(t, err)

	res, err := SelectProject(s, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha", s.Active)
	assert.Equal(t, "Selected active project: alpha", res.Message)
	assert.True(t, res.Changed)

	res, err = SelectProject(s, "alpha")
	require.NoError(t, err)
	assert.False(t, res.Changed)

	_, err = SelectProject(s, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, "alpha", s.Active)
}

func TestRenameProject(t *testing.T) {
	s := withActive(t, "alpha")
	_, err := AddProject(s, "beta", false)
	require.NoError(t, err)
	_, err = SelectProject(s, "alpha")
	require.NoError(t, err)
	before, err := store.Encode(s)
	require.NoError(t, err)

	_, err = RenameProject(s, "alpha", "beta", false)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
	after, err := store.Encode(s)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))

	_, err = RenameProject(s, "ghost", "x", false)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = RenameProject(s, "alpha", store.ActiveKey, false)
	require.ErrorIs(t, err, store.ErrInvalidName)

	res, err := RenameProject(s, "alpha", "gamma", false)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, "gamma", s.Active)
	assert.Equal(t, []string{"beta", "gamma"}, s.ProjectNames())

	res, err = RenameProject(s, "gamma", "beta", true)
	require.NoError(t, err)
	assert.Equal(t, "Renamed 'gamma' -> 'beta'", res.Message)
	assert.Equal(t, []string{"beta"}, s.ProjectNames())
	assert.Equal(t, "beta", s.Active)

	res, err = RenameProject(s, "beta", "beta", false)
	require.NoError(t, err)
	assert.False(t, res.Changed)
}

func TestRenameInactiveProjectKeepsSelection(t *testing.T) {
	s := withActive(t, "alpha")
	_, err := AddProject(s, "beta", false)
	require.NoError(t, err)
	_, err = SelectProject(s, "alpha")
	require.NoError(t, err)

	_, err = RenameProject(s, "beta", "delta", false)
	require.NoError(t, err)
	assert.Equal(t, "alpha", s.Active)
}

func TestRemoveProject(t *testing.T) {
	s := withActive(t, "alpha")
	res, err := RemoveProject(s, "alpha")
	require.NoError(t, err)
	assert.Equal(t, "Removed 'alpha'. Active = <none>", res.Message)
	assert.Empty(t, s.Projects)
	assert.Equal(t, "", s.Active)

	_, err = RemoveProject(s, "alpha")
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, CheckRemovable(s, "alpha"), store.ErrNotFound)
}

func TestListProjects(t *testing.T) {
	s := withActive(t, "beta")
	_, err := AddProject(s, "alpha", false)
	require.NoError(t, err)
	_, err = AddShortcut(s, testEnv(t), "docs", "https://x")
	require.NoError(t, err)

	all := ListProjects(s, "")
	assert.Equal(t, 2, all.Count)
	assert.Equal(t, "alpha", all.Projects[0].Name)
	assert.True(t, all.Projects[0].Active)
	assert.Nil(t, all.Names)

	with := ListProjects(s, "docs")
	assert.Equal(t, []string{"alpha"}, with.Names)
	assert.Equal(t, 1, with.Count)

	without := ListProjects(s, "!docs")
	assert.Equal(t, []string{"beta"}, without.Names)
}

func TestShortcutCommandsNeedActiveProject(t *testing.T) {
	env := testEnv(t)
	checks := map[string]func(*store.Store) error{
		"add":    func(s *store.Store) error { _, err := AddShortcut(s, env, "k", "v"); return err },
		"update": func(s *store.Store) error { _, err := UpdateShortcut(s, env, "k", "v"); return err },
		"rename": func(s *store.Store) error { _, err := RenameShortcut(s, "k", "j"); return err },
		"remove": func(s *store.Store) error { _, err := RemoveShortcut(s, "k"); return err },
		"list":   func(s *store.Store) error { _, err := ListShortcuts(s, ""); return err },
		"keys":   func(s *store.Store) error { _, err := ShortcutKeys(s); return err },
		"haskey": func(s *store.Store) error { _, _, err := HasKey(s, "k"); return err },
		"goto": func(s *store.Store) error {
			_, err := Goto(context.Background(), s, &shortcut.Resolver{}, "k")
			return err
		},
	}
	for name, fn := range checks {
		s := store.New()
		err := fn(s)
		assert.ErrorIs(t, err, store.ErrNoActiveProject, name)
		assert.Empty(t, s.Projects, name)
	}
}

func TestAddShortcutNormalizesDirectories(t *testing.T) {
	env := testEnv(t)
	s := withActive(t, "p")

	res, err := AddShortcut(s, env, "docs", "https://x.test/a")
	require.NoError(t, err)
	assert.Equal(t, "[p] set 'docs' -> https://x.test/a", res.Message)

	_, err = AddShortcut(s, env, "src", "./src/../src")
	require.NoError(t, err)
	_, err = AddShortcut(s, env, "notes", "~/notes")
	require.NoError(t, err)

	set, _ := s.Project("p")
	src, _ := set.Get("src")
	assert.Equal(t, filepath.Join(env.Cwd, "src"), src)
	notes, _ := set.Get("notes")
	home, _ := env.Expander.HomeDir()
	assert.Equal(t, filepath.Join(home, "notes"), notes)

	res, err = AddShortcut(s, env, "docs", "https://x.test/a")
	require.NoError(t, err)
	assert.False(t, res.Changed, "same value is not a change")

	_, err = AddShortcut(s, env, " ", "https://x")
	assert.ErrorIs(t, err, store.ErrInvalidName)
}

func TestAddShortcutKeepsDollarText(t *testing.T) {
	env := testEnv(t)
	env.Expander.LookupEnv = func(key string) (string, bool) {
		if key == "b" {
			return "B", true
		}
		return "", false
	}
	s := withActive(t, "p")
	home, _ := env.Expander.HomeDir()

	cases := map[string]string{
		"/data/price$5": "/data/price$5",
		"/srv/$NOPE/x":  "/srv/$NOPE/x",
		"~/a$b":         filepath.Join(home, "a$b"),
		"$b/src":        "$b/src",
	}
	for value, want := range cases {
		res, err := AddShortcut(s, env, "k", value)
		require.NoError(t, err, value)
		assert.Equal(t, "[p] set 'k' -> "+want, res.Message)
	}
}

func TestUpdateShortcut(t *testing.T) {
	env := testEnv(t)
	s := withActive(t, "p")
	_, err := UpdateShortcut(s, env, "docs", "https://x")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = AddShortcut(s, env, "docs", "https://x")
	require.NoError(t, err)
	_, err = AddShortcut(s, env, "wiki", "https://w")
	require.NoError(t, err)
	res, err := UpdateShortcut(s, env, "docs", "https://y")
	require.NoError(t, err)
	assert.True(t, res.Changed)

	keys, err := ShortcutKeys(s)
	require.NoError(t, err)
	assert.Equal(t, []string{"docs", "wiki"}, keys, "update keeps position")
}

func TestRenameAndRemoveShortcut(t *testing.T) {
	env := testEnv(t)
	s := withActive(t, "p")
	_, err := AddShortcut(s, env, "a", "https://a")
	require.NoError(t, err)
	_, err = AddShortcut(s, env, "b", "https://b")
	require.NoError(t, err)

	_, err = RenameShortcut(s, "ghost", "x")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = RenameShortcut(s, "a", "")
	require.ErrorIs(t, err, store.ErrInvalidName)

	res, err := RenameShortcut(s, "a", "b")
	require.NoError(t, err)
	assert.True(t, res.Changed)
	value, found, err := HasKey(s, "b")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "https://a", value)
	_, found, _ = HasKey(s, "a")
	assert.False(t, found)

	res, err = RemoveShortcut(s, "b")
	require.NoError(t, err)
	assert.Equal(t, "[p] removed 'b'", res.Message)
	_, err = RemoveShortcut(s, "b")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListShortcuts(t *testing.T) {
	env := testEnv(t)
	s := withActive(t, "p")
	listing, err := ListShortcuts(s, "")
	require.NoError(t, err)
	assert.Equal(t, 0, listing.Total)
	assert.NotNil(t, listing.Entries)

	_, err = AddShortcut(s, env, "src", "/code")
	require.NoError(t, err)
	_, err = AddShortcut(s, env, "docs", "https://x")
	require.NoError(t, err)

	listing, err = ListShortcuts(s, "url")
	require.NoError(t, err)
	assert.Equal(t, 2, listing.Total)
	require.Len(t, listing.Entries, 1)
	assert.Equal(t, "docs", listing.Entries[0].Key)

	_, err = ListShortcuts(s, "bogus")
	assert.ErrorIs(t, err, store.ErrInvalidName)
}

type recordingOpener struct {
	targets []string
	err     error
}

func (o *recordingOpener) Open(_ context.Context, target string) error {
	o.targets = append(o.targets, target)
	return o.err
}

func TestGoto(t *testing.T) {
	env := testEnv(t)
	s := withActive(t, "p")
	existing := t.TempDir()
	_, err := AddShortcut(s, env, "docs", "https://x")
	require.NoError(t, err)
	_, err = AddShortcut(s, env, "src", existing)
	require.NoError(t, err)
	_, err = AddShortcut(s, env, "gone", filepath.Join(existing, "missing"))
	require.NoError(t, err)

	opener := &recordingOpener{}
	r := &shortcut.Resolver{Expander: env.Expander, Opener: opener}

	res, err := Goto(context.Background(), s, r, "docs")
	require.NoError(t, err)
	assert.Equal(t, shortcut.KindURL, res.Resolution.Kind)
	assert.Equal(t, []string{"https://x"}, opener.targets)

	res, err = Goto(context.Background(), s, r, "src")
	require.NoError(t, err)
	assert.Equal(t, existing, res.Resolution.Target)
	assert.True(t, res.Resolution.Exists)

	_, err = Goto(context.Background(), s, r, "gone")
	require.ErrorIs(t, err, store.ErrResolution)

	_, err = Goto(context.Background(), s, r, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
	assert.Len(t, opener.targets, 1)

	opener.err = errors.New("no display")
	res, err = Goto(context.Background(), s, r, "docs")
	require.NoError(t, err, "opener failures are soft")
	assert.EqualError(t, res.Resolution.OpenErr, "no display")
}

func TestGotoDirectoryIsFileNotDir(t *testing.T) {
	env := testEnv(t)
	s := withActive(t, "p")
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err := AddShortcut(s, env, "f", file)
	require.NoError(t, err)

	_, err = Goto(context.Background(), s, &shortcut.Resolver{Expander: env.Expander}, "f")
	assert.ErrorIs(t, err, store.ErrResolution)
}

func TestActiveAlwaysNamesAProject(t *testing.T) {
	type step struct {
		name string
		run  func(s *store.Store) error
	}
	add := func(name string) step {
		return step{"add " + name, func(s *store.Store) error { _, err := AddProject(s, name, false); return err }}
	}
	sel := func(name string) step {
		return step{"select " + name, func(s *store.Store) error { _, err := SelectProject(s, name); return err }}
	}
	rename := func(old, new string, force bool) step {
		return step{"rename " + old + " " + new, func(s *store.Store) error {
			_, err := RenameProject(s, old, new, force)
			return err
		}}
	}
	remove := func(name string) step {
		return step{"remove " + name, func(s *store.Store) error { _, err := RemoveProject(s, name); return err }}
	}

	sequences := map[string][]step{
		"remove active then others": {add("a"), add("b"), add("c"), remove("c"), remove("a"), remove("b"), remove("b")},
		"rename active":             {add("a"), add("b"), sel("a"), rename("a", "z", false), remove("z"), sel("z")},
		"forced rename over active": {add("a"), add("b"), rename("a", "b", true), remove("b"), add("c")},
		"select missing":            {sel("ghost"), add("a"), sel("ghost"), rename("ghost", "x", false)},
		"remove inactive":           {add("a"), add("b"), remove("a"), sel("b"), rename("b", "b", false)},
	}

	for name, steps := range sequences {
		t.Run(name, func(t *testing.T) {
			s := store.New()
			for _, st := range steps {
				_ = st.run(s)
				if s.Active != "" {
					assert.True(t, s.HasProject(s.Active), "after %q active %q is not a project", st.name, s.Active)
				}
			}
		})
	}
}
