package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"runer/model"
)

func strPtr(s string) *string { return &s }

func tempPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), DefaultFile)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s, err := Load(tempPath(t))
	require.NoError(t, err)
	require.Empty(t, s.Commands)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := tempPath(t)
	s, err := Load(path)
	require.NoError(t, err)

	want := []model.Command{
		{Name: "build", Cmd: "make all", Desc: strPtr("Build project")},
		{Name: "test", Cmd: "go test ./...", Desc: nil},
		{Name: "lint", Cmd: "golangci-lint run | tee lint.txt", Desc: strPtr("")},
	}
	s.Commands = want
	require.NoError(t, s.Save())

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want, loaded.Commands)
}

func TestSaveFormat(t *testing.T) {
	path := tempPath(t)
	s, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, s.Save())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[]", string(data))

	s.Upsert("build", "make all", nil)
	require.NoError(t, s.Save())
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "[\n  {\n    \"name\": \"build\",\n    \"cmd\": \"make all\",\n    \"desc\": null\n  }\n]", string(data))
}

func TestLoadAcceptsMissingDesc(t *testing.T) {
	path := tempPath(t)
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"a","cmd":"echo a"}]`), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	require.Len(t, s.Commands, 1)
	require.Nil(t, s.Commands[0].Desc)
}

func TestLoadIgnoresUnknownFields(t *testing.T) {
	path := tempPath(t)
	data := `[{"name":"a","cmd":"echo a","desc":null,"tags":["x"]},{"name":"","cmd":""}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []model.Command{{Name: "a", Cmd: "echo a"}, {Name: "", Cmd: ""}}, s.Commands)
}

func TestLoadErrors(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		path := tempPath(t)
		require.NoError(t, os.WriteFile(path, []byte(`{"name": "not an array"}`), 0o644))

		_, err := Load(path)
		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr), "got %v", err)
		require.Equal(t, path, parseErr.Path)
	})

	for _, tt := range []struct {
		name string
		data string
	}{
		{"empty record", `[{}]`},
		{"desc only", `[{"desc":"x"}]`},
		{"null name and cmd", `[{"name":null,"cmd":null}]`},
		{"missing cmd", `[{"name":"a"}]`},
		{"case folded keys", `[{"NAME":"a","CMD":"b"}]`},
		{"non string cmd", `[{"name":"a","cmd":42}]`},
		{"non string desc", `[{"name":"a","cmd":"b","desc":true}]`},
		{"null record", `[null]`},
		{"invalid utf8", "[{\"name\":\"\xff\",\"cmd\":\"b\"}]"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			path := tempPath(t)
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0o644))

			s, err := Load(path)
			require.Nil(t, s)
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr), "got %v", err)
		})
	}

	t.Run("unreadable", func(t *testing.T) {
		// a directory in place of the file cannot be read
		path := tempPath(t)
		require.NoError(t, os.Mkdir(path, 0o755))

		_, err := Load(path)
		var readErr *ReadError
		require.True(t, errors.As(err, &readErr), "got %v", err)
	})
}

func TestSaveWriteError(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing", DefaultFile))
	require.NoError(t, err)

	err = s.Save()
	var writeErr *WriteError
	require.True(t, errors.As(err, &writeErr), "got %v", err)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := Load(filepath.Join(dir, DefaultFile))
	require.NoError(t, err)

	s.Upsert("build", "make all", nil)
	require.NoError(t, s.Save())
	s.Upsert("build", "make clean", nil)
	require.NoError(t, s.Save())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, DefaultFile, entries[0].Name())
}

func TestUpsert(t *testing.T) {
	tests := []struct {
		name        string
		addName     string
		addCmd      string
		addDesc     *string
		wantUpdated bool
		want        []model.Command
	}{
		{
			name:    "new name appends",
			addName: "deploy", addCmd: "./deploy.sh", addDesc: strPtr("Ship it"),
			want: []model.Command{
				{Name: "build", Cmd: "make all", Desc: strPtr("Build project")},
				{Name: "test", Cmd: "go test ./..."},
				{Name: "deploy", Cmd: "./deploy.sh", Desc: strPtr("Ship it")},
			},
		},
		{
			name:    "existing name keeps position and description",
			addName: "build", addCmd: "make clean",
			wantUpdated: true,
			want: []model.Command{
				{Name: "build", Cmd: "make clean", Desc: strPtr("Build project")},
				{Name: "test", Cmd: "go test ./..."},
			},
		},
		{
			name:    "existing name with description replaces it",
			addName: "test", addCmd: "go test -race ./...", addDesc: strPtr("Race tests"),
			wantUpdated: true,
			want: []model.Command{
				{Name: "build", Cmd: "make all", Desc: strPtr("Build project")},
				{Name: "test", Cmd: "go test -race ./...", Desc: strPtr("Race tests")},
			},
		},
		{
			name:    "names are case sensitive",
			addName: "Build", addCmd: "make",
			want: []model.Command{
				{Name: "build", Cmd: "make all", Desc: strPtr("Build project")},
				{Name: "test", Cmd: "go test ./..."},
				{Name: "Build", Cmd: "make"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Store{Commands: []model.Command{
				{Name: "build", Cmd: "make all", Desc: strPtr("Build project")},
				{Name: "test", Cmd: "go test ./..."},
			}}

			_, updated := s.Upsert(tt.addName, tt.addCmd, tt.addDesc)
			require.Equal(t, tt.wantUpdated, updated)
			require.Equal(t, tt.want, s.Commands)
		})
	}
}

func TestUpsertReturnsPrevious(t *testing.T) {
	s := &Store{}
	s.Upsert("build", "make all", nil)

	prev, updated := s.Upsert("build", "make clean", nil)
	require.True(t, updated)
	require.Equal(t, "make all", prev.Cmd)
}

func TestFindIsExactMatch(t *testing.T) {
	s := &Store{Commands: []model.Command{{Name: "foo", Cmd: "echo foo"}}}

	for _, name := range []string{"Foo", "FOO", " foo", "foo ", "fo"} {
		_, ok := s.Find(name)
		require.False(t, ok, "%q should not match", name)
	}

	c, ok := s.Find("foo")
	require.True(t, ok)
	require.Equal(t, "echo foo", c.Cmd)
}

func TestRemove(t *testing.T) {
	s := &Store{Commands: []model.Command{
		{Name: "a", Cmd: "1"},
		{Name: "dup", Cmd: "2"},
		{Name: "b", Cmd: "3"},
		{Name: "dup", Cmd: "4"},
	}}

	require.Equal(t, 2, s.Remove("dup"))
	require.Equal(t, []string{"a", "b"}, s.Names())

	require.Equal(t, 0, s.Remove("missing"))
	require.Equal(t, []string{"a", "b"}, s.Names())
}
