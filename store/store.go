package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"runer/logging"
	"runer/model"
)

// DefaultFile is the backing file name, relative to the working directory.
const DefaultFile = ".projecto.json"

// ReadError means the backing file exists but could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string { return fmt.Sprintf("reading %s: %v", e.Path, e.Err) }
func (e *ReadError) Unwrap() error { return e.Err }

// ParseError means the backing file is not a JSON array of commands.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parsing %s: %v", e.Path, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// EncodeError means the in-memory commands could not be serialized.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("serializing commands: %v", e.Err) }
func (e *EncodeError) Unwrap() error { return e.Err }

// WriteError means the serialized commands could not be written to disk.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("writing %s: %v", e.Path, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

type Store struct {
	path     string
	Commands []model.Command
}

// Load reads the backing file at path. A missing file yields an empty store.
func Load(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.L().Debugw("backing file absent, starting empty", "path", path)
			return s, nil
		}
		return nil, &ReadError{Path: path, Err: err}
	}

	cmds, err := decode(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	s.Commands = cmds
	logging.L().Debugw("loaded commands", "path", path, "count", len(s.Commands))
	return s, nil
}

// decode is stricter than json.Unmarshal into []model.Command: keys match
// exactly, name and cmd must be present strings, and the file must be UTF-8.
func decode(data []byte) ([]model.Command, error) {
	if !utf8.Valid(data) {
		return nil, errors.New("file is not valid UTF-8")
	}

	var records []map[string]json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	cmds := make([]model.Command, 0, len(records))
	for i, fields := range records {
		name, err := requiredString(fields, "name")
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		cmd, err := requiredString(fields, "cmd")
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		desc, err := optionalString(fields, "desc")
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		cmds = append(cmds, model.Command{Name: name, Cmd: cmd, Desc: desc})
	}
	return cmds, nil
}

func requiredString(fields map[string]json.RawMessage, key string) (string, error) {
	v, err := optionalString(fields, key)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", fmt.Errorf("missing field %q", key)
	}
	return *v, nil
}

// optionalString treats an absent key and a JSON null alike.
func optionalString(fields map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return nil, nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("field %q: %w", key, err)
	}
	return &v, nil
}

func (s *Store) Path() string {
	return s.path
}

// Save rewrites the whole backing file. The content lands in a temp file
// next to the target and is renamed into place after an fsync.
func (s *Store) Save() error {
	cmds := s.Commands
	if cmds == nil {
		cmds = []model.Command{}
	}
	data, err := json.MarshalIndent(cmds, "", "  ")
	if err != nil {
		return &EncodeError{Err: err}
	}

	if err := writeAtomic(s.path, data); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	logging.L().Debugw("saved commands", "path", s.path, "count", len(cmds))
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// Find returns the first command named exactly name.
func (s *Store) Find(name string) (*model.Command, bool) {
	for i := range s.Commands {
		if s.Commands[i].Name == name {
			return &s.Commands[i], true
		}
	}
	return nil, false
}

// Upsert updates the command called name in place, or appends a new one.
// On update the description is only replaced when desc is non-nil.
// prev holds the record as it was before the update.
func (s *Store) Upsert(name, cmd string, desc *string) (prev model.Command, updated bool) {
	if existing, ok := s.Find(name); ok {
		prev = *existing
		existing.Cmd = cmd
		if desc != nil {
			d := *desc
			existing.Desc = &d
		}
		return prev, true
	}

	s.Commands = append(s.Commands, model.Command{Name: name, Cmd: cmd, Desc: desc})
	return model.Command{}, false
}

// Remove drops every command named name and reports how many went.
func (s *Store) Remove(name string) int {
	kept := s.Commands[:0]
	for _, c := range s.Commands {
		if c.Name != name {
			kept = append(kept, c)
		}
	}
	removed := len(s.Commands) - len(kept)
	s.Commands = kept
	return removed
}

func (s *Store) Names() []string {
	names := make([]string, len(s.Commands))
	for i, c := range s.Commands {
		names[i] = c.Name
	}
	return names
}
