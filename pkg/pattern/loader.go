package pattern

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load parses, validates and compiles a YAML rule file.
func Load(data []byte) (*RuleFile, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var rf RuleFile
	if err := dec.Decode(&rf); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if errs := rf.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid rule file: %w", errs)
	}

	if err := rf.Compile(); err != nil {
		return nil, fmt.Errorf("compiling rule file %q: %w", rf.ID, err)
	}

	return &rf, nil
}

// LoadFS loads a single rule file from fsys.
func LoadFS(fsys fs.FS, name string) (*RuleFile, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	rf, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return rf, nil
}

// LoadFile loads a single rule file from disk.
func LoadFile(p string) (*RuleFile, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	rf, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return rf, nil
}

// LoadDirectory loads all YAML rule files from a directory on disk.
func LoadDirectory(dir string) ([]*RuleFile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return LoadFSDir(os.DirFS(dir), ".")
}

// LoadFSDir loads all YAML rule files directly under dir in fsys, sorted by
// file name. Every file is attempted; failures are joined. Duplicate ids are
// reported as errors.
func LoadFSDir(fsys fs.FS, dir string) ([]*RuleFile, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsRuleFileName(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var (
		files      []*RuleFile
		loadErrors []error
		seen       = make(map[string]string)
	)
	for _, name := range names {
		rf, err := LoadFS(fsys, path.Join(dir, name))
		if err != nil {
			loadErrors = append(loadErrors, err)
			continue
		}
		if prev, ok := seen[rf.ID]; ok {
			loadErrors = append(loadErrors, fmt.Errorf("%s: id %q already defined in %s", name, rf.ID, prev))
			continue
		}
		seen[rf.ID] = name
		files = append(files, rf)
	}

	if len(loadErrors) > 0 {
		return files, fmt.Errorf("errors loading rule files: %w", errors.Join(loadErrors...))
	}
	return files, nil
}

// IsRuleFileName reports whether name has a YAML extension.
func IsRuleFileName(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
