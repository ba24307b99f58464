package commands

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlround/pkg/engine"
	"github.com/spf13/cobra"
)

// stdinName names standard input in messages and results.
const stdinName = "<stdin>"

// sqlExt is the extension of files picked up from directories.
const sqlExt = ".sql"

// readInputs loads the SQL named by args. No arguments, or a single "-",
// reads standard input. Directories are walked for .sql files.
func readInputs(cmd *cobra.Command, args []string) ([]engine.Input, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return []engine.Input{{Name: stdinName, SQL: string(data)}}, nil
	}

	paths, err := expandPaths(args)
	if err != nil {
		return nil, err
	}
	inputs := make([]engine.Input, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path) //nolint:gosec // user supplied path
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		inputs = append(inputs, engine.Input{Name: path, SQL: string(data)})
	}
	return inputs, nil
}

// expandPaths replaces directories with the .sql files below them, in
// lexical order. Files named explicitly are kept whatever their extension.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if isSQLFile(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		for _, p := range found {
			add(p)
		}
	}
	return paths, nil
}

func isSQLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), sqlExt)
}

// writeFile replaces a file's content, keeping its permissions.
func writeFile(path, content string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	return os.WriteFile(path, []byte(content), mode)
}
