//go:build governance

package core_test

import (
	"slices"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/leapstack-labs/sqlround"

// layers lists, for each library package, the module packages it may
// import. Dialect implementations sit beside pkg/dialect.
var layers = map[string][]string{
	"pkg/token":   {},
	"pkg/core":    {"pkg/token"},
	"pkg/dialect": {"pkg/token", "pkg/core"},
	"pkg/parser":  {"pkg/token", "pkg/core", "pkg/dialect"},
	"pkg/format":  {"pkg/token", "pkg/core", "pkg/dialect"},
	"pkg/engine": {
		"pkg/token", "pkg/core", "pkg/dialect", "pkg/parser", "pkg/format",
		"pkg/dialects/generic", "pkg/dialects/mssql", "pkg/dialects/postgres", "pkg/dialects/sqlanywhere",
	},
}

// forbiddenInLibrary are stdlib packages library code must not use: the
// caller owns logging and process state.
var forbiddenInLibrary = []string{"log", "log/slog", "os"}

func loadModule(t *testing.T) []*packages.Package {
	t.Helper()
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports}
	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}
	return pkgs
}

// TestGovernance_Layering verifies the library packages only depend
// downwards.
func TestGovernance_Layering(t *testing.T) {
	base := modulePath + "/"
	for _, p := range loadModule(t) {
		rel := strings.TrimPrefix(p.PkgPath, base)
		allowed, ok := layers[rel]
		if !ok && strings.HasPrefix(rel, "pkg/dialects/") {
			allowed, ok = []string{"pkg/token", "pkg/core", "pkg/dialect"}, true
		}
		if !ok {
			continue
		}

		for imp := range p.Imports {
			dep, inModule := strings.CutPrefix(imp, base)
			if !inModule {
				continue
			}
			if !slices.Contains(allowed, dep) {
				t.Errorf("%s imports %s, which is not below it", rel, dep)
			}
		}
	}
}

// TestGovernance_LibraryPurity verifies pkg/* never imports internal/*
// and never logs.
func TestGovernance_LibraryPurity(t *testing.T) {
	base := modulePath + "/"
	for _, p := range loadModule(t) {
		rel := strings.TrimPrefix(p.PkgPath, base)
		if !strings.HasPrefix(rel, "pkg/") {
			continue
		}
		for imp := range p.Imports {
			if strings.HasPrefix(imp, base+"internal/") {
				t.Errorf("%s imports internal package %s", rel, imp)
			}
			if slices.Contains(forbiddenInLibrary, imp) && !allowedStdlib(rel, imp) {
				t.Errorf("%s imports %s", rel, imp)
			}
		}
	}
}

// allowedStdlib lists the exceptions to forbiddenInLibrary.
func allowedStdlib(pkg, imp string) bool {
	// Batch accepts a caller-supplied logger.
	return pkg == "pkg/engine" && imp == "log/slog"
}
