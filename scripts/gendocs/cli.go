package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/sqlround/internal/cli"
	"github.com/leapstack-labs/sqlround/internal/cli/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// envVars documents the most used environment overrides. Every config key
// has one; these are the ones worth listing.
var envVars = [][2]string{
	{"DIALECT", "Dialect used to parse and render SQL"},
	{"OUTPUT", "Output mode"},
	{"FORMAT__INDENT", "Formatter indent width"},
	{"FORMAT__KEYWORD_CASE", "Formatter keyword case (upper or lower)"},
	{"PARSER__MAX_DEPTH", "Maximum expression nesting depth"},
	{"WATCH__DEBOUNCE", "Delay before a changed file is checked"},
	{"SERVE__ADDR", "Listen address of the HTTP API"},
	{"LOG__LEVEL", "Log level"},
}

// generateCLIDocs writes an index page and one page per visible command.
func generateCLIDocs(outDir string) error {
	log.Printf("Generating CLI docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	root := cli.NewRootCmd()
	cmds := visibleCommands(root)

	if err := writePage(outDir, "index", cliIndex(root, cmds)); err != nil {
		return fmt.Errorf("failed to generate index: %w", err)
	}
	log.Printf("  Generated index.md")

	for _, cmd := range cmds {
		if err := writePage(outDir, cmd.Name(), commandPage(cmd, cmds)); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", cmd.Name(), err)
		}
		log.Printf("  Generated %s.md", cmd.Name())
	}
	return nil
}

func writePage(dir, name string, w *MarkdownWriter) error {
	return os.WriteFile(filepath.Join(dir, name+".md"), w.Bytes(), 0600)
}

func visibleCommands(root *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, cmd := range root.Commands() {
		if !cmd.IsAvailableCommand() {
			continue
		}
		out = append(out, cmd)
	}
	return out
}

func cliIndex(root *cobra.Command, cmds []*cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter("CLI Reference", "Command-line interface reference for sqlround")
	w.GeneratedMarker()

	w.Header(1, "CLI Reference")
	w.Paragraph("sqlround parses SQL in one dialect and renders it back, either reconstructed for a target dialect or formatted for reading.")

	w.Header(2, "Installation")
	w.CodeBlock("bash", "go install github.com/leapstack-labs/sqlround/cmd/sqlround@latest")

	w.Header(2, "Commands")
	rows := make([][]string, 0, len(cmds))
	for _, cmd := range cmds {
		rows = append(rows, []string{commandLink(cmd), cleanDescription(cmd.Short)})
	}
	w.Table([]string{"Command", "Description"}, rows)

	w.Header(2, "Global Options")
	w.Paragraph("These flags are available for all commands:")
	flagTable(w, root.PersistentFlags())

	w.Header(2, "Configuration")
	w.Paragraph("Settings are read, later sources winning, from built-in defaults, " +
		InlineCode("sqlround.yaml") + " or " + InlineCode(".sqlround.yaml") + " in the working directory (or " +
		InlineCode("--config") + "), environment variables, and command-line flags.")
	w.Paragraph("Every config key can be set from the environment with the " + InlineCode(config.EnvPrefix) +
		" prefix. A double underscore separates nested keys:")
	envRows := make([][]string, 0, len(envVars))
	for _, v := range envVars {
		envRows = append(envRows, []string{InlineCode(config.EnvPrefix + v[0]), v[1]})
	}
	w.Table([]string{"Variable", "Description"}, envRows)

	w.Header(2, "Exit Codes")
	w.Table([]string{"Code", "Meaning"}, [][]string{
		{InlineCode("0"), "Success"},
		{InlineCode("1"), "Error, including parse errors and files that --check found unformatted"},
	})

	w.Header(2, "Getting Help")
	w.CodeBlock("bash", "sqlround --help\nsqlround format --help")
	return w
}

func commandLink(cmd *cobra.Command) string {
	return fmt.Sprintf("[%s](/cli/%s)", InlineCode(cmd.Name()), cmd.Name())
}

func commandPage(cmd *cobra.Command, all []*cobra.Command) *MarkdownWriter {
	w := NewMarkdownWriter()
	w.Frontmatter(cmd.Name(), cmd.Short)
	w.GeneratedMarker()

	w.Header(1, cmd.Name())
	w.Paragraph(firstNonEmpty(cmd.Long, cmd.Short))

	w.Header(2, "Usage")
	w.CodeBlock("bash", strings.TrimSuffix(cmd.UseLine(), " [flags]"))

	if len(cmd.Aliases) > 0 {
		w.Header(2, "Aliases")
		aliases := make([]string, len(cmd.Aliases))
		for i, a := range cmd.Aliases {
			aliases[i] = InlineCode(a)
		}
		w.BulletList(aliases)
	}

	if cmd.HasAvailableLocalFlags() {
		w.Header(2, "Options")
		flagTable(w, cmd.LocalNonPersistentFlags())
	}

	if cmd.Example != "" {
		w.Header(2, "Examples")
		w.CodeBlock("bash", dedent(cmd.Example))
	}

	w.Header(2, "See Also")
	var links []string
	links = append(links, "[CLI Reference](/cli/) for global options")
	for _, other := range all {
		if other != cmd {
			links = append(links, commandLink(other))
		}
	}
	w.BulletList(links)
	return w
}

// flagTable lists flags with their type and default.
func flagTable(w *MarkdownWriter, flags *pflag.FlagSet) {
	var rows [][]string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := InlineCode("--" + f.Name)
		if f.Shorthand != "" {
			name = InlineCode("-"+f.Shorthand) + ", " + name
		}
		def := ""
		if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
			def = InlineCode(f.DefValue)
		}
		rows = append(rows, []string{name, f.Value.Type(), def, cleanDescription(f.Usage)})
	})
	w.Table([]string{"Flag", "Type", "Default", "Description"}, rows)
}

// dedent strips the indentation shared by every non-blank line.
func dedent(s string) string {
	lines := strings.Split(strings.Trim(s, "\n"), "\n")
	common := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		if n := len(line) - len(trimmed); common < 0 || n < common {
			common = n
		}
	}
	for i, line := range lines {
		if len(line) >= common && common > 0 {
			lines[i] = line[common:]
		}
	}
	return strings.Join(lines, "\n")
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
