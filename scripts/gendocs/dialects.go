package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/sqlround/pkg/dialect"
	"github.com/leapstack-labs/sqlround/pkg/engine"
)

var featureNames = []struct {
	feature dialect.Feature
	name    string
}{
	{dialect.FeatureNullsOrdering, "ORDER BY ... NULLS FIRST/LAST"},
	{dialect.FeatureReturning, "RETURNING clause"},
	{dialect.FeatureCastOperator, "`::` cast operator"},
	{dialect.FeatureIlike, "ILIKE"},
	{dialect.FeatureNationalStrings, "N'...' strings"},
	{dialect.FeatureTopStartAt, "TOP n START AT m"},
	{dialect.FeatureIdentity, "IDENTITY(seed, increment)"},
	{dialect.FeatureAutoIncrement, "DEFAULT AUTOINCREMENT"},
	{dialect.FeatureClusteredIndex, "CLUSTERED indexes"},
	{dialect.FeatureConcatOperator, "`||` concatenation"},
}

// generateDialectDocs writes an index of every dialect and one page per
// implemented dialect.
func generateDialectDocs(outDir string) error {
	log.Printf("Generating dialect docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	infos := engine.Describe()

	w := NewMarkdownWriter()
	w.Frontmatter("Dialects", "SQL dialects supported by sqlround")
	w.GeneratedMarker()
	w.Header(1, "Dialects")
	w.Paragraph("Select a dialect with `--dialect`, the `dialect` config key or `SQLROUND_DIALECT`.")

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		name := info.Name
		if info.Implemented {
			name = fmt.Sprintf("[%s](/dialects/%s)", info.Name, info.ID)
		} else {
			name = "not supported"
		}
		rows = append(rows, []string{InlineCode(info.ID), name, info.Quote, strings.Join(info.LimitForms, ", ")})
	}
	w.Table([]string{"ID", "Dialect", "Default quoting", "Row limits"}, rows)

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, info := range infos {
		if !info.Implemented {
			continue
		}
		id, err := dialect.ParseID(info.ID)
		if err != nil {
			return err
		}
		d, _ := dialect.Get(id)
		if err := generateDialectPage(d, info, outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", info.ID, err)
		}
		log.Printf("  Generated %s.md", info.ID)
	}
	return nil
}

func generateDialectPage(d *dialect.Dialect, info engine.DialectInfo, outDir string) error {
	w := NewMarkdownWriter()
	w.Frontmatter(d.Name, d.Name+" dialect reference")
	w.GeneratedMarker()
	w.Header(1, d.Name)

	w.Header(2, "Usage")
	w.CodeBlock("bash", "sqlround reconstruct --dialect "+info.ID+" query.sql")

	w.Header(2, "Syntax")
	items := []string{
		"Default identifier quoting: " + InlineCode(info.Quote),
		"Row limits: " + strings.Join(info.LimitForms, ", "),
	}
	for _, f := range featureNames {
		if d.Supports(f.feature) {
			items = append(items, f.name)
		}
	}
	w.BulletList(items)

	keywords := d.Keywords()
	var reserved, other []string
	for _, kw := range keywords {
		if d.IsReservedWord(kw) {
			reserved = append(reserved, InlineCode(kw))
		} else {
			other = append(other, InlineCode(kw))
		}
	}

	w.Header(2, "Reserved words")
	w.Paragraph("These words are quoted when used as identifiers.")
	w.Paragraph(strings.Join(reserved, " "))

	if len(other) > 0 {
		w.Header(2, "Other keywords")
		w.Paragraph(strings.Join(other, " "))
	}

	return os.WriteFile(filepath.Join(outDir, info.ID+".md"), w.Bytes(), 0600)
}
