package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	partnerapp "github.com/erp/docimport/internal/application/partner"
	"github.com/erp/docimport/internal/infrastructure/ubl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const fixtures = "../../internal/infrastructure/ubl/testdata"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "partners.yaml"), []byte(content), 0o600))
	return dir
}

func dbFlags(t *testing.T) []string {
	t.Helper()
	return []string{"--db-driver", "sqlite", "--db-path", filepath.Join(t.TempDir(), "directory.db")}
}

func TestDetectCmd(t *testing.T) {
	out, err := execute(t, "detect", filepath.Join(fixtures, "order.xml"))
	require.NoError(t, err)
	assert.Equal(t, "order\n", out)

	out, err = execute(t, "detect", filepath.Join(fixtures, "rfq.xml"))
	require.NoError(t, err)
	assert.Equal(t, "rfq\n", out)
}

func TestDetectCmd_UnsupportedDocument(t *testing.T) {
	_, err := execute(t, "detect", filepath.Join(fixtures, "invoice.xml"))
	assert.ErrorIs(t, err, ubl.ErrFormatMismatch)
}

func TestDetectCmd_MissingFile(t *testing.T) {
	_, err := execute(t, "detect", filepath.Join(t.TempDir(), "missing.xml"))
	assert.Error(t, err)
}

func TestParseCmd_JSON(t *testing.T) {
	out, err := execute(t, "parse", filepath.Join(fixtures, "order.xml"))
	require.NoError(t, err)

	var order map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &order))
	assert.Equal(t, "order", order["doc_type"])
	assert.Equal(t, "PO-2024-0042", order["order_ref"])
	assert.Len(t, order["lines"], 3)
}

func TestParseCmd_YAML(t *testing.T) {
	out, err := execute(t, "parse", filepath.Join(fixtures, "order.xml"), "--output", "yaml", "--precision", "2")
	require.NoError(t, err)

	var order map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &order))
	assert.Equal(t, "PO-2024-0042", order["order_ref"])
	assert.Contains(t, out, "doc_type: order")
}

func TestParseCmd_UnknownOutput(t *testing.T) {
	_, err := execute(t, "parse", filepath.Join(fixtures, "order.xml"), "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

const directorySeed = `
categories:
  - code: "0088"
    name: GLN
  - code: "0007"
    name: Swedish organisation number
partners:
  - name: Johnssons byggvaror
    vat: SE5560123456701
    identifiers:
      - scheme: "0088"
        value: "7300010000001"
    contacts:
      - name: Gunnar Johnsson
        email: gunnar@johnssons.example
`

func TestSeedAndMatch_IdentifierWithContact(t *testing.T) {
	flags := dbFlags(t)

	out, err := execute(t, append([]string{"seed", writeSeed(t, directorySeed)}, flags...)...)
	require.NoError(t, err)

	var stats seedStats
	require.NoError(t, yaml.Unmarshal([]byte(out), &stats))
	assert.Equal(t, seedStats{Categories: 2, Partners: 1, Contacts: 1, Identifiers: 1}, stats)

	out, err = execute(t, append([]string{"match", filepath.Join(fixtures, "order.xml")}, flags...)...)
	require.NoError(t, err)

	var report matchReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "PO-2024-0042", report.OrderRef)
	assert.Equal(t, "identifier", report.Strategy)
	assert.Equal(t, string(partnerapp.OutcomeMatchedContact), report.Outcome)
	assert.Equal(t, "Gunnar Johnsson", report.PartnerName)
	assert.Equal(t, "Johnssons byggvaror", report.CompanyName)
	assert.NotEmpty(t, report.CompanyID)
}

func TestSeedAndMatch_UnmatchedIdentifiers(t *testing.T) {
	flags := dbFlags(t)
	seed := `
categories:
  - code: "0088"
  - code: "0007"
`
	_, err := execute(t, append([]string{"seed", writeSeed(t, seed)}, flags...)...)
	require.NoError(t, err)

	out, err := execute(t, append([]string{"match", filepath.Join(fixtures, "order.xml"), "-o", "yaml"}, flags...)...)

	var unmatched *partnerapp.UnmatchedPartnerError
	require.ErrorAs(t, err, &unmatched)
	assert.Len(t, unmatched.Unmatched, 2)

	var report matchReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &report))
	assert.Equal(t, string(partnerapp.OutcomeUnmatched), report.Outcome)
	require.Len(t, report.Unmatched, 2)
	assert.Equal(t, "7300010000001", report.Unmatched[0].Value)
	assert.Equal(t, "5560123456", report.Unmatched[1].Value)
}

func TestSeedCmd_ReusesCategories(t *testing.T) {
	flags := dbFlags(t)
	dir := writeSeed(t, directorySeed)

	_, err := execute(t, append([]string{"seed", dir}, flags...)...)
	require.NoError(t, err)

	out, err := execute(t, append([]string{"seed", dir, "-o", "json"}, flags...)...)
	require.NoError(t, err)

	var stats seedStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 0, stats.Categories)
	assert.Equal(t, 1, stats.Partners)
}

func TestSeedCmd_UnknownScheme(t *testing.T) {
	seed := `
partners:
  - name: Acme
    identifiers:
      - scheme: "9999"
        value: "1"
`
	_, err := execute(t, append([]string{"seed", writeSeed(t, seed)}, dbFlags(t)...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown identifier scheme "9999"`)
}

func TestSeedCmd_EmptyDirectory(t *testing.T) {
	_, err := execute(t, append([]string{"seed", t.TempDir()}, dbFlags(t)...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no seed files")
}
