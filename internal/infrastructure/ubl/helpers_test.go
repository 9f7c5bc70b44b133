package ubl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

const nsDecl = `xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2" ` +
	`xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"`

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

// patchFixture loads a fixture and applies old/new replacement pairs
func patchFixture(t *testing.T, name string, pairs ...string) []byte {
	t.Helper()
	require.Zero(t, len(pairs)%2, "pairs must come in old/new couples")
	content := string(readFixture(t, name))
	for i := 0; i < len(pairs); i += 2 {
		require.Contains(t, content, pairs[i])
		content = strings.Replace(content, pairs[i], pairs[i+1], 1)
	}
	return []byte(content)
}

func parseXML(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

// orderRoot wraps body in an Order root declaring the cac and cbc prefixes
func orderRoot(t *testing.T, body string) *etree.Element {
	t.Helper()
	return parseXML(t, `<Order xmlns="urn:oasis:names:specification:ubl:schema:xsd:Order-2" `+
		nsDecl+`>`+body+`</Order>`)
}
