package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag/v2"
)

func TestSwaggerDocument(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Info struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage           `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "UBL Order Import API", doc.Info.Title)
	assert.Equal(t, "1.0", doc.Info.Version)
	assert.Contains(t, doc.Paths["/api/v1/imports/ubl-orders"], "post")
	assert.Contains(t, doc.Paths["/api/v1/imports/ubl-orders/detect"], "post")
	assert.Contains(t, doc.Paths["/health"], "get")
	for _, name := range []string{"dto.Response", "dto.ImportResponse", "dto.DetectResponse", "dto.HealthResponse", "trade.CanonicalOrder"} {
		assert.Contains(t, doc.Definitions, name)
	}
}
