package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(rawQuery string) Params {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return Parse(c)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected Params
	}{
		{"defaults", "", Params{Page: 1, Limit: 12, Offset: 0}},
		{"explicit", "page=3&limit=20", Params{Page: 3, Limit: 20, Offset: 40}},
		{"zero page falls back", "page=0", Params{Page: 1, Limit: 12, Offset: 0}},
		{"negative page falls back", "page=-2", Params{Page: 1, Limit: 12, Offset: 0}},
		{"zero limit falls back", "limit=0", Params{Page: 1, Limit: 12, Offset: 0}},
		{"limit capped", "limit=10000", Params{Page: 1, Limit: 100, Offset: 0}},
		{"garbage falls back", "page=abc&limit=xyz", Params{Page: 1, Limit: 12, Offset: 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, paramsFor(tc.query))
		})
	}
}
