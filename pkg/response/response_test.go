package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessWithPagination_TotalPages(t *testing.T) {
	resp := SuccessWithPagination(200, nil, 1, 12, 25)
	assert.Equal(t, "success", resp.Status)
	assert.EqualValues(t, 3, resp.Meta.TotalPages)

	resp = SuccessWithPagination(200, nil, 1, 12, 24)
	assert.EqualValues(t, 2, resp.Meta.TotalPages)

	resp = SuccessWithPagination(200, nil, 1, 12, 0)
	assert.EqualValues(t, 0, resp.Meta.TotalPages)
}

func TestError(t *testing.T) {
	resp := Error(404, "not found")
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "not found", resp.Error)
	assert.Nil(t, resp.Data)
}
