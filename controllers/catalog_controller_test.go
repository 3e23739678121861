package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilestoneCatalog(t *testing.T) {
	r := newTestRouter(newMockStore(), testOwner)

	w, resp := doRequest(t, r, http.MethodGet, "/api/v1/milestones/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)

	milestones := dataMap(t, resp)["milestones"].([]interface{})
	require.NotEmpty(t, milestones)
	first := milestones[0].(map[string]interface{})
	assert.Equal(t, "first-step", first["id"])
	assert.NotEmpty(t, first["title"])
	assert.NotEmpty(t, first["metric"])
}

func TestHabitOptions(t *testing.T) {
	r := newTestRouter(newMockStore(), testOwner)

	w, resp := doRequest(t, r, http.MethodGet, "/api/v1/config/habit-options", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, resp)
	assert.Len(t, data["types"].([]interface{}), 5)
	assert.Contains(t, data["types"], "avoidance")
	assert.Len(t, data["statuses"].([]interface{}), 3)
	assert.Len(t, data["weekdays"].([]interface{}), 7)
}
