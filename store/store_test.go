package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWrapMapsRecordNotFound(t *testing.T) {
	err := wrap("get habit", gorm.ErrRecordNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, wrap("noop", nil))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := wrap("list events", cause)

	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "list events", se.Op)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store: list events: connection refused", err.Error())
}
