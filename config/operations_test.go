package config

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestOperationsSetAndClear(t *testing.T) {
	var op Operations

	assert.Equal(t, op, Operations(0))
	assert.False(t, op.IsSupported(Insert))

	op.Set(Insert | Update)
	assert.True(t, op.IsSupported(Insert))
	assert.True(t, op.IsSupported(Update))

	op.Clear(Insert)
	assert.False(t, op.IsSupported(Insert))
	assert.True(t, op.IsSupported(Update))
}

func TestOperationsAdd(t *testing.T) {
	op, err := Ops("Insert", "Update")
	assert.NoError(t, err)
	assert.Equal(t, AllOperations, op)
	assert.Equal(t, "Insert,Update", op.String())

	op, err = Ops("Update", "")
	assert.NoError(t, err)
	assert.False(t, op.IsSupported(Insert))
	assert.Equal(t, "Update", op.String())
}

func TestOperationsAddInvalid(t *testing.T) {
	_, err := Ops("Insert", "Delete")
	assert.EqualError(t, err, "invalid operation: Delete")
}
