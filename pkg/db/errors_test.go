package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := errors.New(`ERROR: duplicate key value violates unique constraint "carts_order_no_key" (SQLSTATE 23505)`)

	assert.True(t, IsUniqueViolation(dup, ""))
	assert.True(t, IsUniqueViolation(dup, "carts_order_no_key"))
	assert.False(t, IsUniqueViolation(dup, "customers_ccode_key"))
	assert.False(t, IsUniqueViolation(errors.New("connection refused"), ""))
	assert.False(t, IsUniqueViolation(nil, "carts_order_no_key"))
}
