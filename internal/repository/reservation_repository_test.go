package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
)

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?,?,?", placeholders(3))
}

func TestListQuery(t *testing.T) {
	q, args := listQuery(5, nil, charter.HardStatuses())
	assert.Contains(t, q, "vessel_id = ?")
	assert.Contains(t, q, "status IN (?,?)")
	assert.NotContains(t, q, "operator_id")
	assert.Equal(t, []interface{}{uint64(5), "CONFIRMED", "ACTIVE"}, args)

	op := uint64(9)
	q, args = listQuery(5, &op, nil)
	assert.Contains(t, q, "operator_id = ?")
	assert.NotContains(t, q, "status IN")
	assert.Equal(t, []interface{}{uint64(5), uint64(9)}, args)
}
