package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_DollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "status").
		From("bookings").
		Where(squirrel.Eq{"salon_id": "s-1"}).
		Where(squirrel.Eq{"status": []string{"PENDING", "CONFIRMED"}}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, status FROM bookings WHERE salon_id = $1 AND status IN ($2,$3)", query)
	assert.Equal(t, []interface{}{"s-1", "PENDING", "CONFIRMED"}, args)
}

func TestUpdate_DollarPlaceholders(t *testing.T) {
	query, args, err := Update("services").
		Set("active", false).
		Where(squirrel.Eq{"id": "svc-1"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE services SET active = $1 WHERE id = $2", query)
	assert.Equal(t, []interface{}{false, "svc-1"}, args)
}
