package repositories

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memberRow struct {
	UserID int     `json:"user_id"`
	Name   string  `json:"name"`
	Club   *string `json:"club"`
}

func TestJSONListScan(t *testing.T) {
	var l jsonList[memberRow]

	require.NoError(t, l.Scan(nil))
	assert.NotNil(t, l)
	assert.Empty(t, l)

	require.NoError(t, l.Scan([]byte("[]")))
	assert.Empty(t, l)

	require.NoError(t, l.Scan([]byte(`[{"user_id":1,"name":"Ann","club":"North"},{"user_id":2,"name":"Bob","club":null},{"user_id":3,"name":"Cy"}]`)))
	require.Len(t, l, 3)
	assert.Equal(t, 1, l[0].UserID)
	assert.Equal(t, "North", *l[0].Club)
	assert.Equal(t, "Bob", l[1].Name)
	assert.Nil(t, l[1].Club)
	assert.Equal(t, 3, l[2].UserID)
	assert.Equal(t, "Cy", l[2].Name)

	require.Error(t, l.Scan(42))
}

func TestFilterBuilder(t *testing.T) {
	var b filterBuilder
	b.add("(name ILIKE ? OR email ILIKE ?)", "%x%")
	b.addIf(false, "sport = ?", "tennis")
	b.addIf(true, "country = ?", "AU")

	assert.Equal(t, " WHERE (name ILIKE $1 OR email ILIKE $1) AND country = $2", b.where())
	assert.Equal(t, "$3", b.next(10))
	assert.Equal(t, []interface{}{"%x%", "AU", 10}, b.args)

	var empty filterBuilder
	assert.Equal(t, "", empty.where())
	assert.Empty(t, empty.args)
}

func TestUniqueViolation(t *testing.T) {
	c, ok := uniqueViolation(&pq.Error{Code: "23505", Constraint: "entries_tournament_user_key"})
	assert.True(t, ok)
	assert.Equal(t, "entries_tournament_user_key", c)

	_, ok = uniqueViolation(&pq.Error{Code: "23503"})
	assert.False(t, ok)
	assert.True(t, isForeignKeyViolation(&pq.Error{Code: "23503"}))
}
