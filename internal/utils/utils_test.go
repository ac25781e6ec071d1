package utils

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestParseIntOr(t *testing.T) {
	assert.Equal(t, 10, ParseIntOr("", 10))
	assert.Equal(t, 10, ParseIntOr("abc", 10))
	assert.Equal(t, 3, ParseIntOr(" 3 ", 10))
	assert.Equal(t, -2, ParseIntOr("-2", 10))
	assert.Equal(t, 0, ParseIntOr("0", 10))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, EscapeLike(`50%_off\`))
}

func TestIsPGUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	assert.True(t, IsPGUniqueViolation(err))
	assert.False(t, IsPGUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsPGUniqueViolation(fmt.Errorf("plain")))
}
