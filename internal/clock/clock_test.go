package clock

import (
	"testing"
	"time"

	"github.com/northarc/paylens/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedIsConsistent(t *testing.T) {
	at := time.Date(2024, time.April, 30, 23, 59, 59, 0, time.UTC)
	c := NewFixed(at)

	assert.Equal(t, at, c.Now())
	// Year-month is derived from the same instant Now reports, even at a
	// month boundary.
	assert.Equal(t, domain.YearMonthOf(c.Now()), c.CurrentYearMonth())
}

func TestSystemUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	c := NewSystem(loc)
	assert.Equal(t, loc, c.Now().Location())
	assert.Equal(t, domain.YearMonthOf(c.Now()), c.CurrentYearMonth())
}

func TestSystemNilLocationDefaultsToUTC(t *testing.T) {
	c := NewSystem(nil)
	assert.Equal(t, time.UTC, c.Now().Location())
}
