package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 12, p.Limit)
}

func TestClamp_PageBelowMinimum(t *testing.T) {
	p := Params{Page: 0, Limit: 10}.Clamp()
	assert.Equal(t, 1, p.Page)

	p = Params{Page: -5, Limit: 10}.Clamp()
	assert.Equal(t, 1, p.Page)
}

func TestClamp_LimitAboveMaximum(t *testing.T) {
	p := Params{Page: 1, Limit: 500}.Clamp()
	assert.Equal(t, 100, p.Limit)
}

func TestClamp_LimitBelowMinimum(t *testing.T) {
	p := Params{Page: 1, Limit: -1}.Clamp()
	assert.Equal(t, 1, p.Limit)
}

func TestClamp_ZeroLimitTakesDefault(t *testing.T) {
	p := Params{Page: 3}.Clamp()
	assert.Equal(t, 12, p.Limit)
	assert.Equal(t, 3, p.Page)
}

func TestClamp_ValidParamsUnchanged(t *testing.T) {
	p := Params{Page: 2, Limit: 24}.Clamp()
	assert.Equal(t, Params{Page: 2, Limit: 24}, p)
}

func TestClamp_SpecExample(t *testing.T) {
	// page=0, limit=500 normalizes to page=1, limit=100.
	p := Params{Page: 0, Limit: 500}.Clamp()
	assert.Equal(t, Params{Page: 1, Limit: 100}, p)
}

func TestPageInfo_HasNextHasPrev(t *testing.T) {
	info := PageInfo{Page: 2, Limit: 12, Total: 60, TotalPages: 5}
	assert.True(t, info.HasNext())
	assert.True(t, info.HasPrev())

	first := PageInfo{Page: 1, TotalPages: 5}
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrev())

	last := PageInfo{Page: 5, TotalPages: 5}
	assert.False(t, last.HasNext())
	assert.True(t, last.HasPrev())
}
