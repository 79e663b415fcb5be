package utils

import (
	"testing"
	"time"

	"cfms/src/models"
	"cfms/src/types"

	"github.com/stretchr/testify/assert"
)

func TestChooseCounterPrefersLowestFill(t *testing.T) {
	counters := []models.Counter{
		{ID: 1, Name: "North-1", Status: types.COUNTER_ENTRY, Capacity: 10, Load: 9},
		{ID: 2, Name: "North-2", Status: types.COUNTER_ENTRY, Capacity: 10, Load: 1},
		{ID: 3, Name: "South-1", Status: types.COUNTER_EXIT, Capacity: 10, Load: 0},
	}
	chosen := ChooseCounter(counters, 1)
	assert.NotNil(t, chosen)
	assert.Equal(t, "North-2", chosen.Name)
}

func TestChooseCounterSkipsFullCounters(t *testing.T) {
	counters := []models.Counter{
		{ID: 1, Name: "A", Status: types.COUNTER_ENTRY, Capacity: 5, Load: 4},
		{ID: 2, Name: "B", Status: types.COUNTER_ENTRY, Capacity: 10, Load: 9},
	}
	chosen := ChooseCounter(counters, 3)
	assert.NotNil(t, chosen)
	assert.Equal(t, "A", chosen.Name)
}

func TestChooseCounterOverflowsWhenAllFull(t *testing.T) {
	counters := []models.Counter{
		{ID: 1, Name: "A", Status: types.COUNTER_ENTRY, Capacity: 10, Load: 10},
		{ID: 2, Name: "B", Status: types.COUNTER_ENTRY, Capacity: 10, Load: 9},
	}
	chosen := ChooseCounter(counters, 4)
	assert.NotNil(t, chosen)
	assert.Equal(t, "B", chosen.Name)
}

func TestChooseCounterEmptySet(t *testing.T) {
	chosen := ChooseCounter([]models.Counter{}, 1)
	assert.Nil(t, chosen)
}

func TestSortCountersStatusThenFill(t *testing.T) {
	counters := []models.Counter{
		{Name: "exit", Status: types.COUNTER_EXIT, Capacity: 10, Load: 0},
		{Name: "both", Status: types.COUNTER_BOTH, Capacity: 10, Load: 0},
		{Name: "entry-busy", Status: types.COUNTER_ENTRY, Capacity: 10, Load: 8},
		{Name: "entry-idle", Status: types.COUNTER_ENTRY, Capacity: 10, Load: 2},
	}
	SortCounters(counters)
	assert.Equal(t, "entry-idle", counters[0].Name)
	assert.Equal(t, "entry-busy", counters[1].Name)
	assert.Equal(t, "both", counters[2].Name)
	assert.Equal(t, "exit", counters[3].Name)
}

func TestSortCountersUnboundedCapacity(t *testing.T) {
	counters := []models.Counter{
		{Name: "unbounded", Status: types.COUNTER_ENTRY, Capacity: 0, Load: 3},
		{Name: "bounded", Status: types.COUNTER_ENTRY, Capacity: 10, Load: 2},
	}
	SortCounters(counters)
	assert.Equal(t, "bounded", counters[0].Name)
}

func TestBillableHours(t *testing.T) {
	start := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	hours, err := BillableHours(start, start.Add(61*time.Minute))
	assert.Nil(t, err)
	assert.Equal(t, int64(2), hours)

	hours, err = BillableHours(start, start.Add(60*time.Minute))
	assert.Nil(t, err)
	assert.Equal(t, int64(1), hours)

	hours, err = BillableHours(start, start.Add(5*time.Minute))
	assert.Nil(t, err)
	assert.Equal(t, int64(1), hours)

	_, err = BillableHours(start, start)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = BillableHours(start, start.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestMaskCard(t *testing.T) {
	assert.Equal(t, "************4242", MaskCard("4242 4242 4242 4242"))
	assert.Equal(t, "4242", MaskCard("4242"))
	assert.Equal(t, "", MaskCard(""))
}
