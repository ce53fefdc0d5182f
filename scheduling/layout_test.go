package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2025, time.March, 10, hour, min, 0, 0, time.UTC)
}

func TestAssignColumns_Empty(t *testing.T) {
	placements := AssignColumns(nil)
	assert.Empty(t, placements)
}

func TestAssignColumns_SingleEventFullWidth(t *testing.T) {
	placements := AssignColumns([]Event{
		{ID: "a", PartitionKey: "tech-1", Start: at(10, 0), End: at(11, 0)},
	})

	require.Contains(t, placements, "a")
	assert.Equal(t, Placement{Column: 0, TotalColumns: 1}, placements["a"])
}

func TestAssignColumns_DisjointEventsAllFullWidth(t *testing.T) {
	placements := AssignColumns([]Event{
		{ID: "a", PartitionKey: "tech-1", Start: at(9, 0), End: at(10, 0)},
		{ID: "b", PartitionKey: "tech-1", Start: at(10, 30), End: at(11, 0)},
		{ID: "c", PartitionKey: "tech-1", Start: at(13, 0), End: at(14, 0)},
	})

	for _, id := range []string{"a", "b", "c"} {
		assert.Equal(t, Placement{Column: 0, TotalColumns: 1}, placements[id], "event %s", id)
	}
}

func TestAssignColumns_OverlappingEventsSplit(t *testing.T) {
	placements := AssignColumns([]Event{
		{ID: "a", PartitionKey: "tech-1", Start: at(10, 0), End: at(11, 0)},
		{ID: "b", PartitionKey: "tech-1", Start: at(10, 30), End: at(11, 30)},
	})

	assert.Equal(t, 0, placements["a"].Column)
	assert.Equal(t, 1, placements["b"].Column)
	assert.Equal(t, 2, placements["a"].TotalColumns)
	assert.Equal(t, 2, placements["b"].TotalColumns)
}

func TestAssignColumns_OneMinuteOverlapStillSplits(t *testing.T) {
	placements := AssignColumns([]Event{
		{ID: "a", PartitionKey: "d", Start: at(10, 0), End: at(11, 1)},
		{ID: "b", PartitionKey: "d", Start: at(11, 0), End: at(12, 0)},
	})

	assert.NotEqual(t, placements["a"].Column, placements["b"].Column)
	assert.GreaterOrEqual(t, placements["a"].TotalColumns, 2)
}

func TestAssignColumns_TouchingEndpointsDoNotOverlap(t *testing.T) {
	placements := AssignColumns([]Event{
		{ID: "a", PartitionKey: "d", Start: at(10, 0), End: at(11, 0)},
		{ID: "b", PartitionKey: "d", Start: at(11, 0), End: at(12, 0)},
	})

	assert.Equal(t, 0, placements["a"].Column)
	assert.Equal(t, 0, placements["b"].Column)
	assert.Equal(t, 1, placements["a"].TotalColumns)
	assert.Equal(t, 1, placements["b"].TotalColumns)
}

func TestAssignColumns_FreedColumnIsReusedFirstFit(t *testing.T) {
	// a and b overlap; c starts after a ends, so it takes column 0 again
	// even though b is still running in column 1.
	placements := AssignColumns([]Event{
		{ID: "a", PartitionKey: "d", Start: at(9, 0), End: at(10, 0)},
		{ID: "b", PartitionKey: "d", Start: at(9, 30), End: at(12, 0)},
		{ID: "c", PartitionKey: "d", Start: at(10, 0), End: at(11, 0)},
	})

	assert.Equal(t, 0, placements["a"].Column)
	assert.Equal(t, 1, placements["b"].Column)
	assert.Equal(t, 0, placements["c"].Column)
}

func TestAssignColumns_TotalColumnsSharedAcrossPartition(t *testing.T) {
	// d never overlaps anything, but the partition peaks at three
	// concurrent events, so d still renders at a third of the width.
	placements := AssignColumns([]Event{
		{ID: "a", PartitionKey: "d", Start: at(9, 0), End: at(11, 0)},
		{ID: "b", PartitionKey: "d", Start: at(9, 15), End: at(11, 0)},
		{ID: "c", PartitionKey: "d", Start: at(9, 30), End: at(11, 0)},
		{ID: "d", PartitionKey: "d", Start: at(15, 0), End: at(16, 0)},
	})

	assert.Equal(t, 3, placements["d"].TotalColumns)
	assert.Equal(t, 0, placements["d"].Column)
}

func TestAssignColumns_PartitionsAreIndependent(t *testing.T) {
	// Same instant, different technicians: no sharing of columns.
	placements := AssignColumns([]Event{
		{ID: "a", PartitionKey: "tech-1", Start: at(10, 0), End: at(11, 0)},
		{ID: "b", PartitionKey: "tech-2", Start: at(10, 0), End: at(11, 0)},
	})

	assert.Equal(t, Placement{Column: 0, TotalColumns: 1}, placements["a"])
	assert.Equal(t, Placement{Column: 0, TotalColumns: 1}, placements["b"])
}

func TestAssignColumns_TieBrokenByInputOrder(t *testing.T) {
	placements := AssignColumns([]Event{
		{ID: "first", PartitionKey: "d", Start: at(10, 0), End: at(11, 0)},
		{ID: "second", PartitionKey: "d", Start: at(10, 0), End: at(11, 0)},
	})

	assert.Equal(t, 0, placements["first"].Column)
	assert.Equal(t, 1, placements["second"].Column)
}

func TestAssignColumns_ZeroDurationParticipates(t *testing.T) {
	// end == start is an empty interval under closed-open semantics: it is
	// evicted before anything starting at or after it, so it never forces
	// a split.
	placements := AssignColumns([]Event{
		{ID: "a", PartitionKey: "d", Start: at(10, 0), End: at(10, 0)},
		{ID: "b", PartitionKey: "d", Start: at(10, 0), End: at(11, 0)},
	})

	assert.Equal(t, 0, placements["a"].Column)
	assert.Equal(t, 0, placements["b"].Column)
}

func TestAssignColumns_Deterministic(t *testing.T) {
	events := []Event{
		{ID: "a", PartitionKey: "d", Start: at(9, 0), End: at(10, 30)},
		{ID: "b", PartitionKey: "d", Start: at(9, 45), End: at(11, 0)},
		{ID: "c", PartitionKey: "d", Start: at(10, 30), End: at(12, 0)},
		{ID: "d", PartitionKey: "d", Start: at(10, 45), End: at(11, 15)},
	}

	first := AssignColumns(events)
	second := AssignColumns(events)
	assert.Equal(t, first, second)
}
