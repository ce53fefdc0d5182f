package scheduling

import (
	"sort"
	"time"
)

// Event is one appointment as seen by the layout pass. PartitionKey picks
// the lane the sweep runs in: a technician id for the per-technician day
// view, or a day key for the merged week view.
type Event struct {
	ID           string
	PartitionKey string
	Start        time.Time
	End          time.Time
}

// Placement is the display slot assigned to one event. Column is zero-based;
// TotalColumns is shared by every event in the same partition so concurrent
// blocks split the width evenly.
type Placement struct {
	Column       int `json:"column"`
	TotalColumns int `json:"totalColumns"`
}

// AssignColumns distributes overlapping events into side-by-side columns.
//
// Within each partition, events are walked in start order (stable, so input
// order breaks ties). An active set holds events still overlapping the sweep
// point; events whose end is at or before the current start are evicted
// first, so touching intervals never collide. Each event takes the smallest
// free column, and after the whole partition is placed, every event gets the
// partition's final column count.
func AssignColumns(events []Event) map[string]Placement {
	placements := make(map[string]Placement, len(events))

	byPartition := make(map[string][]Event)
	order := make([]string, 0)
	for _, ev := range events {
		if _, seen := byPartition[ev.PartitionKey]; !seen {
			order = append(order, ev.PartitionKey)
		}
		byPartition[ev.PartitionKey] = append(byPartition[ev.PartitionKey], ev)
	}

	for _, key := range order {
		partition := byPartition[key]
		sort.SliceStable(partition, func(i, j int) bool {
			return partition[i].Start.Before(partition[j].Start)
		})

		active := make([]Event, 0, len(partition))
		maxColumns := 1

		for _, ev := range partition {
			// evict finished events; end == start counts as finished
			for i := len(active) - 1; i >= 0; i-- {
				if !active[i].End.After(ev.Start) {
					active = append(active[:i], active[i+1:]...)
				}
			}

			used := make(map[int]bool, len(active))
			for _, a := range active {
				used[placements[a.ID].Column] = true
			}
			col := 0
			for used[col] {
				col++
			}

			placements[ev.ID] = Placement{Column: col, TotalColumns: 1}
			active = append(active, ev)
			if col+1 > maxColumns {
				maxColumns = col + 1
			}
		}

		for _, ev := range partition {
			p := placements[ev.ID]
			p.TotalColumns = maxColumns
			placements[ev.ID] = p
		}
	}

	return placements
}
