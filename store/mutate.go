package store

import (
	"fmt"
	"slices"

	"github.com/arthur-debert/contactview/types"
)

// Add stores new contacts and returns their assigned ids. Any id set on the
// input is ignored. Each partition receives one insertion message per
// contiguous run of new records, in ascending position order.
func (s *Store) Add(contacts ...types.Contact) []types.RecordID {
	s.mustNotBeDelivering("Add")
	if len(contacts) == 0 {
		return nil
	}

	ids := make([]types.RecordID, 0, len(contacts))
	added := make(map[types.RecordID]bool, len(contacts))
	for _, c := range contacts {
		record := c.Clone()
		record.ID = s.nextID
		s.nextID++

		s.records[record.ID] = &record
		ids = append(ids, record.ID)
		added[record.ID] = true

		for _, t := range types.FilterTypes {
			if t.Includes(&record) {
				s.partitions[t].insert(record.ID)
			}
		}
	}

	for _, t := range types.FilterTypes {
		for _, r := range s.partitions[t].runs(added) {
			s.notify(types.Change{Kind: types.RecordsInserted, Partition: t, Position: r.start, IDs: r.ids})
		}
	}

	s.log.Debug("records added", "count", len(ids))
	return ids
}

// Update replaces the attributes of a live record. Per partition the record
// either changes in place, moves (removed then inserted), joins or leaves.
func (s *Store) Update(c types.Contact) error {
	s.mustNotBeDelivering("Update")

	current, ok := s.records[c.ID]
	if !ok {
		return fmt.Errorf("failed to update record %d: %w", c.ID, ErrRecordNotFound)
	}

	oldPositions := make(map[types.FilterType]int, len(types.FilterTypes))
	for _, t := range types.FilterTypes {
		oldPositions[t] = s.partitions[t].indexOf(c.ID)
	}

	*current = c.Clone()
	s.labels.invalidate(c.ID)

	for _, t := range types.FilterTypes {
		p := s.partitions[t]
		oldPos := oldPositions[t]
		member := t.Includes(current)

		switch {
		case oldPos >= 0 && member:
			p.removeAt(oldPos)
			newPos := p.insertPosition(c.ID)
			if newPos == oldPos {
				p.insertAt(newPos, c.ID)
				s.notify(types.Change{Kind: types.RecordChanged, Partition: t, Position: newPos, IDs: []types.RecordID{c.ID}})
				continue
			}
			s.notify(types.Change{Kind: types.RecordsRemoved, Partition: t, Position: oldPos, IDs: []types.RecordID{c.ID}})
			p.insertAt(newPos, c.ID)
			s.notify(types.Change{Kind: types.RecordsInserted, Partition: t, Position: newPos, IDs: []types.RecordID{c.ID}})

		case oldPos >= 0:
			p.removeAt(oldPos)
			s.notify(types.Change{Kind: types.RecordsRemoved, Partition: t, Position: oldPos, IDs: []types.RecordID{c.ID}})

		case member:
			pos := p.insert(c.ID)
			s.notify(types.Change{Kind: types.RecordsInserted, Partition: t, Position: pos, IDs: []types.RecordID{c.ID}})
		}
	}

	s.log.Debug("record updated", "id", c.ID)
	return nil
}

// Delete removes records from the store. Unknown ids are skipped. Each
// partition receives one removal message per contiguous run, from the highest
// position down. Deleted records stay readable until every run has been
// delivered. Returns the number of records deleted.
func (s *Store) Delete(ids ...types.RecordID) int {
	s.mustNotBeDelivering("Delete")

	doomed := make(map[types.RecordID]bool, len(ids))
	for _, id := range ids {
		if _, ok := s.records[id]; ok {
			doomed[id] = true
		}
	}
	if len(doomed) == 0 {
		return 0
	}

	for _, t := range types.FilterTypes {
		p := s.partitions[t]
		runs := p.runs(doomed)
		for i := len(runs) - 1; i >= 0; i-- {
			r := runs[i]
			p.ids = slices.Delete(p.ids, r.start, r.start+len(r.ids))
			s.notify(types.Change{Kind: types.RecordsRemoved, Partition: t, Position: r.start, IDs: r.ids})
		}
	}

	// Rows of runs not delivered yet must stay readable, so records go last
	for id := range doomed {
		delete(s.records, id)
		s.labels.forget(id)
	}

	s.log.Debug("records deleted", "count", len(doomed))
	return len(doomed)
}

// RemoveRange deletes the records found at positions [start, start+count)
// of a partition. Out of range positions are ignored.
func (s *Store) RemoveRange(t types.FilterType, start, count int) int {
	ids := s.Records(t)
	if start < 0 {
		count += start
		start = 0
	}
	end := min(start+count, len(ids))
	if start >= end {
		return 0
	}
	return s.Delete(slices.Clone(ids[start:end])...)
}

// Populate marks the initial fetch of a partition as complete
func (s *Store) Populate(t types.FilterType) {
	s.mustNotBeDelivering("Populate")

	p, ok := s.partitions[t]
	if !ok || p.populated {
		return
	}
	p.populated = true
	s.log.Debug("partition populated", "partition", t.String(), "count", len(p.ids))
	s.notify(types.Change{Kind: types.PartitionPopulated, Partition: t})
}

// SetDisplayLabelOrder switches the label order and re-sorts the name
// ordered partitions. Listeners see the whole partition removed and then
// inserted again in its new order.
func (s *Store) SetDisplayLabelOrder(order types.DisplayLabelOrder) {
	s.mustNotBeDelivering("SetDisplayLabelOrder")
	if order == s.order {
		return
	}

	s.order = order
	s.labels.reset(order)

	for _, t := range types.FilterTypes {
		p := s.partitions[t]
		if !nameOrdered(t) || len(p.ids) == 0 {
			continue
		}

		old := p.ids
		p.ids = nil
		s.notify(types.Change{Kind: types.RecordsRemoved, Partition: t, Position: 0, IDs: old})

		p.ids = slices.Clone(old)
		slices.SortStableFunc(p.ids, p.compare)
		s.notify(types.Change{Kind: types.RecordsInserted, Partition: t, Position: 0, IDs: slices.Clone(p.ids)})
	}
}
