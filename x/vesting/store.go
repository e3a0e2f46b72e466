package vesting

import (
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/errors"
	"github.com/iov-one/lockup/orm"
)

// listEntry points from a position in the global list to a schedule.
type listEntry struct {
	ID lockup.Hex `msgpack:"id"`
}

func (e *listEntry) Validate() error {
	if len(e.ID) != ScheduleIDLength {
		return errors.Wrap(errors.ErrInput, "id")
	}
	return nil
}

// holderCount is the number of schedules a beneficiary ever received.
type holderCount struct {
	Count uint64 `msgpack:"count"`
}

func (*holderCount) Validate() error { return nil }

// ScheduleStore keeps all schedules. Schedules are never removed. Next to
// the records it maintains the global creation order and a counter per
// beneficiary from which identifiers are derived.
type ScheduleStore struct {
	schedules orm.ModelBucket
	list      orm.ModelBucket
	counts    orm.ModelBucket
	seq       orm.Sequence
}

// NewScheduleStore returns a store using the "sched" family of keys.
func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{
		schedules: orm.NewModelBucket("sched", &VestingSchedule{}),
		list:      orm.NewModelBucket("schedlist", &listEntry{}),
		counts:    orm.NewModelBucket("schedcnt", &holderCount{}),
		seq:       orm.NewSequence("sched", "list"),
	}
}

// Create assigns an identifier to the schedule and stores it.
func (s *ScheduleStore) Create(db lockup.KVStore, sched *VestingSchedule) (lockup.Hex, error) {
	count, err := s.CountFor(db, sched.Beneficiary)
	if err != nil {
		return nil, err
	}
	id := ScheduleID(sched.Beneficiary, count)
	switch err := s.schedules.Has(db, id); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "schedule %s", id)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}

	sched.ID = id
	if err := s.schedules.Put(db, id, sched); err != nil {
		return nil, errors.Wrap(err, "cannot store schedule")
	}
	pos, err := s.seq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire list position")
	}
	if err := s.list.Put(db, pos, &listEntry{ID: id}); err != nil {
		return nil, errors.Wrap(err, "cannot append to list")
	}
	if err := s.counts.Put(db, sched.Beneficiary, &holderCount{Count: count + 1}); err != nil {
		return nil, errors.Wrap(err, "cannot update beneficiary counter")
	}
	return id, nil
}

// Get returns the schedule with given id or ErrNotFound.
func (s *ScheduleStore) Get(db lockup.ReadOnlyKVStore, id []byte) (*VestingSchedule, error) {
	var sched VestingSchedule
	if err := s.schedules.One(db, id, &sched); err != nil {
		return nil, errors.Wrapf(err, "schedule %s", lockup.Hex(id))
	}
	return &sched, nil
}

// Save overwrites an existing schedule.
func (s *ScheduleStore) Save(db lockup.KVStore, sched *VestingSchedule) error {
	if err := s.schedules.Has(db, sched.ID); err != nil {
		return errors.Wrapf(err, "schedule %s", sched.ID)
	}
	return s.schedules.Put(db, sched.ID, sched)
}

// CountFor returns how many schedules were created for the beneficiary.
func (s *ScheduleStore) CountFor(db lockup.ReadOnlyKVStore, beneficiary lockup.Address) (uint64, error) {
	var c holderCount
	switch err := s.counts.One(db, beneficiary, &c); {
	case err == nil:
		return c.Count, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// IDAt returns the identifier of the index-th schedule of the beneficiary.
// The identifier is computed, the store is only asked for the count.
func (s *ScheduleStore) IDAt(db lockup.ReadOnlyKVStore, beneficiary lockup.Address, index uint64) (lockup.Hex, error) {
	count, err := s.CountFor(db, beneficiary)
	if err != nil {
		return nil, err
	}
	if index >= count {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d, %s holds %d schedules", index, beneficiary, count)
	}
	return ScheduleID(beneficiary, index), nil
}

// Count returns the number of schedules ever created.
func (s *ScheduleStore) Count(db lockup.ReadOnlyKVStore) (uint64, error) {
	n, err := s.seq.Latest(db)
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// IDAtGlobal returns the identifier of the index-th schedule ever created.
func (s *ScheduleStore) IDAtGlobal(db lockup.ReadOnlyKVStore, index uint64) (lockup.Hex, error) {
	count, err := s.Count(db)
	if err != nil {
		return nil, err
	}
	if index >= count {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d, %d schedules", index, count)
	}
	return s.listAt(db, index)
}

func (s *ScheduleStore) listAt(db lockup.ReadOnlyKVStore, index uint64) (lockup.Hex, error) {
	// Sequence values start at one.
	var e listEntry
	if err := s.list.One(db, orm.EncodeSequence(int64(index)+1), &e); err != nil {
		return nil, errors.Wrapf(err, "list position %d", index)
	}
	return e.ID, nil
}

// AllIDs returns identifiers of all schedules in creation order. Sequence
// keys are big endian, so walking the list bucket yields creation order.
func (s *ScheduleStore) AllIDs(db lockup.ReadOnlyKVStore) ([]lockup.Hex, error) {
	var (
		ids []lockup.Hex
		e   listEntry
	)
	err := s.list.Each(db, &e, func([]byte) error {
		// decoding may reuse the buffer of the previous entry
		ids = append(ids, append(lockup.Hex(nil), e.ID...))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "schedule list")
	}
	return ids, nil
}
