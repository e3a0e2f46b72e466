package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/coin"
	"github.com/iov-one/lockup/errors"
	"github.com/iov-one/lockup/x/vesting"
)

func scheduleID(c *fiber.Ctx) (lockup.Hex, error) {
	id, err := lockup.ParseHex(c.Params("id"))
	if err != nil {
		return nil, err
	}
	if len(id) != vesting.ScheduleIDLength {
		return nil, errors.Wrapf(errors.ErrInput, "schedule id must be %d bytes", vesting.ScheduleIDLength)
	}
	return id, nil
}

func holder(c *fiber.Ctx) (lockup.Address, error) {
	addr, err := lockup.ParseAddress(c.Params("address"))
	if err != nil {
		return nil, err
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

func index(c *fiber.Ctx) (uint64, error) {
	n, err := strconv.ParseUint(c.Params("index"), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInput, "index %q", c.Params("index"))
	}
	return n, nil
}

func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

func (s *Server) getPool(c *fiber.Ctx) error {
	var info *vesting.PoolInfo
	err := s.svc.View(func(db lockup.ReadOnlyKVStore) error {
		var err error
		info, err = s.svc.Engine().PoolInfo(db)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(info)
}

func (s *Server) listSchedules(c *fiber.Ctx) error {
	var ids []lockup.Hex
	err := s.svc.View(func(db lockup.ReadOnlyKVStore) error {
		var err error
		ids, err = s.svc.Engine().AllIDs(db)
		return err
	})
	if err != nil {
		return err
	}
	if ids == nil {
		ids = []lockup.Hex{}
	}
	return c.JSON(fiber.Map{"ids": ids})
}

func (s *Server) getSchedule(c *fiber.Ctx) error {
	id, err := scheduleID(c)
	if err != nil {
		return err
	}
	var sched *vesting.VestingSchedule
	err = s.svc.View(func(db lockup.ReadOnlyKVStore) error {
		sched, err = s.svc.Engine().VestingSchedule(db, id)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(sched)
}

func (s *Server) getReleasable(c *fiber.Ctx) error {
	id, err := scheduleID(c)
	if err != nil {
		return err
	}
	var amount coin.Amount
	err = s.svc.View(func(db lockup.ReadOnlyKVStore) error {
		amount, err = s.svc.Engine().ComputeReleasableAmount(db, id)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"id": id, "releasable": amount})
}

func (s *Server) holderCount(c *fiber.Ctx) error {
	addr, err := holder(c)
	if err != nil {
		return err
	}
	var n uint64
	err = s.svc.View(func(db lockup.ReadOnlyKVStore) error {
		n, err = s.svc.Engine().HoldersVestingScheduleCount(db, addr)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"count": n})
}

func (s *Server) holderLast(c *fiber.Ctx) error {
	addr, err := holder(c)
	if err != nil {
		return err
	}
	var sched *vesting.VestingSchedule
	err = s.svc.View(func(db lockup.ReadOnlyKVStore) error {
		sched, err = s.svc.Engine().LastVestingScheduleForHolder(db, addr)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(sched)
}

func (s *Server) holderID(c *fiber.Ctx) error {
	addr, err := holder(c)
	if err != nil {
		return err
	}
	i, err := index(c)
	if err != nil {
		return err
	}
	var id lockup.Hex
	err = s.svc.View(func(db lockup.ReadOnlyKVStore) error {
		id, err = s.svc.Engine().ComputeVestingScheduleIDForAddressAndIndex(db, addr, i)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"id": id})
}

func (s *Server) holderSchedule(c *fiber.Ctx) error {
	addr, err := holder(c)
	if err != nil {
		return err
	}
	i, err := index(c)
	if err != nil {
		return err
	}
	var sched *vesting.VestingSchedule
	err = s.svc.View(func(db lockup.ReadOnlyKVStore) error {
		sched, err = s.svc.Engine().VestingScheduleByAddressAndIndex(db, addr, i)
		return err
	})
	if err != nil {
		return err
	}
	return c.JSON(sched)
}

func (s *Server) createSchedule(c *fiber.Ctx) error {
	var msg vesting.CreateScheduleMsg
	if err := parseBody(c, &msg); err != nil {
		return err
	}
	id, err := s.svc.CreateSchedule(c.UserContext(), &msg)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

type amountRequest struct {
	Amount coin.Amount `json:"amount"`
}

func (s *Server) release(c *fiber.Ctx) error {
	id, err := scheduleID(c)
	if err != nil {
		return err
	}
	var req amountRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := s.svc.Release(c.UserContext(), id, req.Amount); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) revoke(c *fiber.Ctx) error {
	id, err := scheduleID(c)
	if err != nil {
		return err
	}
	if err := s.svc.Revoke(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) setPaused(c *fiber.Ctx) error {
	var req struct {
		Paused bool `json:"paused"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := s.svc.SetPaused(c.UserContext(), req.Paused); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) withdraw(c *fiber.Ctx) error {
	var req amountRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := s.svc.Withdraw(c.UserContext(), req.Amount); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) transferAdmin(c *fiber.Ctx) error {
	var req struct {
		Admin lockup.Address `json:"admin"`
	}
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := s.svc.TransferAdmin(c.UserContext(), req.Admin); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
