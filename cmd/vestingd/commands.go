package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/app"
	"github.com/iov-one/lockup/config"
	"github.com/iov-one/lockup/errors"
	"github.com/iov-one/lockup/notify"
	"github.com/iov-one/lockup/server"
	"github.com/iov-one/lockup/store/leveldb"
	"github.com/iov-one/lockup/x/vesting"
	"github.com/tendermint/tendermint/libs/log"
)

const shutdownTimeout = 10 * time.Second

func openService(conf config.Config, logger log.Logger, sinks ...lockup.EventSink) (*app.Service, error) {
	db, err := leveldb.Open(conf.DBPath, conf.CacheSize)
	if err != nil {
		return nil, err
	}
	svc := app.NewService(db, server.HeaderAuth{}, lockup.NewSystemClock(), sinks...)
	return svc.WithLogger(logger), nil
}

// runInit applies the configured genesis file. It fails if the database
// was already initialized.
func runInit(conf config.Config, logger log.Logger) error {
	gen, err := app.LoadGenesis(conf.Genesis)
	if err != nil {
		return err
	}
	svc, err := openService(conf, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := lockup.WithLogger(context.Background(), logger)
	if err := svc.InitGenesis(ctx, gen, app.Initializers()); err != nil {
		return errors.Wrap(err, "apply genesis")
	}
	logger.Info("genesis applied", "chain_id", gen.ChainID, "db", conf.DBPath)
	return nil
}

// runStart serves the HTTP API until the process is interrupted.
func runStart(conf config.Config, logger log.Logger) error {
	sinks := []lockup.EventSink{notify.NewLogSink(logger.With("module", "events"))}
	if conf.Redis.URL != "" {
		client, err := notify.DialRedis(conf.Redis.URL)
		if err != nil {
			return errors.Wrap(err, "redis")
		}
		defer client.Close()
		sinks = append(sinks, notify.NewRedisSink(client, conf.Redis.Stream, conf.Redis.MaxLen))
	}

	svc, err := openService(conf, logger, sinks...)
	if err != nil {
		return err
	}
	defer svc.Close()

	chainID, err := svc.ChainID()
	if err != nil {
		return err
	}
	if chainID == "" {
		return errors.Wrap(errors.ErrState, "database not initialized, run init first")
	}
	logger.Info("starting", "chain_id", chainID, "version", lockup.Version())

	srv := server.New(svc, logger.With("module", "http"))
	errc := make(chan error, 1)
	go func() { errc <- srv.Listen(conf.HTTP.Listen) }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	select {
	case err := <-errc:
		return err
	case s := <-sig:
		logger.Info("shutting down", "signal", s.String())
		return srv.Shutdown(shutdownTimeout)
	}
}

// runSchedules writes schedules to w, all of them or only those of holder
// when not empty.
func runSchedules(conf config.Config, holder string, w io.Writer) error {
	svc, err := openService(conf, log.NewNopLogger())
	if err != nil {
		return err
	}
	defer svc.Close()

	var beneficiary lockup.Address
	if holder != "" {
		if beneficiary, err = lockup.ParseAddress(holder); err != nil {
			return errors.Wrap(err, "holder")
		}
	}

	enc := json.NewEncoder(w)
	return svc.View(func(db lockup.ReadOnlyKVStore) error {
		engine := svc.Engine()

		var ids []lockup.Hex
		if beneficiary == nil {
			if ids, err = engine.AllIDs(db); err != nil {
				return err
			}
		} else {
			n, err := engine.HoldersVestingScheduleCount(db, beneficiary)
			if err != nil {
				return err
			}
			for i := uint64(0); i < n; i++ {
				ids = append(ids, vesting.ScheduleID(beneficiary, i))
			}
		}

		for _, id := range ids {
			s, err := engine.VestingSchedule(db, id)
			if err != nil {
				return err
			}
			if err := enc.Encode(s); err != nil {
				return errors.Wrap(err, "encode")
			}
		}
		return nil
	})
}
