package main

import (
	"fmt"
	"os"

	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/config"
	"github.com/tendermint/tendermint/libs/log"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	vestingd   = kingpin.New("vestingd", "Token vesting pool service.")
	configPath = vestingd.Flag("config", "Path to the YAML configuration file.").Short('c').Default("lockup.yml").String()

	initCmd = vestingd.Command("init", "Apply the genesis file to an empty database.")

	startCmd = vestingd.Command("start", "Serve the HTTP API.")

	schedulesCmd    = vestingd.Command("schedules", "Print vesting schedules, one JSON document per line.")
	schedulesHolder = schedulesCmd.Flag("holder", "Only print schedules of this beneficiary.").String()

	versionCmd = vestingd.Command("version", "Print the version.")
)

func main() {
	cmd := kingpin.MustParse(vestingd.Parse(os.Args[1:]))
	if cmd == versionCmd.FullCommand() {
		fmt.Println(lockup.Version())
		return
	}

	conf, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(2)
	}
	logger, err := conf.Logger(log.NewTMLogger(log.NewSyncWriter(os.Stdout)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(2)
	}
	logger = logger.With("module", "vestingd")

	switch cmd {
	case initCmd.FullCommand():
		err = runInit(conf, logger)
	case startCmd.FullCommand():
		err = runStart(conf, logger)
	case schedulesCmd.FullCommand():
		err = runSchedules(conf, *schedulesHolder, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}
