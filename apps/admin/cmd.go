package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"

	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core/activity"
	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/core/order"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	sdb     *sql.DB
	actRepo activity.Repository
	ordRepo order.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run database migrations (up, down, status, version, ...)")
	fmt.Println("  seed -user USER_ID - insert demo activities and orders for a user")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedUser := seedCmd.String("user", "", "The user id to seed demo records for.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *seedUser == "" {
			seedCmd.Usage()
			return errHelp
		}
		return cli.seed(*seedUser)
	default:
		cli.printUsage()
		return errHelp
	}
}
