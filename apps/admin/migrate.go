package main

import (
	"github.com/Derrick-Ryan-Giggs/access-campus-aid-sub001/storage/database"
)

var migrateRunFunc = database.MigrateCommand // mockable

func (cli *commandLine) migrate(args []string) error {
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return migrateRunFunc(cli.sdb, args[0], arguments...)
}
