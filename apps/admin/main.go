package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/admitcrm/core"
	"github.com/trezcool/admitcrm/core/student"
	emailsvc "github.com/trezcool/admitcrm/services/email"
	logsvc "github.com/trezcool/admitcrm/services/logger"
	inmemdb "github.com/trezcool/admitcrm/storage/database/inmem"
)

func main() {
	conf := core.NewConfig()

	zl, err := logsvc.NewZapLogger(conf)
	if err != nil {
		log.Fatalf("setting up logger: %v", err)
	}
	logger := logsvc.NewRollbarLogger(zl, conf)

	// set up DB
	db, err := inmemdb.Seed(conf.Data.Students, conf.Data.Seed, time.Now())
	if err != nil {
		logger.Fatal(fmt.Sprintf("seeding database: %v", err), err)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	student.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		db: db,
		svc: student.NewService(
			inmemdb.NewStudentRepository(db),
			emailsvc.NewConsoleService(conf, logger),
			logger,
			student.Options{
				Rule:         student.AttentionRule{Window: conf.Attention.Window, Tag: conf.Attention.Tag},
				DefaultLimit: conf.Directory.DefaultLimit,
				StaffName:    conf.StaffName,
			},
		),
		validate:     validate,
		translator:   translator,
		defaultLimit: conf.Directory.DefaultLimit,
		out:          os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}
