package main

import (
	"fmt"
	"os"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pmarins/taskdeck"
	"github.com/pmarins/taskdeck/charmlog"
	"github.com/pmarins/taskdeck/sqlite"
)

var logger taskdeck.Logger

func main() {
	// conf
	conf := taskdeck.LoadConfig()
	f, err := os.OpenFile(conf.LogPath, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o666)
	if err != nil {
		panic(err)
	}
	defer f.Close() //nolint:errcheck
	logger = charmlog.NewLogger(charmlog.Options{
		Writer: f,
		Level:  conf.LogLevel,
	})
	logger.Info("loaded config", "config", conf)

	// db
	db, err := sqlite.Open(conf.DatabaseURL)
	if err != nil {
		logger.Error("failed database open", "error", err)
		fmt.Println("failed to open database:", err)
		os.Exit(1)
	}
	defer db.Close() //nolint:errcheck
	if err := db.Migrate(taskdeck.Migrations); err != nil {
		logger.Error("failed migration", "error", err)
		fmt.Println("failed to initialize schema:", err)
		os.Exit(1)
	}

	_, dbGetter := txStdLib.NewTransactor(db.DB(), txStdLib.NestedTransactionsSavepoints)

	// repos
	userRepo := sqlite.NewUserRepo(dbGetter, logger)
	taskRepo := sqlite.NewTaskRepo(dbGetter, logger)

	// controller
	ctrl, err := taskdeck.NewController(userRepo, taskRepo, conf.EmailDomains, logger)
	if err != nil {
		logger.Error("failed controller setup", "error", err)
		fmt.Println(err)
		os.Exit(1)
	}

	// start program
	fmt.Println(colorize(colorYellow, logo))
	fmt.Println()

	m := newModel(ctrl, logger, 3*time.Second)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		logger.Error(err.Error())
	}
}
