package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/todoapp/todo-api/config"
	"github.com/todoapp/todo-api/database"
	"github.com/todoapp/todo-api/logger"
	"github.com/todoapp/todo-api/web"
	"github.com/todoapp/todo-api/web/service"

	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
	defer logger.CloseLogger()

	err = database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			logger.Warning("close db err:", err)
		}
	}()

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		logger.Error("start server err:", err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// SIGHUP restarts the server so it picks up a changed environment.
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("received SIGHUP, restarting web server")
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				logger.Error("restart server err:", err)
				return
			}
		default:
			logger.Infof("received %v, shutting down", sig)
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func migrateDb() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}
	defer database.CloseDB()
	fmt.Println("Migration done:", config.GetDBPath())
}

func showSetting() {
	fmt.Println("current settings as follows:")
	fmt.Println("listen:", config.GetListen())
	fmt.Println("port:", config.GetPort())
	fmt.Println("db:", config.GetDBPath())
	fmt.Println("log folder:", config.GetLogFolder())
	fmt.Println("log level:", config.GetLogLevel())
	fmt.Println("token ttl:", config.GetTokenTTL())
	if config.IsDevTokenSecret() {
		fmt.Println("token secret: development key (set TOKEN_SECRET)")
	} else {
		fmt.Println("token secret: set")
	}

	if _, err := os.Stat(config.GetDBPath()); err != nil {
		fmt.Println("users: database not created yet")
		return
	}
	if err := database.InitDB(config.GetDBPath()); err != nil {
		fmt.Println("open database failed:", err)
		return
	}
	defer database.CloseDB()
	count, err := service.NewUserService(database.GetDB()).CountUsers(context.Background())
	if err != nil {
		fmt.Println("count users failed:", err)
		return
	}
	fmt.Println("users:", count)
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   config.GetName(),
		Short: "Multi-user todo list API",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			if envFile == "" {
				return config.LoadEnv()
			}
			return config.LoadEnv(envFile)
		},
	}
	rootCmd.PersistentFlags().String("env-file", "", "load environment from this file instead of .env")

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or migrate the database schema",
		Run: func(cmd *cobra.Command, args []string) {
			migrateDb()
		},
	}

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Inspect settings",
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	settingCmd.AddCommand(showCmd)
	rootCmd.AddCommand(runCmd, migrateCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
