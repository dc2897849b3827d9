/*
Renfad starts a renfa server and begins listening for new connections.

Usage:

	renfad [flags]
	renfad [flags] -l [[ADDRESS]:PORT]

Once started, the renfa server will listen for HTTP requests and respond to
them using REST protocol. By default, it will listen on localhost:8080. This can
be changed with the --listen/-l flag (or config via environment var or config
file). The flag argument must be either a full address with port, such as
"192.168.0.2:6001", or just the port preceeded by a colon, such as ":6001".

The flags are:

	-v, --version
		Give the current version of the renfa server and then exit.

	-c, --config FILE
		Load settings from the given TOML config file. Environment variables
		and flags override settings in the file.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment variable
		RENFA_LISTEN_ADDRESS, and if that is not given, will default to
		localhost:8080.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the following:
		inmem, sqlite. inmem has no further params. sqlite needs the path to the
		data directory such as sqlite:path/to/db_dir. If not given, will default
		to the value of environment variable RENFA_DATABASE. If no DB driver is
		specified or an empty one is given, an in-memory database is
		automatically selected.
*/
package main

import (
	"fmt"
	"log"
	"net"
	"os"

	"github.com/dekarrin/renfa/internal/config"
	"github.com/dekarrin/renfa/internal/version"
	"github.com/dekarrin/renfa/server"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "RENFA_LISTEN_ADDRESS"
	EnvDB     = "RENFA_DATABASE"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of renfa server and then exit.")
	flagConfig  = pflag.StringP("config", "c", "", "Load settings from the given TOML config file.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagDB      = pflag.String("db", "", "Use the given DB connection string.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (renfa v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	args := pflag.Args()

	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	var cfg config.Config
	if *flagConfig != "" {
		var err error
		cfg, err = config.Load(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not load config: %s\n", err.Error())
			os.Exit(1)
		}
	}

	// get address info
	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr != "" {
		if _, _, err := net.SplitHostPort(listenAddr); err != nil {
			fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
			os.Exit(1)
		}
		cfg.Server.Listen = listenAddr
	}

	// look at db connection string
	dbConnStr := os.Getenv(EnvDB)
	if pflag.Lookup("db").Changed {
		dbConnStr = *flagDB
	}
	if dbConnStr != "" {
		db, err := config.ParseDBConnString(dbConnStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Not a valid DB string: %s\nDo -h for help.\n", err.Error())
			os.Exit(1)
		}
		cfg.DB = db
	}

	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err.Error())
		os.Exit(1)
	}

	// configuration complete, initialize the server
	st, err := cfg.DB.Connect()
	if err != nil {
		log.Fatalf("FATAL could not connect to DB: %s", err.Error())
	}
	log.Printf("DEBUG Connected to %s DB", cfg.DB.Type)

	rs := server.New(st, cfg.Parse.Options())
	log.Printf("DEBUG Server initialized")

	// okay, now actually launch it
	log.Printf("INFO  Starting renfa server %s...", version.ServerCurrent)
	if err := rs.ServeForever(cfg.Server.Listen); err != nil {
		log.Printf("FATAL %v", err)
		rs.Close()
		os.Exit(2)
	}
}
