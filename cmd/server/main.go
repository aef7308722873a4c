package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"pokerv2-server/internal/config"
	"pokerv2-server/internal/mux"
	"pokerv2-server/pkg/db"
	"pokerv2-server/pkg/holdem"
	"pokerv2-server/pkg/model"
	"pokerv2-server/pkg/model/memstore"
	"pokerv2-server/pkg/poker"
	"pokerv2-server/pkg/room"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	store, err := newStore(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not open the store")
	}

	opts, err := pitBossOptions(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	hub := room.NewHub()
	pitBoss := room.NewPitBoss(store, room.MultiPublisher{room.LogPublisher{}, hub}, opts)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", mux.UserHeader},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss, hub, store))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithFields(logrus.Fields{
		"addr":  srv.Addr,
		"store": cfg.Store,
	}).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func newStore(cfg config.Config) (model.Store, error) {
	switch cfg.Store {
	case "memory":
		logrus.Warn("using the in-memory store, nothing survives a restart")
		return memstore.New(), nil
	case "", "postgres":
		// run the db migrations
		if err := db.Migrate(); err != nil {
			return nil, err
		}

		return model.NewPGStore(db.Instance()), nil
	}

	return nil, fmt.Errorf("unknown store: %s", cfg.Store)
}

func pitBossOptions(cfg config.Config) (room.Options, error) {
	policy, err := holdem.ParseBlindPolicy(cfg.ShortBlindPolicy)
	if err != nil {
		return room.Options{}, err
	}

	ranker, err := poker.NewRanker(cfg.HandRanker)
	if err != nil {
		return room.Options{}, err
	}

	opts := room.DefaultOptions()
	opts.DefaultBlind = cfg.DefaultBlind
	opts.MaxBlind = cfg.MaxBlind
	opts.MinBuyInBB = cfg.MinBuyInBB
	opts.MaxBuyInBB = cfg.MaxBuyInBB
	opts.BlindPolicy = policy
	opts.Ranker = ranker
	opts.NextHandDelay = cfg.NextHandDelay
	return opts, nil
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	format := config.Instance().Log.Format
	if env := os.Getenv("LOG_FORMAT"); env != "" {
		format = env
	}

	if strings.ToLower(format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
