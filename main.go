package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/moohomor/storyforge/config"
	"github.com/moohomor/storyforge/database"
	"github.com/moohomor/storyforge/logger"
	"github.com/moohomor/storyforge/storage"
	"github.com/moohomor/storyforge/web"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
)

func initLogger() {
	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
}

// openBlobStore picks the blob backend: Dropbox when a token is configured,
// the local bbolt file otherwise.
func openBlobStore() (storage.Store, error) {
	if token := config.GetDropboxToken(); token != "" {
		logger.Info("using Dropbox blob store")
		return storage.OpenDropbox(token), nil
	}
	logger.Infof("using local blob store at %s", config.GetBlobPath())
	return storage.OpenBolt(config.GetBlobPath())
}

func main() {
	_ = godotenv.Load()

	log.Printf("%v %v", config.GetName(), config.GetVersion())
	initLogger()
	defer logger.CloseLogger()

	if err := database.InitDB(config.GetDBDsn()); err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			logger.Warning("close db err:", err)
		}
	}()

	blob, err := openBlobStore()
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := blob.Close(); err != nil {
			logger.Warning("close blob store err:", err)
		}
	}()

	server := web.NewServer(blob)
	if err := server.Start(); err != nil {
		log.Fatal(err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			// Restart the web server in place. Sessions are volatile and do
			// not survive this.
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer(blob)
			if err := server.Start(); err != nil {
				log.Fatal(err)
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}
