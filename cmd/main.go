package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"profilevault/internal/cryptox"
	"profilevault/internal/handlers"
	"profilevault/internal/logger"
	"profilevault/internal/models"
	"profilevault/internal/repository"
	"profilevault/internal/repository/db"
	"profilevault/internal/server"
	"profilevault/internal/service"
)

func main() {
	log := logger.Get(logger.InfoLevel)

	if err := loadConfig(); err != nil {
		log.Warnw("no config file found, using defaults and environment", "err", err)
	}

	codec, err := buildCodec(log)
	if err != nil {
		log.Fatalw("failed to init encryption codec", "err", err)
	}

	auditDB, err := openAuditDB()
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := auditDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	sessionTTL := time.Duration(viper.GetInt("session.ttl_minutes")) * time.Minute
	repos := repository.NewRepository(viper.GetString("users.path"), auditDB)

	if err := seedUsers(repos.Users.(*repository.UserFileRepository), codec, log); err != nil {
		log.Fatalw("failed to seed user store", "err", err)
	}

	services := service.NewService(repos, codec, service.Config{
		SessionSecret: sessionSecret(log),
		SessionTTL:    sessionTTL,
	}, log)
	apiHandler := handlers.NewHandler(services, log)

	srv := &server.Server{}
	go func() {
		port := viper.GetString("port")
		log.Infow("server starting", "port", port)
		if err := srv.Run(port, apiHandler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.SetDefault("port", "3000")
	viper.SetDefault("users.path", "data/users.json")
	viper.SetDefault("audit.db_path", "audit.db")
	viper.SetDefault("session.ttl_minutes", 60)

	viper.SetEnvPrefix("PROFILEVAULT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// buildCodec resolves the at-rest encryption key from configuration. With no
// key configured the process runs on a random key and anything it encrypts
// is unrecoverable after a restart.
func buildCodec(log *logger.Logger) (*cryptox.Codec, error) {
	key, ok, err := cryptox.LoadKey(viper.GetString("encryption.key"), viper.GetString("encryption.passphrase"))
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Warnw("no encryption key configured; using a random per-process key, encrypted data will not survive a restart")
	}
	return cryptox.NewCodec(key)
}

func openAuditDB() (*sql.DB, error) {
	return db.InitDB(viper.GetString("audit.db_path"))
}

// sessionSecret returns the cookie-signing secret. A missing secret falls
// back to a random per-process value; sessions are in-memory and die with
// the process either way.
func sessionSecret(log *logger.Logger) []byte {
	if s := viper.GetString("session.secret"); s != "" {
		return []byte(s)
	}
	log.Warnw("no session secret configured; using a random per-process value")
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		log.Fatalw("failed to generate session secret", "err", err)
	}
	return secret
}

// seedUsers creates the user store with initial records when the backing
// file does not exist yet. Seeds are encrypted under the active key.
func seedUsers(users *repository.UserFileRepository, codec *cryptox.Codec, log *logger.Logger) error {
	exists, err := users.Exists()
	if err != nil || exists {
		return err
	}

	path := viper.GetString("users.path")
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create user store directory: %w", err)
		}
	}

	seeds := []struct {
		id    int
		name  string
		email string
		bio   string
	}{
		{1, "Alice Smith", "alice@example.com", "Loves hiking"},
		{2, "Bob Jones", "bob@example.com", "Coffee enthusiast"},
	}

	collection := make([]models.User, 0, len(seeds))
	for _, s := range seeds {
		email, err := codec.Encrypt(s.email)
		if err != nil {
			return fmt.Errorf("encrypt seed email: %w", err)
		}
		bio, err := codec.Encrypt(s.bio)
		if err != nil {
			return fmt.Errorf("encrypt seed bio: %w", err)
		}
		collection = append(collection, models.User{ID: s.id, Name: s.name, Email: email, Bio: bio})
	}

	if err := users.Persist(collection); err != nil {
		return fmt.Errorf("persist seed users: %w", err)
	}
	log.Infow("seeded user store", "path", path, "users", len(collection))
	return nil
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
