// Command seed wipes the nodepop database and loads the demo users and
// products. It asks for confirmation unless -yes is given.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/dmitrymomot/nodepop/app/nodepop"
	"github.com/dmitrymomot/nodepop/app/nodepop/product"
	"github.com/dmitrymomot/nodepop/app/nodepop/seed"
	"github.com/dmitrymomot/nodepop/app/nodepop/user"
	"github.com/dmitrymomot/nodepop/core/config"
	"github.com/dmitrymomot/nodepop/core/logger"
	"github.com/dmitrymomot/nodepop/integration/database/mongo"
	"github.com/dmitrymomot/nodepop/integration/database/redis"
)

type Config struct {
	Mongo        mongo.Config
	Redis        redis.Config
	SessionStore string `env:"SESSION_STORE" envDefault:"mongo"`
}

var errNotTerminal = errors.New("stdin is not a terminal, pass -yes to seed without confirmation")

func main() {
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.New(logger.WithDevelopment("nodepop-seed"))
	if err := run(ctx, log, *yes); err != nil {
		log.Error("Seeding failed", logger.Component("seed"), logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, yes bool) error {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	db, err := mongo.NewWithDatabase(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer db.Client().Disconnect(context.WithoutCancel(ctx))

	users := user.NewMongoRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}
	products := product.NewMongoRepository(db)
	if err := products.EnsureIndexes(ctx); err != nil {
		return err
	}

	if !yes {
		count, err := products.CountAll(ctx)
		if err != nil {
			return err
		}
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errNotTerminal
		}
		question := fmt.Sprintf("Database %q holds %d products. Delete everything and load the demo data?", db.Name(), count)
		ok, err := confirm(os.Stdin, os.Stdout, question)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(os.Stdout, "Aborted.")
			return nil
		}
	}

	s := &seed.Seeder{Users: users, Products: products, Logger: log}
	switch cfg.SessionStore {
	case nodepop.SessionStoreRedis:
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		s.Sessions = redis.NewSessionStore[nodepop.SessionData](client)
	default:
		s.Sessions = mongo.NewSessionStore[nodepop.SessionData](db)
	}

	res, err := s.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Seeded %d users and %d products (removed %d products, %d users, %d sessions).\n",
		res.Users, res.Products, res.DeletedProducts, res.DeletedUsers, res.DeletedSessions)
	return nil
}

// confirm asks question on out and reads one answer line from in. Only y and
// yes are accepted.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
