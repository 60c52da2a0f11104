// Command seed fills the database with demo users, posts and comments
//
// Usage:
//
//	go run ./cmd/seed -users 20 -posts 200 -max-comments 12
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Postfeed/internal/config"
	"Postfeed/internal/db/migrations"
	postgresRepo "Postfeed/internal/db/postgres"
	"Postfeed/internal/telemetry"
)

func main() {
	var opts seedOptions
	flag.IntVar(&opts.Users, "users", 10, "number of users to create or reuse")
	flag.IntVar(&opts.Posts, "posts", 50, "number of posts to create")
	flag.IntVar(&opts.MaxComments, "max-comments", 8, "maximum comments per post")
	flag.Int64Var(&opts.Seed, "seed", time.Now().UnixNano(), "random seed")
	flag.DurationVar(&opts.Span, "span", 30*24*time.Hour, "how far back post timestamps reach")
	flag.Parse()

	logger := telemetry.NewLogger(os.Stdout, slog.LevelInfo)

	if err := run(opts, logger); err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(opts seedOptions, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgresRepo.Open(ctx, cfg.DatabaseOptions())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Up(ctx, db); err != nil {
		return err
	}

	s := newSeeder(
		postgresRepo.NewUserRepository(db),
		postgresRepo.NewPostRepository(db),
		postgresRepo.NewCommentRepository(db),
		opts,
	)

	stats, err := s.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info("seeding complete",
		slog.Int("users", stats.Users),
		slog.Int("posts", stats.Posts),
		slog.Int("comments", stats.Comments),
		slog.Int64("seed", opts.Seed))
	return nil
}
