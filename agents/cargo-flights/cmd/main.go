package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	cargoflights "cargo-board/agents/cargo-flights"
	"cargo-board/shared/config"
	"cargo-board/shared/scheduler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context that responds to signals
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create the board server, agent and scheduler
	board := cargoflights.NewBoardServer(cfg.Display.BoardPort)
	agent := cargoflights.NewCargoBoardAgent(cfg, board)
	s := scheduler.New(cfg, agent)

	// Manual refresh from the board page runs the same pipeline entry point
	board.SetRefreshFunc(func() {
		if err := s.RunOnce(ctx); err != nil {
			log.Printf("Manual refresh failed: %v", err)
		}
	})

	if len(os.Args) > 1 && os.Args[1] == "--once" {
		fmt.Println("Running once...")
		if err := agent.Initialize(); err != nil {
			log.Fatalf("Failed to initialize agent: %v", err)
		}

		if err := s.RunOnce(ctx); err != nil {
			log.Fatalf("Failed to run: %v", err)
		}
		return
	}

	board.Start()

	fmt.Println("Starting scheduler...")

	if err := s.Start(ctx); err != nil {
		log.Fatalf("Scheduler failed: %v", err)
	}
}
