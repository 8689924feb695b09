package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/RSA-Bots/Reppy/internal/bot"
	"github.com/RSA-Bots/Reppy/internal/setup"
)

func main() {
	// Initialize application with required dependencies
	app, err := setup.InitializeApp(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.Cleanup()

	// Create bot instance
	discordBot, err := bot.New(
		app.Config.Bot.Discord.Token,
		app.DB,
		app.RedisManager,
		app.Logger,
	)
	if err != nil {
		log.Printf("Failed to create bot: %v", err)
		return
	}

	// Start the bot and connect to Discord
	if err := discordBot.Start(); err != nil {
		log.Printf("Failed to start bot: %v", err)
		return
	}

	log.Println("Bot has been started. Waiting for interrupt signal to gracefully shutdown...")

	// Wait for interrupt signal to gracefully shutdown the bot
	// This ensures all pending events are processed before closing
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanly close down the Discord session
	discordBot.Close()
}
