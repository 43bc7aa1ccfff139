package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/amityadav/helpcenter/internal/adk/supportagent"
	"github.com/amityadav/helpcenter/internal/adk/tools"
	"github.com/amityadav/helpcenter/internal/auth"
	"github.com/amityadav/helpcenter/internal/config"
	"github.com/amityadav/helpcenter/internal/zendesk"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found")
	}

	userID := flag.String("user", "cli", "user id for the agent session")
	timeout := flag.Duration("timeout", 5*time.Minute, "overall run timeout")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("Usage: agent [-user id] [-timeout 5m] <question>")
	}
	question := strings.Join(flag.Args(), " ")

	cfg := config.Load()
	if cfg.GoogleAPIKey == "" {
		log.Fatal("GOOGLE_API_KEY is required")
	}

	creds := auth.NewProvider(auth.Config{
		Subdomain:    cfg.ZendeskSubdomain,
		AccessToken:  cfg.ZendeskAccessToken,
		ClientID:     cfg.ZendeskClientID,
		ClientSecret: cfg.ZendeskClientSecret,
		Scopes:       cfg.ZendeskScopes,
	})
	client := zendesk.NewClient(zendesk.Config{
		Subdomain:     cfg.ZendeskSubdomain,
		Credentials:   creds,
		MaxBodyLength: cfg.ZendeskMaxBodyLength,
	})

	searchTool, err := tools.NewSearchArticlesTool(client)
	if err != nil {
		log.Fatalf("Failed to create tool: %v", err)
	}
	registry := tools.NewRegistry()
	registry.Register(searchTool)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := supportagent.Run(ctx, supportagent.Dependencies{
		Tools:        registry,
		GoogleAPIKey: cfg.GoogleAPIKey,
		ModelName:    cfg.AgentModel,
	}, *userID, question)
	if err != nil {
		log.Fatalf("Agent failed: %v", err)
	}

	fmt.Fprintln(os.Stdout, result.Answer)
}
