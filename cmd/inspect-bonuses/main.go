package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/bonus-engine/internal/config"
	babonus "github.com/KirkDiggler/bonus-engine/internal/domain/bonus"
	"github.com/KirkDiggler/bonus-engine/internal/entities"
	"github.com/KirkDiggler/bonus-engine/internal/repositories/documents"
	"github.com/KirkDiggler/bonus-engine/internal/scripting"
	svcbonus "github.com/KirkDiggler/bonus-engine/internal/services/bonus"
	"github.com/KirkDiggler/bonus-engine/internal/services/collector"
	"github.com/KirkDiggler/bonus-engine/internal/services/resolution"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: inspect-bonuses <actor-id> [roll-type]")
		fmt.Println("  roll-type: attack, damage, save, throw, test, hitdie")
		fmt.Println("  SCENE_ID env selects the scene used for aura collection")
		os.Exit(1)
	}

	actorID := os.Args[1]
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			log.Printf("Failed to close Redis connection: %v", closeErr)
		}
	}()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	repo := documents.NewRedis(client)
	service := svcbonus.NewService(&svcbonus.ServiceConfig{
		Repository: repo,
		Collector: collector.NewService(&collector.ServiceConfig{
			FlagScope: cfg.FlagScope,
			Logger:    logger,
		}),
		Resolution: resolution.NewService(&resolution.ServiceConfig{
			Logger: logger,
		}),
		FlagScope: cfg.FlagScope,
		Scripts:   scripting.NewRunner(cfg.Scripting.Enabled, cfg.Scripting.InstructionLimit),
		Logger:    logger,
	})

	actor, err := repo.GetActor(ctx, actorID)
	if err != nil {
		log.Fatalf("Failed to load actor %q: %v", actorID, err)
	}

	fmt.Printf("Actor: %s (%s)\n", actor.Name, actor.UUID())
	printHost(service, actor)
	for _, item := range actor.Items {
		printHost(service, item)
	}
	for _, effect := range actor.Effects {
		printHost(service, effect)
	}

	if len(os.Args) < 3 {
		return
	}
	rollType := babonus.Type(os.Args[2])

	var scene *entities.Scene
	if sceneID := os.Getenv("SCENE_ID"); sceneID != "" {
		scene, err = repo.GetScene(ctx, sceneID)
		if err != nil {
			log.Fatalf("Failed to load scene %q: %v", sceneID, err)
		}
		fmt.Printf("\nScene: %s (%d tokens, %d templates)\n",
			scene.Name, len(scene.Tokens), len(scene.Templates))
	}

	out, err := service.ApplicableBonuses(&svcbonus.ApplicableInput{
		Type:  rollType,
		Actor: actor,
		Scene: scene,
	})
	if err != nil {
		log.Fatalf("Failed to resolve applicable bonuses: %v", err)
	}

	fmt.Printf("\nApplicable %s bonuses:\n", rollType)
	fmt.Printf("  Immediate: %d\n", len(out.Immediate))
	for _, b := range out.Immediate {
		fmt.Printf("    %s (%s)\n", b.Name, b.UUID())
	}
	fmt.Printf("  Optional: %d\n", len(out.Optionals))
	for _, b := range out.Optionals {
		fmt.Printf("    %s (%s)\n", b.Name, b.UUID())
	}
	fmt.Printf("  Reminders: %d\n", len(out.Reminders))
	for _, b := range out.Reminders {
		fmt.Printf("    %s (%s)\n", b.Name, b.UUID())
	}
	fmt.Printf("  Parts: %v\n", out.Parts)
}

func printHost(service svcbonus.Service, host entities.Document) {
	bonuses := service.Collection(host)
	if len(bonuses) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", host.UUID())
	for _, b := range bonuses {
		state := "enabled"
		if !b.Enabled {
			state = "disabled"
		}
		fmt.Printf("  [%s] %s (%s, %s)\n", b.ID, b.Name, b.Type, state)
		if b.Bonuses.Bonus != "" {
			fmt.Printf("      bonus: %s\n", b.Bonuses.Bonus)
		}
		for name := range b.Filters {
			fmt.Printf("      filter: %s\n", name)
		}
	}
}
