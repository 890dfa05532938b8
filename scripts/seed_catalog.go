package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kakasy/shareit/internal/database"
	"github.com/kakasy/shareit/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type SeedConfig struct {
	Users []struct {
		Name  string `yaml:"name"`
		Email string `yaml:"email"`
	} `yaml:"users"`
	Items []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Available   bool   `yaml:"available"`
		OwnerEmail  string `yaml:"owner_email"`
	} `yaml:"items"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		seedPath = flag.String("seed", "configs/seed.yaml", "path to seed.yaml")
		dbPath   = flag.String("db", "./data/shareit.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*seedPath)
	if err != nil {
		return fmt.Errorf("read seed: %w", err)
	}
	var cfg SeedConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse seed: %w", err)
	}
	if len(cfg.Users) == 0 {
		return fmt.Errorf("no users in yaml")
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	existing, err := db.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	usersByEmail := make(map[string]*models.User, len(existing))
	for _, u := range existing {
		usersByEmail[strings.ToLower(u.Email)] = u
	}

	createdUsers := 0
	for _, u := range cfg.Users {
		if u.Email == "" {
			continue
		}
		key := strings.ToLower(u.Email)
		if _, ok := usersByEmail[key]; ok {
			continue
		}
		user := &models.User{Name: u.Name, Email: u.Email}
		if err = db.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", u.Email, err)
		}
		usersByEmail[key] = user
		createdUsers++
	}

	createdItems := 0
	for _, it := range cfg.Items {
		if it.Name == "" {
			continue
		}
		owner, ok := usersByEmail[strings.ToLower(it.OwnerEmail)]
		if !ok {
			return fmt.Errorf("item %s: owner %s not found in seed", it.Name, it.OwnerEmail)
		}
		owned, err := db.GetItemsByOwner(ctx, owner.ID, models.PageWindow{From: 0, Size: 1000})
		if err != nil {
			return fmt.Errorf("list items for %s: %w", it.OwnerEmail, err)
		}
		exists := false
		for _, o := range owned {
			if strings.EqualFold(o.Name, it.Name) {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		item := &models.Item{
			Name:        it.Name,
			Description: it.Description,
			Available:   it.Available,
			OwnerID:     owner.ID,
		}
		if err = db.CreateItem(ctx, item); err != nil {
			return fmt.Errorf("create item %s: %w", it.Name, err)
		}
		createdItems++
	}

	fmt.Printf("done: users=%d items=%d\n", createdUsers, createdItems)
	return nil
}
