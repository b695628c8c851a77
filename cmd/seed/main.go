// seed inserts development sample data for local testing.
// Idempotent: skips all inserts when the dev user (alice) already exists.
package main

import (
	"context"
	"log"
	"time"

	"skillswap/backend/internal/config"
	"skillswap/backend/internal/db"
	matchdomain "skillswap/backend/internal/match/domain"
	matchrepo "skillswap/backend/internal/match/repository"
	"skillswap/backend/internal/security"
	skilldomain "skillswap/backend/internal/skill/domain"
	skillrepo "skillswap/backend/internal/skill/repository"
	userdomain "skillswap/backend/internal/user/domain"
	userrepo "skillswap/backend/internal/user/repository"
)

const devPassword = "password123"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	users := userrepo.NewPostgresRepository(conn)
	skills := skillrepo.NewPostgresRepository(conn)
	matches := matchrepo.NewPostgresRepository(conn)

	existing, err := users.GetByUsername(ctx, "alice")
	if err != nil {
		log.Fatalf("seed: lookup: %v", err)
	}
	if existing != nil {
		log.Println("seed: dev data already present, nothing to do")
		return
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	hash, err := hasher.Hash([]byte(devPassword))
	if err != nil {
		log.Fatalf("seed: hash: %v", err)
	}

	now := time.Now().UTC()
	alice := &userdomain.User{Username: "alice", Email: "alice@example.com", PasswordHash: hash, Bio: "Backend developer, wants to pick up piano.", CreatedAt: now}
	bob := &userdomain.User{Username: "bob", Email: "bob@example.com", PasswordHash: hash, Bio: "Pianist, curious about Go.", CreatedAt: now}
	for _, u := range []*userdomain.User{alice, bob} {
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("seed: create user %s: %v", u.Username, err)
		}
	}

	for _, s := range []*skilldomain.Skill{
		{UserID: alice.ID, Name: "Go", Kind: skilldomain.KindTeach, Level: "advanced", CreatedAt: now},
		{UserID: alice.ID, Name: "Piano", Kind: skilldomain.KindLearn, CreatedAt: now},
		{UserID: bob.ID, Name: "Piano", Kind: skilldomain.KindTeach, Level: "intermediate", CreatedAt: now},
		{UserID: bob.ID, Name: "Go", Kind: skilldomain.KindLearn, CreatedAt: now},
	} {
		if err := skills.Create(ctx, s); err != nil {
			log.Fatalf("seed: create skill %s: %v", s.Name, err)
		}
	}

	m := &matchdomain.Match{RequesterID: alice.ID, PartnerID: bob.ID, SkillName: "Piano", Status: matchdomain.StatusPending, CreatedAt: now}
	if err := matches.Create(ctx, m); err != nil {
		log.Fatalf("seed: create match: %v", err)
	}

	log.Printf("seed: created users alice/bob (password %q), 4 skills, 1 pending match", devPassword)
}
