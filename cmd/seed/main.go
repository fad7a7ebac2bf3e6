package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/realworld-go/conduit/config"
	"github.com/realworld-go/conduit/internal/domain/entity"
	"github.com/realworld-go/conduit/pkg/helpers"
)

// Seeds a demo author, a follower, one published article with tags, a
// comment and a favorite, so a fresh database has something to browse.
// Safe to run repeatedly.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	const password = "password123"

	demoID, err := seedUser(db, "demo@conduit.local", "demo", password, "I write the welcome posts.")
	if err != nil {
		log.Fatalf("failed to seed demo user: %v", err)
	}
	janeID, err := seedUser(db, "jane@conduit.local", "jane", password, "Early reader.")
	if err != nil {
		log.Fatalf("failed to seed jane: %v", err)
	}
	fmt.Printf("seeded users: demo=%s jane=%s password=%s\n", demoID, janeID, password)

	articleID, err := seedArticle(db, demoID,
		"Welcome to Conduit",
		"A short tour of the demo data",
		"This article was created by the seed command. Sign in as demo or jane to try the feed, favorites and comments.",
		[]string{"welcome", "getting-started"},
	)
	if err != nil {
		log.Fatalf("failed to seed article: %v", err)
	}
	fmt.Printf("seeded article: id=%s\n", articleID)

	if err := seedComment(db, articleID, janeID, "Nice write-up, thanks!"); err != nil {
		log.Fatalf("failed to seed comment: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO follows (user_id, follow_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, janeID, demoID); err != nil {
		log.Fatalf("failed to seed follow: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO article_favorites (article_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, articleID, janeID); err != nil {
		log.Fatalf("failed to seed favorite: %v", err)
	}
	fmt.Println("seeded follow and favorite")
}

func seedUser(db *sql.DB, email, username, password, bio string) (string, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return "", err
	}
	u, err := entity.NewUser(email, username, hash, bio, "")
	if err != nil {
		return "", err
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (id, email, username, password, bio, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (email) DO UPDATE SET bio = EXCLUDED.bio
		RETURNING id
	`, u.ID, u.Email, u.Username, u.Password, u.Bio, u.Image, u.CreatedAt, u.UpdatedAt).Scan(&id)
	return id, err
}

// seedArticle looks the article up by title first; slugs carry a random
// suffix, so reruns would otherwise pile up duplicates.
func seedArticle(db *sql.DB, authorID, title, description, body string, tags []string) (string, error) {
	var id string
	err := db.QueryRow(`
		SELECT id FROM articles WHERE title = $1 AND user_id = $2
	`, title, authorID).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	a, err := entity.NewArticle(title, description, body, tags, authorID)
	if err != nil {
		return "", err
	}
	if _, err := db.Exec(`
		INSERT INTO articles (id, slug, title, description, body, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, a.ID, a.Slug, a.Title, a.Description, a.Body, a.AuthorID, a.CreatedAt, a.UpdatedAt); err != nil {
		return "", err
	}

	for _, name := range a.TagList {
		var tagID string
		if err := db.QueryRow(`
			INSERT INTO tags (id, name)
			VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, uuid.NewString(), name).Scan(&tagID); err != nil {
			return "", err
		}
		if _, err := db.Exec(`
			INSERT INTO article_tags (article_id, tag_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, a.ID, tagID); err != nil {
			return "", err
		}
	}
	return a.ID, nil
}

func seedComment(db *sql.DB, articleID, authorID, body string) error {
	var exists bool
	err := db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM comments WHERE article_id = $1 AND user_id = $2 AND body = $3
		)
	`, articleID, authorID, body).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	c, err := entity.NewComment(body, authorID, articleID)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO comments (id, body, user_id, article_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.Body, c.AuthorID, c.ArticleID, c.CreatedAt)
	return err
}
