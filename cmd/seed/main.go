package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"inkpress/config"
	"inkpress/pkg/helpers"
)

// Seeds an admin account, a demo author and a published sample post for
// local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hasher := helpers.BcryptHasher{}

	adminID := upsertUser(db, hasher, "admin@inkpress.dev", "admin-password", "admin")
	authorID := upsertUser(db, hasher, "author@inkpress.dev", "author-password", "user")
	fmt.Printf("seeded users: admin=%d author=%d\n", adminID, authorID)

	var postID int64
	err = db.QueryRow(`
		INSERT INTO posts (author_id, title, slug, markdown, published)
		VALUES ($1, 'Hello, Inkpress', 'hello-inkpress', E'# Hello\n\nFirst post.', true)
		ON CONFLICT DO NOTHING
		RETURNING id
	`, authorID).Scan(&postID)
	if err == sql.ErrNoRows {
		fmt.Println("sample post already present")
		return
	}
	if err != nil {
		log.Fatalf("failed to seed post: %v", err)
	}
	fmt.Printf("seeded post: id=%d slug=hello-inkpress\n", postID)
}

func upsertUser(db *sql.DB, hasher helpers.BcryptHasher, email, password, role string) int64 {
	hash, err := hasher.Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	var id int64
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, role, avatar_url)
		VALUES ($1, $2, $3, '')
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, hash, role).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user %s: %v", email, err)
	}
	return id
}
