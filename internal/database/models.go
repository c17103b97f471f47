package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the database model for a registered account
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Fullname     string    `bun:"fullname,notnull"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:now()"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:now()"`
}

// SavedRecipe is the database model for a user's saved recipe.
// Content is stored as an opaque jsonb document; its shape is owned
// by the recipe provider and may change without a schema migration.
type SavedRecipe struct {
	bun.BaseModel `bun:"table:saved_recipes,alias:sr"`

	ID         uuid.UUID       `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID     uuid.UUID       `bun:"user_id,notnull,type:uuid"`
	Title      string          `bun:"title,notnull"`
	Content    json.RawMessage `bun:"content,type:jsonb"`
	SearchType string          `bun:"search_type,notnull"`
	Rating     int             `bun:"rating,notnull,default:0"`
	CreatedAt  time.Time       `bun:"created_at,notnull,default:now()"`
	UpdatedAt  time.Time       `bun:"updated_at,notnull,default:now()"`
}
