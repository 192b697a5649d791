package packs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var ErrPackNotFound = errors.New("pack not found")

// CommunityPack is a user-submitted pack, persisted in postgres. Mirrors the
// reference deployment's community_packs table.
type CommunityPack struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Category    string    `gorm:"index;not null" json:"category"`
	Items       []string  `gorm:"serializer:json;not null" json:"items"`
	CreatorName string    `json:"creator_name"`
	Upvotes     int       `gorm:"not null;default:0" json:"upvotes"`
	Plays       int       `gorm:"not null;default:0" json:"plays"`
	CreatedAt   time.Time `json:"created_at"`
}

func (CommunityPack) TableName() string { return "community_packs" }

type Store struct {
	db *gorm.DB
}

// OpenStore connects to postgres and migrates the community_packs table.
func OpenStore(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open community pack store: %w", err)
	}
	if err := db.AutoMigrate(&CommunityPack{}); err != nil {
		return nil, fmt.Errorf("migrate community pack store: %w", err)
	}
	return &Store{db: db}, nil
}

type ListOptions struct {
	Category string // empty or "all" means every category
	SortBy   string // upvotes | plays | created_at; default upvotes
	Limit    int
}

func (s *Store) List(ctx context.Context, opts ListOptions) ([]CommunityPack, error) {
	q := s.db.WithContext(ctx).Model(&CommunityPack{})

	if opts.Category != "" && opts.Category != "all" {
		q = q.Where("category = ?", opts.Category)
	}

	switch opts.SortBy {
	case "plays":
		q = q.Order("plays DESC")
	case "created_at":
		q = q.Order("created_at DESC")
	default:
		q = q.Order("upvotes DESC")
	}

	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	var out []CommunityPack
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list community packs: %w", err)
	}
	return out, nil
}

func (s *Store) Search(ctx context.Context, query string, limit int) ([]CommunityPack, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []CommunityPack
	err := s.db.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Order("upvotes DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("search community packs: %w", err)
	}
	return out, nil
}

func (s *Store) Create(ctx context.Context, p CommunityPack) (CommunityPack, error) {
	p.ID = uuid.NewString()
	p.Upvotes = 0
	p.Plays = 0
	p.CreatedAt = time.Now()

	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return CommunityPack{}, fmt.Errorf("create community pack: %w", err)
	}
	return p, nil
}

func (s *Store) Upvote(ctx context.Context, id string) error {
	return s.increment(ctx, id, "upvotes")
}

func (s *Store) IncrementPlays(ctx context.Context, id string) error {
	return s.increment(ctx, id, "plays")
}

func (s *Store) increment(ctx context.Context, id, column string) error {
	res := s.db.WithContext(ctx).
		Model(&CommunityPack{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if res.Error != nil {
		return fmt.Errorf("increment %s: %w", column, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPackNotFound
	}
	return nil
}
