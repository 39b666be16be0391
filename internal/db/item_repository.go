package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/craftdex/internal/model"
)

// itemData — содержимое JSONB-колонки data.
type itemData struct {
	IconLocal string                `json:"icon_local,omitempty"`
	Variants  []model.RecipeVariant `json:"variants,omitempty"`
}

// ItemRepository stores catalog items; recipe variants live in a JSONB column.
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

// Item loads one item by ID.
// Returns nil, nil if the item does not exist.
func (r *ItemRepository) Item(ctx context.Context, id string) (*model.Item, error) {
	var (
		it      model.Item
		nameFR  *string
		categ   *string
		rawData []byte
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, name, name_fr, category, data FROM items WHERE id = $1`, id,
	).Scan(&it.ID, &it.Name, &nameFR, &categ, &rawData)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying item %q: %w", id, err)
	}
	if nameFR != nil {
		it.NameFR = *nameFR
	}
	if categ != nil {
		it.Category = *categ
	}

	var d itemData
	if err := json.Unmarshal(rawData, &d); err != nil {
		return nil, fmt.Errorf("decoding data of item %q: %w", id, err)
	}
	it.IconLocal = d.IconLocal
	it.Variants = d.Variants
	return &it, nil
}

// Count returns the number of stored items.
func (r *ItemRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

// UpsertTx inserts or replaces one item within a transaction.
func (r *ItemRepository) UpsertTx(ctx context.Context, tx pgx.Tx, it *model.Item) error {
	raw, err := json.Marshal(itemData{IconLocal: it.IconLocal, Variants: it.Variants})
	if err != nil {
		return fmt.Errorf("encoding data of item %q: %w", it.ID, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO items (id, name, name_fr, category, data)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			name_fr = EXCLUDED.name_fr,
			category = EXCLUDED.category,
			data = EXCLUDED.data,
			updated_at = now()
	`, it.ID, it.Name, it.NameFR, it.Category, raw)
	if err != nil {
		return fmt.Errorf("upserting item %q: %w", it.ID, err)
	}
	return nil
}

// Upsert inserts or replaces one item (standalone, creates own transaction).
func (r *ItemRepository) Upsert(ctx context.Context, it *model.Item) error {
	return r.UpsertAll(ctx, []*model.Item{it})
}

// UpsertAll inserts or replaces items in a single transaction.
func (r *ItemRepository) UpsertAll(ctx context.Context, items []*model.Item) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "error", err)
		}
	}()

	for _, it := range items {
		if err := r.UpsertTx(ctx, tx, it); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.Debug("upserted items", "count", len(items))
	return nil
}
