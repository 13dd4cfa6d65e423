package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"nutriTrackAPI/internal/shopping"
)

type ShoppingService struct {
	db *pgxpool.Pool
}

func NewShoppingService(db *pgxpool.Pool) *ShoppingService {
	return &ShoppingService{db: db}
}

func (s *ShoppingService) AddItem(ctx context.Context, clerkID string, req *shopping.AddItemRequest) (*shopping.Item, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	INSERT INTO shopping_list_items (id, user_id, name, quantity, checked, created_at)
	VALUES ($1, $2, $3, $4, false, NOW())
	RETURNING id, user_id, name, quantity, checked, created_at
	`

	item := &shopping.Item{}
	err = s.db.QueryRow(ctx, query, uuid.New(), userID, req.Name, req.Quantity).
		Scan(&item.ID, &item.UserID, &item.Name, &item.Quantity, &item.Checked, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add shopping item: %w", err)
	}

	return item, nil
}

func (s *ShoppingService) GetItems(ctx context.Context, clerkID string) ([]*shopping.Item, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	query := `
	SELECT id, user_id, name, quantity, checked, created_at
	FROM shopping_list_items
	WHERE user_id = $1
	ORDER BY checked, created_at DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shopping list: %w", err)
	}
	defer rows.Close()

	items := []*shopping.Item{}
	for rows.Next() {
		item := &shopping.Item{}
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Quantity, &item.Checked, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shopping item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (s *ShoppingService) ToggleItem(ctx context.Context, clerkID string, itemID string) (*shopping.Item, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	itemUUID, err := uuid.Parse(itemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item ID: %w", err)
	}

	query := `
	UPDATE shopping_list_items
	SET checked = NOT checked
	WHERE id = $1 AND user_id = $2
	RETURNING id, user_id, name, quantity, checked, created_at
	`

	item := &shopping.Item{}
	err = s.db.QueryRow(ctx, query, itemUUID, userID).
		Scan(&item.ID, &item.UserID, &item.Name, &item.Quantity, &item.Checked, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("shopping item not found: %w", err)
	}

	return item, nil
}

func (s *ShoppingService) DeleteItem(ctx context.Context, clerkID string, itemID string) error {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	itemUUID, err := uuid.Parse(itemID)
	if err != nil {
		return fmt.Errorf("invalid item ID: %w", err)
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM shopping_list_items WHERE id = $1 AND user_id = $2`, itemUUID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shopping item not found")
	}

	return nil
}
