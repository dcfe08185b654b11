package storage

import (
	"context"
	"encoding/json"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/pkg/errors"
)

const takeawaySelect = `
	SELECT t.id, t.user_id, t.items, t.total_price, t.delivery_address, t.contact_info,
		t.status, t.payment_method, t.payment_status, t.created_at, t.updated_at,
		u.id, u.name, u.email
	FROM takeaways t
	LEFT JOIN users u ON u.id = t.user_id`

type takeawayDocuments struct {
	items, address, contact []byte
}

func encodeTakeaway(t *domain.Takeaway) (takeawayDocuments, error) {
	var (
		docs takeawayDocuments
		err  error
	)
	items := t.Items
	if items == nil {
		items = []domain.TakeawayItem{}
	}
	if docs.items, err = json.Marshal(items); err != nil {
		return docs, errors.Wrap(err, "encode takeaway items")
	}
	if docs.address, err = json.Marshal(t.DeliveryAddress); err != nil {
		return docs, errors.Wrap(err, "encode delivery address")
	}
	if docs.contact, err = json.Marshal(t.ContactInfo); err != nil {
		return docs, errors.Wrap(err, "encode contact info")
	}
	return docs, nil
}

func scanTakeaway(row rowScanner) (*domain.Takeaway, error) {
	var (
		t    domain.Takeaway
		docs takeawayDocuments
		user userSummaryColumns
	)
	dest := []any{
		&t.ID, &t.UserID, &docs.items, &t.TotalPrice, &docs.address, &docs.contact,
		&t.Status, &t.PaymentMethod, &t.PaymentStatus, &t.CreatedAt, &t.UpdatedAt,
	}
	if err := row.Scan(append(dest, user.dest()...)...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(docs.items, &t.Items); err != nil {
		return nil, errors.Wrap(err, "decode takeaway items")
	}
	if err := json.Unmarshal(docs.address, &t.DeliveryAddress); err != nil {
		return nil, errors.Wrap(err, "decode delivery address")
	}
	if err := json.Unmarshal(docs.contact, &t.ContactInfo); err != nil {
		return nil, errors.Wrap(err, "decode contact info")
	}
	t.User = user.summary()
	return &t, nil
}

func (r *PostgresRepository) CreateTakeaway(ctx context.Context, t *domain.Takeaway) error {
	t.RecalculateTotal()
	docs, err := encodeTakeaway(t)
	if err != nil {
		return err
	}
	err = r.DB.QueryRowContext(ctx, `
		INSERT INTO takeaways (id, user_id, items, total_price, delivery_address, contact_info, status, payment_method, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		t.ID, t.UserID, docs.items, t.TotalPrice, docs.address, docs.contact, t.Status, t.PaymentMethod, t.PaymentStatus,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	return translate(err, "insert takeaway", domain.MsgTakeawayNotFound)
}

func (r *PostgresRepository) GetTakeaway(ctx context.Context, id string) (*domain.Takeaway, error) {
	t, err := scanTakeaway(r.DB.QueryRowContext(ctx, takeawaySelect+" WHERE t.id = $1", id))
	if err != nil {
		return nil, translate(err, "get takeaway", domain.MsgTakeawayNotFound)
	}
	if t.PopulatedItems, err = r.GetMenuItems(ctx, t.MenuItemIDs()); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *PostgresRepository) ListTakeaways(ctx context.Context) ([]domain.Takeaway, error) {
	rows, err := r.DB.QueryContext(ctx, takeawaySelect+" ORDER BY t.created_at DESC")
	if err != nil {
		return nil, errors.Wrap(err, "query takeaways")
	}
	defer rows.Close()

	takeaways := []domain.Takeaway{}
	for rows.Next() {
		t, err := scanTakeaway(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan takeaway")
		}
		takeaways = append(takeaways, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate takeaways")
	}

	for i := range takeaways {
		items, err := r.GetMenuItems(ctx, takeaways[i].MenuItemIDs())
		if err != nil {
			return nil, err
		}
		takeaways[i].PopulatedItems = items
	}
	return takeaways, nil
}

func (r *PostgresRepository) UpdateTakeaway(ctx context.Context, t *domain.Takeaway) error {
	t.RecalculateTotal()
	docs, err := encodeTakeaway(t)
	if err != nil {
		return err
	}
	err = r.DB.QueryRowContext(ctx, `
		UPDATE takeaways
		SET items = $1, total_price = $2, delivery_address = $3, contact_info = $4,
			status = $5, payment_method = $6, payment_status = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at`,
		docs.items, t.TotalPrice, docs.address, docs.contact, t.Status, t.PaymentMethod, t.PaymentStatus, t.ID,
	).Scan(&t.UpdatedAt)
	return translate(err, "update takeaway", domain.MsgTakeawayNotFound)
}
