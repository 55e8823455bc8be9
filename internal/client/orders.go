package client

import (
	"context"

	"backoffice/internal/models"
)

// Orders is the /api/order collection. The console only reads it; Create
// exists for cart checkout.
type Orders struct {
	Collection[models.Order]
}

// Create places an order.
func (o *Orders) Create(ctx context.Context, order models.Order) (*models.Order, error) {
	return o.create(ctx, order)
}
