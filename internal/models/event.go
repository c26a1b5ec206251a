package models

import "time"

// ProductEventType names a change applied to a product.
type ProductEventType string

const (
	ProductCreated ProductEventType = "product.created"
	ProductUpdated ProductEventType = "product.updated"
	ProductDeleted ProductEventType = "product.deleted"
)

// ProductEvent is published after a product mutation has been persisted.
type ProductEvent struct {
	Type       ProductEventType `json:"event"`
	ProductID  string           `json:"product_id"`
	Name       string           `json:"name,omitempty"`
	Price      float64          `json:"price,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}
