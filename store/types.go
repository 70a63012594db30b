package store

import (
	"time"
)

// Model carries the identifier and audit columns shared by store entities.
// K is the identifier type chosen by each entity.
//
//orm:mapped-superclass
type Model[K comparable] struct {
	ID        K `orm:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
	loaded    bool `orm:"transient"`
}

// 1. Product represents an individual item available for sale.
// We use int64 for Price to represent cents (lowest currency unit) to avoid floating-point errors.
//
//orm:entity
type Product struct {
	Model[int64]
	SKU         string
	Name        string
	Description string
	PriceCents  int64
	Inventory   int
}

// 2. Customer represents the user placing orders. It is read through its
// accessors, except for the address which is stored as is.
//
//orm:entity
//orm:access property
type Customer struct {
	Model[string]
	email    string
	fullName string
	address  *string `orm:"access=field"`
	active   bool
}

// Email returns the login address.
func (c *Customer) Email() string { return c.email }

// SetEmail changes the login address.
func (c *Customer) SetEmail(email string) { c.email = email }

// GetFullName returns the display name.
func (c *Customer) GetFullName() string { return c.fullName }

// IsActive reports whether the customer may place orders.
func (c *Customer) IsActive() bool { return c.active }

// GetGreeting is derived from the full name.
//
//orm:transient
func (c *Customer) GetGreeting() string { return "Dear " + c.fullName }

// 3. Order represents a transaction made by a customer.
//
//orm:entity
type Order struct {
	Model[int64]
	CustomerID int64
	Status     OrderStatus
	TotalCents int64
	Items      []OrderItem `orm:"-"` // loaded separately
	OrderedAt  time.Time
}

// 4. OrderItem represents a specific product line within an order.
// It snapshots the price at the time of purchase.
//
//orm:embeddable
type OrderItem struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice int64
}

// 5. OrderStatus is a custom type for type-safe status handling.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)
