package warehouse

import (
	"time"
)

// Tracked identifies warehouse records through its accessors.
//
//orm:mapped-superclass
type Tracked struct {
	id uint
}

// GetID returns the record identifier.
//
//orm:id
func (t *Tracked) GetID() uint { return t.id }

// SetID assigns the record identifier.
func (t *Tracked) SetID(id uint) { t.id = id }

// Stamped adds audit timestamps. It is not mapped itself.
type Stamped struct {
	Tracked
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Address represents a physical or billing/shipping address.
//
//orm:embeddable
type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Shipment is a parcel leaving the warehouse.
//
//orm:entity
type Shipment struct {
	Stamped
	carrier     string
	weightGrams float64
	destination Address
	Label       []byte `orm:"access=field"`
}

// GetCarrier returns the carrier code.
func (s *Shipment) GetCarrier() string { return s.carrier }

// GetWeight returns the parcel weight in grams.
func (s *Shipment) GetWeight() float64 { return s.weightGrams }

// GetDestination returns the delivery address.
func (s *Shipment) GetDestination() Address { return s.destination }

// GetAgeDays is computed from the creation time.
//
//orm:transient
func (s *Shipment) GetAgeDays() int { return int(time.Since(s.CreatedAt).Hours() / 24) }

// ExpressShipment is a shipment with a delivery deadline.
//
//orm:entity
type ExpressShipment struct {
	Shipment
	deadline time.Time
}

// GetDeadline returns the promised delivery time.
func (e *ExpressShipment) GetDeadline() time.Time { return e.deadline }
