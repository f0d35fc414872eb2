package services

import "strings"

// StockAdjustment is the input of the adjust-stock operation. Quantity is
// signed (negative removes stock) and must not be zero; a justification is
// mandatory.
type StockAdjustment struct {
	ItemID      string
	LocationID  string
	Quantity    float64
	Reason      string
	PerformedBy string
	DocumentRef string
}

func (a StockAdjustment) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(a.ItemID) == "" {
		errs["item"] = "Inventory item is required"
	}
	if strings.TrimSpace(a.LocationID) == "" {
		errs["location"] = "Location is required"
	}
	if a.Quantity == 0 {
		errs["quantity"] = "Adjustment quantity must not be zero"
	}
	if strings.TrimSpace(a.Reason) == "" {
		errs["reason"] = "A reason is required for every adjustment"
	}
	if strings.TrimSpace(a.PerformedBy) == "" {
		errs["performed_by"] = "Acting user is required"
	}
	return errs
}

// ReservationAction says which way a reserved-stock change goes.
type ReservationAction string

const (
	ReserveIncrease ReservationAction = "increase"
	ReserveDecrease ReservationAction = "decrease"
)

// ReservationChange is the input of the update-reserved-stock operation.
type ReservationChange struct {
	ItemID      string
	LocationID  string
	Action      ReservationAction
	Quantity    float64
	PerformedBy string
	Notes       string
}

func (c ReservationChange) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(c.ItemID) == "" {
		errs["item"] = "Inventory item is required"
	}
	if strings.TrimSpace(c.LocationID) == "" {
		errs["location"] = "Location is required"
	}
	if c.Action != ReserveIncrease && c.Action != ReserveDecrease {
		errs["action"] = "Action must be increase or decrease"
	}
	if c.Quantity <= 0 {
		errs["quantity"] = "Quantity must be greater than zero"
	}
	if strings.TrimSpace(c.PerformedBy) == "" {
		errs["performed_by"] = "Acting user is required"
	}
	return errs
}
