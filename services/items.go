package services

// CatalogItem is one entry of the inventory catalog reference collection,
// carrying the fields a bill-of-materials line auto-fills from.
type CatalogItem struct {
	ID            string
	Name          string
	SKU           string
	Specs         string
	UnitOfMeasure string
	SellingPrice  *float64
}

// BOMLine is one bill-of-materials row on a service order. ItemID is set only
// while the line is linked to a catalog entry; Total is derived and never
// edited directly.
type BOMLine struct {
	ItemID        string   `json:"item"`
	ItemName      string   `json:"item_name"`
	Specs         string   `json:"specs"`
	UnitOfMeasure string   `json:"uom"`
	Quantity      *float64 `json:"quantity"`
	Rate          *float64 `json:"rate"`
	Total         *float64 `json:"total"`
}

// Recompute refreshes the derived total from quantity and rate.
func (l *BOMLine) Recompute() {
	l.Total = CalcLineTotal(l.Quantity, l.Rate)
}

// ApplyCatalogItem fills the line from a catalog selection in one update:
// name, specs, unit of measure and rate, then the derived total.
func (l *BOMLine) ApplyCatalogItem(item CatalogItem) {
	l.ItemID = item.ID
	l.ItemName = item.Name
	l.Specs = item.Specs
	l.UnitOfMeasure = item.UnitOfMeasure
	if item.SellingPrice != nil {
		rate := *item.SellingPrice
		l.Rate = &rate
	} else {
		l.Rate = nil
	}
	l.Recompute()
}

// ClearCatalogItem resets every auto-filled field so nothing stale survives
// once the selection is removed. Quantity is user-entered and kept.
func (l *BOMLine) ClearCatalogItem() {
	l.ItemID = ""
	l.ItemName = ""
	l.Specs = ""
	l.UnitOfMeasure = ""
	l.Rate = nil
	l.Recompute()
}

// StockLevel is one per-location stock row on an inventory item.
type StockLevel struct {
	LocationID     string  `json:"location"`
	CurrentStock   float64 `json:"current_stock"`
	ReservedStock  float64 `json:"reserved_stock"`
	AvailableStock float64 `json:"available_stock"`
}

// Milestone is one project milestone row.
type Milestone struct {
	Title   string `json:"title"`
	DueDate string `json:"due_date"` // YYYY-MM-DD
	Status  string `json:"status"`
}

// Risk is one project risk-register row.
type Risk struct {
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Mitigation  string `json:"mitigation"`
}

// DesignField is one key/value pair of a service order's design summary.
type DesignField struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Default constructors for the list editors. A fresh stock level starts with
// every numeric field at zero; a fresh BOM line has no item reference.
func NewBOMLine() BOMLine       { return BOMLine{} }
func NewStockLevel() StockLevel { return StockLevel{} }
func NewMilestone() Milestone   { return Milestone{Status: "pending"} }
func NewRisk() Risk             { return Risk{Severity: "medium"} }
func NewDesignField() DesignField {
	return DesignField{}
}
