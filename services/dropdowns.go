package services

// UOMOptions is the list of Unit of Measurement options.
var UOMOptions = []string{
	"Nos",
	"Meters",
	"Sqm",
	"Kg",
	"Ltr",
	"Set",
	"Roll",
	"Box",
	"Bag",
	"Pair",
	"Lot",
	"Day",
	"Hour",
}

// ServiceTypeOptions lists the supported service order types.
var ServiceTypeOptions = []string{"installation", "maintenance", "repair", "survey"}

// ProjectStatusOptions lists the project lifecycle states.
var ProjectStatusOptions = []string{"active", "completed", "on_hold"}

// ServiceOrderStatusOptions lists the service order lifecycle states.
var ServiceOrderStatusOptions = []string{"draft", "scheduled", "in_progress", "completed", "cancelled"}

// SeverityOptions lists risk severities.
var SeverityOptions = []string{"low", "medium", "high"}

// SpecialtyOptions lists subcontractor trades.
var SpecialtyOptions = []string{
	"general",
	"electrical",
	"plumbing",
	"carpentry",
	"masonry",
	"welding",
	"painting",
	"hvac",
}
