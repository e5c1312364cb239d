package model

type Material struct {
	Name        string `json:"name"`
	Group       string `json:"group"`
	Description string `json:"description"`
}

type FormType struct {
	Name            string            `json:"name"`
	Description     string            `json:"description"`
	Dimensions      []string          `json:"dimensions"`
	DimensionLabels map[string]string `json:"dimension_labels"`
}

type ManufacturingMethod struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	DurationDays int    `json:"duration_days"`
}

type StatusLabel struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type CurrencyInfo struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

var Materials = map[string]Material{
	"AL5754":    {Name: "AL5754", Group: "Aluminium", Description: "Marine grade, good weldability"},
	"AL7075":    {Name: "AL7075", Group: "Aluminium", Description: "High strength, aerospace"},
	"AL6061":    {Name: "AL6061", Group: "Aluminium", Description: "General purpose, medium strength"},
	"AL1050":    {Name: "AL1050", Group: "Aluminium", Description: "High formability, low strength"},
	"S700MC":    {Name: "S700MC", Group: "Steel", Description: "High strength, cold forming"},
	"S690QL":    {Name: "S690QL", Group: "Steel", Description: "Quenched and tempered, high toughness"},
	"S355":      {Name: "S355", Group: "Steel", Description: "Structural steel"},
	"S235":      {Name: "S235", Group: "Steel", Description: "Mild steel, weldable"},
	"HARDOX450": {Name: "HARDOX 450", Group: "Steel", Description: "Wear resistant"},
	"WELDOX":    {Name: "WELDOX", Group: "Steel", Description: "High strength, weldable"},
	"AISI304":   {Name: "AISI 304", Group: "Stainless Steel", Description: "18/8, general purpose, non-magnetic"},
	"AISI316L":  {Name: "AISI 316L", Group: "Stainless Steel", Description: "Acid resistant, marine"},
	"AISI301":   {Name: "AISI 301", Group: "Stainless Steel", Description: "Spring temper, high elasticity"},
	"AISI303":   {Name: "AISI 303", Group: "Stainless Steel", Description: "Free machining"},
}

var FormTypes = map[string]FormType{
	"prismatic": {
		Name:            "Prismatic",
		Description:     "Square or rectangular section",
		Dimensions:      []string{"width", "height", "length"},
		DimensionLabels: map[string]string{"width": "Width (mm)", "height": "Height (mm)", "length": "Length (mm)"},
	},
	"cylindrical": {
		Name:            "Solid cylinder",
		Description:     "Round bar",
		Dimensions:      []string{"diameter", "length"},
		DimensionLabels: map[string]string{"diameter": "Diameter (mm)", "length": "Length (mm)"},
	},
	"tube": {
		Name:            "Tube",
		Description:     "Hollow cylinder",
		Dimensions:      []string{"outer_diameter", "inner_diameter", "length"},
		DimensionLabels: map[string]string{"outer_diameter": "Outer diameter (mm)", "inner_diameter": "Inner diameter (mm)", "length": "Length (mm)"},
	},
}

// ManufacturingMethods is keyed by method code. The thousands digit is the category.
var ManufacturingMethods = map[string]ManufacturingMethod{
	"1001": {Code: "1001", Name: "Laser cutting", Category: "Sheet metal forming", Description: "Precise cutting, complex geometry", DurationDays: 2},
	"1002": {Code: "1002", Name: "Press brake bending", Category: "Sheet metal forming", Description: "Sheet bending", DurationDays: 1},
	"1003": {Code: "1003", Name: "Punching", Category: "Sheet metal forming", Description: "Punching and forming", DurationDays: 1},
	"1004": {Code: "1004", Name: "Plasma cutting", Category: "Sheet metal forming", Description: "Thick sheet cutting", DurationDays: 2},
	"1005": {Code: "1005", Name: "Waterjet", Category: "Sheet metal forming", Description: "Cutting without heat damage", DurationDays: 3},
	"1006": {Code: "1006", Name: "Guillotine", Category: "Sheet metal forming", Description: "Straight cuts", DurationDays: 1},
	"1007": {Code: "1007", Name: "Roll bending", Category: "Sheet metal forming", Description: "Tube and cylinder shaping", DurationDays: 2},
	"1008": {Code: "1008", Name: "Beading", Category: "Sheet metal forming", Description: "Stiffening ribs", DurationDays: 1},
	"1009": {Code: "1009", Name: "Spinning", Category: "Sheet metal forming", Description: "Press forming", DurationDays: 3},
	"2001": {Code: "2001", Name: "MIG/MAG welding", Category: "Welding", Description: "Fast general purpose welding", DurationDays: 2},
	"2002": {Code: "2002", Name: "TIG welding", Category: "Welding", Description: "Precise high quality welding", DurationDays: 3},
	"2003": {Code: "2003", Name: "Arc welding", Category: "Welding", Description: "Field welding, thick material", DurationDays: 2},
	"2004": {Code: "2004", Name: "Spot welding", Category: "Welding", Description: "Sheet joining", DurationDays: 1},
	"2005": {Code: "2005", Name: "Robotic welding", Category: "Welding", Description: "Series production", DurationDays: 2},
	"2006": {Code: "2006", Name: "Stud welding", Category: "Welding", Description: "Bolt and pin welding", DurationDays: 1},
	"3001": {Code: "3001", Name: "CNC turning", Category: "Machining", Description: "Cylindrical parts, threading", DurationDays: 3},
	"3002": {Code: "3002", Name: "CNC milling (3 axis)", Category: "Machining", Description: "Planar machining, holes, pockets", DurationDays: 3},
	"3003": {Code: "3003", Name: "CNC milling (4-5 axis)", Category: "Machining", Description: "Complex 3D geometry", DurationDays: 5},
	"3004": {Code: "3004", Name: "Manual turning", Category: "Machining", Description: "Prototypes, small batches", DurationDays: 2},
	"3005": {Code: "3005", Name: "Swiss turning", Category: "Machining", Description: "Series production from bar", DurationDays: 2},
	"3006": {Code: "3006", Name: "Wire EDM", Category: "Machining", Description: "Hardened material, precise cutting", DurationDays: 4},
	"3007": {Code: "3007", Name: "Sinker EDM", Category: "Machining", Description: "Mould cavities", DurationDays: 5},
	"3008": {Code: "3008", Name: "Grinding", Category: "Machining", Description: "Surface finishing, tight tolerance", DurationDays: 2},
	"3009": {Code: "3009", Name: "Honing", Category: "Machining", Description: "Bore finishing", DurationDays: 2},
	"3010": {Code: "3010", Name: "Broaching", Category: "Machining", Description: "Keyways, spline profiles", DurationDays: 2},
	"4001": {Code: "4001", Name: "FDM printing", Category: "3D printing", Description: "Thermoplastic prototypes", DurationDays: 2},
	"4002": {Code: "4002", Name: "SLA printing", Category: "3D printing", Description: "Resin, precise prototypes", DurationDays: 3},
	"4003": {Code: "4003", Name: "SLS printing", Category: "3D printing", Description: "Functional plastic parts", DurationDays: 4},
	"4004": {Code: "4004", Name: "DMLS metal printing", Category: "3D printing", Description: "Metal parts", DurationDays: 7},
	"5001": {Code: "5001", Name: "Anodizing", Category: "Surface treatment", Description: "Aluminium surface hardening", DurationDays: 3},
	"5002": {Code: "5002", Name: "Galvanizing", Category: "Surface treatment", Description: "Zinc coating", DurationDays: 3},
	"5003": {Code: "5003", Name: "Powder coating", Category: "Surface treatment", Description: "Electrostatic coating", DurationDays: 3},
	"5004": {Code: "5004", Name: "Wet painting", Category: "Surface treatment", Description: "Oven paint", DurationDays: 4},
	"5005": {Code: "5005", Name: "Sandblasting", Category: "Surface treatment", Description: "Rust removal, surface prep", DurationDays: 1},
	"5006": {Code: "5006", Name: "Nitriding", Category: "Surface treatment", Description: "Steel surface hardening", DurationDays: 3},
	"5007": {Code: "5007", Name: "Carburizing", Category: "Surface treatment", Description: "Gear and shaft hardening", DurationDays: 4},
	"5008": {Code: "5008", Name: "Induction hardening", Category: "Surface treatment", Description: "Local surface hardening", DurationDays: 2},
	"5009": {Code: "5009", Name: "Heat treatment", Category: "Surface treatment", Description: "Annealing, hardening", DurationDays: 3},
	"9001": {Code: "9001", Name: "Bearings", Category: "Purchased goods", Description: "Bearing supply", DurationDays: 5},
	"9002": {Code: "9002", Name: "Fasteners", Category: "Purchased goods", Description: "Bolts, nuts, washers", DurationDays: 3},
	"9003": {Code: "9003", Name: "Electrical parts", Category: "Purchased goods", Description: "Cables, fuses, relays", DurationDays: 5},
	"9004": {Code: "9004", Name: "Motors and gearboxes", Category: "Purchased goods", Description: "Electric motors", DurationDays: 10},
	"9005": {Code: "9005", Name: "Hydraulics and pneumatics", Category: "Purchased goods", Description: "Valves, cylinders, pumps", DurationDays: 7},
	"9006": {Code: "9006", Name: "Automation", Category: "Purchased goods", Description: "PLC, sensors, encoders", DurationDays: 7},
	"9007": {Code: "9007", Name: "Steel stock", Category: "Purchased goods", Description: "Semi-finished steel", DurationDays: 7},
	"9008": {Code: "9008", Name: "Aluminium and stainless stock", Category: "Purchased goods", Description: "Semi-finished aluminium and stainless", DurationDays: 7},
}

var ProjectStatuses = map[string]StatusLabel{
	string(ProjectStatusPlanning):   {Name: "Planning", Color: "#3b82f6"},
	string(ProjectStatusInProgress): {Name: "In progress", Color: "#f59e0b"},
	string(ProjectStatusCompleted):  {Name: "Completed", Color: "#10b981"},
	string(ProjectStatusOnHold):     {Name: "On hold", Color: "#6b7280"},
	string(ProjectStatusCancelled):  {Name: "Cancelled", Color: "#ef4444"},
}

var PartStatuses = map[string]StatusLabel{
	string(PartStatusPending):      {Name: "Pending", Color: "#6b7280"},
	string(PartStatusInProduction): {Name: "In production", Color: "#3b82f6"},
	string(PartStatusQualityCheck): {Name: "Quality check", Color: "#f59e0b"},
	string(PartStatusCompleted):    {Name: "Completed", Color: "#10b981"},
	string(PartStatusRejected):     {Name: "Rejected", Color: "#ef4444"},
}

var OrderStatuses = map[string]StatusLabel{
	string(OrderStatusPending):      {Name: "Pending", Color: "#6b7280"},
	string(OrderStatusConfirmed):    {Name: "Confirmed", Color: "#3b82f6"},
	string(OrderStatusInProduction): {Name: "In production", Color: "#f59e0b"},
	string(OrderStatusShipped):      {Name: "Shipped", Color: "#8b5cf6"},
	string(OrderStatusDelivered):    {Name: "Delivered", Color: "#10b981"},
	string(OrderStatusCancelled):    {Name: "Cancelled", Color: "#ef4444"},
}

var QuoteStatuses = map[string]StatusLabel{
	string(QuoteStatusRequested): {Name: "Requested", Color: "#6b7280"},
	string(QuoteStatusReceived):  {Name: "Received", Color: "#3b82f6"},
	string(QuoteStatusApproved):  {Name: "Approved", Color: "#10b981"},
	string(QuoteStatusRejected):  {Name: "Rejected", Color: "#ef4444"},
	string(QuoteStatusExpired):   {Name: "Expired", Color: "#f59e0b"},
}

var Currencies = map[string]CurrencyInfo{
	string(CurrencyTRY): {Code: "TRY", Name: "Turkish Lira", Symbol: "₺"},
	string(CurrencyUSD): {Code: "USD", Name: "US Dollar", Symbol: "$"},
	string(CurrencyEUR): {Code: "EUR", Name: "Euro", Symbol: "€"},
}
