package model

// StatusOption maps an internal status to its display label and style token.
type StatusOption struct {
	Value Status
	Label string
	Color string
}

// StatusOptions returns the static lookup table used by presentation.
func StatusOptions() []StatusOption {
	return []StatusOption{
		{Value: StatusOrders, Label: "Orders", Color: "yellow"},
		{Value: StatusDelivered, Label: "Delivered", Color: "green"},
	}
}
