package events

// Event type identifiers. These are stored in the outbox and must stay
// stable across deployments.
const (
	TypeBasketCheckout = "BasketCheckout"
)

// Transport topics.
const (
	TopicBasketCheckout = "basket.checkout"
)

// BasketCheckout is published when a user checks out their basket.
// The payload is a point-in-time snapshot of the basket taken at checkout,
// not a reference to live state.
type BasketCheckout struct {
	Metadata   Metadata             `json:"metadata"`
	UserName   string               `json:"userName"`
	TotalPrice float64              `json:"totalPrice"`
	Items      []BasketCheckoutItem `json:"items"`
}

// BasketCheckoutItem is a single checked-out line item.
type BasketCheckoutItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Color       string  `json:"color"`
	Price       float64 `json:"price"`
}

func (e *BasketCheckout) GetMetadata() *Metadata { return &e.Metadata }
func (e *BasketCheckout) GetEventType() string   { return TypeBasketCheckout }
func (e *BasketCheckout) GetTopic() string       { return TopicBasketCheckout }

// RegisterAll registers every event type known to this service.
// Called once at startup; the relay refuses to deliver types missing here.
func RegisterAll(r Registry) {
	r.Register(TypeBasketCheckout, func() Event { return &BasketCheckout{} })
}
