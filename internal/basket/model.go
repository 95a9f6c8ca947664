package basket

import "github.com/samber/lo"

// ShoppingCart is the basket aggregate, keyed by user name.
type ShoppingCart struct {
	ID       string             `bson:"_id"`
	UserName string             `bson:"userName"`
	Items    []ShoppingCartItem `bson:"items"`
}

type ShoppingCartItem struct {
	ProductID   string  `bson:"productId"`
	ProductName string  `bson:"productName"`
	Quantity    int     `bson:"quantity"`
	Color       string  `bson:"color"`
	Price       float64 `bson:"price"`
}

// TotalPrice is derived from the line items, never stored.
func (c *ShoppingCart) TotalPrice() float64 {
	return lo.SumBy(c.Items, func(item ShoppingCartItem) float64 {
		return item.Price * float64(item.Quantity)
	})
}

// AddItem adds a line item to the cart. An item with the same product and
// color merges into the existing line by increasing its quantity.
func (c *ShoppingCart) AddItem(item ShoppingCartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID && c.Items[i].Color == item.Color {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// RemoveItem removes all lines for the given product.
// Returns false when the product is not in the cart.
func (c *ShoppingCart) RemoveItem(productID string) bool {
	filtered := lo.Reject(c.Items, func(item ShoppingCartItem, _ int) bool {
		return item.ProductID == productID
	})
	if len(filtered) == len(c.Items) {
		return false
	}
	c.Items = filtered
	return true
}

// UpdateItemPrice sets a new price on every line for the given product.
// Returns false when the product is not in the cart.
func (c *ShoppingCart) UpdateItemPrice(productID string, price float64) bool {
	updated := false
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Price = price
			updated = true
		}
	}
	return updated
}
