package basket

import "errors"

var (
	// ErrBasketNotFound is returned when no basket exists for the user.
	ErrBasketNotFound = errors.New("basket not found")

	// ErrBasketAlreadyExists is returned when creating a basket for a user
	// that already has one.
	ErrBasketAlreadyExists = errors.New("basket already exists")

	// ErrItemNotFound is returned when the product is not in the basket.
	ErrItemNotFound = errors.New("item not found in basket")
)
