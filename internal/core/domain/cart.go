package domain

import "time"

// CartLine is one entry of a user's cart. Adding the same product twice yields two lines.
type CartLine struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int
	CreatedAt time.Time
}
