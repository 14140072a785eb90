package models

// CartItem is one product line in the session cart. Name, price and image are
// snapshots taken when the product was added, so later catalog edits do not
// change what the customer agreed to pay.
type CartItem struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"image_url"`
}

func (i CartItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// Cart is the session-scoped shopping cart. It is a plain value type,
// serialized as JSON into the session store; it is not a database entity.
type Cart struct {
	Items []CartItem `json:"items"`
}

// AddItem merges by product id: adding a product already in the cart
// increments its quantity instead of creating a second line.
func (c *Cart) AddItem(item CartItem) {
	for idx := range c.Items {
		if c.Items[idx].ProductID == item.ProductID {
			c.Items[idx].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity sets the quantity for a product line. A quantity of zero or
// less removes the line. Unknown product ids are a no-op.
func (c *Cart) UpdateQuantity(productID uint, quantity int) {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			if quantity > 0 {
				c.Items[idx].Quantity = quantity
			} else {
				c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			}
			return
		}
	}
}

// RemoveItem removes a product line if present.
func (c *Cart) RemoveItem(productID uint) {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.Items = nil
}

// Total is recomputed from the lines on every call.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// TotalItems is the sum of quantities, used for the header badge.
func (c *Cart) TotalItems() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
