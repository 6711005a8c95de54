package handler

// --- Requests ---

type registerRequest struct {
	Username   string `json:"username" validate:"required,max=64"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	Role       string `json:"role" validate:"required,oneof=customer vendor"`
	VendorName string `json:"vendor_name" validate:"required_if=Role vendor,max=128"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Price is a JSON number or string; shopspring/decimal accepts both.
type createProductRequest struct {
	Name        string          `json:"name" validate:"required,max=256"`
	Price       *decimalRequest `json:"price" validate:"required"`
	Description string          `json:"description" validate:"max=4096"`
}

type updateProductRequest struct {
	Name        *string         `json:"name" validate:"omitempty,max=256"`
	Price       *decimalRequest `json:"price"`
	Description *string         `json:"description" validate:"omitempty,max=4096"`
}

type addCartLineRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  *int  `json:"quantity" validate:"omitempty,min=1,max=10000"`
}

// --- Responses ---

type userResponse struct {
	ID         int64  `json:"id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	VendorName string `json:"vendor_name,omitempty"`
	CreatedAt  string `json:"created_at"`
}

type authResponse struct {
	Token string        `json:"token,omitempty"`
	User  *userResponse `json:"user,omitempty"`
}

type productResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	VendorID    int64  `json:"vendor_id"`
	VendorName  string `json:"vendor_name"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type cartItemResponse struct {
	LineID      int64  `json:"line_id"`
	ProductID   int64  `json:"product_id"`
	Quantity    int    `json:"quantity"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	VendorID    int64  `json:"vendor_id"`
	VendorName  string `json:"vendor_name"`
	LineTotal   string `json:"line_total"`
	AddedAt     string `json:"added_at"`
}

type cartResponse struct {
	Items []cartItemResponse `json:"items"`
	Total string             `json:"total"`
}

type saleResponse struct {
	ID           int64  `json:"id"`
	VendorID     int64  `json:"vendor_id"`
	VendorName   string `json:"vendor_name"`
	CustomerID   int64  `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	Quantity     int    `json:"quantity"`
	TotalPrice   string `json:"total_price"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	ShippedAt    string `json:"shipped_at,omitempty"`
}

type vendorAggregateResponse struct {
	VendorID     int64    `json:"vendor_id"`
	VendorName   string   `json:"vendor_name"`
	Total        string   `json:"total"`
	ProductNames []string `json:"product_names"`
}

type orderResponse struct {
	Total             string                    `json:"total"`
	Vendors           []vendorAggregateResponse `json:"vendors"`
	Sales             []saleResponse            `json:"sales"`
	StaleLinesDrained int                       `json:"stale_lines_drained"`
}

type revenueResponse struct {
	VendorID   int64  `json:"vendor_id"`
	VendorName string `json:"vendor_name"`
	Revenue    string `json:"revenue"`
}
