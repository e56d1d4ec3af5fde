package models

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

type Review struct {
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	Date          string `json:"date"`
	ReviewerName  string `json:"reviewerName"`
	ReviewerEmail string `json:"reviewerEmail"`
}

type ProductMeta struct {
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
	Barcode   string `json:"barcode,omitempty"`
	QRCode    string `json:"qrCode,omitempty"`
}

// Product mirrors a catalog record. The core never mutates it; Stock is the
// snapshot taken at fetch time.
type Product struct {
	ID                   int64        `json:"id" validate:"required,gt=0"`
	Title                string       `json:"title"`
	Description          string       `json:"description,omitempty"`
	Category             string       `json:"category,omitempty"`
	Price                float64      `json:"price" validate:"gte=0"`
	DiscountPercentage   float64      `json:"discountPercentage" validate:"gte=0,lte=100"`
	Rating               float64      `json:"rating"`
	Stock                int          `json:"stock" validate:"gte=0"`
	Tags                 []string     `json:"tags,omitempty"`
	Brand                string       `json:"brand,omitempty"`
	SKU                  string       `json:"sku,omitempty"`
	Weight               float64      `json:"weight,omitempty"`
	Dimensions           *Dimensions  `json:"dimensions,omitempty"`
	WarrantyInformation  string       `json:"warrantyInformation,omitempty"`
	ShippingInformation  string       `json:"shippingInformation,omitempty"`
	AvailabilityStatus   string       `json:"availabilityStatus,omitempty"`
	Reviews              []Review     `json:"reviews,omitempty"`
	ReturnPolicy         string       `json:"returnPolicy,omitempty"`
	MinimumOrderQuantity int          `json:"minimumOrderQuantity,omitempty" validate:"gte=0"`
	Meta                 *ProductMeta `json:"meta,omitempty"`
	Images               []string     `json:"images,omitempty"`
	Thumbnail            string       `json:"thumbnail,omitempty"`
}

// MinQuantity is the smallest quantity a line for p may hold.
func (p Product) MinQuantity() int {
	if p.MinimumOrderQuantity < 1 {
		return 1
	}

	return p.MinimumOrderQuantity
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

type ProductQuery struct {
	Search   string `json:"q,omitempty"`
	Category string `json:"category,omitempty"`
	Brand    string `json:"brand,omitempty"`
	SortBy   string `json:"sort,omitempty" validate:"omitempty,oneof=price_asc price_desc rating_asc rating_desc"`
}

type Facets struct {
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
}
