package products

// Category groups products and declares which attribute names its products may
// carry. Ids are uuid strings.
type Category struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Attributes []string `json:"attributes"`
	ImgLink    string   `json:"imgLink"`
}

type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type Review struct {
	UserID      int     `json:"userId"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
}

type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Brand       string      `json:"brand"`
	Attributes  []Attribute `json:"attributes"`
	Price       float64     `json:"price"`
	Category    Category    `json:"category"`
	Quantity    int         `json:"quantity"`
	ImgLinks    []string    `json:"imgLinks"`
	Reviews     []Review    `json:"reviews"`
	Gender      string      `json:"gender"`
}

// NewProduct is the add-product request body.
type NewProduct struct {
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description"`
	Brand       string      `json:"brand"`
	Attributes  []Attribute `json:"attributes"`
	Price       float64     `json:"price" validate:"required,gt=0"`
	Quantity    int         `json:"quantity" validate:"required,gt=0"`
	ImgLinks    []string    `json:"imgLinks"`
	Gender      string      `json:"gender" validate:"required"`
}

// UpdateProduct is the patch body. Quantity travels as a string and must parse
// as an integer. A nil field is left untouched.
type UpdateProduct struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Brand       *string     `json:"brand"`
	Attributes  []Attribute `json:"attributes"`
	Price       *float64    `json:"price"`
	Quantity    *string     `json:"quantity"`
	ImgLinks    []string    `json:"imgLinks"`
}

type NewCategory struct {
	Name       string   `json:"name" validate:"required"`
	Attributes []string `json:"attributes"`
	ImgLink    string   `json:"imgLink" validate:"required"`
}

type UpdateCategory struct {
	Name *string `json:"name"`
}

type NewReview struct {
	Description string   `json:"description"`
	Rating      *float64 `json:"rating" validate:"required"`
}

// DetailsForOrder is the trimmed view the order service reads when pricing a
// cart. Img falls back to "default-link" when the product has no images.
type DetailsForOrder struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Img      string  `json:"img"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// filterAttributes drops every attribute whose name the category does not
// permit. Unknown attributes are dropped silently, not rejected.
func filterAttributes(attributes []Attribute, allowed []string) []Attribute {
	permitted := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		permitted[name] = true
	}
	filtered := []Attribute{}
	for _, attribute := range attributes {
		if permitted[attribute.Name] {
			filtered = append(filtered, attribute)
		}
	}
	return filtered
}

// restrictToCategory keeps only products belonging to the category.
func restrictToCategory(products []Product, categoryID string) []Product {
	filtered := []Product{}
	for _, product := range products {
		if product.Category.ID == categoryID {
			filtered = append(filtered, product)
		}
	}
	return filtered
}

// restrictToGenders keeps only products whose gender is in the list. An empty
// list keeps everything.
func restrictToGenders(products []Product, genders []string) []Product {
	if len(genders) == 0 {
		return products
	}
	wanted := make(map[string]bool, len(genders))
	for _, gender := range genders {
		wanted[gender] = true
	}
	filtered := []Product{}
	for _, product := range products {
		if wanted[product.Gender] {
			filtered = append(filtered, product)
		}
	}
	return filtered
}
