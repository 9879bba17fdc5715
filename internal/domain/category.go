package domain

type Category struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"image_url"`
	ProductCount int    `json:"product_count"`
	Featured     bool   `json:"featured"`
}

func (c Category) Valid() bool {
	return c.ID != "" && c.Name != ""
}
