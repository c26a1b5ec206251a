package models

// Product represents a product in the store.
type Product struct {
	ID    string  `json:"id" gorm:"primaryKey;type:text"`
	Name  string  `json:"name" gorm:"type:text"`
	Price float64 `json:"price" gorm:"type:real"`
}

// TableName pins the table to the singular name used by the API.
func (Product) TableName() string {
	return "product"
}
