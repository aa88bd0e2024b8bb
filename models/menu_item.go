package models

// MenuItem represents one purchasable catalog entry
type MenuItem struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Price       int    `json:"price" yaml:"price"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
}

// MenuItemCreation is the body accepted when adding an item to the store
type MenuItemCreation struct {
	Name        string `json:"name" form:"name" binding:"required"`
	Price       int    `json:"price" form:"price" binding:"min=0"`
	Category    string `json:"category" form:"category" binding:"required"`
	Description string `json:"description" form:"description"`
}

// DrawRequest is the body of a gacha draw
type DrawRequest struct {
	Budget *int `json:"budget" form:"budget" binding:"required,min=0,max=10000"`
}
