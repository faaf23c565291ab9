package entities

type Cuisine struct {
	ID string `gorm:"primaryKey;size:64" json:"id"`

	Regions []*RegionalCuisine `gorm:"foreignKey:CuisineID"`
	Types   []*CuisineType     `gorm:"foreignKey:CuisineID"`
}

type RegionalCuisine struct {
	CuisineID  string `gorm:"primaryKey;size:64" json:"cuisine_id"`
	RegionDesc string `gorm:"primaryKey" json:"region_desc"`
}

type CuisineType struct {
	CuisineID       string `gorm:"primaryKey;size:64" json:"cuisine_id"`
	TypeDescription string `gorm:"primaryKey" json:"type_description"`
}
