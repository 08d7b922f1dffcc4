package entity

import "time"

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Creature struct {
	ID                 int       `json:"id"`
	Name               string    `json:"name"`
	ScientificName     string    `json:"scientific_name"`
	CategoryID         int       `json:"category_id"`
	CategoryName       string    `json:"category_name,omitempty"`
	Description        string    `json:"description"`
	Habitat            string    `json:"habitat"`
	Diet               string    `json:"diet"`
	Lifespan           string    `json:"lifespan"`
	ConservationStatus string    `json:"conservation_status"`
	ImageURL           string    `json:"image_url"`
	FunFacts           string    `json:"fun_facts"`
	CreatedAt          time.Time `json:"created_at"`
}

// CreaturePage is a single page of creatures for one category.
type CreaturePage struct {
	Creatures []*Creature `json:"creatures"`
	Total     int         `json:"total"`
	Pages     int         `json:"pages"`
}
