package model

type Item struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Price       float64
}
