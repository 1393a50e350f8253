package models

type Sport struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
