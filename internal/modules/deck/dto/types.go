package dto

import "time"

type AddItemInput struct {
	Name           string
	Tags           []string
	DefaultMinutes int
	Body           string
}

type ImportItemInput struct {
	Name           string
	Slug           string
	Tags           []string
	DefaultMinutes int
	Body           string
}

type ItemOutput struct {
	ID             string
	Name           string
	Origin         string
	Tags           []string
	DefaultMinutes int
	NotePath       string
}

type ItemDetailOutput struct {
	ID             string
	Name           string
	Origin         string
	Tags           []string
	DefaultMinutes int
	AddedAt        time.Time
	NotePath       string
	Body           string
}

type SearchInput struct {
	Query string
	Tag   string
}
