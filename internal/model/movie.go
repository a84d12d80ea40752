package model

import "time"

// Movie mirrors the 'peliculas' table.  Field names follow the storefront's
// Spanish API contract.  stock_disponible <= stock_total is enforced by the
// database, not by this layer.
type Movie struct {
	ID              string    `json:"id"`
	Titulo          string    `json:"titulo"`
	Genero          string    `json:"genero"`
	StockTotal      int       `json:"stock_total"`
	StockDisponible int       `json:"stock_disponible"`
	PrecioAlquiler  float64   `json:"precio_alquiler"`
	PosterURL       *string   `json:"poster_url,omitempty"`
	Director        *string   `json:"director,omitempty"`
	Anio            *int      `json:"anio,omitempty"`
	Duracion        *int      `json:"duracion,omitempty"`
	Descripcion     *string   `json:"descripcion,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MovieSummary carries the display fields attached to rental responses.
type MovieSummary struct {
	ID             string   `json:"id"`
	Titulo         string   `json:"titulo"`
	Genero         string   `json:"genero"`
	PrecioAlquiler *float64 `json:"precio_alquiler,omitempty"`
}

// Pagination describes a page of catalog results.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}
