package model

import "time"

// Rental mirrors the 'alquileres' table.  A rental is active while Devuelto
// is false; returning it is terminal.  At most one active rental may exist
// per (perfil_id, pelicula_id) pair and at most three per user, both
// enforced by the crear_alquiler stored procedure.
type Rental struct {
	ID                      string    `json:"id"`
	PerfilID                string    `json:"perfil_id"`
	PeliculaID              string    `json:"pelicula_id"`
	FechaAlquiler           time.Time `json:"fecha_alquiler"`
	FechaDevolucionPrevista time.Time `json:"fecha_devolucion_prevista"`
	Devuelto                bool      `json:"devuelto"`
}

// RentalDetail is a rental joined with its movie's display fields, as
// returned by the active/history/all listing endpoints.  PerfilID is only
// populated for the admin listing.
type RentalDetail struct {
	ID                      string       `json:"id"`
	FechaAlquiler           time.Time    `json:"fecha_alquiler"`
	FechaDevolucionPrevista time.Time    `json:"fecha_devolucion_prevista"`
	Devuelto                bool         `json:"devuelto"`
	PerfilID                string       `json:"perfil_id,omitempty"`
	Pelicula                MovieSummary `json:"peliculas"`
}
