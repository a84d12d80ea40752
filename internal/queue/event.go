// Package queue defines the rental lifecycle events exchanged over the
// message broker and the background consumer that audits them.
package queue

// Event types carried in RentalEvent.Type.
const (
	EventRentalCreated  = "rental.created"
	EventRentalReturned = "rental.returned"
)

// RentalEvent is published after a rental is successfully created or
// returned.  It carries enough context for downstream consumers to log or
// notify without querying the primary database.
type RentalEvent struct {
	Type                    string `json:"type"`
	AlquilerID              string `json:"alquiler_id"`
	PerfilID                string `json:"perfil_id"`
	PeliculaID              string `json:"pelicula_id"`
	Titulo                  string `json:"titulo,omitempty"`
	FechaAlquiler           string `json:"fecha_alquiler,omitempty"`
	FechaDevolucionPrevista string `json:"fecha_devolucion_prevista,omitempty"`
	OccurredAt              string `json:"occurred_at"`
}
