package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"videoclub/internal/apperror"
	"videoclub/internal/config"
	"videoclub/internal/middleware"
	"videoclub/internal/model"
	"videoclub/internal/queue"
	"videoclub/internal/repository"
	"videoclub/internal/validator"
)

// RentalHandler orchestrates the rental lifecycle.  The actual invariants
// (rental cap, stock accounting, single active rental per movie) are
// enforced by the database's stored procedures; the handler only performs
// advisory pre-checks, translates procedure failures into the HTTP error
// taxonomy, and shapes responses.  Publish is optional; when set, lifecycle
// events go to the broker best-effort after successful state changes.
type RentalHandler struct {
	Rentals *repository.RentalRepo
	Movies  *repository.MovieRepo
	Publish func(context.Context, queue.RentalEvent) error
}

func NewRentalHandler(r *repository.RentalRepo, m *repository.MovieRepo) *RentalHandler {
	return &RentalHandler{Rentals: r, Movies: m}
}

// Create rents a movie to the caller.  POST /api/v1/rentals
func (h *RentalHandler) Create(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return apperror.Unauthorized("")
	}
	var raw validator.RentalRequest
	if err := c.Bind(&raw); err != nil {
		return apperror.Validation("Cuerpo de la solicitud inválido")
	}
	movieID, err := validator.ValidateRental(raw)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Advisory duplicate check: a friendlier message on the common case.
	// It races with concurrent creates; crear_alquiler remains the
	// authority.
	already, err := h.Rentals.HasActive(ctx, id.ID, movieID)
	if err != nil {
		return apperror.Wrap(http.StatusInternalServerError, "Error al verificar alquileres", err)
	}
	if already {
		return apperror.Validation(config.MsgAlreadyRented)
	}

	rental, err := h.Rentals.Create(ctx, id.ID, movieID)
	if err != nil {
		switch err {
		case repository.ErrMaxRentals:
			return apperror.Validation(config.MsgMaxRentalsReached)
		case repository.ErrNoStock:
			return apperror.Validation(config.MsgNoStockAvailable)
		case repository.ErrMovieNotFound:
			return apperror.NotFound(config.MsgMovieNotFound)
		default:
			// Unrecognized procedure failure: forward the raw text.
			return apperror.Internal("Error al crear alquiler: " + err.Error())
		}
	}

	// Secondary non-atomic read for display fields; a miss here does not
	// undo the rental.
	pelicula, _ := h.Movies.GetSummary(ctx, movieID)

	h.publish(c, queue.RentalEvent{
		Type:                    queue.EventRentalCreated,
		AlquilerID:              rental.ID,
		PerfilID:                rental.PerfilID,
		PeliculaID:              rental.PeliculaID,
		Titulo:                  pelicula.Titulo,
		FechaAlquiler:           rental.FechaAlquiler.UTC().Format(time.RFC3339),
		FechaDevolucionPrevista: rental.FechaDevolucionPrevista.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Película alquilada exitosamente",
		"data": echo.Map{
			"alquiler": rental,
			"pelicula": pelicula,
		},
	})
}

// Return gives a rented movie back.  POST /api/v1/rentals/:id/return
func (h *RentalHandler) Return(c echo.Context) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return apperror.Unauthorized("")
	}
	rentalID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rental, err := h.Rentals.GetByIDForUser(ctx, rentalID, id.ID)
	if err != nil {
		if err == repository.ErrRentalNotFound {
			return apperror.NotFound("Alquiler no encontrado")
		}
		return apperror.Wrap(http.StatusInternalServerError, "Error al verificar alquiler", err)
	}
	if rental.Devuelto {
		return apperror.Validation("Esta película ya fue devuelta")
	}

	if err := h.Rentals.Return(ctx, rentalID); err != nil {
		if err == repository.ErrRentalNotFound {
			return apperror.NotFound(config.MsgRentalNotFound)
		}
		return apperror.Wrap(http.StatusInternalServerError, "Error al devolver película", err)
	}

	h.publish(c, queue.RentalEvent{
		Type:       queue.EventRentalReturned,
		AlquilerID: rental.ID,
		PerfilID:   rental.PerfilID,
		PeliculaID: rental.PeliculaID,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"message":     "Película devuelta exitosamente",
			"alquiler_id": rentalID,
		},
	})
}

// Active lists the caller's unreturned rentals.  GET /api/v1/rentals/active
func (h *RentalHandler) Active(c echo.Context) error {
	return h.listForUser(c, h.Rentals.ListActiveByUser)
}

// History lists every rental the caller ever made.  GET /api/v1/rentals/history
func (h *RentalHandler) History(c echo.Context) error {
	return h.listForUser(c, h.Rentals.ListHistoryByUser)
}

// All lists every rental across all users.  GET /api/v1/rentals (admin)
func (h *RentalHandler) All(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rentals, err := h.Rentals.ListAll(ctx)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(rentals),
		"data":    rentals,
	})
}

func (h *RentalHandler) listForUser(c echo.Context, list func(context.Context, string) ([]model.RentalDetail, error)) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return apperror.Unauthorized("")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rentals, err := list(ctx, id.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"count":   len(rentals),
		"data":    rentals,
	})
}

func (h *RentalHandler) publish(c echo.Context, ev queue.RentalEvent) {
	if h.Publish == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	// Detached context: eventing must not fail or delay the response.
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_ = h.Publish(ctx, ev)
}
