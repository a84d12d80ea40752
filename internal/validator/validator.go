// Package validator checks request bodies against the API's declarative
// field rules.  Each Validate* function inspects the bound request struct,
// collects every violation (not just the first) into one comma-joined
// Spanish message, and returns the sanitized value.  Undeclared fields are
// already stripped by binding into the typed request structs.
package validator

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"videoclub/internal/apperror"
	"videoclub/internal/model"
)

// MovieRequest is the request body for creating or updating a movie.
// Pointer fields distinguish absent values from zero values.
type MovieRequest struct {
	Titulo          *string  `json:"titulo"`
	Genero          *string  `json:"genero"`
	StockTotal      *int     `json:"stock_total"`
	StockDisponible *int     `json:"stock_disponible"`
	PrecioAlquiler  *float64 `json:"precio_alquiler"`
	PosterURL       *string  `json:"poster_url"`
	Director        *string  `json:"director"`
	Anio            *int     `json:"anio"`
	Duracion        *int     `json:"duracion"`
	Descripcion     *string  `json:"descripcion"`
}

// RentalRequest is the request body for creating a rental.
type RentalRequest struct {
	PeliculaID string `json:"pelicula_id"`
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the request body for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nombre   string `json:"nombre"`
}

// ValidateMovie checks all movie fields and returns the sanitized movie.
func ValidateMovie(req MovieRequest) (model.Movie, error) {
	var msgs []string
	var m model.Movie

	switch {
	case req.Titulo == nil || strings.TrimSpace(*req.Titulo) == "":
		msgs = append(msgs, "El título es requerido")
	case len([]rune(*req.Titulo)) > 200:
		msgs = append(msgs, "El título no puede exceder 200 caracteres")
	default:
		m.Titulo = strings.TrimSpace(*req.Titulo)
	}

	switch {
	case req.Genero == nil || strings.TrimSpace(*req.Genero) == "":
		msgs = append(msgs, "El género es requerido")
	case len([]rune(*req.Genero)) > 50:
		msgs = append(msgs, "El género no puede exceder 50 caracteres")
	default:
		m.Genero = strings.TrimSpace(*req.Genero)
	}

	switch {
	case req.StockTotal == nil:
		msgs = append(msgs, "El stock total debe ser un número")
	case *req.StockTotal < 0:
		msgs = append(msgs, "El stock total no puede ser negativo")
	default:
		m.StockTotal = *req.StockTotal
	}

	switch {
	case req.StockDisponible == nil:
		msgs = append(msgs, "El stock disponible debe ser un número")
	case *req.StockDisponible < 0:
		msgs = append(msgs, "El stock disponible no puede ser negativo")
	default:
		m.StockDisponible = *req.StockDisponible
	}

	switch {
	case req.PrecioAlquiler == nil:
		msgs = append(msgs, "El precio debe ser un número")
	case *req.PrecioAlquiler <= 0:
		msgs = append(msgs, "El precio debe ser mayor a 0")
	default:
		m.PrecioAlquiler = *req.PrecioAlquiler
	}

	if req.PosterURL != nil && *req.PosterURL != "" {
		if !validURI(*req.PosterURL) {
			msgs = append(msgs, "El poster debe ser una URL válida")
		} else {
			m.PosterURL = req.PosterURL
		}
	}

	if req.Director != nil && *req.Director != "" {
		if len([]rune(*req.Director)) > 100 {
			msgs = append(msgs, "El director no puede exceder 100 caracteres")
		} else {
			m.Director = req.Director
		}
	}

	if req.Anio != nil {
		maxYear := time.Now().Year() + 5
		if *req.Anio < 1888 || *req.Anio > maxYear {
			msgs = append(msgs, fmt.Sprintf("El año debe estar entre 1888 y %d", maxYear))
		} else {
			m.Anio = req.Anio
		}
	}

	if req.Duracion != nil {
		if *req.Duracion < 1 {
			msgs = append(msgs, "La duración debe ser mayor a 0")
		} else {
			m.Duracion = req.Duracion
		}
	}

	if req.Descripcion != nil && *req.Descripcion != "" {
		if len([]rune(*req.Descripcion)) > 1000 {
			msgs = append(msgs, "La descripción no puede exceder 1000 caracteres")
		} else {
			m.Descripcion = req.Descripcion
		}
	}

	if len(msgs) > 0 {
		return model.Movie{}, apperror.Validation(strings.Join(msgs, ", "))
	}
	return m, nil
}

// ValidateRental checks the rental creation body.
func ValidateRental(req RentalRequest) (string, error) {
	var msgs []string
	id := strings.TrimSpace(req.PeliculaID)
	if id == "" {
		msgs = append(msgs, "El ID de la película es requerido")
	} else if _, err := uuid.Parse(id); err != nil {
		msgs = append(msgs, "El ID de la película debe ser un UUID válido")
	}
	if len(msgs) > 0 {
		return "", apperror.Validation(strings.Join(msgs, ", "))
	}
	return id, nil
}

// ValidateLogin checks login credentials (password minimum is looser than on
// registration so older accounts keep working).
func ValidateLogin(req LoginRequest) (LoginRequest, error) {
	var msgs []string
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		msgs = append(msgs, "El email es requerido")
	} else if !validEmail(req.Email) {
		msgs = append(msgs, "El email debe ser válido")
	}
	if req.Password == "" {
		msgs = append(msgs, "La contraseña es requerida")
	} else if len(req.Password) < 6 {
		msgs = append(msgs, "La contraseña debe tener al menos 6 caracteres")
	}
	if len(msgs) > 0 {
		return LoginRequest{}, apperror.Validation(strings.Join(msgs, ", "))
	}
	return req, nil
}

// ValidateRegister checks registration fields.
func ValidateRegister(req RegisterRequest) (RegisterRequest, error) {
	var msgs []string
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Nombre = strings.TrimSpace(req.Nombre)
	if req.Email == "" {
		msgs = append(msgs, "El email es requerido")
	} else if !validEmail(req.Email) {
		msgs = append(msgs, "El email debe ser válido")
	}
	if req.Password == "" {
		msgs = append(msgs, "La contraseña es requerida")
	} else if len(req.Password) < 8 {
		msgs = append(msgs, "La contraseña debe tener al menos 8 caracteres")
	}
	switch n := len([]rune(req.Nombre)); {
	case n == 0:
		msgs = append(msgs, "El nombre es requerido")
	case n < 2:
		msgs = append(msgs, "El nombre debe tener al menos 2 caracteres")
	case n > 100:
		msgs = append(msgs, "El nombre no puede exceder 100 caracteres")
	}
	if len(msgs) > 0 {
		return RegisterRequest{}, apperror.Validation(strings.Join(msgs, ", "))
	}
	return req, nil
}

func validEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

func validURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
