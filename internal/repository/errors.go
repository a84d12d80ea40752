// Package repository implements data access over MySQL.  This file defines
// sentinel errors shared across repositories so handlers can map database
// failures onto the HTTP error taxonomy without string matching of their
// own.  The substring matching against stored procedure SIGNAL text happens
// here, once.
package repository

import "errors"

// ErrEmailExists is returned when registering with an email that is already
// taken (MySQL duplicate-key error 1062 on usuarios.email).
var ErrEmailExists = errors.New("email already exists")

// ErrMovieNotFound is returned when a pelicula id does not exist.
var ErrMovieNotFound = errors.New("movie not found")

// ErrRentalNotFound is returned when an alquiler does not exist, is not
// owned by the requesting user, or was already returned (the devolver
// procedure does not distinguish the last two cases).
var ErrRentalNotFound = errors.New("rental not found")

// ErrMaxRentals is returned by the crear_alquiler procedure when the user
// already holds the maximum number of active rentals.
var ErrMaxRentals = errors.New("active rental limit reached")

// ErrNoStock is returned by the crear_alquiler procedure when the movie has
// no available copies.
var ErrNoStock = errors.New("no stock available")

// ErrMovieHasActiveRentals blocks deleting a movie that is still rented out.
var ErrMovieHasActiveRentals = errors.New("movie has active rentals")
