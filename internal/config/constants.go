package config

// Business rules and user-facing message constants for the videoclub API.
// User-visible text is Spanish, matching the storefront frontend.

// User roles stored in usuarios.role and carried in the JWT "role" claim.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// MaxActiveRentals is the cap of simultaneously unreturned rentals per user.
// It is enforced by the crear_alquiler stored procedure; the constant exists
// so messages and tests agree with the database.
const MaxActiveRentals = 3

// RentalPeriodDays is the default rental period.  The stored procedure
// computes fecha_devolucion_prevista as NOW() + this many days.
const RentalPeriodDays = 7

// Common error messages returned to clients.
const (
	MsgUnauthorized      = "No autorizado"
	MsgForbidden         = "No tienes permisos para esta acción"
	MsgNotFound          = "Recurso no encontrado"
	MsgServerError       = "Error interno del servidor"
	MsgMaxRentalsReached = "Has alcanzado el límite de 3 películas activas"
	MsgNoStockAvailable  = "No hay copias disponibles"
	MsgAlreadyRented     = "Ya tienes esta película alquilada"
	MsgRentalNotFound    = "Alquiler no encontrado o ya devuelto"
	MsgMovieNotFound     = "Película no encontrada"
)
