package repository

import "context"

// KVStore define el puerto de almacenamiento clave-valor donde se guardan los registros
// serializados de cada sesión (DIP). Las claves son opacas para el backend.
type KVStore interface {
	// Get devuelve el valor o domain.ErrNotFound si la clave no existe.
	Get(ctx context.Context, key string) ([]byte, error)
	// SetMany escribe todas las entradas juntas; atómico cuando el backend lo permite.
	SetMany(ctx context.Context, entries map[string][]byte) error
	// Delete elimina las claves; las inexistentes se ignoran.
	Delete(ctx context.Context, keys ...string) error
}
