package repository

import "context"

// KVStore almacén clave/valor de strings. Todo el estado de la consola se
// persiste como documentos JSON bajo claves fijas.
type KVStore interface {
	// Get devuelve el valor y found=false si la clave no existe.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// KVBatcher almacén que agrupa varias escrituras en una sola operación.
// Si fn devuelve error el lote se descarta.
type KVBatcher interface {
	Batch(ctx context.Context, fn func(tx KVStore) error) error
}
