package repository

import (
	"context"

	"github.com/jhoicas/mf-comercial/internal/domain/lifecycle"
)

// ConsoleRepository carga y guarda el estado completo de la consola.
type ConsoleRepository interface {
	// Load lee todas las colecciones. Una colección ausente o ilegible cae al seed;
	// nunca devuelve error por datos corruptos.
	Load(ctx context.Context) lifecycle.State

	// Save escribe solo las colecciones marcadas en changed. Es best-effort:
	// los errores del almacén se registran y no se propagan.
	Save(ctx context.Context, s lifecycle.State, changed lifecycle.Change)

	// Seed datos iniciales usados por Load y por el reset de la consola.
	Seed() lifecycle.Seed
}
