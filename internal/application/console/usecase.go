// Package console es el caso de uso central de la consola comercial: mantiene el
// estado en memoria, aplica las transiciones del ciclo de vida y persiste las
// colecciones que cada transición modifica.
//
// Las escrituras se serializan con un único mutex (un solo escritor); las lecturas
// devuelven colecciones que ninguna transición vuelve a modificar.
package console

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/mf-comercial/internal/domain/lifecycle"
	"github.com/jhoicas/mf-comercial/internal/domain/repository"
	"github.com/jhoicas/mf-comercial/pkg/logger"
)

// Config valores inyectados en cada transición.
type Config struct {
	Location  *time.Location
	Plant     string
	Requester string // solicitante por defecto de las plantillas nuevas
	Clock     func() time.Time
	IDs       lifecycle.IDGenerator
}

// UseCase estado de la consola y sus transiciones.
type UseCase struct {
	mu    sync.RWMutex
	state lifecycle.State
	repo  repository.ConsoleRepository
	cfg   Config
	log   *logger.Logger
}

// NewUseCase carga el estado desde el repositorio y construye el caso de uso.
func NewUseCase(ctx context.Context, repo repository.ConsoleRepository, cfg Config, log *logger.Logger) *UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.IDs == nil {
		cfg.IDs = lifecycle.UUIDGenerator{}
	}
	if cfg.Plant == "" {
		cfg.Plant = lifecycle.DefaultPlant
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		state: repo.Load(ctx).Clean(),
		repo:  repo,
		cfg:   cfg,
		log:   log.Component("console"),
	}
}

// Now hora actual según el reloj configurado.
func (uc *UseCase) Now() time.Time { return uc.cfg.Clock() }

// Location zona horaria de la operación.
func (uc *UseCase) Location() *time.Location { return uc.cfg.Location }

// Snapshot estado actual. Las colecciones no deben modificarse.
func (uc *UseCase) Snapshot() lifecycle.State {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.state
}

func (uc *UseCase) env(ctx context.Context) lifecycle.Env {
	return lifecycle.Env{
		Now:   uc.cfg.Clock(),
		Loc:   uc.cfg.Location,
		IDs:   uc.cfg.IDs,
		Actor: ActorFrom(ctx),
		Plant: uc.cfg.Plant,
	}
}

// apply ejecuta una transición. Si falla el estado no cambia; si no, se guardan
// las colecciones marcadas. Un error de guardado no revierte el estado en memoria.
func (uc *UseCase) apply(ctx context.Context, op string, fn func(lifecycle.State, lifecycle.Env) (lifecycle.State, error)) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next, err := fn(uc.state, uc.env(ctx))
	if err != nil {
		uc.log.Debug().Err(err).Str("op", op).Msg("transición rechazada")
		return err
	}
	if changed := next.Dirty(); changed != 0 {
		uc.repo.Save(ctx, next, changed)
	}
	uc.state = next.Clean()
	return nil
}

// Reset restaura pedidos, solicitudes y embarques a los datos iniciales y vacía Entregados.
func (uc *UseCase) Reset(ctx context.Context) error {
	err := uc.apply(ctx, "reset", func(s lifecycle.State, _ lifecycle.Env) (lifecycle.State, error) {
		return lifecycle.Reset(s, uc.repo.Seed()), nil
	})
	if err == nil {
		uc.log.Info().Msg("consola restaurada a los datos iniciales")
	}
	return err
}
