package controllers

import (
	"context"
	"net/http"

	"github.com/Iphycodes/odg/api/responses"
	"github.com/Iphycodes/odg/pkg/config"
	pkgerrors "github.com/Iphycodes/odg/pkg/errors"
	"github.com/Iphycodes/odg/pkg/logger"
)

const envHeader = "X-Odogwu-Env"

type pinger interface {
	Ping(context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness: the process is up and its storage tier
// answers a ping.
func HealthReady(cfg *config.Config, logg *logger.Logger, kv pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		w.Header().Set(envHeader, cfg.App.Env)

		if kv != nil {
			if err := kv.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
