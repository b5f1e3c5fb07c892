package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/auth"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type contextKey string

const actorKey contextKey = "actor"

// RoleLookup resolve a role vigente do usuário. A role mora em
// user_roles, não no token: rebaixar um admin vale na requisição
// seguinte, sem esperar o token expirar.
type RoleLookup interface {
	FindRole(ctx context.Context, userID string) (entity.AppRole, error)
}

// Authenticate valida o bearer emitido pelo serviço de autenticação e
// injeta o Actor no contexto. Sem token válido, 401 e fim.
func Authenticate(secret string, roles RoleLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			role, err := roles.FindRole(r.Context(), claims.UserID)
			if err != nil {
				http.Error(w, "falha ao resolver permissões", http.StatusInternalServerError)
				return
			}

			actor := usecase.Actor{
				ID:    claims.UserID,
				Role:  role,
				Token: token,
			}

			ctx := context.WithValue(r.Context(), actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ActorFromContext(ctx context.Context) (usecase.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(usecase.Actor)
	return actor, ok
}

// WithActor injeta um Actor direto no contexto (testes de handler).
func WithActor(ctx context.Context, actor usecase.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// RequireAdmin é o corte grosso de rota. Os casos de uso ainda checam
// a role por conta própria; isso aqui só evita trabalho à toa.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok || !actor.IsAdmin() {
			http.Error(w, "acesso restrito a administradores", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
