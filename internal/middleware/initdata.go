package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/playforge/miniapp-api/internal/model"
	"github.com/playforge/miniapp-api/pkg/initdata"
)

// maxGateBody caps how much of a request body the gate will buffer.
const maxGateBody = 1 << 20

// initDataBody is the portion of the request body the gate inspects.
type initDataBody struct {
	InitData string `json:"initData"`
}

// userClaim is the nested user object carried inside a verified payload.
type userClaim struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

// InitData gates mutating routes behind launch-payload verification.
//
// The request body must be JSON with an "initData" field holding the
// signed payload. Missing payload, bad signature, malformed payload and
// absent user id all answer with the same envelope; a caller cannot tell
// which check failed. On success the caller's identity is placed in the
// request context and the body is restored for downstream handlers.
func InitData(botToken string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := io.ReadAll(io.LimitReader(r.Body, maxGateBody))
			if err != nil {
				model.NewUnauthenticatedError().WriteJSON(w)
				return
			}
			_ = r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(raw))

			var body initDataBody
			if err := json.Unmarshal(raw, &body); err != nil || body.InitData == "" {
				model.NewUnauthenticatedError().WriteJSON(w)
				return
			}

			valid, claims, err := initdata.Verify(body.InitData, botToken)
			if err != nil || !valid {
				model.NewUnauthenticatedError().WriteJSON(w)
				return
			}

			var user userClaim
			if err := json.Unmarshal([]byte(claims["user"]), &user); err != nil || user.ID == 0 {
				model.NewUnauthenticatedError().WriteJSON(w)
				return
			}

			ctx := WithIdentity(r.Context(), model.Identity{
				PlayerID:  user.ID,
				Username:  user.Username,
				FirstName: user.FirstName,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithIdentity returns a context carrying the verified caller identity.
func WithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentity extracts the verified identity from context. The second
// return is false when the request did not pass the gate.
func GetIdentity(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(model.Identity)
	return identity, ok
}
