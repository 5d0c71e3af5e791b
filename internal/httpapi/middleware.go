package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/studylab/studyvault/internal/auth"
	"github.com/studylab/studyvault/internal/common"
	"github.com/studylab/studyvault/internal/tenant"
)

type ctxKey int

const (
	ctxKeyStorageKey ctxKey = iota
	ctxKeyPath
)

// HeaderSubjectTag carries the page's subject tag when the caller is not on
// a /subjects/ URL, mirroring the page metadata fallback.
const HeaderSubjectTag = "X-Subject-Id"

// authenticate verifies the bearer token and resolves the caller's storage
// key. Admin-roster emails collapse to the shared key; everyone else keeps
// their principal id as the key.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || raw == r.Header.Get("Authorization") {
			s.respondError(w, r, common.ErrInvalidToken)
			return
		}
		claims, err := auth.ParseToken(raw, s.jwtSecret)
		if err != nil {
			s.respondError(w, r, common.ErrInvalidToken)
			return
		}
		key := s.policy.StorageKey(claims.PrincipalID, claims.Email)
		ctx := context.WithValue(r.Context(), ctxKeyStorageKey, key)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// pageContext resolves the tenant path from the request: the subject comes
// from the "subject" query parameter, a Referer on a /subjects/ URL, or the
// X-Subject-Id header, in that order. A request resolving no subject still
// passes through; handlers then see an unresolved path.
func (s *Server) pageContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := tenant.Page{
			URL:  requestPageURL(r),
			Meta: map[string]string{tenant.MetaSubjectTag: r.Header.Get(HeaderSubjectTag)},
		}
		var path tenant.Path
		if subject, ok := tenant.ResolveSubject(page); ok {
			path = tenant.NewPath(storageKeyFrom(r.Context()), subject)
		}
		ctx := context.WithValue(r.Context(), ctxKeyPath, path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestPageURL reconstructs the page URL the resolver inspects. The
// request's own query string wins; a Referer header stands in for the page
// path when the API is called from a subject page.
func requestPageURL(r *http.Request) string {
	if r.URL.Query().Get(tenant.QuerySubject) != "" {
		return r.URL.String()
	}
	if ref := r.Header.Get("Referer"); ref != "" {
		return ref
	}
	return r.URL.String()
}

func storageKeyFrom(ctx context.Context) string {
	key, _ := ctx.Value(ctxKeyStorageKey).(string)
	return key
}

func pathFrom(ctx context.Context) tenant.Path {
	path, _ := ctx.Value(ctxKeyPath).(tenant.Path)
	return path
}
