package testutil

import (
	"net/http"

	id "rtwgate/pkg/domain"
	"rtwgate/pkg/requestcontext"
)

// WithAuth puts tenant and user ids on the request context, as RequireAuth
// would for an authenticated request. Unparseable ids are silently skipped.
func WithAuth(req *http.Request, tenantID, userID string) *http.Request {
	ctx := req.Context()
	if parsed, err := id.ParseTenantID(tenantID); err == nil {
		ctx = requestcontext.WithTenantID(ctx, parsed)
	}
	if parsed, err := id.ParseUserID(userID); err == nil {
		ctx = requestcontext.WithUserID(ctx, parsed)
	}
	return req.WithContext(ctx)
}
