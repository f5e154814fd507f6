package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strconv"

	"github.com/andela-oeyiowuawi/Bucketlist/internal/httputil"
)

type contextKey string

const versionKey contextKey = "api_version"

// DefaultAPIVersion is used when the Accept header carries no vendor media type.
const DefaultAPIVersion = 1

var vendorAccept = regexp.MustCompile(`^application/vnd\.bucketlist\.v(\d+)`)

// APIVersion resolves the requested API version from the Accept header
// (application/vnd.bucketlist.v1). Requests without a vendor media type get
// the default version; unsupported versions are rejected with 406.
func APIVersion(supported ...int) func(http.Handler) http.Handler {
	supportedSet := make(map[int]bool)
	for _, v := range supported {
		supportedSet[v] = true
	}
	if len(supportedSet) == 0 {
		supportedSet[DefaultAPIVersion] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			version := DefaultAPIVersion
			if m := vendorAccept.FindStringSubmatch(r.Header.Get("Accept")); m != nil {
				version, _ = strconv.Atoi(m[1])
			}

			if !supportedSet[version] {
				httputil.RespondWithErrors(w, http.StatusNotAcceptable, []string{"API version not supported"})
				return
			}

			ctx := context.WithValue(r.Context(), versionKey, version)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAPIVersion extracts the resolved API version from the context
func GetAPIVersion(ctx context.Context) int {
	if v, ok := ctx.Value(versionKey).(int); ok {
		return v
	}
	return DefaultAPIVersion
}
