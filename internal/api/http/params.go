package http

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"eventhub-backend/internal/domain"

	"github.com/gorilla/mux"
)

const defaultPageSize = 10

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.BadRequestf("invalid %s: %q", name, raw)
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.BadRequestf("invalid %s: %q", name, raw)
	}
	return v, nil
}

func queryTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(timestampLayout, raw, time.Local)
	if err != nil {
		return nil, domain.BadRequestf("invalid %s: %q, expected %s", name, raw, timestampLayout)
	}
	return &t, nil
}

// queryIDs accepts both repeated and comma separated values.
func queryIDs(r *http.Request, name string) ([]int64, error) {
	var ids []int64
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, domain.BadRequestf("invalid %s: %q", name, part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func parseEventFilter(r *http.Request) (domain.EventFilter, error) {
	q := r.URL.Query()
	f := domain.EventFilter{Text: strings.TrimSpace(q.Get("text"))}

	var err error
	if f.CategoryIDs, err = queryIDs(r, "categories"); err != nil {
		return f, err
	}
	if raw := q.Get("paid"); raw != "" {
		paid, err := strconv.ParseBool(raw)
		if err != nil {
			return f, domain.BadRequestf("invalid paid: %q", raw)
		}
		f.Paid = &paid
	}
	if f.RangeStart, err = queryTime(r, "rangeStart"); err != nil {
		return f, err
	}
	if f.RangeEnd, err = queryTime(r, "rangeEnd"); err != nil {
		return f, err
	}
	if raw := q.Get("onlyAvailable"); raw != "" {
		if f.OnlyAvailable, err = strconv.ParseBool(raw); err != nil {
			return f, domain.BadRequestf("invalid onlyAvailable: %q", raw)
		}
	}
	return f, nil
}

// clientIP prefers the first X-Forwarded-For entry set by a proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
