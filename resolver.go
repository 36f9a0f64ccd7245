package reddit_archiver

import (
	"context"
	"errors"
	"sort"

	"github.com/hfranklin/reddit-archiver/generic"
)

var (
	ErrDuplicateResolver = errors.New("duplicate resolver for host")
	ErrInvalidResolver   = errors.New("invalid resolver")
)

// A ResolvedTarget is a directly fetchable media URL.
type ResolvedTarget struct {
	FetchURL string
}

// ResolveFunc turns a raw media URL into a fetchable target, or None if the
// reference cannot be resolved. Implementations must swallow every failure
// mode (lookup errors, malformed URLs) and express it as None; nothing is
// propagated to the caller.
type ResolveFunc = func(ctx context.Context, mediaURL string) generic.Option[ResolvedTarget]

// A Resolver handles media references for one specific host.
type Resolver struct {
	Host    string
	Resolve ResolveFunc
}

// A ResolverRegistry maps each recognized host to its Resolver. Hosts without
// an entry resolve to None — an explicit "do nothing" policy, not an error.
type ResolverRegistry struct {
	resolvers map[string]*Resolver
}

// Add registers a Resolver with the registry. Resolver.Host and
// Resolver.Resolve must be set, and Resolver.Host must be unique within the
// registry.
func (r *ResolverRegistry) Add(res Resolver) error {
	if r.resolvers == nil {
		r.resolvers = make(map[string]*Resolver)
	}
	if res.Host == "" || res.Resolve == nil {
		return ErrInvalidResolver
	}
	if _, ok := r.resolvers[res.Host]; ok {
		return ErrDuplicateResolver
	}
	r.resolvers[res.Host] = &res
	return nil
}

// Create is a shortcut for Add(Resolver{Host: ..., Resolve: ...}).
func (r *ResolverRegistry) Create(host string, f ResolveFunc) error {
	return r.Add(Resolver{Host: host, Resolve: f})
}

// MustAdd wraps Add but panics if there is an error.
func (r *ResolverRegistry) MustAdd(res Resolver) {
	generic.Unwrap_(r.Add(res))
}

// MustCreate wraps Create but panics if there is an error.
func (r *ResolverRegistry) MustCreate(host string, f ResolveFunc) {
	generic.Unwrap_(r.Create(host, f))
}

// Hosts returns the recognized hosts in lexical order.
func (r *ResolverRegistry) Hosts() []string {
	hosts := make([]string, 0, len(r.resolvers))
	for host := range r.resolvers {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts
}

// Resolve dispatches to the Resolver registered for host. An unrecognized
// host is None, not an error.
func (r *ResolverRegistry) Resolve(ctx context.Context, host string, mediaURL string) generic.Option[ResolvedTarget] {
	res, ok := r.resolvers[host]
	if !ok {
		return generic.None[ResolvedTarget]()
	}
	return res.Resolve(ctx, mediaURL)
}

var DefaultResolverRegistry ResolverRegistry
