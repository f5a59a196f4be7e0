package compress

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/codecbench/internal/hash"
	"github.com/arloliu/codecbench/internal/options"
)

// Descriptor describes one codec as seen by the probing phase.
type Descriptor struct {
	Name        Name
	Available   bool
	Extension   string
	Backend     string
	Options     string
	Fingerprint string // xxHash64 of name, backend and options
	Location    string // "builtin" or the resolved executable path
	Reason      string // why the codec is unavailable, empty when available
}

// Environment is the immutable result of probing a registry once at startup.
type Environment struct {
	order       []Name
	descriptors map[Name]Descriptor
}

// Available reports whether name was probed as available.
func (e Environment) Available(name Name) bool {
	return e.descriptors[name].Available
}

// Descriptor returns the probe result for name.
func (e Environment) Descriptor(name Name) (Descriptor, bool) {
	d, ok := e.descriptors[name]
	return d, ok
}

// Descriptors returns every probe result in registration order.
func (e Environment) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.descriptors[name])
	}

	return out
}

// AvailableNames returns the names of available codecs in registration order.
func (e Environment) AvailableNames() []Name {
	out := make([]Name, 0, len(e.order))
	for _, name := range e.order {
		if e.descriptors[name].Available {
			out = append(out, name)
		}
	}

	return out
}

// Registry maps codec names to codecs.
type Registry struct {
	opts   Options
	order  []Name
	codecs map[Name]Codec
	extra  []Codec
}

// RegistryOption configures a Registry.
type RegistryOption = options.Option[*Registry]

// WithOptions sets the tunables of the built-in codecs. Values are clamped.
func WithOptions(o Options) RegistryOption {
	return options.NoError(func(r *Registry) {
		r.opts = o.Clamp()
	})
}

// WithCodec registers c, replacing any built-in codec with the same name.
func WithCodec(c Codec) RegistryOption {
	return options.New(func(r *Registry) error {
		if c == nil || c.Name() == "" {
			return errors.New("codec must have a name")
		}
		r.extra = append(r.extra, c)

		return nil
	})
}

// NewRegistry creates a registry holding every built-in codec plus the codecs
// passed with WithCodec. Without options all codecs use DefaultOptions.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		opts:   DefaultOptions(),
		codecs: make(map[Name]Codec, len(AllNames)),
	}
	if err := options.Apply(r, opts...); err != nil {
		return nil, err
	}

	for _, name := range AllNames {
		c, err := CreateCodec(name, r.opts)
		if err != nil {
			return nil, err
		}
		r.register(c)
	}
	for _, c := range r.extra {
		r.register(c)
	}
	r.extra = nil

	return r, nil
}

func (r *Registry) register(c Codec) {
	if _, ok := r.codecs[c.Name()]; !ok {
		r.order = append(r.order, c.Name())
	}
	r.codecs[c.Name()] = c
}

// Probe checks every registered codec once and returns the environment.
func (r *Registry) Probe() Environment {
	env := Environment{
		order:       slices.Clone(r.order),
		descriptors: make(map[Name]Descriptor, len(r.order)),
	}
	for _, name := range r.order {
		env.descriptors[name] = Describe(r.codecs[name])
	}

	return env
}

// Describe probes c and returns its descriptor.
func Describe(c Codec) Descriptor {
	d := Descriptor{
		Name:        c.Name(),
		Extension:   c.Extension(),
		Backend:     c.Backend(),
		Options:     c.Options(),
		Fingerprint: hash.Fingerprint(string(c.Name()), c.Backend(), c.Options()),
	}

	loc, err := c.Probe()
	if err != nil {
		d.Reason = err.Error()
		return d
	}
	d.Available = true
	d.Location = loc

	return d
}

// Selection is the outcome of Registry.Select.
type Selection struct {
	// Enabled holds the codecs to run, in requested order.
	Enabled []Codec
	// Dropped holds the requested codecs that were unavailable.
	Dropped []Descriptor
}

// EnabledNames returns the names of the enabled codecs.
func (s Selection) EnabledNames() []Name {
	out := make([]Name, 0, len(s.Enabled))
	for _, c := range s.Enabled {
		out = append(out, c.Name())
	}

	return out
}

// Select resolves requested codec names against env.
//
// An empty requested list means DefaultNames. Unavailable codecs are moved to
// Dropped. Codecs listed in required are implicitly requested; if any of them
// is unavailable Select returns ErrRequiredUnavailable and a selection with no
// enabled codecs, so the caller does no work at all.
func (r *Registry) Select(env Environment, requested, required []Name) (Selection, error) {
	if len(requested) == 0 {
		requested = DefaultNames
	}

	want := make([]Name, 0, len(requested)+len(required))
	for _, name := range slices.Concat(requested, required) {
		if _, ok := r.codecs[name]; !ok {
			return Selection{}, fmt.Errorf("%w: %q", ErrUnknownCodec, string(name))
		}
		if !slices.Contains(want, name) {
			want = append(want, name)
		}
	}

	var sel Selection
	for _, name := range want {
		d, ok := env.Descriptor(name)
		if !ok {
			// registered after probing; treat like a failed probe
			d = Descriptor{Name: name, Reason: "not probed"}
		}
		if d.Available {
			sel.Enabled = append(sel.Enabled, r.codecs[name])
		} else {
			sel.Dropped = append(sel.Dropped, d)
		}
	}

	var missing []string
	for _, name := range required {
		if !env.Available(name) && !slices.Contains(missing, string(name)) {
			missing = append(missing, string(name))
		}
	}
	if len(missing) > 0 {
		sel.Enabled = nil
		return sel, fmt.Errorf("%w: %s", ErrRequiredUnavailable, strings.Join(missing, ", "))
	}

	return sel, nil
}
