package tx

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
)

// Factory creates an empty operation ready for decoding.
type Factory func() Operation

// Registry manages operation factories by type.
// It provides thread-safe registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[OperationType]Factory
}

// NewRegistry creates a new operation registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[OperationType]Factory),
	}
}

// Register adds a factory for an operation type.
// Returns an error if one is already registered for that type.
func (r *Registry) Register(t OperationType, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[t]; exists {
		return fmt.Errorf("factory already registered for operation type: %s", t)
	}
	r.factories[t] = f
	return nil
}

// New creates an empty operation of type t.
func (r *Registry) New(t OperationType) (Operation, error) {
	r.mu.RLock()
	f, ok := r.factories[t]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperationType, t)
	}
	return f(), nil
}

// Types returns all registered operation types in ascending order.
func (r *Registry) Types() []OperationType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]OperationType, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// DefaultRegistry is the global operation registry.
var DefaultRegistry = NewRegistry()

// Register adds a factory to the default registry, panicking on error.
// Operation packages call it from init().
func Register(t OperationType, f Factory) {
	if err := DefaultRegistry.Register(t, f); err != nil {
		panic(err)
	}
}

// envelopeJSON is the JSON form of an Envelope.
type envelopeJSON struct {
	Source string          `json:"source"`
	Type   string          `json:"type"`
	Body   json.RawMessage `json:"body"`
}

// MarshalJSON encodes the envelope with its operation type name.
func (env Envelope) MarshalJSON() ([]byte, error) {
	body, err := json.Marshal(env.Operation)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelopeJSON{
		Source: env.Source.String(),
		Type:   env.Operation.Type().String(),
		Body:   body,
	})
}

// DecodeEnvelope decodes a single JSON envelope using the default registry.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var raw envelopeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return Envelope{}, err
	}
	return raw.decode(DefaultRegistry)
}

// DecodeEnvelopes decodes a JSON array of envelopes using the default registry.
func DecodeEnvelopes(data []byte) ([]Envelope, error) {
	var raws []envelopeJSON
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	envs := make([]Envelope, 0, len(raws))
	for i, raw := range raws {
		env, err := raw.decode(DefaultRegistry)
		if err != nil {
			return nil, fmt.Errorf("envelope %d: %w", i, err)
		}
		envs = append(envs, env)
	}
	return envs, nil
}

func (raw envelopeJSON) decode(r *Registry) (Envelope, error) {
	source, err := sle.DecodeAccountID(raw.Source)
	if err != nil {
		return Envelope{}, fmt.Errorf("source: %w", err)
	}
	t, ok := TypeFromName(raw.Type)
	if !ok {
		return Envelope{}, fmt.Errorf("%w: %q", ErrUnknownOperationType, raw.Type)
	}
	op, err := r.New(t)
	if err != nil {
		return Envelope{}, err
	}
	if len(raw.Body) > 0 {
		if err := json.Unmarshal(raw.Body, op); err != nil {
			return Envelope{}, fmt.Errorf("%s body: %w", t, err)
		}
	}
	return Envelope{Source: source, Operation: op}, nil
}
