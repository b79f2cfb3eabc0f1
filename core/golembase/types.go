package golembase

// StringAnnotation is a (name, string) pair attached to an entity.
type StringAnnotation struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NumericAnnotation is a (name, integer) pair attached to an entity.
type NumericAnnotation struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// Entity is one stored record as returned by a query.
type Entity struct {
	// Key is the hex entity key identifying the record.
	Key string `json:"entityKey"`

	// Payload is the opaque entity data.
	Payload []byte `json:"payload"`

	// StringAnnotations holds the string-valued annotations.
	StringAnnotations []StringAnnotation `json:"stringAnnotations"`

	// NumericAnnotations holds the integer-valued annotations.
	NumericAnnotations []NumericAnnotation `json:"numericAnnotations"`
}

// Annotation returns the named annotation value and whether it exists.
// String annotations are searched before numeric ones.
func (e *Entity) Annotation(name string) (any, bool) {
	for _, a := range e.StringAnnotations {
		if a.Name == name {
			return a.Value, true
		}
	}
	for _, a := range e.NumericAnnotations {
		if a.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

// StringAnnotation returns the named string annotation, or "" if absent.
func (e *Entity) StringAnnotation(name string) string {
	for _, a := range e.StringAnnotations {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// Create describes a new entity to be written.
type Create struct {
	Payload            []byte              `json:"payload"`
	TTL                int64               `json:"ttl"`
	StringAnnotations  []StringAnnotation  `json:"stringAnnotations"`
	NumericAnnotations []NumericAnnotation `json:"numericAnnotations"`
}

// Update describes an in-place replacement of an existing entity.
type Update struct {
	Key                string              `json:"entityKey"`
	Payload            []byte              `json:"payload"`
	TTL                int64               `json:"ttl"`
	StringAnnotations  []StringAnnotation  `json:"stringAnnotations"`
	NumericAnnotations []NumericAnnotation `json:"numericAnnotations"`
}

// Receipt acknowledges a single create or update.
type Receipt struct {
	Key             string `json:"entityKey"`
	ExpirationBlock uint64 `json:"expirationBlock"`
}

// EntityMetadata describes an entity without its payload.
type EntityMetadata struct {
	Key                string              `json:"entityKey"`
	Owner              string              `json:"owner"`
	ExpirationBlock    uint64              `json:"expirationBlock"`
	StringAnnotations  []StringAnnotation  `json:"stringAnnotations"`
	NumericAnnotations []NumericAnnotation `json:"numericAnnotations"`
}

// WatchEvent is one entity lifecycle event from the log subscription.
type WatchEvent struct {
	Key string `json:"entityKey"`
}

// WatchCallbacks receives entity lifecycle events. Nil callbacks are skipped.
type WatchCallbacks struct {
	OnCreate func(WatchEvent)
	OnUpdate func(WatchEvent)
	OnDelete func(WatchEvent)
	OnExtend func(WatchEvent)
}
